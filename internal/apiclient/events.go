package apiclient

import (
	"context"
	"strings"

	"github.com/coder/websocket"

	"todoapp/internal/protocol"
)

// Subscribe streams task events from /ws to fn until ctx ends or the server
// closes the connection. A canceled context is not an error.
func (c *Client) Subscribe(ctx context.Context, fn func(protocol.Message)) error {
	conn, _, err := websocket.Dial(ctx, wsURL(c.baseURL)+"/ws", nil)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	for {
		_, raw, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil || websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			return err
		}
		msg, err := protocol.Decode(raw)
		if err != nil {
			continue
		}
		if msg.Type != protocol.TypeEvent {
			continue
		}
		if fn != nil {
			fn(msg)
		}
	}
}

func wsURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return base
	}
}
