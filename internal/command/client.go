package command

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"todoapp/internal/config"
	"todoapp/internal/global"
	"todoapp/internal/protocol"
	"todoapp/internal/todo"
	"todoapp/internal/view"
)

// ResolveClientConfig loads config.toml and applies the environment and
// --server overrides, in that order.
func ResolveClientConfig(cfg config.Config, serverFlag string) (global.ClientConfig, error) {
	dir := cfg.ConfigDir
	if dir == "" {
		d, err := global.DefaultConfigDir()
		if err != nil {
			return global.ClientConfig{}, err
		}
		dir = d
	}
	cc, err := global.NewConfigStore(dir).LoadOrInit()
	if err != nil {
		return global.ClientConfig{}, fmt.Errorf("load client config: %w", err)
	}
	if cfg.ServerURL != "" {
		cc.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	}
	if serverFlag != "" {
		cc.ServerURL = strings.TrimRight(serverFlag, "/")
	}
	return cc, nil
}

type TaskIO struct {
	In     io.Reader
	Out    io.Writer
	Styles *view.Styles
}

// LineConfirmer asks on out and reads a y/yes answer from in.
func LineConfirmer(in io.Reader, out io.Writer) todo.Confirmer {
	r := bufio.NewReader(in)
	return todo.ConfirmFunc(func(prompt string) bool {
		_, _ = fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, _ := r.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}

// ExecTasks loads the list, runs one transition and prints the resulting
// view. A transition that ends with an error message fails the command.
func ExecTasks(ctx context.Context, api todo.API, req TasksRequest, cc global.ClientConfig, tio TaskIO) error {
	var confirm todo.Confirmer = todo.AlwaysConfirm
	if cc.ConfirmDelete && !req.Yes {
		confirm = LineConfirmer(tio.In, tio.Out)
	}
	filter := cc.Filter()
	if req.Filter != "" {
		f, err := todo.ParseFilter(req.Filter)
		if err != nil {
			return err
		}
		filter = f
	}

	c := todo.NewController(api, confirm)
	c.SetFilter(filter)
	if st := c.Load(ctx); st.Error != "" {
		render(tio, st)
		return errors.New(st.Error)
	}

	switch req.Op {
	case OpList:
	case OpAdd:
		c.SetDraft(strings.Join(req.Args, " "))
		if strings.TrimSpace(c.State().Draft) == "" {
			return errors.New("title is required")
		}
		c.Add(ctx)
	case OpEdit:
		id, title := req.Args[0], strings.Join(req.Args[1:], " ")
		if strings.TrimSpace(title) == "" {
			return errors.New("title is required")
		}
		if !c.StartEdit(id) {
			return fmt.Errorf("task %s not found", id)
		}
		c.SetEditTitle(title)
		c.SaveEdit(ctx)
	case OpToggle:
		if _, ok := c.State().Find(req.Args[0]); !ok {
			return fmt.Errorf("task %s not found", req.Args[0])
		}
		c.Toggle(ctx, req.Args[0])
	case OpRemove:
		id := req.Args[0]
		if _, ok := c.State().Find(id); !ok {
			return fmt.Errorf("task %s not found", id)
		}
		if _, ok := c.Delete(ctx, id).Find(id); ok && c.State().Error == "" {
			_, _ = fmt.Fprintln(tio.Out, "Canceled.")
			return nil
		}
	case OpClear:
		c.ClearCompleted(ctx)
	default:
		return fmt.Errorf("unknown tasks operation %q", req.Op)
	}

	st := c.State()
	render(tio, st)
	if st.Error != "" {
		return errors.New(st.Error)
	}
	return nil
}

func render(tio TaskIO, st todo.State) {
	styles := tio.Styles
	if styles == nil {
		plain := view.PlainStyles()
		styles = &plain
	}
	_, _ = fmt.Fprintln(tio.Out, view.Render(st, view.Options{Cursor: -1, Styles: styles}))
}

// ExecWatch prints one line per task event until ctx ends.
func ExecWatch(ctx context.Context, subscribe func(context.Context, func(protocol.Message)) error, out io.Writer) error {
	return subscribe(ctx, func(msg protocol.Message) {
		_, _ = fmt.Fprintln(out, FormatEvent(msg))
	})
}

func FormatEvent(msg protocol.Message) string {
	var payload struct {
		TaskID string     `json:"task_id"`
		Task   *todo.Task `json:"task"`
	}
	_ = json.Unmarshal(msg.Payload, &payload)
	line := msg.Op + " " + payload.TaskID
	if payload.Task != nil {
		mark := "[ ]"
		if payload.Task.Completed {
			mark = "[x]"
		}
		line += " " + mark + " " + payload.Task.Title
	}
	return line
}
