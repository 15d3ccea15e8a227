package protocol

import "testing"

func TestDecode_TaskEvent(t *testing.T) {
	raw := []byte(`{"id":"evt_1","type":"event","op":"task.created","payload":{"task_id":"t1"}}`)
	msg, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if msg.Op != OpTaskCreated || msg.Type != TypeEvent {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if string(msg.Payload) != `{"task_id":"t1"}` {
		t.Fatalf("unexpected payload: %s", msg.Payload)
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMustRaw(t *testing.T) {
	if got := string(MustRaw(map[string]any{"id": "x"})); got != `{"id":"x"}` {
		t.Fatalf("unexpected raw: %s", got)
	}
}
