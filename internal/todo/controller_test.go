package todo

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestController_LoadThenAdd(t *testing.T) {
	api := newFakeAPI(taskA)
	c := NewController(api, nil)
	ctx := context.Background()

	st := c.Load(ctx)
	if st.Loading || st.Error != "" || len(st.Tasks) != 1 {
		t.Fatalf("unexpected state after load: %+v", st)
	}

	c.SetDraft("Buy milk")
	st = c.Add(ctx)
	if st.Loading || st.Draft != "" {
		t.Fatalf("expected draft cleared and loading off: %+v", st)
	}
	last := st.Tasks[len(st.Tasks)-1]
	if last.Title != "Buy milk" || last.Completed {
		t.Fatalf("unexpected appended task: %+v", last)
	}
	stats := StatsOf(st)
	if stats.Total != 2 || stats.Active+stats.Completed != stats.Total {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestController_BlankDraftSendsNothing(t *testing.T) {
	api := newFakeAPI()
	c := NewController(api, nil)
	for _, draft := range []string{"", "   ", "\t"} {
		c.SetDraft(draft)
		st := c.Add(context.Background())
		if len(st.Tasks) != 0 || st.Loading {
			t.Fatalf("draft %q: unexpected state %+v", draft, st)
		}
	}
	if n := api.count("create"); n != 0 {
		t.Fatalf("expected no create requests, got %d", n)
	}
}

func TestController_LoadFailure(t *testing.T) {
	api := newFakeAPI(taskA)
	api.ListErr = errors.New("connection refused")
	c := NewController(api, nil)

	st := c.Load(context.Background())
	if st.Loading || len(st.Tasks) != 0 || st.Error != MsgLoadFailed {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestController_DeleteNeedsConfirmation(t *testing.T) {
	api := newFakeAPI(taskA, taskB)
	answer := false
	var prompts []string
	c := NewController(api, ConfirmFunc(func(p string) bool {
		prompts = append(prompts, p)
		return answer
	}))
	ctx := context.Background()
	c.Load(ctx)

	st := c.Delete(ctx, "a")
	if len(st.Tasks) != 2 || api.count("delete") != 0 {
		t.Fatalf("declined delete must not send a request: %+v", st)
	}

	answer = true
	st = c.Delete(ctx, "a")
	if diff := cmp.Diff([]Task{taskB}, st.Tasks); diff != "" {
		t.Fatalf("unexpected tasks after delete (-want +got):\n%s", diff)
	}
	if len(prompts) != 2 || prompts[0] != DeletePrompt {
		t.Fatalf("unexpected prompts: %#v", prompts)
	}
}

func TestController_EditSaveAndCancel(t *testing.T) {
	api := newFakeAPI(taskA, taskC)
	c := NewController(api, nil)
	ctx := context.Background()
	c.Load(ctx)

	if c.StartEdit("missing") {
		t.Fatal("StartEdit should fail for unknown id")
	}
	if !c.StartEdit("a") {
		t.Fatal("StartEdit failed")
	}
	c.SetEditTitle("write summary")
	st := c.SaveEdit(ctx)
	if st.EditID != "" || st.EditTitle != "" {
		t.Fatalf("edit state not cleared: %+v", st)
	}
	if st.Tasks[0].Title != "write summary" || st.Tasks[1] != taskC {
		t.Fatalf("unexpected tasks after save: %+v", st.Tasks)
	}

	c.StartEdit("c")
	c.SetEditTitle("  ")
	st = c.SaveEdit(ctx)
	if st.EditID != "c" || api.count("update") != 1 {
		t.Fatalf("blank edit title must not be sent: %+v", st)
	}
	st = c.CancelEdit()
	if st.EditID != "" || st.Tasks[1].Title != "call mom" {
		t.Fatalf("cancel edit changed tasks or kept edit: %+v", st)
	}
}

func TestController_ToggleTwiceRestores(t *testing.T) {
	api := newFakeAPI(taskA)
	c := NewController(api, nil)
	ctx := context.Background()
	c.Load(ctx)

	st := c.Toggle(ctx, "a")
	if !st.Tasks[0].Completed {
		t.Fatalf("expected completed after first toggle: %+v", st.Tasks[0])
	}
	st = c.Toggle(ctx, "a")
	if st.Tasks[0].Completed {
		t.Fatalf("expected active after second toggle: %+v", st.Tasks[0])
	}
}

func TestController_UpdateFailureKeepsState(t *testing.T) {
	api := newFakeAPI(taskA)
	c := NewController(api, nil)
	ctx := context.Background()
	c.Load(ctx)
	api.UpdateErr = errors.New("boom")

	st := c.Toggle(ctx, "a")
	if st.Error != MsgUpdateFailed || st.Tasks[0] != taskA || st.Loading {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestController_ClearCompleted(t *testing.T) {
	d := Task{ID: "d", Title: "done too", Completed: true}
	api := newFakeAPI(taskA, taskB, d)
	c := NewController(api, nil)
	ctx := context.Background()
	c.Load(ctx)

	st := c.ClearCompleted(ctx)
	if diff := cmp.Diff([]Task{taskA}, st.Tasks); diff != "" {
		t.Fatalf("unexpected tasks (-want +got):\n%s", diff)
	}
	if st.Error != "" || st.Loading {
		t.Fatalf("unexpected state: %+v", st)
	}
	if api.count("delete") != 2 {
		t.Fatalf("expected 2 deletes, got %d", api.count("delete"))
	}

	before := api.count("list")
	c.ClearCompleted(ctx)
	if api.count("list") != before || api.count("delete") != 2 {
		t.Fatal("clear with nothing completed must not hit the API")
	}
}

func TestController_ClearCompletedPartialFailureReconciles(t *testing.T) {
	d := Task{ID: "d", Title: "stuck", Completed: true}
	api := newFakeAPI(taskA, taskB, d)
	api.DeleteErr["d"] = errors.New("locked")
	c := NewController(api, nil)
	ctx := context.Background()
	c.Load(ctx)

	st := c.ClearCompleted(ctx)
	if st.Error != MsgClearFailed {
		t.Fatalf("expected clear failure message, got %q", st.Error)
	}
	// local list matches the store: b gone, d kept
	if diff := cmp.Diff([]Task{taskA, d}, st.Tasks); diff != "" {
		t.Fatalf("local state diverged from store (-want +got):\n%s", diff)
	}
}

func TestController_ClearCompletedWithoutReconcile(t *testing.T) {
	d := Task{ID: "d", Title: "stuck", Completed: true}
	api := newFakeAPI(taskA, taskB, d)
	api.DeleteErr["d"] = errors.New("locked")
	api.ListErrAfter = 1
	c := NewController(api, nil)
	ctx := context.Background()
	c.Load(ctx)

	st := c.ClearCompleted(ctx)
	if diff := cmp.Diff([]Task{taskA, d}, st.Tasks); diff != "" {
		t.Fatalf("expected only confirmed deletes removed (-want +got):\n%s", diff)
	}
}

func TestController_ActiveCompletedSumAfterEveryTransition(t *testing.T) {
	api := newFakeAPI(taskA, taskB)
	c := NewController(api, nil)
	ctx := context.Background()

	check := func(st State) {
		t.Helper()
		s := StatsOf(st)
		if s.Active+s.Completed != s.Total {
			t.Fatalf("stats invariant broken: %+v", s)
		}
	}
	check(c.Load(ctx))
	c.SetDraft("x")
	check(c.Add(ctx))
	check(c.Toggle(ctx, "a"))
	check(c.ClearCompleted(ctx))
	check(c.SetFilter(FilterActive))
}
