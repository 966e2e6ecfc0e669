package agent_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DurishettyAnirudh/memora/internal/agent"
	"github.com/DurishettyAnirudh/memora/internal/intent"
	"github.com/DurishettyAnirudh/memora/internal/model"
	"github.com/DurishettyAnirudh/memora/internal/store"
	"github.com/DurishettyAnirudh/memora/tests/testutil"
)

type stubOracle struct {
	invoke func(ctx context.Context, prompt string) (string, error)
}

func (s *stubOracle) Invoke(ctx context.Context, prompt string) (string, error) {
	if s.invoke == nil {
		return "", errors.New("oracle not configured")
	}
	return s.invoke(ctx, prompt)
}

func str(s string) *string { return &s }

// newExecutor builds an executor over a fresh in-memory store with the
// clock frozen at 2025-09-20.
func newExecutor(t *testing.T) (*agent.Executor, *store.SQLiteStore) {
	t.Helper()
	s := testutil.NewTestStore(t)
	e := agent.NewExecutor(s, &stubOracle{}, nil, testutil.FixedClock(t, "2025-09-20"))
	return e, s
}

func exec(t *testing.T, e *agent.Executor, op intent.Operation) string {
	t.Helper()
	reply, err := e.Execute(context.Background(), op, "", nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	return reply
}

func createOp(spec intent.TaskSpec) intent.Operation {
	return intent.Operation{
		Kind:   intent.KindCreate,
		Create: &intent.CreateRequest{Form: intent.CreateSingle, Specs: []intent.TaskSpec{spec}},
	}
}

func TestCreateSingle(t *testing.T) {
	e, s := newExecutor(t)

	reply := exec(t, e, createOp(intent.TaskSpec{
		Title: "Meeting", Date: "2025-09-21", StartTime: str("15:00"),
	}))

	if !strings.Contains(reply, "✅ Added 'Meeting' for tomorrow at 15:00") {
		t.Errorf("reply = %q", reply)
	}

	tasks, _ := s.GetAllTasks(context.Background())
	if len(tasks) != 1 {
		t.Fatalf("expected 1 stored task, got %d", len(tasks))
	}
	if tasks[0].Status != model.StatusPending || tasks[0].Priority != model.PriorityMedium {
		t.Errorf("defaults = %s/%s", tasks[0].Status, tasks[0].Priority)
	}
}

func TestCreateConflictMenu(t *testing.T) {
	e, s := newExecutor(t)

	exec(t, e, createOp(intent.TaskSpec{Title: "Team sync", Date: "2025-09-21", StartTime: str("15:00")}))
	reply := exec(t, e, createOp(intent.TaskSpec{Title: "Dentist", Date: "2025-09-21", StartTime: str("15:00")}))

	if !strings.Contains(reply, "⚠️ Time conflict!") {
		t.Fatalf("reply = %q", reply)
	}
	if !strings.Contains(reply, "'Team sync'") {
		t.Error("conflict should name the existing task")
	}
	for _, option := range []string{
		"1. Move 'Team sync' to another time",
		"2. Pick a different time for 'Dentist'",
		"3. Replace 'Team sync' with 'Dentist'",
		"4. Cancel",
	} {
		if !strings.Contains(reply, option) {
			t.Errorf("menu missing %q", option)
		}
	}

	// The conflicting task must not be created.
	tasks, _ := s.GetAllTasks(context.Background())
	if len(tasks) != 1 {
		t.Errorf("expected 1 stored task, got %d", len(tasks))
	}
}

func TestCreateList(t *testing.T) {
	e, s := newExecutor(t)

	reply := exec(t, e, intent.Operation{
		Kind: intent.KindCreate,
		Create: &intent.CreateRequest{
			Form: intent.CreateList,
			Specs: []intent.TaskSpec{
				{Title: "Gym", Date: "2025-09-22"},
				{Title: "Dentist", Date: "2025-09-23", StartTime: str("10:00")},
			},
		},
	})

	if !strings.Contains(reply, "✅ Added 2 tasks") {
		t.Errorf("reply = %q", reply)
	}
	tasks, _ := s.GetAllTasks(context.Background())
	if len(tasks) != 2 {
		t.Errorf("expected 2 stored tasks, got %d", len(tasks))
	}
}

func TestCreateInvalidData(t *testing.T) {
	e, s := newExecutor(t)

	reply := exec(t, e, intent.Operation{Kind: intent.KindCreate})
	if !strings.Contains(reply, "couldn't read the task details") {
		t.Errorf("reply = %q", reply)
	}

	reply = exec(t, e, createOp(intent.TaskSpec{Date: "2025-09-21"}))
	if !strings.Contains(reply, "has no title") {
		t.Errorf("reply = %q", reply)
	}

	// An unusable date falls back to today.
	reply = exec(t, e, createOp(intent.TaskSpec{Title: "Gym", Date: "next week"}))
	if !strings.Contains(reply, "✅ Added 'Gym' for today") {
		t.Errorf("reply = %q", reply)
	}
	tasks, _ := s.GetTasksByDate(context.Background(), "2025-09-20")
	if len(tasks) != 1 {
		t.Errorf("expected the task on today, got %d", len(tasks))
	}
}

func TestCreateListSkipsBadEntries(t *testing.T) {
	e, s := newExecutor(t)

	reply := exec(t, e, intent.Operation{
		Kind: intent.KindCreate,
		Create: &intent.CreateRequest{
			Form: intent.CreateList,
			Specs: []intent.TaskSpec{
				{Title: "Gym", Date: "2025-09-22"},
				{Title: "", Date: "2025-09-23"},
			},
		},
	})

	if !strings.Contains(reply, "✅ Added 1 task") {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(reply, "⚠️ Skipped task 2") {
		t.Errorf("skip note missing from %q", reply)
	}

	tasks, _ := s.GetAllTasks(context.Background())
	if len(tasks) != 1 {
		t.Errorf("expected 1 stored task, got %d", len(tasks))
	}
}

func TestCreateListSkipsConflicts(t *testing.T) {
	e, s := newExecutor(t)
	ctx := context.Background()

	testutil.MustCreateTask(t, s, testutil.Task("Team sync", "2025-09-21", "09:00"))

	reply := exec(t, e, intent.Operation{
		Kind: intent.KindCreate,
		Create: &intent.CreateRequest{
			Form: intent.CreateList,
			Specs: []intent.TaskSpec{
				{Title: "Gym", Date: "2025-09-21", StartTime: str("09:00")},
				{Title: "Dentist", Date: "2025-09-21", StartTime: str("10:00")},
			},
		},
	})

	if !strings.Contains(reply, "✅ Added 1 task") {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(reply, "⚠️ Could not create 'Gym'") || !strings.Contains(reply, "'Team sync'") {
		t.Errorf("conflict note missing from %q", reply)
	}

	// The conflicting entry is skipped; the slot keeps a single task.
	occupying, _ := s.CheckTimeConflict(ctx, "2025-09-21", "09:00", "")
	if len(occupying) != 1 || occupying[0].Title != "Team sync" {
		t.Errorf("slot 09:00 = %+v", occupying)
	}
	tasks, _ := s.GetAllTasks(ctx)
	if len(tasks) != 2 {
		t.Errorf("expected 2 stored tasks, got %d", len(tasks))
	}
}

func TestCreateBulk(t *testing.T) {
	e, s := newExecutor(t)

	reply := exec(t, e, intent.Operation{
		Kind: intent.KindCreateBulk,
		Bulk: &intent.BulkParams{
			Count: 5, TitleBase: "Meeting", Date: "2025-09-21",
			StartTime: "09:00", IntervalMinutes: 30,
		},
	})

	if !strings.Contains(reply, "✅ Created 5 tasks") || !strings.Contains(reply, "from 09:00 to 11:00") {
		t.Errorf("reply = %q", reply)
	}

	tasks, _ := s.GetTasksByDate(context.Background(), "2025-09-21")
	if len(tasks) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "Meeting 1" || *tasks[0].StartTime != "09:00" {
		t.Errorf("first = %q at %s", tasks[0].Title, *tasks[0].StartTime)
	}
	if tasks[4].Title != "Meeting 5" || *tasks[4].StartTime != "11:00" {
		t.Errorf("last = %q at %s", tasks[4].Title, *tasks[4].StartTime)
	}
}

func TestCreateBulkMidnightWrap(t *testing.T) {
	e, s := newExecutor(t)

	exec(t, e, intent.Operation{
		Kind: intent.KindCreateBulk,
		Bulk: &intent.BulkParams{
			Count: 3, TitleBase: "Check", Date: "2025-09-21",
			StartTime: "23:30", IntervalMinutes: 30,
		},
	})

	tasks, _ := s.GetTasksByDate(context.Background(), "2025-09-21")
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	// Times wrap past midnight but the date does not roll over.
	var times []string
	for _, task := range tasks {
		times = append(times, *task.StartTime)
	}
	want := map[string]bool{"23:30": true, "00:00": true, "00:30": true}
	for _, tm := range times {
		if !want[tm] {
			t.Errorf("unexpected time %s in %v", tm, times)
		}
	}
}

func TestCreateBulkSkipsTakenSlots(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Existing call", "2025-09-21", "09:30"))

	reply := exec(t, e, intent.Operation{
		Kind: intent.KindCreateBulk,
		Bulk: &intent.BulkParams{
			Count: 3, TitleBase: "Meeting", Date: "2025-09-21",
			StartTime: "09:00", IntervalMinutes: 30,
		},
	})

	if !strings.Contains(reply, "✅ Created 2 tasks") {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(reply, "⚠️ Skipped 1 slot") || !strings.Contains(reply, "09:30") {
		t.Errorf("skip note missing from %q", reply)
	}

	tasks, _ := s.GetTasksByDate(context.Background(), "2025-09-21")
	if len(tasks) != 3 {
		t.Errorf("expected 3 tasks total, got %d", len(tasks))
	}
}

func TestListDateAvailability(t *testing.T) {
	e, s := newExecutor(t)
	ctx := context.Background()

	availOp := intent.Operation{
		Kind: intent.KindListDate, Date: "2025-09-21",
		QueryType: intent.QueryTypeAvailability,
	}

	reply := exec(t, e, availOp)
	if !strings.Contains(reply, "completely free") {
		t.Errorf("empty day reply = %q", reply)
	}

	testutil.MustCreateTask(t, s, testutil.Task("A", "2025-09-21", "09:00"))
	s.CreateTask(ctx, testutil.Task("B", "2025-09-21", "10:00"))
	reply = exec(t, e, availOp)
	if !strings.Contains(reply, "moderately busy") {
		t.Errorf("2-task reply = %q", reply)
	}

	s.CreateTask(ctx, testutil.Task("C", "2025-09-21", "11:00"))
	s.CreateTask(ctx, testutil.Task("D", "2025-09-21", "12:00"))
	reply = exec(t, e, availOp)
	if !strings.Contains(reply, "pretty busy") {
		t.Errorf("4-task reply = %q", reply)
	}
}

func TestSearch(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Dentist appointment", "2025-09-23", "10:00"))

	reply := exec(t, e, intent.Operation{Kind: intent.KindSearch, Query: "dentist"})
	if !strings.Contains(reply, "🔍 Found 1 task matching 'dentist'") {
		t.Errorf("reply = %q", reply)
	}

	reply = exec(t, e, intent.Operation{Kind: intent.KindSearch, Query: "nothing"})
	if !strings.Contains(reply, "No tasks found matching 'nothing'") {
		t.Errorf("reply = %q", reply)
	}
}

func TestDeleteDisambiguation(t *testing.T) {
	e, s := newExecutor(t)
	ctx := context.Background()

	testutil.MustCreateTask(t, s, testutil.Task("Gym morning", "2025-09-21", "07:00"))
	testutil.MustCreateTask(t, s, testutil.Task("Gym evening", "2025-09-21", "19:00"))

	reply := exec(t, e, intent.Operation{Kind: intent.KindDelete, Query: "gym"})
	if !strings.Contains(reply, "Which one should I delete?") {
		t.Fatalf("reply = %q", reply)
	}
	if !strings.Contains(reply, "1. Gym") || !strings.Contains(reply, "2. Gym") {
		t.Errorf("choices missing from %q", reply)
	}

	// Nothing is deleted until the user picks.
	tasks, _ := s.GetAllTasks(ctx)
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(tasks))
	}
}

func TestDeleteSingleMatch(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Gym", "2025-09-21", "07:00"))

	reply := exec(t, e, intent.Operation{Kind: intent.KindDelete, Query: "gym"})
	if !strings.Contains(reply, "🗑️ Deleted 'Gym'") {
		t.Errorf("reply = %q", reply)
	}

	tasks, _ := s.GetAllTasks(context.Background())
	if len(tasks) != 0 {
		t.Errorf("expected empty store, got %d tasks", len(tasks))
	}
}

func TestDeleteSelective(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Team meeting", "2025-09-21", "09:00"))
	testutil.MustCreateTask(t, s, testutil.Task("Client meeting", "2025-09-21", "11:00"))
	testutil.MustCreateTask(t, s, testutil.Task("Gym", "2025-09-21", "19:00"))

	reply := exec(t, e, intent.Operation{
		Kind: intent.KindDeleteSelective, Date: "2025-09-21", TaskType: "meeting",
	})
	if !strings.Contains(reply, "🗑️ Deleted 2 tasks") {
		t.Errorf("reply = %q", reply)
	}

	remaining, _ := s.GetTasksByDate(context.Background(), "2025-09-21")
	if len(remaining) != 1 || remaining[0].Title != "Gym" {
		t.Errorf("remaining = %+v", remaining)
	}
}

func TestDeleteDateSnapshot(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("A", "2025-09-21", "09:00"))
	testutil.MustCreateTask(t, s, testutil.Task("B", "2025-09-21", ""))

	reply := exec(t, e, intent.Operation{Kind: intent.KindDeleteDate, Date: "2025-09-21"})
	if !strings.Contains(reply, "🗑️ Cleared 2 tasks from tomorrow") {
		t.Errorf("reply = %q", reply)
	}
	// The snapshot names what was removed.
	if !strings.Contains(reply, "• A at 09:00") || !strings.Contains(reply, "• B") {
		t.Errorf("snapshot missing from %q", reply)
	}
}

func TestDeleteAllSummary(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("A", "2025-09-20", "09:00"))
	testutil.MustCreateTask(t, s, testutil.Task("B", "2025-09-21", ""))
	testutil.MustCreateTask(t, s, testutil.Task("C", "2025-09-21", "10:00"))

	reply := exec(t, e, intent.Operation{Kind: intent.KindDeleteAll})
	if !strings.Contains(reply, "🗑️ Deleted all 3 tasks") {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(reply, "Today: 1 task") || !strings.Contains(reply, "Tomorrow: 2 tasks") {
		t.Errorf("per-date summary missing from %q", reply)
	}

	tasks, _ := s.GetAllTasks(context.Background())
	if len(tasks) != 0 {
		t.Errorf("expected empty store, got %d tasks", len(tasks))
	}
}

func TestMove(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Team sync", "2025-09-20", "15:00"))

	reply := exec(t, e, intent.Operation{
		Kind: intent.KindMove,
		Move: &intent.MoveParams{Date: "2025-09-20", OldTime: "15:00", NewTime: "17:00"},
	})
	if !strings.Contains(reply, "✅ Moved 'Team sync' from 15:00 to 17:00") {
		t.Errorf("reply = %q", reply)
	}

	tasks, _ := s.GetTasksByDate(context.Background(), "2025-09-20")
	if *tasks[0].StartTime != "17:00" {
		t.Errorf("start time = %s", *tasks[0].StartTime)
	}
}

func TestMoveConflictMenu(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Team sync", "2025-09-20", "15:00"))
	testutil.MustCreateTask(t, s, testutil.Task("Dentist", "2025-09-20", "17:00"))

	reply := exec(t, e, intent.Operation{
		Kind: intent.KindMove,
		Move: &intent.MoveParams{Date: "2025-09-20", OldTime: "15:00", NewTime: "17:00"},
	})
	if !strings.Contains(reply, "would clash with 'Dentist'") {
		t.Fatalf("reply = %q", reply)
	}
	if !strings.Contains(reply, "3. Cancel") {
		t.Errorf("menu missing from %q", reply)
	}

	// The move does not happen while the menu is pending.
	tasks, _ := s.GetTasksByDate(context.Background(), "2025-09-20")
	for _, task := range tasks {
		if task.Title == "Team sync" && *task.StartTime != "15:00" {
			t.Errorf("task moved despite conflict")
		}
	}
}

func TestMoveNotFound(t *testing.T) {
	e, _ := newExecutor(t)

	reply := exec(t, e, intent.Operation{
		Kind: intent.KindMove,
		Move: &intent.MoveParams{Date: "2025-09-20", OldTime: "08:00", NewTime: "09:00"},
	})
	if !strings.Contains(reply, "❌ No task found at 08:00") {
		t.Errorf("reply = %q", reply)
	}
}

func TestMoveByTitleHint(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Dentist", "2025-09-23", "10:00"))

	// No current time given; the task is found by name instead.
	reply := exec(t, e, intent.Operation{
		Kind: intent.KindMove,
		Move: &intent.MoveParams{NewTime: "14:00", TitleHint: "dentist"},
	})
	if !strings.Contains(reply, "✅ Moved 'Dentist' from 10:00 to 14:00") {
		t.Errorf("reply = %q", reply)
	}

	tasks, _ := s.GetTasksByDate(context.Background(), "2025-09-23")
	if *tasks[0].StartTime != "14:00" {
		t.Errorf("start time = %s", *tasks[0].StartTime)
	}
}

func TestUpdateByHint(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Dentist", "2025-09-21", "10:00"))

	reply := exec(t, e, intent.Operation{
		Kind:   intent.KindUpdate,
		Update: &intent.UpdateParams{TitleHint: "dentist", NewDate: "2025-09-26", NewTime: "14:00"},
	})
	if !strings.Contains(reply, "✅ Updated 'Dentist'") || !strings.Contains(reply, "14:00") {
		t.Errorf("reply = %q", reply)
	}

	tasks, _ := s.GetTasksByDate(context.Background(), "2025-09-26")
	if len(tasks) != 1 || *tasks[0].StartTime != "14:00" {
		t.Errorf("tasks on new date = %+v", tasks)
	}
}

func TestContextUpdate(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Dentist", "2025-09-21", "10:00"))

	history := []agent.Message{
		{Role: agent.RoleUser, Content: "add dentist tomorrow at 10am"},
		{Role: agent.RoleAssistant, Content: "✅ Added 'Dentist' for tomorrow at 10:00."},
	}

	reply, err := e.Execute(context.Background(), intent.Operation{
		Kind:          intent.KindContextUpdate,
		ContextUpdate: &intent.ContextUpdateParams{NewTime: "18:00", ContextHint: "it"},
	}, "actually make it 6pm", history)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(reply, "✅ Updated 'Dentist'") {
		t.Errorf("reply = %q", reply)
	}

	tasks, _ := s.GetTasksByDate(context.Background(), "2025-09-21")
	if *tasks[0].StartTime != "18:00" {
		t.Errorf("start time = %s", *tasks[0].StartTime)
	}
}

func TestContextUpdateNoReference(t *testing.T) {
	e, _ := newExecutor(t)

	reply, err := e.Execute(context.Background(), intent.Operation{
		Kind:          intent.KindContextUpdate,
		ContextUpdate: &intent.ContextUpdateParams{NewTime: "18:00"},
	}, "make it 6pm", nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(reply, "not sure which task you mean") {
		t.Errorf("reply = %q", reply)
	}
}

func TestReplace(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Gym", "2025-09-21", "19:00"))

	reply := exec(t, e, intent.Operation{
		Kind:    intent.KindReplace,
		Replace: &intent.ReplaceParams{OldTitle: "gym", NewTitle: "Doctor visit"},
	})
	if !strings.Contains(reply, "🔄 Replaced 'Gym' with 'Doctor visit'") {
		t.Errorf("reply = %q", reply)
	}

	tasks, _ := s.GetTasksByDate(context.Background(), "2025-09-21")
	if tasks[0].Title != "Doctor visit" {
		t.Errorf("title = %q", tasks[0].Title)
	}
}

func TestPostponeWarnsButMoves(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Standup", "2025-09-20", "09:00"))
	testutil.MustCreateTask(t, s, testutil.Task("Review", "2025-09-21", "09:00"))

	reply := exec(t, e, intent.Operation{
		Kind:     intent.KindPostpone,
		Postpone: &intent.PostponeParams{FromDate: "2025-09-20", ToDate: "2025-09-21"},
	})
	if !strings.Contains(reply, "📅 Moved 1 task from today to tomorrow") {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(reply, "⚠️ Heads up") || !strings.Contains(reply, "'Standup' and 'Review' at 09:00") {
		t.Errorf("overlap warning missing from %q", reply)
	}

	// The overlap is reported but never blocks the move.
	left, _ := s.GetTasksByDate(context.Background(), "2025-09-20")
	if len(left) != 0 {
		t.Errorf("source date still has %d tasks", len(left))
	}
	target, _ := s.GetTasksByDate(context.Background(), "2025-09-21")
	if len(target) != 2 {
		t.Errorf("target date has %d tasks, want 2", len(target))
	}
}

func TestDefaultShowsToday(t *testing.T) {
	e, s := newExecutor(t)

	testutil.MustCreateTask(t, s, testutil.Task("Standup", "2025-09-20", "09:00"))

	reply := exec(t, e, intent.Operation{Kind: intent.Kind("bogus")})
	if !strings.Contains(reply, "wasn't sure what you meant") || !strings.Contains(reply, "Standup") {
		t.Errorf("reply = %q", reply)
	}
}

func TestChatFallback(t *testing.T) {
	s := testutil.NewTestStore(t)
	o := &stubOracle{invoke: func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("connection refused")
	}}
	e := agent.NewExecutor(s, o, nil, testutil.FixedClock(t, "2025-09-20"))

	reply, err := e.Execute(context.Background(),
		intent.Operation{Kind: intent.KindChat}, "hello there", nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(reply, "👋") {
		t.Errorf("reply = %q", reply)
	}

	reply, _ = e.Execute(context.Background(),
		intent.Operation{Kind: intent.KindChat}, "what can you do?", nil)
	if !strings.Contains(reply, "create, list, search") {
		t.Errorf("reply = %q", reply)
	}
}

func TestChatUsesOracle(t *testing.T) {
	s := testutil.NewTestStore(t)
	o := &stubOracle{invoke: func(ctx context.Context, prompt string) (string, error) {
		if !strings.Contains(prompt, "User: how are you?") {
			t.Errorf("prompt missing utterance: %q", prompt)
		}
		return "Doing great, thanks for asking!", nil
	}}
	e := agent.NewExecutor(s, o, nil, testutil.FixedClock(t, "2025-09-20"))

	reply, err := e.Execute(context.Background(),
		intent.Operation{Kind: intent.KindChat}, "how are you?", nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if reply != "Doing great, thanks for asking!" {
		t.Errorf("reply = %q", reply)
	}
}
