package store_test

import (
	"context"
	"testing"

	"github.com/DurishettyAnirudh/memora/internal/model"
	"github.com/DurishettyAnirudh/memora/internal/store"
	"github.com/DurishettyAnirudh/memora/tests/testutil"
)

func TestCreateAndGetTask(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	task := testutil.Task("Team meeting", "2025-09-21", "15:00")
	task.Description = "Quarterly review"
	testutil.MustCreateTask(t, s, task)

	tasks, err := s.GetAllTasks(ctx)
	if err != nil {
		t.Fatalf("GetAllTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	got := tasks[0]
	if got.ID == "" {
		t.Error("expected a generated ID")
	}
	if got.Title != "Team meeting" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Description != "Quarterly review" {
		t.Errorf("description = %q", got.Description)
	}
	if got.StartTime == nil || *got.StartTime != "15:00" {
		t.Errorf("start time = %v", got.StartTime)
	}
	if got.Status != model.StatusPending {
		t.Errorf("status = %q", got.Status)
	}
	if got.Priority != model.PriorityMedium {
		t.Errorf("priority = %q", got.Priority)
	}

	byID, err := s.GetTaskByID(ctx, got.ID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if byID == nil || byID.Title != "Team meeting" {
		t.Errorf("GetTaskByID = %+v", byID)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.CreateTask(ctx, testutil.Task("", "2025-09-21", "")); err == nil {
		t.Error("expected error for empty title")
	}
	if err := s.CreateTask(ctx, testutil.Task("Gym", "not-a-date", "")); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestGetTaskByIDUnknown(t *testing.T) {
	s := testutil.NewTestStore(t)

	task, err := s.GetTaskByID(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if task != nil {
		t.Errorf("expected nil for unknown id, got %+v", task)
	}
}

func TestGetTasksByDateOrdering(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.MustCreateTask(t, s, testutil.Task("Untimed", "2025-09-21", ""))
	testutil.MustCreateTask(t, s, testutil.Task("Late", "2025-09-21", "17:00"))
	testutil.MustCreateTask(t, s, testutil.Task("Early", "2025-09-21", "09:00"))
	testutil.MustCreateTask(t, s, testutil.Task("Other day", "2025-09-22", "09:00"))

	tasks, err := s.GetTasksByDate(ctx, "2025-09-21")
	if err != nil {
		t.Fatalf("GetTasksByDate: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	want := []string{"Early", "Late", "Untimed"}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, tasks[i].Title, title)
		}
	}
}

func TestSearchTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.MustCreateTask(t, s, testutil.Task("Dentist appointment", "2025-09-21", "10:00"))
	task := testutil.Task("Errands", "2025-09-22", "")
	task.Description = "Pick up dental floss"
	testutil.MustCreateTask(t, s, task)
	testutil.MustCreateTask(t, s, testutil.Task("Gym", "2025-09-22", ""))

	results, err := s.SearchTasks(ctx, "DENT")
	if err != nil {
		t.Fatalf("SearchTasks: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
}

func TestUpdateTask(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.MustCreateTask(t, s, testutil.Task("Standup", "2025-09-21", "09:00"))
	tasks, _ := s.GetAllTasks(ctx)
	id := tasks[0].ID

	newTime := "10:30"
	ok, err := s.UpdateTask(ctx, id, store.TaskUpdate{StartTime: &newTime})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if !ok {
		t.Fatal("expected update to report success")
	}

	updated, _ := s.GetTaskByID(ctx, id)
	if updated.StartTime == nil || *updated.StartTime != "10:30" {
		t.Errorf("start time = %v", updated.StartTime)
	}

	ok, err = s.UpdateTask(ctx, "does-not-exist", store.TaskUpdate{StartTime: &newTime})
	if err != nil {
		t.Fatalf("UpdateTask unknown id: %v", err)
	}
	if ok {
		t.Error("expected update of unknown id to report false")
	}

	ok, err = s.UpdateTask(ctx, id, store.TaskUpdate{})
	if err != nil {
		t.Fatalf("empty UpdateTask: %v", err)
	}
	if ok {
		t.Error("expected empty update to report false")
	}
}

func TestDeleteTask(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.MustCreateTask(t, s, testutil.Task("Gym", "2025-09-21", ""))
	tasks, _ := s.GetAllTasks(ctx)

	ok, err := s.DeleteTask(ctx, tasks[0].ID)
	if err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to report success")
	}

	ok, err = s.DeleteTask(ctx, tasks[0].ID)
	if err != nil {
		t.Fatalf("second DeleteTask: %v", err)
	}
	if ok {
		t.Error("expected second delete to report false")
	}
}

func TestDeleteByDateAndAll(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.MustCreateTask(t, s, testutil.Task("A", "2025-09-21", "09:00"))
	testutil.MustCreateTask(t, s, testutil.Task("B", "2025-09-21", "10:00"))
	testutil.MustCreateTask(t, s, testutil.Task("C", "2025-09-22", "09:00"))

	n, err := s.DeleteTasksByDate(ctx, "2025-09-21")
	if err != nil {
		t.Fatalf("DeleteTasksByDate: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}

	n, err = s.DeleteAllTasks(ctx)
	if err != nil {
		t.Fatalf("DeleteAllTasks: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}

	remaining, _ := s.GetAllTasks(ctx)
	if len(remaining) != 0 {
		t.Errorf("expected empty store, got %d tasks", len(remaining))
	}
}

func TestCheckTimeConflict(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.MustCreateTask(t, s, testutil.Task("Meeting", "2025-09-21", "15:00"))
	cancelled := testutil.Task("Old call", "2025-09-21", "15:00")
	cancelled.Status = model.StatusCancelled
	testutil.MustCreateTask(t, s, cancelled)

	conflicts, err := s.CheckTimeConflict(ctx, "2025-09-21", "15:00", "")
	if err != nil {
		t.Fatalf("CheckTimeConflict: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].Title != "Meeting" {
		t.Errorf("conflict = %q", conflicts[0].Title)
	}

	conflicts, err = s.CheckTimeConflict(ctx, "2025-09-21", "15:00", conflicts[0].ID)
	if err != nil {
		t.Fatalf("CheckTimeConflict with exclude: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("expected no conflicts after excluding, got %d", len(conflicts))
	}

	conflicts, err = s.CheckTimeConflict(ctx, "2025-09-21", "16:00", "")
	if err != nil {
		t.Fatalf("CheckTimeConflict other slot: %v", err)
	}
	if len(conflicts) != 0 {
		t.Errorf("expected empty slot, got %d conflicts", len(conflicts))
	}
}

func TestFindTaskToMove(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.MustCreateTask(t, s, testutil.Task("Team sync", "2025-09-21", "15:00"))
	testutil.MustCreateTask(t, s, testutil.Task("Dentist", "2025-09-21", "15:00"))

	found, err := s.FindTaskToMove(ctx, "2025-09-21", "15:00", "dent")
	if err != nil {
		t.Fatalf("FindTaskToMove: %v", err)
	}
	if found == nil || found.Title != "Dentist" {
		t.Errorf("hint match = %+v", found)
	}

	found, err = s.FindTaskToMove(ctx, "2025-09-21", "08:00", "")
	if err != nil {
		t.Fatalf("FindTaskToMove empty slot: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for empty slot, got %+v", found)
	}
}

func TestPostponeTasksByDate(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.MustCreateTask(t, s, testutil.Task("A", "2025-09-21", "09:00"))
	testutil.MustCreateTask(t, s, testutil.Task("B", "2025-09-21", ""))

	n, err := s.PostponeTasksByDate(ctx, "2025-09-21", "2025-09-22")
	if err != nil {
		t.Fatalf("PostponeTasksByDate: %v", err)
	}
	if n != 2 {
		t.Errorf("moved %d, want 2", n)
	}

	moved, _ := s.GetTasksByDate(ctx, "2025-09-22")
	if len(moved) != 2 {
		t.Errorf("target date has %d tasks, want 2", len(moved))
	}
	left, _ := s.GetTasksByDate(ctx, "2025-09-21")
	if len(left) != 0 {
		t.Errorf("source date has %d tasks, want 0", len(left))
	}
}

func TestGetStats(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.MustCreateTask(t, s, testutil.Task("A", "2025-09-20", "09:00"))
	done := testutil.Task("B", "2025-09-20", "")
	done.Status = model.StatusCompleted
	testutil.MustCreateTask(t, s, done)
	testutil.MustCreateTask(t, s, testutil.Task("C", "2025-09-22", ""))

	stats, err := s.GetStats(ctx, "2025-09-20")
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Total != 3 || stats.Pending != 2 || stats.Completed != 1 || stats.Today != 2 {
		t.Errorf("stats = %+v", stats)
	}
}
