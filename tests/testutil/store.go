// Package testutil provides shared helpers for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/DurishettyAnirudh/memora/internal/model"
	"github.com/DurishettyAnirudh/memora/internal/store"
)

// NewTestStore creates an in-memory SQLite store for testing.
// The store is automatically closed when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// MustCreateTask inserts a task and fails the test on error.
func MustCreateTask(t *testing.T, s *store.SQLiteStore, task model.Task) {
	t.Helper()
	if err := s.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("creating task %q: %v", task.Title, err)
	}
}

// Task builds a pending medium-priority task for tests. startTime may
// be empty for an untimed task.
func Task(title, date, startTime string) model.Task {
	task := model.Task{
		Title:    title,
		Date:     date,
		Status:   model.StatusPending,
		Priority: model.PriorityMedium,
	}
	if startTime != "" {
		task.StartTime = &startTime
	}
	return task
}

// FixedClock returns a clock frozen at noon on the given date.
func FixedClock(t *testing.T, date string) func() time.Time {
	t.Helper()
	parsed, err := time.Parse(model.DateLayout, date)
	if err != nil {
		t.Fatalf("parsing date %q: %v", date, err)
	}
	frozen := parsed.Add(12 * time.Hour)
	return func() time.Time { return frozen }
}
