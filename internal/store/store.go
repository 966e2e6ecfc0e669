package store

import (
	"context"

	"github.com/DurishettyAnirudh/memora/internal/model"
)

// TaskUpdate carries a partial set of task fields to merge into an
// existing task. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Date        *string
	StartTime   *string
	EndTime     *string
	Status      *string
	Priority    *string
}

// Empty reports whether the update changes nothing.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Date == nil &&
		u.StartTime == nil && u.EndTime == nil && u.Status == nil && u.Priority == nil
}

// Store defines the persistence interface for tasks.
//
// Conflict checking is a cooperative contract: CheckTimeConflict only
// reports overlaps, it never blocks a write. Callers that care about
// the one-active-task-per-slot invariant must check before mutating.
type Store interface {
	CreateTask(ctx context.Context, task model.Task) error
	GetAllTasks(ctx context.Context) ([]model.Task, error)
	GetTasksByDate(ctx context.Context, date string) ([]model.Task, error)
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)

	// SearchTasks matches query as a case-insensitive substring of
	// title or description.
	SearchTasks(ctx context.Context, query string) ([]model.Task, error)

	// UpdateTask merges the given fields and refreshes updated_at.
	// Returns false when no task has the given id.
	UpdateTask(ctx context.Context, id string, upd TaskUpdate) (bool, error)

	DeleteTask(ctx context.Context, id string) (bool, error)

	// DeleteTasksByDate removes every task on the date and returns the
	// number removed.
	DeleteTasksByDate(ctx context.Context, date string) (int, error)

	// DeleteAllTasks removes every task and returns the number removed.
	DeleteAllTasks(ctx context.Context) (int, error)

	// CheckTimeConflict returns all non-cancelled tasks other than
	// excludeID sharing exactly the given (date, startTime) pair.
	// Exact-match only; no interval reasoning.
	CheckTimeConflict(ctx context.Context, date, startTime, excludeID string) ([]model.Task, error)

	// FindTaskToMove returns the first task at (date, startTime). When
	// titleHint is set and several tasks share the slot, a task whose
	// title contains the hint (case-insensitive) is preferred.
	FindTaskToMove(ctx context.Context, date, startTime, titleHint string) (*model.Task, error)

	// PostponeTasksByDate rewrites the date on every task of fromDate
	// and returns the number moved. Destination conflicts are not
	// resolved; tasks are moved regardless.
	PostponeTasksByDate(ctx context.Context, fromDate, toDate string) (int, error)

	GetStats(ctx context.Context, today string) (model.TaskStats, error)
}
