package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DurishettyAnirudh/memora/internal/model"
)

// taskOrder keeps per-date listings stable: timed tasks first in time
// order, untimed tasks after in creation order.
const taskOrder = " ORDER BY date, start_time IS NULL, start_time, created_at"

// CreateTask inserts a new task. Generates a UUID if ID is empty and
// fills status/priority defaults.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if !model.ValidDate(task.Date) {
		return fmt.Errorf("task date %q is not a valid YYYY-MM-DD date", task.Date)
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Status == "" {
		task.Status = model.StatusPending
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, title, description, date, start_time, end_time,
			status, priority, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, task.Date,
		task.StartTime, task.EndTime,
		task.Status, task.Priority, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

// GetAllTasks retrieves every task ordered by date and time.
func (s *SQLiteStore) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	return s.queryTasks(ctx, "SELECT * FROM tasks"+taskOrder)
}

// GetTasksByDate retrieves the tasks on a single date, timed first.
func (s *SQLiteStore) GetTasksByDate(ctx context.Context, date string) ([]model.Task, error) {
	return s.queryTasks(ctx, "SELECT * FROM tasks WHERE date = ?"+taskOrder, date)
}

// GetTaskByID retrieves a single task, or nil when the id is unknown.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM tasks WHERE id = ?", id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return &task, nil
}

// SearchTasks matches query as a case-insensitive substring of title
// or description.
func (s *SQLiteStore) SearchTasks(ctx context.Context, query string) ([]model.Task, error) {
	q := "%" + strings.ToLower(query) + "%"
	return s.queryTasks(ctx,
		"SELECT * FROM tasks WHERE LOWER(title) LIKE ? OR LOWER(description) LIKE ?"+taskOrder,
		q, q,
	)
}

// UpdateTask merges the non-nil fields of upd into the task and
// refreshes updated_at. Returns false when the id does not exist.
func (s *SQLiteStore) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (bool, error) {
	var sets []string
	var args []interface{}

	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *upd.Date)
	}
	if upd.StartTime != nil {
		sets = append(sets, "start_time = ?")
		args = append(args, *upd.StartTime)
	}
	if upd.EndTime != nil {
		sets = append(sets, "end_time = ?")
		args = append(args, *upd.EndTime)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *upd.Priority)
	}
	if len(sets) == 0 {
		return false, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("updating task %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteTask removes a task by ID. Returns false when the id does not exist.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteTasksByDate removes every task on the date and returns the
// number removed.
func (s *SQLiteStore) DeleteTasksByDate(ctx context.Context, date string) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE date = ?", date)
	if err != nil {
		return 0, fmt.Errorf("deleting tasks on %s: %w", date, err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// DeleteAllTasks removes every task and returns the number removed.
func (s *SQLiteStore) DeleteAllTasks(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks")
	if err != nil {
		return 0, fmt.Errorf("deleting all tasks: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// CheckTimeConflict returns all non-cancelled tasks other than
// excludeID with exactly the given (date, startTime).
func (s *SQLiteStore) CheckTimeConflict(
	ctx context.Context,
	date, startTime, excludeID string,
) ([]model.Task, error) {
	query := "SELECT * FROM tasks WHERE date = ? AND start_time = ? AND status != 'cancelled'"
	args := []interface{}{date, startTime}

	if excludeID != "" {
		query += " AND id != ?"
		args = append(args, excludeID)
	}

	return s.queryTasks(ctx, query+taskOrder, args...)
}

// FindTaskToMove returns the first task at (date, startTime), preferring
// a title-hint substring match when several tasks share the slot.
func (s *SQLiteStore) FindTaskToMove(
	ctx context.Context,
	date, startTime, titleHint string,
) (*model.Task, error) {
	matches, err := s.queryTasks(ctx,
		"SELECT * FROM tasks WHERE date = ? AND start_time = ?"+taskOrder,
		date, startTime,
	)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	if titleHint != "" {
		hint := strings.ToLower(titleHint)
		for i := range matches {
			if strings.Contains(strings.ToLower(matches[i].Title), hint) {
				return &matches[i], nil
			}
		}
	}

	return &matches[0], nil
}

// PostponeTasksByDate rewrites the date on every task of fromDate and
// returns the number moved. Conflicts on the target date are not
// resolved here; callers report them.
func (s *SQLiteStore) PostponeTasksByDate(ctx context.Context, fromDate, toDate string) (int, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET date = ?, updated_at = ? WHERE date = ?",
		toDate, time.Now().UTC(), fromDate,
	)
	if err != nil {
		return 0, fmt.Errorf("postponing tasks from %s to %s: %w", fromDate, toDate, err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// GetStats returns task counts by status plus the count for today.
func (s *SQLiteStore) GetStats(ctx context.Context, today string) (model.TaskStats, error) {
	var stats model.TaskStats

	err := s.db.QueryRowxContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(status = 'pending'), 0),
			COALESCE(SUM(status = 'completed'), 0),
			COALESCE(SUM(status = 'cancelled'), 0),
			COALESCE(SUM(date = ?), 0)
		FROM tasks`, today,
	).Scan(&stats.Total, &stats.Pending, &stats.Completed, &stats.Cancelled, &stats.Today)
	if err != nil {
		return model.TaskStats{}, fmt.Errorf("reading task stats: %w", err)
	}

	return stats, nil
}

// queryTasks runs a task query and scans all rows.
func (s *SQLiteStore) queryTasks(
	ctx context.Context,
	query string,
	args ...interface{},
) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// scanTask scans a task row from sqlx.Rows or sqlx.Row.
func scanTask(row interface{ Scan(dest ...interface{}) error }) (model.Task, error) {
	var (
		task      model.Task
		startTime *string
		endTime   *string
	)

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Date,
		&startTime, &endTime,
		&task.Status, &task.Priority, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, err
		}
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.StartTime = startTime
	task.EndTime = endTime
	return task, nil
}
