package model

import "time"

// Task status constants.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Task priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Field length limits enforced at creation time.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

// DateLayout is the calendar date format used throughout (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// TimeLayout is the time-of-day format used throughout (HH:MM).
const TimeLayout = "15:04"

// Task is a single schedulable unit.
type Task struct {
	// ID is the internal unique identifier, assigned at creation.
	ID string `json:"id" db:"id"`

	// Title is the human-readable summary (non-empty, at most 200 chars).
	Title string `json:"title" db:"title"`

	// Description is optional free text (at most 1000 chars).
	Description string `json:"description" db:"description"`

	// Date is the calendar date in YYYY-MM-DD format.
	Date string `json:"date" db:"date"`

	// StartTime and EndTime are optional times of day in HH:MM format.
	// They are independent; a task may be untimed.
	StartTime *string `json:"start_time,omitempty" db:"start_time"`
	EndTime   *string `json:"end_time,omitempty" db:"end_time"`

	// Status is one of the Status* constants.
	Status string `json:"status" db:"status"`

	// Priority is one of the Priority* constants.
	Priority string `json:"priority" db:"priority"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Timed reports whether the task claims a specific start time.
func (t Task) Timed() bool {
	return t.StartTime != nil && *t.StartTime != ""
}

// ValidDate reports whether s parses as a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime reports whether s parses as an HH:MM time of day.
func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// ValidStatus reports whether s is a known task status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusCancelled
}

// ValidPriority reports whether s is a known task priority.
func ValidPriority(s string) bool {
	return s == PriorityLow || s == PriorityMedium || s == PriorityHigh
}

// TaskStats summarizes tasks by status plus today's count.
type TaskStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Today     int `json:"today"`
}
