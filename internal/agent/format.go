package agent

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/DurishettyAnirudh/memora/internal/model"
)

// dateName renders a date the way a person would say it relative to now:
// today, tomorrow, the day after tomorrow, otherwise weekday and date.
func dateName(date string, now time.Time) string {
	switch date {
	case now.Format(model.DateLayout):
		return "today"
	case now.AddDate(0, 0, 1).Format(model.DateLayout):
		return "tomorrow"
	case now.AddDate(0, 0, 2).Format(model.DateLayout):
		return "the day after tomorrow"
	}

	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s, %s", t.Weekday(), t.Format("Jan 2"))
}

// taskLine renders one task as a bullet line.
func taskLine(t model.Task) string {
	var b strings.Builder
	b.WriteString("• ")
	b.WriteString(t.Title)
	if t.Timed() {
		b.WriteString(" at ")
		b.WriteString(*t.StartTime)
		if t.EndTime != nil && *t.EndTime != "" {
			b.WriteString("-")
			b.WriteString(*t.EndTime)
		}
	}
	if t.Priority == model.PriorityHigh {
		b.WriteString(" (high priority)")
	}
	if t.Status == model.StatusCompleted {
		b.WriteString(" [done]")
	}
	return b.String()
}

// taskList renders tasks one bullet per line.
func taskList(tasks []model.Task) string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = taskLine(t)
	}
	return strings.Join(lines, "\n")
}

// groupByDate buckets tasks per date and returns the dates sorted.
func groupByDate(tasks []model.Task) (map[string][]model.Task, []string) {
	groups := make(map[string][]model.Task)
	for _, t := range tasks {
		groups[t.Date] = append(groups[t.Date], t)
	}
	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return groups, dates
}

// numberedChoices renders up to max tasks as a numbered pick list.
func numberedChoices(tasks []model.Task, max int) string {
	if len(tasks) > max {
		tasks = tasks[:max]
	}
	var b strings.Builder
	for i, t := range tasks {
		fmt.Fprintf(&b, "%d. %s", i+1, t.Title)
		if t.Timed() {
			fmt.Fprintf(&b, " at %s", *t.StartTime)
		}
		fmt.Fprintf(&b, " on %s\n", t.Date)
	}
	return strings.TrimRight(b.String(), "\n")
}

// plural appends s for counts other than one.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
