// Package intent resolves free-form user utterances into structured
// scheduling operations by prompting the oracle and parsing its JSON
// reply.
package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DurishettyAnirudh/memora/internal/model"
	"github.com/DurishettyAnirudh/memora/internal/oracle"
)

var (
	// ErrOracleUnavailable wraps transport or server failures from the
	// oracle call.
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrMalformedResponse means the oracle replied but no JSON object
	// could be extracted from its output.
	ErrMalformedResponse = errors.New("malformed oracle response")

	// ErrInvalidJSON means an object was extracted but did not decode
	// into an operation.
	ErrInvalidJSON = errors.New("invalid operation JSON")
)

// Turn is one prior conversation exchange supplied as resolution context.
type Turn struct {
	Role    string
	Content string
}

const (
	// historyTurns caps how many prior turns are included in the prompt.
	historyTurns = 3
	// historyTurnLen caps the length of each included turn.
	historyTurnLen = 100
)

// Resolver turns utterances into operations.
type Resolver struct {
	oracle oracle.Oracle
	now    func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithClock overrides the time source used for date anchors.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// NewResolver creates a Resolver backed by the given oracle.
func NewResolver(o oracle.Oracle, opts ...ResolverOption) *Resolver {
	r := &Resolver{oracle: o, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve classifies the utterance into one structured operation.
// Parameters are passed through as the oracle produced them; semantic
// validation happens downstream in the executor.
func (r *Resolver) Resolve(ctx context.Context, utterance string, history []Turn) (Operation, error) {
	prompt := r.buildPrompt(utterance, history)

	raw, err := r.oracle.Invoke(ctx, prompt)
	if err != nil {
		return Operation{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	extracted, ok := ExtractObject(raw)
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrMalformedResponse, truncate(raw, 200))
	}

	op, err := parseOperation(extracted)
	if err != nil {
		return Operation{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return op, nil
}

// rawIntent is the oracle's reply shape. task_data stays raw because
// its structure depends on the action.
type rawIntent struct {
	Action    string          `json:"action"`
	Date      string          `json:"date"`
	QueryType string          `json:"query_type"`
	Query     string          `json:"query"`
	TaskID    string          `json:"task_id"`
	TaskType  string          `json:"task_type"`
	TaskData  json.RawMessage `json:"task_data"`
}

// parseOperation decodes the extracted JSON into an Operation. Per-kind
// parameter records that fail to decode are left nil rather than
// rejected; the executor reports those as invalid task data.
func parseOperation(jsonStr string) (Operation, error) {
	var raw rawIntent
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return Operation{}, fmt.Errorf("decoding operation: %w", err)
	}

	op := Operation{
		Kind:      Kind(raw.Action),
		Date:      raw.Date,
		QueryType: raw.QueryType,
		Query:     raw.Query,
		TaskID:    raw.TaskID,
		TaskType:  raw.TaskType,
	}

	switch op.Kind {
	case KindCreate:
		op.Create = parseCreate(raw.TaskData)
	case KindCreateBulk:
		var bulk BulkParams
		if json.Unmarshal(raw.TaskData, &bulk) == nil {
			op.Bulk = &bulk
		}
	case KindMove:
		var mv MoveParams
		if json.Unmarshal(raw.TaskData, &mv) == nil {
			op.Move = &mv
		}
	case KindUpdate:
		var upd UpdateParams
		if json.Unmarshal(raw.TaskData, &upd) == nil {
			op.Update = &upd
		}
	case KindContextUpdate:
		var cu ContextUpdateParams
		if json.Unmarshal(raw.TaskData, &cu) == nil {
			op.ContextUpdate = &cu
		}
	case KindReplace:
		var rp ReplaceParams
		if json.Unmarshal(raw.TaskData, &rp) == nil {
			op.Replace = &rp
		}
	case KindPostpone:
		var pp PostponeParams
		if json.Unmarshal(raw.TaskData, &pp) == nil {
			op.Postpone = &pp
		}
	}

	return op, nil
}

// parseCreate handles the two create shapes: a single task object or a
// literal list of task objects.
func parseCreate(data json.RawMessage) *CreateRequest {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var specs []TaskSpec
		if json.Unmarshal(data, &specs) != nil || len(specs) == 0 {
			return nil
		}
		return &CreateRequest{Form: CreateList, Specs: specs}
	}

	var spec TaskSpec
	if json.Unmarshal(data, &spec) != nil {
		return nil
	}
	return &CreateRequest{Form: CreateSingle, Specs: []TaskSpec{spec}}
}

// buildPrompt assembles the classification prompt: date anchors computed
// from the clock, the operation taxonomy with worked examples, recent
// conversation, and the utterance.
func (r *Resolver) buildPrompt(utterance string, history []Turn) string {
	now := r.now()
	today := now.Format(model.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(model.DateLayout)
	dayAfter := now.AddDate(0, 0, 2).Format(model.DateLayout)

	var b strings.Builder

	b.WriteString("You are a task scheduling assistant. Analyze the user's request and respond with ONLY a JSON object describing the operation.\n\n")

	b.WriteString("DATES:\n")
	fmt.Fprintf(&b, "- Today: %s (%s)\n", today, now.Weekday())
	fmt.Fprintf(&b, "- Tomorrow: %s\n", tomorrow)
	fmt.Fprintf(&b, "- Day after tomorrow: %s\n", dayAfter)
	b.WriteString("Upcoming weekdays:\n")
	for i := 1; i <= 7; i++ {
		d := now.AddDate(0, 0, i)
		fmt.Fprintf(&b, "- %s: %s\n", d.Weekday(), d.Format(model.DateLayout))
	}
	b.WriteString("\n")

	b.WriteString(`OPERATIONS:

1. CREATE a task:
{"action": "create", "task_data": {"title": "Meeting", "description": "", "date": "` + tomorrow + `", "start_time": "15:00", "end_time": null, "priority": "medium"}}
Times are 24-hour HH:MM ("3pm" is "15:00"). Omitted times are null. Priority is low, medium or high; default medium.

2. CREATE MULTIPLE listed tasks ("add gym monday and dentist tuesday"):
{"action": "create", "task_data": [{"title": "Gym", "description": "", "date": "...", "start_time": null, "end_time": null, "priority": "medium"}, {"title": "Dentist", "description": "", "date": "...", "start_time": null, "end_time": null, "priority": "medium"}]}

3. CREATE BULK by pattern ("create 5 meetings tomorrow starting at 9am, 30 minutes apart"):
{"action": "create_bulk", "task_data": {"count": 5, "title_base": "Meeting", "date": "` + tomorrow + `", "start_time": "09:00", "interval_minutes": 30}}

4. LIST all tasks ("show my tasks"):
{"action": "list"}

5. LIST tasks for a date ("what's on tomorrow"):
{"action": "list_date", "date": "` + tomorrow + `"}
If the user asks about availability or free time ("am I free tomorrow"), add "query_type": "availability_check".

6. SEARCH tasks ("find my dentist appointment"):
{"action": "search", "query": "dentist"}

7. DELETE a task ("delete the gym task"):
{"action": "delete", "query": "gym"}

8. DELETE tasks of a type on a date ("delete my meetings tomorrow"):
{"action": "delete_selective", "task_type": "meeting", "date": "` + tomorrow + `"}

9. DELETE everything on a date ("clear tomorrow"):
{"action": "delete_date", "date": "` + tomorrow + `"}

10. DELETE ALL tasks ("delete everything"):
{"action": "delete_all"}

11. MOVE a task to a new time ("move my 3pm meeting to 5pm"):
{"action": "move", "task_data": {"date": "` + today + `", "old_time": "15:00", "new_time": "17:00", "title_hint": "meeting"}}

12. UPDATE a named task's date or time ("change the dentist appointment to friday at 10am"):
{"action": "update", "task_data": {"title_hint": "dentist", "new_date": "...", "new_time": "10:00"}}

13. CONTEXT UPDATE when the task is implied by recent conversation ("actually make it 6pm"):
{"action": "context_update", "task_data": {"new_time": "18:00", "new_date": "", "context_hint": "it"}}

14. REPLACE one task with another ("replace the gym session with a doctor visit"):
{"action": "replace", "task_data": {"old_title": "gym", "new_title": "Doctor visit", "date": "", "time": ""}}

15. POSTPONE a whole day ("push everything from today to tomorrow"):
{"action": "postpone", "task_data": {"from_date": "` + today + `", "to_date": "` + tomorrow + `"}}

16. CHAT for greetings, questions and anything that is not a scheduling command:
{"action": "chat"}

`)

	if len(history) > 0 {
		b.WriteString("RECENT CONVERSATION:\n")
		start := len(history) - historyTurns
		if start < 0 {
			start = 0
		}
		for _, turn := range history[start:] {
			fmt.Fprintf(&b, "%s: %s\n", turn.Role, truncate(turn.Content, historyTurnLen))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "USER REQUEST: %s\n\n", utterance)
	b.WriteString("Respond with ONLY the JSON object, no explanation.")

	return b.String()
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
