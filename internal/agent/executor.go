package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DurishettyAnirudh/memora/internal/intent"
	"github.com/DurishettyAnirudh/memora/internal/model"
	"github.com/DurishettyAnirudh/memora/internal/oracle"
	"github.com/DurishettyAnirudh/memora/internal/store"
)

// Disambiguation caps: how many candidates are shown when a reference
// matches several tasks.
const (
	maxDeleteChoices = 5
	maxUpdateChoices = 5
	maxMoveChoices   = 3
)

// contextWindow is how many recent messages are scanned when a task is
// referenced only by conversational context ("actually make it 6pm").
const contextWindow = 5

// Executor applies resolved operations against the task store and
// renders the user-facing reply for each.
type Executor struct {
	store  store.Store
	oracle oracle.Oracle
	docs   DocSearcher
	now    func() time.Time
}

// DocSearcher is the slice of the document index the executor needs for
// chat replies. May be nil when no index is configured.
type DocSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]DocHit, error)
}

// DocHit is one retrieved document snippet.
type DocHit struct {
	Title   string
	Snippet string
	Score   float64
}

// NewExecutor creates an Executor. docs may be nil.
func NewExecutor(s store.Store, o oracle.Oracle, docs DocSearcher, now func() time.Time) *Executor {
	if now == nil {
		now = time.Now
	}
	return &Executor{store: s, oracle: o, docs: docs, now: now}
}

// Execute runs one operation and returns the reply text. Errors are
// reserved for store or infrastructure failures; user mistakes come
// back as reply text.
func (e *Executor) Execute(
	ctx context.Context,
	op intent.Operation,
	utterance string,
	history []Message,
) (string, error) {
	switch op.Kind {
	case intent.KindCreate:
		return e.handleCreate(ctx, op.Create)
	case intent.KindCreateBulk:
		return e.handleCreateBulk(ctx, op.Bulk)
	case intent.KindList:
		return e.handleList(ctx)
	case intent.KindListDate:
		return e.handleListDate(ctx, op.Date, op.QueryType)
	case intent.KindSearch:
		return e.handleSearch(ctx, op.Query)
	case intent.KindDelete:
		return e.handleDelete(ctx, op.TaskID, op.Query)
	case intent.KindDeleteSelective:
		return e.handleDeleteSelective(ctx, op.Date, op.TaskType)
	case intent.KindDeleteDate:
		return e.handleDeleteDate(ctx, op.Date)
	case intent.KindDeleteAll:
		return e.handleDeleteAll(ctx)
	case intent.KindMove:
		return e.handleMove(ctx, op.Move)
	case intent.KindUpdate:
		return e.handleUpdate(ctx, op.Update)
	case intent.KindContextUpdate:
		return e.handleContextUpdate(ctx, op.ContextUpdate, history)
	case intent.KindReplace:
		return e.handleReplace(ctx, op.Replace)
	case intent.KindPostpone:
		return e.handlePostpone(ctx, op.Postpone)
	case intent.KindChat:
		return e.handleChat(ctx, utterance, history)
	default:
		return e.handleDefault(ctx)
	}
}

// specToTask validates and normalizes one oracle-produced task record.
// An unusable date falls back to today; a missing title or garbled time
// has no safe default and comes back as a user-facing problem
// description in the second return.
func specToTask(spec intent.TaskSpec, today string) (model.Task, string) {
	title := strings.TrimSpace(spec.Title)
	if title == "" {
		return model.Task{}, "the task has no title"
	}
	if len(title) > model.MaxTitleLen {
		title = title[:model.MaxTitleLen]
	}

	desc := spec.Description
	if len(desc) > model.MaxDescriptionLen {
		desc = desc[:model.MaxDescriptionLen]
	}

	if !model.ValidDate(spec.Date) {
		spec.Date = today
	}

	start := normalizeTime(spec.StartTime)
	if start == nil && spec.StartTime != nil && strings.TrimSpace(*spec.StartTime) != "" {
		return model.Task{}, fmt.Sprintf("%q is not a time I can work with", *spec.StartTime)
	}
	end := normalizeTime(spec.EndTime)

	priority := strings.ToLower(strings.TrimSpace(spec.Priority))
	if !model.ValidPriority(priority) {
		priority = model.PriorityMedium
	}

	return model.Task{
		Title:       title,
		Description: desc,
		Date:        spec.Date,
		StartTime:   start,
		EndTime:     end,
		Status:      model.StatusPending,
		Priority:    priority,
	}, ""
}

// normalizeTime returns a valid HH:MM pointer or nil.
func normalizeTime(t *string) *string {
	if t == nil {
		return nil
	}
	v := strings.TrimSpace(*t)
	if !model.ValidTime(v) {
		return nil
	}
	return &v
}

func (e *Executor) handleCreate(ctx context.Context, req *intent.CreateRequest) (string, error) {
	if req == nil || len(req.Specs) == 0 {
		return "❌ I couldn't read the task details. Could you rephrase that?", nil
	}

	today := e.now().Format(model.DateLayout)

	if req.Form == intent.CreateSingle {
		task, problem := specToTask(req.Specs[0], today)
		if problem != "" {
			return fmt.Sprintf("❌ %s.", capFirst(problem)), nil
		}
		return e.createSingle(ctx, task)
	}

	// Unusable list entries are skipped with a note; the rest proceed.
	var tasks []model.Task
	var notes []string
	for i, spec := range req.Specs {
		task, problem := specToTask(spec, today)
		if problem != "" {
			notes = append(notes, fmt.Sprintf("⚠️ Skipped task %d: %s.", i+1, problem))
			continue
		}
		tasks = append(tasks, task)
	}
	if len(tasks) == 0 {
		return "❌ I couldn't read any of the task details. Could you rephrase that?", nil
	}
	return e.createList(ctx, tasks, notes)
}

// createSingle creates one task, stopping with an options menu when its
// slot is already taken.
func (e *Executor) createSingle(ctx context.Context, task model.Task) (string, error) {
	if task.Timed() {
		conflicts, err := e.store.CheckTimeConflict(ctx, task.Date, *task.StartTime, "")
		if err != nil {
			return "", err
		}
		if len(conflicts) > 0 {
			existing := conflicts[0]
			return fmt.Sprintf(
				"⚠️ Time conflict! You already have '%s' scheduled %s at %s.\n\n"+
					"What would you like to do?\n"+
					"1. Move '%s' to another time\n"+
					"2. Pick a different time for '%s'\n"+
					"3. Replace '%s' with '%s'\n"+
					"4. Cancel",
				existing.Title, dateName(task.Date, e.now()), *task.StartTime,
				existing.Title, task.Title,
				existing.Title, task.Title,
			), nil
		}
	}

	if err := e.store.CreateTask(ctx, task); err != nil {
		return "", err
	}

	if task.Timed() {
		return fmt.Sprintf("✅ Added '%s' for %s at %s.",
			task.Title, dateName(task.Date, e.now()), *task.StartTime), nil
	}
	return fmt.Sprintf("✅ Added '%s' for %s.",
		task.Title, dateName(task.Date, e.now())), nil
}

// createList creates the listed tasks one by one. Entries whose slot is
// already taken are skipped, not created; the rest still go through.
func (e *Executor) createList(ctx context.Context, tasks []model.Task, notes []string) (string, error) {
	var created []model.Task
	for _, task := range tasks {
		if task.Timed() {
			conflicts, err := e.store.CheckTimeConflict(ctx, task.Date, *task.StartTime, "")
			if err != nil {
				return "", err
			}
			if len(conflicts) > 0 {
				notes = append(notes, fmt.Sprintf(
					"⚠️ Could not create '%s': %s at %s is already taken by '%s'.",
					task.Title, dateName(task.Date, e.now()),
					*task.StartTime, conflicts[0].Title,
				))
				continue
			}
		}
		if err := e.store.CreateTask(ctx, task); err != nil {
			return "", err
		}
		created = append(created, task)
	}

	var b strings.Builder
	if len(created) > 0 {
		fmt.Fprintf(&b, "✅ Added %s:\n", plural(len(created), "task"))
		for _, t := range created {
			b.WriteString(taskLine(t))
			b.WriteString(" on ")
			b.WriteString(dateName(t.Date, e.now()))
			b.WriteString("\n")
		}
	}
	for _, note := range notes {
		b.WriteString(note)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (e *Executor) handleCreateBulk(ctx context.Context, params *intent.BulkParams) (string, error) {
	if params == nil {
		return "❌ I couldn't read the bulk creation details. Could you rephrase that?", nil
	}
	if params.Count < 1 {
		return "❌ I need to know how many tasks to create.", nil
	}
	if strings.TrimSpace(params.TitleBase) == "" {
		return "❌ I need a name for the tasks.", nil
	}
	if !model.ValidDate(params.Date) {
		params.Date = e.now().Format(model.DateLayout)
	}
	if !model.ValidTime(params.StartTime) {
		return fmt.Sprintf("❌ %q is not a time I can work with.", params.StartTime), nil
	}

	interval := params.IntervalMinutes
	if interval <= 0 {
		interval = 30
	}

	startMinutes := timeToMinutes(params.StartTime)
	created := 0
	var lastTime string
	var skipped []string
	for i := 0; i < params.Count; i++ {
		minutes := (startMinutes + i*interval) % (24 * 60)
		slot := minutesToTime(minutes)

		// Occupied slots are skipped, not retried at another time.
		conflicts, err := e.store.CheckTimeConflict(ctx, params.Date, slot, "")
		if err != nil {
			return "", err
		}
		if len(conflicts) > 0 {
			skipped = append(skipped, fmt.Sprintf("%s ('%s')", slot, conflicts[0].Title))
			continue
		}

		title := params.TitleBase
		if params.Count > 1 {
			title = fmt.Sprintf("%s %d", params.TitleBase, i+1)
		}

		task := model.Task{
			Title:     title,
			Date:      params.Date,
			StartTime: &slot,
			Status:    model.StatusPending,
			Priority:  model.PriorityMedium,
		}
		if err := e.store.CreateTask(ctx, task); err != nil {
			return "", err
		}
		created++
		lastTime = slot
	}

	if created == 0 {
		return fmt.Sprintf("⚠️ Every slot was already taken %s; nothing was created.",
			dateName(params.Date, e.now())), nil
	}

	reply := fmt.Sprintf("✅ Created %s for %s, from %s to %s every %d minutes.",
		plural(created, "task"), dateName(params.Date, e.now()),
		params.StartTime, lastTime, interval)
	if len(skipped) > 0 {
		reply += fmt.Sprintf("\n⚠️ Skipped %s already taken: %s.",
			plural(len(skipped), "slot"), strings.Join(skipped, ", "))
	}
	return reply, nil
}

func (e *Executor) handleList(ctx context.Context) (string, error) {
	tasks, err := e.store.GetAllTasks(ctx)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return "📝 You have no tasks yet. Try 'add a meeting tomorrow at 3pm' to create one.", nil
	}

	today := e.now().Format(model.DateLayout)
	stats, err := e.store.GetStats(ctx, today)
	if err != nil {
		return "", err
	}

	groups, dates := groupByDate(tasks)
	var b strings.Builder
	fmt.Fprintf(&b, "📋 You have %s:\n", plural(len(tasks), "task"))
	for _, d := range dates {
		fmt.Fprintf(&b, "\n📅 %s (%s):\n%s\n", capFirst(dateName(d, e.now())), d, taskList(groups[d]))
	}
	fmt.Fprintf(&b, "\nPending: %d | Completed: %d | Today: %d",
		stats.Pending, stats.Completed, stats.Today)
	return b.String(), nil
}

func (e *Executor) handleListDate(ctx context.Context, date, queryType string) (string, error) {
	if !model.ValidDate(date) {
		date = e.now().Format(model.DateLayout)
	}

	tasks, err := e.store.GetTasksByDate(ctx, date)
	if err != nil {
		return "", err
	}

	name := dateName(date, e.now())

	if queryType == intent.QueryTypeAvailability {
		switch {
		case len(tasks) == 0:
			return fmt.Sprintf("✅ You're completely free %s!", name), nil
		case len(tasks) >= 4:
			return fmt.Sprintf("⚠️ %s is pretty busy with %s:\n%s",
				capFirst(name), plural(len(tasks), "task"), taskList(tasks)), nil
		case len(tasks) >= 2:
			return fmt.Sprintf("📅 %s is moderately busy with %s:\n%s",
				capFirst(name), plural(len(tasks), "task"), taskList(tasks)), nil
		default:
			return fmt.Sprintf("✅ %s looks light, just %s:\n%s",
				capFirst(name), plural(len(tasks), "task"), taskList(tasks)), nil
		}
	}

	if len(tasks) == 0 {
		return fmt.Sprintf("📅 Nothing scheduled for %s.", name), nil
	}
	return fmt.Sprintf("📅 Tasks for %s (%s):\n%s", name, date, taskList(tasks)), nil
}

func (e *Executor) handleSearch(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "🔍 What should I search for?", nil
	}

	results, err := e.store.SearchTasks(ctx, query)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return fmt.Sprintf("🔍 No tasks found matching '%s'.", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Found %s matching '%s':\n", plural(len(results), "task"), query)
	for _, t := range results {
		b.WriteString(taskLine(t))
		b.WriteString(" on ")
		b.WriteString(dateName(t.Date, e.now()))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (e *Executor) handleDelete(ctx context.Context, taskID, query string) (string, error) {
	if taskID != "" {
		task, err := e.store.GetTaskByID(ctx, taskID)
		if err != nil {
			return "", err
		}
		if task == nil {
			return "❌ I couldn't find that task.", nil
		}
		if _, err := e.store.DeleteTask(ctx, taskID); err != nil {
			return "", err
		}
		return fmt.Sprintf("🗑️ Deleted '%s'.", task.Title), nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "❌ Which task should I delete?", nil
	}

	matches, err := e.store.SearchTasks(ctx, query)
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return fmt.Sprintf("❌ No tasks found matching '%s'.", query), nil
	case 1:
		if _, err := e.store.DeleteTask(ctx, matches[0].ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("🗑️ Deleted '%s' (was %s).",
			matches[0].Title, dateName(matches[0].Date, e.now())), nil
	default:
		return fmt.Sprintf(
			"I found %s matching '%s'. Which one should I delete?\n%s\n"+
				"Reply with a more specific name.",
			plural(len(matches), "task"), query,
			numberedChoices(matches, maxDeleteChoices),
		), nil
	}
}

func (e *Executor) handleDeleteSelective(ctx context.Context, date, taskType string) (string, error) {
	taskType = strings.TrimSpace(taskType)
	if taskType == "" {
		return "❌ Which kind of task should I delete?", nil
	}
	if !model.ValidDate(date) {
		return "❌ I couldn't work out which date you meant.", nil
	}

	tasks, err := e.store.GetTasksByDate(ctx, date)
	if err != nil {
		return "", err
	}

	needle := strings.ToLower(taskType)
	var deleted []model.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			if _, err := e.store.DeleteTask(ctx, t.ID); err != nil {
				return "", err
			}
			deleted = append(deleted, t)
		}
	}

	name := dateName(date, e.now())
	if len(deleted) == 0 {
		return fmt.Sprintf("❌ No '%s' tasks found %s.", taskType, name), nil
	}
	return fmt.Sprintf("🗑️ Deleted %s %s:\n%s",
		plural(len(deleted), "task"), name, taskList(deleted)), nil
}

func (e *Executor) handleDeleteDate(ctx context.Context, date string) (string, error) {
	if !model.ValidDate(date) {
		return "❌ I couldn't work out which date you meant.", nil
	}

	// Snapshot before deleting so the reply can say what went away.
	snapshot, err := e.store.GetTasksByDate(ctx, date)
	if err != nil {
		return "", err
	}
	name := dateName(date, e.now())
	if len(snapshot) == 0 {
		return fmt.Sprintf("📅 Nothing scheduled %s to delete.", name), nil
	}

	if _, err := e.store.DeleteTasksByDate(ctx, date); err != nil {
		return "", err
	}
	return fmt.Sprintf("🗑️ Cleared %s from %s:\n%s",
		plural(len(snapshot), "task"), name, taskList(snapshot)), nil
}

func (e *Executor) handleDeleteAll(ctx context.Context) (string, error) {
	snapshot, err := e.store.GetAllTasks(ctx)
	if err != nil {
		return "", err
	}
	if len(snapshot) == 0 {
		return "📝 Your schedule is already empty.", nil
	}

	if _, err := e.store.DeleteAllTasks(ctx); err != nil {
		return "", err
	}

	groups, dates := groupByDate(snapshot)
	var b strings.Builder
	fmt.Fprintf(&b, "🗑️ Deleted all %s:\n", plural(len(snapshot), "task"))
	for _, d := range dates {
		fmt.Fprintf(&b, "• %s: %s\n", capFirst(dateName(d, e.now())), plural(len(groups[d]), "task"))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (e *Executor) handleMove(ctx context.Context, params *intent.MoveParams) (string, error) {
	if params == nil || !model.ValidTime(params.NewTime) {
		return "❌ I need the new time to move the task to.", nil
	}
	hint := strings.TrimSpace(params.TitleHint)
	hasOldTime := model.ValidTime(params.OldTime)
	if !hasOldTime && hint == "" {
		return "❌ I need the task's current time or its name to move it.", nil
	}
	if !model.ValidDate(params.Date) {
		params.Date = e.now().Format(model.DateLayout)
	}
	name := dateName(params.Date, e.now())

	// The target is resolved by slot when the current time is known,
	// otherwise by title search.
	var candidates []model.Task
	if hasOldTime {
		tasks, err := e.store.GetTasksByDate(ctx, params.Date)
		if err != nil {
			return "", err
		}
		for _, t := range tasks {
			if t.Status != model.StatusCancelled && t.Timed() && *t.StartTime == params.OldTime {
				candidates = append(candidates, t)
			}
		}
		if len(candidates) == 0 {
			return fmt.Sprintf("❌ No task found at %s %s.", params.OldTime, name), nil
		}
		if hint != "" {
			var narrowed []model.Task
			for _, t := range candidates {
				if strings.Contains(strings.ToLower(t.Title), strings.ToLower(hint)) {
					narrowed = append(narrowed, t)
				}
			}
			if len(narrowed) > 0 {
				candidates = narrowed
			}
		}
	} else {
		matches, err := e.store.SearchTasks(ctx, hint)
		if err != nil {
			return "", err
		}
		if len(matches) == 0 {
			return fmt.Sprintf("❌ No tasks found matching '%s'.", hint), nil
		}
		candidates = matches
	}

	if len(candidates) > 1 {
		return fmt.Sprintf(
			"I found %s. Which one should I move?\n%s",
			plural(len(candidates), "task"),
			numberedChoices(candidates, maxMoveChoices),
		), nil
	}

	task := candidates[0]
	conflicts, err := e.store.CheckTimeConflict(ctx, task.Date, params.NewTime, task.ID)
	if err != nil {
		return "", err
	}
	if len(conflicts) > 0 {
		return fmt.Sprintf(
			"⚠️ Moving '%s' to %s would clash with '%s'.\n\n"+
				"What would you like to do?\n"+
				"1. Move it anyway (double-book)\n"+
				"2. Pick a different time\n"+
				"3. Cancel",
			task.Title, params.NewTime, conflicts[0].Title,
		), nil
	}

	if _, err := e.store.UpdateTask(ctx, task.ID, store.TaskUpdate{StartTime: &params.NewTime}); err != nil {
		return "", err
	}

	oldTime := params.OldTime
	if !hasOldTime && task.Timed() {
		oldTime = *task.StartTime
	}
	if oldTime == "" {
		return fmt.Sprintf("✅ Moved '%s' to %s %s.",
			task.Title, params.NewTime, dateName(task.Date, e.now())), nil
	}
	return fmt.Sprintf("✅ Moved '%s' from %s to %s %s.",
		task.Title, oldTime, params.NewTime, dateName(task.Date, e.now())), nil
}

func (e *Executor) handleUpdate(ctx context.Context, params *intent.UpdateParams) (string, error) {
	if params == nil || strings.TrimSpace(params.TitleHint) == "" {
		return "❌ Which task should I update?", nil
	}

	matches, err := e.store.SearchTasks(ctx, params.TitleHint)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return fmt.Sprintf("❌ No tasks found matching '%s'.", params.TitleHint), nil
	}
	if len(matches) > 1 {
		return fmt.Sprintf(
			"I found %s matching '%s'. Which one should I update?\n%s",
			plural(len(matches), "task"), params.TitleHint,
			numberedChoices(matches, maxUpdateChoices),
		), nil
	}

	return e.applyReschedule(ctx, matches[0], params.NewDate, params.NewTime)
}

// applyReschedule changes a task's date and/or time with a conflict
// check on the target slot.
func (e *Executor) applyReschedule(ctx context.Context, task model.Task, newDate, newTime string) (string, error) {
	upd := store.TaskUpdate{}
	targetDate := task.Date
	if model.ValidDate(newDate) {
		upd.Date = &newDate
		targetDate = newDate
	}
	targetTime := ""
	if task.Timed() {
		targetTime = *task.StartTime
	}
	if model.ValidTime(newTime) {
		upd.StartTime = &newTime
		targetTime = newTime
	}
	if upd.Empty() {
		return fmt.Sprintf("❌ I need a new date or time for '%s'.", task.Title), nil
	}

	if targetTime != "" {
		conflicts, err := e.store.CheckTimeConflict(ctx, targetDate, targetTime, task.ID)
		if err != nil {
			return "", err
		}
		if len(conflicts) > 0 {
			return fmt.Sprintf(
				"⚠️ Rescheduling '%s' to %s at %s would clash with '%s'.\n\n"+
					"What would you like to do?\n"+
					"1. Reschedule anyway (double-book)\n"+
					"2. Pick a different time\n"+
					"3. Cancel",
				task.Title, dateName(targetDate, e.now()), targetTime, conflicts[0].Title,
			), nil
		}
	}

	if _, err := e.store.UpdateTask(ctx, task.ID, upd); err != nil {
		return "", err
	}

	if targetTime != "" {
		return fmt.Sprintf("✅ Updated '%s' to %s at %s.",
			task.Title, dateName(targetDate, e.now()), targetTime), nil
	}
	return fmt.Sprintf("✅ Updated '%s' to %s.",
		task.Title, dateName(targetDate, e.now())), nil
}

func (e *Executor) handleContextUpdate(
	ctx context.Context,
	params *intent.ContextUpdateParams,
	history []Message,
) (string, error) {
	if params == nil {
		return "🤔 I'm not sure which task you mean. Could you mention it by name?", nil
	}

	task, err := e.findContextTask(ctx, params.ContextHint, history)
	if err != nil {
		return "", err
	}
	if task == nil {
		return "🤔 I'm not sure which task you mean. Could you mention it by name?", nil
	}

	return e.applyReschedule(ctx, *task, params.NewDate, params.NewTime)
}

// findContextTask resolves a conversational reference to a stored task:
// an explicit hint is tried first, then the most recently mentioned
// task title in the last few messages.
func (e *Executor) findContextTask(ctx context.Context, hint string, history []Message) (*model.Task, error) {
	hint = strings.TrimSpace(strings.ToLower(hint))
	if hint != "" && hint != "it" && hint != "that" && hint != "this" {
		matches, err := e.store.SearchTasks(ctx, hint)
		if err != nil {
			return nil, err
		}
		if len(matches) == 1 {
			return &matches[0], nil
		}
	}

	tasks, err := e.store.GetAllTasks(ctx)
	if err != nil {
		return nil, err
	}

	start := len(history) - contextWindow
	if start < 0 {
		start = 0
	}
	recent := history[start:]

	// Newest mention wins.
	for i := len(recent) - 1; i >= 0; i-- {
		content := strings.ToLower(recent[i].Content)
		for j := range tasks {
			if strings.Contains(content, strings.ToLower(tasks[j].Title)) {
				return &tasks[j], nil
			}
		}
	}
	return nil, nil
}

func (e *Executor) handleReplace(ctx context.Context, params *intent.ReplaceParams) (string, error) {
	if params == nil || strings.TrimSpace(params.OldTitle) == "" ||
		strings.TrimSpace(params.NewTitle) == "" {
		return "❌ I need both the task to replace and what to replace it with.", nil
	}

	var target *model.Task
	if model.ValidDate(params.Date) && model.ValidTime(params.Time) {
		found, err := e.store.FindTaskToMove(ctx, params.Date, params.Time, params.OldTitle)
		if err != nil {
			return "", err
		}
		target = found
	} else {
		matches, err := e.store.SearchTasks(ctx, params.OldTitle)
		if err != nil {
			return "", err
		}
		if len(matches) > 1 {
			return fmt.Sprintf(
				"I found %s matching '%s'. Which one should I replace?\n%s",
				plural(len(matches), "task"), params.OldTitle,
				numberedChoices(matches, maxMoveChoices),
			), nil
		}
		if len(matches) == 1 {
			target = &matches[0]
		}
	}

	if target == nil {
		return fmt.Sprintf("❌ No task found matching '%s'.", params.OldTitle), nil
	}

	newTitle := strings.TrimSpace(params.NewTitle)
	if len(newTitle) > model.MaxTitleLen {
		newTitle = newTitle[:model.MaxTitleLen]
	}
	upd := store.TaskUpdate{Title: &newTitle}
	if model.ValidDate(params.Date) {
		upd.Date = &params.Date
	}
	if model.ValidTime(params.Time) {
		upd.StartTime = &params.Time
	}

	if _, err := e.store.UpdateTask(ctx, target.ID, upd); err != nil {
		return "", err
	}
	return fmt.Sprintf("🔄 Replaced '%s' with '%s' %s.",
		target.Title, newTitle, dateName(target.Date, e.now())), nil
}

func (e *Executor) handlePostpone(ctx context.Context, params *intent.PostponeParams) (string, error) {
	if params == nil || !model.ValidDate(params.FromDate) || !model.ValidDate(params.ToDate) {
		return "❌ I need both dates, for example 'move everything from today to tomorrow'.", nil
	}

	fromName := dateName(params.FromDate, e.now())
	toName := dateName(params.ToDate, e.now())

	moving, err := e.store.GetTasksByDate(ctx, params.FromDate)
	if err != nil {
		return "", err
	}
	if len(moving) == 0 {
		return fmt.Sprintf("📅 Nothing scheduled %s to postpone.", fromName), nil
	}

	// Overlaps on the target day are reported but never block the move.
	existing, err := e.store.GetTasksByDate(ctx, params.ToDate)
	if err != nil {
		return "", err
	}
	occupied := make(map[string]string)
	for _, t := range existing {
		if t.Timed() && t.Status != model.StatusCancelled {
			occupied[*t.StartTime] = t.Title
		}
	}
	var overlaps []string
	for _, t := range moving {
		if t.Timed() {
			if other, ok := occupied[*t.StartTime]; ok {
				overlaps = append(overlaps,
					fmt.Sprintf("• '%s' and '%s' at %s", t.Title, other, *t.StartTime))
			}
		}
	}

	moved, err := e.store.PostponeTasksByDate(ctx, params.FromDate, params.ToDate)
	if err != nil {
		return "", err
	}

	reply := fmt.Sprintf("📅 Moved %s from %s to %s.", plural(moved, "task"), fromName, toName)
	if len(overlaps) > 0 {
		reply += fmt.Sprintf("\n⚠️ Heads up, %s now overlap existing tasks:\n%s",
			plural(len(overlaps), "slot"), strings.Join(overlaps, "\n"))
	}
	return reply, nil
}

// handleDefault answers operations that did not resolve to anything
// actionable by showing today's schedule.
func (e *Executor) handleDefault(ctx context.Context) (string, error) {
	today := e.now().Format(model.DateLayout)
	tasks, err := e.store.GetTasksByDate(ctx, today)
	if err != nil {
		return "", err
	}

	if len(tasks) == 0 {
		return "🤔 I wasn't sure what you meant. You have nothing scheduled today. " +
			"Try 'add a meeting tomorrow at 3pm' or 'show my tasks'.", nil
	}
	return fmt.Sprintf("🤔 I wasn't sure what you meant. Here's today:\n%s", taskList(tasks)), nil
}

func timeToMinutes(t string) int {
	var h, m int
	fmt.Sscanf(t, "%d:%d", &h, &m)
	return h*60 + m
}

func minutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func capFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
