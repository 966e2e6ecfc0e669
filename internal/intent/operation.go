package intent

// Kind identifies the operation a user utterance resolved to.
type Kind string

const (
	KindCreate          Kind = "create"
	KindCreateBulk      Kind = "create_bulk"
	KindList            Kind = "list"
	KindListDate        Kind = "list_date"
	KindSearch          Kind = "search"
	KindDelete          Kind = "delete"
	KindDeleteSelective Kind = "delete_selective"
	KindDeleteDate      Kind = "delete_date"
	KindDeleteAll       Kind = "delete_all"
	KindMove            Kind = "move"
	KindUpdate          Kind = "update"
	KindContextUpdate   Kind = "context_update"
	KindReplace         Kind = "replace"
	KindPostpone        Kind = "postpone"
	KindChat            Kind = "chat"
)

// QueryTypeAvailability marks a list_date operation phrased as an
// availability question; it changes response framing only.
const QueryTypeAvailability = "availability_check"

// TaskSpec is a single task description as produced by the oracle.
// Fields are passed through unvalidated; the executor owns validation.
type TaskSpec struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Priority    string  `json:"priority"`
}

// CreateForm distinguishes the two shapes a create operation may take.
type CreateForm int

const (
	// CreateSingle carries exactly one task record.
	CreateSingle CreateForm = iota
	// CreateList carries a literal list of task records.
	CreateList
)

// CreateRequest is the tagged parameter variant for create: the oracle
// emits either one task record or a literal list of them.
type CreateRequest struct {
	Form  CreateForm
	Specs []TaskSpec
}

// BulkParams drives pattern-based bulk creation: count tasks starting
// at StartTime, advancing IntervalMinutes per step.
type BulkParams struct {
	Count           int    `json:"count"`
	TitleBase       string `json:"title_base"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	IntervalMinutes int    `json:"interval_minutes"`
}

// MoveParams relocates one task to a new time.
type MoveParams struct {
	Date      string `json:"date"`
	OldTime   string `json:"old_time"`
	NewTime   string `json:"new_time"`
	TitleHint string `json:"title_hint"`
}

// UpdateParams changes a task's date and/or time, located by title hint.
type UpdateParams struct {
	TitleHint string `json:"title_hint"`
	NewDate   string `json:"new_date"`
	NewTime   string `json:"new_time"`
}

// ContextUpdateParams is an update whose target task is inferred from
// recent conversation rather than named outright.
type ContextUpdateParams struct {
	NewTime     string `json:"new_time"`
	NewDate     string `json:"new_date"`
	ContextHint string `json:"context_hint"`
}

// ReplaceParams swaps one task's title for another.
type ReplaceParams struct {
	OldTitle string `json:"old_title"`
	NewTitle string `json:"new_title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// PostponeParams relocates every task from one date to another.
type PostponeParams struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

// Operation is the structured result of intent resolution. Exactly the
// parameter record matching Kind is populated; the rest are zero.
type Operation struct {
	Kind Kind

	// Create is set for KindCreate.
	Create *CreateRequest

	// Bulk is set for KindCreateBulk.
	Bulk *BulkParams

	// Date is set for KindListDate, KindDeleteDate and KindDeleteSelective.
	Date string

	// QueryType is set for KindListDate availability questions.
	QueryType string

	// Query is set for KindSearch and query-based KindDelete.
	Query string

	// TaskID is set for direct-id KindDelete.
	TaskID string

	// TaskType is the title filter for KindDeleteSelective.
	TaskType string

	Move          *MoveParams
	Update        *UpdateParams
	ContextUpdate *ContextUpdateParams
	Replace       *ReplaceParams
	Postpone      *PostponeParams
}
