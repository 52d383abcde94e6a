package lead

import (
	"slices"
	"time"

	"github.com/okfy/leadboard/internal/domain/pipeline"
)

// NoteKind distinguishes machine-written notes from user-authored ones.
type NoteKind string

const (
	NoteSystem NoteKind = "system"
	NoteUser   NoteKind = "user"
)

// Note is one entry of a lead's log. Notes are stored oldest first.
type Note struct {
	Author    string
	Text      string
	Timestamp time.Time
	Kind      NoteKind
}

// Tag is a freeform colored label.
type Tag struct {
	ID    string
	Text  string
	Color string
}

// ChecklistItem is an independently toggleable flag on a lead.
type ChecklistItem struct {
	ID        string
	Text      string
	Completed bool
}

// HistoryEntry is one closed visit to a phase: the phase that was left, how
// long the lead stayed, the phase color at the time and when the visit began.
type HistoryEntry struct {
	PhaseName string
	Duration  time.Duration
	Color     string
	Timestamp time.Time
}

// Lead is a work item moving through the phases of its pipeline.
type Lead struct {
	ID             string
	Title          string
	PhaseName      string
	Pipeline       pipeline.Kind
	CreatedAt      time.Time
	PhaseUpdatedAt time.Time
	Data           Payload
	Checklist      []ChecklistItem
	Notes          []Note
	Tags           []Tag
	History        []HistoryEntry
	Archived       bool
	Assignee       *string
}

// Clone returns a deep copy so callers can build the next state of a lead
// without touching the stored one.
func (l Lead) Clone() Lead {
	out := l
	out.Checklist = slices.Clone(l.Checklist)
	out.Notes = slices.Clone(l.Notes)
	out.Tags = slices.Clone(l.Tags)
	out.History = slices.Clone(l.History)
	if l.Data != nil {
		out.Data = l.Data.clonePayload()
	}
	if l.Assignee != nil {
		a := *l.Assignee
		out.Assignee = &a
	}
	return out
}

// TaxID returns the CPF carried by the lead's payload, if any.
func (l Lead) TaxID() string {
	if l.Data == nil {
		return ""
	}
	return l.Data.TaxID()
}
