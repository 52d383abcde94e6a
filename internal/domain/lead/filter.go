package lead

import (
	"slices"
	"strings"
	"time"

	"github.com/okfy/leadboard/internal/domain/pipeline"
)

// Visible reports whether l belongs on the active board of kind for query:
// not archived, same pipeline, and either an empty query or a
// case-insensitive match on title, CPF or id.
func Visible(l Lead, kind pipeline.Kind, query string) bool {
	if l.Archived || l.Pipeline != kind {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Title), q) ||
		strings.Contains(strings.ToLower(l.TaxID()), q) ||
		strings.Contains(strings.ToLower(l.ID), q)
}

// Filter keeps the leads for which Visible holds, preserving order.
func Filter(leads []Lead, kind pipeline.Kind, query string) []Lead {
	out := make([]Lead, 0, len(leads))
	for _, l := range leads {
		if Visible(l, kind, query) {
			out = append(out, l)
		}
	}
	return out
}

// NotesNewestFirst returns the notes of l in display order.
func NotesNewestFirst(l Lead) []Note {
	notes := slices.Clone(l.Notes)
	slices.Reverse(notes)
	return notes
}

// HistoryNewestFirst returns the phase history of l in display order.
func HistoryNewestFirst(l Lead) []HistoryEntry {
	history := slices.Clone(l.History)
	slices.Reverse(history)
	return history
}

// OverSLA reports whether the ongoing visit has outlived the advisory SLA
// of the current phase. Phases without an SLA are never over.
func OverSLA(l Lead, p pipeline.Pipeline, now time.Time) bool {
	ph, ok := p.Phase(l.PhaseName)
	if !ok {
		return false
	}
	sla, ok := ph.SLA()
	if !ok {
		return false
	}
	return TimeInCurrentPhase(l, now) > sla
}
