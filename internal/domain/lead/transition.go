package lead

import (
	"fmt"
	"time"

	"github.com/okfy/leadboard/internal/domain/pipeline"
)

const (
	// SystemAuthor signs notes written by the board itself.
	SystemAuthor = "Sistema"
	// FallbackPhaseColor is recorded when the phase being left is no longer
	// part of the pipeline.
	FallbackPhaseColor = "#94a3b8"
)

// Transition moves l to target within p and returns the next state of the
// lead. The returned bool is false when nothing changed: moving a lead to
// the phase it already occupies returns l itself, without a history entry
// or a note. A target outside p fails with pipeline.ErrUnknownPhase.
//
// A move closes the current visit with a history entry carrying the left
// phase's color, sets PhaseName and PhaseUpdatedAt together and appends a
// system note. l is never modified.
func Transition(l Lead, p pipeline.Pipeline, target string, now time.Time) (Lead, bool, error) {
	if l.PhaseName == target {
		return l, false, nil
	}
	if l.Pipeline != p.Kind {
		return l, false, fmt.Errorf("%w: lead belongs to %q, not %q", pipeline.ErrUnknownPipeline, l.Pipeline, p.Kind)
	}
	if !p.Has(target) {
		return l, false, fmt.Errorf("%w: %q", pipeline.ErrUnknownPhase, target)
	}

	color := FallbackPhaseColor
	if left, ok := p.Phase(l.PhaseName); ok {
		color = left.Color
	}
	return moveTo(l, target, color, now), true, nil
}

// Advance moves l to the phase after its current one. At the last phase it
// is a no-op, like Transition to the same phase.
func Advance(l Lead, p pipeline.Pipeline, now time.Time) (Lead, bool, error) {
	if !p.Has(l.PhaseName) {
		return l, false, fmt.Errorf("%w: %q", pipeline.ErrUnknownPhase, l.PhaseName)
	}
	next, ok := p.Next(l.PhaseName)
	if !ok {
		return l, false, nil
	}
	return Transition(l, p, next.Name, now)
}

// moveTo performs the bookkeeping of a phase change. A clock reading older
// than PhaseUpdatedAt is treated as PhaseUpdatedAt so durations never go
// negative and PhaseUpdatedAt never moves backwards.
func moveTo(l Lead, target, leftColor string, now time.Time) Lead {
	if now.Before(l.PhaseUpdatedAt) {
		now = l.PhaseUpdatedAt
	}

	next := l.Clone()
	next.History = append(next.History, HistoryEntry{
		PhaseName: l.PhaseName,
		Duration:  now.Sub(l.PhaseUpdatedAt),
		Color:     leftColor,
		Timestamp: l.PhaseUpdatedAt,
	})
	next.PhaseName = target
	next.PhaseUpdatedAt = now
	next.Notes = append(next.Notes, Note{
		Author:    SystemAuthor,
		Text:      fmt.Sprintf("Lead movido de %s para %s", l.PhaseName, target),
		Timestamp: now,
		Kind:      NoteSystem,
	})
	return next
}

// TotalTimeInPhase sums every closed visit of l to phase and, when l sits
// in phase right now, the time since it arrived. It reads the clock through
// now on every call.
func TotalTimeInPhase(l Lead, phase string, now time.Time) time.Duration {
	var total time.Duration
	for _, h := range l.History {
		if h.PhaseName == phase {
			total += h.Duration
		}
	}
	if l.PhaseName == phase {
		total += TimeInCurrentPhase(l, now)
	}
	return total
}

// TimeInCurrentPhase is the length of the ongoing visit.
func TimeInCurrentPhase(l Lead, now time.Time) time.Duration {
	if now.Before(l.PhaseUpdatedAt) {
		return 0
	}
	return now.Sub(l.PhaseUpdatedAt)
}
