// Package board ties the lead, pipeline and preference services together
// into the state a single kanban board session works against.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/okfy/leadboard/internal/domain/lead"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/domain/preference"
)

// PhaseGenerator proposes a phase list from a free-text description.
type PhaseGenerator interface {
	Generate(ctx context.Context, prompt string) (pipeline.Proposal, error)
}

// Board is the application state behind every surface.
type Board struct {
	Leads       *lead.Service
	Pipelines   *pipeline.Service
	Preferences *preference.Service

	generator  PhaseGenerator
	logger     *slog.Logger
	generating atomic.Int32
}

// Generation is the outcome of a successful GeneratePipeline call.
type Generation struct {
	Pipeline pipeline.Pipeline
	Rehomed  []lead.Lead
}

// New creates a board. generator may be nil, in which case every
// generation request fails.
func New(leads *lead.Service, pipelines *pipeline.Service, prefs *preference.Service, generator PhaseGenerator, logger *slog.Logger) *Board {
	return &Board{
		Leads:       leads,
		Pipelines:   pipelines,
		Preferences: prefs,
		generator:   generator,
		logger:      logger,
	}
}

// Start loads persisted preferences.
func (b *Board) Start(ctx context.Context) error {
	theme, err := b.Preferences.Load(ctx)
	if err != nil {
		return err
	}
	if b.logger != nil {
		b.logger.Info("board ready", "theme", theme)
	}
	return nil
}

// Generating reports whether a generation request is in flight.
func (b *Board) Generating() bool {
	return b.generating.Load() > 0
}

// GeneratePipeline replaces the phases of kind with a list proposed for
// prompt. Leads whose phase disappears move to the new first phase. When
// the generator fails, or proposes a list that does not validate, nothing
// on the board changes and the error wraps ErrGenerationFailed.
func (b *Board) GeneratePipeline(ctx context.Context, kind pipeline.Kind, prompt string) (*Generation, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	b.generating.Add(1)
	defer b.generating.Add(-1)

	current, err := b.Pipelines.Get(ctx, kind)
	if err != nil {
		return nil, err
	}
	if b.generator == nil {
		return nil, fmt.Errorf("%w: no generator configured", ErrGenerationFailed)
	}

	proposal, err := b.generator.Generate(ctx, prompt)
	if err != nil {
		b.warn("phase generation failed", "pipeline", kind, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if err := pipeline.ValidatePhases(proposal.Phases); err != nil {
		b.warn("generated phase list rejected", "pipeline", kind, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	next := pipeline.Pipeline{Kind: kind, Name: current.Name, Phases: proposal.Phases}.Clone()
	if proposal.Name != "" {
		next.Name = proposal.Name
	}

	// The installer runs under the lead lock, so the list it replaces is the
	// one the leads were last moved onto, even when generations overlap.
	rehomed, err := b.Leads.Adopt(ctx, next, func(ctx context.Context) (func(context.Context) error, error) {
		installed, err := b.Pipelines.Get(ctx, kind)
		if err != nil {
			return nil, err
		}
		if _, err := b.Pipelines.Replace(ctx, kind, next.Name, next.Phases); err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			_, err := b.Pipelines.Replace(ctx, kind, installed.Name, installed.Phases)
			return err
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("installing generated phases: %w", err)
	}

	if b.logger != nil {
		b.logger.Info("pipeline generated", "pipeline", kind, "phases", len(next.Phases), "rehomed", len(rehomed))
	}
	return &Generation{Pipeline: next, Rehomed: rehomed}, nil
}

func (b *Board) warn(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(msg, args...)
	}
}
