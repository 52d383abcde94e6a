package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okfy/leadboard/internal/domain/assignee"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/repository"
)

const (
	// DefaultNoteAuthor signs user notes that arrive without an author.
	DefaultNoteAuthor = "Consultor"
	// DefaultTagColor is used for tags created without a color.
	DefaultTagColor = "indigo"
)

// Service owns the lead collection and every mutation of it. Mutations are
// serialized: each one runs to completion before the next starts.
type Service struct {
	leads     Repository
	pipelines PipelineSource
	assignees AssigneeDirectory
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string

	mu sync.Mutex
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces uuid.NewString as the id source for leads, tags and
// checklist items.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithAssignees validates assignee references against dir.
func WithAssignees(dir AssigneeDirectory) Option {
	return func(s *Service) { s.assignees = dir }
}

// NewService creates a new lead service.
func NewService(leads Repository, pipelines PipelineSource, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		leads:     leads,
		pipelines: pipelines,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest describes a lead creation request. A nil Data gets the empty
// payload of the pipeline.
type CreateRequest struct {
	Pipeline pipeline.Kind
	Title    string
	Data     Payload
	Assignee *string
}

// UpdateFieldsRequest patches the editable fields of a lead. Nil fields are
// left alone. A system note is written only when Log is set.
type UpdateFieldsRequest struct {
	ID       string
	Title    *string
	Data     Payload
	Assignee *string
	Log      bool
	Author   string
}

// Create adds a lead in the first phase of its pipeline.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Lead, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.pipelines.Get(ctx, req.Pipeline)
	if err != nil {
		return nil, err
	}
	first, ok := p.First()
	if !ok {
		return nil, fmt.Errorf("%w: pipeline %q has no phases", pipeline.ErrUnknownPhase, req.Pipeline)
	}
	if err := s.checkAssignee(ctx, req.Assignee); err != nil {
		return nil, err
	}

	data := req.Data
	if data == nil {
		data = NewPayload(req.Pipeline)
	}

	now := s.now()
	l := &Lead{
		ID:             s.newID(),
		Title:          strings.TrimSpace(req.Title),
		PhaseName:      first.Name,
		Pipeline:       req.Pipeline,
		CreatedAt:      now,
		PhaseUpdatedAt: now,
		Data:           normalizeContact(data),
		Checklist:      []ChecklistItem{},
		Notes:          []Note{},
		Tags:           []Tag{},
		History:        []HistoryEntry{},
		Assignee:       clonePtr(req.Assignee),
	}
	if err := s.leads.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("creating lead: %w", err)
	}

	s.debug("lead created", "id", l.ID, "pipeline", l.Pipeline, "phase", l.PhaseName)
	return l, nil
}

// Get returns a lead by ID.
func (s *Service) Get(ctx context.Context, id string) (*Lead, error) {
	l, err := s.leads.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("getting lead: %w", err)
	}
	return l, nil
}

// List returns leads matching opts.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Lead, error) {
	return s.leads.List(ctx, opts)
}

// ActiveView returns the non-archived leads of kind that match query.
func (s *Service) ActiveView(ctx context.Context, kind pipeline.Kind, query string) ([]Lead, error) {
	leads, err := s.leads.List(ctx, ListOptions{Pipeline: kind})
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	return Filter(leads, kind, query), nil
}

// Update replaces the stored lead with next. The caller supplies the whole
// record, including any notes or history it wants recorded; Update adds
// nothing. A lead that no longer exists is left alone and (nil, nil) is
// returned.
func (s *Service) Update(ctx context.Context, next Lead) (*Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.lookup(ctx, next.ID)
	if err != nil || current == nil {
		return nil, err
	}
	return s.replace(ctx, current, next)
}

// UpdateFields patches title, payload or assignee of a lead.
func (s *Service) UpdateFields(ctx context.Context, req UpdateFieldsRequest) (*Lead, error) {
	return s.mutate(ctx, req.ID, func(l *Lead) error {
		var changed []string
		if req.Title != nil {
			l.Title = strings.TrimSpace(*req.Title)
			changed = append(changed, "título")
		}
		if req.Data != nil {
			l.Data = req.Data
			changed = append(changed, "dados")
		}
		if req.Assignee != nil {
			l.Assignee = clonePtr(req.Assignee)
			changed = append(changed, "responsável")
		}
		if req.Log && len(changed) > 0 {
			author := strings.TrimSpace(req.Author)
			if author == "" {
				author = SystemAuthor
			}
			l.Notes = append(l.Notes, Note{
				Author:    author,
				Text:      "Atualizado: " + strings.Join(changed, ", "),
				Timestamp: s.now(),
				Kind:      NoteSystem,
			})
		}
		return nil
	})
}

// Delete removes a lead permanently. Deleting a missing lead is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.leads.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.debug("delete of missing lead ignored", "id", id)
			return nil
		}
		return fmt.Errorf("deleting lead: %w", err)
	}
	s.debug("lead deleted", "id", id)
	return nil
}

// Archive hides a lead from active views without removing it.
func (s *Service) Archive(ctx context.Context, id string) (*Lead, error) {
	return s.mutate(ctx, id, func(l *Lead) error {
		l.Archived = true
		return nil
	})
}

// MoveCard transitions the lead with the given id to target. See Transition
// for the no-op and error cases. A missing lead yields (nil, nil).
func (s *Service) MoveCard(ctx context.Context, id, target string) (*Lead, error) {
	return s.step(ctx, id, func(l Lead, p pipeline.Pipeline, now time.Time) (Lead, bool, error) {
		return Transition(l, p, target, now)
	})
}

// Advance moves the lead to the next phase of its pipeline; at the last
// phase nothing happens.
func (s *Service) Advance(ctx context.Context, id string) (*Lead, error) {
	return s.step(ctx, id, Advance)
}

// AddNote appends a user note.
func (s *Service) AddNote(ctx context.Context, id, author, text string) (*Lead, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: note text is required", ErrInvalidInput)
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = DefaultNoteAuthor
	}
	return s.mutate(ctx, id, func(l *Lead) error {
		l.Notes = append(l.Notes, Note{Author: author, Text: text, Timestamp: s.now(), Kind: NoteUser})
		return nil
	})
}

// AddTag attaches a new label to the lead.
func (s *Service) AddTag(ctx context.Context, id, text, color string) (*Lead, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: tag text is required", ErrInvalidInput)
	}
	if strings.TrimSpace(color) == "" {
		color = DefaultTagColor
	}
	return s.mutate(ctx, id, func(l *Lead) error {
		l.Tags = append(l.Tags, Tag{ID: s.newID(), Text: text, Color: color})
		return nil
	})
}

// RemoveTag detaches a label.
func (s *Service) RemoveTag(ctx context.Context, id, tagID string) (*Lead, error) {
	return s.mutate(ctx, id, func(l *Lead) error {
		i := slices.IndexFunc(l.Tags, func(t Tag) bool { return t.ID == tagID })
		if i < 0 {
			return ErrTagNotFound
		}
		l.Tags = slices.Delete(l.Tags, i, i+1)
		return nil
	})
}

// AddChecklistItem adds an unchecked item.
func (s *Service) AddChecklistItem(ctx context.Context, id, text string) (*Lead, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: checklist text is required", ErrInvalidInput)
	}
	return s.mutate(ctx, id, func(l *Lead) error {
		l.Checklist = append(l.Checklist, ChecklistItem{ID: s.newID(), Text: text})
		return nil
	})
}

// ToggleChecklistItem flips one checklist item.
func (s *Service) ToggleChecklistItem(ctx context.Context, id, itemID string) (*Lead, error) {
	return s.mutate(ctx, id, func(l *Lead) error {
		for i := range l.Checklist {
			if l.Checklist[i].ID == itemID {
				l.Checklist[i].Completed = !l.Checklist[i].Completed
				return nil
			}
		}
		return ErrChecklistItemNotFound
	})
}

// RemoveChecklistItem deletes a checklist item.
func (s *Service) RemoveChecklistItem(ctx context.Context, id, itemID string) (*Lead, error) {
	return s.mutate(ctx, id, func(l *Lead) error {
		i := slices.IndexFunc(l.Checklist, func(c ChecklistItem) bool { return c.ID == itemID })
		if i < 0 {
			return ErrChecklistItemNotFound
		}
		l.Checklist = slices.Delete(l.Checklist, i, i+1)
		return nil
	})
}

// TimeInPhase returns the cumulative time the lead has spent in phase.
func (s *Service) TimeInPhase(ctx context.Context, id, phase string) (time.Duration, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return TotalTimeInPhase(*l, phase, s.now()), nil
}

// Now returns the service clock reading, for callers rendering durations.
func (s *Service) Now() time.Time {
	return s.now()
}

// Assignee resolves the lead's assignee through the directory. It reports
// false when the lead has none or no directory is configured.
func (s *Service) Assignee(ctx context.Context, l Lead) (assignee.Person, bool) {
	if l.Assignee == nil || s.assignees == nil {
		return assignee.Person{}, false
	}
	p, err := s.assignees.Lookup(ctx, *l.Assignee)
	if err != nil {
		return assignee.Person{}, false
	}
	return p, true
}

// Installer swaps in a new phase list. The rollback it returns restores the
// previous one and is used if the leads cannot be stored afterwards.
type Installer func(ctx context.Context) (rollback func(context.Context) error, err error)

// Adopt moves next.Kind onto a new phase list. Every lead of that pipeline
// whose phase is missing from next is moved to its first phase, closing the
// current visit with the real elapsed time. install runs with lead mutations
// blocked, after the moves are computed and before they are stored; if it
// fails no lead is touched, and if storing fails the install is rolled
// back. The moved leads are returned.
func (s *Service) Adopt(ctx context.Context, next pipeline.Pipeline, install Installer) ([]Lead, error) {
	first, ok := next.First()
	if !ok {
		return nil, fmt.Errorf("%w: no phases", pipeline.ErrInvalidPhases)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, err := s.pipelines.Get(ctx, next.Kind)
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.List(ctx, ListOptions{Pipeline: next.Kind, IncludeArchived: true})
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}

	now := s.now()
	moved := make([]Lead, 0, len(leads))
	for _, l := range leads {
		if next.Has(l.PhaseName) {
			continue
		}
		color := FallbackPhaseColor
		if left, ok := previous.Phase(l.PhaseName); ok {
			color = left.Color
		}
		moved = append(moved, moveTo(l, first.Name, color, now))
	}

	rollback, err := install(ctx)
	if err != nil {
		return nil, err
	}
	if len(moved) > 0 {
		if err := s.leads.UpdateMany(ctx, moved); err != nil {
			if rollback != nil {
				if rerr := rollback(ctx); rerr != nil && s.logger != nil {
					s.logger.Error("phase list rollback failed", "pipeline", next.Kind, "error", rerr)
				}
			}
			return nil, fmt.Errorf("rehoming leads: %w", err)
		}
	}

	s.debug("phase list adopted", "pipeline", next.Kind, "rehomed", len(moved))
	return moved, nil
}

// step applies a phase-changing function to a stored lead.
func (s *Service) step(ctx context.Context, id string, fn func(Lead, pipeline.Pipeline, time.Time) (Lead, bool, error)) (*Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.lookup(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	p, err := s.pipelines.Get(ctx, current.Pipeline)
	if err != nil {
		return nil, err
	}

	next, moved, err := fn(*current, *p, s.now())
	if err != nil {
		return nil, err
	}
	if !moved {
		s.debug("lead already in place", "id", id, "phase", current.PhaseName)
		return current, nil
	}
	if err := s.leads.Update(ctx, &next); err != nil {
		return nil, fmt.Errorf("moving lead: %w", err)
	}

	s.debug("lead moved", "id", id, "from", current.PhaseName, "to", next.PhaseName)
	return &next, nil
}

// mutate loads a lead, applies fn to a copy and stores the result through
// the same validation as Update.
func (s *Service) mutate(ctx context.Context, id string, fn func(*Lead) error) (*Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.lookup(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	next := current.Clone()
	if err := fn(&next); err != nil {
		return nil, err
	}
	return s.replace(ctx, current, next)
}

// replace validates and stores next in place of current. Callers hold s.mu.
func (s *Service) replace(ctx context.Context, current *Lead, next Lead) (*Lead, error) {
	p, err := s.pipelines.Get(ctx, current.Pipeline)
	if err != nil {
		return nil, err
	}
	if err := validateReplacement(*current, next, *p, s.now()); err != nil {
		return nil, err
	}
	if !sameAssignee(current.Assignee, next.Assignee) {
		if err := s.checkAssignee(ctx, next.Assignee); err != nil {
			return nil, err
		}
	}

	stored := next.Clone()
	stored.Data = normalizeContact(stored.Data)
	if err := s.leads.Update(ctx, &stored); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating lead: %w", err)
	}
	return &stored, nil
}

// lookup returns (nil, nil) for a missing lead so callers can treat it as a
// no-op.
func (s *Service) lookup(ctx context.Context, id string) (*Lead, error) {
	l, err := s.leads.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.debug("operation on missing lead ignored", "id", id)
			return nil, nil
		}
		return nil, fmt.Errorf("loading lead: %w", err)
	}
	return l, nil
}

func (s *Service) checkAssignee(ctx context.Context, id *string) error {
	if id == nil || s.assignees == nil {
		return nil
	}
	if _, err := s.assignees.Lookup(ctx, *id); err != nil {
		return fmt.Errorf("resolving assignee: %w", err)
	}
	return nil
}

func (s *Service) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func sameAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
