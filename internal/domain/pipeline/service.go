package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/okfy/leadboard/internal/repository"
)

// Service handles pipeline configuration.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new pipeline service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns the pipeline configured for kind.
func (s *Service) Get(ctx context.Context, kind Kind) (*Pipeline, error) {
	p, err := s.repo.Get(ctx, kind)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPipeline, kind)
		}
		return nil, fmt.Errorf("getting pipeline: %w", err)
	}
	return p, nil
}

// List returns every configured pipeline.
func (s *Service) List(ctx context.Context) ([]Pipeline, error) {
	return s.repo.List(ctx)
}

// Replace swaps the whole phase list of an existing pipeline. An empty name
// keeps the current one. Nothing is written unless the list validates.
func (s *Service) Replace(ctx context.Context, kind Kind, name string, phases []Phase) (*Pipeline, error) {
	if err := ValidatePhases(phases); err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, kind)
	if err != nil {
		return nil, err
	}

	next := Pipeline{Kind: kind, Name: current.Name, Phases: phases}.Clone()
	if strings.TrimSpace(name) != "" {
		next.Name = strings.TrimSpace(name)
	}
	if err := s.repo.Save(ctx, &next); err != nil {
		return nil, fmt.Errorf("saving pipeline: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("pipeline replaced", "kind", kind, "name", next.Name, "phases", len(next.Phases))
	}
	return &next, nil
}
