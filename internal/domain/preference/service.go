package preference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/okfy/leadboard/internal/repository"
)

// Service holds the current theme and persists changes to it.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu    sync.RWMutex
	theme Theme
}

// NewService creates a preference service starting at DefaultTheme. Call
// Load to pick up the stored value.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, theme: DefaultTheme}
}

// Load reads the stored theme. A missing or unrecognized value leaves the
// default in place; only storage failures are returned.
func (s *Service) Load(ctx context.Context) (Theme, error) {
	raw, err := s.repo.Get(ctx, ThemeKey)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return s.Theme(), fmt.Errorf("loading theme: %w", err)
	}

	theme := Theme(raw)
	if !theme.Valid() {
		if err == nil && s.logger != nil {
			s.logger.Warn("ignoring stored theme", "value", raw)
		}
		theme = DefaultTheme
	}

	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
	return theme, nil
}

// Theme returns the current theme.
func (s *Service) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Set switches to t and persists it. Setting the current theme writes
// nothing.
func (s *Service) Set(ctx context.Context, t Theme) (Theme, error) {
	if !t.Valid() {
		return s.Theme(), fmt.Errorf("%w: %q", ErrInvalidTheme, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(ctx, t)
}

// Toggle flips between light and dark.
func (s *Service) Toggle(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(ctx, s.theme.Opposite())
}

func (s *Service) store(ctx context.Context, t Theme) (Theme, error) {
	if t == s.theme {
		return t, nil
	}
	if err := s.repo.Set(ctx, ThemeKey, string(t)); err != nil {
		return s.theme, fmt.Errorf("saving theme: %w", err)
	}
	s.theme = t

	if s.logger != nil {
		s.logger.Info("theme changed", "theme", t)
	}
	return t, nil
}
