// Package memory holds the process-local repositories. Leads and pipelines
// live only for the lifetime of the process.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/okfy/leadboard/internal/domain/lead"
	"github.com/okfy/leadboard/internal/repository"
)

// LeadRepository keeps leads newest first. Every read and write copies, so
// callers never share memory with the stored records.
type LeadRepository struct {
	mu    sync.RWMutex
	leads []lead.Lead
}

// NewLeadRepository returns a repository preloaded with seed, in order.
func NewLeadRepository(seed ...lead.Lead) *LeadRepository {
	r := &LeadRepository{leads: make([]lead.Lead, 0, len(seed))}
	for _, l := range seed {
		r.leads = append(r.leads, l.Clone())
	}
	return r
}

func (r *LeadRepository) Create(_ context.Context, l *lead.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(l.ID) >= 0 {
		return repository.ErrAlreadyExists
	}
	r.leads = slices.Insert(r.leads, 0, l.Clone())
	return nil
}

func (r *LeadRepository) Get(_ context.Context, id string) (*lead.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	l := r.leads[i].Clone()
	return &l, nil
}

func (r *LeadRepository) Update(_ context.Context, l *lead.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(l.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.leads[i] = l.Clone()
	return nil
}

// UpdateMany replaces every given lead or none of them.
func (r *LeadRepository) UpdateMany(_ context.Context, leads []lead.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	positions := make([]int, len(leads))
	for n, l := range leads {
		i := r.index(l.ID)
		if i < 0 {
			return repository.ErrNotFound
		}
		positions[n] = i
	}
	for n, i := range positions {
		r.leads[i] = leads[n].Clone()
	}
	return nil
}

func (r *LeadRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.leads = slices.Delete(r.leads, i, i+1)
	return nil
}

func (r *LeadRepository) List(_ context.Context, opts lead.ListOptions) ([]lead.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lead.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		if opts.Pipeline != "" && l.Pipeline != opts.Pipeline {
			continue
		}
		if l.Archived && !opts.IncludeArchived {
			continue
		}
		out = append(out, l.Clone())
	}
	return out, nil
}

func (r *LeadRepository) index(id string) int {
	return slices.IndexFunc(r.leads, func(l lead.Lead) bool { return l.ID == id })
}
