package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/repository"
)

// PipelineRepository keeps one pipeline per kind, in seeding order.
type PipelineRepository struct {
	mu        sync.RWMutex
	order     []pipeline.Kind
	pipelines map[pipeline.Kind]pipeline.Pipeline
}

// NewPipelineRepository returns a repository holding seed. A later entry
// for the same kind replaces an earlier one.
func NewPipelineRepository(seed ...pipeline.Pipeline) *PipelineRepository {
	r := &PipelineRepository{pipelines: make(map[pipeline.Kind]pipeline.Pipeline, len(seed))}
	for _, p := range seed {
		r.put(p)
	}
	return r
}

func (r *PipelineRepository) Get(_ context.Context, kind pipeline.Kind) (*pipeline.Pipeline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pipelines[kind]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := p.Clone()
	return &out, nil
}

func (r *PipelineRepository) List(_ context.Context) ([]pipeline.Pipeline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pipeline.Pipeline, 0, len(r.order))
	for _, kind := range r.order {
		out = append(out, r.pipelines[kind].Clone())
	}
	return out, nil
}

// Save stores p, replacing any pipeline of the same kind.
func (r *PipelineRepository) Save(_ context.Context, p *pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(*p)
	return nil
}

func (r *PipelineRepository) put(p pipeline.Pipeline) {
	if !slices.Contains(r.order, p.Kind) {
		r.order = append(r.order, p.Kind)
	}
	r.pipelines[p.Kind] = p.Clone()
}
