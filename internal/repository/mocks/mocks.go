package mocks

import (
	"context"

	"github.com/okfy/leadboard/internal/domain/lead"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/stretchr/testify/mock"
)

// LeadRepository is a mock for lead.Repository.
type LeadRepository struct {
	mock.Mock
}

func (m *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *LeadRepository) Get(ctx context.Context, id string) (*lead.Lead, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*lead.Lead); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LeadRepository) Update(ctx context.Context, l *lead.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *LeadRepository) UpdateMany(ctx context.Context, leads []lead.Lead) error {
	args := m.Called(ctx, leads)
	return args.Error(0)
}

func (m *LeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *LeadRepository) List(ctx context.Context, opts lead.ListOptions) ([]lead.Lead, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]lead.Lead); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// PipelineRepository is a mock for pipeline.Repository.
type PipelineRepository struct {
	mock.Mock
}

func (m *PipelineRepository) Get(ctx context.Context, kind pipeline.Kind) (*pipeline.Pipeline, error) {
	args := m.Called(ctx, kind)
	if p, ok := args.Get(0).(*pipeline.Pipeline); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PipelineRepository) List(ctx context.Context) ([]pipeline.Pipeline, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]pipeline.Pipeline); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PipelineRepository) Save(ctx context.Context, p *pipeline.Pipeline) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// PreferenceRepository is a mock for preference.Repository.
type PreferenceRepository struct {
	mock.Mock
}

func (m *PreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *PreferenceRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// PhaseGenerator is a mock for board.PhaseGenerator.
type PhaseGenerator struct {
	mock.Mock
}

func (m *PhaseGenerator) Generate(ctx context.Context, prompt string) (pipeline.Proposal, error) {
	args := m.Called(ctx, prompt)
	if p, ok := args.Get(0).(pipeline.Proposal); ok {
		return p, args.Error(1)
	}
	return pipeline.Proposal{}, args.Error(1)
}
