package board_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okfy/leadboard/internal/board"
	"github.com/okfy/leadboard/internal/domain/lead"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/domain/preference"
	"github.com/okfy/leadboard/internal/memory"
	"github.com/okfy/leadboard/internal/repository"
	"github.com/okfy/leadboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)

type fixture struct {
	board *board.Board
	gen   *mocks.PhaseGenerator
	prefs *mocks.PreferenceRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	now := t0
	clock := func() time.Time { return now }

	pipelines := pipeline.NewService(memory.NewPipelineRepository(pipeline.Pipeline{
		Kind: pipeline.KindCommercial,
		Name: "Comercial",
		Phases: []pipeline.Phase{
			{Name: "FASE DA MARIANA", Color: "#DB2777"},
			{Name: "ENTREVISTA", Color: "#F59E0B"},
		},
	}), nil)
	leads := lead.NewService(memory.NewLeadRepository(), pipelines, nil, lead.WithClock(clock))
	prefRepo := &mocks.PreferenceRepository{}
	gen := &mocks.PhaseGenerator{}

	b := board.New(leads, pipelines, preference.NewService(prefRepo, nil), gen, nil)
	return fixture{board: b, gen: gen, prefs: prefRepo}
}

func (f fixture) addLead(t *testing.T, phase string) *lead.Lead {
	t.Helper()
	ctx := context.Background()
	l, err := f.board.Leads.Create(ctx, lead.CreateRequest{Pipeline: pipeline.KindCommercial, Title: "Lead"})
	require.NoError(t, err)
	if phase != l.PhaseName {
		l, err = f.board.Leads.MoveCard(ctx, l.ID, phase)
		require.NoError(t, err)
	}
	return l
}

func TestBoard_Start(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.prefs.On("Get", ctx, preference.ThemeKey).Return("dark", nil)

	require.NoError(t, f.board.Start(ctx))
	require.Equal(t, preference.ThemeDark, f.board.Preferences.Theme())
}

func TestBoard_StartWithoutStoredTheme(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.prefs.On("Get", ctx, preference.ThemeKey).Return("", repository.ErrNotFound)

	require.NoError(t, f.board.Start(ctx))
	require.Equal(t, preference.ThemeLight, f.board.Preferences.Theme())
}

func TestBoard_GeneratePipelineEmptyPrompt(t *testing.T) {
	f := newFixture(t)

	_, err := f.board.GeneratePipeline(context.Background(), pipeline.KindCommercial, "   ")
	require.ErrorIs(t, err, board.ErrEmptyPrompt)
	f.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	require.False(t, f.board.Generating())
}

func TestBoard_GeneratePipelineFailureLeavesBoardUnchanged(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("quota exceeded")

	cases := []struct {
		name     string
		proposal pipeline.Proposal
		err      error
	}{
		{"generator error", pipeline.Proposal{}, boom},
		{"duplicate phases", pipeline.Proposal{Phases: []pipeline.Phase{{Name: "A", Color: "#1"}, {Name: "A", Color: "#2"}}}, nil},
		{"missing color", pipeline.Proposal{Phases: []pipeline.Phase{{Name: "A"}}}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			l := f.addLead(t, "ENTREVISTA")

			var sawGenerating bool
			f.gen.On("Generate", ctx, "recrutamento").
				Run(func(mock.Arguments) { sawGenerating = f.board.Generating() }).
				Return(tc.proposal, tc.err)

			_, err := f.board.GeneratePipeline(ctx, pipeline.KindCommercial, "recrutamento")
			require.ErrorIs(t, err, board.ErrGenerationFailed)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
			}
			require.True(t, sawGenerating)
			require.False(t, f.board.Generating())

			p, err := f.board.Pipelines.Get(ctx, pipeline.KindCommercial)
			require.NoError(t, err)
			require.Equal(t, "Comercial", p.Name)
			require.Len(t, p.Phases, 2)

			got, err := f.board.Leads.Get(ctx, l.ID)
			require.NoError(t, err)
			require.Equal(t, "ENTREVISTA", got.PhaseName)
			require.Len(t, got.History, 1)
		})
	}
}

func TestBoard_GeneratePipelineRehomesOrphans(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	kept := f.addLead(t, "FASE DA MARIANA")
	orphan := f.addLead(t, "ENTREVISTA")

	f.gen.On("Generate", ctx, "onboarding").Return(pipeline.Proposal{
		Name: "Onboarding",
		Phases: []pipeline.Phase{
			{Name: "Triagem", Color: "#111111"},
			{Name: "FASE DA MARIANA", Color: "#DB2777"},
			{Name: "Concluído", Color: "#10B981"},
		},
	}, nil)

	gen, err := f.board.GeneratePipeline(ctx, pipeline.KindCommercial, "onboarding")
	require.NoError(t, err)
	require.Equal(t, "Onboarding", gen.Pipeline.Name)
	require.Len(t, gen.Rehomed, 1)
	require.Equal(t, orphan.ID, gen.Rehomed[0].ID)
	require.False(t, f.board.Generating())

	p, err := f.board.Pipelines.Get(ctx, pipeline.KindCommercial)
	require.NoError(t, err)
	require.Equal(t, "Onboarding", p.Name)
	require.Equal(t, "Triagem", p.Phases[0].Name)

	moved, err := f.board.Leads.Get(ctx, orphan.ID)
	require.NoError(t, err)
	require.Equal(t, "Triagem", moved.PhaseName)
	last := moved.History[len(moved.History)-1]
	require.Equal(t, "ENTREVISTA", last.PhaseName)
	require.Equal(t, "#F59E0B", last.Color)

	stayed, err := f.board.Leads.Get(ctx, kept.ID)
	require.NoError(t, err)
	require.Equal(t, "FASE DA MARIANA", stayed.PhaseName)
}

func TestBoard_GeneratePipelineUnknownKind(t *testing.T) {
	f := newFixture(t)

	_, err := f.board.GeneratePipeline(context.Background(), pipeline.KindLegal, "x")
	require.ErrorIs(t, err, pipeline.ErrUnknownPipeline)
	require.False(t, f.board.Generating())
}

func TestBoard_GeneratePipelineWithoutGenerator(t *testing.T) {
	f := newFixture(t)
	b := board.New(f.board.Leads, f.board.Pipelines, f.board.Preferences, nil, nil)

	_, err := b.GeneratePipeline(context.Background(), pipeline.KindCommercial, "x")
	require.ErrorIs(t, err, board.ErrGenerationFailed)
}

// flakyLeads fails UpdateMany once failing is set.
type flakyLeads struct {
	*memory.LeadRepository
	failing atomic.Bool
}

func (r *flakyLeads) UpdateMany(ctx context.Context, leads []lead.Lead) error {
	if r.failing.Load() {
		return errors.New("disk full")
	}
	return r.LeadRepository.UpdateMany(ctx, leads)
}

func TestBoard_OverlappingGenerationRollsBackToLatestList(t *testing.T) {
	ctx := context.Background()
	clock := func() time.Time { return t0 }

	pipelines := pipeline.NewService(memory.NewPipelineRepository(pipeline.Pipeline{
		Kind: pipeline.KindCommercial,
		Name: "Comercial",
		Phases: []pipeline.Phase{
			{Name: "FASE DA MARIANA", Color: "#DB2777"},
			{Name: "ENTREVISTA", Color: "#F59E0B"},
		},
	}), nil)
	store := &flakyLeads{LeadRepository: memory.NewLeadRepository()}
	leads := lead.NewService(store, pipelines, nil, lead.WithClock(clock))
	gen := &mocks.PhaseGenerator{}
	b := board.New(leads, pipelines, preference.NewService(&mocks.PreferenceRepository{}, nil), gen, nil)

	l, err := leads.Create(ctx, lead.CreateRequest{Pipeline: pipeline.KindCommercial, Title: "Lead"})
	require.NoError(t, err)
	_, err = leads.MoveCard(ctx, l.ID, "ENTREVISTA")
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	gen.On("Generate", mock.Anything, "lenta").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(pipeline.Proposal{Phases: []pipeline.Phase{{Name: "TRIAGEM", Color: "#0EA5E9"}}}, nil)
	latest := []pipeline.Phase{
		{Name: "FASE DA MARIANA", Color: "#DB2777"},
		{Name: "PROPOSTA", Color: "#6366F1"},
	}
	gen.On("Generate", mock.Anything, "rápida").Return(pipeline.Proposal{Phases: latest}, nil)

	slow := make(chan error, 1)
	go func() {
		_, err := b.GeneratePipeline(ctx, pipeline.KindCommercial, "lenta")
		slow <- err
	}()
	<-started

	_, err = b.GeneratePipeline(ctx, pipeline.KindCommercial, "rápida")
	require.NoError(t, err)
	require.True(t, b.Generating())

	store.failing.Store(true)
	close(release)
	require.Error(t, <-slow)
	require.False(t, b.Generating())

	p, err := pipelines.Get(ctx, pipeline.KindCommercial)
	require.NoError(t, err)
	require.Equal(t, latest, p.Phases)

	got, err := leads.Get(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, "FASE DA MARIANA", got.PhaseName)
	require.True(t, p.Has(got.PhaseName))
}
