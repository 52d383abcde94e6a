package memory

import (
	"context"
	"testing"
	"time"

	"github.com/okfy/leadboard/internal/domain/lead"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/repository"
	"github.com/stretchr/testify/require"
)

func newLead(id string, kind pipeline.Kind) lead.Lead {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return lead.Lead{
		ID:             id,
		Title:          "Lead " + id,
		PhaseName:      "A",
		Pipeline:       kind,
		CreatedAt:      now,
		PhaseUpdatedAt: now,
		Data:           lead.NewPayload(kind),
		Tags:           []lead.Tag{{ID: "t1", Text: "vip", Color: "red"}},
	}
}

func TestLeadRepository_CreatePrependsAndCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository()

	first := newLead("1", pipeline.KindCommercial)
	second := newLead("2", pipeline.KindCommercial)
	require.NoError(t, repo.Create(ctx, &first))
	require.NoError(t, repo.Create(ctx, &second))
	require.ErrorIs(t, repo.Create(ctx, &first), repository.ErrAlreadyExists)

	first.Tags[0].Text = "mutated"

	leads, err := repo.List(ctx, lead.ListOptions{})
	require.NoError(t, err)
	require.Len(t, leads, 2)
	require.Equal(t, "2", leads[0].ID)
	require.Equal(t, "vip", leads[1].Tags[0].Text)

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	got.Tags[0].Text = "mutated again"

	again, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "vip", again.Tags[0].Text)
}

func TestLeadRepository_MissingLead(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository()

	_, err := repo.Get(ctx, "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)

	l := newLead("nope", pipeline.KindLegal)
	require.ErrorIs(t, repo.Update(ctx, &l), repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "nope"), repository.ErrNotFound)
}

func TestLeadRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	archived := newLead("3", pipeline.KindCommercial)
	archived.Archived = true
	repo := NewLeadRepository(newLead("1", pipeline.KindCommercial), newLead("2", pipeline.KindLegal), archived)

	commercial, err := repo.List(ctx, lead.ListOptions{Pipeline: pipeline.KindCommercial})
	require.NoError(t, err)
	require.Len(t, commercial, 1)
	require.Equal(t, "1", commercial[0].ID)

	withArchived, err := repo.List(ctx, lead.ListOptions{Pipeline: pipeline.KindCommercial, IncludeArchived: true})
	require.NoError(t, err)
	require.Len(t, withArchived, 2)

	all, err := repo.List(ctx, lead.ListOptions{IncludeArchived: true})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestLeadRepository_UpdateManyIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(newLead("1", pipeline.KindCommercial), newLead("2", pipeline.KindCommercial))

	a := newLead("1", pipeline.KindCommercial)
	a.PhaseName = "B"
	ghost := newLead("ghost", pipeline.KindCommercial)
	require.ErrorIs(t, repo.UpdateMany(ctx, []lead.Lead{a, ghost}), repository.ErrNotFound)

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "A", got.PhaseName)

	b := newLead("2", pipeline.KindCommercial)
	b.PhaseName = "C"
	require.NoError(t, repo.UpdateMany(ctx, []lead.Lead{a, b}))

	got, err = repo.Get(ctx, "2")
	require.NoError(t, err)
	require.Equal(t, "C", got.PhaseName)
}

func TestLeadRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(newLead("1", pipeline.KindCommercial))

	require.NoError(t, repo.Delete(ctx, "1"))
	_, err := repo.Get(ctx, "1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPipelineRepository(t *testing.T) {
	ctx := context.Background()
	sla := 2.0
	repo := NewPipelineRepository(
		pipeline.Pipeline{Kind: pipeline.KindCommercial, Name: "Comercial", Phases: []pipeline.Phase{{Name: "A", Color: "#111", SLADays: &sla}}},
		pipeline.Pipeline{Kind: pipeline.KindLegal, Name: "Jurídico", Phases: []pipeline.Phase{{Name: "X", Color: "#222"}}},
	)

	got, err := repo.Get(ctx, pipeline.KindCommercial)
	require.NoError(t, err)
	*got.Phases[0].SLADays = 99
	got.Phases[0].Name = "mutated"

	again, err := repo.Get(ctx, pipeline.KindCommercial)
	require.NoError(t, err)
	require.Equal(t, "A", again.Phases[0].Name)
	require.Equal(t, 2.0, *again.Phases[0].SLADays)

	replacement := pipeline.Pipeline{Kind: pipeline.KindCommercial, Name: "Novo", Phases: []pipeline.Phase{{Name: "Z", Color: "#333"}}}
	require.NoError(t, repo.Save(ctx, &replacement))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, pipeline.KindCommercial, all[0].Kind)
	require.Equal(t, "Novo", all[0].Name)

	_, err = repo.Get(ctx, pipeline.Kind("other"))
	require.ErrorIs(t, err, repository.ErrNotFound)
}
