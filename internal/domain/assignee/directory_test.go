package assignee_test

import (
	"context"
	"testing"

	"github.com/okfy/leadboard/internal/domain/assignee"
	"github.com/stretchr/testify/require"
)

func TestStaticDirectory_Lookup(t *testing.T) {
	ctx := context.Background()
	dir := assignee.NewStaticDirectory(
		assignee.Person{ID: "u1", Name: "Mariana", Role: assignee.RoleEditor},
		assignee.Person{ID: "u2", Name: "Consultor Master", Role: assignee.RoleAdmin},
		assignee.Person{ID: "", Name: "ignored"},
	)

	p, err := dir.Lookup(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Mariana", p.Name)

	_, err = dir.Lookup(ctx, "u9")
	require.ErrorIs(t, err, assignee.ErrUnknownAssignee)

	people, err := dir.List(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
	require.Equal(t, "u1", people[0].ID)
}

func TestStaticDirectory_LaterEntryWins(t *testing.T) {
	dir := assignee.NewStaticDirectory(
		assignee.Person{ID: "u1", Name: "Old"},
		assignee.Person{ID: "u1", Name: "New"},
	)

	p, err := dir.Lookup(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "New", p.Name)

	people, err := dir.List(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 1)
}
