package assignee

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Directory resolves assignee ids to people.
type Directory interface {
	Lookup(ctx context.Context, id string) (Person, error)
	List(ctx context.Context) ([]Person, error)
}

// StaticDirectory is a fixed, in-memory Directory loaded from configuration.
type StaticDirectory struct {
	order  []string
	people map[string]Person
}

// NewStaticDirectory builds a directory from people. Later entries with a
// repeated id replace earlier ones; blank ids are skipped.
func NewStaticDirectory(people ...Person) *StaticDirectory {
	d := &StaticDirectory{people: make(map[string]Person, len(people))}
	for _, p := range people {
		if strings.TrimSpace(p.ID) == "" {
			continue
		}
		if _, ok := d.people[p.ID]; !ok {
			d.order = append(d.order, p.ID)
		}
		d.people[p.ID] = p
	}
	return d
}

// Lookup returns the person registered under id.
func (d *StaticDirectory) Lookup(_ context.Context, id string) (Person, error) {
	p, ok := d.people[id]
	if !ok {
		return Person{}, fmt.Errorf("%w: %q", ErrUnknownAssignee, id)
	}
	return p, nil
}

// List returns everyone in registration order.
func (d *StaticDirectory) List(_ context.Context) ([]Person, error) {
	out := make([]Person, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.people[id])
	}
	return slices.Clip(out), nil
}
