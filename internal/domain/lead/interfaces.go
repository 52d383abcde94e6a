package lead

import (
	"context"

	"github.com/okfy/leadboard/internal/domain/assignee"
	"github.com/okfy/leadboard/internal/domain/pipeline"
)

// Repository holds the lead collection.
type Repository interface {
	Create(ctx context.Context, l *Lead) error
	Get(ctx context.Context, id string) (*Lead, error)
	Update(ctx context.Context, l *Lead) error
	UpdateMany(ctx context.Context, leads []Lead) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]Lead, error)
}

// ListOptions filters a repository listing.
type ListOptions struct {
	Pipeline        pipeline.Kind
	IncludeArchived bool
}

// PipelineSource resolves the phase list a lead's phase must belong to.
type PipelineSource interface {
	Get(ctx context.Context, kind pipeline.Kind) (*pipeline.Pipeline, error)
}

// AssigneeDirectory resolves assignee references.
type AssigneeDirectory interface {
	Lookup(ctx context.Context, id string) (assignee.Person, error)
}
