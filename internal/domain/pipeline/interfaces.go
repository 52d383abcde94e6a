package pipeline

import "context"

// Repository provides storage for pipelines, keyed by kind.
type Repository interface {
	Get(ctx context.Context, kind Kind) (*Pipeline, error)
	List(ctx context.Context) ([]Pipeline, error)
	Save(ctx context.Context, p *Pipeline) error
}
