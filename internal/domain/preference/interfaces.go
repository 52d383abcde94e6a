package preference

import "context"

// Repository is a durable string key-value store. Get returns
// repository.ErrNotFound for keys never written.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
