package cachekit

import "context"

// Repository is the cache-oblivious async lookup-by-id collaborator
// consulted on a cache miss. It never consults the cache.
type Repository[T any] interface {
	// FetchByID returns the entity for id, or (nil, nil) if absent.
	// Failures surface as a RepositoryError after the engine's retry
	// budget for the operation is exhausted.
	FetchByID(ctx context.Context, id string) (*T, error)
}

// RepositoryFunc adapts a function to the Repository interface.
type RepositoryFunc[T any] func(ctx context.Context, id string) (*T, error)

// FetchByID implements Repository.
func (f RepositoryFunc[T]) FetchByID(ctx context.Context, id string) (*T, error) {
	return f(ctx, id)
}
