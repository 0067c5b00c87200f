package usecase

import (
	"context"
	"time"
)

// CatalogCache is the slice of the Redis wrapper the usecases need; tests
// swap in in-memory fakes.
type CatalogCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	InvalidateCatalog(ctx context.Context) error
}
