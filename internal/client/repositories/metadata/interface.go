// Package metadata stores small string values on the local disk, grouped by
// scope. Persisted session credentials live in the "credentials" scope.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns ("", nil) when key is not set.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
