// Package notecache stores the last server-provided note list locally,
// so the CLI can still show notes while the server is unreachable.
package notecache

import (
	"context"

	"github.com/imironov/notekeeper/internal/client/models"
)

// Repository describes the local note cache. Implementations are backed by
// a SQLite database.
type Repository interface {
	// ReplaceAll atomically swaps the cached list for the given one.
	ReplaceAll(ctx context.Context, notes []models.Note) error

	// ListAll returns the cached notes, most recent first.
	ListAll(ctx context.Context) ([]models.Note, error)

	// Clear wipes the cache (e.g. on logout).
	Clear(ctx context.Context) error
}
