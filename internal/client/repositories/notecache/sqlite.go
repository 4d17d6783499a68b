package notecache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/imironov/notekeeper/internal/client/models"
	"github.com/imironov/notekeeper/internal/dbx"
)

// SQLiteRepository implements Repository on top of the local cache database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll swaps the cached list inside a single transaction, so a reader
// never observes a half-written cache.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, notes []models.Note) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}

		query := `INSERT INTO notes (id, title, content, status, created_at) VALUES (?, ?, ?, ?, ?)`
		for _, n := range notes {
			_, err := tx.ExecContext(ctx, query,
				n.ID, n.Title, n.Content, n.Status, n.CreatedAt.UTC().Format(time.RFC3339Nano))
			if err != nil {
				return fmt.Errorf("failed to insert note: %w", err)
			}
		}
		return nil
	})
}

// ListAll returns the cached notes ordered the way the server would list
// them: most recent first, id as a tiebreak.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.Note, error) {
	query := `SELECT id, title, content, status, created_at FROM notes ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := []models.Note{}
	for rows.Next() {
		var item models.Note
		var createdAt string
		if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.Status, &createdAt); err != nil {
			return nil, err
		}
		if item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
