package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/imironov/notekeeper/internal/common"
	"github.com/imironov/notekeeper/internal/dbx"
	"github.com/imironov/notekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	// Secondary sort on id keeps the order deterministic when two notes
	// share a creation timestamp.
	query :=
		`SELECT id, user_id, title, content, status, created_at FROM notes
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Status, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {

	query :=
		`INSERT INTO notes (id, user_id, title, content, status)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, note.Status).Scan(&note.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, userID string, upd models.NoteUpdate) (*models.Note, error) {
	// COALESCE keeps columns whose update field is nil; a miss on id or
	// owner scans zero rows, which is reported as not found either way.
	query :=
		`UPDATE notes
		 SET title = COALESCE($1, title),
		     content = COALESCE($2, content),
		     status = COALESCE($3, status)
		 WHERE id = $4 AND user_id = $5
		 RETURNING id, user_id, title, content, status, created_at
		 `

	n := &models.Note{}
	err := r.db.QueryRowContext(ctx, query,
		upd.Title, upd.Content, upd.Status, id, userID).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Status, &n.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query :=
		`DELETE FROM notes
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}

	return nil
}
