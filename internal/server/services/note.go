package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/imironov/notekeeper/internal/common"
	"github.com/imironov/notekeeper/internal/server/models"
	"github.com/imironov/notekeeper/internal/server/repositories/repomanager"
)

// NoteService implements per-user note CRUD. The userID on every method is
// the authenticated identity established by the HTTP middleware; a note that
// exists but belongs to someone else behaves exactly like a missing one.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// List returns the user's notes, most recent first.
func (s *NoteService) List(ctx context.Context, userID string) ([]models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return result, nil
}

// Create stores a new note. Title is required; content defaults to the empty
// string and status to models.StatusPending.
func (s *NoteService) Create(ctx context.Context, userID, title, content string) (*models.Note, error) {
	if title == "" {
		return nil, common.ErrorValidation
	}

	note := &models.Note{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Content: content,
		Status:  models.StatusPending,
	}

	repo := s.repomanager.Notes(s.db)
	n, err := repo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return n, nil
}

// Update applies a partial update to the note with the given id, provided it
// belongs to userID. Fields left nil in upd keep their stored values.
func (s *NoteService) Update(ctx context.Context, id, userID string, upd models.NoteUpdate) (*models.Note, error) {
	if upd.Title != nil && *upd.Title == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Notes(s.db)
	n, err := repo.Update(ctx, id, userID, upd)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	return n, nil
}

// Delete removes the note with the given id, provided it belongs to userID.
func (s *NoteService) Delete(ctx context.Context, id, userID string) error {
	repo := s.repomanager.Notes(s.db)
	if err := repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting note: %w", err)
	}
	return nil
}
