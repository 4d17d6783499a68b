package notes

import (
	"context"

	"github.com/imironov/notekeeper/internal/server/models"
)

// Repository scopes every operation by owner: the userID argument always
// comes from the authenticated identity, never from client input.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Update(ctx context.Context, id, userID string, upd models.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, id, userID string) error
}
