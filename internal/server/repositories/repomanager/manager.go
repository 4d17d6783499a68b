package repomanager

import (
	"context"
	"database/sql"

	"github.com/imironov/notekeeper/internal/dbx"
	"github.com/imironov/notekeeper/internal/server/repositories/notes"
	"github.com/imironov/notekeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}
