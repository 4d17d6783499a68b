// Package cli implements the interactive NoteKeeper command-line client.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/imironov/notekeeper/internal/client/api"
	"github.com/imironov/notekeeper/internal/client/config"
	"github.com/imironov/notekeeper/internal/client/repositories/notecache"
	"github.com/imironov/notekeeper/internal/client/services"
	"github.com/imironov/notekeeper/internal/client/storage"
)

type App struct {
	config   *config.Config
	notes    *services.NoteService
	userName string
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.CacheFile)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewClient(c.ServerEndpointAddr)
	ns := services.NewNoteService(apiClient, notecache.NewSQLiteRepository(db))

	return &App{config: c, notes: ns, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.notes.IsLoggedIn()
}

// status renders the prompt segment showing who is logged in.
func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "not logged in"
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}
