// Package services contains application services for the NoteKeeper CLI:
// authentication against the server and note CRUD with an offline-readable
// local cache.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/imironov/notekeeper/internal/client/api"
	"github.com/imironov/notekeeper/internal/client/models"
	"github.com/imironov/notekeeper/internal/client/repositories/notecache"
)

// ErrOffline is returned when the server is unreachable and the requested
// operation cannot be served from the local cache.
var ErrOffline = errors.New("server unreachable")

// ServerAPI is the slice of the HTTP client the service needs.
// *api.Client satisfies it; tests provide stubs.
type ServerAPI interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	IsLoggedIn() bool
	Logout()
	ListNotes(ctx context.Context) ([]models.Note, error)
	CreateNote(ctx context.Context, title, content string) (*models.Note, error)
	UpdateNote(ctx context.Context, id string, title, content, status *string) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// NoteService drives notes for the CLI. Reads prefer the server and fall
// back to the cache when it is unreachable; writes require the server.
type NoteService struct {
	api   ServerAPI
	cache notecache.Repository
}

func NewNoteService(a ServerAPI, cache notecache.Repository) *NoteService {
	return &NoteService{api: a, cache: cache}
}

// isServerReply reports whether err carries an actual answer from the server
// rather than a transport failure.
func isServerReply(err error) bool {
	return errors.Is(err, api.ErrUnauthorized) ||
		errors.Is(err, api.ErrNotFound) ||
		errors.Is(err, api.ErrValidation) ||
		errors.Is(err, api.ErrConflict)
}

func (s *NoteService) Register(ctx context.Context, username, password string) error {
	return s.api.Register(ctx, username, password)
}

// Login authenticates and drops any stale cache left by a previous user.
func (s *NoteService) Login(ctx context.Context, username, password string) error {
	if err := s.api.Login(ctx, username, password); err != nil {
		return err
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to reset cache: %w", err)
	}
	return nil
}

func (s *NoteService) Logout(ctx context.Context) error {
	s.api.Logout()
	return s.cache.Clear(ctx)
}

func (s *NoteService) IsLoggedIn() bool {
	return s.api.IsLoggedIn()
}

func (s *NoteService) Ping(ctx context.Context) error {
	return s.api.Ping(ctx)
}

// List fetches the user's notes from the server and refreshes the cache.
// When the server is unreachable the cached list is returned instead,
// flagged by the second return value.
func (s *NoteService) List(ctx context.Context) ([]models.Note, bool, error) {
	notes, err := s.api.ListNotes(ctx)
	if err == nil {
		if cacheErr := s.cache.ReplaceAll(ctx, notes); cacheErr != nil {
			return nil, false, fmt.Errorf("failed to refresh cache: %w", cacheErr)
		}
		return notes, false, nil
	}

	if isServerReply(err) {
		return nil, false, err
	}

	cached, cacheErr := s.cache.ListAll(ctx)
	if cacheErr != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", cacheErr)
	}
	return cached, true, nil
}

func (s *NoteService) Create(ctx context.Context, title, content string) (*models.Note, error) {
	note, err := s.api.CreateNote(ctx, title, content)
	if err != nil {
		if isServerReply(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrOffline, err)
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, id string, title, content, status *string) (*models.Note, error) {
	note, err := s.api.UpdateNote(ctx, id, title, content, status)
	if err != nil {
		if isServerReply(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrOffline, err)
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteNote(ctx, id); err != nil {
		if isServerReply(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrOffline, err)
	}
	return nil
}
