package httpapi

// Shared fixtures: an in-memory repository manager backing real services, so
// handler tests exercise the full stack from router to store.

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/imironov/notekeeper/internal/common"
	"github.com/imironov/notekeeper/internal/dbx"
	"github.com/imironov/notekeeper/internal/logging"
	"github.com/imironov/notekeeper/internal/server/config"
	"github.com/imironov/notekeeper/internal/server/models"
	notesrepo "github.com/imironov/notekeeper/internal/server/repositories/notes"
	usersrepo "github.com/imironov/notekeeper/internal/server/repositories/users"
	"github.com/imironov/notekeeper/internal/server/services"
)

// ---- test logger ----

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

// ---- in-memory repositories ----

type memUsersRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // by username
	calls int
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{users: map[string]*models.User{}}
}

func (r *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.users[u.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.CreatedAt = time.Now()
	r.users[u.Username] = u
	return u, nil
}

func (r *memUsersRepo) GetUserByLogin(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r *memUsersRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	_, ok := r.users[username]
	return ok, nil
}

type memNotesRepo struct {
	mu    sync.Mutex
	notes map[string]*models.Note // by id
	seq   int
	calls int
}

func newMemNotesRepo() *memNotesRepo {
	return &memNotesRepo{notes: map[string]*models.Note{}}
}

func (r *memNotesRepo) accessCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *memNotesRepo) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	result := []models.Note{}
	for _, n := range r.notes {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *memNotesRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.seq++
	n.CreatedAt = time.Unix(int64(r.seq), 0)
	r.notes[n.ID] = n
	return n, nil
}

func (r *memNotesRepo) Update(ctx context.Context, id, userID string, upd models.NoteUpdate) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	if upd.Status != nil {
		n.Status = *upd.Status
	}
	cp := *n
	return &cp, nil
}

func (r *memNotesRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.notes, id)
	return nil
}

type memRepoManager struct {
	u *memUsersRepo
	n *memNotesRepo
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *memRepoManager) Notes(db dbx.DBTX) notesrepo.Repository       { return m.n }

// ---- server fixture ----

type fixture struct {
	handler http.Handler
	users   *memUsersRepo
	notes   *memNotesRepo
}

func newFixture(t *testing.T, secret string) *fixture {
	t.Helper()

	rm := &memRepoManager{u: newMemUsersRepo(), n: newMemNotesRepo()}
	cfg := &config.Config{SecretKey: secret, TokenValidityDuration: time.Hour}
	us := services.NewUserService(nil, rm, cfg)
	ns := services.NewNoteService(nil, rm)
	s := NewServer(":0", nopLogger{}, us, ns, secret)

	return &fixture{handler: s.Handler(), users: rm.u, notes: rm.n}
}

// do sends a JSON request through the whole handler chain.
func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

// register + login, returning a valid token for the user.
func (f *fixture) loginAs(t *testing.T, username string) string {
	t.Helper()

	creds := map[string]string{"username": username, "password": "pw-" + username}
	if rec := f.do(t, http.MethodPost, "/auth/register", "", creds); rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	rec := f.do(t, http.MethodPost, "/auth/login", "", creds)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	resp := decode[loginResponse](t, rec)
	if resp.Token == "" {
		t.Fatalf("login %s: empty token", username)
	}
	return resp.Token
}

func (f *fixture) createNote(t *testing.T, token, title, content string) models.Note {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/notes", token, map[string]string{"title": title, "content": content})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create note: status %d body %s", rec.Code, rec.Body.String())
	}
	return decode[models.Note](t, rec)
}
