// Package httpapi exposes the note-taking service over HTTP+JSON:
// /auth endpoints are public, /notes endpoints sit behind the bearer-token
// middleware.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/imironov/notekeeper/internal/logging"
	"github.com/imironov/notekeeper/internal/server/services"
)

type Server struct {
	address   string
	users     *services.UserService
	notes     *services.NoteService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us *services.UserService, ns *services.NoteService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		notes:     ns,
		jwtSecret: []byte(secretKey),
	}
}

// Handler builds the route table. Split from Run so tests can drive the whole
// stack through httptest without opening a socket.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()

	router.GET("/ping", s.handlePing)
	router.POST("/auth/register", s.handleRegister)
	router.POST("/auth/login", s.handleLogin)

	router.GET("/notes", s.withAuth(s.handleListNotes))
	router.POST("/notes", s.withAuth(s.handleCreateNote))
	router.PUT("/notes/:id", s.withAuth(s.handleUpdateNote))
	router.DELETE("/notes/:id", s.withAuth(s.handleDeleteNote))

	// Preflight requests are answered by the CORS wrapper's headers alone.
	router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return withCORS(router)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
