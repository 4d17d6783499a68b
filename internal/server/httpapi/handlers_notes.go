package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/imironov/notekeeper/internal/common"
	"github.com/imironov/notekeeper/internal/server/models"
)

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// updateNoteRequest uses pointers so that an absent field can be told apart
// from an explicit empty string: absent fields keep their stored value.
type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

type deleteNoteResponse struct {
	Success bool `json:"success"`
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	result, err := s.notes.List(ctx, identity.UserID)
	if err != nil {
		s.logger.Error(ctx, "list notes failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch notes")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	note, err := s.notes.Create(ctx, identity.UserID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeError(w, http.StatusBadRequest, "Title is required")
			return
		}
		s.logger.Error(ctx, "create note failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create note")
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ctx := r.Context()
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := models.NoteUpdate{Title: req.Title, Content: req.Content, Status: req.Status}
	note, err := s.notes.Update(ctx, p.ByName("id"), identity.UserID, upd)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "Title is required")
		case errors.Is(err, common.ErrorNotFound):
			// A note owned by someone else answers exactly like a missing one.
			writeError(w, http.StatusNotFound, "Note not found")
		default:
			s.logger.Error(ctx, "update note failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update note")
		}
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ctx := r.Context()
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	if err := s.notes.Delete(ctx, p.ByName("id"), identity.UserID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Note not found")
			return
		}
		s.logger.Error(ctx, "delete note failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}

	writeJSON(w, http.StatusOK, deleteNoteResponse{Success: true})
}
