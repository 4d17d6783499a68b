package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/imironov/notekeeper/internal/common"
	"github.com/imironov/notekeeper/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusConflict, "Username already taken")
		default:
			s.logger.Error(ctx, "register failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	s.logger.Info(ctx, "user registered", "username", user.Username)
	writeJSON(w, http.StatusCreated, registerResponse{Message: "User registered successfully", User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, common.ErrorUnauthorized):
			// Same body for unknown user and wrong password.
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, common.ErrorMisconfigured):
			s.logger.Error(ctx, "login failed: signing secret is not configured")
			writeError(w, http.StatusInternalServerError, "Server misconfiguration")
		default:
			s.logger.Error(ctx, "login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: token})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
