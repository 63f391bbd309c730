package http

import (
	"log/slog"
	"net/http"
	"time"
)

type sessionResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.authenticator.Register(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	token, err := s.tokens.Generate(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Account registered", "user_id", user.ID)

	resp := sessionResponse{Token: token}
	resp.User.ID = user.ID
	resp.User.Email = user.Email
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		// Slow down credential guessing a little.
		time.Sleep(200 * time.Millisecond)
		writeError(w, r, err)
		return
	}
	token, err := s.tokens.Generate(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := sessionResponse{Token: token}
	resp.User.ID = user.ID
	resp.User.Email = user.Email
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var payload changePasswordPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.authenticator.ChangePassword(r.Context(), ownerID(r), payload.CurrentPassword, payload.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
