package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/auth"
)

type contextKey string

const ownerIDKey contextKey = "owner_id"

// requireAuth validates the Bearer token and stashes the user ID in the
// request context. Every /api route except register/login goes through it.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		claims, err := s.tokens.Validate(token)
		if err != nil {
			writeError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), ownerIDKey, claims.UserID)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		// Browsers cannot set headers on websocket dials, so the token may
		// ride in the query string instead.
		if token := r.URL.Query().Get("token"); token != "" {
			return token, nil
		}
		return "", auth.ErrMissingToken
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", auth.ErrInvalidToken
	}
	return strings.TrimSpace(header[len(prefix):]), nil
}

// ownerID returns the authenticated user ID placed by requireAuth.
func ownerID(r *http.Request) string {
	if id, ok := r.Context().Value(ownerIDKey).(string); ok {
		return id
	}
	return ""
}
