package http

import (
	"net/http"
	"strings"
)

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	names, err := s.categories.List(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: names})
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		writeErrorMessage(w, http.StatusUnprocessableEntity, "category name required")
		return
	}

	names, err := s.categories.Add(r.Context(), ownerID(r), payload.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: names})
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var payload renamePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(payload.NewName) == "" {
		writeErrorMessage(w, http.StatusUnprocessableEntity, "new category name required")
		return
	}

	names, err := s.categories.Rename(r.Context(), ownerID(r), r.PathValue("name"), payload.NewName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: names})
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	names, err := s.categories.Remove(r.Context(), ownerID(r), r.PathValue("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: names})
}
