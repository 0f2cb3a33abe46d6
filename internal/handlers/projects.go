package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/statwrap/core/internal/models"
	"github.com/statwrap/core/internal/projectlist"
)

type Projects struct {
	store  *projectlist.Store
	logger *zap.Logger
}

func NewProjects(store *projectlist.Store, logger *zap.Logger) *Projects {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projects{store: store, logger: logger}
}

type appendResponse struct {
	Added   bool           `json:"added"`
	Project models.Project `json:"project"`
}

type favoriteResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

func (h *Projects) ListHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.Load()
	if err != nil {
		h.logger.Error("failed to load project list", zap.Error(err))
		http.Error(w, "Failed to load projects", http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, projects)
}

// AppendHandler adds a project, generating an id when none is supplied.
func (h *Projects) AppendHandler(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		http.Error(w, "Invalid project: "+err.Error(), http.StatusBadRequest)
		return
	}
	if project.ID == "" {
		project.ID = projectlist.NewID()
	}

	added, err := h.store.Append(&project)
	if errors.Is(err, projectlist.ErrInvalidProject) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("failed to save project list", zap.Error(err))
		http.Error(w, "Failed to save project", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
		h.logger.Info("project added", zap.String("id", project.ID), zap.String("path", project.Path))
	}
	writeJSON(w, r, status, appendResponse{Added: added, Project: project})
}

func (h *Projects) FavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	favorite, err := h.store.ToggleFavorite(id)
	if errors.Is(err, projectlist.ErrProjectNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to toggle favorite", zap.String("id", id), zap.Error(err))
		http.Error(w, "Failed to update project", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, favoriteResponse{ID: id, Favorite: favorite})
}
