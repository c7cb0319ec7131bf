package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/hpfs74/family-budget/internal/api/middleware"
	"github.com/hpfs74/family-budget/internal/domain"
	"github.com/hpfs74/family-budget/internal/dynamo"
)

// CategoriesHandler handles category CRUD endpoints.
type CategoriesHandler struct {
	repo dynamo.CategoryRepository
	log  zerolog.Logger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(repo dynamo.CategoryRepository, log zerolog.Logger) *CategoriesHandler {
	return &CategoriesHandler{repo: repo, log: log}
}

// List handles GET /categories
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list categories")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// Create handles POST /categories
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := category.Validate(); err != nil {
		writeServiceError(w, h.log, "CreateCategory", err)
		return
	}

	now := time.Now().UTC()
	category.CategoryID = uuid.New().String()
	category.Active = true
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := h.repo.PutCategory(r.Context(), &category); err != nil {
		writeServiceError(w, h.log, "CreateCategory", err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, &category)
}

// Get handles GET /categories/{id}
func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	category, err := h.repo.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "category not found")
			return
		}
		writeServiceError(w, h.log, "GetCategory", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, category)
}

// Update handles PUT /categories/{id}
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := h.repo.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "category not found")
			return
		}
		writeServiceError(w, h.log, "UpdateCategory", err)
		return
	}

	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := category.Validate(); err != nil {
		writeServiceError(w, h.log, "UpdateCategory", err)
		return
	}

	category.CategoryID = existing.CategoryID
	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = time.Now().UTC()

	if err := h.repo.PutCategory(r.Context(), &category); err != nil {
		writeServiceError(w, h.log, "UpdateCategory", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, &category)
}

// Delete handles DELETE /categories/{id}
//
// Transactions referencing the deleted category are left untouched; the
// soft-reference model tolerates dangling ids.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.repo.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, h.log, "DeleteCategory", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
