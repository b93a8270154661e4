package transport

import (
	"fmt"
	"net/http"

	"inventory-api/internal/middleware"
	"inventory-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		// Public routes
		r.Get("/", h.List)
		r.Get("/active", h.ListActive)
		r.Get("/{id}", h.Get)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(adminMiddleware)
				r.Delete("/{id}", h.Delete)
				r.Patch("/{id}/deactivate", h.Deactivate)
			})
		})
	})
}

// List returns all categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// ListActive returns only active categories
func (h *CategoryHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListActive(r.Context())
	if err != nil {
		h.logger.Error("Failed to list active categories", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Get returns a single category by id
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get category", zap.Error(err), zap.Int64("category_id", id))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	if category == nil {
		middleware.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("category %d not found", id))
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Create adds a new category
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCategoryRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categoryService.Create(r.Context(), req)
	if err != nil {
		h.logger.Debug("Category creation failed", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("Category created", zap.Int64("category_id", category.ID), zap.String("name", category.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// Update replaces an existing category
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req service.UpdateCategoryRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categoryService.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Debug("Category update failed", zap.Error(err), zap.Int64("category_id", id))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Delete removes a category without associated products
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	deleted, err := h.categoryService.Delete(r.Context(), id)
	if err != nil {
		h.logger.Debug("Category deletion failed", zap.Error(err), zap.Int64("category_id", id))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	if !deleted {
		middleware.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("category %d not found", id))
		return
	}

	h.logger.Info("Category deleted", zap.Int64("category_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "category deleted successfully"})
}

// Deactivate soft-disables a category without touching its products
func (h *CategoryHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	deactivated, err := h.categoryService.Deactivate(r.Context(), id)
	if err != nil {
		h.logger.Debug("Category deactivation failed", zap.Error(err), zap.Int64("category_id", id))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	if !deactivated {
		middleware.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("category %d not found", id))
		return
	}

	h.logger.Info("Category deactivated", zap.Int64("category_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "category deactivated successfully"})
}
