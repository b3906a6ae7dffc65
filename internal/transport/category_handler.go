package transport

import (
	"errors"
	"net/http"

	"hogar-conectado/internal/middleware"
	"hogar-conectado/internal/repository"
	"hogar-conectado/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryRequest represents the category create/update payload
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Active      *bool  `json:"active"`
}

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

// RegisterRoutes registers all category routes. Reads are public; writes
// require an authenticated staff account and deletion requires admin.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/categorias", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)

			r.Group(func(r chi.Router) {
				r.Use(adminMiddleware)
				r.Delete("/{id}", h.Delete)
			})
		})
	})
}

func (h *CategoryHandler) input(req CategoryRequest) service.CategoryInput {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Active:      active,
	}
}

// List handles listing all categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Get handles fetching one category
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	category, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "category not found")
			return
		}
		h.logger.Error("Failed to get category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Create handles category creation
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categoryService.Create(r.Context(), h.input(req))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryAlreadyExists):
			middleware.RespondWithError(w, http.StatusConflict, "category with this name already exists")
		case errors.Is(err, service.ErrCategoryNameRequired):
			middleware.RespondWithError(w, http.StatusBadRequest, "category name is required")
		default:
			h.logger.Error("Failed to create category", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create category")
		}
		return
	}

	h.logger.Info("Category created", zap.String("category_id", category.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// Update handles category updates
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categoryService.Update(r.Context(), id, h.input(req))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, repository.ErrCategoryAlreadyExists):
			middleware.RespondWithError(w, http.StatusConflict, "category with this name already exists")
		case errors.Is(err, service.ErrCategoryNameRequired):
			middleware.RespondWithError(w, http.StatusBadRequest, "category name is required")
		default:
			h.logger.Error("Failed to update category", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update category")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Delete handles category deletion
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := h.categoryService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "category not found")
			return
		}
		h.logger.Error("Failed to delete category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}

	h.logger.Info("Category deleted", zap.String("category_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
