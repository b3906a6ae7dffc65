package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hogar-conectado/internal/middleware"
	"hogar-conectado/internal/repository"
	"hogar-conectado/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductRequest represents the product create/update payload
type ProductRequest struct {
	CategoryID     string  `json:"category_id" validate:"required,uuid"`
	Brand          string  `json:"brand" validate:"required"`
	Model          string  `json:"model" validate:"required"`
	Description    string  `json:"description"`
	BasePrice      float64 `json:"base_price" validate:"required,gt=0"`
	ImageURL       string  `json:"image_url"`
	StockQuantity  int     `json:"stock_quantity" validate:"gte=0"`
	StockAvailable bool    `json:"stock_available"`
	Active         *bool   `json:"active"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	defaultMarkup  float64
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, defaultMarkup float64, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		defaultMarkup:  defaultMarkup,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes. Reads are public; writes
// require an authenticated staff account and deletion requires admin.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/productos", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/marcas", h.Brands)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/precios", h.Prices)

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

func (h *ProductHandler) input(req ProductRequest) (service.ProductInput, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return service.ProductInput{}, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return service.ProductInput{
		CategoryID:     categoryID,
		Brand:          req.Brand,
		Model:          req.Model,
		Description:    req.Description,
		BasePrice:      req.BasePrice,
		ImageURL:       req.ImageURL,
		StockQuantity:  req.StockQuantity,
		StockAvailable: req.StockAvailable,
		Active:         active,
	}, nil
}

// List handles product listing with filters, search, pagination and sorting.
// Query parameters follow the client: categoria, marca, disponible, buscar,
// pagina, limite, orden, direccion.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("pagina"))
	pageSize, _ := strconv.Atoi(q.Get("limite"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	// Free-text search takes precedence over filters
	if search := strings.TrimSpace(q.Get("buscar")); search != "" {
		products, total, err := h.productService.Search(r.Context(), search, page, pageSize)
		if err != nil {
			h.logger.Error("Failed to search products", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to search products")
			return
		}
		middleware.RespondWithJSON(w, http.StatusOK, newListResponse(products, page, pageSize, total))
		return
	}

	filter := repository.ProductFilter{Brand: strings.TrimSpace(q.Get("marca"))}

	if categoryParam := q.Get("categoria"); categoryParam != "" {
		categoryID, err := uuid.Parse(categoryParam)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
			return
		}
		filter.CategoryID = &categoryID
	}

	if availableParam := q.Get("disponible"); availableParam != "" {
		available, err := strconv.ParseBool(availableParam)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid disponible value")
			return
		}
		filter.Available = &available
	}

	sortOrder := repository.SortOrderDesc
	if strings.EqualFold(q.Get("direccion"), "asc") {
		sortOrder = repository.SortOrderAsc
	}

	products, total, err := h.productService.List(r.Context(), filter, page, pageSize, q.Get("orden"), sortOrder)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, newListResponse(products, page, pageSize, total))
}

// Brands handles listing the distinct brands of a category
func (h *ProductHandler) Brands(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(r.URL.Query().Get("categoria"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	brands, err := h.productService.Brands(r.Context(), categoryID)
	if err != nil {
		h.logger.Error("Failed to list brands", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list brands")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brands)
}

// Get handles fetching one product
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Prices handles the price breakdown of a product at a given markup.
// The markup defaults to the configured business default.
func (h *ProductHandler) Prices(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	markup := h.defaultMarkup
	if markupParam := r.URL.Query().Get("porcentaje"); markupParam != "" {
		markup, err = strconv.ParseFloat(markupParam, 64)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid markup percentage")
			return
		}
	}

	prices, err := h.productService.PricesFor(r.Context(), id, markup)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrInvalidMarkupFormat):
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid markup percentage")
		default:
			h.logger.Error("Failed to compute product prices", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute prices")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, prices)
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := h.input(req)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	product, err := h.productService.Create(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err, "Failed to create product")
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("brand", product.Brand),
		zap.String("model", product.Model),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles product updates
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := h.input(req)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	product, err := h.productService.Update(r.Context(), id, input)
	if err != nil {
		h.respondServiceError(w, err, "Failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductHandler) respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, service.ErrUnknownCategory):
		middleware.RespondWithError(w, http.StatusBadRequest, "product category does not exist")
	case errors.Is(err, service.ErrBrandRequired),
		errors.Is(err, service.ErrModelRequired),
		errors.Is(err, service.ErrInvalidBasePrice):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(logMsg, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
