package transport

import (
	"errors"
	"net/http"
	"strconv"

	"hogar-conectado/internal/middleware"
	"hogar-conectado/internal/money"
	"hogar-conectado/internal/pricing"
	"hogar-conectado/internal/repository"
	"hogar-conectado/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuoteRequest represents the stateless quote calculation payload
type QuoteRequest struct {
	BasePrice     float64 `json:"base_price" validate:"required"`
	MarkupPercent float64 `json:"markup_percent"`
}

// QuoteResponse carries the computed price points, raw and display-formatted
type QuoteResponse struct {
	Cash                 float64 `json:"cash"`
	ThreeInstallmentUnit float64 `json:"three_installment_unit"`
	SixInstallmentUnit   float64 `json:"six_installment_unit"`
	CashFormatted        string  `json:"cash_formatted"`
	ThreeFormatted       string  `json:"three_installment_formatted"`
	SixFormatted         string  `json:"six_installment_formatted"`
}

// QuoteMessageRequest represents the quote message payload
type QuoteMessageRequest struct {
	Category      string  `json:"category" validate:"required"`
	Brand         string  `json:"brand" validate:"required"`
	Model         string  `json:"model" validate:"required"`
	Detail        string  `json:"detail"`
	BasePrice     float64 `json:"base_price" validate:"required"`
	MarkupPercent float64 `json:"markup_percent"`
}

// StockInquiryRequest represents the stock inquiry message payload
type StockInquiryRequest struct {
	ProductID string `json:"product_id"`
	Category  string `json:"category" validate:"required"`
	Brand     string `json:"brand" validate:"required"`
	Model     string `json:"model" validate:"required"`
}

// CreateQuotationRequest represents the persisted quotation payload
type CreateQuotationRequest struct {
	ContactName   string   `json:"contact_name" validate:"required"`
	ContactPhone  string   `json:"contact_phone"`
	ProductID     string   `json:"product_id" validate:"required,uuid"`
	Quantity      int      `json:"quantity"`
	MarkupPercent *float64 `json:"markup_percent"`
	PaymentMode   string   `json:"payment_mode" validate:"required"`
}

// UpdateQuotationStatusRequest represents the status transition payload
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// QuotationHandler handles HTTP requests for quote computation, share
// message rendering and the persisted quotation lifecycle
type QuotationHandler struct {
	quotationService service.QuotationService
	formatter        *money.Formatter
	logger           *zap.Logger
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService service.QuotationService, formatter *money.Formatter, logger *zap.Logger) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		formatter:        formatter,
		logger:           logger,
	}
}

// RegisterRoutes registers quotation routes. The stateless cotizador
// endpoints are public (rate limited at the server level); the persisted
// quotation lifecycle requires an authenticated staff account.
func (h *QuotationHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/api/cotizador/calcular", h.Calculate)
	r.Post("/api/cotizador/mensaje", h.QuoteMessage)
	r.Post("/api/consultas-stock/mensaje", h.StockInquiryMessage)

	r.Route("/api/cotizaciones", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}/estado", h.UpdateStatus)
	})
}

func (h *QuotationHandler) quoteResponse(quote pricing.Quote) QuoteResponse {
	return QuoteResponse{
		Cash:                 quote.Cash,
		ThreeInstallmentUnit: quote.ThreeInstallmentUnit,
		SixInstallmentUnit:   quote.SixInstallmentUnit,
		CashFormatted:        h.formatter.Format(quote.Cash),
		ThreeFormatted:       h.formatter.Format(quote.ThreeInstallmentUnit),
		SixFormatted:         h.formatter.Format(quote.SixInstallmentUnit),
	}
}

// Calculate handles stateless quote computation
func (h *QuotationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.quotationService.Quote(req.BasePrice, req.MarkupPercent)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			middleware.RespondWithError(w, http.StatusBadRequest, "base price must be a positive finite number")
			return
		}
		h.logger.Error("Failed to compute quote", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute quote")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.quoteResponse(quote))
}

// QuoteMessage handles rendering the shareable quotation message
func (h *QuotationHandler) QuoteMessage(w http.ResponseWriter, r *http.Request) {
	var req QuoteMessageRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, quote, err := h.quotationService.QuoteMessage(pricing.QuoteInput{
		Category: req.Category,
		Brand:    req.Brand,
		Model:    req.Model,
		Detail:   req.Detail,
	}, req.BasePrice, req.MarkupPercent)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			middleware.RespondWithError(w, http.StatusBadRequest, "base price must be a positive finite number")
			return
		}
		h.logger.Error("Failed to build quote message", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build quote message")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"quote":   h.quoteResponse(quote),
	})
}

// StockInquiryMessage handles rendering the stock availability inquiry text
func (h *QuotationHandler) StockInquiryMessage(w http.ResponseWriter, r *http.Request) {
	var req StockInquiryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := h.quotationService.StockInquiryMessage(pricing.StockInquiryInput{
		ProductID: req.ProductID,
		Category:  req.Category,
		Brand:     req.Brand,
		Model:     req.Model,
	})

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

// Create handles quotation creation
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuotationRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	quotation, shareURL, err := h.quotationService.Create(r.Context(), service.CreateQuotationInput{
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		ProductID:     productID,
		Quantity:      req.Quantity,
		MarkupPercent: req.MarkupPercent,
		PaymentMode:   req.PaymentMode,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrInvalidPaymentMode):
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid payment mode")
		case errors.Is(err, service.ErrContactNameRequired):
			middleware.RespondWithError(w, http.StatusBadRequest, "contact name is required")
		case errors.Is(err, pricing.ErrInvalidInput):
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid markup percentage")
		default:
			h.logger.Error("Failed to create quotation", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create quotation")
		}
		return
	}

	h.logger.Info("Quotation created",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("product_id", quotation.ProductID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"quotation":    quotation,
		"whatsapp_url": shareURL,
	})
}

// List handles quotation listing with optional status filter
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("pagina"))
	pageSize, _ := strconv.Atoi(q.Get("limite"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	quotations, total, err := h.quotationService.List(r.Context(), q.Get("estado"), page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuotationStatus) {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid quotation status")
			return
		}
		h.logger.Error("Failed to list quotations", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list quotations")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, newListResponse(quotations, page, pageSize, total))
}

// Get handles fetching one quotation
func (h *QuotationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid quotation ID")
		return
	}

	quotation, err := h.quotationService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrQuotationNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "quotation not found")
			return
		}
		h.logger.Error("Failed to get quotation", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get quotation")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, quotation)
}

// UpdateStatus handles quotation status transitions
func (h *QuotationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid quotation ID")
		return
	}

	var req UpdateQuotationStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quotation, err := h.quotationService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrQuotationNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "quotation not found")
		case errors.Is(err, service.ErrInvalidQuotationStatus):
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid quotation status")
		default:
			h.logger.Error("Failed to update quotation status", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update quotation status")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, quotation)
}
