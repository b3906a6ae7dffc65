package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"hogar-conectado/internal/domain"
	"hogar-conectado/internal/money"
	"hogar-conectado/internal/pricing"
	"hogar-conectado/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuotationStatus = errors.New("invalid quotation status")
	ErrInvalidPaymentMode     = errors.New("invalid payment mode")
	ErrContactNameRequired    = errors.New("contact name is required")
)

// CreateQuotationInput carries everything needed to persist a quotation.
// MarkupPercent is optional; the configured default applies when nil.
type CreateQuotationInput struct {
	ContactName   string
	ContactPhone  string
	ProductID     uuid.UUID
	Quantity      int
	MarkupPercent *float64
	PaymentMode   string
}

// QuotationService defines the quotation business logic: the stateless
// quote/message operations used by the cotizador screen and the persisted
// quotation lifecycle.
type QuotationService interface {
	Quote(basePrice, markupPercent float64) (pricing.Quote, error)
	QuoteMessage(input pricing.QuoteInput, basePrice, markupPercent float64) (string, pricing.Quote, error)
	StockInquiryMessage(input pricing.StockInquiryInput) string
	Create(ctx context.Context, input CreateQuotationInput) (*domain.Quotation, string, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, status string, page, pageSize int) ([]*domain.Quotation, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Quotation, error)
}

type quotationService struct {
	quotationRepo repository.QuotationRepository
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	calculator    *pricing.Calculator
	formatter     *money.Formatter
	defaultMarkup float64
}

// NewQuotationService creates a new instance of QuotationService
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	calculator *pricing.Calculator,
	formatter *money.Formatter,
	defaultMarkup float64,
) QuotationService {
	return &quotationService{
		quotationRepo: quotationRepo,
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		calculator:    calculator,
		formatter:     formatter,
		defaultMarkup: defaultMarkup,
	}
}

// Quote computes the three price points for a base price and markup.
func (s *quotationService) Quote(basePrice, markupPercent float64) (pricing.Quote, error) {
	return s.calculator.Compute(basePrice, markupPercent)
}

// QuoteMessage computes the quote and renders the shareable message text.
func (s *quotationService) QuoteMessage(input pricing.QuoteInput, basePrice, markupPercent float64) (string, pricing.Quote, error) {
	quote, err := s.calculator.Compute(basePrice, markupPercent)
	if err != nil {
		return "", pricing.Quote{}, err
	}
	return pricing.BuildQuoteMessage(input, quote, s.formatter), quote, nil
}

// StockInquiryMessage renders the stock availability inquiry text.
func (s *quotationService) StockInquiryMessage(input pricing.StockInquiryInput) string {
	return pricing.BuildStockInquiryMessage(input)
}

// Create resolves the product, computes its prices, renders the WhatsApp
// message and persists the quotation snapshot. It returns the quotation and
// a wa.me share URL pointing at the customer's phone.
func (s *quotationService) Create(ctx context.Context, input CreateQuotationInput) (*domain.Quotation, string, error) {
	if strings.TrimSpace(input.ContactName) == "" {
		return nil, "", ErrContactNameRequired
	}
	if !domain.ValidPaymentMode(input.PaymentMode) {
		return nil, "", ErrInvalidPaymentMode
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, "", err
	}

	category, err := s.categoryRepo.FindByID(ctx, product.CategoryID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve product category: %w", err)
	}

	markup := s.defaultMarkup
	if input.MarkupPercent != nil {
		markup = *input.MarkupPercent
	}

	quote, err := s.calculator.Compute(product.BasePrice, markup)
	if err != nil {
		return nil, "", err
	}

	message := pricing.BuildQuoteMessage(pricing.QuoteInput{
		Category: category.Name,
		Brand:    product.Brand,
		Model:    product.Model,
		Detail:   product.Description,
	}, quote, s.formatter)

	now := time.Now()
	quotation := &domain.Quotation{
		ID:                   uuid.New(),
		ContactName:          strings.TrimSpace(input.ContactName),
		ContactPhone:         strings.TrimSpace(input.ContactPhone),
		ProductID:            product.ID,
		Category:             category.Name,
		Brand:                product.Brand,
		Model:                product.Model,
		Detail:               product.Description,
		Quantity:             input.Quantity,
		BasePrice:            product.BasePrice,
		MarkupPercent:        markup,
		CashPrice:            quote.Cash,
		ThreeInstallmentUnit: quote.ThreeInstallmentUnit,
		SixInstallmentUnit:   quote.SixInstallmentUnit,
		PaymentMode:          input.PaymentMode,
		Status:               domain.QuotationStatusPending,
		Message:              message,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return nil, "", err
	}

	return quotation, whatsAppURL(quotation.ContactPhone, message), nil
}

// Get retrieves a quotation by ID
func (s *quotationService) Get(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	return s.quotationRepo.FindByID(ctx, id)
}

// List retrieves quotations, optionally filtered by status
func (s *quotationService) List(ctx context.Context, status string, page, pageSize int) ([]*domain.Quotation, int, error) {
	if status != "" && !domain.ValidQuotationStatus(status) {
		return nil, 0, ErrInvalidQuotationStatus
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.quotationRepo.List(ctx, status, page, pageSize)
}

// UpdateStatus moves a quotation through its follow-up lifecycle
func (s *quotationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Quotation, error) {
	if !domain.ValidQuotationStatus(status) {
		return nil, ErrInvalidQuotationStatus
	}

	if err := s.quotationRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return s.quotationRepo.FindByID(ctx, id)
}

// whatsAppURL builds a wa.me link that opens a chat with the message
// pre-filled. The phone is reduced to digits; without one the link opens
// WhatsApp with only the text.
func whatsAppURL(phone, message string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return "https://wa.me/?text=" + url.QueryEscape(message)
	}
	return "https://wa.me/" + digits.String() + "?text=" + url.QueryEscape(message)
}
