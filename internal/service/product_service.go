package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hogar-conectado/internal/domain"
	"hogar-conectado/internal/pricing"
	"hogar-conectado/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrBrandRequired       = errors.New("product brand is required")
	ErrModelRequired       = errors.New("product model is required")
	ErrInvalidBasePrice    = errors.New("base price must be a positive number")
	ErrUnknownCategory     = errors.New("product category does not exist")
	ErrInvalidMarkupFormat = errors.New("markup percentage must be a finite number")
)

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	CategoryID     uuid.UUID
	Brand          string
	Model          string
	Description    string
	BasePrice      float64
	ImageURL       string
	StockQuantity  int
	StockAvailable bool
	Active         bool
}

// InstallmentPlan is one financing option of a product price breakdown.
type InstallmentPlan struct {
	Total float64 `json:"total"`
	Unit  float64 `json:"unit"`
}

// ProductPrices is the full price breakdown of a product at a given markup:
// the cash price plus both installment plans.
type ProductPrices struct {
	MarkupPercent     float64         `json:"markup_percent"`
	Cash              float64         `json:"cash"`
	ThreeInstallments InstallmentPlan `json:"three_installments"`
	SixInstallments   InstallmentPlan `json:"six_installments"`
}

// ProductService defines the interface for product business logic
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter repository.ProductFilter, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error)
	Brands(ctx context.Context, categoryID uuid.UUID) ([]string, error)
	PricesFor(ctx context.Context, id uuid.UUID, markupPercent float64) (*ProductPrices, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	calculator   *pricing.Calculator
}

// NewProductService creates a new instance of ProductService
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	calculator *pricing.Calculator,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		calculator:   calculator,
	}
}

func (s *productService) validate(ctx context.Context, input *ProductInput) error {
	input.Brand = strings.TrimSpace(input.Brand)
	input.Model = strings.TrimSpace(input.Model)

	if input.Brand == "" {
		return ErrBrandRequired
	}
	if input.Model == "" {
		return ErrModelRequired
	}
	if input.BasePrice <= 0 {
		return ErrInvalidBasePrice
	}

	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrUnknownCategory
		}
		return fmt.Errorf("failed to check category: %w", err)
	}

	return nil
}

// Create validates and stores a new product
func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:             uuid.New(),
		CategoryID:     input.CategoryID,
		Brand:          input.Brand,
		Model:          strings.ToUpper(input.Model),
		Description:    strings.TrimSpace(input.Description),
		BasePrice:      input.BasePrice,
		ImageURL:       input.ImageURL,
		StockQuantity:  input.StockQuantity,
		StockAvailable: input.StockAvailable,
		Active:         input.Active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// Update validates and saves changes to an existing product
func (s *productService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Brand = input.Brand
	product.Model = strings.ToUpper(input.Model)
	product.Description = strings.TrimSpace(input.Description)
	product.BasePrice = input.BasePrice
	product.ImageURL = input.ImageURL
	product.StockQuantity = input.StockQuantity
	product.StockAvailable = input.StockAvailable
	product.Active = input.Active
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a product
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// Get retrieves a product by ID
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// List retrieves products with filtering, pagination and sorting
func (s *productService) List(ctx context.Context, filter repository.ProductFilter, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.productRepo.List(ctx, filter, page, pageSize, sortBy, sortOrder)
}

// Search retrieves products matching a free-text query
func (s *productService) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.productRepo.Search(ctx, query, page, pageSize)
}

// Brands lists distinct brands within a category
func (s *productService) Brands(ctx context.Context, categoryID uuid.UUID) ([]string, error) {
	return s.productRepo.DistinctBrands(ctx, categoryID)
}

// PricesFor computes the cash and installment price breakdown of a product
// at the given markup percentage.
func (s *productService) PricesFor(ctx context.Context, id uuid.UUID, markupPercent float64) (*ProductPrices, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quote, err := s.calculator.Compute(product.BasePrice, markupPercent)
	if err != nil {
		return nil, ErrInvalidMarkupFormat
	}

	return &ProductPrices{
		MarkupPercent: markupPercent,
		Cash:          quote.Cash,
		ThreeInstallments: InstallmentPlan{
			Total: quote.ThreeInstallmentUnit * 3,
			Unit:  quote.ThreeInstallmentUnit,
		},
		SixInstallments: InstallmentPlan{
			Total: quote.SixInstallmentUnit * 6,
			Unit:  quote.SixInstallmentUnit,
		},
	}, nil
}
