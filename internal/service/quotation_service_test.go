package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"hogar-conectado/internal/domain"
	"hogar-conectado/internal/money"
	"hogar-conectado/internal/pricing"
	"hogar-conectado/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing
type mockQuotationRepository struct {
	quotations map[uuid.UUID]*domain.Quotation
}

func newMockQuotationRepository() *mockQuotationRepository {
	return &mockQuotationRepository{quotations: make(map[uuid.UUID]*domain.Quotation)}
}

func (m *mockQuotationRepository) Create(ctx context.Context, quotation *domain.Quotation) error {
	m.quotations[quotation.ID] = quotation
	return nil
}

func (m *mockQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	quotation, exists := m.quotations[id]
	if !exists {
		return nil, repository.ErrQuotationNotFound
	}
	return quotation, nil
}

func (m *mockQuotationRepository) List(ctx context.Context, status string, page, pageSize int) ([]*domain.Quotation, int, error) {
	var result []*domain.Quotation
	for _, q := range m.quotations {
		if status == "" || q.Status == status {
			result = append(result, q)
		}
	}
	return result, len(result), nil
}

func (m *mockQuotationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	quotation, exists := m.quotations[id]
	if !exists {
		return repository.ErrQuotationNotFound
	}
	quotation.Status = status
	return nil
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error) {
	var result []*domain.Product
	for _, p := range m.products {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockProductRepository) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	return nil, 0, nil
}

func (m *mockProductRepository) DistinctBrands(ctx context.Context, categoryID uuid.UUID) ([]string, error) {
	return nil, nil
}

type mockCategoryRepository struct {
	categories map[uuid.UUID]*domain.Category
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[uuid.UUID]*domain.Category)}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if _, exists := m.categories[category.ID]; !exists {
		return repository.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var result []*domain.Category
	for _, c := range m.categories {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, exists := m.categories[id]
	if !exists {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func newTestQuotationService(t *testing.T) (QuotationService, *mockQuotationRepository, *mockProductRepository, *mockCategoryRepository) {
	t.Helper()
	quotationRepo := newMockQuotationRepository()
	productRepo := newMockProductRepository()
	categoryRepo := newMockCategoryRepository()
	svc := NewQuotationService(
		quotationRepo,
		productRepo,
		categoryRepo,
		pricing.NewCalculator(pricing.DefaultFactors()),
		money.NewARSFormatter(),
		10,
	)
	return svc, quotationRepo, productRepo, categoryRepo
}

func seedCatalog(t *testing.T, productRepo *mockProductRepository, categoryRepo *mockCategoryRepository) *domain.Product {
	t.Helper()
	ctx := context.Background()

	category := &domain.Category{ID: uuid.New(), Name: "Heladeras", Active: true}
	if err := categoryRepo.Create(ctx, category); err != nil {
		t.Fatalf("seeding category: %v", err)
	}

	product := &domain.Product{
		ID:          uuid.New(),
		CategoryID:  category.ID,
		Brand:       "Samsung",
		Model:       "RT38K",
		Description: "No Frost 382L",
		BasePrice:   100000,
		Active:      true,
	}
	if err := productRepo.Create(ctx, product); err != nil {
		t.Fatalf("seeding product: %v", err)
	}
	return product
}

func TestQuotationService_CreateSnapshotsPricesAndMessage(t *testing.T) {
	svc, _, productRepo, categoryRepo := newTestQuotationService(t)
	product := seedCatalog(t, productRepo, categoryRepo)
	ctx := context.Background()

	quotation, shareURL, err := svc.Create(ctx, CreateQuotationInput{
		ContactName:  "Juan Pérez",
		ContactPhone: "+54 9 11 5555-1234",
		ProductID:    product.ID,
		Quantity:     1,
		PaymentMode:  domain.PaymentModeCash,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Default markup of 10% applies when none is given
	if quotation.MarkupPercent != 10 {
		t.Errorf("MarkupPercent = %v, want 10", quotation.MarkupPercent)
	}
	if quotation.CashPrice != 110000 {
		t.Errorf("CashPrice = %v, want 110000", quotation.CashPrice)
	}
	if quotation.Status != domain.QuotationStatusPending {
		t.Errorf("Status = %q, want %q", quotation.Status, domain.QuotationStatusPending)
	}
	if quotation.Category != "Heladeras" || quotation.Brand != "Samsung" || quotation.Model != "RT38K" {
		t.Errorf("product identity not snapshotted: %+v", quotation)
	}
	if !strings.Contains(quotation.Message, "*$110.000*") {
		t.Errorf("message does not contain the formatted cash price:\n%s", quotation.Message)
	}

	// wa.me link targets the digits of the phone with the message pre-filled
	wantPrefix := "https://wa.me/5491155551234?text="
	if !strings.HasPrefix(shareURL, wantPrefix) {
		t.Errorf("share URL = %q, want prefix %q", shareURL, wantPrefix)
	}
	parsed, err := url.Parse(shareURL)
	if err != nil {
		t.Fatalf("share URL does not parse: %v", err)
	}
	if parsed.Query().Get("text") != quotation.Message {
		t.Errorf("share URL text does not round-trip to the message")
	}
}

func TestQuotationService_CreateWithoutPhone(t *testing.T) {
	svc, _, productRepo, categoryRepo := newTestQuotationService(t)
	product := seedCatalog(t, productRepo, categoryRepo)

	_, shareURL, err := svc.Create(context.Background(), CreateQuotationInput{
		ContactName: "Cliente mostrador",
		ProductID:   product.ID,
		PaymentMode: domain.PaymentModeThreeInstallment,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if !strings.HasPrefix(shareURL, "https://wa.me/?text=") {
		t.Errorf("share URL without phone = %q, want wa.me/?text= prefix", shareURL)
	}
}

func TestQuotationService_CreateValidation(t *testing.T) {
	svc, _, productRepo, categoryRepo := newTestQuotationService(t)
	product := seedCatalog(t, productRepo, categoryRepo)
	ctx := context.Background()

	if _, _, err := svc.Create(ctx, CreateQuotationInput{
		ContactName: "   ",
		ProductID:   product.ID,
		PaymentMode: domain.PaymentModeCash,
	}); err != ErrContactNameRequired {
		t.Errorf("blank contact name: err = %v, want ErrContactNameRequired", err)
	}

	if _, _, err := svc.Create(ctx, CreateQuotationInput{
		ContactName: "Juan",
		ProductID:   product.ID,
		PaymentMode: "monthly",
	}); err != ErrInvalidPaymentMode {
		t.Errorf("unknown payment mode: err = %v, want ErrInvalidPaymentMode", err)
	}

	if _, _, err := svc.Create(ctx, CreateQuotationInput{
		ContactName: "Juan",
		ProductID:   uuid.New(),
		PaymentMode: domain.PaymentModeCash,
	}); err != repository.ErrProductNotFound {
		t.Errorf("unknown product: err = %v, want ErrProductNotFound", err)
	}
}

func TestQuotationService_CreateCustomMarkup(t *testing.T) {
	svc, _, productRepo, categoryRepo := newTestQuotationService(t)
	product := seedCatalog(t, productRepo, categoryRepo)

	markup := 25.0
	quotation, _, err := svc.Create(context.Background(), CreateQuotationInput{
		ContactName:   "Ana",
		ProductID:     product.ID,
		MarkupPercent: &markup,
		PaymentMode:   domain.PaymentModeSixInstallment,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if quotation.MarkupPercent != 25 {
		t.Errorf("MarkupPercent = %v, want 25", quotation.MarkupPercent)
	}
	if quotation.CashPrice != 125000 {
		t.Errorf("CashPrice = %v, want 125000", quotation.CashPrice)
	}
}

func TestQuotationService_UpdateStatus(t *testing.T) {
	svc, _, productRepo, categoryRepo := newTestQuotationService(t)
	product := seedCatalog(t, productRepo, categoryRepo)
	ctx := context.Background()

	quotation, _, err := svc.Create(ctx, CreateQuotationInput{
		ContactName: "Juan",
		ProductID:   product.ID,
		PaymentMode: domain.PaymentModeCash,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, quotation.ID, domain.QuotationStatusSent)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != domain.QuotationStatusSent {
		t.Errorf("Status = %q, want %q", updated.Status, domain.QuotationStatusSent)
	}

	if _, err := svc.UpdateStatus(ctx, quotation.ID, "archived"); err != ErrInvalidQuotationStatus {
		t.Errorf("unknown status: err = %v, want ErrInvalidQuotationStatus", err)
	}
}

func TestQuotationService_ListRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := newTestQuotationService(t)

	if _, _, err := svc.List(context.Background(), "archived", 1, 20); err != ErrInvalidQuotationStatus {
		t.Errorf("List with unknown status: err = %v, want ErrInvalidQuotationStatus", err)
	}
}
