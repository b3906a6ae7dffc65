package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hogar-conectado/internal/domain"
	"hogar-conectado/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrCategoryNameRequired = errors.New("category name is required")
)

// CategoryInput carries the editable fields of a category.
type CategoryInput struct {
	Name        string
	Description string
	Icon        string
	Active      bool
}

// CategoryService defines the interface for category business logic
type CategoryService interface {
	Create(ctx context.Context, input CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// Create validates and stores a new category
func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	now := time.Now()
	category := &domain.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Icon:        input.Icon,
		Active:      input.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// Update validates and saves changes to an existing category
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.Icon = input.Icon
	category.Active = input.Active
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete removes a category
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}

// List retrieves all categories
func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Get retrieves a category by ID
func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}
