package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	ListAll(ctx context.Context) ([]CategoryResponse, error)
	ListActive(ctx context.Context) ([]CategoryResponse, error)
	Get(ctx context.Context, id int64) (*CategoryResponse, error)
	Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error)
	Update(ctx context.Context, id int64, req UpdateCategoryRequest) (*CategoryResponse, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService creates a new instance of CategoryService. The
// product repository supplies the derived product counts and guards
// deletion of non-empty categories.
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListAll returns every category.
func (s *categoryService) ListAll(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return s.toResponses(ctx, categories)
}

// ListActive returns only active categories.
func (s *categoryService) ListActive(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active categories: %w", err)
	}
	return s.toResponses(ctx, categories)
}

// Get returns a single category, or nil when the id is unknown.
func (s *categoryService) Get(ctx context.Context, id int64) (*CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	resp, err := s.toResponse(ctx, category)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create validates the name, rejects duplicates case-insensitively and
// persists a new category.
func (s *categoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.NewValidationError("category name cannot be empty")
	}

	taken, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if taken {
		return nil, domain.NewValidationError("a category with this name already exists")
	}

	category, err := domain.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Add(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return nil, domain.NewValidationError("a category with this name already exists")
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	resp, err := s.toResponse(ctx, category)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update replaces the descriptive fields and applies the requested
// active flag. A name already held by a different category is rejected;
// keeping the current name is allowed.
func (s *categoryService) Update(ctx context.Context, id int64, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domain.NewNotFoundError("category does not exist")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.NewValidationError("category name cannot be empty")
	}

	existing, err := s.categoryRepo.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil && existing.ID() != id {
		return nil, domain.NewValidationError("another category with this name already exists")
	}

	category.UpdateInfo(req.Name, req.Description)

	if !req.IsActive && category.IsActive() {
		category.Deactivate()
	} else if req.IsActive && !category.IsActive() {
		category.Activate()
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	resp, err := s.toResponse(ctx, category)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a category. It reports false for an unknown id and
// fails with a conflict when the category still has products.
func (s *categoryService) Delete(ctx context.Context, id int64) (bool, error) {
	_, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get category: %w", err)
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to count category products: %w", err)
	}
	if count > 0 {
		return false, domain.NewConflictError("cannot delete a category that has associated products")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return true, nil
}

// Deactivate flips the category inactive. It reports false for an
// unknown id.
func (s *categoryService) Deactivate(ctx context.Context, id int64) (bool, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get category: %w", err)
	}

	category.Deactivate()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return false, fmt.Errorf("failed to deactivate category: %w", err)
	}
	return true, nil
}

func (s *categoryService) toResponse(ctx context.Context, c *domain.Category) (CategoryResponse, error) {
	count, err := s.productRepo.CountByCategory(ctx, c.ID())
	if err != nil {
		return CategoryResponse{}, fmt.Errorf("failed to count category products: %w", err)
	}

	return CategoryResponse{
		ID:           c.ID(),
		Name:         c.Name(),
		Description:  c.Description(),
		IsActive:     c.IsActive(),
		ProductCount: count,
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}, nil
}

func (s *categoryService) toResponses(ctx context.Context, categories []*domain.Category) ([]CategoryResponse, error) {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp, err := s.toResponse(ctx, c)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
