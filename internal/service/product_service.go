package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"github.com/shopspring/decimal"
)

// NoCategoryLabel is returned as the category name when the product's
// category could not be resolved.
const NoCategoryLabel = "Uncategorized"

// ProductService defines the interface for product business logic
type ProductService interface {
	List(ctx context.Context) ([]ProductResponse, error)
	Get(ctx context.Context, id int64) (*ProductResponse, error)
	Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error)
	UpdateStock(ctx context.Context, id int64, req UpdateStockRequest) (*ProductResponse, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, term string) ([]ProductResponse, error)
	ByCategory(ctx context.Context, categoryID int64) ([]ProductResponse, error)
	LowStock(ctx context.Context) ([]ProductResponse, error)
	Statistics(ctx context.Context) (*ProductStatisticsResponse, error)
	ApplyDiscount(ctx context.Context, percentage float64) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// List returns all products with their category names resolved.
func (s *productService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return toProductResponses(products), nil
}

// Get returns a single product, or nil when the id is unknown.
func (s *productService) Get(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	resp := toProductResponse(product)
	return &resp, nil
}

// Create validates the request, checks the category exists and persists
// a new product.
func (s *productService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price, stock, err := s.validateFields(req.Name, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domain.NewValidationError("the specified category does not exist")
		}
		return nil, fmt.Errorf("failed to check category: %w", err)
	}

	product, err := domain.NewProduct(req.Name, price, stock, req.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Add(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	resp := toProductResponse(product)
	resp.CategoryName = category.Name()
	return &resp, nil
}

// Update replaces a product's fields. A category change is re-validated
// against the category repository.
func (s *productService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domain.NewNotFoundError("product does not exist")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	price, stock, err := s.validateFields(req.Name, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	categoryName := product.CategoryName()
	if req.CategoryID != product.CategoryID() {
		category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, domain.NewValidationError("the specified category does not exist")
			}
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		product.ChangeCategory(req.CategoryID)
		categoryName = category.Name()
	}

	if err := product.Rename(req.Name); err != nil {
		return nil, err
	}
	product.UpdatePrice(price)
	product.UpdateStock(stock)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	resp := toProductResponse(product)
	resp.CategoryName = categoryName
	return &resp, nil
}

// UpdateStock replaces only the stock level of a product.
func (s *productService) UpdateStock(ctx context.Context, id int64, req UpdateStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domain.NewNotFoundError("product does not exist")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	stock, err := domain.NewStockQuantity(req.Stock)
	if err != nil {
		return nil, err
	}

	product.UpdateStock(stock)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product stock: %w", err)
	}

	resp := toProductResponse(product)
	return &resp, nil
}

// Delete removes a product. It reports false for an unknown id instead
// of failing.
func (s *productService) Delete(ctx context.Context, id int64) (bool, error) {
	exists, err := s.productRepo.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	if !exists {
		return false, nil
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return true, nil
}

// Search matches products by name, case-insensitively. A blank term
// returns the full list.
func (s *productService) Search(ctx context.Context, term string) ([]ProductResponse, error) {
	products, err := s.productRepo.SearchByName(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return toProductResponses(products), nil
}

// ByCategory returns the products of one category.
func (s *productService) ByCategory(ctx context.Context, categoryID int64) ([]ProductResponse, error) {
	products, err := s.productRepo.GetByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get products by category: %w", err)
	}
	return toProductResponses(products), nil
}

// LowStock returns the products below the low-stock threshold.
func (s *productService) LowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock products: %w", err)
	}
	return toProductResponses(products), nil
}

// Statistics aggregates the inventory. All figures come from a single
// repository snapshot.
func (s *productService) Statistics(ctx context.Context) (*ProductStatisticsResponse, error) {
	stats, err := s.productRepo.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	totalValue, _ := stats.TotalValue.Round(2).Float64()
	return &ProductStatisticsResponse{
		TotalProducts:   stats.TotalProducts,
		TotalValue:      totalValue,
		LowStockCount:   stats.LowStockCount,
		TotalUnits:      stats.TotalUnits,
		OutOfStockCount: stats.OutOfStockCount,
	}, nil
}

// ApplyDiscount reduces every product's price by the given percentage.
// The percentage must be within (0, 100]. The whole batch is persisted
// in a single transaction; any failure rolls it back.
func (s *productService) ApplyDiscount(ctx context.Context, percentage float64) error {
	if percentage <= 0 || percentage > 100 {
		return domain.NewValidationError("discount must be between 1 and 100")
	}

	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products for discount: %w", err)
	}
	if len(products) == 0 {
		return nil
	}

	pct := decimal.NewFromFloat(percentage)
	for _, product := range products {
		discounted, err := product.Price().ApplyDiscount(pct)
		if err != nil {
			return err
		}
		product.UpdatePrice(discounted)
	}

	if err := s.productRepo.UpdateAll(ctx, products); err != nil {
		return fmt.Errorf("failed to apply discount: %w", err)
	}
	return nil
}

func (s *productService) validateFields(name string, price float64, stock int) (domain.Money, domain.StockQuantity, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Money{}, domain.StockQuantity{}, domain.NewValidationError("product name cannot be empty")
	}

	if price <= 0 {
		return domain.Money{}, domain.StockQuantity{}, domain.NewValidationError("price must be greater than zero")
	}

	money, err := domain.NewMoneyFromFloat(price)
	if err != nil {
		return domain.Money{}, domain.StockQuantity{}, err
	}

	quantity, err := domain.NewStockQuantity(stock)
	if err != nil {
		return domain.Money{}, domain.StockQuantity{}, err
	}

	return money, quantity, nil
}

func toProductResponse(p *domain.Product) ProductResponse {
	categoryName := p.CategoryName()
	if categoryName == "" {
		categoryName = NoCategoryLabel
	}

	stockStatus := "In Stock"
	if p.IsOutOfStock() {
		stockStatus = "Out of Stock"
	} else if p.IsLowStock() {
		stockStatus = "Low Stock"
	}

	return ProductResponse{
		ID:           p.ID(),
		Name:         p.Name(),
		Price:        p.Price().Float64(),
		Stock:        p.Stock().Value(),
		CategoryID:   p.CategoryID(),
		CategoryName: categoryName,
		IsLowStock:   p.IsLowStock(),
		IsOutOfStock: p.IsOutOfStock(),
		StockStatus:  stockStatus,
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}
	return responses
}
