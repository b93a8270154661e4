package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory-api/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductStats is the aggregate view over the whole product set,
// computed from a single statement so every figure reflects the same
// snapshot.
type ProductStats struct {
	TotalProducts   int
	TotalValue      decimal.Decimal
	LowStockCount   int
	TotalUnits      int
	OutOfStockCount int
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	Add(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	GetByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error)
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
	GetLowStock(ctx context.Context) ([]*domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	TotalCount(ctx context.Context) (int, error)
	TotalValue(ctx context.Context) (decimal.Decimal, error)
	LowStockCount(ctx context.Context) (int, error)
	Statistics(ctx context.Context) (*ProductStats, error)
	UpdateAll(ctx context.Context, products []*domain.Product) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `
	p.id, p.name, p.price, p.stock, p.category_id, COALESCE(c.name, ''),
	p.created_at, p.updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		id           int64
		name         string
		price        decimal.Decimal
		stock        int
		categoryID   int64
		categoryName string
		createdAt    time.Time
		updatedAt    sql.NullTime
	)

	if err := row.Scan(&id, &name, &price, &stock, &categoryID, &categoryName, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	money, err := domain.NewMoney(price)
	if err != nil {
		return nil, fmt.Errorf("stored price is invalid: %w", err)
	}
	quantity, err := domain.NewStockQuantity(stock)
	if err != nil {
		return nil, fmt.Errorf("stored stock is invalid: %w", err)
	}

	var updated *time.Time
	if updatedAt.Valid {
		updated = &updatedAt.Time
	}

	return domain.RehydrateProduct(id, name, money, quantity, categoryID, categoryName, createdAt, updated), nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a product with its category name resolved.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// GetAll retrieves all products ordered by name.
func (r *productRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.name ASC
	`
	return r.queryProducts(ctx, query)
}

// Add inserts a new product and assigns its generated identity.
func (r *productRepository) Add(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, price, stock, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name(),
		product.Price().Decimal(),
		product.Stock().Value(),
		product.CategoryID(),
		product.CreatedAt(),
		nullableTime(product.UpdatedAt()),
	).Scan(&id)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	product.AssignID(id)
	return nil
}

// Update persists the current state of an existing product.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, stock = $4, category_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID(),
		product.Name(),
		product.Price().Decimal(),
		product.Stock().Value(),
		product.CategoryID(),
		nullableTime(product.UpdatedAt()),
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the database.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// GetByCategory retrieves products belonging to the given category.
func (r *productRepository) GetByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = $1
		ORDER BY p.name ASC
	`
	return r.queryProducts(ctx, query, categoryID)
}

// CountByCategory returns the number of products in the given category.
func (r *productRepository) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products by category: %w", err)
	}
	return count, nil
}

// GetLowStock retrieves products below the low-stock threshold, lowest
// stock first.
func (r *productRepository) GetLowStock(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.stock < $1
		ORDER BY p.stock ASC
	`
	return r.queryProducts(ctx, query, domain.LowStockThreshold)
}

// SearchByName performs a case-insensitive substring match on the
// product name. A blank term returns the full list.
func (r *productRepository) SearchByName(ctx context.Context, name string) ([]*domain.Product, error) {
	if strings.TrimSpace(name) == "" {
		return r.GetAll(ctx)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.name ILIKE $1
		ORDER BY p.name ASC
	`
	return r.queryProducts(ctx, query, "%"+name+"%")
}

// Exists reports whether a product with the given id exists.
func (r *productRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// TotalCount returns the number of products.
func (r *productRepository) TotalCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// TotalValue returns the summed price times stock over all products.
func (r *productRepository) TotalValue(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(price * stock), 0) FROM products`).Scan(&value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute total inventory value: %w", err)
	}
	return value, nil
}

// LowStockCount returns the number of products below the threshold.
func (r *productRepository) LowStockCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE stock < $1`, domain.LowStockThreshold).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count low stock products: %w", err)
	}
	return count, nil
}

// Statistics computes all aggregate figures in one statement.
func (r *productRepository) Statistics(ctx context.Context) (*ProductStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(price * stock), 0),
			COUNT(*) FILTER (WHERE stock < $1),
			COALESCE(SUM(stock), 0),
			COUNT(*) FILTER (WHERE stock = 0)
		FROM products
	`

	stats := &ProductStats{}
	err := r.db.QueryRowContext(ctx, query, domain.LowStockThreshold).Scan(
		&stats.TotalProducts,
		&stats.TotalValue,
		&stats.LowStockCount,
		&stats.TotalUnits,
		&stats.OutOfStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute product statistics: %w", err)
	}

	return stats, nil
}

// UpdateAll persists a batch of products inside a single transaction.
// Any failure rolls the whole batch back.
func (r *productRepository) UpdateAll(ctx context.Context, products []*domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE products
		SET name = $2, price = $3, stock = $4, category_id = $5, updated_at = $6
		WHERE id = $1
	`

	for _, product := range products {
		result, err := tx.ExecContext(
			ctx,
			query,
			product.ID(),
			product.Name(),
			product.Price().Decimal(),
			product.Stock().Value(),
			product.CategoryID(),
			nullableTime(product.UpdatedAt()),
		)
		if err != nil {
			return fmt.Errorf("failed to update product %d: %w", product.ID(), err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrProductNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch update: %w", err)
	}

	return nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
