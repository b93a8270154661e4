package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inventory-api/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
)

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	Add(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
	GetActive(ctx context.Context) ([]*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var (
		id          int64
		name        string
		description string
		isActive    bool
		createdAt   time.Time
		updatedAt   sql.NullTime
	)

	if err := row.Scan(&id, &name, &description, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var updated *time.Time
	if updatedAt.Valid {
		updated = &updatedAt.Time
	}

	return domain.RehydrateCategory(id, name, description, isActive, createdAt, updated), nil
}

func (r *categoryRepository) queryCategories(ctx context.Context, query string, args ...any) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a category by ID.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}

	return category, nil
}

// GetAll retrieves all categories ordered by name.
func (r *categoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		ORDER BY name ASC
	`
	return r.queryCategories(ctx, query)
}

// Add inserts a new category and assigns its generated identity.
func (r *categoryRepository) Add(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		query,
		category.Name(),
		category.Description(),
		category.IsActive(),
		category.CreatedAt(),
		nullableTime(category.UpdatedAt()),
	).Scan(&id)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	category.AssignID(id)
	return nil
}

// Update persists the current state of an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, is_active = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		category.ID(),
		category.Name(),
		category.Description(),
		category.IsActive(),
		nullableTime(category.UpdatedAt()),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category. The service checks for associated products
// before calling this.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// GetActive retrieves only active categories ordered by name.
func (r *categoryRepository) GetActive(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		WHERE is_active = TRUE
		ORDER BY name ASC
	`
	return r.queryCategories(ctx, query)
}

// GetByName retrieves a category by exact name, case-insensitively.
func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		WHERE LOWER(name) = LOWER($1)
	`

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}

	return category, nil
}

// Exists reports whether a category with the given id exists.
func (r *categoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}

// ExistsByName reports whether a category with the given name exists,
// case-insensitively.
func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1))`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category name existence: %w", err)
	}
	return exists, nil
}
