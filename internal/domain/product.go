package domain

import (
	"strings"
	"time"
)

// Product is an inventory item. All mutation goes through the named
// methods below so the price and stock invariants cannot be bypassed;
// identity and audit fields are storage-owned.
type Product struct {
	id           int64
	name         string
	price        Money
	stock        StockQuantity
	categoryID   int64
	categoryName string
	createdAt    time.Time
	updatedAt    *time.Time
}

// NewProduct creates a product ready to be persisted. The category's
// existence is the service's responsibility.
func NewProduct(name string, price Money, stock StockQuantity, categoryID int64) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("product name cannot be empty")
	}
	return &Product{
		name:       name,
		price:      price,
		stock:      stock,
		categoryID: categoryID,
		createdAt:  time.Now().UTC(),
	}, nil
}

// RehydrateProduct restores a product from storage. Stored values were
// validated when first written, so no invariant checks run here.
func RehydrateProduct(id int64, name string, price Money, stock StockQuantity, categoryID int64, categoryName string, createdAt time.Time, updatedAt *time.Time) *Product {
	return &Product{
		id:           id,
		name:         name,
		price:        price,
		stock:        stock,
		categoryID:   categoryID,
		categoryName: categoryName,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// AssignID records the identity generated by storage. Repositories call
// this once after insert.
func (p *Product) AssignID(id int64) { p.id = id }

func (p *Product) ID() int64             { return p.id }
func (p *Product) Name() string          { return p.name }
func (p *Product) Price() Money          { return p.price }
func (p *Product) Stock() StockQuantity  { return p.stock }
func (p *Product) CategoryID() int64     { return p.categoryID }
func (p *Product) CategoryName() string  { return p.categoryName }
func (p *Product) CreatedAt() time.Time  { return p.createdAt }
func (p *Product) UpdatedAt() *time.Time { return p.updatedAt }

// Rename changes the product name.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("product name cannot be empty")
	}
	p.name = name
	p.touch()
	return nil
}

// UpdatePrice replaces the price.
func (p *Product) UpdatePrice(price Money) {
	p.price = price
	p.touch()
}

// UpdateStock replaces the stock quantity.
func (p *Product) UpdateStock(stock StockQuantity) {
	p.stock = stock
	p.touch()
}

// ChangeCategory reassigns the product to another category. The service
// validates that the target category exists.
func (p *Product) ChangeCategory(categoryID int64) {
	p.categoryID = categoryID
	p.categoryName = ""
	p.touch()
}

// IsLowStock reports whether stock is below the low-stock threshold.
func (p *Product) IsLowStock() bool { return p.stock.IsLow() }

// IsOutOfStock reports whether stock is zero.
func (p *Product) IsOutOfStock() bool { return p.stock.IsEmpty() }

func (p *Product) touch() {
	now := time.Now().UTC()
	p.updatedAt = &now
}
