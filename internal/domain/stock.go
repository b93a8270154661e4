package domain

// LowStockThreshold is the unit count below which stock counts as low.
const LowStockThreshold = 10

// StockQuantity is an immutable non-negative unit count.
type StockQuantity struct {
	value int
}

// NewStockQuantity validates the given unit count.
func NewStockQuantity(value int) (StockQuantity, error) {
	if value < 0 {
		return StockQuantity{}, NewValidationError("stock cannot be negative")
	}
	return StockQuantity{value: value}, nil
}

// Add returns a new quantity increased by n. n must be positive.
func (s StockQuantity) Add(n int) (StockQuantity, error) {
	if n <= 0 {
		return StockQuantity{}, NewValidationError("quantity to add must be positive")
	}
	return NewStockQuantity(s.value + n)
}

// Subtract returns a new quantity decreased by n. n must be positive and
// may not exceed the current value.
func (s StockQuantity) Subtract(n int) (StockQuantity, error) {
	if n <= 0 {
		return StockQuantity{}, NewValidationError("quantity to subtract must be positive")
	}
	if s.value-n < 0 {
		return StockQuantity{}, NewConflictError("insufficient stock")
	}
	return StockQuantity{value: s.value - n}, nil
}

// Value returns the unit count.
func (s StockQuantity) Value() int { return s.value }

// IsLow reports whether the quantity is below the low-stock threshold.
func (s StockQuantity) IsLow() bool { return s.value < LowStockThreshold }

// IsEmpty reports whether the quantity is zero.
func (s StockQuantity) IsEmpty() bool { return s.value == 0 }
