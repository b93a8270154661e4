package service

import "time"

// Request and response shapes exchanged at the service boundary.
// Validation tags are enforced by the transport layer before the
// request reaches a service; services re-check the business rules the
// tags cannot express.

// CreateProductRequest carries the fields for a new product.
type CreateProductRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	Stock      int     `json:"stock" validate:"gte=0"`
	CategoryID int64   `json:"categoryId" validate:"required,gte=1"`
}

// UpdateProductRequest carries the full replacement state of a product.
type UpdateProductRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	Stock      int     `json:"stock" validate:"gte=0"`
	CategoryID int64   `json:"categoryId" validate:"required,gte=1"`
}

// UpdateStockRequest adjusts only the stock level.
type UpdateStockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

// ApplyDiscountRequest applies a percentage discount to every product.
type ApplyDiscountRequest struct {
	Percentage float64 `json:"percentage" validate:"required"`
}

// CreateCategoryRequest carries the fields for a new category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateCategoryRequest carries the replacement state of a category.
type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    bool   `json:"isActive"`
}

// RegisterRequest carries the fields for a new user account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Role     string `json:"role" validate:"omitempty,max=20"`
}

// LoginRequest carries credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=100"`
}

// ProductResponse is the read model for a product.
type ProductResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Price        float64    `json:"price"`
	Stock        int        `json:"stock"`
	CategoryID   int64      `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	IsLowStock   bool       `json:"isLowStock"`
	IsOutOfStock bool       `json:"isOutOfStock"`
	StockStatus  string     `json:"stockStatus"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// ProductStatisticsResponse aggregates the inventory at one snapshot.
type ProductStatisticsResponse struct {
	TotalProducts   int     `json:"totalProducts"`
	TotalValue      float64 `json:"totalValue"`
	LowStockCount   int     `json:"lowStockCount"`
	TotalUnits      int     `json:"totalUnits"`
	OutOfStockCount int     `json:"outOfStockCount"`
}

// CategoryResponse is the read model for a category.
type CategoryResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	IsActive     bool       `json:"isActive"`
	ProductCount int        `json:"productCount"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// UserResponse is the public profile of a user. It never carries the
// password hash.
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// LoginResponse carries the issued token with its expiry and the
// authenticated user's profile.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
