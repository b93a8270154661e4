package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"inventory-api/internal/middleware"
	"inventory-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes. Reads are public,
// mutations require authentication, destructive operations require the
// Admin role.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		// Public routes
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/low-stock", h.LowStock)
		r.Get("/statistics", h.Statistics)
		r.Get("/category/{categoryID}", h.ByCategory)
		r.Get("/{id}", h.Get)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Patch("/{id}/stock", h.UpdateStock)

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(adminMiddleware)
				r.Delete("/{id}", h.Delete)
				r.Post("/apply-discount", h.ApplyDiscount)
			})
		})
	})
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// List returns all products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns a single product by id
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get product", zap.Error(err), zap.Int64("product_id", id))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	if product == nil {
		middleware.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("product %d not found", id))
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create adds a new product
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Create(r.Context(), req)
	if err != nil {
		h.logger.Debug("Product creation failed", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update replaces an existing product
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req service.UpdateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Debug("Product update failed", zap.Error(err), zap.Int64("product_id", id))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// UpdateStock adjusts only the stock of a product
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req service.UpdateStockRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Stock validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.UpdateStock(r.Context(), id, req)
	if err != nil {
		h.logger.Debug("Stock update failed", zap.Error(err), zap.Int64("product_id", id))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	deleted, err := h.productService.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("Product deletion failed", zap.Error(err), zap.Int64("product_id", id))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	if !deleted {
		middleware.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("product %d not found", id))
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted successfully"})
}

// Search matches products by name
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	products, err := h.productService.Search(r.Context(), term)
	if err != nil {
		h.logger.Error("Product search failed", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ByCategory returns the products of one category
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseIDParam(r, "categoryID")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	products, err := h.productService.ByCategory(r.Context(), categoryID)
	if err != nil {
		h.logger.Error("Failed to get products by category", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// LowStock returns products below the low-stock threshold
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.LowStock(r.Context())
	if err != nil {
		h.logger.Error("Failed to get low stock products", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Statistics returns inventory-wide aggregates
func (h *ProductHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.productService.Statistics(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute statistics", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

// ApplyDiscount applies a percentage discount to all products
func (h *ProductHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	var req service.ApplyDiscountRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Discount validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.productService.ApplyDiscount(r.Context(), req.Percentage); err != nil {
		h.logger.Debug("Discount application failed", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("Discount applied to all products", zap.Float64("percentage", req.Percentage))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "discount applied successfully"})
}
