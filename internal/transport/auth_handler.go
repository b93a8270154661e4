package transport

import (
	"net/http"

	"inventory-api/internal/middleware"
	"inventory-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication operations
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler, publicMiddlewares ...func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			for _, mw := range publicMiddlewares {
				r.Use(mw)
			}
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/profile", h.GetProfile)
			r.Post("/change-password", h.ChangePassword)
			r.Get("/validate-token", h.ValidateToken)
		})
	})
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		h.logger.Debug("Registration failed", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("User registered successfully",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		h.logger.Debug("Login failed", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("User logged in successfully", zap.Int64("user_id", resp.User.ID))
	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

// GetProfile returns the authenticated user's profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Error("User ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.GetProfile(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get user profile", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}

// ChangePassword replaces the authenticated user's password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Error("User ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req service.ChangePasswordRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Change password validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, req); err != nil {
		h.logger.Debug("Change password failed", zap.Error(err))
		middleware.RespondWithDomainError(w, err, h.logger)
		return
	}

	h.logger.Info("Password changed successfully", zap.Int64("user_id", userID))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
}

// ValidateToken confirms the presented token is valid
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	username, _ := middleware.GetUsername(r.Context())
	role, _ := middleware.GetUserRole(r.Context())

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"valid":    true,
		"username": username,
		"role":     role,
	})
}
