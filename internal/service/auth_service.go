package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"inventory-api/internal/config"
	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing
const BcryptCost = 10

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 6

// Claims represents the JWT claims carried by an issued token. The
// subject is the user id.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error
	GetProfile(ctx context.Context, userID int64) (*UserResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo repository.UserRepository, jwtCfg config.JWTConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

// Login authenticates a user and issues a signed token. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, domain.NewValidationError("username is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.NewValidationError("password is required")
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	user.RecordLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(user),
	}, nil
}

// Register creates a new user account with a hashed password. The
// returned profile never contains the hash.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, domain.NewValidationError("username is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, domain.NewValidationError("email is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.NewValidationError("password is required")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, domain.NewValidationError("password must be at least 6 characters")
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, domain.NewValidationError("username is already in use")
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, domain.NewValidationError("email is already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(req.Username, req.Email, string(hash), req.Role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Add(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, domain.NewValidationError("username or email is already in use")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the current password and replaces the stored
// hash for the same identity.
func (s *authService) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.NewNotFoundError("user does not exist")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(req.CurrentPassword)); err != nil {
		return domain.NewUnauthorizedError("current password is incorrect")
	}

	if strings.TrimSpace(req.NewPassword) == "" {
		return domain.NewValidationError("new password is required")
	}
	if len(req.NewPassword) < MinPasswordLength {
		return domain.NewValidationError("new password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.ChangePasswordHash(string(hash))

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// GetProfile returns the public profile of the given user.
func (s *authService) GetProfile(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domain.NewNotFoundError("user does not exist")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ValidateToken verifies the signature, issuer, audience and expiry of
// a token and returns its claims.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.jwtCfg.Secret), nil
		},
		jwt.WithIssuer(s.jwtCfg.Issuer),
		jwt.WithAudience(s.jwtCfg.Audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewUnauthorizedError("token has expired")
		}
		return nil, domain.NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.NewUnauthorizedError("invalid token")
	}

	return claims, nil
}

func (s *authService) generateToken(user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.jwtCfg.ExpiryMinutes) * time.Minute)

	claims := &Claims{
		Username: user.Username(),
		Email:    user.Email(),
		Role:     user.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID(), 10),
			Issuer:    s.jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{s.jwtCfg.Audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID(),
		Username:    u.Username(),
		Email:       u.Email(),
		Role:        u.Role(),
		CreatedAt:   u.CreatedAt(),
		LastLoginAt: u.LastLoginAt(),
	}
}
