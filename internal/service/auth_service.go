package service

import (
	"context"
	"errors"
	"time"

	"tribewave/internal/models"
	"tribewave/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService authenticates administrators and issues their session tokens.
type AuthService struct {
	admins    repository.AdminRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService returns a new AuthService.
func NewAuthService(admins repository.AdminRepository, jwtSecret string) *AuthService {
	return &AuthService{
		admins:    admins,
		jwtSecret: jwtSecret,
		tokenTTL:  24 * time.Hour,
	}
}

// Login verifies admin credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.NewUnauthorizedError("invalid credentials")
		}
		return "", models.NewPersistenceError("admin lookup", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", models.NewUnauthorizedError("invalid credentials")
	}

	claims := jwt.MapClaims{
		"sub":  admin.Username,
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signed, nil
}

// CreateAdmin stores a new administrator with a bcrypt password hash.
func (s *AuthService) CreateAdmin(ctx context.Context, username, email, password string) (*models.AdminUser, error) {
	if len(password) < 8 {
		return nil, models.NewValidationError("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &models.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, models.NewPersistenceError("admin create", err)
	}
	return admin, nil
}
