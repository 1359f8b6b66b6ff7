package services

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sjperalta/kost-listrik-api/internal/config"
	"github.com/sjperalta/kost-listrik-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles operator login
type AuthService struct {
	cfg *config.Config
	now func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg, now: time.Now}
}

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
}

// Login checks the operator credentials and issues a token
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if !s.cfg.AuthEnabled() {
		return nil, ErrUnauthorized
	}

	validUser := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.OperatorUsername)) == 1
	validPassword := VerifyPassword(password, s.cfg.OperatorPasswordHash)
	if !validUser || !validPassword {
		logger.Warn("Failed operator login", "username", username)
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)
	token, err := s.generateJWT(username, expiresAt)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Username: username}, nil
}

// generateJWT creates a token carrying the claims the auth middleware reads
func (s *AuthService) generateJWT(username string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"sub":      username,
		"exp":      expiresAt.Unix(),
		"iat":      s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword compares a password with a hash
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
