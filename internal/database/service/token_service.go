package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/EgehanKilicarslan/identity-service/internal/config"
)

// TokenService issues and verifies signed access tokens for a user id
type TokenService interface {
	IssueToken(userID uint) (string, error)
	VerifyToken(tokenString string) (uint, error)
	ExpiresIn() int64
}

type tokenService struct {
	secret    []byte
	expiresIn int64
	now       func() time.Time
}

// NewTokenService creates an HS256 token service from cfg.JWTSecret.
// Returns nil when no secret is configured.
func NewTokenService(cfg *config.Config) TokenService {
	if !cfg.TokensEnabled() {
		return nil
	}
	return &tokenService{
		secret:    []byte(cfg.JWTSecret),
		expiresIn: cfg.AccessTokenExpiration,
		now:       time.Now,
	}
}

func (s *tokenService) IssueToken(userID uint) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    "access",
		"exp":     now.Add(time.Duration(s.expiresIn) * time.Second).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) VerifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return 0, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}

func (s *tokenService) ExpiresIn() int64 {
	return s.expiresIn
}

var ErrInvalidToken = errors.New("invalid or expired token")
