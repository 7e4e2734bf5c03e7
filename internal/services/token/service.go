// Package token mints and verifies the access/refresh token pair.
//
// Access tokens are short-lived and authorize individual API calls; refresh
// tokens are long-lived and are used solely to mint a new access token.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/masego-dev/clubctl/internal/dependencies/clock"
	"github.com/masego-dev/clubctl/internal/model"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongUse     = errors.New("token presented for the wrong use")
)

// Use distinguishes the two token kinds
type Use string

const (
	UseAccess  Use = "access"
	UseRefresh Use = "refresh"
)

// Claims carried by both token kinds
type Claims struct {
	Role model.Role `json:"role"`
	Use  Use        `json:"token_use"`
	jwt.RegisteredClaims
}

// Pair is an access/refresh token pair
type Pair struct {
	Access  string
	Refresh string
}

// Config holds signing configuration
type Config struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// DefaultConfig returns the default token lifetimes
func DefaultConfig(secret []byte) Config {
	return Config{
		Secret:     secret,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

// Service signs and verifies tokens
type Service struct {
	cfg   Config
	clock clock.Clock
}

// New creates a token service
func New(cfg Config, clk clock.Clock) *Service {
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &Service{cfg: cfg, clock: clk}
}

// MintPair issues a fresh access/refresh pair for a user
func (s *Service) MintPair(userID model.UserID, role model.Role) (Pair, error) {
	access, err := s.mint(userID, role, UseAccess, s.cfg.AccessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.mint(userID, role, UseRefresh, s.cfg.RefreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

// Refresh verifies a refresh token and mints a new access token
func (s *Service) Refresh(refreshToken string) (string, error) {
	claims, err := s.verify(refreshToken, UseRefresh)
	if err != nil {
		return "", err
	}
	return s.mint(model.UserID(claims.Subject), claims.Role, UseAccess, s.cfg.AccessTTL)
}

// VerifyAccess validates an access token and returns its claims
func (s *Service) VerifyAccess(accessToken string) (*Claims, error) {
	return s.verify(accessToken, UseAccess)
}

func (s *Service) mint(userID model.UserID, role model.Role, use Use, ttl time.Duration) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		Role: role,
		Use:  use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) verify(tokenString string, use Use) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.Use != use {
		return nil, ErrWrongUse
	}
	return claims, nil
}
