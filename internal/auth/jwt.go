package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hearthloaf/hearthloaf/internal/models"
)

const tokenIssuer = "hearthloaf"

// Tokens older than this are not eligible for refresh regardless of their
// expiry, forcing a fresh login eventually.
const refreshWindow = 7 * 24 * time.Hour

var ErrTokenTooOld = errors.New("token too old for refresh")

// JWTClaims carries the signed identity of an authenticated user.
type JWTClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// JWTManager issues and validates HS256 access tokens.
type JWTManager struct {
	secret   []byte
	lifetime time.Duration
	parser   *jwt.Parser
}

func NewJWTManager(secretKey string, tokenDurationHours int) *JWTManager {
	return &JWTManager{
		secret:   []byte(secretKey),
		lifetime: time.Duration(tokenDurationHours) * time.Hour,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
		),
	}
}

// GenerateToken issues a signed token for the user and returns it with its
// expiry time.
func (m *JWTManager) GenerateToken(user *models.User) (string, time.Time, error) {
	return m.issue(user.ID, user.Username, user.IsAdmin)
}

// ValidateToken parses and verifies a token, returning its claims.
func (m *JWTManager) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RefreshToken exchanges a still-valid token for a fresh one. Tokens issued
// more than refreshWindow ago are rejected.
func (m *JWTManager) RefreshToken(tokenString string) (string, time.Time, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid token for refresh: %w", err)
	}
	if claims.IssuedAt == nil || time.Since(claims.IssuedAt.Time) > refreshWindow {
		return "", time.Time{}, ErrTokenTooOld
	}
	return m.issue(claims.UserID, claims.Username, claims.IsAdmin)
}

func (m *JWTManager) issue(userID int64, username string, isAdmin bool) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.lifetime)

	claims := &JWTClaims{
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
