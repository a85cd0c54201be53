package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any malformed, expired or mis-signed token.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents the JWT payload: subject (user id) and email.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Config holds the two signing secrets and lifetimes. Access and refresh
// secrets are distinct values: leaking one must not allow forging the other.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// Manager handles JWT operations
type Manager struct {
	config Config
}

// NewManager creates new JWT manager
func NewManager(config Config) *Manager {
	return &Manager{config: config}
}

// GenerateAccessToken signs a short-lived access token (default 1h).
func (m *Manager) GenerateAccessToken(userID, email string) (string, error) {
	return m.generate(userID, email, m.config.AccessSecret, m.config.AccessExpiry)
}

// GenerateRefreshToken signs a long-lived refresh token (default 7d).
func (m *Manager) GenerateRefreshToken(userID, email string) (string, error) {
	return m.generate(userID, email, m.config.RefreshSecret, m.config.RefreshExpiry)
}

func (m *Manager) generate(userID, email, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyAccessToken validates signature and expiry against the access secret.
func (m *Manager) VerifyAccessToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.config.AccessSecret)
}

// VerifyRefreshToken validates signature and expiry against the refresh secret.
func (m *Manager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.config.RefreshSecret)
}

func (m *Manager) verify(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything other than HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
