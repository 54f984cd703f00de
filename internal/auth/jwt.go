// Package auth issues and validates the bearer tokens that gate the
// HTTP solve trigger, adapted from the upstream JWT manager down to
// the single "trigger" role the scheduler's API needs.
package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims carries the caller identity and the section it may trigger a
// solve for; "" means every section.
type Claims struct {
	jwt.RegisteredClaims

	CallerID uuid.UUID `json:"caller_id"`
	Section  string    `json:"section"`
}

// JWTManager signs and validates trigger tokens.
type JWTManager struct {
	Secret []byte
	Issuer string
	Expiry time.Duration
}

// NewJWTManager builds a manager for the given secret/issuer/expiry.
func NewJWTManager(secret []byte, issuer string, expiry time.Duration) *JWTManager {
	return &JWTManager{Secret: secret, Issuer: issuer, Expiry: expiry}
}

// Generate issues a token scoped to one caller and (optionally) one
// section.
func (jm *JWTManager) Generate(callerID uuid.UUID, section string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jm.Issuer,
			Subject:   callerID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jm.Expiry)),
			NotBefore: jwt.NewNumericDate(now),
		},
		CallerID: callerID,
		Section:  section,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jm.Secret)
}

// Validate parses and verifies a bearer token.
func (jm *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jm.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
