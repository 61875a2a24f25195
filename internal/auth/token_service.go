package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"

	apperrors "scheduler/internal/errors"
)

// TokenExpiry is how long an issued bearer token stays valid.
const TokenExpiry = 24 * time.Hour

var (
	// ErrInvalidToken is returned for malformed, tampered or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject is returned when a token carries no subject.
	ErrMissingSubject = errors.New("token has no subject")
)

// Claims represents JWT claims. The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens.
type TokenService struct {
	secret func() []byte
	now    func() time.Time
}

// NewTokenService creates a token service signing with the given secret.
// An empty secret is accepted here and reported on first use.
func NewTokenService(secret string) *TokenService {
	key := []byte(secret)
	return &TokenService{
		secret: func() []byte { return key },
		now:    time.Now,
	}
}

// NewEnvTokenService creates a token service that reads its secret from the
// environment variable name on every Issue and Verify.
func NewEnvTokenService(name string) *TokenService {
	return &TokenService{
		secret: func() []byte { return []byte(os.Getenv(name)) },
		now:    time.Now,
	}
}

// Issue signs a token for subject that expires after TokenExpiry.
func (s *TokenService) Issue(subject, email string) (string, error) {
	secret := s.secret()
	if len(secret) == 0 {
		return "", apperrors.ErrSigningSecretMissing
	}

	now := s.now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns its claims.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	secret := s.secret()
	if len(secret) == 0 {
		return nil, apperrors.ErrSigningSecretMissing
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	// exp is optional in RFC 7519 but required here.
	if claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}
