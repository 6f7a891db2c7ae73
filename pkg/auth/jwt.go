package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hpfoods/hpfoods-api/pkg/apperr"
)

// TokenTTL is the lifetime of every session token.
const TokenTTL = 7 * 24 * time.Hour

// ErrEmptySecret is returned when no signing key is configured.
var ErrEmptySecret = errors.New("auth: signing secret is empty")

// Claims is the payload of a session token. A token carries exactly one role.
type Claims struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens with one shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer using secret and the standard 7 day lifetime.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: TokenTTL, now: time.Now}
}

// WithClock returns a copy of i that reads time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

// Issue creates a signed token for the given identity. An empty secret
// yields a signing error.
func (i *Issuer) Issue(userID, email, displayName, role string) (string, error) {
	if len(i.secret) == 0 {
		return "", apperr.Signing(ErrEmptySecret)
	}

	issued := i.now().UTC().Truncate(time.Second)
	claims := Claims{
		UserID:   userID,
		Email:    email,
		FullName: displayName,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", apperr.Signing(fmt.Errorf("auth: sign: %w", err))
	}
	return signed, nil
}

// Validate parses and verifies token. Only HS256 is accepted.
func (i *Issuer) Validate(token string) (*Claims, error) {
	if len(i.secret) == 0 {
		return nil, ErrEmptySecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// IssueToken signs a token for one identity with secretKey.
func IssueToken(userID, email, displayName, role, secretKey string) (string, error) {
	return NewIssuer(secretKey).Issue(userID, email, displayName, role)
}

// ValidateToken verifies a token signed by IssueToken with the same secret.
func ValidateToken(token, secretKey string) (*Claims, error) {
	return NewIssuer(secretKey).Validate(token)
}

// ErrPasswordTooLong is returned by HashPassword for input over bcrypt's
// 72 byte limit.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// HashPassword bcrypt-hashes plain.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
