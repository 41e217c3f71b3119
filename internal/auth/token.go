package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Sentinel failures for tokens that were never valid. Expiry is deliberately
// not an error: callers ask IsExpired and branch on the boolean.
var (
	ErrInvalidSignature = errors.New("token signature does not verify")
	ErrMalformedToken   = errors.New("token cannot be decoded")
)

// TokenClaims is the decoded payload of a signed token.
type TokenClaims struct {
	SubjectID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec signs and verifies the compact HS256 tokens used for sessions,
// email verification and password resets. The purpose of a token is implicit
// in which flow minted it; the codec only guarantees signature and shape.
// The signing secret is fixed at construction and never rotated at runtime.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec builds a codec around the process-wide signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Issue produces a signed token for the subject, valid for ttl from now.
func (c *TokenCodec) Issue(subjectID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Parse verifies the signature and decodes the claims. Expiry is not
// validated here; IsExpired answers that question against the wall clock.
func (c *TokenCodec) Parse(tokenStr string) (*TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSignature
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, ErrInvalidSignature) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrMalformedToken
	}
	if !parsed.Valid || claims.ExpiresAt == nil {
		return nil, ErrMalformedToken
	}

	out := &TokenClaims{
		SubjectID: claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

// IsExpired reports whether the token's validity window has passed,
// re-evaluated against time.Now at every call. Signature and decoding
// failures surface with the same errors as Parse.
func (c *TokenCodec) IsExpired(tokenStr string) (bool, error) {
	claims, err := c.Parse(tokenStr)
	if err != nil {
		return false, err
	}
	return time.Now().After(claims.ExpiresAt), nil
}

// ValidateSession parses a session token and enforces its expiry,
// returning the authenticated subject id.
func (c *TokenCodec) ValidateSession(tokenStr string) (string, error) {
	claims, err := c.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	if time.Now().After(claims.ExpiresAt) {
		return "", jwt.ErrTokenExpired
	}
	return claims.SubjectID, nil
}
