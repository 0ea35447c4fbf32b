package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"
)

// RoleScorer allows submitting deliveries and status changes.
const RoleScorer = "scorer"

// CustomClaims defines the data stored inside a scorer/viewer JWT.
// Token issuance belongs to the tournament suite's auth service; this
// process only validates and reads.
type CustomClaims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// CanScore reports whether the actor may mutate match state.
func (c *CustomClaims) CanScore() bool {
	return c != nil && lo.Contains(c.Roles, RoleScorer)
}

// GenerateToken creates a signed JWT for a specific user. Used by the
// operator tooling and tests; production tokens come from the auth service
// sharing the same secret.
func GenerateToken(secret []byte, userID string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "scorecast",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates the signature and expiration of a JWT.
func ValidateToken(secret []byte, tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
