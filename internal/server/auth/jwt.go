// Package auth verifies bearer tokens issued by the external identity
// provider. Tokens are HMAC-signed (HS256) and carry the provider's
// subject id in the standard "sub" claim plus an optional email claim.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/provcred/credportal/internal/common"
)

// Claims are the token claims the portal cares about: the registered
// claims (sub, exp, ...) and the optional email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// TokenIdentity is the verified identity extracted from a bearer token.
type TokenIdentity struct {
	SubjectID string
	Email     string
}

// VerifyToken parses and validates tokenString against secretKey and
// returns the embedded identity. Expired, malformed or otherwise invalid
// tokens yield common.ErrInvalidToken.
func VerifyToken(tokenString string, secretKey []byte) (*TokenIdentity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return &TokenIdentity{SubjectID: claims.Subject, Email: claims.Email}, nil
}
