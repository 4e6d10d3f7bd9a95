// Package auth extracts a caller identity from bearer ID tokens issued
// by the authentication provider.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken indicates a missing, expired or tampered token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrRestricted indicates the identity's email domain is not on the
	// allow-list.
	ErrRestricted = errors.New("access restricted")
)

// Identity is the opaque identity supplied by the provider on sign-in.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

type idClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// Verifier validates provider ID tokens and applies the access policy.
type Verifier struct {
	secret        []byte
	allowedDomain string
}

// NewVerifier builds a Verifier for HMAC-signed ID tokens. An empty
// allowedDomain disables the email-domain restriction.
func NewVerifier(secret, allowedDomain string) *Verifier {
	return &Verifier{
		secret:        []byte(secret),
		allowedDomain: strings.TrimPrefix(strings.ToLower(allowedDomain), "@"),
	}
}

// Verify parses the token and returns the identity it carries. The
// domain policy rejects foreign identities before any handler sees them.
func (v *Verifier) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrInvalidToken
	}

	claims := &idClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	if v.allowedDomain != "" {
		domain := ""
		if at := strings.LastIndex(claims.Email, "@"); at >= 0 {
			domain = strings.ToLower(claims.Email[at+1:])
		}
		if domain != v.allowedDomain {
			return Identity{}, fmt.Errorf("%w: sign-ins limited to @%s accounts", ErrRestricted, v.allowedDomain)
		}
	}

	return Identity{
		UID:         claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}
