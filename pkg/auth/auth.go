// Package auth guards the item API with a single shared bearer secret.
//
// The secret is passed in at construction; there is no ambient global. The
// token endpoint hands the same secret back so that clients and tests can
// obtain it without out-of-band configuration.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthorized is returned for a missing, malformed or mismatched credential.
// The wrapped detail is for logs only and never reaches the client.
var ErrUnauthorized = errors.New("unauthorized")

const bearerScheme = "Bearer"

// Principal is the identity attached to an authenticated request.
type Principal struct {
	Subject string
	Scopes  []string
}

func fixedPrincipal() Principal {
	return Principal{
		Subject: "tester",
		Scopes:  []string{"items:read", "items:write"},
	}
}

// Authenticator validates Authorization headers against one secret.
type Authenticator struct {
	token []byte
}

// NewAuthenticator returns an Authenticator for token.
func NewAuthenticator(token string) *Authenticator {
	return &Authenticator{token: []byte(token)}
}

// Token returns the configured secret.
func (a *Authenticator) Token() string {
	return string(a.token)
}

// Authenticate parses an Authorization header value of the form
// "Bearer <token>". The scheme is matched case-insensitively and the token
// exactly.
func (a *Authenticator) Authenticate(header string) (Principal, error) {
	if header == "" {
		return Principal{}, fmt.Errorf("%w: missing credentials", ErrUnauthorized)
	}

	scheme, credential, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, bearerScheme) {
		return Principal{}, fmt.Errorf("%w: invalid auth scheme", ErrUnauthorized)
	}
	if credential == "" {
		return Principal{}, fmt.Errorf("%w: missing credentials", ErrUnauthorized)
	}
	if len(a.token) == 0 || subtle.ConstantTimeCompare([]byte(credential), a.token) != 1 {
		return Principal{}, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	return fixedPrincipal(), nil
}
