// Package auth defines the authentication contract used by the HTTP
// layer. Concrete authenticators live in subpackages.
package auth

import (
	"context"
	"time"
)

// Claims are the verified identity claims of a request.
type Claims struct {
	// Subject is the authenticated user ID.
	Subject string `json:"sub"`

	// Issuer is the token issuer.
	Issuer string `json:"iss,omitempty"`

	// ExpiresAt is the expiration time (Unix seconds).
	ExpiresAt int64 `json:"exp,omitempty"`

	// IssuedAt is the issue time (Unix seconds).
	IssuedAt int64 `json:"iat,omitempty"`

	// ID is the unique token identifier.
	ID string `json:"jti,omitempty"`

	// Extra carries application-specific claims.
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// Token is an issued credential.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
	ExpiresIn   int64  `json:"expires_in"`
}

// SignOptions customizes token issuance.
type SignOptions struct {
	ExpiresAt *time.Time
	Extra     map[string]interface{}
}

// SignOption mutates SignOptions.
type SignOption func(*SignOptions)

// WithExpiresAt overrides the expiration time.
func WithExpiresAt(t time.Time) SignOption {
	return func(o *SignOptions) { o.ExpiresAt = &t }
}

// WithExtra attaches extra claims.
func WithExtra(extra map[string]interface{}) SignOption {
	return func(o *SignOptions) { o.Extra = extra }
}

// Authenticator issues, verifies, refreshes and revokes credentials.
type Authenticator interface {
	Sign(ctx context.Context, subject string, opts ...SignOption) (*Token, error)
	Verify(ctx context.Context, token string) (*Claims, error)
	Refresh(ctx context.Context, token string) (*Token, error)
	Revoke(ctx context.Context, token string) error
}
