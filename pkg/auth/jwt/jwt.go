// Package jwt implements auth.Authenticator using JSON Web Tokens.
//
// HMAC signing only (HS256/HS384/HS512); revocation is handled through
// a pluggable Store so logout works across instances when backed by
// Redis.
package jwt

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/kart-io/logger"

	"github.com/kart-io/lead-center/pkg/auth"
	options "github.com/kart-io/lead-center/pkg/options/jwt"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

// JWT implements auth.Authenticator.
type JWT struct {
	opts   *options.Options
	store  Store
	method jwt.SigningMethod
}

var _ auth.Authenticator = (*JWT)(nil)

// New creates a new JWT authenticator. A nil store disables revocation.
func New(opts *options.Options, store Store) (*JWT, error) {
	if opts == nil {
		opts = options.NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate jwt options: %w", err)
	}
	method := jwt.GetSigningMethod(opts.SigningMethod)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing method: %s", opts.SigningMethod)
	}
	return &JWT{opts: opts, store: store, method: method}, nil
}

// customClaims extends jwt.RegisteredClaims with extra fields.
type customClaims struct {
	jwt.RegisteredClaims
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// Sign creates a new token for the given subject.
func (j *JWT) Sign(ctx context.Context, subject string, opts ...auth.SignOption) (*auth.Token, error) {
	signOpts := &auth.SignOptions{}
	for _, opt := range opts {
		opt(signOpts)
	}

	now := time.Now()
	expiresAt := now.Add(j.opts.Expired)
	if signOpts.ExpiresAt != nil {
		expiresAt = *signOpts.ExpiresAt
	}

	tokenID, err := generateTokenID()
	if err != nil {
		return nil, err
	}

	claims := &customClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    j.opts.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			ID:        tokenID,
		},
		Extra: signOpts.Extra,
	}

	tokenString, err := jwt.NewWithClaims(j.method, claims).SignedString([]byte(j.opts.Key))
	if err != nil {
		return nil, errors.ErrInternal.WithCause(err).WithMessage("failed to sign token")
	}

	return &auth.Token{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Unix(),
		ExpiresIn:   int64(expiresAt.Sub(now).Seconds()),
	}, nil
}

// Verify validates the token and returns the claims.
func (j *JWT) Verify(ctx context.Context, tokenString string) (*auth.Claims, error) {
	claims, err := j.parse(tokenString, true)
	if err != nil {
		return nil, err
	}
	if err := j.checkRevoked(ctx, tokenString); err != nil {
		return nil, err
	}
	return toAuthClaims(claims), nil
}

// Refresh creates a new token from a valid existing one. The old token
// is revoked and the new token gets a fresh ID, so a captured token
// cannot be pinned across refreshes.
func (j *JWT) Refresh(ctx context.Context, tokenString string) (*auth.Token, error) {
	// Expired tokens may still refresh inside the MaxRefresh window.
	claims, err := j.parse(tokenString, false)
	if err != nil {
		return nil, err
	}
	if claims.IssuedAt == nil {
		return nil, errors.ErrInvalidToken.WithMessage("missing issued at claim")
	}
	if time.Now().After(claims.IssuedAt.Add(j.opts.MaxRefresh)) {
		return nil, errors.ErrTokenExpired.WithMessage("token refresh window expired")
	}
	if err := j.checkRevoked(ctx, tokenString); err != nil {
		return nil, err
	}

	if j.store != nil {
		if err := j.Revoke(ctx, tokenString); err != nil {
			logger.Warnw("failed to revoke old token during refresh",
				"error", err, "tokenPrefix", tokenPrefix(tokenString))
		}
	}

	var signOpts []auth.SignOption
	if len(claims.Extra) > 0 {
		signOpts = append(signOpts, auth.WithExtra(claims.Extra))
	}
	return j.Sign(ctx, claims.Subject, signOpts...)
}

// Revoke invalidates the given token. The revocation entry lives until
// the MaxRefresh window closes, not just until ExpiresAt, so the token
// cannot be replayed through Refresh.
func (j *JWT) Revoke(ctx context.Context, tokenString string) error {
	if j.store == nil {
		return nil
	}
	claims, err := j.parse(tokenString, false)
	if err != nil {
		return err
	}
	if claims.IssuedAt == nil {
		return errors.ErrInvalidToken.WithMessage("missing issued at claim")
	}
	ttl := time.Until(claims.IssuedAt.Add(j.opts.MaxRefresh))
	if ttl <= 0 {
		return nil
	}
	return j.store.Revoke(ctx, tokenString, ttl)
}

// parse verifies signature and, when validate is true, the registered
// claims (expiry, not-before).
func (j *JWT) parse(tokenString string, validate bool) (*customClaims, error) {
	if tokenString == "" {
		return nil, errors.ErrInvalidToken.WithMessage("token is empty")
	}

	parser := jwt.NewParser()
	if !validate {
		parser = jwt.NewParser(jwt.WithoutClaimsValidation())
	}

	token, err := parser.ParseWithClaims(tokenString, &customClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != j.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.opts.Key), nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}
	claims, ok := token.Claims.(*customClaims)
	if !ok || (validate && !token.Valid) {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}

func (j *JWT) checkRevoked(ctx context.Context, tokenString string) error {
	if j.store == nil {
		return nil
	}
	revoked, err := j.store.IsRevoked(ctx, tokenString)
	if err != nil {
		return errors.ErrInternal.WithCause(err).WithMessage("failed to check token revocation")
	}
	if revoked {
		return errors.ErrTokenRevoked
	}
	return nil
}

func toAuthClaims(c *customClaims) *auth.Claims {
	out := &auth.Claims{
		Subject: c.Subject,
		Issuer:  c.Issuer,
		ID:      c.ID,
		Extra:   c.Extra,
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Unix()
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Unix()
	}
	return out
}

// mapParseError maps jwt parse errors to errno values.
func mapParseError(err error) *errors.Errno {
	switch {
	case strings.Contains(err.Error(), "token is expired"):
		return errors.ErrTokenExpired
	case strings.Contains(err.Error(), "signature is invalid"):
		return errors.ErrInvalidToken.WithMessage("invalid signature")
	case strings.Contains(err.Error(), "token is malformed"):
		return errors.ErrInvalidToken.WithMessage("malformed token")
	default:
		return errors.ErrInvalidToken.WithCause(err)
	}
}

// tokenPrefix returns the first characters of a token for logging.
func tokenPrefix(tokenString string) string {
	if len(tokenString) > 16 {
		return tokenString[:16] + "..."
	}
	return tokenString
}

// generateTokenID generates a random token ID.
func generateTokenID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", errors.ErrInternal.WithCause(err).WithMessage("failed to generate token ID")
	}
	return hex.EncodeToString(b), nil
}
