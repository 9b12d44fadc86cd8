package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/lead-center/pkg/auth"
	options "github.com/kart-io/lead-center/pkg/options/jwt"
	"github.com/kart-io/lead-center/pkg/utils/errors"
)

func newTestJWT(t *testing.T, mutate func(*options.Options)) *JWT {
	t.Helper()
	opts := options.NewOptions()
	opts.Key = "0123456789abcdef0123456789abcdef"
	if mutate != nil {
		mutate(opts)
	}
	store := NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	j, err := New(opts, store)
	require.NoError(t, err)
	return j
}

func TestJWT_SignAndVerify(t *testing.T) {
	j := newTestJWT(t, nil)
	ctx := context.Background()

	token, err := j.Sign(ctx, "42", auth.WithExtra(map[string]interface{}{"username": "rep"}))
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Positive(t, token.ExpiresIn)

	claims, err := j.Verify(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "lead-center", claims.Issuer)
	assert.Equal(t, "rep", claims.Extra["username"])
	assert.NotEmpty(t, claims.ID)
}

func TestJWT_RejectsForeignSignature(t *testing.T) {
	ctx := context.Background()
	j := newTestJWT(t, nil)
	other := newTestJWT(t, func(o *options.Options) {
		o.Key = "ffffffffffffffffffffffffffffffff"
	})

	token, err := other.Sign(ctx, "42")
	require.NoError(t, err)

	_, err = j.Verify(ctx, token.AccessToken)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidToken.Code))
}

func TestJWT_RejectsGarbage(t *testing.T) {
	j := newTestJWT(t, nil)
	ctx := context.Background()

	_, err := j.Verify(ctx, "")
	assert.True(t, errors.IsCode(err, errors.ErrInvalidToken.Code))

	_, err = j.Verify(ctx, "not.a.token")
	assert.True(t, errors.IsCode(err, errors.ErrInvalidToken.Code))
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := newTestJWT(t, nil)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	token, err := j.Sign(ctx, "42", auth.WithExpiresAt(past))
	require.NoError(t, err)

	_, err = j.Verify(ctx, token.AccessToken)
	assert.True(t, errors.IsCode(err, errors.ErrTokenExpired.Code))
}

func TestJWT_RevokeBlocksVerify(t *testing.T) {
	j := newTestJWT(t, nil)
	ctx := context.Background()

	token, err := j.Sign(ctx, "42")
	require.NoError(t, err)
	require.NoError(t, j.Revoke(ctx, token.AccessToken))

	_, err = j.Verify(ctx, token.AccessToken)
	assert.True(t, errors.IsCode(err, errors.ErrTokenRevoked.Code))
}

func TestJWT_Refresh(t *testing.T) {
	j := newTestJWT(t, nil)
	ctx := context.Background()

	token, err := j.Sign(ctx, "42", auth.WithExtra(map[string]interface{}{"role_id": "7"}))
	require.NoError(t, err)

	fresh, err := j.Refresh(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, token.AccessToken, fresh.AccessToken)

	// The new token carries the claims forward.
	claims, err := j.Verify(ctx, fresh.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "7", claims.Extra["role_id"])

	// The old token is revoked by the refresh.
	_, err = j.Verify(ctx, token.AccessToken)
	assert.True(t, errors.IsCode(err, errors.ErrTokenRevoked.Code))
}

func TestJWT_RefreshWindowClosed(t *testing.T) {
	j := newTestJWT(t, func(o *options.Options) {
		o.Expired = time.Millisecond
		o.MaxRefresh = time.Millisecond
	})
	ctx := context.Background()

	token, err := j.Sign(ctx, "42")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	_, err = j.Refresh(ctx, token.AccessToken)
	assert.True(t, errors.IsCode(err, errors.ErrTokenExpired.Code))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "tok", time.Minute))
	revoked, err = store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Entries past their expiration read back as not revoked.
	require.NoError(t, store.Revoke(ctx, "old", -time.Second))
	revoked, err = store.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}
