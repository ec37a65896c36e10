package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDenylist(t *testing.T) (*TokenDenylist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewTokenDenylist(rdb), mr
}

func TestTokenDenylist_RevokeAndCheck(t *testing.T) {
	dl, mr := newDenylist(t)
	ctx := context.Background()

	revoked, err := dl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, dl.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = dl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = dl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenDenylist_NoopInputs(t *testing.T) {
	dl, mr := newDenylist(t)
	ctx := context.Background()

	assert.NoError(t, dl.Revoke(ctx, "", time.Minute))
	assert.NoError(t, dl.Revoke(ctx, "jti-2", 0))
	assert.Empty(t, mr.Keys())

	revoked, err := dl.IsRevoked(ctx, "")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenDenylist_RedisDown(t *testing.T) {
	dl, mr := newDenylist(t)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.Error(t, dl.Revoke(ctx, "jti-3", time.Minute))
	_, err := dl.IsRevoked(ctx, "jti-3")
	assert.Error(t, err)
}
