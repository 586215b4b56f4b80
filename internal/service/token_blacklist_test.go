package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlacklist(t *testing.T) {
	b := NewMemoryBlacklist()
	ctx := context.Background()

	require.NoError(t, b.Revoke(ctx, "live", time.Now().Add(time.Hour)))
	require.NoError(t, b.Revoke(ctx, "expired", time.Now().Add(-time.Second)))

	ok, err := b.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewTokenBlacklistWithoutRedis(t *testing.T) {
	assert.IsType(t, &MemoryBlacklist{}, NewTokenBlacklist(nil))
}
