package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalFallback(t *testing.T) {
	c, err := New(Config{LocalGCInterval: time.Hour})
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	_, err = c.Get(ctx, "url")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFound(err))

	require.NoError(t, c.Set(ctx, "url", `{"id":1}`, time.Minute))
	v, err := c.Get(ctx, "url")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, v)

	require.NoError(t, c.Flush(ctx))
	_, err = c.Get(ctx, "url")
	assert.True(t, IsNotFound(err))
}

func TestNewRedisUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a closed port")
	}
	_, err := New(Config{RedisAddr: "127.0.0.1:1"})
	assert.Error(t, err)
}
