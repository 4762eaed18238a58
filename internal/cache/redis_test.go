package cache

import (
	"context"
	"testing"

	"github.com/kadivar3110/movie-recommender-system/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", map[string]int{"a": 1}, 60))

	var dest map[string]int
	ok, err := c.GetJSON(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, dest)
	assert.NoError(t, c.Close())
}

func TestNewRedis(t *testing.T) {
	c, err := NewRedis(&config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, c)

	// nadie escucha en el puerto 1
	c, err = NewRedis(&config.Config{RedisAddr: "127.0.0.1:1"}, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, c)
}
