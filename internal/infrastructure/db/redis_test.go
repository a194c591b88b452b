package db

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(RedisConfig{Host: mr.Host(), Port: mustPort(t, mr)}, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	repo := NewRedisRepository(client, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "oauth_state:abc", "1", time.Minute))

	value, err := repo.Get(ctx, "oauth_state:abc")
	require.NoError(t, err)
	assert.Equal(t, "1", value)

	value, err = repo.GetDel(ctx, "oauth_state:abc")
	require.NoError(t, err)
	assert.Equal(t, "1", value)

	_, err = repo.Get(ctx, "oauth_state:abc")
	assert.True(t, repo.IsNotFound(err))

	require.NoError(t, repo.Set(ctx, "expiring", "x", time.Second))
	mr.FastForward(2 * time.Second)
	_, err = repo.GetDel(ctx, "expiring")
	assert.True(t, repo.IsNotFound(err))

	require.NoError(t, repo.Set(ctx, "k", "v", 0))
	require.NoError(t, repo.Delete(ctx, "k"))
	_, err = repo.Get(ctx, "k")
	assert.True(t, repo.IsNotFound(err))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(RedisConfig{Host: "127.0.0.1", Port: 1}, zap.NewNop())
	assert.Error(t, err)
}

func mustPort(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return port
}
