package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-web-platform/internal/common/config"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisClient) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}

func TestRedisClient_Ping(t *testing.T) {
	_, client := setupRedis(t)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestRedisClient_IncrWindow(t *testing.T) {
	mr, client := setupRedis(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, err := client.IncrWindow(ctx, "ratelimit:1.2.3.4:100", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:1.2.3.4:100"))

	ttl, err := client.TTL(ctx, "ratelimit:1.2.3.4:100")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	mr.FastForward(time.Minute + time.Second)
	count, err := client.IncrWindow(ctx, "ratelimit:1.2.3.4:100", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisClient_IncrWindow_Mock(t *testing.T) {
	t.Run("sets expiry on first hit only", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		client := NewRedisFromClient(db)

		mock.ExpectIncr("k").SetVal(1)
		mock.ExpectExpire("k", 30*time.Second).SetVal(true)
		mock.ExpectIncr("k").SetVal(2)

		_, err := client.IncrWindow(context.Background(), "k", 30*time.Second)
		require.NoError(t, err)
		count, err := client.IncrWindow(context.Background(), "k", 30*time.Second)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("incr error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		client := NewRedisFromClient(db)

		mock.ExpectIncr("k").SetErr(errors.New("connection refused"))

		_, err := client.IncrWindow(context.Background(), "k", time.Second)
		assert.ErrorContains(t, err, "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil reply", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		client := NewRedisFromClient(db)

		mock.ExpectIncr("k").SetErr(redis.Nil)

		_, err := client.IncrWindow(context.Background(), "k", time.Second)
		assert.ErrorIs(t, err, redis.Nil)
	})
}
