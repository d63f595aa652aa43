package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	s := NewRedisStore(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return s, mr, cleanup
}

func TestRedisGet_Success(t *testing.T) {
	s, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(CartKey, `[{"quantity":2}]`)

	data, err := s.Get(context.Background(), CartKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"quantity":2}]`, string(data))
}

func TestRedisGet_Missing(t *testing.T) {
	s, _, cleanup := setupTestRedis(t)
	defer cleanup()

	data, err := s.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Nil(t, data)
}

func TestRedisSet_RoundTrip(t *testing.T) {
	s, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, ThemeKey, []byte("dark")))

	data, err := s.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", string(data))
}

func TestRedisSet_NoExpiry(t *testing.T) {
	s, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, s.Set(context.Background(), ThemeKey, []byte("light")))

	// Preference storage must survive; there is no TTL to fast-forward past.
	assert.Zero(t, mr.TTL(ThemeKey))
}

func TestRedisDelete(t *testing.T) {
	s, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	mr.Set(CartKey, "[]")

	require.NoError(t, s.Delete(ctx, CartKey))

	_, err := s.Get(ctx, CartKey)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisGet_ConnectionError(t *testing.T) {
	s, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Close()

	_, err := s.Get(context.Background(), CartKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}
