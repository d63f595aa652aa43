package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, CartKey, []byte(`[{"quantity":1}]`)))

	data, err := s.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"quantity":1}]`, string(data))
}

func TestFileStore_Missing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStore_Overwrite(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, ThemeKey, []byte("light")))
	require.NoError(t, s.Set(ctx, ThemeKey, []byte("dark")))

	data, err := s.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", string(data))
}

func TestFileStore_DeleteIsIdempotent(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, CartKey, []byte("[]")))
	require.NoError(t, s.Delete(ctx, CartKey))
	require.NoError(t, s.Delete(ctx, CartKey))

	_, err = s.Get(ctx, CartKey)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
