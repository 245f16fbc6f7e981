package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetMissing(t *testing.T) {
	s := openMemory(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutGetOverwrite(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "scores", []byte(`{"current":1,"highest":3}`)))
	require.NoError(t, s.Put(ctx, "scores", []byte(`{"current":2,"highest":3}`)))

	v, err := s.Get(ctx, "scores")
	require.NoError(t, err)
	assert.JSONEq(t, `{"current":2,"highest":3}`, string(v))
}

func TestDelete(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "streak", []byte(`4`)))
	require.NoError(t, s.Delete(ctx, "streak"))
	_, err := s.Get(ctx, "streak")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "streak", []byte(`7`)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, err := s.Get(ctx, "streak")
	require.NoError(t, err)
	assert.Equal(t, "7", string(v))
}
