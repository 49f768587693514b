package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/store"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "todos.db")
	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.Get("todos")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set("todos", []byte(`[]`)))
	require.NoError(t, s.Set("todos", []byte(`[{"id":1}]`)))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get("todos")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))
}

func TestKeysAreIndependent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "todos.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("a", []byte("1")))
	require.NoError(t, s.Set("b", []byte("2")))

	a, err := s.Get("a")
	require.NoError(t, err)
	b, err := s.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "1", string(a))
	assert.Equal(t, "2", string(b))
}
