package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	m := NewMemory()

	_, err := m.Get("todos")
	assert.ErrorIs(t, err, ErrNotFound)

	buf := []byte(`[]`)
	require.NoError(t, m.Set("todos", buf))
	buf[0] = 'x'

	got, err := m.Get("todos")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got), "Set must copy its input")

	got[0] = 'y'
	again, _ := m.Get("todos")
	assert.Equal(t, `[]`, string(again), "Get must return a copy")

	require.NoError(t, m.Set("todos", []byte(`[1]`)))
	got, _ = m.Get("todos")
	assert.Equal(t, `[1]`, string(got))
	assert.NoError(t, m.Close())
}
