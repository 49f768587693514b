package todolist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockIDs(t *testing.T) {
	now := time.UnixMilli(1000)
	g := NewClockIDs(func() time.Time { return now })

	assert.Equal(t, int64(1000), g.Next())
	assert.Equal(t, int64(1001), g.Next(), "same millisecond")

	now = time.UnixMilli(5000)
	assert.Equal(t, int64(5000), g.Next())

	now = time.UnixMilli(10)
	assert.Equal(t, int64(5001), g.Next(), "clock stepped back")
}
