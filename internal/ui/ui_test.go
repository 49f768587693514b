package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func plain(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	SetTheme("classic")
	t.Cleanup(func() {
		color.NoColor = prev
		SetTheme("classic")
	})
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 4, 8, "░░░░░░░░   0%"},
		{2, 4, 8, "████░░░░  50%"},
		{4, 4, 8, "████████ 100%"},
		{0, 0, 5, "░░░░░   0%"},
		{1, 1, 1, "█████ 100%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.done, tt.total, tt.width))
	}
}

func TestPanelPadsToWidestLine(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	Panel(&buf, []string{"ab", "日本"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"┌──────┐",
		"│ ab   │",
		"│ 日本 │",
		"└──────┘",
	}, lines)
}

func TestPanelIgnoresColorCodes(t *testing.T) {
	plain(t)
	color.NoColor = false
	var buf bytes.Buffer
	Panel(&buf, []string{C(fgRed, "red"), "abc"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "┌─────┐", lines[0])
	assert.Equal(t, "│ abc │", lines[2])
}

func TestOKAndFail(t *testing.T) {
	plain(t)
	var out bytes.Buffer
	OK(&out, "added")
	Fail(&out, "load: boom")
	assert.Equal(t, "✔ added\n✖ load: boom\n", out.String())
}

func TestMonoTheme(t *testing.T) {
	plain(t)
	color.NoColor = false
	SetTheme("mono")

	assert.True(t, color.NoColor)
	var buf bytes.Buffer
	Panel(&buf, []string{"x"})
	assert.Equal(t, "+---+\n| x |\n+---+\n", buf.String())
}

func TestSetColorMode(t *testing.T) {
	plain(t)
	SetColorMode("always")
	assert.False(t, color.NoColor)
	SetColorMode("never")
	assert.True(t, color.NoColor)
	SetColorMode("auto")
	assert.True(t, color.NoColor, "auto keeps detection result")
}
