package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	bold = color.New(color.Bold)

	fgGray   = color.New(color.FgHiBlack)
	fgGreen  = color.New(color.FgGreen)
	fgYellow = color.New(color.FgYellow)
	fgBlue   = color.New(color.FgBlue)
	fgRed    = color.New(color.FgRed)

	fgHiMagenta = color.New(color.FgHiMagenta)
	fgHiCyan    = color.New(color.FgHiCyan)
	fgHiYellow  = color.New(color.FgHiYellow)
)

// SetColorMode applies "always", "never" or "auto". Auto leaves the
// terminal detection of fatih/color alone.
func SetColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// C paints s, or returns it unchanged when c is nil or color is off.
func C(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, C(Current().Success, Current().SymDone+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, C(Current().Error, Current().SymCross+" "+msg))
}

// Hint prints a muted follow-up line.
func Hint(w io.Writer, msg string) {
	fmt.Fprintln(w, C(Current().Muted, msg))
}
