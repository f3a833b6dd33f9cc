package reporter

import (
	"strings"

	"github.com/fatih/color"
)

const (
	esc   = "\033["
	reset = esc + "0m"

	// cursorUp moves the cursor one line up.
	cursorUp = esc + "1A"
)

// painter applies the fixed SGR colors of the reporter. It ignores the global
// color.NoColor switch so that output piped to a file stays colored unless the
// renderer was told otherwise.
type painter struct {
	red, green, yellow, cyan, white *color.Color
	disabled                        bool
}

func newPainter(disabled bool) painter {
	p := painter{
		red:      color.New(color.FgRed),
		green:    color.New(color.FgGreen),
		yellow:   color.New(color.FgYellow),
		cyan:     color.New(color.FgCyan),
		white:    color.New(color.FgWhite),
		disabled: disabled,
	}
	for _, c := range []*color.Color{p.red, p.green, p.yellow, p.cyan, p.white} {
		if disabled {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

// rainbow colors s with the given 256-color index unless colors are disabled.
func (p painter) rainbow(s string, c int) string {
	if p.disabled {
		return s
	}
	return rainbow(s, c)
}

// eol ends a repainted block. Unfinished blocks move the cursor back to the
// first line so the next repaint overwrites them.
func eol(lines int, finished bool) string {
	if finished {
		return "\n"
	}
	if lines <= 1 {
		return "\r"
	}
	return strings.Repeat(cursorUp, lines-1) + "\r"
}
