package internal

import (
	"strconv"
	"strings"
)

// Digits returns the number of decimal digits needed to print n.
func Digits(n int) int {
	return len(strconv.Itoa(n))
}

// Padding is the horizontal space reserved for the counters in front of the trail.
func Padding(total int) int {
	return Digits(total)*2 + 6
}

// DisplayWidth is the width the current flight would occupy without scrolling.
func DisplayWidth(total, completed, frameWidth int) int {
	return Padding(total) + completed + frameWidth
}

// Overflow returns how many of the oldest trail glyphs must be dropped so the
// flight fits in termWidth columns, capped to trailLen.
func Overflow(displayWidth, termWidth, trailLen int) int {
	if displayWidth < termWidth {
		return 0
	}
	return min(displayWidth-termWidth, trailLen)
}

// RightJustify left-pads s with spaces to width.
func RightJustify(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
