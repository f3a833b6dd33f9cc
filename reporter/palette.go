package reporter

import (
	"fmt"
	"math"
)

// PaletteSize is the length of the rainbow cycle: six hues, seven steps each.
const PaletteSize = 6 * 7

// Palette holds the 256-color indexes of one rainbow cycle.
type Palette [PaletteSize]int

// NewPalette computes a full rainbow cycle.
func NewPalette() Palette {
	var p Palette
	for n := range p {
		p[n] = ColorAt(n)
	}
	return p
}

// At returns the color for an unbounded cursor position.
func (p Palette) At(cursor int) int {
	return p[mod(cursor, PaletteSize)]
}

// ColorAt returns the xterm 256-color index of the n-th rainbow step.
// The result only depends on n modulo PaletteSize.
func ColorAt(n int) int {
	x := float64(mod(n, PaletteSize)) / 6
	third := math.Pi / 3
	r := int(3*math.Sin(x) + 3)
	g := int(3*math.Sin(x+2*third) + 3)
	b := int(3*math.Sin(x+4*third) + 3)
	return 36*r + 6*g + b + 16
}

// rainbow wraps s in a 256-color foreground sequence.
func rainbow(s string, c int) string {
	return fmt.Sprintf("%s38;5;%dm%s%s", esc, c, s, reset)
}

func mod(n, m int) int {
	n %= m
	if n < 0 {
		n += m
	}
	return n
}
