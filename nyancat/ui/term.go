package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

var ErrNotATerminal = errors.New("not a terminal")

// TermWidth returns a width query for f. A positive override wins over the
// terminal; the query fails when f is not a terminal.
func TermWidth(f *os.File, override int) func() (int, error) {
	return func() (int, error) {
		if override > 0 {
			return override, nil
		}
		if f == nil || !isatty.IsTerminal(f.Fd()) {
			return 0, ErrNotATerminal
		}
		width, _, err := term.GetSize(int(f.Fd()))
		if err != nil {
			return 0, fmt.Errorf("failed to get terminal size: %w", err)
		}
		return width, nil
	}
}
