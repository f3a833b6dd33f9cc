package stream

import (
	"bufio"
	"io"

	"github.com/gammadia/nyancat/reporter"
)

// CodeDecoder reads single-character result codes ('.', 'E', 'F', 'S').
// Any other character is skipped.
type CodeDecoder struct {
	r *bufio.Reader
}

func NewCodeDecoder(r io.Reader) *CodeDecoder {
	return &CodeDecoder{r: bufio.NewReader(r)}
}

func (d *CodeDecoder) Next() (Event, error) {
	for {
		code, _, err := d.r.ReadRune()
		if err != nil {
			return Event{}, readError(err)
		}
		if m, ok := reporter.ParseMark(code); ok {
			return Event{Mark: m}, nil
		}
	}
}
