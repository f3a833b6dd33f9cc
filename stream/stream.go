// Package stream turns the output of a test framework into result events.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/gammadia/nyancat/reporter"
)

// Formats understood by NewDecoder.
const (
	FormatCodes   = "codes"
	FormatJSON    = "json"
	FormatVerbose = "verbose"
)

var Formats = []string{FormatCodes, FormatJSON, FormatVerbose}

// Event is one completed example.
type Event struct {
	Mark reporter.Mark
	// Test is the name reported by the framework, passed through untouched.
	Test string
	// Output is what the example printed, only kept for failures.
	Output string
}

// Failure renders the event for the failure report.
func (e Event) Failure() string {
	if e.Output == "" {
		return e.Test
	}
	if e.Test == "" {
		return e.Output
	}
	return e.Test + "\n" + e.Output
}

// Decoder yields events until it returns io.EOF.
type Decoder interface {
	Next() (Event, error)
}

func NewDecoder(format string, r io.Reader) (Decoder, error) {
	switch format {
	case FormatCodes:
		return NewCodeDecoder(r), nil
	case FormatJSON:
		return NewJSONDecoder(r), nil
	case FormatVerbose:
		return NewVerboseDecoder(r), nil
	}
	return nil, fmt.Errorf("unknown input format '%s'", format)
}

// Collect drains d and returns every event it produced.
func Collect(d Decoder) ([]Event, error) {
	var events []Event
	for {
		event, err := d.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
}

func readError(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return fmt.Errorf("failed to read test output: %w", err)
}
