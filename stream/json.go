package stream

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/gammadia/nyancat/reporter"
)

const maxLineSize = 1024 * 1024

// testEvent is a single line of go test -json output.
type testEvent struct {
	Action  string  `json:"Action"`
	Package string  `json:"Package"`
	Test    string  `json:"Test"`
	Elapsed float64 `json:"Elapsed"`
	Output  string  `json:"Output"`
}

// JSONDecoder reads go test -json output. Only test-level pass, fail and skip
// actions produce events; output lines are kept for failing tests.
type JSONDecoder struct {
	scanner *bufio.Scanner
	output  map[string][]string
}

func NewJSONDecoder(r io.Reader) *JSONDecoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &JSONDecoder{
		scanner: scanner,
		output:  make(map[string][]string),
	}
}

func (d *JSONDecoder) Next() (Event, error) {
	for d.scanner.Scan() {
		line := d.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event testEvent
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}

		// Package-level events carry no test
		if event.Test == "" {
			continue
		}
		key := event.Package + "." + event.Test

		switch event.Action {
		case "output":
			d.output[key] = append(d.output[key], event.Output)

		case "pass":
			delete(d.output, key)
			return Event{Mark: reporter.Pass, Test: event.Test}, nil

		case "skip":
			delete(d.output, key)
			return Event{Mark: reporter.Pending, Test: event.Test}, nil

		case "fail":
			output := strings.TrimRight(strings.Join(d.output[key], ""), "\n")
			delete(d.output, key)
			return Event{Mark: reporter.Fail, Test: event.Test, Output: output}, nil
		}
	}

	if err := d.scanner.Err(); err != nil {
		return Event{}, readError(err)
	}
	return Event{}, io.EOF
}
