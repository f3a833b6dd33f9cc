package stream

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/gammadia/nyancat/reporter"
)

var (
	goResultRegex = regexp.MustCompile(`^\s*---\s+(PASS|FAIL|SKIP):\s+(\S+)`)
	goRunRegex    = regexp.MustCompile(`^\s*===\s+(RUN|PAUSE|CONT|NAME)\s+`)
)

// VerboseDecoder reads go test -v output:
//
//	=== RUN   TestFoo
//	    foo_test.go:15: expected X, got Y
//	--- FAIL: TestFoo (0.00s)
type VerboseDecoder struct {
	scanner *bufio.Scanner
	output  []string
}

func NewVerboseDecoder(r io.Reader) *VerboseDecoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &VerboseDecoder{scanner: scanner}
}

func (d *VerboseDecoder) Next() (Event, error) {
	for d.scanner.Scan() {
		line := d.scanner.Text()

		if goRunRegex.MatchString(line) {
			d.output = nil
			continue
		}

		match := goResultRegex.FindStringSubmatch(line)
		if match == nil {
			if strings.TrimSpace(line) != "" {
				d.output = append(d.output, line)
			}
			continue
		}

		event := Event{Test: match[2]}
		switch match[1] {
		case "PASS":
			event.Mark = reporter.Pass
		case "SKIP":
			event.Mark = reporter.Pending
		case "FAIL":
			event.Mark = reporter.Fail
			event.Output = strings.Join(d.output, "\n")
		}
		d.output = nil
		return event, nil
	}

	if err := d.scanner.Err(); err != nil {
		return Event{}, readError(err)
	}
	return Event{}, io.EOF
}
