package reporter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Summary describes a finished run.
type Summary struct {
	Tests      int
	Assertions int
	Elapsed    time.Duration
	Failures   []string
}

// Start announces the run with a rainbow banner.
func (r *Renderer) Start(label string) error {
	_, err := fmt.Fprintf(r.w, "\n%s\n\n", r.rainbowifyEach(fmt.Sprintf("# Nyaning %s:", label)))
	return err
}

// Finish prints the rainbow summary line and the failure report.
func (r *Renderer) Finish(s Summary) error {
	seconds := s.Elapsed.Seconds()
	message := fmt.Sprintf("Nyan Cat rocked your world for %.6fs, %.4f tests/s, %.4f assertions/s.",
		seconds, rate(s.Tests, seconds), rate(s.Assertions, seconds))

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(r.rainbowifyEach(message))
	b.WriteString("\n")
	b.WriteString(r.paint.white.Sprint("You've Nyaned for " + FormatDuration(s.Elapsed)))
	b.WriteString("\n")
	for i, failure := range s.Failures {
		fmt.Fprintf(&b, "\n%3d) %s %s\n", i+1, failure, r.paint.cyan.Sprint("=^..^="))
	}
	b.WriteString("\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

// rainbowifyEach colors every character of s with successive rainbow colors.
func (r *Renderer) rainbowifyEach(s string) string {
	var b strings.Builder
	for _, c := range s {
		b.WriteString(r.rainbowify(string(c)))
	}
	return b.String()
}

func rate(n int, seconds float64) float64 {
	return lo.Ternary(seconds > 0, float64(n)/seconds, 0)
}

// FormatDuration renders d as "N seconds" or "M minutes and N seconds".
// Seconds keep up to two decimals.
func FormatDuration(d time.Duration) string {
	total := d.Seconds()
	seconds := math.Round(math.Mod(total, 60)*100) / 100

	message := fmt.Sprintf("%s %s", strconv.FormatFloat(seconds, 'f', -1, 64), plural(seconds == 1, "second"))
	if total >= 60 {
		minutes := int(total / 60)
		message = fmt.Sprintf("%d %s and %s", minutes, plural(minutes == 1, "minute"), message)
	}
	return message
}

func plural(one bool, word string) string {
	return lo.Ternary(one, word, word+"s")
}
