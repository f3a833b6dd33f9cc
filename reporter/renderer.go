package reporter

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gammadia/nyancat/reporter/internal"
	"github.com/samber/lo"
)

// DefaultWidth is used when the terminal width cannot be queried.
const DefaultWidth = 80

type Config struct {
	Total     int                 `json:"total"`
	TermWidth func() (int, error) `json:"-"`
	NoColor   bool                `json:"no-color"`
	Logger    *slog.Logger        `json:"-"`
}

// Renderer draws the cat and its rainbow trail as results come in.
// It is not safe for concurrent use.
type Renderer struct {
	w       io.Writer
	logger  *slog.Logger
	palette Palette
	paint   painter
	width   int

	total     int
	completed int
	failed    int
	pending   int
	cursor    int
	passes    int
	history   []Mark
}

func New(w io.Writer, config Config) *Renderer {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Renderer{
		w:       w,
		logger:  logger,
		palette: NewPalette(),
		paint:   newPainter(config.NoColor),
		width:   queryWidth(config.TermWidth, logger),
		total:   max(config.Total, 0),
	}
	r.logger.Debug("Renderer created", "total", r.total, "width", r.width)
	return r
}

func queryWidth(query func() (int, error), logger *slog.Logger) int {
	if query == nil {
		return DefaultWidth
	}
	width, err := query()
	if err != nil {
		logger.Warn("Failed to query terminal width, using default", "error", err, "width", DefaultWidth)
		return DefaultWidth
	}
	if width <= 0 {
		logger.Warn("Terminal reported an invalid width, using default", "reported", width, "width", DefaultWidth)
		return DefaultWidth
	}
	return width
}

// Record adds a result and repaints the progress. The only error it returns is
// the one of the underlying writer.
func (r *Renderer) Record(m Mark) error {
	r.count(m)
	return r.repaint()
}

// count updates the history and the tallies without painting.
func (r *Renderer) count(m Mark) {
	r.history = append(r.history, m)
	if r.completed < r.total {
		r.completed++
	} else {
		r.logger.Debug("Result recorded past the expected total", "total", r.total, "mark", m)
	}

	switch {
	case m.failed():
		r.failed++
	case m == Pending:
		r.pending++
	default:
		r.passes++
	}
}

// Tick records the result identified by a framework result code. Unknown codes
// are ignored.
func (r *Renderer) Tick(code rune) error {
	m, ok := ParseMark(code)
	if !ok {
		r.logger.Debug("Ignoring unknown result code", "code", string(code))
		return nil
	}
	return r.Record(m)
}

// Finished reports whether every expected example has completed.
func (r *Renderer) Finished() bool {
	return r.completed == r.total
}

// FailedOrPending reports whether any example failed, errored or is pending.
func (r *Renderer) FailedOrPending() bool {
	return r.failed > 0 || r.pending > 0
}

func (r *Renderer) Total() int     { return r.total }
func (r *Renderer) Completed() int { return r.completed }
func (r *Renderer) Failed() int    { return r.failed }
func (r *Renderer) Pending() int   { return r.pending }
func (r *Renderer) Cursor() int    { return r.cursor }
func (r *Renderer) Width() int     { return r.width }

// Passed is the number of completed examples that neither failed nor are pending.
func (r *Renderer) Passed() int {
	return max(r.completed-r.pending-r.failed, 0)
}

// Mood returns the mood the cat is currently drawn with.
func (r *Renderer) Mood() Mood {
	return MoodFor(r.FailedOrPending(), r.Finished())
}

// History returns a copy of the recorded marks, oldest first.
func (r *Renderer) History() []Mark {
	return append([]Mark(nil), r.history...)
}

// Release moves the cursor below an unfinished block so that it stays on
// screen, e.g. when the run is interrupted.
func (r *Renderer) Release() error {
	if len(r.history) == 0 || r.Finished() {
		return nil
	}
	_, err := io.WriteString(r.w, strings.Repeat("\n", len(Frame(r.Mood(), r.cursor))))
	return err
}

func (r *Renderer) repaint() error {
	_, err := io.WriteString(r.w, r.render())
	return err
}

// render composes one block: a counter, the visible trail and a cat line per
// frame line, followed by the cursor control sequence.
//
// Every repaint advances the color cursor once per recorded pass, but only the
// marks that fit on the line are colored.
func (r *Renderer) render() string {
	end := r.cursor + r.passes
	frame := Frame(r.Mood(), end)

	visible := r.history[r.scroll(frameWidth(frame)):]
	r.cursor = end - lo.Count(visible, Pass)

	var glyphs strings.Builder
	for _, m := range visible {
		glyphs.WriteString(r.highlight(m))
	}
	return r.compose(glyphs.String(), frame)
}

func (r *Renderer) compose(glyphs string, frame []string) string {
	scoreboard := r.scoreboard()
	lines := make([]string, len(frame))
	for i, line := range frame {
		lines[i] = fmt.Sprintf("%s/%d: %s%s", scoreboard[i%len(scoreboard)], r.total, glyphs, line)
	}

	return strings.Join(lines, "\n") + eol(len(frame), r.Finished())
}

func (r *Renderer) highlight(m Mark) string {
	switch m {
	case Fail:
		return r.paint.red.Sprint(failGlyph)
	case Error:
		return r.paint.yellow.Sprint(errorGlyph)
	case Pending:
		return r.paint.yellow.Sprint(pendingGlyph)
	}
	return r.rainbowify(passGlyphs[mod(r.cursor, 2)])
}

// rainbowify colors s with the next rainbow color.
func (r *Renderer) rainbowify(s string) string {
	c := r.palette.At(r.cursor)
	r.cursor++
	return r.paint.rainbow(s, c)
}

// scroll returns how many of the oldest marks are dropped so the flight never
// overflows one line. Results recorded past the total still take room.
func (r *Renderer) scroll(frameWidth int) int {
	width := internal.DisplayWidth(r.total, len(r.history), frameWidth)
	return internal.Overflow(width, r.width, len(r.history))
}

// scoreboard returns the four counter fields: completed, passed, pending, failed.
func (r *Renderer) scoreboard() []string {
	digits := internal.Digits(r.total)
	field := func(n int) string {
		return internal.RightJustify(strconv.Itoa(n), digits)
	}
	return []string{
		field(r.completed),
		r.paint.green.Sprint(field(r.Passed())),
		r.paint.yellow.Sprint(field(r.pending)),
		r.paint.red.Sprint(field(r.failed)),
	}
}
