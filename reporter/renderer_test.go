package reporter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const up3 = "\033[1A\033[1A\033[1A\r"

func newTestRenderer(buf *bytes.Buffer, total, width int, noColor bool) *Renderer {
	return New(buf, Config{
		Total:     total,
		TermWidth: func() (int, error) { return width, nil },
		NoColor:   noColor,
	})
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestRecord_FirstPass(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 100, 80, true)

	require.NoError(t, r.Record(Pass))

	expected := "  1/100: -_,------,   \n" +
		"  1/100: -_|   /\\_/\\\n" +
		"  0/100: -^|__( ^ .^) \n" +
		"  0/100: -  \"\"  \"\"    " + up3
	assert.Equal(t, expected, buf.String())
	assert.Equal(t, Running, r.Mood())
	assert.Equal(t, 1, r.Passed())
	assert.Equal(t, 0, r.Pending())
	assert.Equal(t, 0, r.Failed())
	assert.False(t, r.Finished())
}

func TestRecord_FirstPass_Colored(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 100, 80, false)

	require.NoError(t, r.Record(Pass))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 4)
	glyph := "\033[38;5;154m-\033[0m"
	assert.Equal(t, "  1/100: "+glyph+"_,------,   ", lines[0])
	assert.Equal(t, "\033[32m  1\033[0m/100: "+glyph+"_|   /\\_/\\", lines[1])
	assert.Equal(t, "\033[33m  0\033[0m/100: "+glyph+"^|__( ^ .^) ", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "\033[31m  0\033[0m/100: "+glyph))
	assert.True(t, strings.HasSuffix(lines[3], up3))
}

func TestRecord_FailedMarksColors(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 10, 80, false)

	require.NoError(t, r.Record(Fail))
	require.NoError(t, r.Record(Error))
	buf.Reset()
	require.NoError(t, r.Record(Pending))

	out := buf.String()
	assert.Contains(t, out, "\033[31m*\033[0m\033[33m!\033[0m\033[33m+\033[0m")
	assert.Equal(t, 0, r.Cursor(), "only passes advance the color cursor")
}

func TestRecord_NinePassesThenFail(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 10, 80, true)

	for i := 0; i < 9; i++ {
		require.NoError(t, r.Record(Pass))
	}
	assert.Equal(t, Running, r.Mood())
	buf.Reset()
	require.NoError(t, r.Record(Fail))

	assert.Equal(t, 1, r.Failed())
	assert.True(t, r.FailedOrPending())
	assert.True(t, r.Finished())
	assert.Equal(t, SleepyConcerned, r.Mood())
	// Every repaint recolors the whole history: 1+2+...+9 then 9 again.
	assert.Equal(t, 54, r.Cursor())
	assert.Contains(t, buf.String(), "~|_( x .x)  ")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.NotContains(t, buf.String(), "\033[1A")
}

func TestRecord_ConcernedWhilePending(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 10, 80, true)

	require.NoError(t, r.Record(Pending))

	assert.Equal(t, Concerned, r.Mood())
	assert.Contains(t, buf.String(), "( o .o)")
}

func TestRecord_SleepyWhenAllPass(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 2, 80, true)

	require.NoError(t, r.Record(Pass))
	require.NoError(t, r.Record(Pass))

	assert.Equal(t, Sleepy, r.Mood())
	assert.Contains(t, buf.String(), "( - .-)")
}

func TestRecord_ScrollingDropsOldest(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 5, 22, true)

	for _, m := range []Mark{Fail, Pending, Error, Pass} {
		require.NoError(t, r.Record(m))
	}
	buf.Reset()
	require.NoError(t, r.Record(Pass))

	// width = padding(8) + completed(5) + frame(12) = 25, so 3 glyphs are dropped.
	expected := "5/5: _-_,------,   \n" +
		"2/5: _-_|   /\\_/\\\n" +
		"1/5: _-^|__( x .x) \n" +
		"2/5: _-  \"\"  \"\"    \n"
	assert.Equal(t, expected, buf.String())
	assert.Len(t, r.History(), 5, "history is never trimmed")
}

func TestRecord_ScrollingDropsEverythingOnNarrowTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 5, 20, true)

	for i := 0; i < 4; i++ {
		require.NoError(t, r.Record(Pass))
	}
	buf.Reset()
	require.NoError(t, r.Record(Pass))

	assert.True(t, strings.HasPrefix(buf.String(), "5/5: _,------,   \n"))
}

func TestRecord_TrailNeverOverflows(t *testing.T) {
	for _, width := range []int{30, 40, 80, 120} {
		t.Run(fmt.Sprintf("width=%d", width), func(t *testing.T) {
			var buf bytes.Buffer
			r := newTestRenderer(&buf, 200, width, true)
			for i := 0; i < 200; i++ {
				buf.Reset()
				require.NoError(t, r.Record(Pass))
				first := strings.SplitN(buf.String(), "\n", 2)[0]
				trail := strings.TrimSuffix(strings.SplitN(first, ": ", 2)[1], "_,------,   ")
				assert.LessOrEqual(t, len(trail), width-(3*2+6)-12)
			}
		})
	}
}

func TestRecord_NewestGlyphIsKept(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 50, 40, true)

	for i := 0; i < 49; i++ {
		require.NoError(t, r.Record(Pass))
	}
	buf.Reset()
	require.NoError(t, r.Record(Fail))

	first := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.True(t, strings.HasSuffix(first, "*_,------,   "), "newest glyph must be right before the cat: %q", first)
}

func TestRecord_OverCountIsClamped(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 3, 80, true)

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Record(Pass))
		assert.Equal(t, min(i+1, 3), r.Completed())
	}
	assert.True(t, r.Finished())
	assert.Len(t, r.History(), 5)
}

func TestRecord_FinishedIsMonotonic(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 2, 80, true)

	assert.False(t, r.Finished())
	require.NoError(t, r.Record(Pass))
	assert.False(t, r.Finished())
	require.NoError(t, r.Record(Pass))
	assert.True(t, r.Finished())
	require.NoError(t, r.Record(Fail))
	assert.True(t, r.Finished())
}

func TestRecord_TalliesIgnoreOrder(t *testing.T) {
	marks := []Mark{Pass, Fail, Pending, Error, Pass, Pending, Fail, Pass}
	var buf bytes.Buffer
	r := newTestRenderer(&buf, len(marks), 80, true)
	for _, m := range marks {
		require.NoError(t, r.Record(m))
	}

	assert.Equal(t, 3, r.Failed())
	assert.Equal(t, 2, r.Pending())
	assert.Equal(t, 3, r.Passed())
	assert.Equal(t, marks, r.History())
}

func TestRecord_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 0, 80, true)

	assert.True(t, r.Finished())
	require.NoError(t, r.Record(Pass))

	assert.Equal(t, 0, r.Completed())
	assert.True(t, strings.HasPrefix(buf.String(), "0/0: "))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestRecord_PropagatesWriteError(t *testing.T) {
	boom := errors.New("broken pipe")
	r := New(failingWriter{boom}, Config{Total: 3})

	err := r.Record(Pass)

	assert.Same(t, boom, err)
	assert.Equal(t, 1, r.Completed(), "state is updated even when the write fails")
}

func TestTick(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 4, 80, true)

	for _, code := range ".EFS" {
		require.NoError(t, r.Tick(code))
	}

	assert.Equal(t, []Mark{Pass, Error, Fail, Pending}, r.History())
	assert.Equal(t, 2, r.Failed())
	assert.Equal(t, 1, r.Pending())
}

func TestTick_UnknownCodeIsIgnored(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 4, 80, true)

	require.NoError(t, r.Tick('x'))

	assert.Empty(t, buf.String())
	assert.Equal(t, 0, r.Completed())
	assert.Empty(t, r.History())
}

func TestNew_WidthFallback(t *testing.T) {
	assert.Equal(t, DefaultWidth, New(&bytes.Buffer{}, Config{}).Width())
	assert.Equal(t, DefaultWidth, New(&bytes.Buffer{}, Config{
		TermWidth: func() (int, error) { return 0, errors.New("not a terminal") },
	}).Width())
	assert.Equal(t, DefaultWidth, New(&bytes.Buffer{}, Config{
		TermWidth: func() (int, error) { return -4, nil },
	}).Width())
	assert.Equal(t, 132, New(&bytes.Buffer{}, Config{
		TermWidth: func() (int, error) { return 132, nil },
	}).Width())
}

func TestNew_WidthIsQueriedOnce(t *testing.T) {
	calls := 0
	var buf bytes.Buffer
	r := New(&buf, Config{
		Total:     3,
		TermWidth: func() (int, error) { calls++; return 100, nil },
	})
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Record(Pass))
	}
	assert.Equal(t, 1, calls)
}

func TestNew_NegativeTotal(t *testing.T) {
	r := New(&bytes.Buffer{}, Config{Total: -3})
	assert.Equal(t, 0, r.Total())
	assert.True(t, r.Finished())
}

func TestRelease(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 3, 80, true)

	require.NoError(t, r.Release())
	assert.Empty(t, buf.String(), "nothing painted yet")

	require.NoError(t, r.Record(Pass))
	buf.Reset()
	require.NoError(t, r.Release())
	assert.Equal(t, "\n\n\n\n", buf.String())

	require.NoError(t, r.Record(Pass))
	require.NoError(t, r.Record(Pass))
	buf.Reset()
	require.NoError(t, r.Release())
	assert.Empty(t, buf.String(), "a finished block already ends with a newline")
}

// paintEverything renders the block the slow way: every recorded mark is
// colored before the oldest ones are scrolled out.
func paintEverything(r *Renderer) string {
	glyphs := make([]string, len(r.history))
	for i, m := range r.history {
		glyphs[i] = r.highlight(m)
	}
	frame := Frame(r.Mood(), r.cursor)
	glyphs = glyphs[r.scroll(frameWidth(frame)):]
	return r.compose(strings.Join(glyphs, ""), frame)
}

func TestRecord_MatchesFullRepaint(t *testing.T) {
	marks := []Mark{Pass, Pass, Fail, Pass, Pending, Pass, Error, Pass, Pass, Pass}
	for _, noColor := range []bool{true, false} {
		t.Run(fmt.Sprintf("noColor=%t", noColor), func(t *testing.T) {
			var buf, expected bytes.Buffer
			r := newTestRenderer(&buf, 300, 40, noColor)
			ref := newTestRenderer(&expected, 300, 40, noColor)

			for i := 0; i < 300; i++ {
				m := marks[i%len(marks)]
				require.NoError(t, r.Record(m))
				ref.count(m)
				expected.WriteString(paintEverything(ref))

				require.Equal(t, expected.String(), buf.String(), "repaint %d", i)
				require.Equal(t, ref.Cursor(), r.Cursor(), "repaint %d", i)
			}
		})
	}
}

func TestRecord_CostDoesNotGrowWithHistory(t *testing.T) {
	allocs := func(history int) float64 {
		r := New(io.Discard, Config{Total: 100000, TermWidth: func() (int, error) { return 80, nil }})
		for i := 0; i < history; i++ {
			require.NoError(t, r.Record(Pass))
		}
		return testing.AllocsPerRun(50, func() { _ = r.Record(Pass) })
	}

	short, long := allocs(100), allocs(20000)
	assert.LessOrEqual(t, long, short+1, "a repaint must only color the visible trail")
}

func TestRecord_OverCountStillFits(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 3, 30, true)

	for i := 0; i < 20; i++ {
		buf.Reset()
		require.NoError(t, r.Record(Pass))
		if !r.Finished() {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
			assert.Less(t, len(line), 30, "line must not wrap: %q", line)
		}
	}
}
