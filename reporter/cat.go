package reporter

import (
	"github.com/rivo/uniseg"
	"github.com/samber/lo"
)

// Mood selects the cat's face. It is recomputed on every repaint.
type Mood int

const (
	Running Mood = iota
	Concerned
	Sleepy
	SleepyConcerned
)

// MoodFor picks the mood from the run state. A finished run makes the cat
// sleepy, failures or pending examples make it concerned.
func MoodFor(failedOrPending, finished bool) Mood {
	switch {
	case failedOrPending && finished:
		return SleepyConcerned
	case failedOrPending:
		return Concerned
	case finished:
		return Sleepy
	}
	return Running
}

// Eye returns the eye glyph of the mood.
func (m Mood) Eye() string {
	switch m {
	case Concerned:
		return "o"
	case Sleepy:
		return "-"
	case SleepyConcerned:
		return "x"
	}
	return "^"
}

func (m Mood) String() string {
	switch m {
	case Concerned:
		return "concerned"
	case Sleepy:
		return "sleepy"
	case SleepyConcerned:
		return "sleepy-concerned"
	}
	return "running"
}

// Frame returns the lines of the cat for the mood. The two variants differ in
// spacing and alternate with the color cursor, which makes the cat gallop.
func Frame(m Mood, cursor int) []string {
	o := m.Eye()
	if mod(cursor, 2) == 0 {
		return []string{
			"_,------,   ",
			"_|  /\\_/\\ ",
			"~|_( " + o + " ." + o + ")  ",
			" \"\"  \"\" ",
		}
	}
	return []string{
		"_,------,   ",
		"_|   /\\_/\\",
		"^|__( " + o + " ." + o + ") ",
		"  \"\"  \"\"    ",
	}
}

// frameWidth returns the display width of the widest frame line.
func frameWidth(frame []string) int {
	return lo.Max(lo.Map(frame, func(line string, _ int) int { return uniseg.StringWidth(line) }))
}
