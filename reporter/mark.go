package reporter

// Mark is the outcome of a single completed example.
type Mark int

const (
	Pass Mark = iota
	Fail
	Error
	Pending
)

// Result codes emitted by the host test framework.
const (
	CodePass    = '.'
	CodeError   = 'E'
	CodeFail    = 'F'
	CodePending = 'S'
)

// Trail glyphs.
const (
	failGlyph    = "*"
	errorGlyph   = "!"
	pendingGlyph = "+"
)

var passGlyphs = [2]string{"-", "_"}

// ParseMark maps a single-character result code to a Mark.
// Unknown codes return false.
func ParseMark(code rune) (Mark, bool) {
	switch code {
	case CodePass:
		return Pass, true
	case CodeError:
		return Error, true
	case CodeFail:
		return Fail, true
	case CodePending:
		return Pending, true
	}
	return Pass, false
}

func (m Mark) String() string {
	switch m {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Error:
		return "error"
	case Pending:
		return "pending"
	}
	return "unknown"
}

// failed reports whether the mark counts towards the failure tally.
func (m Mark) failed() bool {
	return m == Fail || m == Error
}
