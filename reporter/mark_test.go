package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMark(t *testing.T) {
	for code, expected := range map[rune]Mark{'.': Pass, 'E': Error, 'F': Fail, 'S': Pending} {
		m, ok := ParseMark(code)
		assert.True(t, ok, "code %q", code)
		assert.Equal(t, expected, m)
	}
}

func TestParseMark_Unknown(t *testing.T) {
	for _, code := range "xe f\n=*" {
		_, ok := ParseMark(code)
		assert.False(t, ok, "code %q", code)
	}
}

func TestMark_String(t *testing.T) {
	assert.Equal(t, "pass", Pass.String())
	assert.Equal(t, "fail", Fail.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "unknown", Mark(42).String())
}
