package rdump

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendOffset(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0000000", string(appendOffset(nil, 0, compactOffsetWidth)))
	assert.Equal("000004a", string(appendOffset(nil, 0x4a, compactOffsetWidth)))
	assert.Equal("00000010", string(appendOffset(nil, 16, canonicalOffsetWidth)))
	// Offsets wider than the field are not truncated.
	assert.Equal("123456789", string(appendOffset(nil, 0x123456789, canonicalOffsetWidth)))
}

func TestAppendCompact(t *testing.T) {
	assert := assert.New(t)

	window := make([]byte, windowSize)
	for i := range window {
		window[i] = byte(0xf0 + i)
	}

	assert.Equal("0000000 f1f0 f3f2 f5f4 f7f6 f9f8 fbfa fdfc fffe\n", string(appendCompact(nil, 0, window, 16)))
	assert.Equal("0000020 f1f0 f3f2 f4\n", string(appendCompact(nil, 32, window, 5)))
	assert.Equal("0000030 \n", string(appendCompact(nil, 48, window, 0)))
}

func TestAppendCanonicalMidpoint(t *testing.T) {
	assert := assert.New(t)

	window := []byte("ABCDEFGHIJKLMNOP")

	line := string(appendCanonical(nil, 0, window, 8))
	assert.Equal("00000000  41 42 43 44 45 46 47 48  "+"                        "+" |ABCDEFGH|\n", line)

	line = string(appendCanonical(nil, 0, window, 9))
	assert.Equal("00000000  41 42 43 44 45 46 47 48  49                      "+" |ABCDEFGHI|\n", line)
}

func TestAppendCanonicalReusesBuffer(t *testing.T) {
	assert := assert.New(t)

	buf := make([]byte, 0, canonicalLineSize)
	window := make([]byte, windowSize)
	for i := range window {
		window[i] = 0xff
	}

	line := appendCanonical(buf, 0, window, windowSize)
	assert.LessOrEqual(len(line), canonicalLineSize)
	assert.Equal(cap(buf), cap(line))
}

func TestSidebarChar(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(".", string(appendSidebarChar(nil, '\n')))
	assert.Equal(".", string(appendSidebarChar(nil, '\r')))
	assert.Equal("\x7f", string(appendSidebarChar(nil, 0x7f)))
	assert.Equal("ÿ", string(appendSidebarChar(nil, 0xff)))
}
