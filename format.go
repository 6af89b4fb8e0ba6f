package rdump

import (
	"strconv"
	"unicode/utf8"
)

const (
	hexDigits = "0123456789abcdef"

	compactOffsetWidth   = 7
	canonicalOffsetWidth = 8

	// canonicalLineSize is large enough for a full canonical line whose
	// sidebar holds only multi-byte characters.
	canonicalLineSize = canonicalOffsetWidth + 2 + windowSize*3 + 1 + 2 + windowSize*utf8.UTFMax + 2
)

// appendCompact appends one compact line for the first n bytes of window.
// Bytes are rendered in pairs as 16-bit little-endian words, so 0x12 0x34
// prints as "3412". An odd trailing byte prints on its own.
func appendCompact(dst []byte, offset int64, window []byte, n int) []byte {
	dst = appendOffset(dst, offset, compactOffsetWidth)
	dst = append(dst, ' ')

	for i := 0; i < n; i += 2 {
		if i > 0 {
			dst = append(dst, ' ')
		}
		if i+1 < n {
			dst = appendHexByte(dst, window[i+1])
		}
		dst = appendHexByte(dst, window[i])
	}

	return append(dst, '\n')
}

// appendCanonical appends one canonical line for the first n bytes of window.
// All 16 slots are always present, blank ones padded with spaces. The sidebar
// is only written when n > 0; the terminal line ends in a single space
// instead.
func appendCanonical(dst []byte, offset int64, window []byte, n int) []byte {
	dst = appendOffset(dst, offset, canonicalOffsetWidth)
	dst = append(dst, ' ', ' ')

	for i := 0; i < windowSize; i++ {
		if i < n {
			dst = appendHexByte(dst, window[i])
			dst = append(dst, ' ')
		} else {
			dst = append(dst, ' ', ' ', ' ')
		}
		if i == midpoint {
			dst = append(dst, ' ')
		}
	}

	if n == 0 {
		return append(dst, ' ', '\n')
	}

	dst = append(dst, ' ', '|')
	for _, b := range window[:n] {
		dst = appendSidebarChar(dst, b)
	}
	return append(dst, '|', '\n')
}

// appendSidebarChar writes b as the character with the same code point.
// Only line breaks are replaced, so other control bytes pass through.
func appendSidebarChar(dst []byte, b byte) []byte {
	switch b {
	case '\n', '\r':
		return append(dst, '.')
	}
	if b < utf8.RuneSelf {
		return append(dst, b)
	}
	return utf8.AppendRune(dst, rune(b))
}

func appendHexByte(dst []byte, b byte) []byte {
	return append(dst, hexDigits[b>>4], hexDigits[b&0x0f])
}

// appendOffset writes offset in lowercase hex, zero-padded to width digits.
// Larger offsets are written in full.
func appendOffset(dst []byte, offset int64, width int) []byte {
	var digits [16]byte
	s := strconv.AppendInt(digits[:0], offset, 16)
	for i := len(s); i < width; i++ {
		dst = append(dst, '0')
	}
	return append(dst, s...)
}
