// Rdump renders the raw bytes of a file as hexadecimal text, either in a
// compact form of byte-swapped 16-bit words or in a canonical form of 16 bytes
// per line with an ASCII sidebar.
package rdump

import (
	"errors"
	"io"

	"github.com/OhanaFS/rdump/source"
)

const (
	// windowSize is the number of source bytes rendered on each line.
	windowSize = 16
	// midpoint is the slot index after which canonical lines get an extra gap.
	midpoint = 7
)

var (
	ErrNegativeSkip   = errors.New("skip must not be negative")
	ErrNegativeLength = errors.New("length must not be negative")
)

// DumperOptions specifies options for the Dumper.
type DumperOptions struct {
	// Canonical selects the canonical layout (8-digit offsets, 16 slots and an
	// ASCII sidebar). The compact layout is used otherwise.
	Canonical bool
	// Compression selects how the file is decoded before it is dumped.
	Compression source.Compression
	// Skip is the number of decoded bytes to skip. Offsets printed by Dump stay
	// absolute, so the first line starts at Skip, or at the end of a shorter
	// input.
	Skip int64
	// Length limits the number of bytes dumped after skipping. Zero means no
	// limit.
	Length int64
	// Wrap, if set, wraps the opened source before it is read. It is used to
	// attach tracing or progress reporting.
	Wrap func(io.Reader) io.Reader
}

// Dumper reads a byte source in fixed windows of 16 bytes and renders one line
// of text per window. A Dumper holds no state between calls and may be used
// from multiple goroutines.
type Dumper struct {
	opts *DumperOptions
}

func NewDumper(opts *DumperOptions) *Dumper {
	if opts == nil {
		opts = &DumperOptions{}
	}
	return &Dumper{opts}
}

// Dump renders the file at path. canonical selects between the canonical and
// the compact layout. Any error opening or reading the file is returned as is
// and no text is returned with it.
func Dump(path string, canonical bool) (string, error) {
	return NewDumper(&DumperOptions{Canonical: canonical}).Dump(path)
}
