package rdump

import (
	"bytes"
	"io"

	"github.com/OhanaFS/rdump/source"
)

// Dump opens the file at path and returns its full rendering.
func (d *Dumper) Dump(path string) (string, error) {
	if d.opts.Skip < 0 {
		return "", ErrNegativeSkip
	}
	if d.opts.Length < 0 {
		return "", ErrNegativeLength
	}

	src, err := source.Open(path, &source.Options{
		Compression: d.opts.Compression,
		Skip:        d.opts.Skip,
		Length:      d.opts.Length,
	})
	if err != nil {
		return "", err
	}
	defer src.Close()

	var r io.Reader = src
	if d.opts.Wrap != nil {
		r = d.opts.Wrap(r)
	}

	out := &bytes.Buffer{}
	if _, err := d.run(r, src.Skipped(), out); err != nil {
		return "", err
	}
	return out.String(), nil
}

// DumpReader renders everything readable from r. Offsets start at zero.
func (d *Dumper) DumpReader(r io.Reader) (string, error) {
	out := &bytes.Buffer{}
	if _, err := d.run(r, 0, out); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Stream writes the rendering of r to w line by line and returns the number
// of bytes consumed from r. Unlike Dump, lines already written stay written
// when a read or write fails.
func (d *Dumper) Stream(r io.Reader, w io.Writer) (int64, error) {
	return d.run(r, 0, w)
}

// run is the dump loop. cursor is the offset printed on the first line. It
// returns the number of bytes read from r.
func (d *Dumper) run(r io.Reader, cursor int64, w io.Writer) (int64, error) {
	var window [windowSize]byte
	line := make([]byte, 0, canonicalLineSize)
	start := cursor

	for {
		offset := cursor

		// Clear the window so a short final read never shows stale bytes.
		window = [windowSize]byte{}
		n, err := fill(r, window[:])
		if err != nil {
			return cursor - start, err
		}
		cursor += int64(n)

		if d.opts.Canonical {
			line = appendCanonical(line[:0], offset, window[:], n)
		} else {
			line = appendCompact(line[:0], offset, window[:], n)
		}
		if _, err := w.Write(line); err != nil {
			return cursor - start, err
		}

		if n == 0 {
			return cursor - start, nil
		}
	}
}

// fill reads until buf is full or the source is exhausted. Reaching the end of
// the source is not an error; the number of bytes read tells the caller.
func fill(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, nil
	}
	return n, err
}
