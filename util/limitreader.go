package util

import "io"

// LimitReader wraps an io.Reader and limits the number of bytes that can be
// read. Unlike io.LimitedReader it keeps the position, which Pos reports.
type LimitReader struct {
	reader io.Reader
	limit  int64
	pos    int64
}

// Assert that the LimitReader struct satisfies the io.Reader interface.
var _ io.Reader = &LimitReader{}

// NewLimitReader creates a new LimitReader.
func NewLimitReader(reader io.Reader, limit int64) *LimitReader {
	return &LimitReader{reader: reader, limit: limit}
}

func (r *LimitReader) Read(p []byte) (n int, err error) {
	if r.pos >= r.limit {
		return 0, io.EOF
	}
	if remaining := r.limit - r.pos; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err = r.reader.Read(p)
	r.pos += int64(n)
	return n, err
}

// Pos returns the number of bytes read so far.
func (r *LimitReader) Pos() int64 {
	return r.pos
}
