package debug

import (
	"io"
	"log"
)

// TraceReader is a wrapper around an io.Reader that logs every read, along
// with the running offset.
type TraceReader struct {
	reader io.Reader
	prefix string
	offset int64
	logger *log.Logger
}

// Assert that the TraceReader struct satisfies the io.Reader interface.
var _ io.Reader = &TraceReader{}

// NewTraceReader wraps reader. A nil logger logs through the standard logger.
func NewTraceReader(reader io.Reader, prefix string, logger *log.Logger) *TraceReader {
	if logger == nil {
		logger = log.Default()
	}
	return &TraceReader{reader: reader, prefix: prefix, logger: logger}
}

func (t *TraceReader) Read(p []byte) (n int, err error) {
	n, err = t.reader.Read(p)
	if err != nil && err != io.EOF {
		t.logger.Printf("%s.Read(%d) at %#x = %d, %v", t.prefix, len(p), t.offset, n, err)
	} else {
		t.logger.Printf("%s.Read(%d) at %#x = %d", t.prefix, len(p), t.offset, n)
	}
	t.offset += int64(n)
	return n, err
}

// Offset returns the number of bytes read through the tracer.
func (t *TraceReader) Offset() int64 {
	return t.offset
}
