package util

import (
	"fmt"
	"io"
	"time"

	"github.com/mitchellh/ioprogress"
)

// NewProgressReader wraps reader so that its progress is drawn to w. If size
// is zero or less the total is left out of the report.
func NewProgressReader(reader io.Reader, size int64, w io.Writer) *ioprogress.Reader {
	return &ioprogress.Reader{
		Reader:       reader,
		Size:         size,
		DrawFunc:     ioprogress.DrawTerminalf(w, formatProgress),
		DrawInterval: 250 * time.Millisecond,
	}
}

func formatProgress(progress, total int64) string {
	if total <= 0 {
		return FormatSize(progress)
	}
	return fmt.Sprintf("%s / %s", FormatSize(progress), FormatSize(total))
}
