//go:build !windows

package source_test

import (
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OhanaFS/rdump/source"
)

// makeFifo creates a named pipe and feeds data into it once a reader opens it.
func makeFifo(t *testing.T, data []byte) string {
	path := filepath.Join(t.TempDir(), "fifo")
	if err := syscall.Mkfifo(path, 0600); err != nil {
		t.Skipf("mkfifo not supported: %v", err)
	}
	go func() {
		w, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return
		}
		defer w.Close()
		w.Write(data)
	}()
	return path
}

func readFifo(t *testing.T, data []byte, opts *source.Options) ([]byte, int64, error) {
	s, err := source.Open(makeFifo(t, data), opts)
	if err != nil {
		return nil, 0, err
	}
	defer s.Close()
	b, err := io.ReadAll(s)
	return b, s.Skipped(), err
}

func TestFifoSkip(t *testing.T) {
	assert := assert.New(t)

	data := makeData(100)
	b, skipped, err := readFifo(t, data, &source.Options{Skip: 16, Length: 20})
	assert.NoError(err)
	assert.Equal(data[16:36], b)
	assert.Equal(int64(16), skipped)

	b, skipped, err = readFifo(t, data, &source.Options{Skip: 500})
	assert.NoError(err)
	assert.Empty(b)
	assert.Equal(int64(100), skipped)
}

func TestFifoAuto(t *testing.T) {
	assert := assert.New(t)

	data := makeData(3000)
	inputs := map[source.Compression][]byte{
		source.None: data,
		source.Gzip: gzipData(t, data),
		source.Zstd: zstdData(t, data),
		// A seek table cannot be read from a pipe, so it streams as plain zstd.
		source.SeekableZstd: seekableData(t, data, 1000),
	}

	for compression, input := range inputs {
		t.Logf("Auto-detecting %v through a fifo", compression)
		b, _, err := readFifo(t, input, &source.Options{Compression: source.Auto, Skip: 10})
		assert.NoError(err)
		assert.Equal(data[10:], b, "decoded %v", compression)
	}

	b, _, err := readFifo(t, []byte{0x1f}, &source.Options{Compression: source.Auto})
	assert.NoError(err)
	assert.Equal([]byte{0x1f}, b)
}
