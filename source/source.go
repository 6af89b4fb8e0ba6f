package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	seekable "github.com/SaveTheRbtz/zstd-seekable-format-go"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/OhanaFS/rdump/util"
)

// Compression describes how the bytes of a file are decoded before dumping.
type Compression int

const (
	// None dumps the file as stored.
	None Compression = iota
	// Gzip decodes a gzip stream.
	Gzip
	// Zstd decodes a zstd stream.
	Zstd
	// SeekableZstd decodes a zstd stream that carries a seek table, which
	// allows skipping without decompressing the skipped data.
	SeekableZstd
	// Auto picks one of the above from the leading magic bytes.
	Auto
)

var (
	ErrInvalidCompression = errors.New("invalid compression")

	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

var compressionNames = map[Compression]string{
	None:         "none",
	Gzip:         "gzip",
	Zstd:         "zstd",
	SeekableZstd: "seekable",
	Auto:         "auto",
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Compression(%d)", int(c))
}

// ParseCompression maps a name as printed by String back to a Compression.
func ParseCompression(name string) (Compression, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return None, nil
	}
	for c, n := range compressionNames {
		if n == name {
			return c, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidCompression, name)
}

// Options specifies how a Source is opened.
type Options struct {
	// Compression selects the decoder.
	Compression Compression
	// Skip is the number of decoded bytes to skip.
	Skip int64
	// Length caps the number of bytes read after skipping. Zero means no cap.
	Length int64
}

// Source is an opened file, decoded and windowed as requested. It must be
// closed after use.
type Source struct {
	reader  io.Reader
	closers []io.Closer
	skipped int64
}

// Assert that the Source struct satisfies the io.ReadCloser interface.
var _ io.ReadCloser = &Source{}

// Open opens the file at path. Errors from the file system are returned
// unmodified.
func Open(path string, opts *Options) (*Source, error) {
	if opts == nil {
		opts = &Options{}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := &Source{closers: []io.Closer{file}}

	var input io.Reader = file
	compression := opts.Compression
	if compression == Auto {
		if compression, input, err = detect(file); err != nil {
			s.Close()
			return nil, err
		}
	}

	var decoded io.Reader
	switch compression {
	case None:
		decoded = input
	case Gzip:
		rGzip, err := gzip.NewReader(input)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.push(rGzip)
		decoded = rGzip
	case Zstd:
		rZstd, err := zstd.NewReader(input)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.push(closerFunc(func() error {
			rZstd.Close()
			return nil
		}))
		decoded = rZstd
	case SeekableZstd:
		rSeekable, err := openSeekable(file)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.push(rSeekable)
		decoded = rSeekable
	default:
		s.Close()
		return nil, fmt.Errorf("%w: %v", ErrInvalidCompression, compression)
	}

	if opts.Skip > 0 {
		if s.skipped, err = skip(decoded, opts.Skip); err != nil {
			s.Close()
			return nil, err
		}
	}

	if opts.Length > 0 {
		decoded = util.NewLimitReader(decoded, opts.Length)
	}
	s.reader = decoded

	return s, nil
}

func (s *Source) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Close closes the decoders in reverse order of creation, then the file. The
// first error encountered is returned.
func (s *Source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}

// Skipped returns the number of bytes actually skipped, which is less than
// requested when the decoded stream is shorter.
func (s *Source) Skipped() int64 {
	return s.skipped
}

func (s *Source) push(c io.Closer) {
	s.closers = append(s.closers, c)
}

// seekableReader closes the zstd decoder along with the seekable reader.
type seekableReader struct {
	reader seekable.Reader
	dec    *zstd.Decoder
}

func (r *seekableReader) Read(p []byte) (int, error) {
	return r.reader.Read(p)
}

func (r *seekableReader) Seek(offset int64, whence int) (int64, error) {
	return r.reader.Seek(offset, whence)
}

func (r *seekableReader) Close() error {
	var err error
	if c, ok := r.reader.(io.Closer); ok {
		err = c.Close()
	}
	r.dec.Close()
	return err
}

// openSeekable wraps file in a seekable zstd reader. The seek table is read
// from the end of the file.
func openSeekable(file io.ReadSeeker) (*seekableReader, error) {
	decZstd, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %v", err)
	}
	rSeekable, err := seekable.NewReader(file, decZstd)
	if err != nil {
		decZstd.Close()
		return nil, err
	}
	return &seekableReader{rSeekable, decZstd}, nil
}

// detect sniffs the leading bytes of file and returns the reader the decoder
// should consume. Regular files are rewound and returned as is; anything else
// (pipes, FIFOs, devices) is sniffed through a buffer, which is returned in its
// place. Zstd files are reported as seekable when they are regular and end in
// a valid seek table.
func detect(file *os.File) (Compression, io.Reader, error) {
	if !isRegular(file) {
		buffered := bufio.NewReader(file)
		magic, err := buffered.Peek(len(zstdMagic))
		if err != nil && err != io.EOF {
			return None, nil, err
		}
		return sniff(magic), buffered, nil
	}

	magic := make([]byte, len(zstdMagic))
	n, err := file.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return None, nil, err
	}

	compression := sniff(magic[:n])
	if compression == Zstd {
		if r, err := openSeekable(file); err == nil {
			r.Close()
			compression = SeekableZstd
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return None, nil, err
		}
	}
	return compression, file, nil
}

func sniff(magic []byte) Compression {
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		return Gzip
	case bytes.Equal(magic, zstdMagic):
		return Zstd
	}
	return None
}

func isRegular(file *os.File) bool {
	stat, err := file.Stat()
	return err == nil && stat.Mode().IsRegular()
}

// skip advances r by up to n bytes and returns how far it got. Streams that
// can seek are seeked; the rest, including pipes whose Seek fails, are read
// and discarded. Skipping past the end is not an error.
func skip(r io.Reader, n int64) (int64, error) {
	if s, ok := r.(io.Seeker); ok {
		if _, err := s.Seek(0, io.SeekCurrent); err == nil {
			end, err := s.Seek(0, io.SeekEnd)
			if err != nil {
				return 0, err
			}
			if n > end {
				n = end
			}
			return s.Seek(n, io.SeekStart)
		}
	}

	skipped, err := io.CopyN(io.Discard, r, n)
	if err == io.EOF {
		err = nil
	}
	return skipped, err
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}
