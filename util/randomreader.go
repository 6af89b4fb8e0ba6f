package util

import (
	"io"
	"math/rand"
)

// RandomReader is a io.Reader that returns pseudo-random bytes. The same Seed
// always produces the same stream. This uses math/rand and should not be used
// for security purposes.
type RandomReader struct {
	// Size is the number of bytes the reader yields before io.EOF.
	Size int64
	// Seed seeds the generator on the first read.
	Seed int64

	rng *rand.Rand
}

// Assert that RandomReader implements the io.Reader interface.
var _ io.Reader = &RandomReader{}

// Read implements io.Reader
func (r *RandomReader) Read(p []byte) (n int, err error) {
	if r.Size == 0 {
		return 0, io.EOF
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(r.Seed))
	}
	n = len(p)
	if r.Size < int64(n) {
		n = int(r.Size)
	}
	r.Size -= int64(n)
	return r.rng.Read(p[:n])
}
