package util_test

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OhanaFS/rdump/util"
	"github.com/OhanaFS/rdump/util/debug"
)

func TestFormatSize(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0 B", util.FormatSize(0))
	assert.Equal("1023 B", util.FormatSize(1023))
	assert.Equal("1.0 KiB", util.FormatSize(1024))
	assert.Equal("1.5 MiB", util.FormatSize(3*512*1024))
	assert.Equal("2.0 GiB", util.FormatSize(2<<30))
	assert.Equal("4.0 TiB", util.FormatSize(4<<40))
}

func TestLimitReader(t *testing.T) {
	assert := assert.New(t)

	r := util.NewLimitReader(strings.NewReader("0123456789"), 4)
	b, err := io.ReadAll(r)
	assert.NoError(err)
	assert.Equal("0123", string(b))
	assert.Equal(int64(4), r.Pos())

	r = util.NewLimitReader(strings.NewReader("01"), 4)
	b, err = io.ReadAll(r)
	assert.NoError(err)
	assert.Equal("01", string(b))
	assert.Equal(int64(2), r.Pos())
}

func TestRandomReader(t *testing.T) {
	assert := assert.New(t)

	a, err := io.ReadAll(&util.RandomReader{Size: 100, Seed: 1})
	assert.NoError(err)
	b, err := io.ReadAll(&util.RandomReader{Size: 100, Seed: 1})
	assert.NoError(err)
	c, err := io.ReadAll(&util.RandomReader{Size: 100, Seed: 2})
	assert.NoError(err)

	assert.Len(a, 100)
	assert.Equal(a, b)
	assert.NotEqual(a, c)
}

func TestProgressReader(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	r := util.NewProgressReader(strings.NewReader(strings.Repeat("z", 2048)), 2048, out)
	b, err := io.ReadAll(r)
	assert.NoError(err)
	assert.Len(b, 2048)
	assert.Contains(out.String(), " / 2.0 KiB")
}

func TestTraceReader(t *testing.T) {
	assert := assert.New(t)

	logs := &bytes.Buffer{}
	r := debug.NewTraceReader(strings.NewReader("abcdefghij"), "input", log.New(logs, "", 0))
	buf := make([]byte, 8)
	n, err := r.Read(buf)
	assert.NoError(err)
	assert.Equal(8, n)
	n, err = r.Read(buf)
	assert.NoError(err)
	assert.Equal(2, n)
	assert.Equal(int64(10), r.Offset())

	assert.Equal("input.Read(8) at 0x0 = 8\ninput.Read(8) at 0x8 = 2\n", logs.String())
}
