package cmd

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/OhanaFS/rdump"
	"github.com/OhanaFS/rdump/source"
	"github.com/OhanaFS/rdump/util"
	"github.com/OhanaFS/rdump/util/debug"
)

var (
	DumpCmd      = flag.NewFlagSet("dump", flag.ExitOnError)
	dCanonical   = DumpCmd.Bool("C", false, "canonical hex+ASCII display")
	dSkip        = DumpCmd.Int64("s", 0, "skip this many bytes from the beginning of the input")
	dLength      = DumpCmd.Int64("n", 0, "dump only this many bytes of input, 0 for all")
	dCompression = DumpCmd.String("z", "none", "input compression: none, gzip, zstd, seekable or auto")
	dOutputFile  = DumpCmd.String("o", "", "path to the output file, stdout if empty")
	dProgress    = DumpCmd.Bool("progress", false, "report reading progress on stderr")
	dTrace       = DumpCmd.Bool("trace", false, "log every read from the input")
)

func RunDumpCmd() int {
	if DumpCmd.NArg() != 1 {
		log.Println("You must specify exactly one input file.")
		return 2
	}
	fileName := DumpCmd.Arg(0)

	compression, err := source.ParseCompression(*dCompression)
	if err != nil {
		log.Println("Invalid compression:", err)
		return 2
	}

	// The total is only known up front for uncompressed input.
	var total int64
	if *dProgress && compression == source.None {
		if stat, err := os.Stat(fileName); err == nil {
			total = dumpedSize(stat.Size(), *dSkip, *dLength)
		}
	}

	var consumed int64
	dumper := rdump.NewDumper(&rdump.DumperOptions{
		Canonical:   *dCanonical,
		Compression: compression,
		Skip:        *dSkip,
		Length:      *dLength,
		Wrap: func(r io.Reader) io.Reader {
			if *dTrace {
				r = debug.NewTraceReader(r, "input", nil)
			}
			if *dProgress {
				r = util.NewProgressReader(r, total, os.Stderr)
			}
			return &countingReader{r, &consumed}
		},
	})

	text, err := dumper.Dump(fileName)
	if err != nil {
		log.Println("Failed to dump file:", err)
		return 1
	}

	if *dOutputFile == "" {
		if _, err := io.WriteString(os.Stdout, text); err != nil {
			log.Println("Failed to write dump:", err)
			return 1
		}
	} else if err := writeOutput(*dOutputFile, text); err != nil {
		log.Println("Failed to write output file:", err)
		return 1
	}

	if *dProgress {
		log.Printf("Dumped %s", util.FormatSize(consumed))
	}
	return 0
}

// writeOutput writes text to a new file at path. The error from Close is
// reported too, since it may be the first sign of a failed write.
func writeOutput(path, text string) error {
	outputFile, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(outputFile, text); err != nil {
		outputFile.Close()
		return err
	}
	return outputFile.Close()
}

// dumpedSize returns how many bytes of a file of the given size are dumped
// after skipping and limiting.
func dumpedSize(size, skip, length int64) int64 {
	size -= skip
	if size < 0 {
		size = 0
	}
	if length > 0 && length < size {
		size = length
	}
	return size
}

type countingReader struct {
	reader io.Reader
	n      *int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	*r.n += int64(n)
	return n, err
}
