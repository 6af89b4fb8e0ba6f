package cmd

import (
	"flag"
	"io"
	"log"
	"sync"
	"time"

	"github.com/OhanaFS/rdump"
	"github.com/OhanaFS/rdump/util"
)

var (
	BenchCmd    = flag.NewFlagSet("bench", flag.ExitOnError)
	bCanonical  = BenchCmd.Bool("C", false, "benchmark the canonical layout")
	bThreads    = BenchCmd.Int("threads", 1, "number of threads")
	bInputSize  = BenchCmd.Int64("input-size", 10*1024*1024, "size of input data")
	bKeepOutput = BenchCmd.Bool("keep-output", false, "count the rendered output instead of discarding it")
)

func RunBenchCmd() int {
	if *bThreads < 1 {
		log.Println("threads must be at least 1")
		return 2
	}
	log.Printf("Running benchmark over %s with %d threads (canonical: %v)",
		util.FormatSize(*bInputSize), *bThreads, *bCanonical)

	dumper := rdump.NewDumper(&rdump.DumperOptions{Canonical: *bCanonical})

	runBench := func(seed int64) (time.Duration, int64, error) {
		input := &util.RandomReader{Size: *bInputSize, Seed: seed}
		output := &countingWriter{}

		startTime := time.Now()
		var w io.Writer = io.Discard
		if *bKeepOutput {
			w = output
		}
		n, err := dumper.Stream(input, w)
		if err != nil {
			return 0, 0, err
		}
		if n != *bInputSize {
			return 0, 0, io.ErrUnexpectedEOF
		}
		return time.Since(startTime), output.n, nil
	}

	// Run the benchmark for each thread
	var durations []time.Duration
	var outputSize int64
	var lock sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < *bThreads; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			duration, written, err := runBench(seed)
			if err != nil {
				log.Printf("Error running benchmark: %v", err)
				return
			}
			lock.Lock()
			durations = append(durations, duration)
			outputSize += written
			lock.Unlock()
		}(int64(i))
	}

	// Wait for all the threads to finish
	wg.Wait()
	if len(durations) == 0 {
		return 1
	}

	// Report the results
	var totalDuration time.Duration
	for _, duration := range durations {
		totalDuration += duration
	}
	averageDuration := totalDuration / time.Duration(len(durations))

	speed := int64(float64(*bInputSize) * float64(len(durations)) / averageDuration.Seconds())
	log.Printf("Average duration: %v, speed: %s/s", averageDuration, util.FormatSize(speed))
	if *bKeepOutput {
		log.Printf("Rendered %s of text", util.FormatSize(outputSize))
	}

	return 0
}

type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}
