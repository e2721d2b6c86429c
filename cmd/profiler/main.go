// Command profiler drives the checksum and assembly paths in a loop for
// CPU, heap, and trace profiling.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand" //nolint:gosec // intentional use for reproducible benchmarks
	"net/http"
	_ "net/http/pprof" //nolint:gosec // intentional profiling endpoint
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"time"

	"github.com/meigma/zipstore"
)

type config struct {
	mode        string
	entries     int
	entrySize   int
	dirCount    int
	concurrency int
	duration    time.Duration
	iterations  int
	pprofAddr   string
	cpuProfile  string
	memProfile  string
	traceFile   string
	randomSeed  int64
}

//nolint:unused // sink variables prevent compiler optimizations in profiling
var (
	sinkBytes []byte
	sinkCRC   uint32
	sinkCount int
)

func main() {
	cfg := parseFlags()

	if cfg.pprofAddr != "" {
		go func() {
			log.Printf("pprof listening on %s", cfg.pprofAddr)
			//nolint:gosec // intentional pprof server without timeouts for profiling
			if err := http.ListenAndServe(cfg.pprofAddr, nil); err != nil {
				log.Printf("pprof server error: %v", err)
			}
		}()
	}

	sources := makeSources(cfg)
	entries, err := zipstore.ComputeEntries(context.Background(), sources, zipstore.WithConcurrency(cfg.concurrency))
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile != "" {
		cpuFile, cpuErr := os.Create(cfg.cpuProfile)
		if cpuErr != nil {
			log.Fatal(cpuErr)
		}
		if cpuErr = pprof.StartCPUProfile(cpuFile); cpuErr != nil {
			log.Fatal(cpuErr)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}()
	}

	if cfg.traceFile != "" {
		traceFile, traceErr := os.Create(cfg.traceFile)
		if traceErr != nil {
			log.Fatal(traceErr)
		}
		if traceErr = trace.Start(traceFile); traceErr != nil {
			log.Fatal(traceErr)
		}
		defer func() {
			trace.Stop()
			_ = traceFile.Close()
		}()
	}

	stats, err := runProfile(cfg, sources, entries)
	if err != nil {
		log.Fatal(err) //nolint:gocritic // exitAfterDefer is intentional - profiles are best-effort
	}

	if cfg.memProfile != "" {
		runtime.GC()
		f, err := os.Create(cfg.memProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal(err)
		}
		_ = f.Close()
	}

	fmt.Printf("mode=%s ops=%d bytes=%d elapsed=%s throughput=%.2f MB/s\n",
		cfg.mode,
		stats.ops,
		stats.bytes,
		stats.elapsed,
		float64(stats.bytes)/(1024*1024)/stats.elapsed.Seconds(),
	)
}

type profileStats struct {
	ops     int
	bytes   int64
	elapsed time.Duration
}

//nolint:gocritic // hugeParam acceptable for profiler config
func runProfile(cfg config, sources []zipstore.Source, entries []zipstore.Entry) (profileStats, error) {
	start := time.Now()
	ops := 0
	var byteCount int64

	shouldContinue := func() bool {
		if cfg.iterations > 0 {
			return ops < cfg.iterations
		}
		return time.Since(start) < cfg.duration
	}

	switch cfg.mode {
	case "checksum":
		for shouldContinue() {
			src := sources[ops%len(sources)]
			sinkCRC = zipstore.Checksum(src.Data)
			byteCount += int64(len(src.Data))
			ops++
		}

	case "compute":
		opts := []zipstore.Option{zipstore.WithConcurrency(cfg.concurrency)}
		for shouldContinue() {
			computed, err := zipstore.ComputeEntries(context.Background(), sources, opts...)
			if err != nil {
				return profileStats{}, err
			}
			sinkCount = len(computed)
			byteCount += int64(cfg.entries * cfg.entrySize)
			ops++
		}

	case "assemble":
		for shouldContinue() {
			data, err := zipstore.AssembleBytes(entries)
			if err != nil {
				return profileStats{}, err
			}
			sinkBytes = data
			byteCount += int64(len(data))
			ops++
		}

	case "verify":
		data, err := zipstore.AssembleBytes(entries)
		if err != nil {
			return profileStats{}, err
		}
		start = time.Now()
		for shouldContinue() {
			if err := zipstore.Verify(data); err != nil {
				return profileStats{}, err
			}
			byteCount += int64(len(data))
			ops++
		}

	default:
		return profileStats{}, fmt.Errorf("unknown mode: %s", cfg.mode)
	}

	return profileStats{
		ops:     ops,
		bytes:   byteCount,
		elapsed: time.Since(start),
	}, nil
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.mode, "mode", "assemble", "mode: checksum, compute, assemble, verify")
	flag.IntVar(&cfg.entries, "entries", 512, "number of entries")
	flag.IntVar(&cfg.entrySize, "entry-size", 16<<10, "entry size in bytes")
	flag.IntVar(&cfg.dirCount, "dir-count", 16, "number of directories")
	flag.IntVar(&cfg.concurrency, "concurrency", 0, "checksum workers (0 = GOMAXPROCS)")
	flag.DurationVar(&cfg.duration, "duration", 10*time.Second, "duration to run (ignored if iterations > 0)")
	flag.IntVar(&cfg.iterations, "iterations", 0, "number of iterations to run")
	flag.StringVar(&cfg.pprofAddr, "pprof-addr", "", "pprof listen address (e.g. :6060)")
	flag.StringVar(&cfg.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	flag.StringVar(&cfg.memProfile, "memprofile", "", "write heap profile to file")
	flag.StringVar(&cfg.traceFile, "trace", "", "write trace to file")
	flag.Int64Var(&cfg.randomSeed, "seed", 1, "random seed")
	flag.Parse()
	if cfg.entries <= 0 || cfg.entries > zipstore.MaxEntries {
		log.Fatalf("entries must be in [1, %d]", zipstore.MaxEntries)
	}
	if cfg.dirCount <= 0 {
		cfg.dirCount = 1
	}
	return cfg
}

//nolint:gocritic // hugeParam acceptable for config struct in CLI tool
func makeSources(cfg config) []zipstore.Source {
	rng := rand.New(rand.NewSource(cfg.randomSeed)) //nolint:gosec // intentional for reproducible benchmarks
	modified := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	sources := make([]zipstore.Source, cfg.entries)
	for i := range sources {
		data := make([]byte, cfg.entrySize)
		rng.Read(data)
		sources[i] = zipstore.Source{
			Name:     fmt.Sprintf("dir%02d/file%05d.bin", i%cfg.dirCount, i),
			Data:     data,
			Modified: modified,
		}
	}
	return sources
}
