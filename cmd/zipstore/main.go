// Command zipstore packs files into an uncompressed ZIP archive.
//
// Usage:
//
//	zipstore -o App.zip [-folder] [-text .xml,.txt] [-mtime 2018-05-01T12:00:00Z] [-v] file...
//
// Entry names are the file paths as given, with forward slashes. With
// -folder, every entry is placed under a directory named after the output
// file up to its first dot, so App.zip holds App/<file>.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/meigma/zipstore"
	"github.com/meigma/zipstore/internal/pathutil"
)

type config struct {
	output      string
	folder      bool
	textExts    map[string]struct{}
	mtime       time.Time
	concurrency int
	maxEntries  int
	verify      bool
	verbose     bool
	files       []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err) //nolint:gocritic // exitAfterDefer is fine, stop only releases the signal handler
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	sources, err := readSources(cfg)
	if err != nil {
		return err
	}

	opts := []zipstore.Option{
		zipstore.WithLogger(logger),
		zipstore.WithConcurrency(cfg.concurrency),
		zipstore.WithMaxEntries(cfg.maxEntries),
	}
	entries, err := zipstore.ComputeEntries(ctx, sources, opts...)
	if err != nil {
		return fmt.Errorf("compute entries: %w", err)
	}

	archive, err := zipstore.Assemble(entries, opts...)
	if err != nil {
		return fmt.Errorf("assemble: %w", err)
	}
	if cfg.verify {
		if err := zipstore.Verify(archive.Bytes()); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
	}
	dgst, err := archive.Digest()
	if err != nil {
		return err
	}
	if err := archive.Save(cfg.output); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "wrote %s: %d entries, %d bytes, %s\n",
		cfg.output, archive.Count(), archive.Len(), dgst)
	return nil
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	var textExts, mtime string

	fs := flag.NewFlagSet("zipstore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.output, "o", "", "output archive path (required)")
	fs.BoolVar(&cfg.folder, "folder", false, "place entries under a folder named after the output file")
	fs.StringVar(&textExts, "text", ".xml,.txt,.json,.html,.css,.js", "comma-separated extensions marked as text")
	fs.StringVar(&mtime, "mtime", "", "RFC 3339 modification time for all entries (default: file mtime)")
	fs.IntVar(&cfg.concurrency, "concurrency", 0, "checksum workers (0 = GOMAXPROCS)")
	fs.IntVar(&cfg.maxEntries, "max-entries", 0, "maximum entries (0 = format limit)")
	fs.BoolVar(&cfg.verify, "verify", true, "re-read the archive and check every checksum before saving")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if cfg.output == "" {
		return config{}, errors.New("-o is required")
	}
	cfg.files = fs.Args()
	if len(cfg.files) == 0 {
		return config{}, errors.New("no input files")
	}

	cfg.textExts = make(map[string]struct{})
	for ext := range strings.SplitSeq(textExts, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.textExts[ext] = struct{}{}
	}

	if mtime != "" {
		t, err := time.Parse(time.RFC3339, mtime)
		if err != nil {
			return config{}, fmt.Errorf("-mtime: %w", err)
		}
		cfg.mtime = t
	}
	return cfg, nil
}

//nolint:gocritic // hugeParam acceptable for config struct in CLI tool
func readSources(cfg config) ([]zipstore.Source, error) {
	prefix := ""
	if cfg.folder {
		prefix = pathutil.Folder(cfg.output)
	}

	sources := make([]zipstore.Source, 0, len(cfg.files))
	for _, path := range cfg.files {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("not a regular file: %s", path)
		}
		data, err := os.ReadFile(path) //nolint:gosec // user-provided path is intentional
		if err != nil {
			return nil, err
		}

		modified := cfg.mtime
		if modified.IsZero() {
			modified = info.ModTime()
		}
		_, isText := cfg.textExts[strings.ToLower(filepath.Ext(path))]
		sources = append(sources, zipstore.Source{
			Name:     prefix + pathutil.Normalize(path),
			Data:     data,
			Modified: modified,
			IsText:   isText,
		})
	}
	return sources, nil
}
