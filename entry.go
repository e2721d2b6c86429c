package zipstore

import (
	"context"
	"fmt"
	"regexp"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meigma/zipstore/internal/checksum"
	"github.com/meigma/zipstore/internal/dostime"
	"github.com/meigma/zipstore/internal/sizing"
)

// namePattern matches the names accepted by the archive writer.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9/.\-]{0,254}$`)

// Entry represents a file to be stored in the archive.
//
// Data is not copied; callers must not modify it until assembly returns.
type Entry struct {
	// Name is the path of the file inside the archive (e.g., "assets/logo.png").
	Name string

	// Data is the file content, stored uncompressed.
	Data []byte

	// Modified is the file's modification time. A zero value is replaced
	// with the current time during assembly.
	Modified time.Time

	// IsText marks the content as textual in the central directory.
	IsText bool

	// CRC is the CRC-32 checksum of Data.
	CRC uint32
}

// Source describes a file whose checksum has not been computed yet.
type Source struct {
	Name     string
	Data     []byte
	Modified time.Time
	IsText   bool
}

// Checksum returns the CRC-32 of data.
func Checksum(data []byte) uint32 {
	return checksum.Checksum(data)
}

// UpdateChecksum returns the CRC-32 of data continued from previous, the
// checksum of all bytes preceding data in the same stream.
func UpdateChecksum(previous uint32, data []byte) uint32 {
	return checksum.Update(previous, data)
}

// ValidName reports whether name is accepted as an entry name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// NewEntry validates its arguments and returns an Entry.
//
// crc must be the CRC-32 of data, usually obtained from Checksum. A zero
// modified time is replaced with time.Now().
func NewEntry(name string, data []byte, modified time.Time, isText bool, crc uint32) (Entry, error) {
	if modified.IsZero() {
		modified = time.Now()
	}
	e := Entry{
		Name:     name,
		Data:     data,
		Modified: modified,
		IsText:   isText,
		CRC:      crc,
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Validate checks that the entry can be written to an archive.
// A zero Modified time is accepted.
func (e Entry) Validate() error {
	_, err := e.fields(time.Now())
	return err
}

// entryFields holds the header values derived from an entry.
type entryFields struct {
	nameLen uint16
	dataLen uint32
	dosTime uint32
}

// fields validates e and derives its header values. now replaces a zero
// Modified time.
func (e Entry) fields(now time.Time) (entryFields, error) {
	if err := validateName(e.Name); err != nil {
		return entryFields{}, err
	}
	nameLen, err := sizing.ToUint16(len(e.Name), ErrInvalidName)
	if err != nil {
		return entryFields{}, err
	}
	dataLen, err := sizing.ToUint32(len(e.Data), ErrSizeOverflow)
	if err != nil {
		return entryFields{}, fmt.Errorf("%w: %s: %d bytes", err, e.Name, len(e.Data))
	}

	modified := e.Modified
	if modified.IsZero() {
		modified = now
	}
	dosTime, err := dostime.Encode(modified)
	if err != nil {
		return entryFields{}, fmt.Errorf("%s: %w", e.Name, err)
	}

	return entryFields{nameLen: nameLen, dataLen: dataLen, dosTime: dosTime}, nil
}

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ComputeEntries checksums sources concurrently and returns the resulting
// entries in input order.
//
// All names are validated before any checksum is computed. Concurrency is
// bounded by WithConcurrency. The context can be used to cancel long runs.
func ComputeEntries(ctx context.Context, sources []Source, opts ...Option) ([]Entry, error) {
	cfg := newConfig(opts)
	if len(sources) > cfg.maxEntries {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyEntries, len(sources), cfg.maxEntries)
	}
	for i := range sources {
		if err := validateName(sources[i].Name); err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
	}

	cfg.log().Debug("computing checksums", "entries", len(sources), "concurrency", cfg.concurrency)

	entries := make([]Entry, len(sources))
	var done atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for i := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src := sources[i]
			e, err := NewEntry(src.Name, src.Data, src.Modified, src.IsText, checksum.Checksum(src.Data))
			if err != nil {
				return fmt.Errorf("source %d: %w", i, err)
			}
			entries[i] = e
			cfg.reportProgress(ProgressEvent{
				Stage:        StageChecksumming,
				Name:         src.Name,
				BytesDone:    uint64(len(src.Data)),
				BytesTotal:   uint64(len(src.Data)),
				EntriesDone:  int(done.Add(1)),
				EntriesTotal: len(sources),
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
