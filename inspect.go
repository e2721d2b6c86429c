package zipstore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/meigma/zipstore/internal/checksum"
)

// FileInfo describes one entry of a parsed archive.
type FileInfo struct {
	// Name is the entry name as recorded in the central directory.
	Name string

	// Size is the uncompressed size in bytes.
	Size uint64

	// CRC is the CRC-32 recorded in the central directory.
	CRC uint32

	// Modified is the recorded modification time, in UTC.
	Modified time.Time

	// Stored reports whether the entry is uncompressed.
	Stored bool

	// DataOffset is the position of the entry's data in the archive.
	DataOffset int64
}

// Inspect parses archive bytes and lists their entries in directory order.
func Inspect(data []byte) ([]FileInfo, error) {
	zr, err := openReader(data)
	if err != nil {
		return nil, err
	}

	infos := make([]FileInfo, 0, len(zr.File))
	for _, f := range zr.File {
		off, err := f.DataOffset()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, f.Name, err)
		}
		infos = append(infos, FileInfo{
			Name:       f.Name,
			Size:       f.UncompressedSize64,
			CRC:        f.CRC32,
			Modified:   f.Modified,
			Stored:     f.Method == zip.Store,
			DataOffset: off,
		})
	}
	return infos, nil
}

// Verify reads every entry of an archive and checks its content against
// the recorded CRC-32.
func Verify(data []byte) error {
	zr, err := openReader(data)
	if err != nil {
		return err
	}

	for _, f := range zr.File {
		if err := verifyFile(f); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return nil
}

func openReader(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return zr, nil
}

func verifyFile(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	defer rc.Close()

	h := checksum.New()
	n, err := io.Copy(h, rc)
	switch {
	case errors.Is(err, zip.ErrChecksum):
		return ErrChecksumMismatch
	case err != nil:
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if uint64(n) != f.UncompressedSize64 { //nolint:gosec // n is non-negative
		return fmt.Errorf("%w: read %d of %d bytes", ErrCorrupt, n, f.UncompressedSize64)
	}
	if h.Sum32() != f.CRC32 {
		return ErrChecksumMismatch
	}
	return nil
}
