package zipstore

import "github.com/meigma/zipstore/internal/ziptype"

// Sentinel errors re-exported from internal/ziptype.
var (
	// ErrInvalidName is returned when an entry name is empty, longer than
	// 255 bytes, or contains characters outside the safe set.
	ErrInvalidName = ziptype.ErrInvalidName

	// ErrOutOfRange is returned when a modification time falls outside
	// the years 1980-2107.
	ErrOutOfRange = ziptype.ErrOutOfRange

	// ErrSizeOverflow is returned when entry data or the archive layout
	// exceeds the 32-bit limits of the format.
	ErrSizeOverflow = ziptype.ErrSizeOverflow

	// ErrTooManyEntries is returned when the entry count exceeds 65535 or
	// the configured maximum.
	ErrTooManyEntries = ziptype.ErrTooManyEntries

	// ErrCorrupt is returned when archive bytes cannot be parsed.
	ErrCorrupt = ziptype.ErrCorrupt

	// ErrChecksumMismatch is returned when entry content does not match
	// its recorded CRC-32.
	ErrChecksumMismatch = ziptype.ErrChecksumMismatch
)
