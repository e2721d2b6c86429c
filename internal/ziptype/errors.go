package ziptype

import "errors"

// Sentinel errors for archive operations.
var (
	// ErrInvalidName is returned when an entry name is empty, too long, or
	// contains characters outside the safe set.
	ErrInvalidName = errors.New("zipstore: invalid entry name")

	// ErrOutOfRange is returned when a timestamp cannot be represented in the
	// MS-DOS date/time format.
	ErrOutOfRange = errors.New("zipstore: timestamp out of range")

	// ErrSizeOverflow is returned when a size or offset does not fit its
	// header field.
	ErrSizeOverflow = errors.New("zipstore: size overflow")

	// ErrTooManyEntries is returned when the entry count exceeds the limit.
	ErrTooManyEntries = errors.New("zipstore: too many entries")

	// ErrCorrupt is returned when archive bytes cannot be parsed.
	ErrCorrupt = errors.New("zipstore: corrupt archive")

	// ErrChecksumMismatch is returned when entry content does not match its CRC-32.
	ErrChecksumMismatch = errors.New("zipstore: checksum mismatch")
)
