// Package ziptype holds types shared between the zipstore packages.
package ziptype

// ProgressEvent represents a progress update during checksum computation,
// assembly, or saving.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Name is the entry currently being processed, if applicable.
	Name string

	// BytesDone is the number of bytes completed in the current stage.
	BytesDone uint64

	// BytesTotal is the total bytes for the current stage.
	// Zero indicates the total is unknown.
	BytesTotal uint64

	// EntriesDone is the number of entries completed.
	EntriesDone int

	// EntriesTotal is the total number of entries.
	EntriesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

const (
	// StageChecksumming indicates entry checksums are being computed.
	StageChecksumming ProgressStage = iota

	// StageAssembling indicates archive sections are being laid out and copied.
	StageAssembling

	// StageSaving indicates the archive is being written to disk.
	StageSaving
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageChecksumming:
		return "checksumming"
	case StageAssembling:
		return "assembling"
	case StageSaving:
		return "saving"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates.
// Implementations must be safe for concurrent calls.
type ProgressFunc func(ProgressEvent)
