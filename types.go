package zipstore

import "github.com/meigma/zipstore/internal/ziptype"

// Re-export types from internal/ziptype for public API.
type (
	// ProgressEvent represents a progress update during operations.
	ProgressEvent = ziptype.ProgressEvent

	// ProgressStage identifies the current phase of an operation.
	ProgressStage = ziptype.ProgressStage

	// ProgressFunc receives progress updates during operations.
	ProgressFunc = ziptype.ProgressFunc
)

// Re-export progress stage constants.
const (
	StageChecksumming = ziptype.StageChecksumming
	StageAssembling   = ziptype.StageAssembling
	StageSaving       = ziptype.StageSaving
)

// MediaType is the media type of assembled archives.
const MediaType = "application/zip"

// Format limits.
const (
	// MaxNameLen is the longest accepted entry name in bytes.
	MaxNameLen = 255

	// MaxEntries is the largest entry count an archive can record.
	MaxEntries = 0xFFFF
)
