package zipstore

import (
	"fmt"
	"time"

	"github.com/meigma/zipstore/internal/header"
)

// Assemble builds a stored ZIP archive from entries.
//
// Entries are written in the order given; names are neither sorted nor
// deduplicated. Every entry is validated and the layout computed before
// any byte is produced, so a failed call returns no partial output.
//
// Entries with a zero Modified time share a single timestamp taken when
// Assemble starts.
func Assemble(entries []Entry, opts ...Option) (*Archive, error) {
	cfg := newConfig(opts)
	log := cfg.log()

	if len(entries) > cfg.maxEntries {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyEntries, len(entries), cfg.maxEntries)
	}

	now := time.Now()
	fields := make([]entryFields, len(entries))
	for i := range entries {
		f, err := entries[i].fields(now)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		fields[i] = f
	}

	layout, err := Plan(entries)
	if err != nil {
		return nil, err
	}
	size := layout.Size()
	log.Info("assembling archive", "entries", len(entries), "size", size)

	buf := make([]byte, 0, size)
	for i := range entries {
		e, f := &entries[i], fields[i]
		local := header.Local(f.nameLen, f.dosTime, e.CRC, f.dataLen)
		buf = append(buf, local[:]...)
		buf = append(buf, e.Name...)
		buf = append(buf, e.Data...)

		log.Debug("entry placed", "name", e.Name, "offset", layout.Offsets[i], "size", f.dataLen)
		cfg.reportProgress(ProgressEvent{
			Stage:        StageAssembling,
			Name:         e.Name,
			BytesDone:    uint64(len(buf)),
			BytesTotal:   uint64(size),
			EntriesDone:  i + 1,
			EntriesTotal: len(entries),
		})
	}

	for i := range entries {
		e, f := &entries[i], fields[i]
		central := header.Central(f.nameLen, f.dosTime, e.CRC, f.dataLen, e.IsText).
			WithLocalOffset(layout.Offsets[i])
		buf = append(buf, central[:]...)
		buf = append(buf, e.Name...)
	}

	//nolint:gosec // count bounded by maxEntries
	end := header.End(uint16(len(entries)), layout.CentralDirSize, layout.CentralDirOffset)
	buf = append(buf, end[:]...)

	log.Info("archive assembled", "entries", len(entries), "size", len(buf),
		"central_dir_offset", layout.CentralDirOffset, "central_dir_size", layout.CentralDirSize)

	return &Archive{
		data:   buf,
		layout: layout,
		count:  len(entries),
		cfg:    cfg,
	}, nil
}

// AssembleBytes is like Assemble but returns only the archive bytes.
func AssembleBytes(entries []Entry, opts ...Option) ([]byte, error) {
	a, err := Assemble(entries, opts...)
	if err != nil {
		return nil, err
	}
	return a.Bytes(), nil
}
