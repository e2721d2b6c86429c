package zipstore

import (
	"fmt"

	"github.com/meigma/zipstore/internal/header"
	"github.com/meigma/zipstore/internal/sizing"
)

// Layout records where each section of an archive is placed.
type Layout struct {
	// Offsets holds the local header offset of each entry, by entry index.
	Offsets []uint32

	// CentralDirOffset is the position of the first central directory
	// header, immediately after the last entry's data.
	CentralDirOffset uint32

	// CentralDirSize is the total size of all central directory headers
	// including file names, excluding the end record.
	CentralDirSize uint32
}

// Size returns the total archive length in bytes.
func (l Layout) Size() int {
	return int(l.CentralDirOffset) + int(l.CentralDirSize) + header.EndSize
}

// Plan computes the layout of an archive holding entries, in order.
//
// Only name and data lengths are consulted. ErrSizeOverflow is returned if
// any offset, or the archive as a whole, does not fit in 32 bits.
func Plan(entries []Entry) (Layout, error) {
	if len(entries) > MaxEntries {
		return Layout{}, fmt.Errorf("%w: %d > %d", ErrTooManyEntries, len(entries), MaxEntries)
	}

	l := Layout{Offsets: make([]uint32, len(entries))}
	var dataOffset, centralSize uint32
	for i := range entries {
		e := &entries[i]
		nameLen, err := sizing.ToUint32(len(e.Name), ErrSizeOverflow)
		if err != nil {
			return Layout{}, err
		}
		dataLen, err := sizing.ToUint32(len(e.Data), ErrSizeOverflow)
		if err != nil {
			return Layout{}, fmt.Errorf("%w: entry %d (%s): %d bytes", err, i, e.Name, len(e.Data))
		}

		l.Offsets[i] = dataOffset
		next, ok := sizing.SumUint32(dataOffset, header.LocalSize, nameLen, dataLen)
		if !ok {
			return Layout{}, fmt.Errorf("%w: entry %d (%s) ends past 4 GiB", ErrSizeOverflow, i, e.Name)
		}
		dataOffset = next

		if centralSize, ok = sizing.SumUint32(centralSize, header.CentralSize, nameLen); !ok {
			return Layout{}, fmt.Errorf("%w: central directory exceeds 4 GiB", ErrSizeOverflow)
		}
	}

	if _, ok := sizing.SumUint32(dataOffset, centralSize, header.EndSize); !ok {
		return Layout{}, fmt.Errorf("%w: archive exceeds 4 GiB", ErrSizeOverflow)
	}
	l.CentralDirOffset = dataOffset
	l.CentralDirSize = centralSize
	return l, nil
}
