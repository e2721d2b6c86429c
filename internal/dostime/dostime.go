// Package dostime converts between time.Time and the packed MS-DOS
// date/time format used by ZIP headers.
//
// The packed value carries the date in the high 16 bits and the time in the
// low 16 bits:
//
//	bits 25-31 year - 1980
//	bits 21-24 month (1-12)
//	bits 16-20 day (1-31)
//	bits 11-15 hour
//	bits  5-10 minute
//	bits  0-4  second / 2
package dostime

import (
	"fmt"
	"time"

	"github.com/meigma/zipstore/internal/ziptype"
)

// Representable year range.
const (
	MinYear = 1980
	MaxYear = 2107
)

// Encode packs t into MS-DOS date/time form.
//
// Fields are read in t's own location. Seconds are truncated to an even
// value. Years outside [MinYear, MaxYear] return ErrOutOfRange.
func Encode(t time.Time) (uint32, error) {
	year := t.Year()
	if year < MinYear || year > MaxYear {
		return 0, fmt.Errorf("%w: year %d not in [%d, %d]", ziptype.ErrOutOfRange, year, MinYear, MaxYear)
	}
	//nolint:gosec // every field is range-bounded by time.Time and the year check
	return uint32(year-MinYear)<<25 |
		uint32(t.Month())<<21 |
		uint32(t.Day())<<16 |
		uint32(t.Hour())<<11 |
		uint32(t.Minute())<<5 |
		uint32(t.Second()>>1), nil
}

// Decode unpacks v into a time in loc. A nil loc means UTC.
func Decode(v uint32, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(
		int(v>>25)+MinYear,
		time.Month(v>>21&0x0f),
		int(v>>16&0x1f),
		int(v>>11&0x1f),
		int(v>>5&0x3f),
		int(v&0x1f)*2,
		0,
		loc,
	)
}

// Split returns the date and time halves of v as stored in ZIP headers.
func Split(v uint32) (date, clock uint16) {
	return uint16(v >> 16), uint16(v) //nolint:gosec // intentional truncation
}
