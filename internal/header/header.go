// Package header builds the fixed-size records of a stored ZIP archive.
//
// Records exclude the variable-length file name, which callers emit
// immediately after the record. All multi-byte fields are little-endian.
// See PKWARE APPNOTE.TXT sections 4.3.7, 4.3.12 and 4.3.16.
package header

import "encoding/binary"

// Record signatures.
const (
	LocalSignature   = 0x04034B50
	CentralSignature = 0x02014B50
	EndSignature     = 0x06054B50
)

// Record sizes in bytes.
const (
	LocalSize   = 30
	CentralSize = 46
	EndSize     = 22
)

const (
	// VersionNeeded is the minimum extractor version (2.0).
	VersionNeeded = 20

	// VersionMadeBy is APPNOTE 6.3 on MS-DOS (upper byte 0).
	VersionMadeBy = 63

	// MethodStore marks entry data as uncompressed.
	MethodStore = 0

	// AttrText is the internal attribute bit marking textual data.
	AttrText = 1
)

// localOffsetPos is the position of the local header offset field in a
// central header.
const localOffsetPos = 42

var le = binary.LittleEndian

// LocalHeader is the fixed part of a local file header.
type LocalHeader [LocalSize]byte

// CentralHeader is the fixed part of a central directory file header.
type CentralHeader [CentralSize]byte

// EndRecord is the end of central directory record.
type EndRecord [EndSize]byte

// Local returns the local file header for a stored entry.
func Local(nameLen uint16, dosTime, crc, dataLen uint32) LocalHeader {
	var h LocalHeader
	le.PutUint32(h[0:], LocalSignature)
	le.PutUint16(h[4:], VersionNeeded)
	// 6: flags, 8: method (store) stay zero.
	le.PutUint32(h[10:], dosTime)
	le.PutUint32(h[14:], crc)
	le.PutUint32(h[18:], dataLen) // compressed size
	le.PutUint32(h[22:], dataLen) // uncompressed size
	le.PutUint16(h[26:], nameLen)
	// 28: extra field length stays zero.
	return h
}

// Central returns the central directory header for a stored entry with a
// local header offset of zero. Use WithLocalOffset once the entry's
// position is known.
func Central(nameLen uint16, dosTime, crc, dataLen uint32, isText bool) CentralHeader {
	var h CentralHeader
	le.PutUint32(h[0:], CentralSignature)
	h[4] = VersionMadeBy
	le.PutUint16(h[6:], VersionNeeded)
	le.PutUint32(h[12:], dosTime)
	le.PutUint32(h[16:], crc)
	le.PutUint32(h[20:], dataLen)
	le.PutUint32(h[24:], dataLen)
	le.PutUint16(h[28:], nameLen)
	// 30: extra, 32: comment, 34: disk start stay zero.
	if isText {
		le.PutUint16(h[36:], AttrText)
	}
	// 38: external attributes unused.
	return h
}

// WithLocalOffset returns a copy of h pointing at the local header at offset.
func (h CentralHeader) WithLocalOffset(offset uint32) CentralHeader {
	le.PutUint32(h[localOffsetPos:], offset)
	return h
}

// LocalOffset returns the local header offset stored in h.
func (h CentralHeader) LocalOffset() uint32 {
	return le.Uint32(h[localOffsetPos:])
}

// End returns the end of central directory record for a single-disk archive.
func End(count uint16, size, offset uint32) EndRecord {
	var r EndRecord
	le.PutUint32(r[0:], EndSignature)
	// 4: this disk, 6: disk with central directory stay zero.
	le.PutUint16(r[8:], count)
	le.PutUint16(r[10:], count)
	le.PutUint32(r[12:], size)
	le.PutUint32(r[16:], offset)
	// 20: comment length stays zero.
	return r
}
