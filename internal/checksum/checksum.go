// Package checksum implements the CRC-32 checksum used by ZIP archives.
//
// The engine processes each byte as two 4-bit halves against a 16-entry
// table. Results are identical to the IEEE CRC-32 (reflected polynomial
// 0xEDB88320) computed by hash/crc32.
package checksum

import "hash"

// Size is the size of a CRC-32 checksum in bytes.
const Size = 4

// nibbleTable holds the CRC-32 remainders for every 4-bit value.
var nibbleTable = [16]uint32{
	0x00000000, 0x1DB71064, 0x3B6E20C8, 0x26D930AC,
	0x76DC4190, 0x6B6B51F4, 0x4DB26158, 0x5005713C,
	0xEDB88320, 0xF00F9344, 0xD6D6A3E8, 0xCB61B38C,
	0x9B64C2B0, 0x86D3D2D4, 0xA00AE278, 0xBDBDF21C,
}

// Update returns the CRC-32 of p continued from previous.
//
// previous is the checksum of all bytes that logically precede p, or 0 at
// the start of a stream. Update(Update(0, a), b) equals Update(0, a++b).
func Update(previous uint32, p []byte) uint32 {
	crc := ^previous
	for _, b := range p {
		crc = (crc >> 4) ^ nibbleTable[(crc^uint32(b))&0x0f]
		crc = (crc >> 4) ^ nibbleTable[(crc^uint32(b>>4))&0x0f]
	}
	return ^crc
}

// Checksum returns the CRC-32 of p.
func Checksum(p []byte) uint32 {
	return Update(0, p)
}

// digest is a streaming hash.Hash32 over Update.
type digest struct {
	crc uint32
}

// New returns a hash.Hash32 computing the same checksum as Checksum.
func New() hash.Hash32 {
	return &digest{}
}

func (d *digest) Write(p []byte) (int, error) {
	d.crc = Update(d.crc, p)
	return len(p), nil
}

func (d *digest) Sum32() uint32 { return d.crc }

// Sum appends the big-endian checksum to b, matching hash/crc32.
func (d *digest) Sum(b []byte) []byte {
	s := d.crc
	return append(b, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

func (d *digest) Reset()         { d.crc = 0 }
func (d *digest) Size() int      { return Size }
func (d *digest) BlockSize() int { return 1 }
