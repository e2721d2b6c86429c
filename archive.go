package zipstore

import (
	"bytes"
	_ "crypto/sha256" // register digest.SHA256
	_ "crypto/sha512" // register digest.SHA384 and digest.SHA512
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"
)

// Archive is an assembled ZIP archive.
//
// The underlying buffer is never modified after Assemble returns.
type Archive struct {
	data   []byte
	layout Layout
	count  int
	cfg    config
}

// Bytes returns the archive contents. Callers must not modify the slice.
func (a *Archive) Bytes() []byte {
	return a.data
}

// Len returns the archive size in bytes.
func (a *Archive) Len() int {
	return len(a.data)
}

// Count returns the number of entries in the archive.
func (a *Archive) Count() int {
	return a.count
}

// Layout returns the placement of the archive's sections.
func (a *Archive) Layout() Layout {
	l := a.layout
	l.Offsets = append([]uint32(nil), a.layout.Offsets...)
	return l
}

// Digest returns the content digest of the archive bytes using the
// algorithm set with WithDigestAlgorithm.
func (a *Archive) Digest() (digest.Digest, error) {
	alg := a.cfg.digestAlgorithm
	if !alg.Available() {
		return "", fmt.Errorf("digest algorithm %q unavailable", alg)
	}
	return alg.FromBytes(a.data), nil
}

// Reader returns a reader over the archive bytes.
func (a *Archive) Reader() *bytes.Reader {
	return bytes.NewReader(a.data)
}

// WriteTo writes the archive to w.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.data)
	if err == nil && n < len(a.data) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}
