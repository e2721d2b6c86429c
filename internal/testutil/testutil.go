// Package testutil provides fixtures shared by zipstore tests.
package testutil

import (
	"bytes"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// FixedTime is a deterministic modification time for test entries.
var FixedTime = time.Date(2001, 7, 15, 10, 30, 44, 0, time.UTC)

// TestFile is one file read back from an archive.
type TestFile struct {
	Name     string
	Data     []byte
	CRC      uint32
	Modified time.Time
	Method   uint16
}

// ReadArchive parses data with a standard ZIP reader and returns every
// file in directory order. Reading each file to EOF checks its CRC-32.
func ReadArchive(tb testing.TB, data []byte) []TestFile {
	tb.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(tb, err)

	files := make([]TestFile, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(tb, err)
		content, err := io.ReadAll(rc)
		require.NoError(tb, err, "read %s", f.Name)
		require.NoError(tb, rc.Close())

		files = append(files, TestFile{
			Name:     f.Name,
			Data:     content,
			CRC:      f.CRC32,
			Modified: f.Modified,
			Method:   f.Method,
		})
	}
	return files
}

// RandomBytes returns n deterministic pseudo-random bytes for seed.
func RandomBytes(n int, seed int64) []byte {
	buf := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(buf) //nolint:gosec // deterministic test data
	return buf
}
