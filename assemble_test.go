package zipstore

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/zipstore/internal/testutil"
)

// mustEntry builds an entry with a checksum and the fixed test time.
func mustEntry(t *testing.T, name string, data []byte, isText bool) Entry {
	t.Helper()
	e, err := NewEntry(name, data, testutil.FixedTime, isText, Checksum(data))
	require.NoError(t, err)
	return e
}

func TestAssembleTwoEntries(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		mustEntry(t, "a.txt", []byte("hi"), true),
		mustEntry(t, "dir/b.bin", []byte{0, 1, 2, 3}, false),
	}

	archive, err := Assemble(entries)
	require.NoError(t, err)

	wantLen := (30 + 5 + 2) + (30 + 9 + 4) + (46 + 5) + (46 + 9) + 22
	assert.Equal(t, wantLen, archive.Len())
	assert.Equal(t, 2, archive.Count())

	files := testutil.ReadArchive(t, archive.Bytes())
	require.Len(t, files, 2)

	assert.Equal(t, "a.txt", files[0].Name)
	assert.Equal(t, []byte("hi"), files[0].Data)
	assert.Equal(t, Checksum([]byte("hi")), files[0].CRC)
	assert.Equal(t, uint16(0), files[0].Method)
	assert.True(t, testutil.FixedTime.Equal(files[0].Modified))

	assert.Equal(t, "dir/b.bin", files[1].Name)
	assert.Equal(t, []byte{0, 1, 2, 3}, files[1].Data)
	assert.Equal(t, Checksum([]byte{0, 1, 2, 3}), files[1].CRC)
}

func TestAssembleSectionOrder(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		mustEntry(t, "a.txt", []byte("hi"), true),
		mustEntry(t, "dir/b.bin", []byte{0, 1, 2, 3}, false),
	}
	data, err := AssembleBytes(entries)
	require.NoError(t, err)
	le := binary.LittleEndian

	// First local header, name, data.
	assert.Equal(t, uint32(0x04034B50), le.Uint32(data[0:]))
	assert.Equal(t, "a.txt", string(data[30:35]))
	assert.Equal(t, "hi", string(data[35:37]))

	// Second local header follows immediately.
	assert.Equal(t, uint32(0x04034B50), le.Uint32(data[37:]))
	assert.Equal(t, "dir/b.bin", string(data[67:76]))
	assert.Equal(t, []byte{0, 1, 2, 3}, data[76:80])

	// Central directory at offset 80.
	assert.Equal(t, uint32(0x02014B50), le.Uint32(data[80:]))
	assert.Equal(t, uint16(1), le.Uint16(data[80+36:]), "text attribute")
	assert.Equal(t, uint32(0), le.Uint32(data[80+42:]), "first local offset")
	assert.Equal(t, "a.txt", string(data[126:131]))

	assert.Equal(t, uint32(0x02014B50), le.Uint32(data[131:]))
	assert.Equal(t, uint16(0), le.Uint16(data[131+36:]))
	assert.Equal(t, uint32(37), le.Uint32(data[131+42:]), "second local offset")
	assert.Equal(t, "dir/b.bin", string(data[177:186]))

	// End record.
	end := data[186:]
	require.Len(t, end, 22)
	assert.Equal(t, uint32(0x06054B50), le.Uint32(end[0:]))
	assert.Equal(t, uint16(2), le.Uint16(end[8:]))
	assert.Equal(t, uint16(2), le.Uint16(end[10:]))
	assert.Equal(t, uint32(106), le.Uint32(end[12:]))
	assert.Equal(t, uint32(80), le.Uint32(end[16:]))
}

func TestAssembleIdempotent(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		mustEntry(t, "one.txt", []byte("one"), true),
		mustEntry(t, "two/three.bin", testutil.RandomBytes(1000, 3), false),
	}

	first, err := AssembleBytes(entries)
	require.NoError(t, err)
	second, err := AssembleBytes(entries)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAssemblePreservesOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		mustEntry(t, "z.txt", []byte("last alphabetically"), true),
		mustEntry(t, "a.txt", []byte("first"), true),
		mustEntry(t, "a.txt", []byte("second copy"), true),
	}
	archive, err := Assemble(entries)
	require.NoError(t, err)

	files := testutil.ReadArchive(t, archive.Bytes())
	require.Len(t, files, 3)
	assert.Equal(t, "z.txt", files[0].Name)
	assert.Equal(t, "a.txt", files[1].Name)
	assert.Equal(t, []byte("first"), files[1].Data)
	assert.Equal(t, "a.txt", files[2].Name)
	assert.Equal(t, []byte("second copy"), files[2].Data)
}

func TestAssembleEmpty(t *testing.T) {
	t.Parallel()

	archive, err := Assemble(nil)
	require.NoError(t, err)
	assert.Equal(t, 22, archive.Len())
	assert.Empty(t, testutil.ReadArchive(t, archive.Bytes()))
}

func TestAssembleEmptyEntry(t *testing.T) {
	t.Parallel()

	archive, err := Assemble([]Entry{mustEntry(t, "empty.txt", []byte{}, true)})
	require.NoError(t, err)

	files := testutil.ReadArchive(t, archive.Bytes())
	require.Len(t, files, 1)
	assert.Empty(t, files[0].Data)
	assert.Equal(t, uint32(0), files[0].CRC)
}

func TestAssembleLargeEntry(t *testing.T) {
	t.Parallel()

	content := make([]byte, 1<<20)
	for i := range content {
		content[i] = byte(i % 256)
	}
	archive, err := Assemble([]Entry{mustEntry(t, "large.bin", content, false)})
	require.NoError(t, err)

	files := testutil.ReadArchive(t, archive.Bytes())
	require.Len(t, files, 1)
	assert.True(t, bytes.Equal(content, files[0].Data))
}

func TestAssembleResumedChecksum(t *testing.T) {
	t.Parallel()

	head, tail := []byte("chunk one, "), []byte("chunk two")
	crc := UpdateChecksum(Checksum(head), tail)
	data := append(append([]byte{}, head...), tail...)

	e, err := NewEntry("chunks.txt", data, testutil.FixedTime, true, crc)
	require.NoError(t, err)
	archive, err := Assemble([]Entry{e})
	require.NoError(t, err)
	require.NoError(t, Verify(archive.Bytes()))
}

func TestAssembleRejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	good := mustEntry(t, "good.txt", []byte("ok"), true)
	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{"space in name", Entry{Name: "bad name.txt", Modified: testutil.FixedTime}, ErrInvalidName},
		{"leading dot", Entry{Name: ".env", Modified: testutil.FixedTime}, ErrInvalidName},
		{"empty name", Entry{Name: "", Modified: testutil.FixedTime}, ErrInvalidName},
		{"long name", Entry{Name: strings.Repeat("n", 256), Modified: testutil.FixedTime}, ErrInvalidName},
		{"year 1979", Entry{Name: "old.txt", Modified: time.Date(1979, 6, 1, 0, 0, 0, 0, time.UTC)}, ErrOutOfRange},
		{"year 2108", Entry{Name: "new.txt", Modified: time.Date(2108, 6, 1, 0, 0, 0, 0, time.UTC)}, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var events int
			archive, err := Assemble([]Entry{good, tt.entry}, WithProgress(func(ProgressEvent) { events++ }))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, archive)
			assert.Contains(t, err.Error(), "entry 1")
			assert.Zero(t, events, "no output may be produced")
		})
	}
}

func TestAssembleMaxEntries(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		mustEntry(t, "a.txt", nil, false),
		mustEntry(t, "b.txt", nil, false),
		mustEntry(t, "c.txt", nil, false),
	}

	_, err := Assemble(entries, WithMaxEntries(2))
	require.ErrorIs(t, err, ErrTooManyEntries)

	_, err = Assemble(entries, WithMaxEntries(3))
	require.NoError(t, err)
}

func TestAssembleFormatEntryLimit(t *testing.T) {
	t.Parallel()

	_, err := Assemble(make([]Entry, MaxEntries+1))
	require.ErrorIs(t, err, ErrTooManyEntries)
}

func TestAssembleZeroModifiedSharesTimestamp(t *testing.T) {
	t.Parallel()

	before := time.Now().Add(-2 * time.Second)
	entries := []Entry{
		{Name: "a.txt", Data: []byte("a"), CRC: Checksum([]byte("a"))},
		{Name: "b.txt", Data: []byte("b"), CRC: Checksum([]byte("b"))},
	}
	archive, err := Assemble(entries)
	require.NoError(t, err)

	files := testutil.ReadArchive(t, archive.Bytes())
	require.Len(t, files, 2)
	assert.Equal(t, files[0].Modified, files[1].Modified)

	// The reader reports local wall-clock fields as UTC.
	local := before.In(time.Local)
	wall := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), local.Second(), 0, time.UTC)
	assert.False(t, files[0].Modified.Before(wall))
}

func TestAssembleProgress(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		mustEntry(t, "a.txt", []byte("hi"), true),
		mustEntry(t, "dir/b.bin", []byte{0, 1, 2, 3}, false),
	}

	var events []ProgressEvent
	archive, err := Assemble(entries, WithProgress(func(ev ProgressEvent) {
		events = append(events, ev)
	}))
	require.NoError(t, err)

	require.Len(t, events, 2)
	for i, ev := range events {
		assert.Equal(t, StageAssembling, ev.Stage)
		assert.Equal(t, entries[i].Name, ev.Name)
		assert.Equal(t, i+1, ev.EntriesDone)
		assert.Equal(t, 2, ev.EntriesTotal)
		assert.Equal(t, uint64(archive.Len()), ev.BytesTotal)
	}
	assert.Equal(t, uint64(37), events[0].BytesDone)
	assert.Equal(t, uint64(80), events[1].BytesDone)
}

func TestAssembleLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Assemble([]Entry{mustEntry(t, "a.txt", []byte("hi"), true)}, WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "assembling archive")
	assert.Contains(t, out, "entry placed")
	assert.Contains(t, out, "name=a.txt")
	assert.Contains(t, out, "archive assembled")
}

func TestAssembleDoesNotModifyEntries(t *testing.T) {
	t.Parallel()

	data := []byte("immutable")
	entries := []Entry{mustEntry(t, "keep.txt", data, true)}
	snapshot := entries[0]

	_, err := Assemble(entries)
	require.NoError(t, err)
	assert.Equal(t, snapshot, entries[0])
	assert.Equal(t, []byte("immutable"), data)
}
