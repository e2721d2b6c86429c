// Package zipstore assembles in-memory files into a single uncompressed ZIP
// archive.
//
// Archives are built in one pass from a complete list of entries and
// returned as a contiguous byte buffer readable by any standard unzip tool.
// Every entry is stored without compression, with a CRC-32 checksum and an
// MS-DOS modification time. Entry order is preserved exactly as supplied.
//
// # Quick Start
//
// Compute a checksum, build entries, and assemble:
//
//	data := []byte("hello")
//	e, err := zipstore.NewEntry("docs/hello.txt", data, time.Now(), true, zipstore.Checksum(data))
//	if err != nil {
//	    return err
//	}
//	archive, err := zipstore.Assemble([]zipstore.Entry{e})
//	if err != nil {
//	    return err
//	}
//	err = archive.Save("out/hello.zip")
//
// For many entries, [ComputeEntries] checksums sources concurrently and
// returns entries in input order.
//
// # Limits
//
// Names are restricted to 1-255 ASCII characters matching
// [A-Za-z0-9][A-Za-z0-9/.-]*. Timestamps must fall in 1980-2107. The
// archive does not use Zip64, so every entry and the archive as a whole
// must stay below 4 GiB and hold at most 65535 entries. Violations are
// reported as errors before any output is produced.
package zipstore
