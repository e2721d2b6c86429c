package zipstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the archive to path.
//
// Uses atomic writes (temp file + rename) to prevent partial writes on failure.
// Parent directories are created as needed.
func (a *Archive) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}

	a.cfg.reportProgress(ProgressEvent{
		Stage:        StageSaving,
		Name:         path,
		BytesTotal:   uint64(len(a.data)),
		EntriesTotal: a.count,
	})
	if err := writeFileAtomic(path, a.data); err != nil {
		return fmt.Errorf("write archive file: %w", err)
	}
	a.cfg.reportProgress(ProgressEvent{
		Stage:        StageSaving,
		Name:         path,
		BytesDone:    uint64(len(a.data)),
		BytesTotal:   uint64(len(a.data)),
		EntriesDone:  a.count,
		EntriesTotal: a.count,
	})

	a.cfg.log().Info("archive saved", "path", path, "size", len(a.data))
	return nil
}

// writeFileAtomic stages data in a hidden sibling of target, flushes it to
// stable storage and renames it over target. A reader of target sees either
// the previous file or the complete archive. The staging file is removed on
// any failure.
func writeFileAtomic(target string, data []byte) (err error) {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, ".zipstore-*")
	if err != nil {
		return err
	}
	staged := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(staged)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", staged, err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(staged, target); err != nil {
		return err
	}
	syncDir(dir)
	return nil
}

// syncDir flushes the directory entry created by a rename. Some platforms
// cannot open or sync directories, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	d.Close()
}
