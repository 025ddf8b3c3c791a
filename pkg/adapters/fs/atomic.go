package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// TempFilePrefix marks in-flight writes next to the store file.
const TempFilePrefix = ".configstore-tmp-"

// writeFileAtomic replaces filename with data in three durable steps:
// the bytes land in a synced temp file beside the target, the temp file is
// renamed over the target, and the directory entry is synced so the rename
// itself survives a crash. The parent directory must already exist.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpName)
		}
	}()

	if err := writeAndSync(tmp, data, perm); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	renamed = true

	if err := syncDir(dir); err != nil {
		return fmt.Errorf("failed to sync directory %s: %w", dir, err)
	}
	return nil
}

// writeAndSync fills f, fixes its mode and flushes it to disk. f is always closed.
func writeAndSync(f *os.File, data []byte, perm os.FileMode) error {
	_, werr := f.Write(data)
	if werr == nil {
		werr = f.Chmod(perm)
	}
	if werr == nil {
		werr = f.Sync()
	}
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("failed to write temp file: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("failed to close temp file: %w", cerr)
	}
	return nil
}

// syncDir flushes a directory entry. Windows cannot open directories for
// syncing, so it is a no-op there.
func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	serr := d.Sync()
	return errors.Join(serr, d.Close())
}
