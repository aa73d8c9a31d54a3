package persistence

import (
	"bufio"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hupe1980/arenacodec/internal/fs"
)

// writeBufferSize batches small writes into few syscalls.
const writeBufferSize = 256 * 1024

// SaveToFile atomically replaces filename with what write produces.
func SaveToFile(filename string, write func(io.Writer) error) error {
	return SaveToFileFS(fs.Default, filename, write)
}

// SaveToFileFS is SaveToFile on the given file system.
//
// Data goes to a temporary file in the same directory, which is synced and
// then renamed over filename. The directory is synced afterwards so the rename
// survives a crash on POSIX systems. On failure the temporary file is removed
// and filename keeps its previous content.
func SaveToFileFS(fsys fs.FileSystem, filename string, write func(io.Writer) error) (err error) {
	tmp, err := createTemp(fsys, filename)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err != nil {
			if !closed {
				_ = tmp.Close()
			}
			_ = fsys.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(0o644); err != nil {
		return err
	}

	bw := bufio.NewWriterSize(tmp, writeBufferSize)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := fsys.Rename(tmpName, filename); err != nil {
		return err
	}

	_ = fsys.SyncDir(filepath.Dir(filename))
	return nil
}

func createTemp(fsys fs.FileSystem, filename string) (fs.File, error) {
	for range 10 {
		name := filename + ".tmp-" + strconv.FormatUint(rand.Uint64(), 36) //nolint:gosec // name uniqueness only
		f, err := fsys.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, &os.PathError{Op: "createtemp", Path: filename + ".tmp-*", Err: os.ErrExist}
}
