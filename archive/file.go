package archive

import (
	"fmt"

	"github.com/hupe1980/arenacodec/internal/mmap"
)

// File is a read-only memory-mapped archive.
type File struct {
	m *mmap.Mapping
}

// OpenFile maps the archive at path. Views taken from Bytes are valid until Close.
func OpenFile(path string) (*File, error) {
	m, err := mmap.Open(path, mmap.AdviceRandom)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}
	return &File{m: m}, nil
}

// Bytes returns the mapped archive.
func (f *File) Bytes() []byte { return f.m.Bytes() }

// Size returns the archive length.
func (f *File) Size() int { return f.m.Size() }

// Close unmaps the archive.
func (f *File) Close() error { return f.m.Close() }
