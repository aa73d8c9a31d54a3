package mmap

import (
	"errors"
	"io"
	"os"
	"sync/atomic"

	"github.com/hupe1980/arenacodec/internal/conv"
)

// Advice hints how a mapping will be read.
type Advice int

const (
	AdviceNormal Advice = iota
	// AdviceSequential suits units that are checksummed and decoded front to back.
	AdviceSequential
	// AdviceRandom suits archive views that chase relative pointers.
	AdviceRandom
	AdviceWillNeed
)

var (
	// ErrClosed is returned when using a mapping after Close.
	ErrClosed = errors.New("mmap: closed")
	// ErrInvalidSize is returned for a non-positive anonymous size or an unmappable file size.
	ErrInvalidSize = errors.New("mmap: invalid size")
	// ErrInvalidOffset is returned for a negative read offset.
	ErrInvalidOffset = errors.New("mmap: negative offset")
)

// Mapping is a file-backed or anonymous memory mapping.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	unmap  func() error
}

// Open maps the file at path read-only and applies advice. Empty files give an
// empty mapping.
func Open(path string, advice Advice) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size, err := conv.Int64ToInt(fi.Size())
	if err != nil {
		return nil, errors.Join(ErrInvalidSize, err)
	}
	if size == 0 {
		return &Mapping{}, nil
	}

	data, unmap, err := mapFile(f, size)
	if err != nil {
		return nil, err
	}
	m := &Mapping{data: data, unmap: unmap}

	// Advice is only a hint; a refusal leaves a usable mapping.
	_ = advise(data, advice)
	return m, nil
}

// MapAnon returns size bytes of zeroed, private, read-write memory outside the
// Go heap.
func MapAnon(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	data, unmap, err := mapAnon(size)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, unmap: unmap}, nil
}

// Close unmaps the memory. Calling it again is a no-op.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) || m.unmap == nil {
		return nil
	}
	return m.unmap()
}

// Bytes returns the mapped memory, or nil after Close.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the mapping length.
func (m *Mapping) Size() int { return len(m.data) }

// ReadAt copies from the mapping with io.ReaderAt semantics.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
