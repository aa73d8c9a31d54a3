package arena

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"time"
	"unsafe"

	"github.com/dustin/go-humanize"

	"github.com/hupe1980/arenacodec/internal/conv"
	"github.com/hupe1980/arenacodec/internal/mmap"
)

// MemoryAcquirer is an interface for acquiring memory.
type MemoryAcquirer interface {
	AcquireMemory(ctx context.Context, amount int64) error
	ReleaseMemory(amount int64)
}

var (
	// ErrMaxChunksExceeded is returned when the arena exceeds the maximum number of chunks.
	ErrMaxChunksExceeded = errors.New("arena: max chunks exceeded")
	// ErrArenaFreed is returned when allocating from an arena after Free.
	ErrArenaFreed = errors.New("arena: freed")
	// ErrInvalidLayout is returned for a negative size or a non power of two alignment.
	ErrInvalidLayout = errors.New("arena: invalid layout")
)

const (
	// DefaultChunkSize is the default size of a chunk (64 KiB).
	DefaultChunkSize = 64 * 1024
	// DefaultAlignment is the default memory alignment (8 bytes).
	DefaultAlignment = 8
	// MaxChunks limits the number of chunks to prevent runaway growth.
	MaxChunks = 65536
	// MaxAllocSize is the largest single allocation (2 GiB - 1).
	MaxAllocSize = math.MaxInt32
)

// acquireTimeout bounds how long a chunk allocation waits on the memory acquirer.
const acquireTimeout = 100 * time.Millisecond

// zeroBase is the address handed out for zero-sized allocations.
var zeroBase uint64

// Stats tracks arena memory usage.
//
//   - BytesReserved: memory currently held in chunks
//   - BytesUsed: bytes requested by allocations (before alignment)
//   - BytesWasted: alignment padding
//   - ActiveChunks: chunks currently held
//   - ChunksAllocated, TotalAllocs: cumulative counters
type Stats struct {
	ChunksAllocated uint64
	BytesReserved   uint64
	BytesUsed       uint64
	BytesWasted     uint64
	ActiveChunks    uint64
	TotalAllocs     uint64
}

type chunk struct {
	data    []byte
	mapping *mmap.Mapping // off-heap backing, nil for heap chunks
	offset  int
}

// Arena is a chunked bump allocator.
type Arena struct {
	chunkSize int
	alignment int
	offHeap   bool
	acquirer  MemoryAcquirer

	chunks  []*chunk
	current *chunk
	freed   bool
	stats   Stats
}

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithMemoryAcquirer sets the memory acquirer consulted before every new chunk.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(a *Arena) {
		a.acquirer = acquirer
	}
}

// WithOffHeap backs chunks with anonymous memory mappings.
func WithOffHeap() Option {
	return func(a *Arena) {
		a.offHeap = true
	}
}

// WithAlignment sets the minimum alignment of byte allocations.
// Values that are not a power of two are ignored.
func WithAlignment(align int) Option {
	return func(a *Arena) {
		if align > 0 && align&(align-1) == 0 {
			a.alignment = align
		}
	}
}

// New creates a new Arena with the given chunk size.
// The chunk size is rounded up to the next power of two.
func New(chunkSize int, opts ...Option) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	a := &Arena{
		chunkSize: 1 << bits.Len(uint(chunkSize-1)), //nolint:gosec // chunkSize > 0
		alignment: DefaultAlignment,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// ChunkSize returns the size of a regular chunk.
func (a *Arena) ChunkSize() int { return a.chunkSize }

func (a *Arena) newChunk(size int) (*chunk, error) {
	if len(a.chunks) >= MaxChunks {
		return nil, ErrMaxChunksExceeded
	}

	if a.acquirer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), acquireTimeout)
		defer cancel()

		if err := a.acquirer.AcquireMemory(ctx, int64(size)); err != nil {
			return nil, fmt.Errorf("arena: acquire chunk memory: %w", err)
		}
	}

	c := &chunk{}
	if a.offHeap {
		m, err := mmap.MapAnon(size)
		if err != nil {
			if a.acquirer != nil {
				a.acquirer.ReleaseMemory(int64(size))
			}
			return nil, fmt.Errorf("arena: map anonymous chunk: %w", err)
		}
		c.data = m.Bytes()
		c.mapping = m
	} else {
		c.data = make([]byte, size)
	}

	a.chunks = append(a.chunks, c)
	a.stats.ChunksAllocated++
	a.stats.ActiveChunks++
	a.stats.BytesReserved += uint64(size) //nolint:gosec // size > 0

	return c, nil
}

// bump carves size bytes aligned to align out of c, or reports false.
func (a *Arena) bump(c *chunk, size, align int) (unsafe.Pointer, bool) {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.data))) //nolint:gosec // address arithmetic only
	addr := base + uintptr(c.offset)                          //nolint:gosec // offset <= len(data)
	pad := int((-addr) & uintptr(align-1))                    //nolint:gosec // pad < align

	if c.offset+pad+size > len(c.data) {
		return nil, false
	}

	p := unsafe.Pointer(&c.data[c.offset+pad]) //nolint:gosec // size > 0, in bounds
	c.offset += pad + size

	a.stats.BytesUsed += uint64(size)  //nolint:gosec // size >= 0
	a.stats.BytesWasted += uint64(pad) //nolint:gosec // pad >= 0
	a.stats.TotalAllocs++

	return p, true
}

// AllocLayout allocates size zeroed bytes aligned to align.
//
// A zero size returns a dangling but well-aligned static address that must not be
// dereferenced. Allocations larger than the chunk size get a dedicated chunk.
// Sizes above MaxAllocSize fail with ErrInvalidLayout.
func (a *Arena) AllocLayout(size, align int) (unsafe.Pointer, error) {
	if a.freed {
		return nil, ErrArenaFreed
	}
	if size < 0 || size > MaxAllocSize || align <= 0 || align > MaxAllocSize || align&(align-1) != 0 {
		return nil, fmt.Errorf("%w: size=%d align=%d", ErrInvalidLayout, size, align)
	}
	if size == 0 {
		return unsafe.Pointer(&zeroBase), nil
	}

	if a.current != nil {
		if p, ok := a.bump(a.current, size, align); ok {
			return p, nil
		}
	}

	need := size + align - 1
	if need < size {
		return nil, fmt.Errorf("%w: size=%d align=%d", ErrInvalidLayout, size, align)
	}

	if need > a.chunkSize {
		c, err := a.newChunk(need)
		if err != nil {
			return nil, err
		}
		p, _ := a.bump(c, size, align)
		return p, nil
	}

	c, err := a.newChunk(a.chunkSize)
	if err != nil {
		return nil, err
	}
	a.current = c

	p, _ := a.bump(c, size, align)
	return p, nil
}

// AllocBytes allocates a zeroed byte slice of the given size.
func (a *Arena) AllocBytes(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	p, err := a.AllocLayout(size, a.alignment)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(p), size), nil
}

// AllocString copies s into the arena and returns a string aliasing the copy.
func (a *Arena) AllocString(s string) (string, error) {
	if len(s) == 0 {
		return "", nil
	}
	p, err := a.AllocLayout(len(s), 1)
	if err != nil {
		return "", err
	}
	buf := unsafe.Slice((*byte)(p), len(s))
	copy(buf, s)
	return unsafe.String(&buf[0], len(buf)), nil
}

// Alloc allocates v in the arena and returns a pointer to the copy.
func Alloc[T any](a *Arena, v T) (*T, error) {
	p, err := allocN[T](a, 1)
	if err != nil {
		return nil, err
	}
	*p = v
	return p, nil
}

// allocN reserves zeroed storage for n values of T.
func allocN[T any](a *Arena, n int) (*T, error) {
	var zero T
	size, err := conv.MulInt(int(unsafe.Sizeof(zero)), n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	p, err := a.AllocLayout(size, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return (*T)(p), nil
}

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Usage returns the memory usage percentage.
func (a *Arena) Usage() float64 {
	if a.stats.BytesReserved == 0 {
		return 0
	}
	return float64(a.stats.BytesUsed) / float64(a.stats.BytesReserved) * 100
}

// Reset drops every allocation and keeps the first regular chunk for reuse.
// All values allocated before Reset become invalid.
func (a *Arena) Reset() {
	if a.freed {
		return
	}

	var keep *chunk
	for _, c := range a.chunks {
		if keep == nil && len(c.data) == a.chunkSize {
			keep = c
			continue
		}
		a.release(c)
	}

	a.chunks = a.chunks[:0]
	a.current = nil
	if keep != nil {
		clear(keep.data[:keep.offset])
		keep.offset = 0
		a.chunks = append(a.chunks, keep)
		a.current = keep
	}

	a.stats.ActiveChunks = uint64(len(a.chunks))
	a.stats.BytesReserved = 0
	if keep != nil {
		a.stats.BytesReserved = uint64(len(keep.data))
	}
	a.stats.BytesUsed = 0
	a.stats.BytesWasted = 0
}

// Free releases all arena memory. The arena cannot be used afterwards.
func (a *Arena) Free() {
	if a.freed {
		return
	}
	for _, c := range a.chunks {
		a.release(c)
	}
	a.chunks = nil
	a.current = nil
	a.freed = true

	a.stats.ActiveChunks = 0
	a.stats.BytesReserved = 0
	a.stats.BytesUsed = 0
	a.stats.BytesWasted = 0
}

func (a *Arena) release(c *chunk) {
	if a.acquirer != nil {
		a.acquirer.ReleaseMemory(int64(len(c.data)))
	}
	if c.mapping != nil {
		_ = c.mapping.Close()
	}
	c.data = nil
}

func (a *Arena) String() string {
	return fmt.Sprintf(
		"Arena{chunks: %d, reserved: %s, used: %s, wasted: %s, usage: %.1f%%, allocs: %d}",
		a.stats.ActiveChunks,
		humanize.IBytes(a.stats.BytesReserved),
		humanize.IBytes(a.stats.BytesUsed),
		humanize.IBytes(a.stats.BytesWasted),
		a.Usage(),
		a.stats.TotalAllocs,
	)
}
