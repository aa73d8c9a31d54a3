package blobstore

import (
	"context"
	"errors"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/arenacodec/internal/cache"
)

const (
	// DefaultBlockSize is the cache block size of a CachingStore.
	DefaultBlockSize = 64 * 1024
	// maxParallelFetches bounds concurrent backend reads per ReadAt.
	maxParallelFetches = 16
)

// MemoryAccountant is charged for bytes held by a CachingStore.
// *resource.Controller implements it.
type MemoryAccountant interface {
	TryAcquireMemory(bytes int64) bool
	ReleaseMemory(bytes int64)
}

// CachingOption configures a CachingStore.
type CachingOption func(*cachingOptions)

type cachingOptions struct {
	blockSize int64
	mem       MemoryAccountant
}

// WithBlockSize sets the cache block size. Values <= 0 are ignored.
func WithBlockSize(size int64) CachingOption {
	return func(o *cachingOptions) {
		if size > 0 {
			o.blockSize = size
		}
	}
}

// WithCacheMemory charges cached blocks against mem. Blocks it refuses are
// read through without being cached.
func WithCacheMemory(mem MemoryAccountant) CachingOption {
	return func(o *cachingOptions) {
		o.mem = mem
	}
}

// CachingStore wraps a BlobStore with an in-memory block cache. It is meant
// for remote stores where every ReadAt is a network request.
//
// Blocks are keyed by a per-name generation that Put and Delete advance, so a
// Blob opened before an overwrite never serves or caches blocks for readers
// opened after it.
type CachingStore struct {
	inner     BlobStore
	cache     cache.BlockCache
	blockSize int64

	mu   sync.Mutex
	gens map[string]uint64
}

// NewCachingStore caches up to capacity bytes of blocks read from inner.
func NewCachingStore(inner BlobStore, capacity int64, opts ...CachingOption) *CachingStore {
	o := cachingOptions{blockSize: DefaultBlockSize}
	for _, opt := range opts {
		opt(&o)
	}

	var mem cache.MemoryAccountant
	if o.mem != nil {
		mem = o.mem
	}

	return &CachingStore{
		inner:     inner,
		cache:     cache.NewShardedLRUBlockCache(capacity, mem),
		blockSize: o.blockSize,
		gens:      make(map[string]uint64),
	}
}

func (s *CachingStore) generation(name string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[name]
}

// bump retires the current generation of name and drops its blocks.
func (s *CachingStore) bump(name string) {
	s.mu.Lock()
	s.gens[name]++
	s.mu.Unlock()
	s.cache.Invalidate(name)
}

// CacheStats returns block cache hits and misses.
func (s *CachingStore) CacheStats() (hits, misses int64) {
	return s.cache.Stats()
}

// CacheSize returns the bytes currently cached.
func (s *CachingStore) CacheSize() int64 {
	return s.cache.Size()
}

func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	// Snapshot before opening so a concurrent Put always retires it.
	gen := s.generation(name)
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &cachingBlob{store: s, inner: b, name: name, gen: gen}, nil
}

// Put advances the generation both before and after the write, so blobs
// opened while it runs are retired as well.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.bump(name)
	defer s.bump(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.bump(name)
	defer s.bump(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

type cachingBlob struct {
	store *CachingStore
	inner Blob
	name  string
	gen   uint64
}

func (b *cachingBlob) key(blk int64) cache.Key {
	return cache.Key{Blob: b.name, Gen: b.gen, Block: uint64(blk)} //nolint:gosec // blk >= 0
}

func (b *cachingBlob) Close() error { return b.inner.Close() }

func (b *cachingBlob) Size() int64 { return b.inner.Size() }

func (b *cachingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("blobstore: negative offset")
	}
	if len(p) == 0 {
		return 0, nil
	}
	size := b.Size()
	if off >= size {
		return 0, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	bs := b.store.blockSize
	end := min(off+int64(len(p)), size)
	first := off / bs
	last := (end - 1) / bs

	blocks, err := b.load(ctx, first, last)
	if err != nil {
		return 0, err
	}

	for i, data := range blocks {
		blkStart := (first + int64(i)) * bs
		from := max(blkStart, off)
		to := min(blkStart+int64(len(data)), end)
		copy(p[from-off:to-off], data[from-blkStart:to-blkStart])
	}

	n := int(end - off)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// load returns blocks first through last, fetching contiguous runs of missing
// blocks with one backend read each.
func (b *cachingBlob) load(ctx context.Context, first, last int64) ([][]byte, error) {
	blocks := make([][]byte, last-first+1)

	type run struct{ start, count int64 }
	var missing []run
	for blk := first; blk <= last; blk++ {
		if data, ok := b.store.cache.Get(ctx, b.key(blk)); ok {
			blocks[blk-first] = data
			continue
		}
		if n := len(missing); n > 0 && missing[n-1].start+missing[n-1].count == blk {
			missing[n-1].count++
		} else {
			missing = append(missing, run{start: blk, count: 1})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)

	bs, size := b.store.blockSize, b.Size()
	for _, r := range missing {
		g.Go(func() error {
			start := r.start * bs
			buf := make([]byte, min((r.start+r.count)*bs, size)-start)

			n, err := b.inner.ReadAt(gctx, buf, start)
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			if n < len(buf) {
				return io.ErrUnexpectedEOF
			}

			// A retired generation is still served to this blob but not cached.
			current := b.store.generation(b.name) == b.gen
			for i := range r.count {
				lo := i * bs
				hi := min(lo+bs, int64(len(buf)))
				// Copy so one evicted block does not pin the whole run.
				block := make([]byte, hi-lo)
				copy(block, buf[lo:hi])

				blk := r.start + i
				blocks[blk-first] = block
				if current {
					b.store.cache.Set(gctx, b.key(blk), block)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}
