package cache

import "context"

// Key identifies one fixed-size block of a named blob. Gen tells apart the
// contents a name held before and after an overwrite.
type Key struct {
	Blob  string
	Gen   uint64
	Block uint64
}

// BlockCache is a byte-oriented cache for immutable blocks.
// Returned slices must be treated as read-only.
type BlockCache interface {
	Get(ctx context.Context, key Key) ([]byte, bool)
	// Set caches b. The cache retains b; callers must not modify it afterwards.
	Set(ctx context.Context, key Key, b []byte)
	// Invalidate removes every block of the named blob, of every generation.
	Invalidate(blob string)
	Stats() (hits, misses int64)
	Size() int64
}

// MemoryAccountant is charged for cached bytes.
type MemoryAccountant interface {
	TryAcquireMemory(bytes int64) bool
	ReleaseMemory(bytes int64)
}
