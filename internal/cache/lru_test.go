package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type budget struct {
	limit, used int64
}

func (b *budget) TryAcquireMemory(n int64) bool {
	if b.used+n > b.limit {
		return false
	}
	b.used += n
	return true
}

func (b *budget) ReleaseMemory(n int64) { b.used -= n }

func TestLRUBlockCache(t *testing.T) {
	ctx := context.Background()
	c := NewLRUBlockCache(8, nil)

	c.Set(ctx, Key{Blob: "a", Block: 0}, []byte("1234"))
	c.Set(ctx, Key{Blob: "a", Block: 1}, []byte("5678"))
	assert.Equal(t, int64(8), c.Size())

	// Touch block 0 so block 1 is evicted next.
	got, ok := c.Get(ctx, Key{Blob: "a", Block: 0})
	require.True(t, ok)
	assert.Equal(t, "1234", string(got))

	c.Set(ctx, Key{Blob: "b", Block: 0}, []byte("xy"))
	_, ok = c.Get(ctx, Key{Blob: "a", Block: 1})
	assert.False(t, ok)
	assert.Equal(t, int64(6), c.Size())

	// Too large for the cache.
	c.Set(ctx, Key{Blob: "c", Block: 0}, make([]byte, 9))
	_, ok = c.Get(ctx, Key{Blob: "c", Block: 0})
	assert.False(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}

func TestLRUBlockCache_Replace(t *testing.T) {
	ctx := context.Background()
	c := NewLRUBlockCache(16, nil)

	c.Set(ctx, Key{Blob: "a"}, []byte("old value"))
	c.Set(ctx, Key{Blob: "a"}, []byte("new"))
	got, ok := c.Get(ctx, Key{Blob: "a"})
	require.True(t, ok)
	assert.Equal(t, "new", string(got))
	assert.Equal(t, int64(3), c.Size())
}

func TestLRUBlockCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	mem := &budget{limit: 100}
	c := NewLRUBlockCache(100, mem)

	c.Set(ctx, Key{Blob: "a", Block: 0}, []byte("aa"))
	c.Set(ctx, Key{Blob: "a", Block: 1}, []byte("aa"))
	c.Set(ctx, Key{Blob: "b", Block: 0}, []byte("bbb"))
	assert.Equal(t, int64(7), mem.used)

	c.Invalidate("a")
	assert.Equal(t, int64(3), c.Size())
	assert.Equal(t, int64(3), mem.used)
	_, ok := c.Get(ctx, Key{Blob: "b", Block: 0})
	assert.True(t, ok)
}

func TestLRUBlockCache_MemoryRefused(t *testing.T) {
	ctx := context.Background()
	mem := &budget{limit: 4}
	c := NewLRUBlockCache(100, mem)

	c.Set(ctx, Key{Blob: "a"}, []byte("1234"))
	c.Set(ctx, Key{Blob: "b"}, []byte("5"))

	_, ok := c.Get(ctx, Key{Blob: "b"})
	assert.False(t, ok)
	assert.Equal(t, int64(4), c.Size())
	assert.Equal(t, int64(4), mem.used)
}

func TestShardedLRUBlockCache(t *testing.T) {
	ctx := context.Background()
	c := NewShardedLRUBlockCache(64*1024, nil)

	for i := range uint64(100) {
		c.Set(ctx, Key{Blob: "unit", Block: i}, []byte{byte(i)})
	}
	c.Set(ctx, Key{Blob: "other"}, []byte{1, 2})
	assert.Equal(t, int64(102), c.Size())

	got, ok := c.Get(ctx, Key{Blob: "unit", Block: 42})
	require.True(t, ok)
	assert.Equal(t, []byte{42}, got)

	c.Invalidate("unit")
	assert.Equal(t, int64(2), c.Size())

	_, ok = c.Get(ctx, Key{Blob: "unit", Block: 42})
	assert.False(t, ok)
	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}
