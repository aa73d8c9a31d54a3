package arena

import (
	"context"
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_New(t *testing.T) {
	t.Run("default chunk size", func(t *testing.T) {
		a := New(0)
		defer a.Free()

		assert.Equal(t, DefaultChunkSize, a.ChunkSize())
		assert.Equal(t, DefaultAlignment, a.alignment)
	})

	t.Run("rounds up to power of two", func(t *testing.T) {
		a := New(1025)
		defer a.Free()

		assert.Equal(t, 2048, a.ChunkSize())
	})

	t.Run("lazy first chunk", func(t *testing.T) {
		a := New(1024)
		defer a.Free()

		assert.Zero(t, a.Stats().ActiveChunks)
	})
}

func TestArena_AllocBytes(t *testing.T) {
	t.Run("zeroed", func(t *testing.T) {
		a := New(1024)
		defer a.Free()

		b, err := a.AllocBytes(100)
		require.NoError(t, err)
		require.Len(t, b, 100)
		for _, v := range b {
			assert.Zero(t, v)
		}
	})

	t.Run("zero size", func(t *testing.T) {
		a := New(1024)
		defer a.Free()

		b, err := a.AllocBytes(0)
		require.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("alignment", func(t *testing.T) {
		a := New(1024)
		defer a.Free()

		for _, size := range []int{1, 3, 5, 7, 9, 15, 17} {
			b, err := a.AllocBytes(size)
			require.NoError(t, err)
			ptr := uintptr(unsafe.Pointer(&b[0]))
			assert.Zero(t, ptr%DefaultAlignment, "size=%d", size)
		}
	})

	t.Run("multiple chunks", func(t *testing.T) {
		a := New(128)
		defer a.Free()

		for range 10 {
			_, err := a.AllocBytes(64)
			require.NoError(t, err)
		}
		assert.Greater(t, a.Stats().ChunksAllocated, uint64(1))
	})
}

func TestArena_AllocLayout(t *testing.T) {
	a := New(256)
	defer a.Free()

	t.Run("zero size is aligned static base", func(t *testing.T) {
		p1, err := a.AllocLayout(0, 8)
		require.NoError(t, err)
		p2, err := a.AllocLayout(0, 1)
		require.NoError(t, err)
		assert.Equal(t, p1, p2)
		assert.Zero(t, uintptr(p1)%8)
		assert.Zero(t, a.Stats().TotalAllocs)
	})

	t.Run("address alignment", func(t *testing.T) {
		_, err := a.AllocLayout(1, 1)
		require.NoError(t, err)
		p, err := a.AllocLayout(16, 16)
		require.NoError(t, err)
		assert.Zero(t, uintptr(p)%16)
	})

	t.Run("oversized allocation gets dedicated chunk", func(t *testing.T) {
		before := a.Stats().ActiveChunks
		p, err := a.AllocLayout(1000, 8)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, before+1, a.Stats().ActiveChunks)

		b := unsafe.Slice((*byte)(p), 1000)
		b[999] = 1
	})

	t.Run("invalid alignment", func(t *testing.T) {
		_, err := a.AllocLayout(8, 3)
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("negative size", func(t *testing.T) {
		_, err := a.AllocLayout(-1, 8)
		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("size above limit", func(t *testing.T) {
		before := a.Stats()
		_, err := a.AllocLayout(MaxAllocSize+1, 8)
		assert.ErrorIs(t, err, ErrInvalidLayout)
		_, err = a.AllocBytes(MaxAllocSize + 1)
		assert.ErrorIs(t, err, ErrInvalidLayout)
		assert.Equal(t, before, a.Stats())
	})
}

func TestArena_AllocString(t *testing.T) {
	a := New(1024)
	defer a.Free()

	src := []byte("hello arena")
	s, err := a.AllocString(string(src))
	require.NoError(t, err)
	assert.Equal(t, "hello arena", s)

	src[0] = 'j'
	assert.Equal(t, "hello arena", s)

	empty, err := a.AllocString("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAlloc(t *testing.T) {
	type point struct {
		X, Y int64
	}

	a := New(1024)
	defer a.Free()

	p, err := Alloc(a, point{X: 1, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, point{X: 1, Y: 2}, *p)
	assert.Zero(t, uintptr(unsafe.Pointer(p))%unsafe.Alignof(point{}))

	z, err := Alloc(a, struct{}{})
	require.NoError(t, err)
	assert.NotNil(t, z)
}

func TestArena_ResetAndFree(t *testing.T) {
	a := New(128)

	for range 8 {
		_, err := a.AllocBytes(100)
		require.NoError(t, err)
	}
	require.Greater(t, a.Stats().ActiveChunks, uint64(1))

	a.Reset()
	stats := a.Stats()
	assert.Equal(t, uint64(1), stats.ActiveChunks)
	assert.Equal(t, uint64(128), stats.BytesReserved)
	assert.Zero(t, stats.BytesUsed)

	b, err := a.AllocBytes(64)
	require.NoError(t, err)
	for _, v := range b {
		assert.Zero(t, v)
	}

	a.Free()
	_, err = a.AllocBytes(8)
	assert.ErrorIs(t, err, ErrArenaFreed)

	// idempotent
	a.Free()
	a.Reset()
}

func TestArena_OffHeap(t *testing.T) {
	a := New(4096, WithOffHeap())
	defer a.Free()

	arr := NewArray[int64](a)
	for i := range 2000 {
		require.NoError(t, arr.Push(int64(i)))
	}
	assert.Equal(t, int64(1999), arr.At(1999))
	assert.NotNil(t, a.chunks[0].mapping)
}

type fakeAcquirer struct {
	held  int64
	limit int64
}

var errNoMemory = errors.New("no memory")

func (f *fakeAcquirer) AcquireMemory(_ context.Context, amount int64) error {
	if f.held+amount > f.limit {
		return errNoMemory
	}
	f.held += amount
	return nil
}

func (f *fakeAcquirer) ReleaseMemory(amount int64) {
	f.held -= amount
}

func TestArena_MemoryAcquirer(t *testing.T) {
	acq := &fakeAcquirer{limit: 1024}
	a := New(512, WithMemoryAcquirer(acq))

	_, err := a.AllocBytes(400)
	require.NoError(t, err)
	_, err = a.AllocBytes(400)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), acq.held)

	_, err = a.AllocBytes(400)
	require.ErrorIs(t, err, errNoMemory)

	a.Reset()
	assert.Equal(t, int64(512), acq.held)

	a.Free()
	assert.Zero(t, acq.held)
}

func TestArena_String(t *testing.T) {
	a := New(1024)
	defer a.Free()

	_, err := a.AllocBytes(100)
	require.NoError(t, err)

	assert.Contains(t, a.String(), "reserved: 1.0 KiB")
	assert.Contains(t, a.String(), "used: 100 B")
}
