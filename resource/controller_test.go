package resource

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arenacodec/arena"
)

var _ arena.MemoryAcquirer = (*Controller)(nil)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	err := c.AcquireMemory(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.MemoryUsage())

	err = c.AcquireMemory(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Over the limit
	ok := c.TryAcquireMemory(20)
	assert.False(t, ok)
	assert.Equal(t, int64(90), c.MemoryUsage())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = c.AcquireMemory(ctx, 20)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	err = c.AcquireMemory(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(60), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 0})

	err := c.AcquireMemory(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_Transfers(t *testing.T) {
	c := NewController(Config{MaxConcurrentTransfers: 2})

	require.NoError(t, c.AcquireTransfer(context.Background()))
	require.NoError(t, c.AcquireTransfer(context.Background()))

	assert.False(t, c.TryAcquireTransfer())

	c.ReleaseTransfer()
	assert.True(t, c.TryAcquireTransfer())

	assert.Equal(t, int64(4), NewController(Config{}).Config().MaxConcurrentTransfers)
}

func TestController_Nil(t *testing.T) {
	var c *Controller
	ctx := context.Background()

	require.NoError(t, c.AcquireMemory(ctx, 1<<40))
	assert.True(t, c.TryAcquireMemory(1))
	c.ReleaseMemory(1)
	assert.Zero(t, c.MemoryUsage())

	require.NoError(t, c.AcquireTransfer(ctx))
	assert.True(t, c.TryAcquireTransfer())
	c.ReleaseTransfer()

	require.NoError(t, c.AcquireIO(ctx, 1<<30))
	assert.Equal(t, Config{}, c.Config())
}

func TestController_AcquireIO(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 100})

	// The bucket starts full.
	require.NoError(t, c.AcquireIO(context.Background(), 100))

	// A request above the burst is split instead of failing outright,
	// so it only errors because the deadline is too close.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Error(t, c.AcquireIO(ctx, 250))
}

func TestController_ArenaAccounting(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 2048})

	a := arena.New(1024, arena.WithMemoryAcquirer(c))

	// 1000 bytes leave too little room for a second request, so each
	// allocation takes a fresh chunk.
	_, err := a.AllocBytes(1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), c.MemoryUsage())

	_, err = a.AllocBytes(1000)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), c.MemoryUsage())
	assert.Equal(t, uint64(2), a.Stats().ActiveChunks)

	// A third chunk does not fit under the limit.
	_, err = a.AllocBytes(1000)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int64(2048), c.MemoryUsage())
	assert.Equal(t, uint64(2), a.Stats().ActiveChunks)

	a.Free()
	assert.Zero(t, c.MemoryUsage())
}

func TestRateLimitedIO(t *testing.T) {
	ctx := context.Background()
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	var buf bytes.Buffer
	w := NewRateLimitedWriter(ctx, &buf, c)
	n, err := w.Write([]byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	r := NewRateLimitedReader(ctx, strings.NewReader(buf.String()), c)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = NewRateLimitedReader(canceled, strings.NewReader("x"), nil).Read(make([]byte, 1))
	require.ErrorIs(t, err, context.Canceled)
}
