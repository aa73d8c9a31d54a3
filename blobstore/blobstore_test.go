package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vfs "github.com/hupe1980/arenacodec/internal/fs"
)

func testStores(t *testing.T) map[string]BlobStore {
	return map[string]BlobStore{
		"local":  NewLocalStore(t.TempDir()),
		"memory": NewMemoryStore(),
	}
}

func TestBlobStore_Lifecycle(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			data := []byte("hello world, this is a test blob")

			require.NoError(t, store.Put(ctx, "units/a.arn", data))
			require.NoError(t, store.Put(ctx, "units/b.arn", []byte("b")))
			require.NoError(t, store.Put(ctx, "other.arn", []byte("other")))

			blob, err := store.Open(ctx, "units/a.arn")
			require.NoError(t, err)
			defer blob.Close()
			assert.Equal(t, int64(len(data)), blob.Size())

			buf := make([]byte, 5)
			n, err := blob.ReadAt(ctx, buf, 6)
			require.NoError(t, err)
			assert.Equal(t, 5, n)
			assert.Equal(t, "world", string(buf))

			n, err = blob.ReadAt(ctx, buf, int64(len(data))-2)
			assert.Equal(t, 2, n)
			assert.ErrorIs(t, err, io.EOF)

			all, err := ReadAll(ctx, blob)
			require.NoError(t, err)
			assert.Equal(t, data, all)

			streamed, err := io.ReadAll(NewReader(ctx, blob))
			require.NoError(t, err)
			assert.Equal(t, data, streamed)

			names, err := store.List(ctx, "units/")
			require.NoError(t, err)
			assert.Equal(t, []string{"units/a.arn", "units/b.arn"}, names)

			names, err = store.List(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"other.arn", "units/a.arn", "units/b.arn"}, names)

			require.NoError(t, store.Put(ctx, "units/b.arn", []byte("replaced")))
			b, err := store.Open(ctx, "units/b.arn")
			require.NoError(t, err)
			got, err := ReadAll(ctx, b)
			require.NoError(t, err)
			assert.Equal(t, "replaced", string(got))
			require.NoError(t, b.Close())

			require.NoError(t, store.Delete(ctx, "units/b.arn"))
			require.NoError(t, store.Delete(ctx, "units/b.arn"))
			_, err = store.Open(ctx, "units/b.arn")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBlobStore_Mappable(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Put(ctx, "m", []byte("mapped")))

			blob, err := store.Open(ctx, "m")
			require.NoError(t, err)
			defer blob.Close()

			m, ok := blob.(Mappable)
			require.True(t, ok)
			b, err := m.Bytes()
			require.NoError(t, err)
			assert.Equal(t, "mapped", string(b))
		})
	}
}

func TestMemoryStore_CopiesOnPut(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "x", data))
	data[0] = 'z'

	blob, err := store.Open(ctx, "x")
	require.NoError(t, err)
	got, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestLocalStore_EmptyAndMissingRoot(t *testing.T) {
	ctx := context.Background()

	missing := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))
	names, err := missing.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)

	dir := t.TempDir()
	store := NewLocalStore(dir)
	require.NoError(t, store.Put(ctx, "empty", nil))

	blob, err := store.Open(ctx, "empty")
	require.NoError(t, err)
	defer blob.Close()
	assert.Zero(t, blob.Size())

	got, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = os.Stat(filepath.Join(dir, "empty"))
	require.NoError(t, err)
}

func TestLocalStore_CanceledPut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewLocalStore(t.TempDir())
	require.ErrorIs(t, store.Put(ctx, "x", []byte("x")), context.Canceled)
}

func TestLocalStore_FailedPutKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	ffs := vfs.NewFaultyFS(nil)
	store := newLocalStoreFS(dir, ffs)
	require.NoError(t, store.Put(ctx, "units/a", []byte("v1")))

	ffs.AddRule(".tmp-", vfs.Fault{FailAfterBytes: -1, FailOnSync: true})
	require.ErrorIs(t, store.Put(ctx, "units/a", []byte("v2")), vfs.ErrInjected)

	blob, err := store.Open(ctx, "units/a")
	require.NoError(t, err)
	defer blob.Close()
	got, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"units/a"}, names)
}
