package s3

import (
	"context"
	"crypto/rand"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arenacodec/blobstore"
	"github.com/hupe1980/arenacodec/compress"
	"github.com/hupe1980/arenacodec/persistence"
)

func TestStore_Integration(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("S3_BUCKET not set")
	}

	ctx := context.Background()
	store, err := New(ctx, bucket, WithPrefix("arenacodec-it-"+strconv.FormatInt(time.Now().UnixNano(), 36)))
	require.NoError(t, err)

	raw := make([]byte, 6<<20) // spans two upload parts
	_, _ = rand.Read(raw)
	unit, header, err := persistence.EncodeUnit(persistence.FormatArchive, compress.None, raw)
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "ast/big.arn", unit))
	t.Cleanup(func() { _ = store.Delete(context.Background(), "ast/big.arn") })

	names, err := store.List(ctx, "ast/")
	require.NoError(t, err)
	assert.Equal(t, []string{"ast/big.arn"}, names)

	blob, err := store.Open(ctx, "ast/big.arn")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(len(unit)), blob.Size())

	got, err := persistence.ReadHeader(blobstore.NewReader(ctx, blob), persistence.FormatArchive)
	require.NoError(t, err)
	assert.Equal(t, header, got)

	data, err := blobstore.ReadAll(ctx, blob)
	require.NoError(t, err)
	_, payload, err := persistence.ParseUnit(data, persistence.FormatArchive)
	require.NoError(t, err)
	assert.Equal(t, raw, payload)

	_, err = store.Open(ctx, "ast/missing.arn")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
