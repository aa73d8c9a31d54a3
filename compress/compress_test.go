package compress

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress_RoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("arena-allocated payload "), 512)

	for _, typ := range []Type{None, LZ4, ZSTD, Snappy} {
		t.Run(typ.String(), func(t *testing.T) {
			out, used, err := Compress(typ, data)
			require.NoError(t, err)
			assert.Equal(t, typ, used)
			if typ != None {
				assert.Less(t, len(out), len(data))
			}

			got, err := Decompress(used, out, len(data))
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestCompress_Incompressible(t *testing.T) {
	data := make([]byte, 4096)
	_, err := rand.Read(data)
	require.NoError(t, err)

	for _, typ := range []Type{LZ4, ZSTD, Snappy} {
		out, used, err := Compress(typ, data)
		require.NoError(t, err)
		assert.Equal(t, None, used, typ.String())
		assert.Equal(t, data, out)
	}
}

func TestCompress_Empty(t *testing.T) {
	out, used, err := Compress(ZSTD, nil)
	require.NoError(t, err)
	assert.Equal(t, None, used)
	assert.Empty(t, out)
}

func TestDecompress_Errors(t *testing.T) {
	data := bytes.Repeat([]byte{7}, 1024)

	out, used, err := Compress(Snappy, data)
	require.NoError(t, err)
	_, err = Decompress(used, out, len(data)+1)
	require.ErrorIs(t, err, ErrSizeMismatch)

	_, err = Decompress(None, data, 10)
	require.ErrorIs(t, err, ErrSizeMismatch)

	_, err = Decompress(Type(9), data, len(data))
	require.ErrorIs(t, err, ErrUnknownType)

	_, _, err = Compress(Type(9), data)
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestDecompress_CorruptRawSize(t *testing.T) {
	data := make([]byte, 4096)

	for _, typ := range []Type{None, LZ4, ZSTD, Snappy} {
		t.Run(typ.String(), func(t *testing.T) {
			out, used, err := Compress(typ, data)
			require.NoError(t, err)
			require.Equal(t, typ, used)

			for _, rawSize := range []int{-1, len(data) + 1, 1 << 30} {
				assert.NotPanics(t, func() {
					_, err = Decompress(used, out, rawSize)
				})
				require.ErrorIs(t, err, ErrSizeMismatch, "raw size %d", rawSize)
			}
		})
	}
}

func TestDecompress_SmallZstdFrame(t *testing.T) {
	// Frames this small carry no content size.
	data := make([]byte, 200)

	out, used, err := Compress(ZSTD, data)
	require.NoError(t, err)
	require.Equal(t, ZSTD, used)

	got, err := Decompress(ZSTD, out, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = Decompress(ZSTD, out, 1<<30)
	require.ErrorIs(t, err, ErrSizeMismatch)
}

func TestType(t *testing.T) {
	assert.Equal(t, "lz4", LZ4.String())
	assert.Equal(t, "unknown(9)", Type(9).String())
	assert.True(t, Snappy.Valid())
	assert.False(t, Type(4).Valid())
}
