package incremental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arenacodec/arena"
)

func TestBudget_LengthExceedsInput(t *testing.T) {
	// Declares 1,000,000 elements with no element bytes following.
	data := []byte{252, 0x40, 0x42, 0x0F, 0x00}

	for name, c := range map[string]Codec[arena.Array[uint32]]{"general": ArrayOf(U32)} {
		t.Run(name, func(t *testing.T) {
			a := newTestArena(t)
			_, _, err := Decode(data, a, c)
			require.ErrorIs(t, err, ErrBudgetExceeded)

			var be *BudgetExceededError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, BudgetInput, be.Kind)
			assert.Zero(t, a.Stats().TotalAllocs, "rejected before allocation")
		})
	}

	t.Run("fast path", func(t *testing.T) {
		a := newTestArena(t)
		_, _, err := Decode(data, a, ArrayOf(U8))
		require.ErrorIs(t, err, ErrBudgetExceeded)
		assert.Zero(t, a.Stats().TotalAllocs)
	})

	t.Run("string", func(t *testing.T) {
		a := newTestArena(t)
		_, _, err := Decode(data, a, String)
		require.ErrorIs(t, err, ErrBudgetExceeded)
		assert.Zero(t, a.Stats().TotalAllocs)
	})
}

func TestBudget_Limit(t *testing.T) {
	a := newTestArena(t)
	src := make([]uint32, 100)
	arr, err := arena.ArrayFrom(a, src)
	require.NoError(t, err)

	data, err := EncodeToBytes(ArrayOf(U32), arr)
	require.NoError(t, err)

	dst := newTestArena(t)
	_, _, err = Decode(data, dst, ArrayOf(U32), WithLimit(64))
	var be *BudgetExceededError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, BudgetLimit, be.Kind)
	assert.Equal(t, uint64(400), be.Requested)
	assert.Zero(t, dst.Stats().TotalAllocs)

	_, _, err = Decode(data, dst, ArrayOf(U32), WithLimit(8+400))
	assert.NoError(t, err)
}

func TestBudget_LimitFromReader(t *testing.T) {
	data := []byte{253, 0, 0, 0, 0, 1, 0, 0, 0}
	a := newTestArena(t)

	_, err := DecodeReader(bytesReader(data), a, ArrayOf(U64), WithLimit(1<<20))
	assert.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Zero(t, a.Stats().TotalAllocs)
}

func TestDecodeReader_HugeLengthWithoutLimit(t *testing.T) {
	// 1<<32 elements, and a reader source has no remaining-input check.
	data := []byte{253, 0, 0, 0, 0, 1, 0, 0, 0}

	for _, c := range []Codec[arena.Array[uint8]]{ArrayOf(U8), ArrayOf[uint8](slowU8{})} {
		a := newTestArena(t)
		var err error
		assert.NotPanics(t, func() {
			_, err = DecodeReader(bytesReader(data), a, c)
		})
		require.ErrorIs(t, err, arena.ErrInvalidLayout)
		assert.Zero(t, a.Stats().TotalAllocs)
	}

	_, err := DecodeReader(bytesReader(data), newTestArena(t), ArrayOf(U64))
	require.ErrorIs(t, err, arena.ErrInvalidLayout)
}

func TestLengthOverflow(t *testing.T) {
	data := []byte{253, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

	for _, c := range []Codec[arena.Array[uint8]]{ArrayOf(U8), ArrayOf[uint8](slowU8{})} {
		a := newTestArena(t)
		_, _, err := Decode(data, a, c)
		require.ErrorIs(t, err, ErrLengthOverflow)

		var le *LengthOverflowError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, uint64(1<<64-1), le.Length)
		assert.Zero(t, a.Stats().TotalAllocs)
	}
}

func TestBudget_ClaimAccounting(t *testing.T) {
	a := newTestArena(t)
	words := []string{"a", "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "", "cc"}
	arr, err := arena.ArrayFrom(a, words)
	require.NoError(t, err)

	data, err := EncodeToBytes(ArrayOf(String), arr)
	require.NoError(t, err)

	d := NewDecoder(data, a)
	out, err := ArrayOf(String).Decode(d)
	require.NoError(t, err)
	assert.Equal(t, words, out.Slice())

	// The outer length plus each string's length field and bytes. The per-element
	// unclaim cancels the up-front container claim exactly.
	want := 8
	for _, w := range words {
		want += 8 + len(w)
	}
	assert.Equal(t, want, d.Claimed())
}

func TestBudget_VaryingElementsCannotBypassLimit(t *testing.T) {
	a := newTestArena(t)
	big := string(make([]byte, 60))
	arr, err := arena.ArrayFrom(a, []string{big, big})
	require.NoError(t, err)

	data, err := EncodeToBytes(ArrayOf(String), arr)
	require.NoError(t, err)

	// Claims: 8 (len) + 2*16, then per element -16 +8 +60. The second element
	// pushes the running total to 144.
	_, _, err = Decode(data, newTestArena(t), ArrayOf(String), WithLimit(100))
	assert.ErrorIs(t, err, ErrBudgetExceeded)

	_, _, err = Decode(data, newTestArena(t), ArrayOf(String), WithLimit(144))
	assert.NoError(t, err)
}

func TestBudget_NestedReservations(t *testing.T) {
	// Outer array of 3 byte arrays. The first inner array declares 3 bytes, but
	// only 3 bytes remain and two more inner arrays still need a length byte each.
	data := []byte{3, 3, 1, 2}
	_, _, err := Decode(data, newTestArena(t), ArrayOf(ArrayOf(U8)))
	var be *BudgetExceededError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, BudgetInput, be.Kind)

	valid := []byte{3, 1, 9, 0, 2, 7, 8}
	out, n, err := Decode(valid, newTestArena(t), ArrayOf(ArrayOf(U8)))
	require.NoError(t, err)
	assert.Equal(t, len(valid), n)
	assert.Equal(t, []uint8{9}, out.At(0).Slice())
	assert.Zero(t, out.At(1).Len())
	assert.Equal(t, []uint8{7, 8}, out.At(2).Slice())
}
