package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint64ToInt(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		got, err := Uint64ToInt(0)
		require.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("max int", func(t *testing.T) {
		got, err := Uint64ToInt(uint64(math.MaxInt))
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt, got)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := Uint64ToInt(uint64(math.MaxInt) + 1)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestIntToUint64(t *testing.T) {
	got, err := IntToUint64(123)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), got)

	_, err = IntToUint64(-1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestIntToUint32(t *testing.T) {
	tests := []struct {
		name    string
		in      int
		want    uint32
		wantErr bool
	}{
		{name: "zero", in: 0, want: 0},
		{name: "max int32", in: math.MaxInt32, want: math.MaxInt32},
		{name: "max uint32", in: math.MaxUint32, want: math.MaxUint32},
		{name: "negative", in: -1, wantErr: true},
		{name: "too large", in: math.MaxUint32 + 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntToUint32(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntToInt32(t *testing.T) {
	got, err := IntToInt32(-16)
	require.NoError(t, err)
	assert.Equal(t, int32(-16), got)

	_, err = IntToInt32(math.MaxInt32 + 1)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = IntToInt32(math.MinInt32 - 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestMulInt(t *testing.T) {
	got, err := MulInt(1<<20, 8)
	require.NoError(t, err)
	assert.Equal(t, 8<<20, got)

	_, err = MulInt(math.MaxInt, 2)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = MulInt(-1, 2)
	assert.ErrorIs(t, err, ErrOverflow)

	got, err = MulInt(math.MaxInt, 0)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestInt64ToInt(t *testing.T) {
	got, err := Int64ToInt(-42)
	require.NoError(t, err)
	assert.Equal(t, -42, got)

	got, err = Int64ToInt(int64(math.MaxInt))
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)
}
