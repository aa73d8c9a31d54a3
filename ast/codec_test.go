package ast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arenacodec/incremental"
)

func TestProgramCodec_RoundTrip(t *testing.T) {
	src := newTestArena(t)
	p := sampleProgram(t, src)

	data, err := incremental.EncodeToBytes(ProgramCodec, p)
	require.NoError(t, err)

	dst := newTestArena(t)
	got, n, err := incremental.Decode(data, dst, ProgramCodec)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, dump(p), dump(got))
	assert.Positive(t, dst.Stats().TotalAllocs)
}

func TestProgramCodec_FixedIntEncoding(t *testing.T) {
	src := newTestArena(t)
	p := sampleProgram(t, src)

	varint, err := incremental.EncodeToBytes(ProgramCodec, p)
	require.NoError(t, err)
	fixed, err := incremental.EncodeToBytes(ProgramCodec, p, incremental.WithFixedIntEncoding())
	require.NoError(t, err)
	assert.Greater(t, len(fixed), len(varint))

	got, _, err := incremental.Decode(fixed, newTestArena(t), ProgramCodec, incremental.WithFixedIntEncoding())
	require.NoError(t, err)
	assert.Equal(t, dump(p), dump(got))
}

func TestProgramCodec_Borrowed(t *testing.T) {
	src := newTestArena(t)
	p := sampleProgram(t, src)

	data, err := incremental.EncodeToBytes(ProgramCodec, p)
	require.NoError(t, err)

	got, _, err := incremental.DecodeBorrowed(data, newTestArena(t), ProgramCodec)
	require.NoError(t, err)
	assert.Equal(t, dump(p), dump(got))
}

func TestProgramCodec_Reader(t *testing.T) {
	src := newTestArena(t)
	p := sampleProgram(t, src)

	var buf bytes.Buffer
	require.NoError(t, incremental.Encode(&buf, ProgramCodec, p))

	got, err := incremental.DecodeReader(&buf, newTestArena(t), ProgramCodec)
	require.NoError(t, err)
	assert.Equal(t, dump(p), dump(got))
}

func TestProgramCodec_NoHashbang(t *testing.T) {
	src := newTestArena(t)
	p := sampleProgram(t, src)
	p.Hashbang = ""

	data, err := incremental.EncodeToBytes(ProgramCodec, p)
	require.NoError(t, err)

	got, _, err := incremental.Decode(data, newTestArena(t), ProgramCodec)
	require.NoError(t, err)
	assert.Empty(t, got.Hashbang)
}

func TestStatementCodec_UnknownTag(t *testing.T) {
	// tag 7, span (0, 0)
	_, _, err := incremental.Decode([]byte{7, 0, 0}, newTestArena(t), StatementCodec)
	var fe *incremental.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Msg, "unknown statement tag 7")

	_, _, err = incremental.Decode([]byte{9}, newTestArena(t), ExpressionCodec)
	require.ErrorIs(t, err, incremental.ErrFormat)
}

func TestStatementCodec_NilStatement(t *testing.T) {
	_, err := incremental.EncodeToBytes(StatementCodec, nil)
	require.Error(t, err)
}

func TestProgramCodec_Truncated(t *testing.T) {
	src := newTestArena(t)
	p := sampleProgram(t, src)

	data, err := incremental.EncodeToBytes(ProgramCodec, p)
	require.NoError(t, err)

	for _, n := range []int{0, 1, len(data) / 2, len(data) - 1} {
		_, _, err := incremental.Decode(data[:n], newTestArena(t), ProgramCodec)
		require.Error(t, err, "prefix of %d bytes", n)
	}
}

func TestProgramCodec_Limit(t *testing.T) {
	src := newTestArena(t)
	p := sampleProgram(t, src)

	data, err := incremental.EncodeToBytes(ProgramCodec, p)
	require.NoError(t, err)

	_, _, err = incremental.Decode(data, newTestArena(t), ProgramCodec, incremental.WithLimit(16))
	var be *incremental.BudgetExceededError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, incremental.BudgetLimit, be.Kind)
}

func TestProgramCodec_HostileBodyLength(t *testing.T) {
	a := newTestArena(t)
	p := Program{Body: statements(t, a)}

	data, err := incremental.EncodeToBytes(ProgramCodec, p)
	require.NoError(t, err)

	// The body length is the final byte. Claim a million statements instead.
	data = append(data[:len(data)-1], 253, 0x40, 0x42, 0x0f, 0, 0, 0, 0, 0)

	dst := newTestArena(t)
	_, _, err = incremental.Decode(data, dst, ProgramCodec)
	var be *incremental.BudgetExceededError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, incremental.BudgetInput, be.Kind)
	assert.Zero(t, dst.Stats().TotalAllocs)
}
