package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/arenacodec/archive"
)

func TestArchiveLayouts(t *testing.T) {
	assert.Equal(t, archive.Layout{Size: 12, Align: 4}, nodeLayout)
	assert.Equal(t, archive.Layout{Size: 36, Align: 4}, programLayout)
	assert.Equal(t, []int{0, 8, 12, 20, 28}, programOffsets)
	assert.Equal(t, archive.Layout{Size: 32, Align: 4}, directiveLayout)
	assert.Equal(t, archive.Layout{Size: 20, Align: 4}, expressionStatementLayout)
	assert.Equal(t, archive.Layout{Size: 16, Align: 4}, blockStatementLayout)
	assert.Equal(t, archive.Layout{Size: 24, Align: 4}, identifierReferenceLayout)
	assert.Equal(t, archive.Layout{Size: 32, Align: 8}, numericLiteralLayout)
	assert.Equal(t, archive.Layout{Size: 16, Align: 4}, stringLiteralLayout)
	assert.Equal(t, archive.Layout{Size: 20, Align: 4}, bigintLiteralLayout)
}

func TestArchive_Smoke(t *testing.T) {
	a := newTestArena(t)
	p := Program{
		Span: Span{Start: 0, End: 6},
		Body: statements(t, a, ident(t, a, 0, "hello", 42)),
	}

	buf, err := archive.ToBytes(ProgramArchiver, p)
	require.NoError(t, err)

	view, err := archive.Root(ProgramArchiver, buf)
	require.NoError(t, err)
	require.Equal(t, 1, view.Body().Len())

	stmt, ok := view.Body().At(0).ExpressionStatement()
	require.True(t, ok)
	_, ok = view.Body().At(0).BlockStatement()
	assert.False(t, ok)

	id, ok := stmt.Expression().IdentifierReference()
	require.True(t, ok)
	assert.Equal(t, "hello", id.Name())
	assert.Equal(t, ReferenceID(42), id.ReferenceID())
	assert.Equal(t, ReferenceRead, id.ReferenceFlag())
	assert.Equal(t, Span{Start: 0, End: 5}, id.Span())

	dst := newTestArena(t)
	got, err := archive.Dematerialize(dst, ProgramArchiver, buf)
	require.NoError(t, err)

	live, ok := got.Body.At(0).(*ExpressionStatement)
	require.True(t, ok)
	ref, ok := live.Expression.(*IdentifierReference)
	require.True(t, ok)
	assert.Equal(t, "hello", ref.Name)
	assert.Equal(t, ReferenceID(42), ref.ReferenceID.Get())
}

func TestArchive_RoundTrip(t *testing.T) {
	src := newTestArena(t)
	p := sampleProgram(t, src)

	buf, err := archive.ToBytes(ProgramArchiver, p)
	require.NoError(t, err)

	dst := newTestArena(t)
	got, err := archive.Dematerialize(dst, ProgramArchiver, buf)
	require.NoError(t, err)
	assert.Equal(t, dump(p), dump(got))

	// The copy must not alias the buffer.
	clear(buf)
	assert.Equal(t, dump(p), dump(got))
}

func TestArchive_Views(t *testing.T) {
	src := newTestArena(t)
	p := sampleProgram(t, src)

	buf, err := archive.ToBytes(ProgramArchiver, p)
	require.NoError(t, err)

	view, err := archive.Root(ProgramArchiver, buf)
	require.NoError(t, err)

	assert.Equal(t, p.Span, view.Span())
	assert.Equal(t, p.SourceType, view.SourceType())
	assert.Equal(t, "/usr/bin/env node", view.Hashbang())

	require.Equal(t, 1, view.Directives().Len())
	d := view.Directives().At(0)
	assert.Equal(t, "use strict", d.Directive())
	assert.Equal(t, "use strict", d.Expression().Value())
	assert.Equal(t, Span{Start: 20, End: 32}, d.Expression().Span())

	body := view.Body()
	require.Equal(t, 3, body.Len())

	num, ok := body.At(1).ExpressionStatement()
	require.True(t, ok)
	lit, ok := num.Expression().NumericLiteral()
	require.True(t, ok)
	assert.InDelta(t, 1.5, lit.Value(), 0)
	assert.Equal(t, "1.5", lit.Raw())
	assert.Equal(t, NumberFloat, lit.Base())

	block, ok := body.At(2).BlockStatement()
	require.True(t, ok)
	assert.Equal(t, Span{Start: 48, End: 80}, block.Span())
	require.Equal(t, 4, block.Body().Len())

	kinds := make([]StatementKind, 0, block.Body().Len())
	for _, s := range block.Body().All() {
		kinds = append(kinds, s.Kind())
	}
	assert.Equal(t, []StatementKind{
		ExpressionStatementKind,
		EmptyStatementKind,
		ExpressionStatementKind,
		ExpressionStatementKind,
	}, kinds)

	empty, ok := block.Body().At(1).EmptyStatement()
	require.True(t, ok)
	assert.Equal(t, Span{Start: 58, End: 59}, empty.Span())

	strStmt, _ := block.Body().At(0).ExpressionStatement()
	str, ok := strStmt.Expression().StringLiteral()
	require.True(t, ok)
	assert.Equal(t, "world", str.Value())

	bigStmt, _ := block.Body().At(2).ExpressionStatement()
	big, ok := bigStmt.Expression().BigintLiteral()
	require.True(t, ok)
	assert.Equal(t, "0x1n", big.Raw())
	assert.Equal(t, BigintHex, big.Base())
	identStmt, _ := block.Body().At(3).ExpressionStatement()
	assert.Equal(t, IdentifierReferenceKind, identStmt.Expression().Kind())
	_, ok = identStmt.Expression().NumericLiteral()
	assert.False(t, ok)
}

func TestArchive_UnknownKind(t *testing.T) {
	a := newTestArena(t)
	p := Program{Body: statements(t, a, mustNew(t, a, EmptyStatement{}))}

	buf, err := archive.ToBytes(ProgramArchiver, p)
	require.NoError(t, err)

	view, err := archive.Root(ProgramArchiver, buf)
	require.NoError(t, err)
	stmt := view.Body().At(0)
	buf[stmt.pos] = 9

	_, err = archive.Dematerialize(newTestArena(t), ProgramArchiver, buf)
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestArchive_NilStatement(t *testing.T) {
	a := newTestArena(t)
	p := Program{Body: statements(t, a, nil)}

	_, err := archive.ToBytes(ProgramArchiver, p)
	require.Error(t, err)
}

func TestArchive_ReferenceIDs(t *testing.T) {
	src := newTestArena(t)
	p := sampleProgram(t, src)

	buf, err := archive.ToBytes(ProgramArchiver, p)
	require.NoError(t, err)

	view, err := archive.Root(ProgramArchiver, buf)
	require.NoError(t, err)
	assert.Equal(t, []uint32{42}, view.ReferenceIDs().ToArray())

	fromArchive, err := archive.Dematerialize(newTestArena(t), ProgramArchiver, buf)
	require.NoError(t, err)
	assert.Equal(t, ReferenceIDs(&p).ToArray(), ReferenceIDs(&fromArchive).ToArray())
}
