package ast

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/arenacodec/archive"
	"github.com/hupe1980/arenacodec/arena"
)

// ErrUnknownKind is returned when an archived node carries an unknown
// discriminant.
var ErrUnknownKind = errors.New("ast: unknown node kind")

// Archivers for the zero-copy format.
var (
	ProgramArchiver    archive.Archiver[Program, ArchivedProgram]       = programArchiver{}
	StatementArchiver  archive.Archiver[Statement, ArchivedStatement]   = statementArchiver{}
	ExpressionArchiver archive.Archiver[Expression, ArchivedExpression] = expressionArchiver{}

	directivesArchiver = archive.ArrayOf[Directive, ArchivedDirective](directiveArchiver{})
	statementsArchiver = archive.ArrayOf[Statement, ArchivedStatement](statementArchiver{})
	referenceIDCell    = archive.CellContent[ReferenceID, ReferenceID](referenceIDArchiver{})

	expressionStatementBox = archive.SizedBox[ExpressionStatement, ArchivedExpressionStatement](expressionStatementArchiver{})
	blockStatementBox      = archive.SizedBox[BlockStatement, ArchivedBlockStatement](blockStatementArchiver{})
	emptyStatementBox      = archive.SizedBox[EmptyStatement, ArchivedEmptyStatement](emptyStatementArchiver{})

	identifierReferenceBox = archive.SizedBox[IdentifierReference, ArchivedIdentifierReference](identifierReferenceArchiver{})
	numericLiteralBox      = archive.SizedBox[NumericLiteral, ArchivedNumericLiteral](numericLiteralArchiver{})
	stringLiteralBox       = archive.SizedBox[StringLiteral, ArchivedStringLiteral](stringLiteralArchiver{})
	bigintLiteralBox       = archive.SizedBox[BigintLiteral, ArchivedBigintLiteral](bigintLiteralArchiver{})
)

var (
	spanLayout       = archive.Layout{Size: 8, Align: 4}
	sourceTypeLayout = archive.Layout{Size: 3, Align: 1}
	boxLayout        = archive.Layout{Size: 8, Align: 4}

	// Statements and expressions are a u32 kind followed by a box of the variant.
	nodeLayout, nodeOffsets = archive.StructLayout(archive.U32.Layout(), boxLayout)

	programLayout, programOffsets = archive.StructLayout(
		spanLayout,
		sourceTypeLayout,
		directivesArchiver.Layout(),
		archive.String.Layout(),
		statementsArchiver.Layout(),
	)
	directiveLayout, directiveOffsets = archive.StructLayout(
		spanLayout,
		stringLiteralLayout,
		archive.String.Layout(),
	)

	expressionStatementLayout, expressionStatementOffsets = archive.StructLayout(spanLayout, nodeLayout)
	blockStatementLayout, blockStatementOffsets           = archive.StructLayout(spanLayout, statementsArchiver.Layout())

	identifierReferenceLayout, identifierReferenceOffsets = archive.StructLayout(
		spanLayout,
		archive.String.Layout(),
		referenceIDCell.Layout(),
		archive.U8.Layout(),
	)
	numericLiteralLayout, numericLiteralOffsets = archive.StructLayout(
		spanLayout,
		archive.F64.Layout(),
		archive.String.Layout(),
		archive.U8.Layout(),
	)
	stringLiteralLayout, stringLiteralOffsets = archive.StructLayout(spanLayout, archive.String.Layout())
	bigintLiteralLayout, bigintLiteralOffsets = archive.StructLayout(
		spanLayout,
		archive.String.Layout(),
		archive.U8.Layout(),
	)
)

func boxOf[T any](p *T) arena.Box[T] {
	return arena.BoxFromRaw[T](unsafe.Pointer(p))
}

func putSpan(s *archive.Serializer, pos int, span Span) {
	s.PutUint32(pos, span.Start)
	s.PutUint32(pos+4, span.End)
}

func viewSpan(buf []byte, pos int) Span {
	return Span{Start: archive.U32.View(buf, pos), End: archive.U32.View(buf, pos+4)}
}

type referenceIDArchiver struct{}

func (referenceIDArchiver) Layout() archive.Layout { return archive.U32.Layout() }

func (referenceIDArchiver) Serialize(*archive.Serializer, ReferenceID) (archive.Resolver, error) {
	return archive.Resolver{}, nil
}

func (referenceIDArchiver) Resolve(s *archive.Serializer, v ReferenceID, pos int, _ archive.Resolver) error {
	s.PutUint32(pos, uint32(v))
	return nil
}

func (referenceIDArchiver) View(buf []byte, pos int) ReferenceID {
	return ReferenceID(archive.U32.View(buf, pos))
}

func (referenceIDArchiver) Deserialize(_ *arena.Arena, v ReferenceID) (ReferenceID, error) {
	return v, nil
}

// ArchivedProgram is a zero-copy view of an archived Program.
type ArchivedProgram struct {
	buf []byte
	pos int
}

func (v ArchivedProgram) Span() Span { return viewSpan(v.buf, v.pos+programOffsets[0]) }

func (v ArchivedProgram) SourceType() SourceType {
	p := v.pos + programOffsets[1]
	return SourceType{
		Language:   Language(v.buf[p]),
		ModuleKind: ModuleKind(v.buf[p+1]),
		JSX:        v.buf[p+2] != 0,
	}
}

func (v ArchivedProgram) Directives() archive.ArchivedArray[ArchivedDirective] {
	return directivesArchiver.View(v.buf, v.pos+programOffsets[2])
}

// Hashbang returns the hashbang text, or "" when the program has none.
func (v ArchivedProgram) Hashbang() string {
	return archive.String.View(v.buf, v.pos+programOffsets[3])
}

func (v ArchivedProgram) Body() archive.ArchivedArray[ArchivedStatement] {
	return statementsArchiver.View(v.buf, v.pos+programOffsets[4])
}

// ReferenceIDs returns the set of resolved reference ids without
// dematerializing the program.
func (v ArchivedProgram) ReferenceIDs() *roaring.Bitmap {
	ids := roaring.New()
	inspectArchived(v.Body(), func(e ArchivedExpression) {
		if ident, ok := e.IdentifierReference(); ok {
			if id := ident.ReferenceID(); id.IsResolved() {
				ids.Add(uint32(id))
			}
		}
	})
	return ids
}

func inspectArchived(body archive.ArchivedArray[ArchivedStatement], fn func(ArchivedExpression)) {
	for i := range body.Len() {
		stmt := body.At(i)
		if s, ok := stmt.ExpressionStatement(); ok {
			fn(s.Expression())
		} else if s, ok := stmt.BlockStatement(); ok {
			inspectArchived(s.Body(), fn)
		}
	}
}

type programArchiver struct{}

func (programArchiver) Layout() archive.Layout { return programLayout }

func (programArchiver) Serialize(s *archive.Serializer, p Program) (archive.Resolver, error) {
	directives, err := directivesArchiver.Serialize(s, p.Directives)
	if err != nil {
		return archive.Resolver{}, err
	}
	hashbang, err := archive.String.Serialize(s, p.Hashbang)
	if err != nil {
		return archive.Resolver{}, err
	}
	body, err := statementsArchiver.Serialize(s, p.Body)
	if err != nil {
		return archive.Resolver{}, err
	}
	return archive.Resolver{Fields: []archive.Resolver{directives, hashbang, body}}, nil
}

func (programArchiver) Resolve(s *archive.Serializer, p Program, pos int, r archive.Resolver) error {
	putSpan(s, pos+programOffsets[0], p.Span)

	st := pos + programOffsets[1]
	s.PutUint8(st, uint8(p.SourceType.Language))
	s.PutUint8(st+1, uint8(p.SourceType.ModuleKind))
	if p.SourceType.JSX {
		s.PutUint8(st+2, 1)
	}

	if err := directivesArchiver.Resolve(s, p.Directives, pos+programOffsets[2], r.Fields[0]); err != nil {
		return err
	}
	if err := archive.String.Resolve(s, p.Hashbang, pos+programOffsets[3], r.Fields[1]); err != nil {
		return err
	}
	return statementsArchiver.Resolve(s, p.Body, pos+programOffsets[4], r.Fields[2])
}

func (programArchiver) View(buf []byte, pos int) ArchivedProgram {
	return ArchivedProgram{buf: buf, pos: pos}
}

func (programArchiver) Deserialize(a *arena.Arena, v ArchivedProgram) (Program, error) {
	directives, err := directivesArchiver.Deserialize(a, v.Directives())
	if err != nil {
		return Program{}, err
	}
	hashbang, err := archive.String.Deserialize(a, v.Hashbang())
	if err != nil {
		return Program{}, err
	}
	body, err := statementsArchiver.Deserialize(a, v.Body())
	if err != nil {
		return Program{}, err
	}
	return Program{
		Span:       v.Span(),
		SourceType: v.SourceType(),
		Directives: directives,
		Hashbang:   hashbang,
		Body:       body,
	}, nil
}

// ArchivedDirective is a view of an archived Directive.
type ArchivedDirective struct {
	buf []byte
	pos int
}

func (v ArchivedDirective) Span() Span { return viewSpan(v.buf, v.pos+directiveOffsets[0]) }

func (v ArchivedDirective) Expression() ArchivedStringLiteral {
	return ArchivedStringLiteral{buf: v.buf, pos: v.pos + directiveOffsets[1]}
}

func (v ArchivedDirective) Directive() string {
	return archive.String.View(v.buf, v.pos+directiveOffsets[2])
}

type directiveArchiver struct{}

func (directiveArchiver) Layout() archive.Layout { return directiveLayout }

func (directiveArchiver) Serialize(s *archive.Serializer, d Directive) (archive.Resolver, error) {
	lit, err := stringLiteralArchiver{}.Serialize(s, d.Expression)
	if err != nil {
		return archive.Resolver{}, err
	}
	text, err := archive.String.Serialize(s, d.Directive)
	if err != nil {
		return archive.Resolver{}, err
	}
	return archive.Resolver{Fields: []archive.Resolver{lit, text}}, nil
}

func (directiveArchiver) Resolve(s *archive.Serializer, d Directive, pos int, r archive.Resolver) error {
	putSpan(s, pos+directiveOffsets[0], d.Span)
	if err := (stringLiteralArchiver{}).Resolve(s, d.Expression, pos+directiveOffsets[1], r.Fields[0]); err != nil {
		return err
	}
	return archive.String.Resolve(s, d.Directive, pos+directiveOffsets[2], r.Fields[1])
}

func (directiveArchiver) View(buf []byte, pos int) ArchivedDirective {
	return ArchivedDirective{buf: buf, pos: pos}
}

func (directiveArchiver) Deserialize(a *arena.Arena, v ArchivedDirective) (Directive, error) {
	lit, err := stringLiteralArchiver{}.Deserialize(a, v.Expression())
	if err != nil {
		return Directive{}, err
	}
	text, err := archive.String.Deserialize(a, v.Directive())
	if err != nil {
		return Directive{}, err
	}
	return Directive{Span: v.Span(), Expression: lit, Directive: text}, nil
}

// ArchivedStatement is a view of an archived Statement. Use Kind or the
// variant accessors to reach the payload.
type ArchivedStatement struct {
	buf []byte
	pos int
}

func (v ArchivedStatement) Kind() StatementKind {
	return StatementKind(archive.U32.View(v.buf, v.pos+nodeOffsets[0]))
}

func (v ArchivedStatement) ExpressionStatement() (ArchivedExpressionStatement, bool) {
	if v.Kind() != ExpressionStatementKind {
		return ArchivedExpressionStatement{}, false
	}
	return expressionStatementBox.View(v.buf, v.pos+nodeOffsets[1]).Get(), true
}

func (v ArchivedStatement) BlockStatement() (ArchivedBlockStatement, bool) {
	if v.Kind() != BlockStatementKind {
		return ArchivedBlockStatement{}, false
	}
	return blockStatementBox.View(v.buf, v.pos+nodeOffsets[1]).Get(), true
}

func (v ArchivedStatement) EmptyStatement() (ArchivedEmptyStatement, bool) {
	if v.Kind() != EmptyStatementKind {
		return ArchivedEmptyStatement{}, false
	}
	return emptyStatementBox.View(v.buf, v.pos+nodeOffsets[1]).Get(), true
}

type statementArchiver struct{}

func (statementArchiver) Layout() archive.Layout { return nodeLayout }

func (statementArchiver) Serialize(s *archive.Serializer, v Statement) (archive.Resolver, error) {
	switch x := v.(type) {
	case *ExpressionStatement:
		return expressionStatementBox.Serialize(s, boxOf(x))
	case *BlockStatement:
		return blockStatementBox.Serialize(s, boxOf(x))
	case *EmptyStatement:
		return emptyStatementBox.Serialize(s, boxOf(x))
	default:
		return archive.Resolver{}, fmt.Errorf("ast: cannot archive statement %T", v)
	}
}

func (statementArchiver) Resolve(s *archive.Serializer, v Statement, pos int, r archive.Resolver) error {
	kind, ok := statementKind(v)
	if !ok {
		return fmt.Errorf("ast: cannot archive statement %T", v)
	}
	s.PutUint32(pos+nodeOffsets[0], uint32(kind))
	return s.PutRelLen(pos+nodeOffsets[1], r.Pos, 0)
}

func (statementArchiver) View(buf []byte, pos int) ArchivedStatement {
	return ArchivedStatement{buf: buf, pos: pos}
}

func (statementArchiver) Deserialize(a *arena.Arena, v ArchivedStatement) (Statement, error) {
	box := v.pos + nodeOffsets[1]
	switch kind := v.Kind(); kind {
	case ExpressionStatementKind:
		b, err := expressionStatementBox.Deserialize(a, expressionStatementBox.View(v.buf, box))
		if err != nil {
			return nil, err
		}
		return b.Get(), nil
	case BlockStatementKind:
		b, err := blockStatementBox.Deserialize(a, blockStatementBox.View(v.buf, box))
		if err != nil {
			return nil, err
		}
		return b.Get(), nil
	case EmptyStatementKind:
		b, err := emptyStatementBox.Deserialize(a, emptyStatementBox.View(v.buf, box))
		if err != nil {
			return nil, err
		}
		return b.Get(), nil
	default:
		return nil, fmt.Errorf("%w: statement %d", ErrUnknownKind, kind)
	}
}

// ArchivedExpression is a view of an archived Expression.
type ArchivedExpression struct {
	buf []byte
	pos int
}

func (v ArchivedExpression) Kind() ExpressionKind {
	return ExpressionKind(archive.U32.View(v.buf, v.pos+nodeOffsets[0]))
}

func (v ArchivedExpression) IdentifierReference() (ArchivedIdentifierReference, bool) {
	if v.Kind() != IdentifierReferenceKind {
		return ArchivedIdentifierReference{}, false
	}
	return identifierReferenceBox.View(v.buf, v.pos+nodeOffsets[1]).Get(), true
}

func (v ArchivedExpression) NumericLiteral() (ArchivedNumericLiteral, bool) {
	if v.Kind() != NumericLiteralKind {
		return ArchivedNumericLiteral{}, false
	}
	return numericLiteralBox.View(v.buf, v.pos+nodeOffsets[1]).Get(), true
}

func (v ArchivedExpression) StringLiteral() (ArchivedStringLiteral, bool) {
	if v.Kind() != StringLiteralKind {
		return ArchivedStringLiteral{}, false
	}
	return stringLiteralBox.View(v.buf, v.pos+nodeOffsets[1]).Get(), true
}

func (v ArchivedExpression) BigintLiteral() (ArchivedBigintLiteral, bool) {
	if v.Kind() != BigintLiteralKind {
		return ArchivedBigintLiteral{}, false
	}
	return bigintLiteralBox.View(v.buf, v.pos+nodeOffsets[1]).Get(), true
}

type expressionArchiver struct{}

func (expressionArchiver) Layout() archive.Layout { return nodeLayout }

func (expressionArchiver) Serialize(s *archive.Serializer, v Expression) (archive.Resolver, error) {
	switch x := v.(type) {
	case *IdentifierReference:
		return identifierReferenceBox.Serialize(s, boxOf(x))
	case *NumericLiteral:
		return numericLiteralBox.Serialize(s, boxOf(x))
	case *StringLiteral:
		return stringLiteralBox.Serialize(s, boxOf(x))
	case *BigintLiteral:
		return bigintLiteralBox.Serialize(s, boxOf(x))
	default:
		return archive.Resolver{}, fmt.Errorf("ast: cannot archive expression %T", v)
	}
}

func (expressionArchiver) Resolve(s *archive.Serializer, v Expression, pos int, r archive.Resolver) error {
	kind, ok := expressionKind(v)
	if !ok {
		return fmt.Errorf("ast: cannot archive expression %T", v)
	}
	s.PutUint32(pos+nodeOffsets[0], uint32(kind))
	return s.PutRelLen(pos+nodeOffsets[1], r.Pos, 0)
}

func (expressionArchiver) View(buf []byte, pos int) ArchivedExpression {
	return ArchivedExpression{buf: buf, pos: pos}
}

func (expressionArchiver) Deserialize(a *arena.Arena, v ArchivedExpression) (Expression, error) {
	box := v.pos + nodeOffsets[1]
	switch kind := v.Kind(); kind {
	case IdentifierReferenceKind:
		b, err := identifierReferenceBox.Deserialize(a, identifierReferenceBox.View(v.buf, box))
		if err != nil {
			return nil, err
		}
		return b.Get(), nil
	case NumericLiteralKind:
		b, err := numericLiteralBox.Deserialize(a, numericLiteralBox.View(v.buf, box))
		if err != nil {
			return nil, err
		}
		return b.Get(), nil
	case StringLiteralKind:
		b, err := stringLiteralBox.Deserialize(a, stringLiteralBox.View(v.buf, box))
		if err != nil {
			return nil, err
		}
		return b.Get(), nil
	case BigintLiteralKind:
		b, err := bigintLiteralBox.Deserialize(a, bigintLiteralBox.View(v.buf, box))
		if err != nil {
			return nil, err
		}
		return b.Get(), nil
	default:
		return nil, fmt.Errorf("%w: expression %d", ErrUnknownKind, kind)
	}
}

type ArchivedExpressionStatement struct {
	buf []byte
	pos int
}

func (v ArchivedExpressionStatement) Span() Span {
	return viewSpan(v.buf, v.pos+expressionStatementOffsets[0])
}

func (v ArchivedExpressionStatement) Expression() ArchivedExpression {
	return ArchivedExpression{buf: v.buf, pos: v.pos + expressionStatementOffsets[1]}
}

type expressionStatementArchiver struct{}

func (expressionStatementArchiver) Layout() archive.Layout { return expressionStatementLayout }

func (expressionStatementArchiver) Serialize(s *archive.Serializer, v ExpressionStatement) (archive.Resolver, error) {
	expr, err := ExpressionArchiver.Serialize(s, v.Expression)
	if err != nil {
		return archive.Resolver{}, err
	}
	return archive.Resolver{Fields: []archive.Resolver{expr}}, nil
}

func (expressionStatementArchiver) Resolve(s *archive.Serializer, v ExpressionStatement, pos int, r archive.Resolver) error {
	putSpan(s, pos+expressionStatementOffsets[0], v.Span)
	return ExpressionArchiver.Resolve(s, v.Expression, pos+expressionStatementOffsets[1], r.Fields[0])
}

func (expressionStatementArchiver) View(buf []byte, pos int) ArchivedExpressionStatement {
	return ArchivedExpressionStatement{buf: buf, pos: pos}
}

func (expressionStatementArchiver) Deserialize(a *arena.Arena, v ArchivedExpressionStatement) (ExpressionStatement, error) {
	expr, err := ExpressionArchiver.Deserialize(a, v.Expression())
	if err != nil {
		return ExpressionStatement{}, err
	}
	return ExpressionStatement{Span: v.Span(), Expression: expr}, nil
}

type ArchivedBlockStatement struct {
	buf []byte
	pos int
}

func (v ArchivedBlockStatement) Span() Span { return viewSpan(v.buf, v.pos+blockStatementOffsets[0]) }

func (v ArchivedBlockStatement) Body() archive.ArchivedArray[ArchivedStatement] {
	return statementsArchiver.View(v.buf, v.pos+blockStatementOffsets[1])
}

type blockStatementArchiver struct{}

func (blockStatementArchiver) Layout() archive.Layout { return blockStatementLayout }

func (blockStatementArchiver) Serialize(s *archive.Serializer, v BlockStatement) (archive.Resolver, error) {
	body, err := statementsArchiver.Serialize(s, v.Body)
	if err != nil {
		return archive.Resolver{}, err
	}
	return archive.Resolver{Fields: []archive.Resolver{body}}, nil
}

func (blockStatementArchiver) Resolve(s *archive.Serializer, v BlockStatement, pos int, r archive.Resolver) error {
	putSpan(s, pos+blockStatementOffsets[0], v.Span)
	return statementsArchiver.Resolve(s, v.Body, pos+blockStatementOffsets[1], r.Fields[0])
}

func (blockStatementArchiver) View(buf []byte, pos int) ArchivedBlockStatement {
	return ArchivedBlockStatement{buf: buf, pos: pos}
}

func (blockStatementArchiver) Deserialize(a *arena.Arena, v ArchivedBlockStatement) (BlockStatement, error) {
	body, err := statementsArchiver.Deserialize(a, v.Body())
	if err != nil {
		return BlockStatement{}, err
	}
	return BlockStatement{Span: v.Span(), Body: body}, nil
}

type ArchivedEmptyStatement struct {
	buf []byte
	pos int
}

func (v ArchivedEmptyStatement) Span() Span { return viewSpan(v.buf, v.pos) }

type emptyStatementArchiver struct{}

func (emptyStatementArchiver) Layout() archive.Layout { return spanLayout }

func (emptyStatementArchiver) Serialize(*archive.Serializer, EmptyStatement) (archive.Resolver, error) {
	return archive.Resolver{}, nil
}

func (emptyStatementArchiver) Resolve(s *archive.Serializer, v EmptyStatement, pos int, _ archive.Resolver) error {
	putSpan(s, pos, v.Span)
	return nil
}

func (emptyStatementArchiver) View(buf []byte, pos int) ArchivedEmptyStatement {
	return ArchivedEmptyStatement{buf: buf, pos: pos}
}

func (emptyStatementArchiver) Deserialize(_ *arena.Arena, v ArchivedEmptyStatement) (EmptyStatement, error) {
	return EmptyStatement{Span: v.Span()}, nil
}

type ArchivedIdentifierReference struct {
	buf []byte
	pos int
}

func (v ArchivedIdentifierReference) Span() Span {
	return viewSpan(v.buf, v.pos+identifierReferenceOffsets[0])
}

func (v ArchivedIdentifierReference) Name() string {
	return archive.String.View(v.buf, v.pos+identifierReferenceOffsets[1])
}

func (v ArchivedIdentifierReference) ReferenceID() ReferenceID {
	return referenceIDCell.View(v.buf, v.pos+identifierReferenceOffsets[2])
}

func (v ArchivedIdentifierReference) ReferenceFlag() ReferenceFlag {
	return ReferenceFlag(archive.U8.View(v.buf, v.pos+identifierReferenceOffsets[3]))
}

type identifierReferenceArchiver struct{}

func (identifierReferenceArchiver) Layout() archive.Layout { return identifierReferenceLayout }

func (identifierReferenceArchiver) Serialize(s *archive.Serializer, v IdentifierReference) (archive.Resolver, error) {
	name, err := archive.String.Serialize(s, v.Name)
	if err != nil {
		return archive.Resolver{}, err
	}
	return archive.Resolver{Fields: []archive.Resolver{name}}, nil
}

func (identifierReferenceArchiver) Resolve(s *archive.Serializer, v IdentifierReference, pos int, r archive.Resolver) error {
	putSpan(s, pos+identifierReferenceOffsets[0], v.Span)
	if err := archive.String.Resolve(s, v.Name, pos+identifierReferenceOffsets[1], r.Fields[0]); err != nil {
		return err
	}
	if err := referenceIDCell.Resolve(s, v.ReferenceID, pos+identifierReferenceOffsets[2], archive.Resolver{}); err != nil {
		return err
	}
	s.PutUint8(pos+identifierReferenceOffsets[3], uint8(v.ReferenceFlag))
	return nil
}

func (identifierReferenceArchiver) View(buf []byte, pos int) ArchivedIdentifierReference {
	return ArchivedIdentifierReference{buf: buf, pos: pos}
}

func (identifierReferenceArchiver) Deserialize(a *arena.Arena, v ArchivedIdentifierReference) (IdentifierReference, error) {
	name, err := archive.String.Deserialize(a, v.Name())
	if err != nil {
		return IdentifierReference{}, err
	}
	ref, err := referenceIDCell.Deserialize(a, v.ReferenceID())
	if err != nil {
		return IdentifierReference{}, err
	}
	return IdentifierReference{
		Span:          v.Span(),
		Name:          name,
		ReferenceID:   ref,
		ReferenceFlag: v.ReferenceFlag(),
	}, nil
}

type ArchivedNumericLiteral struct {
	buf []byte
	pos int
}

func (v ArchivedNumericLiteral) Span() Span { return viewSpan(v.buf, v.pos+numericLiteralOffsets[0]) }

func (v ArchivedNumericLiteral) Value() float64 {
	return archive.F64.View(v.buf, v.pos+numericLiteralOffsets[1])
}

func (v ArchivedNumericLiteral) Raw() string {
	return archive.String.View(v.buf, v.pos+numericLiteralOffsets[2])
}

func (v ArchivedNumericLiteral) Base() NumberBase {
	return NumberBase(archive.U8.View(v.buf, v.pos+numericLiteralOffsets[3]))
}

type numericLiteralArchiver struct{}

func (numericLiteralArchiver) Layout() archive.Layout { return numericLiteralLayout }

func (numericLiteralArchiver) Serialize(s *archive.Serializer, v NumericLiteral) (archive.Resolver, error) {
	raw, err := archive.String.Serialize(s, v.Raw)
	if err != nil {
		return archive.Resolver{}, err
	}
	return archive.Resolver{Fields: []archive.Resolver{raw}}, nil
}

func (numericLiteralArchiver) Resolve(s *archive.Serializer, v NumericLiteral, pos int, r archive.Resolver) error {
	putSpan(s, pos+numericLiteralOffsets[0], v.Span)
	if err := archive.F64.Resolve(s, v.Value, pos+numericLiteralOffsets[1], archive.Resolver{}); err != nil {
		return err
	}
	if err := archive.String.Resolve(s, v.Raw, pos+numericLiteralOffsets[2], r.Fields[0]); err != nil {
		return err
	}
	s.PutUint8(pos+numericLiteralOffsets[3], uint8(v.Base))
	return nil
}

func (numericLiteralArchiver) View(buf []byte, pos int) ArchivedNumericLiteral {
	return ArchivedNumericLiteral{buf: buf, pos: pos}
}

func (numericLiteralArchiver) Deserialize(a *arena.Arena, v ArchivedNumericLiteral) (NumericLiteral, error) {
	raw, err := archive.String.Deserialize(a, v.Raw())
	if err != nil {
		return NumericLiteral{}, err
	}
	return NumericLiteral{Span: v.Span(), Value: v.Value(), Raw: raw, Base: v.Base()}, nil
}

type ArchivedStringLiteral struct {
	buf []byte
	pos int
}

func (v ArchivedStringLiteral) Span() Span { return viewSpan(v.buf, v.pos+stringLiteralOffsets[0]) }

func (v ArchivedStringLiteral) Value() string {
	return archive.String.View(v.buf, v.pos+stringLiteralOffsets[1])
}

type stringLiteralArchiver struct{}

func (stringLiteralArchiver) Layout() archive.Layout { return stringLiteralLayout }

func (stringLiteralArchiver) Serialize(s *archive.Serializer, v StringLiteral) (archive.Resolver, error) {
	value, err := archive.String.Serialize(s, v.Value)
	if err != nil {
		return archive.Resolver{}, err
	}
	return archive.Resolver{Fields: []archive.Resolver{value}}, nil
}

func (stringLiteralArchiver) Resolve(s *archive.Serializer, v StringLiteral, pos int, r archive.Resolver) error {
	putSpan(s, pos+stringLiteralOffsets[0], v.Span)
	return archive.String.Resolve(s, v.Value, pos+stringLiteralOffsets[1], r.Fields[0])
}

func (stringLiteralArchiver) View(buf []byte, pos int) ArchivedStringLiteral {
	return ArchivedStringLiteral{buf: buf, pos: pos}
}

func (stringLiteralArchiver) Deserialize(a *arena.Arena, v ArchivedStringLiteral) (StringLiteral, error) {
	value, err := archive.String.Deserialize(a, v.Value())
	if err != nil {
		return StringLiteral{}, err
	}
	return StringLiteral{Span: v.Span(), Value: value}, nil
}

type ArchivedBigintLiteral struct {
	buf []byte
	pos int
}

func (v ArchivedBigintLiteral) Span() Span { return viewSpan(v.buf, v.pos+bigintLiteralOffsets[0]) }

func (v ArchivedBigintLiteral) Raw() string {
	return archive.String.View(v.buf, v.pos+bigintLiteralOffsets[1])
}

func (v ArchivedBigintLiteral) Base() BigintBase {
	return BigintBase(archive.U8.View(v.buf, v.pos+bigintLiteralOffsets[2]))
}

type bigintLiteralArchiver struct{}

func (bigintLiteralArchiver) Layout() archive.Layout { return bigintLiteralLayout }

func (bigintLiteralArchiver) Serialize(s *archive.Serializer, v BigintLiteral) (archive.Resolver, error) {
	raw, err := archive.String.Serialize(s, v.Raw)
	if err != nil {
		return archive.Resolver{}, err
	}
	return archive.Resolver{Fields: []archive.Resolver{raw}}, nil
}

func (bigintLiteralArchiver) Resolve(s *archive.Serializer, v BigintLiteral, pos int, r archive.Resolver) error {
	putSpan(s, pos+bigintLiteralOffsets[0], v.Span)
	if err := archive.String.Resolve(s, v.Raw, pos+bigintLiteralOffsets[1], r.Fields[0]); err != nil {
		return err
	}
	s.PutUint8(pos+bigintLiteralOffsets[2], uint8(v.Base))
	return nil
}

func (bigintLiteralArchiver) View(buf []byte, pos int) ArchivedBigintLiteral {
	return ArchivedBigintLiteral{buf: buf, pos: pos}
}

func (bigintLiteralArchiver) Deserialize(a *arena.Arena, v ArchivedBigintLiteral) (BigintLiteral, error) {
	raw, err := archive.String.Deserialize(a, v.Raw())
	if err != nil {
		return BigintLiteral{}, err
	}
	return BigintLiteral{Span: v.Span(), Raw: raw, Base: v.Base()}, nil
}
