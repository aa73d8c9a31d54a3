package ast

import "github.com/hupe1980/arenacodec/arena"

// Node is implemented by every AST node.
type Node interface {
	GetSpan() Span
}

// Statement is one of *ExpressionStatement, *BlockStatement or *EmptyStatement.
type Statement interface {
	Node
	stmtNode()
}

// Expression is one of *IdentifierReference, *NumericLiteral, *StringLiteral or
// *BigintLiteral.
type Expression interface {
	Node
	exprNode()
}

// Program is the root of a parsed source file.
type Program struct {
	Span       Span
	SourceType SourceType
	Directives arena.Array[Directive]
	// Hashbang is the text after "#!", or empty when absent.
	Hashbang string
	Body     arena.Array[Statement]
}

// Directive is a prologue directive such as "use strict".
type Directive struct {
	Span       Span
	Expression StringLiteral
	Directive  string
}

type ExpressionStatement struct {
	Span       Span
	Expression Expression
}

type BlockStatement struct {
	Span Span
	Body arena.Array[Statement]
}

type EmptyStatement struct {
	Span Span
}

// IdentifierReference is an identifier used as a value. ReferenceID is filled in
// after parsing by ResolveReferences.
type IdentifierReference struct {
	Span          Span
	Name          string
	ReferenceID   arena.Cell[ReferenceID]
	ReferenceFlag ReferenceFlag
}

type NumericLiteral struct {
	Span  Span
	Value float64
	Raw   string
	Base  NumberBase
}

type StringLiteral struct {
	Span  Span
	Value string
}

type BigintLiteral struct {
	Span Span
	Raw  string
	Base BigintBase
}

func (s *ExpressionStatement) GetSpan() Span { return s.Span }
func (s *BlockStatement) GetSpan() Span      { return s.Span }
func (s *EmptyStatement) GetSpan() Span      { return s.Span }
func (e *IdentifierReference) GetSpan() Span { return e.Span }
func (e *NumericLiteral) GetSpan() Span      { return e.Span }
func (e *StringLiteral) GetSpan() Span       { return e.Span }
func (e *BigintLiteral) GetSpan() Span       { return e.Span }

func (*ExpressionStatement) stmtNode() {}
func (*BlockStatement) stmtNode()      {}
func (*EmptyStatement) stmtNode()      {}

func (*IdentifierReference) exprNode() {}
func (*NumericLiteral) exprNode()      {}
func (*StringLiteral) exprNode()       {}
func (*BigintLiteral) exprNode()       {}

// StatementKind identifies a Statement variant. It is the wire discriminant in
// both codecs.
type StatementKind uint32

const (
	ExpressionStatementKind StatementKind = iota
	BlockStatementKind
	EmptyStatementKind
)

// ExpressionKind identifies an Expression variant.
type ExpressionKind uint32

const (
	IdentifierReferenceKind ExpressionKind = iota
	NumericLiteralKind
	StringLiteralKind
	BigintLiteralKind
)

func statementKind(s Statement) (StatementKind, bool) {
	switch s.(type) {
	case *ExpressionStatement:
		return ExpressionStatementKind, true
	case *BlockStatement:
		return BlockStatementKind, true
	case *EmptyStatement:
		return EmptyStatementKind, true
	default:
		return 0, false
	}
}

func expressionKind(e Expression) (ExpressionKind, bool) {
	switch e.(type) {
	case *IdentifierReference:
		return IdentifierReferenceKind, true
	case *NumericLiteral:
		return NumericLiteralKind, true
	case *StringLiteral:
		return StringLiteralKind, true
	case *BigintLiteral:
		return BigintLiteralKind, true
	default:
		return 0, false
	}
}
