package ast

import (
	"fmt"

	"github.com/hupe1980/arenacodec/arena"
	"github.com/hupe1980/arenacodec/incremental"
)

// Incremental codecs.
var (
	ProgramCodec    incremental.Codec[Program]    = programCodec{}
	StatementCodec  incremental.Codec[Statement]  = statementCodec{}
	ExpressionCodec incremental.Codec[Expression] = expressionCodec{}

	directivesCodec  = incremental.ArrayOf[Directive](directiveCodec{})
	statementsCodec  = incremental.ArrayOf[Statement](statementCodec{})
	referenceIDCodec = incremental.CellOf[ReferenceID](refIDCodec{})
)

func encodeSpan(e *incremental.Encoder, s Span) error {
	if err := e.WriteU32(s.Start); err != nil {
		return err
	}
	return e.WriteU32(s.End)
}

func decodeSpan(d *incremental.Decoder) (Span, error) {
	start, err := d.ReadU32()
	if err != nil {
		return Span{}, err
	}
	end, err := d.ReadU32()
	if err != nil {
		return Span{}, err
	}
	return Span{Start: start, End: end}, nil
}

type refIDCodec struct{}

func (refIDCodec) Encode(e *incremental.Encoder, v ReferenceID) error {
	return e.WriteU32(uint32(v))
}

func (refIDCodec) Decode(d *incremental.Decoder) (ReferenceID, error) {
	v, err := d.ReadU32()
	return ReferenceID(v), err
}

type programCodec struct{}

func (programCodec) Encode(e *incremental.Encoder, p Program) error {
	if err := encodeSpan(e, p.Span); err != nil {
		return err
	}
	if err := encodeSourceType(e, p.SourceType); err != nil {
		return err
	}
	if err := directivesCodec.Encode(e, p.Directives); err != nil {
		return err
	}
	// Option<String>: presence byte, then the value.
	if err := e.WriteBool(p.Hashbang != ""); err != nil {
		return err
	}
	if p.Hashbang != "" {
		if err := e.WriteString(p.Hashbang); err != nil {
			return err
		}
	}
	return statementsCodec.Encode(e, p.Body)
}

func (programCodec) Decode(d *incremental.Decoder) (Program, error) {
	var p Program
	var err error

	if p.Span, err = decodeSpan(d); err != nil {
		return Program{}, err
	}
	if p.SourceType, err = decodeSourceType(d); err != nil {
		return Program{}, err
	}
	if p.Directives, err = directivesCodec.Decode(d); err != nil {
		return Program{}, err
	}
	hasHashbang, err := d.ReadBool()
	if err != nil {
		return Program{}, err
	}
	if hasHashbang {
		if p.Hashbang, err = d.ReadString(); err != nil {
			return Program{}, err
		}
	}
	if p.Body, err = statementsCodec.Decode(d); err != nil {
		return Program{}, err
	}
	return p, nil
}

func encodeSourceType(e *incremental.Encoder, st SourceType) error {
	if err := e.WriteU8(uint8(st.Language)); err != nil {
		return err
	}
	if err := e.WriteU8(uint8(st.ModuleKind)); err != nil {
		return err
	}
	return e.WriteBool(st.JSX)
}

func decodeSourceType(d *incremental.Decoder) (SourceType, error) {
	lang, err := d.ReadU8()
	if err != nil {
		return SourceType{}, err
	}
	kind, err := d.ReadU8()
	if err != nil {
		return SourceType{}, err
	}
	jsx, err := d.ReadBool()
	if err != nil {
		return SourceType{}, err
	}
	return SourceType{Language: Language(lang), ModuleKind: ModuleKind(kind), JSX: jsx}, nil
}

type directiveCodec struct{}

func (directiveCodec) Encode(e *incremental.Encoder, v Directive) error {
	if err := encodeSpan(e, v.Span); err != nil {
		return err
	}
	if err := encodeStringLiteral(e, &v.Expression); err != nil {
		return err
	}
	return e.WriteString(v.Directive)
}

func (directiveCodec) Decode(d *incremental.Decoder) (Directive, error) {
	span, err := decodeSpan(d)
	if err != nil {
		return Directive{}, err
	}
	lit, err := decodeStringLiteral(d)
	if err != nil {
		return Directive{}, err
	}
	text, err := d.ReadString()
	if err != nil {
		return Directive{}, err
	}
	return Directive{Span: span, Expression: lit, Directive: text}, nil
}

func (directiveCodec) MinEncodedSize(incremental.Config) int { return 6 }

type statementCodec struct{}

func (statementCodec) Encode(e *incremental.Encoder, v Statement) error {
	switch s := v.(type) {
	case *ExpressionStatement:
		if err := e.WriteU32(uint32(ExpressionStatementKind)); err != nil {
			return err
		}
		if err := encodeSpan(e, s.Span); err != nil {
			return err
		}
		return ExpressionCodec.Encode(e, s.Expression)
	case *BlockStatement:
		if err := e.WriteU32(uint32(BlockStatementKind)); err != nil {
			return err
		}
		if err := encodeSpan(e, s.Span); err != nil {
			return err
		}
		return statementsCodec.Encode(e, s.Body)
	case *EmptyStatement:
		if err := e.WriteU32(uint32(EmptyStatementKind)); err != nil {
			return err
		}
		return encodeSpan(e, s.Span)
	default:
		return fmt.Errorf("ast: cannot encode statement %T", v)
	}
}

func (statementCodec) Decode(d *incremental.Decoder) (Statement, error) {
	tag, err := d.ReadU32()
	if err != nil {
		return nil, err
	}
	span, err := decodeSpan(d)
	if err != nil {
		return nil, err
	}

	switch StatementKind(tag) {
	case ExpressionStatementKind:
		expr, err := ExpressionCodec.Decode(d)
		if err != nil {
			return nil, err
		}
		return arena.Alloc(d.Arena(), ExpressionStatement{Span: span, Expression: expr})
	case BlockStatementKind:
		body, err := statementsCodec.Decode(d)
		if err != nil {
			return nil, err
		}
		return arena.Alloc(d.Arena(), BlockStatement{Span: span, Body: body})
	case EmptyStatementKind:
		return arena.Alloc(d.Arena(), EmptyStatement{Span: span})
	default:
		return nil, &incremental.FormatError{Msg: fmt.Sprintf("unknown statement tag %d", tag)}
	}
}

func (statementCodec) MinEncodedSize(incremental.Config) int { return 3 }

type expressionCodec struct{}

func (expressionCodec) Encode(e *incremental.Encoder, v Expression) error {
	switch x := v.(type) {
	case *IdentifierReference:
		if err := e.WriteU32(uint32(IdentifierReferenceKind)); err != nil {
			return err
		}
		if err := encodeSpan(e, x.Span); err != nil {
			return err
		}
		if err := e.WriteString(x.Name); err != nil {
			return err
		}
		if err := referenceIDCodec.Encode(e, x.ReferenceID); err != nil {
			return err
		}
		return e.WriteU8(uint8(x.ReferenceFlag))
	case *NumericLiteral:
		if err := e.WriteU32(uint32(NumericLiteralKind)); err != nil {
			return err
		}
		if err := encodeSpan(e, x.Span); err != nil {
			return err
		}
		if err := e.WriteF64(x.Value); err != nil {
			return err
		}
		if err := e.WriteString(x.Raw); err != nil {
			return err
		}
		return e.WriteU8(uint8(x.Base))
	case *StringLiteral:
		if err := e.WriteU32(uint32(StringLiteralKind)); err != nil {
			return err
		}
		return encodeStringLiteral(e, x)
	case *BigintLiteral:
		if err := e.WriteU32(uint32(BigintLiteralKind)); err != nil {
			return err
		}
		if err := encodeSpan(e, x.Span); err != nil {
			return err
		}
		if err := e.WriteString(x.Raw); err != nil {
			return err
		}
		return e.WriteU8(uint8(x.Base))
	default:
		return fmt.Errorf("ast: cannot encode expression %T", v)
	}
}

func (expressionCodec) Decode(d *incremental.Decoder) (Expression, error) {
	tag, err := d.ReadU32()
	if err != nil {
		return nil, err
	}

	switch ExpressionKind(tag) {
	case IdentifierReferenceKind:
		span, err := decodeSpan(d)
		if err != nil {
			return nil, err
		}
		name, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		ref, err := referenceIDCodec.Decode(d)
		if err != nil {
			return nil, err
		}
		flag, err := d.ReadU8()
		if err != nil {
			return nil, err
		}
		return arena.Alloc(d.Arena(), IdentifierReference{
			Span:          span,
			Name:          name,
			ReferenceID:   ref,
			ReferenceFlag: ReferenceFlag(flag),
		})
	case NumericLiteralKind:
		span, err := decodeSpan(d)
		if err != nil {
			return nil, err
		}
		value, err := d.ReadF64()
		if err != nil {
			return nil, err
		}
		raw, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		base, err := d.ReadU8()
		if err != nil {
			return nil, err
		}
		return arena.Alloc(d.Arena(), NumericLiteral{Span: span, Value: value, Raw: raw, Base: NumberBase(base)})
	case StringLiteralKind:
		lit, err := decodeStringLiteral(d)
		if err != nil {
			return nil, err
		}
		return arena.Alloc(d.Arena(), lit)
	case BigintLiteralKind:
		span, err := decodeSpan(d)
		if err != nil {
			return nil, err
		}
		raw, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		base, err := d.ReadU8()
		if err != nil {
			return nil, err
		}
		return arena.Alloc(d.Arena(), BigintLiteral{Span: span, Raw: raw, Base: BigintBase(base)})
	default:
		return nil, &incremental.FormatError{Msg: fmt.Sprintf("unknown expression tag %d", tag)}
	}
}

func (expressionCodec) MinEncodedSize(incremental.Config) int { return 3 }

func encodeStringLiteral(e *incremental.Encoder, lit *StringLiteral) error {
	if err := encodeSpan(e, lit.Span); err != nil {
		return err
	}
	return e.WriteString(lit.Value)
}

func decodeStringLiteral(d *incremental.Decoder) (StringLiteral, error) {
	span, err := decodeSpan(d)
	if err != nil {
		return StringLiteral{}, err
	}
	value, err := d.ReadString()
	if err != nil {
		return StringLiteral{}, err
	}
	return StringLiteral{Span: span, Value: value}, nil
}
