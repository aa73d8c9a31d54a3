package ast

// NumberBase is the notation a numeric literal was written in.
type NumberBase uint8

const (
	NumberFloat NumberBase = iota
	NumberDecimal
	NumberBinary
	NumberOctal
	NumberHex
)

// IsBase10 reports whether the literal was written in decimal notation.
func (b NumberBase) IsBase10() bool {
	return b == NumberFloat || b == NumberDecimal
}

// BigintBase is the notation a bigint literal was written in.
type BigintBase uint8

const (
	BigintDecimal BigintBase = iota
	BigintBinary
	BigintOctal
	BigintHex
)

// IsBase10 reports whether the literal was written in decimal notation.
func (b BigintBase) IsBase10() bool { return b == BigintDecimal }

// ReferenceID identifies a resolved reference. The zero value means unresolved.
type ReferenceID uint32

// IsResolved reports whether id refers to a symbol.
func (id ReferenceID) IsResolved() bool { return id != 0 }

// ReferenceFlag describes how an identifier reference is used.
type ReferenceFlag uint8

const (
	ReferenceRead ReferenceFlag = 1 << iota
	ReferenceWrite
)

// IsRead reports whether the reference reads its symbol.
func (f ReferenceFlag) IsRead() bool { return f&ReferenceRead != 0 }

// IsWrite reports whether the reference writes its symbol.
func (f ReferenceFlag) IsWrite() bool { return f&ReferenceWrite != 0 }
