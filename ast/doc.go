// Package ast defines a small arena-allocated JavaScript AST together with its
// incremental and archive codecs.
//
// Statement and Expression are interfaces whose variants are pointers into the
// arena, so every enum-like value is two words wide. Identifier references carry
// a Cell that a later pass fills with the resolved reference id.
package ast
