// Package conv provides checked integer conversions.
//
// Length fields, relative offsets and claim sizes read from untrusted bytes go
// through these helpers so overflow surfaces as an error wrapping ErrOverflow
// instead of a silently truncated value.
package conv
