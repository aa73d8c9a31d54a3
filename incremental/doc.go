// Package incremental implements a framed binary codec that decodes field by field
// into an arena.
//
// The wire format follows bincode's standard configuration: little-endian, varint
// integers by default (values below 251 take one byte, 251/252/253 prefix a
// u16/u32/u64), zig-zag for signed integers, raw single bytes for u8/i8,
// fixed-width floats and u64 length prefixes for strings and sequences.
//
// Decoding threads the destination arena through every call. Declared lengths are
// checked before anything is allocated: a length that does not fit in an int fails
// with ErrLengthOverflow, and a length that needs more memory than the configured
// limit, or more bytes than remain in the input, fails with ErrBudgetExceeded.
//
// Example:
//
//	a := arena.New(0)
//	codec := incremental.ArrayOf(incremental.U32)
//
//	data, err := incremental.EncodeToBytes(codec, arr)
//	...
//	out, n, err := incremental.Decode(data, a, codec)
package incremental
