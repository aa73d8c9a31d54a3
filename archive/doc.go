// Package archive implements a zero-copy archive format for arena values.
//
// Archiving is two-phase. Serialize writes a value's out-of-line data (array
// elements, boxed referents, string bytes) and returns a Resolver recording where
// it landed. Resolve then writes the value's fixed-size inline part at a chosen
// position, referencing that data through relative offsets.
//
// Layout:
//
//   - scalars are little-endian at their natural width, bools are one byte
//   - arrays and strings are an inline (rel int32, len uint32) pair, 8 bytes
//   - boxes are an inline (rel int32, metadata uint32) pair, 8 bytes; metadata is
//     0 for sized referents and the element or byte count for slices and strings
//   - the root value occupies the last Layout().Size bytes of the buffer
//
// Relative offsets are measured from the position of the inline field itself.
// Reads do not require the buffer to be aligned.
//
// Views read directly from the buffer and never allocate. The buffer must outlive
// every view derived from it. Dematerializing copies an archived value into an
// arena; it is the only read path that allocates.
//
// Archives are trusted: they must be read back by the code that produced them.
// No integrity validation is performed beyond bounds checks, and a corrupted
// buffer may cause a panic.
package archive
