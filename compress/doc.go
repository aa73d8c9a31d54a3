// Package compress implements the payload compressions a unit can carry:
// LZ4, ZSTD and Snappy.
//
// Compression is all-or-nothing per payload. When a codec does not save at
// least 10% the payload is stored uncompressed, so a reader must always use
// the type recorded next to the payload rather than the type that was asked
// for.
package compress
