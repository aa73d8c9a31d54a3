// Package hash holds the checksum used by unit envelopes.
//
// Envelopes are checksummed with CRC32-Castagnoli. Go's hash/crc32 uses the
// SSE4.2 and ARM64 CRC instructions for this polynomial when present.
//
//	sum := hash.CRC32C(payload)
//
//	h := hash.NewCRC32C()
//	h.Write(part1)
//	h.Write(part2)
//	sum = h.Sum32()
package hash
