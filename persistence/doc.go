// Package persistence frames encoded values as self-describing units.
//
// A unit is a 32-byte little-endian UnitHeader followed by the payload. The
// header names the wire format (incremental or archive), the payload
// compression, both sizes and a CRC32C of the stored payload:
//
//	offset  size  field
//	0       4     magic "ARN0"
//	4       4     version
//	8       1     format
//	9       1     compression
//	10      2     reserved
//	12      8     raw size
//	20      8     payload size
//	28      4     CRC32C of the payload
//
// Archive payloads stored without compression can be viewed in place, straight
// from a memory-mapped blob, with ParseUnit.
package persistence
