package incremental

import "encoding/binary"

const (
	singleByteMax = 250
	u16Tag        = 251
	u32Tag        = 252
	u64Tag        = 253
	u128Tag       = 254
)

// putVarint writes v into buf (at least 9 bytes) and returns the encoded length.
func putVarint(buf []byte, v uint64) int {
	switch {
	case v <= singleByteMax:
		buf[0] = byte(v)
		return 1
	case v <= 0xFFFF:
		buf[0] = u16Tag
		binary.LittleEndian.PutUint16(buf[1:], uint16(v))
		return 3
	case v <= 0xFFFF_FFFF:
		buf[0] = u32Tag
		binary.LittleEndian.PutUint32(buf[1:], uint32(v))
		return 5
	default:
		buf[0] = u64Tag
		binary.LittleEndian.PutUint64(buf[1:], v)
		return 9
	}
}

// varintSize returns the number of bytes putVarint uses for v.
func varintSize(v uint64) int {
	switch {
	case v <= singleByteMax:
		return 1
	case v <= 0xFFFF:
		return 3
	case v <= 0xFFFF_FFFF:
		return 5
	default:
		return 9
	}
}

func zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63) //nolint:gosec // zig-zag mapping
}

func unzigzag(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1) //nolint:gosec // zig-zag mapping
}
