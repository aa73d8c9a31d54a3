package incremental

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/hupe1980/arenacodec/arena"
	"github.com/hupe1980/arenacodec/internal/conv"
)

// Decoder reads values and allocates them in its arena.
//
// Two budgets guard allocation. Claims count the bytes of memory a decode is
// about to produce and are checked against Config.Limit. Input reservations count
// the minimum wire bytes still owed to the elements of open sequences and are
// checked against the unread input when its length is known.
type Decoder struct {
	arena    *arena.Arena
	src      source
	slice    *sliceSource // non-nil in borrow mode
	cfg      Config
	claimed  int
	reserved int
	scratch  [8]byte
}

// NewDecoder returns a decoder over data that copies every value into a.
func NewDecoder(data []byte, a *arena.Arena, opts ...Option) *Decoder {
	return &Decoder{arena: a, src: &sliceSource{buf: data}, cfg: NewConfig(opts...)}
}

// NewBorrowDecoder returns a decoder whose strings alias data instead of being
// copied into the arena. data must outlive every decoded value.
func NewBorrowDecoder(data []byte, a *arena.Arena, opts ...Option) *Decoder {
	s := &sliceSource{buf: data}
	return &Decoder{arena: a, src: s, slice: s, cfg: NewConfig(opts...)}
}

// NewReaderDecoder returns a decoder reading from r.
func NewReaderDecoder(r io.Reader, a *arena.Arena, opts ...Option) *Decoder {
	return &Decoder{arena: a, src: newReaderSource(r), cfg: NewConfig(opts...)}
}

// Arena returns the destination arena.
func (d *Decoder) Arena() *arena.Arena { return d.arena }

// Config returns the decoder configuration.
func (d *Decoder) Config() Config { return d.cfg }

// Borrowing reports whether strings alias the input.
func (d *Decoder) Borrowing() bool { return d.slice != nil }

// Consumed returns the number of input bytes read so far.
func (d *Decoder) Consumed() int { return d.src.consumed() }

// Claimed returns the bytes currently claimed against the limit.
func (d *Decoder) Claimed() int { return d.claimed }

// ClaimBytesRead registers n bytes of decoded memory against the limit.
func (d *Decoder) ClaimBytesRead(n int) error {
	if d.cfg.Limit == 0 {
		d.claimed += n
		return nil
	}
	if n > d.cfg.Limit-d.claimed {
		return &BudgetExceededError{
			Kind:      BudgetLimit,
			Requested: uint64(n),                       //nolint:gosec // n >= 0
			Available: uint64(d.cfg.Limit - d.claimed), //nolint:gosec // claimed <= limit
		}
	}
	d.claimed += n
	return nil
}

// UnclaimBytesRead returns n previously claimed bytes.
//
// Sequence decoding claims the worst case for all elements up front and
// unclaims one element's share before decoding it, since the element claims its
// own bytes again.
func (d *Decoder) UnclaimBytesRead(n int) {
	d.claimed = max(0, d.claimed-n)
}

// ClaimContainerRead claims memory for n elements of elemSize bytes and reserves
// n*minEncoded bytes of the remaining input.
func (d *Decoder) ClaimContainerRead(n, elemSize, minEncoded int) error {
	mem, err := conv.MulInt(n, elemSize)
	if err != nil {
		return &BudgetExceededError{Kind: BudgetLimit, Requested: math.MaxUint64, Available: d.available()}
	}
	need, err := conv.MulInt(n, minEncoded)
	if err != nil {
		return &BudgetExceededError{Kind: BudgetInput, Requested: math.MaxUint64, Available: d.unreserved()}
	}
	if err := d.checkInput(need); err != nil {
		return err
	}
	if err := d.ClaimBytesRead(mem); err != nil {
		return err
	}
	if _, ok := d.src.remaining(); ok {
		d.reserved += need
	}
	return nil
}

// releaseInput drops one element's input reservation before it is decoded.
func (d *Decoder) releaseInput(n int) {
	d.reserved = max(0, d.reserved-n)
}

func (d *Decoder) available() uint64 {
	if d.cfg.Limit == 0 {
		return math.MaxUint64
	}
	return uint64(d.cfg.Limit - d.claimed) //nolint:gosec // claimed <= limit
}

func (d *Decoder) unreserved() uint64 {
	rem, ok := d.src.remaining()
	if !ok {
		return math.MaxUint64
	}
	return uint64(max(0, rem-d.reserved)) //nolint:gosec // non-negative
}

// checkInput fails when n bytes cannot fit in the unreserved input.
func (d *Decoder) checkInput(n int) error {
	rem, ok := d.src.remaining()
	if !ok {
		return nil
	}
	if n > rem-d.reserved {
		return &BudgetExceededError{
			Kind:      BudgetInput,
			Requested: uint64(n), //nolint:gosec // n >= 0
			Available: d.unreserved(),
		}
	}
	return nil
}

// ReadBytes fills p from the input without claiming.
func (d *Decoder) ReadBytes(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	return d.src.readFull(p)
}

func (d *Decoder) readScratch(n int) ([]byte, error) {
	b := d.scratch[:n]
	if err := d.src.readFull(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (d *Decoder) readByte() (byte, error) {
	b, err := d.readScratch(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// readVarint reads a varint whose tag may not exceed maxTag.
func (d *Decoder) readVarint(maxTag byte) (uint64, error) {
	tag, err := d.readByte()
	if err != nil {
		return 0, err
	}
	if tag <= singleByteMax {
		return uint64(tag), nil
	}
	if tag == u128Tag {
		return 0, formatErrorf("128-bit integers are not supported")
	}
	if tag > u128Tag {
		return 0, formatErrorf("invalid varint tag %d", tag)
	}
	if tag > maxTag {
		return 0, formatErrorf("varint tag %d too wide for target integer", tag)
	}

	switch tag {
	case u16Tag:
		b, err := d.readScratch(2)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case u32Tag:
		b, err := d.readScratch(4)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		b, err := d.readScratch(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(b), nil
	}
}

// ReadU8 reads a raw byte.
func (d *Decoder) ReadU8() (uint8, error) {
	if err := d.ClaimBytesRead(1); err != nil {
		return 0, err
	}
	return d.readByte()
}

// ReadU16 reads a u16.
func (d *Decoder) ReadU16() (uint16, error) {
	if err := d.ClaimBytesRead(2); err != nil {
		return 0, err
	}
	if d.cfg.IntEncoding == FixedIntEncoding {
		b, err := d.readScratch(2)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint16(b), nil
	}
	v, err := d.readVarint(u16Tag)
	return uint16(v), err //nolint:gosec // tag bounds the width
}

// ReadU32 reads a u32.
func (d *Decoder) ReadU32() (uint32, error) {
	if err := d.ClaimBytesRead(4); err != nil {
		return 0, err
	}
	if d.cfg.IntEncoding == FixedIntEncoding {
		b, err := d.readScratch(4)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint32(b), nil
	}
	v, err := d.readVarint(u32Tag)
	return uint32(v), err //nolint:gosec // tag bounds the width
}

// ReadU64 reads a u64.
func (d *Decoder) ReadU64() (uint64, error) {
	if err := d.ClaimBytesRead(8); err != nil {
		return 0, err
	}
	if d.cfg.IntEncoding == FixedIntEncoding {
		b, err := d.readScratch(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(b), nil
	}
	return d.readVarint(u64Tag)
}

// ReadI8 reads a raw byte as int8.
func (d *Decoder) ReadI8() (int8, error) {
	v, err := d.ReadU8()
	return int8(v), err //nolint:gosec // bit reinterpretation
}

// ReadI16 reads an i16.
func (d *Decoder) ReadI16() (int16, error) {
	v, err := d.ReadU16()
	if err != nil || d.cfg.IntEncoding == FixedIntEncoding {
		return int16(v), err //nolint:gosec // bit reinterpretation
	}
	return int16(unzigzag(uint64(v))), nil //nolint:gosec // fits by construction
}

// ReadI32 reads an i32.
func (d *Decoder) ReadI32() (int32, error) {
	v, err := d.ReadU32()
	if err != nil || d.cfg.IntEncoding == FixedIntEncoding {
		return int32(v), err //nolint:gosec // bit reinterpretation
	}
	return int32(unzigzag(uint64(v))), nil //nolint:gosec // fits by construction
}

// ReadI64 reads an i64.
func (d *Decoder) ReadI64() (int64, error) {
	v, err := d.ReadU64()
	if err != nil || d.cfg.IntEncoding == FixedIntEncoding {
		return int64(v), err //nolint:gosec // bit reinterpretation
	}
	return unzigzag(v), nil
}

// ReadF32 reads four little-endian bytes.
func (d *Decoder) ReadF32() (float32, error) {
	if err := d.ClaimBytesRead(4); err != nil {
		return 0, err
	}
	b, err := d.readScratch(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// ReadF64 reads eight little-endian bytes.
func (d *Decoder) ReadF64() (float64, error) {
	if err := d.ClaimBytesRead(8); err != nil {
		return 0, err
	}
	b, err := d.readScratch(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// ReadBool reads a byte that must be 0 or 1.
func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.ReadU8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, formatErrorf("invalid bool value %d", v)
	}
}

// ReadLen reads a u64 length and converts it to int.
func (d *Decoder) ReadLen() (int, error) {
	v, err := d.ReadU64()
	if err != nil {
		return 0, err
	}
	n, err := conv.Uint64ToInt(v)
	if err != nil {
		return 0, &LengthOverflowError{Length: v}
	}
	return n, nil
}

// ReadString reads a length-prefixed UTF-8 string. The result lives in the arena,
// or aliases the input in borrow mode.
func (d *Decoder) ReadString() (string, error) {
	n, err := d.ReadLen()
	if err != nil {
		return "", err
	}
	if err := d.checkInput(n); err != nil {
		return "", err
	}
	if err := d.ClaimBytesRead(n); err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}

	var buf []byte
	if d.slice != nil {
		buf, err = d.slice.take(n)
		if err != nil {
			return "", err
		}
	} else {
		buf, err = d.arena.AllocBytes(n)
		if err != nil {
			return "", err
		}
		if err := d.src.readFull(buf); err != nil {
			return "", err
		}
	}

	if !utf8.Valid(buf) {
		return "", formatErrorf("string is not valid UTF-8")
	}
	return unsafe.String(&buf[0], n), nil
}
