package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/arenacodec/internal/conv"
)

// Serializer accumulates an archive buffer.
type Serializer struct {
	buf []byte
}

// NewSerializer returns a serializer with room for capacity bytes.
func NewSerializer(capacity int) *Serializer {
	return &Serializer{buf: make([]byte, 0, capacity)}
}

// Pos returns the current write position.
func (s *Serializer) Pos() int { return len(s.buf) }

// Bytes returns the archive written so far.
func (s *Serializer) Bytes() []byte { return s.buf }

// Pad writes zero bytes until the position is a multiple of align.
func (s *Serializer) Pad(align int) {
	if n := alignUp(len(s.buf), align) - len(s.buf); n > 0 {
		s.buf = append(s.buf, make([]byte, n)...)
	}
}

// Reserve pads to align and appends size zero bytes, returning their position.
func (s *Serializer) Reserve(l Layout) int {
	s.Pad(l.Align)
	pos := len(s.buf)
	s.buf = append(s.buf, make([]byte, l.Size)...)
	return pos
}

// WriteBytes appends p and returns its position.
func (s *Serializer) WriteBytes(p []byte) int {
	pos := len(s.buf)
	s.buf = append(s.buf, p...)
	return pos
}

// WriteString appends the bytes of str and returns their position.
func (s *Serializer) WriteString(str string) int {
	pos := len(s.buf)
	s.buf = append(s.buf, str...)
	return pos
}

// PutUint8 writes v at pos.
func (s *Serializer) PutUint8(pos int, v uint8) { s.buf[pos] = v }

// PutUint16 writes v at pos.
func (s *Serializer) PutUint16(pos int, v uint16) {
	binary.LittleEndian.PutUint16(s.buf[pos:], v)
}

// PutUint32 writes v at pos.
func (s *Serializer) PutUint32(pos int, v uint32) {
	binary.LittleEndian.PutUint32(s.buf[pos:], v)
}

// PutUint64 writes v at pos.
func (s *Serializer) PutUint64(pos int, v uint64) {
	binary.LittleEndian.PutUint64(s.buf[pos:], v)
}

// PutRel writes the offset from pos to target as an int32 at pos.
func (s *Serializer) PutRel(pos, target int) error {
	rel, err := conv.IntToInt32(target - pos)
	if err != nil {
		return fmt.Errorf("archive: relative offset: %w", err)
	}
	s.PutUint32(pos, uint32(rel)) //nolint:gosec // bit reinterpretation
	return nil
}

// PutRelLen writes an inline (rel int32, n uint32) pair at pos.
func (s *Serializer) PutRelLen(pos, target, n int) error {
	if err := s.PutRel(pos, target); err != nil {
		return err
	}
	n32, err := conv.IntToUint32(n)
	if err != nil {
		return fmt.Errorf("archive: length: %w", err)
	}
	s.PutUint32(pos+4, n32)
	return nil
}

func readU32(buf []byte, pos int) uint32 {
	return binary.LittleEndian.Uint32(buf[pos:])
}

// readRel resolves the relative offset stored at pos.
func readRel(buf []byte, pos int) int {
	return pos + int(int32(readU32(buf, pos))) //nolint:gosec // bit reinterpretation
}
