package incremental

import (
	"bufio"
	"errors"
	"io"
)

// source is the byte input behind a Decoder.
type source interface {
	readFull(p []byte) error
	// remaining reports the unread input length when it is known.
	remaining() (int, bool)
	consumed() int
}

type sliceSource struct {
	buf []byte
	pos int
}

func (s *sliceSource) readFull(p []byte) error {
	if len(p) > len(s.buf)-s.pos {
		return &UnexpectedEndError{Additional: len(p) - (len(s.buf) - s.pos)}
	}
	s.pos += copy(p, s.buf[s.pos:])
	return nil
}

// take returns the next n bytes without copying.
func (s *sliceSource) take(n int) ([]byte, error) {
	if n > len(s.buf)-s.pos {
		return nil, &UnexpectedEndError{Additional: n - (len(s.buf) - s.pos)}
	}
	p := s.buf[s.pos : s.pos+n : s.pos+n]
	s.pos += n
	return p, nil
}

func (s *sliceSource) remaining() (int, bool) { return len(s.buf) - s.pos, true }

func (s *sliceSource) consumed() int { return s.pos }

type readerSource struct {
	r *bufio.Reader
	n int
}

func newReaderSource(r io.Reader) *readerSource {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &readerSource{r: br}
}

func (s *readerSource) readFull(p []byte) error {
	n, err := io.ReadFull(s.r, p)
	s.n += n
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &UnexpectedEndError{Additional: len(p) - n}
		}
		return err
	}
	return nil
}

func (s *readerSource) remaining() (int, bool) { return 0, false }

func (s *readerSource) consumed() int { return s.n }
