package archive

import (
	"unsafe"

	"github.com/hupe1980/arenacodec/arena"
)

// String archives strings as an inline (rel, len) pair over raw UTF-8 bytes.
// Views alias the archive buffer; Deserialize copies into the arena.
var String Archiver[string, string] = stringArchiver{}

type stringArchiver struct{}

func (stringArchiver) Layout() Layout { return Layout{Size: 8, Align: 4} }

func (stringArchiver) Serialize(s *Serializer, v string) (Resolver, error) {
	return Resolver{Pos: s.WriteString(v)}, nil
}

func (stringArchiver) Resolve(s *Serializer, v string, pos int, r Resolver) error {
	return s.PutRelLen(pos, r.Pos, len(v))
}

func (stringArchiver) View(buf []byte, pos int) string {
	return viewString(buf, readRel(buf, pos), readU32(buf, pos+4))
}

func (stringArchiver) Deserialize(a *arena.Arena, v string) (string, error) {
	return a.AllocString(v)
}

func viewString(buf []byte, pos int, n uint32) string {
	if n == 0 {
		return ""
	}
	b := buf[pos : pos+int(n)]
	return unsafe.String(&b[0], len(b))
}
