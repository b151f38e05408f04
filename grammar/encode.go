package grammar

import (
	"encoding/binary"

	"github.com/klauspost/compress/zstd"
)

// Encode validates the grammar and serializes it to an uncompressed table
// blob of the current format version.
func Encode(g *Grammar) ([]byte, error) {
	e := Validate(g)
	if e != nil {
		return nil, e
	}

	w := &tableWriter{data: make([]byte, 0, HeaderSize+4*len(g.Actions)+4*len(g.Gotos))}
	w.data = append(w.data, Magic...)
	w.u32(Version)
	w.u32(len(g.Terms))
	w.u32(len(g.NonTerms))
	w.u32(len(g.Rules))
	w.u32(g.StateCount)
	w.u32(len(g.Fields))
	w.u32(0)

	for _, t := range g.Terms {
		w.u32(int(t.Flags))
		w.str(t.Name)
		w.str(t.Re)
	}
	for _, nt := range g.NonTerms {
		w.str(nt.Name)
	}
	for _, f := range g.Fields {
		w.str(f)
	}

	for _, r := range g.Rules {
		w.u32(r.NonTerm)
		w.u32(r.Len)
		w.u32(r.Alias + 1)
		for i := 0; i < r.Len; i++ {
			if r.Fields == nil {
				w.u32(NoField + 1)
			} else {
				w.u32(r.Fields[i] + 1)
			}
		}
	}

	for _, a := range g.Actions {
		w.u32(int(a))
	}
	for _, s := range g.Gotos {
		w.u32(s + 1)
	}

	return w.data, nil
}

// EncodeCompressed serializes the grammar to a zstd-compressed table blob.
// Load recognizes such blobs by their frame magic and decompresses them
// before header validation.
func EncodeCompressed(g *Grammar) ([]byte, error) {
	raw, e := Encode(g)
	if e != nil {
		return nil, e
	}

	enc, e := zstd.NewWriter(nil)
	if e != nil {
		return nil, e
	}
	defer enc.Close()

	return enc.EncodeAll(raw, nil), nil
}

type tableWriter struct {
	data []byte
}

func (w *tableWriter) u32(v int) {
	w.data = binary.LittleEndian.AppendUint32(w.data, uint32(v))
}

func (w *tableWriter) str(s string) {
	w.u32(len(s))
	w.data = append(w.data, s...)
}
