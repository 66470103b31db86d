package sf

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/hpungsan/aplsf/internal/encoding"
)

// Scanner locates function-text records in a raw buffer. Boundary
// detection is the one genuinely ambiguous part of the container
// format, so it sits behind this interface: HeaderScanner trusts the
// length-prefixed sub-object headers found in real files, DelScanner
// falls back to marker recurrence when headers are damaged or absent.
type Scanner interface {
	Scan(data []byte) []Function
}

// functionMarker is four spaces, the del byte, and a space: the fixed
// prefix of function text at offset +20 inside each sub-object.
var functionMarker = []byte{0x20, 0x20, 0x20, 0x20, encoding.DelByte, 0x20}

// subObjectHeaderLen is the fixed header preceding the function text:
// u32 total_size, u32 const (always 1), u32 type_flags, u32 text_length,
// u32 text_length repeated. All little-endian.
const subObjectHeaderLen = 20

// DefaultMaxTextLen caps a single record's claimed text length.
// Anything larger is treated as a corrupt header and skipped.
const DefaultMaxTextLen = 10_000_000

// HeaderScanner extracts records using the sub-object length prefixes.
// This is the default scanner: exact boundaries, tolerant of del bytes
// inside string literals and comments because it never looks for a
// closing marker.
type HeaderScanner struct {
	// MaxTextLen overrides DefaultMaxTextLen when positive.
	MaxTextLen int
}

// Scan returns the function records found in data, in buffer order.
// Malformed candidates are skipped; a truncated trailing record is
// emitted with whatever text is present.
func (s HeaderScanner) Scan(data []byte) []Function {
	maxLen := s.MaxTextLen
	if maxLen <= 0 {
		maxLen = DefaultMaxTextLen
	}

	var fns []Function
	idx := 0
	for idx < len(data) {
		rel := bytes.Index(data[idx:], functionMarker)
		if rel < 0 {
			break
		}
		pos := idx + rel

		headerOff := pos - subObjectHeaderLen
		if headerOff < 0 {
			// Marker too close to buffer start for a header.
			idx = pos + len(functionMarker)
			continue
		}

		konst := binary.LittleEndian.Uint32(data[headerOff+4 : headerOff+8])
		textLen := int(binary.LittleEndian.Uint32(data[headerOff+12 : headerOff+16]))
		textLen2 := int(binary.LittleEndian.Uint32(data[headerOff+16 : headerOff+20]))

		if konst != 1 || textLen != textLen2 || textLen <= 0 || textLen > maxLen {
			idx = pos + len(functionMarker)
			continue
		}

		// Truncated trailing record: emit what is there.
		end := pos + textLen
		if end > len(data) {
			end = len(data)
		}

		fns = append(fns, newFunction(data[pos:end], headerOff, len(fns)))
		idx = end
	}
	return fns
}

// DelScanner extracts records by del-marker recurrence alone: each del
// byte starts a candidate record that runs to the next del byte or end
// of buffer. Used when sub-object headers are missing or corrupt. It
// errs toward including stray trailing bytes rather than truncating
// source. A del byte directly preceded by a quote is taken as a glyph
// cited inside a character literal, not a boundary.
type DelScanner struct{}

// Scan returns one record per del-marker boundary, in buffer order.
func (DelScanner) Scan(data []byte) []Function {
	var starts []int
	for i, b := range data {
		if b != encoding.DelByte {
			continue
		}
		if i > 0 && data[i-1] == '\'' {
			continue
		}
		starts = append(starts, i)
	}

	fns := make([]Function, 0, len(starts))
	for i, start := range starts {
		end := len(data)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		fns = append(fns, newFunction(data[start:end], start, len(fns)))
	}
	return fns
}

// newFunction decodes a raw record slice and parses its header line.
// n is the ordinal used for the _unnamed_ fallback.
func newFunction(raw []byte, offset, n int) Function {
	text := encoding.Decode(raw)
	name, arity := ParseHeader(firstLine(text))
	if name == "" {
		name = fmt.Sprintf("_unnamed_%d", n)
	}
	return Function{
		Name:   name,
		Arity:  arity,
		Text:   text,
		Offset: offset,
		Raw:    raw,
	}
}
