// Package sftest builds synthetic .sf component files for tests.
// No proprietary data: every container is fabricated from scratch,
// matching the layout observed in real files.
package sftest

import (
	"encoding/binary"

	"github.com/hpungsan/aplsf/internal/encoding"
)

// componentOffset is where the first component's data begins in a real
// .sf file: an 88-byte file header, a component directory, then zero
// padding up to 0x420.
const componentOffset = 1056

// reverse maps runes back to byte values. Built from the live table,
// lowest byte value wins; identity ASCII entries are excluded so 'A'
// encodes as 0x41, never as a high-byte alias.
var reverse = func() map[rune]byte {
	m := make(map[rune]byte)
	tbl := encoding.Table()
	for b := 0; b < 256; b++ {
		r := tbl[b]
		if r == '\n' || r == '\t' || (r >= 0x20 && r <= 0x7E) {
			continue
		}
		if _, ok := m[r]; !ok {
			m[r] = byte(b)
		}
	}
	return m
}()

// EncodeAPL converts Unicode APL source to APL+Win font bytes, the
// inverse of encoding.Decode. Used only to build fixtures.
func EncodeAPL(text string) []byte {
	var out []byte
	for _, r := range text {
		switch {
		case r == '\n':
			out = append(out, 0x0D)
		case r == '\t':
			out = append(out, 0x09)
		case r >= 0x20 && r <= 0x7E:
			out = append(out, byte(r))
		default:
			if b, ok := reverse[r]; ok {
				out = append(out, b)
			} else {
				out = append(out, byte(r&0xFF))
			}
		}
	}
	return out
}

// SubObject wraps encoded function-text bytes in a sub-object header
// (total_size, const 1, type_flags, text_length twice) plus zero
// padding to a 4-byte boundary.
func SubObject(fnText []byte) []byte {
	textLen := len(fnText)
	padding := (4 - textLen%4) % 4
	totalSize := 20 + textLen + padding

	buf := make([]byte, 20, totalSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(totalSize))
	binary.LittleEndian.PutUint32(buf[4:8], 1)
	binary.LittleEndian.PutUint32(buf[8:12], 0x01002020)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(textLen))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(textLen))
	buf = append(buf, fnText...)
	buf = append(buf, make([]byte, padding)...)
	return buf
}

// FunctionSubObject encodes Unicode APL source and wraps it in a
// sub-object header.
func FunctionSubObject(src string) []byte {
	return SubObject(EncodeAPL(src))
}

// DataSubObject returns a non-function sub-object blob (a fake data
// array) of the given payload size.
func DataSubObject(size int) []byte {
	buf := make([]byte, 12, 12+size)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(12+size))
	binary.LittleEndian.PutUint32(buf[4:8], 1)
	binary.LittleEndian.PutUint32(buf[8:12], 0x02000000)
	return append(buf, make([]byte, size)...)
}

// Container assembles sub-objects into a complete .sf image: file
// header, component directory, padding to the standard component
// offset, then the sub-objects back to back.
func Container(subObjects ...[]byte) []byte {
	var compData []byte
	for _, so := range subObjects {
		compData = append(compData, so...)
	}

	fileSize := componentOffset + len(compData)

	header := make([]byte, 88)
	binary.LittleEndian.PutUint32(header[0:4], 1) // version
	binary.LittleEndian.PutUint32(header[4:8], 2) // next component number
	binary.LittleEndian.PutUint32(header[8:12], 1)
	binary.LittleEndian.PutUint32(header[12:16], 0x56AB558E) // timestamp
	binary.LittleEndian.PutUint32(header[16:20], 1)
	binary.LittleEndian.PutUint32(header[20:24], 0x56AB558E)
	binary.LittleEndian.PutUint32(header[24:28], uint32(fileSize))

	directory := make([]byte, 16)
	binary.LittleEndian.PutUint32(directory[0:4], componentOffset)
	binary.LittleEndian.PutUint32(directory[4:8], uint32(len(compData)))
	// Remaining 8 bytes are the zero end marker.

	out := make([]byte, 0, fileSize)
	out = append(out, header...)
	out = append(out, directory...)
	out = append(out, make([]byte, componentOffset-len(header)-len(directory))...)
	return append(out, compData...)
}
