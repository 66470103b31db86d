// Package encoding implements the APL+Win font encoding: a fixed
// single-byte mapping from stored byte values to Unicode APL symbols.
package encoding

import "strings"

// Decode converts APL+Win encoded bytes to a Unicode string.
//
// Decoding is total and length-preserving: every input byte produces
// exactly one output rune, so an N-byte input always yields an N-rune
// string and Decode never fails. Printable ASCII passes through
// unchanged; CR (the line separator in stored function text) becomes
// '\n'.
func Decode(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(table[b])
	}
	return sb.String()
}
