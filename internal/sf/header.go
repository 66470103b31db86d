package sf

import "strings"

// ParseHeader extracts the function name and arity from a decoded
// ∇-header line. Recognized forms:
//
//	∇ NAME                 niladic
//	∇ NAME RARG            monadic
//	∇ LARG NAME RARG       dyadic
//	∇ RES←NAME             niladic with result
//	∇ RES←NAME RARG        monadic with result
//	∇ RES←LARG NAME RARG   dyadic with result
//
// Any form may carry a ;locals suffix. An unrecognizable line returns
// an empty name and ArityUnknown; the caller still emits the record.
func ParseHeader(line string) (string, Arity) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "∇") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "∇"))
	}

	// Locals declarations follow the signature.
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	// A result assignment precedes the signature proper.
	if i := strings.Index(line, "←"); i >= 0 {
		line = strings.TrimSpace(line[i+len("←"):])
	}

	words := strings.Fields(line)
	switch {
	case len(words) >= 3:
		// LARG NAME RARG: the name is in the middle.
		return words[1], Dyadic
	case len(words) == 2:
		return words[0], Monadic
	case len(words) == 1:
		return words[0], Niladic
	default:
		return "", ArityUnknown
	}
}

// firstLine returns text up to the first newline.
func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}
