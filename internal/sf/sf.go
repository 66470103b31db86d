// Package sf reads APL+Win component files (.sf): it locates
// function-text records inside the binary container and decodes them to
// Unicode APL source via the encoding package.
package sf

// Arity is the calling shape of a function, classified from its
// ∇-header line. It is derived metadata; extraction never depends on it.
type Arity int

const (
	ArityUnknown Arity = iota
	Niladic            // NAME
	Monadic            // NAME RARG
	Dyadic             // LARG NAME RARG
)

// String returns the lowercase arity name used in catalog rows and
// report output.
func (a Arity) String() string {
	switch a {
	case Niladic:
		return "niladic"
	case Monadic:
		return "monadic"
	case Dyadic:
		return "dyadic"
	default:
		return "unknown"
	}
}

// ParseArity converts a stored arity string back to an Arity.
func ParseArity(s string) Arity {
	switch s {
	case "niladic":
		return Niladic
	case "monadic":
		return Monadic
	case "dyadic":
		return Dyadic
	default:
		return ArityUnknown
	}
}

// Function is one extracted function-text record. Immutable once
// emitted.
type Function struct {
	// Name is parsed from the ∇-header line. Parse failures yield a
	// synthetic _unnamed_<n> placeholder, never a dropped record.
	Name string

	// Arity is the header's calling shape.
	Arity Arity

	// Text is the full decoded source, delimiters and numbered lines
	// included. Always equals encoding.Decode(Raw).
	Text string

	// Offset is the absolute byte position in the source buffer where
	// the record begins.
	Offset int

	// Raw is the undecoded byte slice, kept for diagnostics and
	// round-trip verification.
	Raw []byte
}

// ComponentFile is the result of reading one container. Functions are
// ordered by ascending Offset, matching physical layout.
type ComponentFile struct {
	// Path is the file path that was read, or "<bytes>" for in-memory
	// input.
	Path string

	// Functions holds the extracted records in buffer order.
	Functions []Function

	// Size is the total input size in bytes.
	Size int
}
