package encoding

// APL+Win stores source text in a single-byte font encoding based on
// Code Page 437 with APL symbol overlays. The table below maps raw byte
// values to Unicode. It was reverse-engineered from function text found
// in real .sf component files.
//
// This is NOT the ⎕AV atomic-vector mapping published for the same
// interpreter. ⎕AV maps logical symbol positions; this table maps stored
// byte values, and several positions genuinely differ between the two
// (0x86 is ⍴ here but ≠ in ⎕AV, 0x8D is ↓ here but ⌈ there). The table
// must stay a literal; deriving it from the ⎕AV reference reintroduces
// those collisions.

// DelByte is the byte value that decodes to ∇ (del), the glyph that
// opens and closes every function definition. The component-file
// scanner keys on it.
const DelByte byte = 0xEC

// table maps every byte value to exactly one rune. The printable ASCII
// range 0x20–0x7E is filled with identity entries by init below; control
// bytes with no APL overlay keep their CP437 graphic so lookup is total.
var table = [256]rune{
	// Control-character region: APL overlays, CP437 graphics for the rest.
	0x00: ' ',
	0x01: '☺',
	0x02: '☻',
	0x03: '⍷', // find
	0x04: '∊', // membership
	0x05: '¨', // each
	0x06: '←', // assignment
	0x07: '•',
	0x08: '◘',
	0x09: '\t',
	0x0A: '\n',
	0x0B: '⊂', // enclose
	0x0C: '♀',
	0x0D: '\n', // CR is the line separator in function text
	0x0E: '⊃', // disclose
	0x0F: '⍟', // natural log
	0x10: '►',
	0x11: '◄',
	0x12: '↕',
	0x13: '⍫', // del tilde
	0x14: '¶',
	0x15: '§',
	0x16: '⍬', // zilde
	0x17: '⍵', // omega
	0x18: '↑', // take
	0x19: '×', // times
	0x1A: '→', // branch
	0x1B: '←',
	0x1C: '⊣', // left tack
	0x1D: '⊢', // right tack
	0x1E: '⍋', // grade up
	0x1F: '⍒', // grade down

	// 0x20–0x7E: ASCII identity, filled in init.
	0x7F: '⌂',

	// 0x80–0x9F: APL symbols interleaved with accented Latin.
	0x80: 'Ç',
	0x81: 'ü',
	0x82: 'é',
	0x83: 'â',
	0x84: 'ä',
	0x85: 'à',
	0x86: '⍴', // rho, NOT ≠ as in the ⎕AV table
	0x87: 'ç',
	0x88: 'ê',
	0x89: 'ë',
	0x8A: 'è',
	0x8B: '⍕', // format
	0x8C: '⍎', // execute
	0x8D: '↓', // drop, NOT ⌈ as in the ⎕AV table
	0x8E: 'Ä',
	0x8F: '×',
	0x90: 'É',
	0x91: '⋄', // statement separator
	0x92: '×',
	0x93: 'ô',
	0x94: 'ö',
	0x95: '⎕', // quad
	0x96: 'û',
	0x97: '⍞', // quote quad
	0x98: '⌹', // domino
	0x99: 'Ö',
	0x9A: 'Ü',
	0x9B: '¢',
	0x9C: '£',
	0x9D: '¥',
	0x9E: '⍪', // comma bar
	0x9F: '⍨', // commute

	// 0xA0–0xAF: accented Latin plus APL symbols.
	0xA0: 'á',
	0xA1: 'í',
	0xA2: 'ó',
	0xA3: 'ú',
	0xA4: 'ñ',
	0xA5: 'Ñ',
	0xA6: '⍝', // comment lamp
	0xA7: '⍀', // scan first axis
	0xA8: '¿',
	0xA9: '⌷', // squad
	0xAA: 'õ',
	0xAB: 'ø',
	0xAC: 'ý',
	0xAD: '¡',
	0xAE: '«',
	0xAF: '»',

	// 0xB0–0xBF: box drawing.
	0xB0: '─',
	0xB1: '│',
	0xB2: '┌',
	0xB3: '┐',
	0xB4: '└',
	0xB5: '┘',
	0xB6: '├',
	0xB7: '┤',
	0xB8: '┬',
	0xB9: '┴',
	0xBA: '┼',
	0xBB: '╭',
	0xBC: '╮',
	0xBD: '╯',
	0xBE: '╰',
	0xBF: '…',

	// 0xC0–0xDF: accented Latin, math, publishing symbols.
	0xC0: 'À',
	0xC1: 'Á',
	0xC2: 'Â',
	0xC3: 'Ã',
	0xC4: '¶',
	0xC5: 'Å',
	0xC6: 'Æ',
	0xC7: 'ƒ',
	0xC8: 'È',
	0xC9: '™',
	0xCA: 'Ê',
	0xCB: 'Ë',
	0xCC: 'Ì',
	0xCD: 'Í',
	0xCE: 'Î',
	0xCF: 'Ï',
	0xD0: '©',
	0xD1: '®',
	0xD2: 'Ò',
	0xD3: 'Ó',
	0xD4: 'Ô',
	0xD5: 'Õ',
	0xD6: '≈',
	0xD7: '≊',
	0xD8: 'Ø',
	0xD9: 'Ù',
	0xDA: 'Ú',
	0xDB: 'Û',
	0xDC: '≅',
	0xDD: 'Ý',
	0xDE: '≣',
	0xDF: 'ÿ',

	// 0xE0–0xFF: core APL symbols.
	0xE0: '⍺', // alpha
	0xE1: 'ß',
	0xE2: '⍳', // iota
	0xE3: '⍤', // rank
	0xE4: '⊆', // nest
	0xE5: '⍱', // nor
	0xE6: '⊥', // decode
	0xE7: '⊤', // encode
	0xE8: '⌊', // floor
	0xE9: '⊖', // rotate first axis
	0xEA: '⍲', // nand
	0xEB: '⌿', // replicate first axis
	0xEC: '∇', // del
	0xED: '⍉', // transpose
	0xEE: '∊',
	0xEF: '¯', // high minus
	0xF0: '≡', // match
	0xF1: '⍙', // delta underbar
	0xF2: '≥',
	0xF3: '≤',
	0xF4: '⍕',
	0xF5: '⍎',
	0xF6: '÷', // divide
	0xF7: '„',
	0xF8: '∘', // jot
	0xF9: '○', // circle
	0xFA: '∨', // or
	0xFB: '⍴',
	0xFC: '∪', // union
	0xFD: '⌈', // ceiling
	0xFE: '∣', // residue
	0xFF: ' ',
}

func init() {
	for b := 0x20; b <= 0x7E; b++ {
		table[b] = rune(b)
	}
}

// CharFor returns the Unicode rune for a single byte value. Total:
// every byte has a defined result.
func CharFor(b byte) rune {
	return table[b]
}

// Table returns a copy of the full 256-entry byte→rune mapping for
// callers that need the raw table. Mutating the copy has no effect on
// decoding.
func Table() [256]rune {
	return table
}
