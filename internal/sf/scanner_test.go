package sf

import (
	"strings"
	"testing"

	"github.com/hpungsan/aplsf/internal/encoding"
	"github.com/hpungsan/aplsf/internal/sf/sftest"
)

const simpleSrc = "    ∇ R←ADD A;B\n[1]   B←1\n[2]   R←A+B\n    ∇\n"

func TestHeaderScanner_Simple(t *testing.T) {
	data := sftest.Container(sftest.FunctionSubObject(simpleSrc))
	fns := HeaderScanner{}.Scan(data)

	if len(fns) != 1 {
		t.Fatalf("got %d functions, want 1", len(fns))
	}
	fn := fns[0]
	if fn.Name != "ADD" {
		t.Errorf("Name = %q, want ADD", fn.Name)
	}
	if fn.Arity != Monadic {
		t.Errorf("Arity = %v, want Monadic", fn.Arity)
	}
	if !strings.Contains(fn.Text, "∇ R←ADD A;B") {
		t.Errorf("Text missing header line: %q", fn.Text)
	}
	if !strings.Contains(fn.Text, "[1]   B←1") || !strings.Contains(fn.Text, "[2]   R←A+B") {
		t.Errorf("Text missing body lines: %q", fn.Text)
	}
	if len(fn.Raw) == 0 || fn.Raw[0] != 0x20 {
		t.Errorf("Raw should start with the leading spaces, got % x", fn.Raw[:min(4, len(fn.Raw))])
	}
	if fn.Offset < 1056 {
		t.Errorf("Offset = %d, want >= 1056 (component start)", fn.Offset)
	}
}

func TestHeaderScanner_MultipleInOrder(t *testing.T) {
	data := sftest.Container(
		sftest.FunctionSubObject("    ∇ R←N TAKE V;⎕IO\n[1]   ⎕IO←1\n[2]   R←N↑V\n    ∇\n"),
		sftest.FunctionSubObject("    ∇ R←IOTA N\n[1]   R←⍳N\n    ∇\n"),
		sftest.FunctionSubObject("    ∇ R←A PLUS B\n[1]   ⍝ Add two values\n[2]   R←A+B\n    ∇\n"),
	)
	fns := HeaderScanner{}.Scan(data)

	if len(fns) != 3 {
		t.Fatalf("got %d functions, want 3", len(fns))
	}
	wantNames := []string{"TAKE", "IOTA", "PLUS"}
	for i, want := range wantNames {
		if fns[i].Name != want {
			t.Errorf("fns[%d].Name = %q, want %q", i, fns[i].Name, want)
		}
	}
	for i := 1; i < len(fns); i++ {
		if fns[i].Offset <= fns[i-1].Offset {
			t.Errorf("offsets not strictly ascending: %d then %d", fns[i-1].Offset, fns[i].Offset)
		}
	}
	if !strings.Contains(fns[0].Text, "⎕IO←1") {
		t.Errorf("TAKE missing ⎕IO←1: %q", fns[0].Text)
	}
	if !strings.Contains(fns[1].Text, "⍳N") {
		t.Errorf("IOTA missing ⍳N: %q", fns[1].Text)
	}
	if !strings.Contains(fns[2].Text, "⍝ Add two values") {
		t.Errorf("PLUS missing comment: %q", fns[2].Text)
	}
}

func TestHeaderScanner_SkipsDataObjects(t *testing.T) {
	data := sftest.Container(
		sftest.DataSubObject(52),
		sftest.FunctionSubObject("    ∇ R←DOUBLE N\n[1]   R←2×N\n    ∇\n"),
		sftest.DataSubObject(36),
		sftest.FunctionSubObject("    ∇ R←HALF N\n[1]   R←N÷2\n    ∇\n"),
	)
	fns := HeaderScanner{}.Scan(data)

	if len(fns) != 2 {
		t.Fatalf("got %d functions, want 2", len(fns))
	}
	if fns[0].Name != "DOUBLE" || fns[1].Name != "HALF" {
		t.Errorf("names = %q, %q; want DOUBLE, HALF", fns[0].Name, fns[1].Name)
	}
	if !strings.Contains(fns[0].Text, "2×N") {
		t.Errorf("DOUBLE body missing 2×N: %q", fns[0].Text)
	}
	if !strings.Contains(fns[1].Text, "N÷2") {
		t.Errorf("HALF body missing N÷2: %q", fns[1].Text)
	}
}

func TestHeaderScanner_SymbolCoverage(t *testing.T) {
	src := "    ∇ R←DEMO X;⎕IO;M;V\n" +
		"[1]   ⎕IO←0\n" +
		"[2]   ⍝ Shape, iota, rho, floor, ceiling\n" +
		"[3]   M←3 4⍴⍳12\n" +
		"[4]   V←⌊0.5+⌈÷2\n" +
		"[5]   R←(⍴M)↑(⍴M)↓V\n" +
		"[6]   →(R≡⍬)/0\n" +
		"[7]   R←∊⊂R\n" +
		"[8]   R←R⍪⍉M\n" +
		"    ∇\n"
	data := sftest.Container(sftest.FunctionSubObject(src))
	fns := HeaderScanner{}.Scan(data)

	if len(fns) != 1 {
		t.Fatalf("got %d functions, want 1", len(fns))
	}
	text := fns[0].Text
	for _, sym := range []string{"3 4⍴⍳12", "⌊", "⌈", "÷", "↑", "↓", "⊂", "⍉", "⍪", "⍬", "≡", "∊"} {
		if !strings.Contains(text, sym) {
			t.Errorf("decoded text missing %q", sym)
		}
	}
}

func TestHeaderScanner_HighMinus(t *testing.T) {
	data := sftest.Container(sftest.FunctionSubObject("    ∇ R←LASTROW M\n[1]   R←(¯1↑⍴M)↑M\n    ∇\n"))
	fns := HeaderScanner{}.Scan(data)
	if len(fns) != 1 || !strings.Contains(fns[0].Text, "¯1") {
		t.Fatalf("high minus not decoded: %+v", fns)
	}
}

func TestHeaderScanner_EmptyAndNoise(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty buffer", nil},
		{"data only", sftest.Container(sftest.DataSubObject(52))},
		{"marker at buffer start", append([]byte{0x20, 0x20, 0x20, 0x20, encoding.DelByte, 0x20}, make([]byte, 100)...)},
		{"truncated header", append(make([]byte, 15), 0x20, 0x20, 0x20, 0x20, encoding.DelByte, 0x20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fns := HeaderScanner{}.Scan(tt.data)
			if len(fns) != 0 {
				t.Errorf("got %d functions, want 0", len(fns))
			}
		})
	}
}

func TestHeaderScanner_TruncatedTrailingRecord(t *testing.T) {
	data := sftest.Container(sftest.FunctionSubObject(simpleSrc))
	cut := data[:len(data)-10] // chop mid-text

	fns := HeaderScanner{}.Scan(cut)
	if len(fns) != 1 {
		t.Fatalf("got %d functions, want 1 partial record", len(fns))
	}
	if fns[0].Name != "ADD" {
		t.Errorf("Name = %q, want ADD", fns[0].Name)
	}
	if !strings.Contains(fns[0].Text, "∇ R←ADD") {
		t.Errorf("partial text missing header: %q", fns[0].Text)
	}
}

func TestHeaderScanner_UnparseableHeaderStillEmitted(t *testing.T) {
	// Header line is just the del marker, no name tokens at all.
	data := sftest.Container(sftest.FunctionSubObject("    ∇ \n[1]   X←1\n    ∇\n"))
	fns := HeaderScanner{}.Scan(data)

	if len(fns) != 1 {
		t.Fatalf("got %d functions, want 1", len(fns))
	}
	if fns[0].Name != "_unnamed_0" {
		t.Errorf("Name = %q, want _unnamed_0", fns[0].Name)
	}
	if fns[0].Arity != ArityUnknown {
		t.Errorf("Arity = %v, want ArityUnknown", fns[0].Arity)
	}
}

func TestScan_RoundTrip(t *testing.T) {
	data := sftest.Container(
		sftest.FunctionSubObject(simpleSrc),
		sftest.FunctionSubObject("    ∇ R←IOTA N\n[1]   R←⍳N\n    ∇\n"),
	)
	for _, scanner := range []Scanner{HeaderScanner{}, DelScanner{}} {
		for _, fn := range scanner.Scan(data) {
			if encoding.Decode(fn.Raw) != fn.Text {
				t.Errorf("%T: Decode(Raw) != Text for %q", scanner, fn.Name)
			}
		}
	}
}

func TestDelScanner_BoundaryPerMarker(t *testing.T) {
	rec1 := sftest.EncodeAPL("∇ FOO\n[1]   A←1\n")
	rec2 := sftest.EncodeAPL("∇ BAR\n[1]   B←2\n")
	data := append(append([]byte{}, rec1...), rec2...)

	fns := DelScanner{}.Scan(data)
	if len(fns) != 2 {
		t.Fatalf("got %d functions, want 2", len(fns))
	}
	if fns[0].Name != "FOO" || fns[1].Name != "BAR" {
		t.Errorf("names = %q, %q; want FOO, BAR", fns[0].Name, fns[1].Name)
	}
	if fns[0].Offset != 0 {
		t.Errorf("first offset = %d, want 0", fns[0].Offset)
	}
	if fns[1].Offset != len(rec1) {
		t.Errorf("second offset = %d, want %d", fns[1].Offset, len(rec1))
	}
	if fns[0].Arity != Niladic || fns[1].Arity != Niladic {
		t.Errorf("arities = %v, %v; want Niladic", fns[0].Arity, fns[1].Arity)
	}
}

func TestDelScanner_AscendingOffsets(t *testing.T) {
	data := append([]byte{}, sftest.EncodeAPL("∇ A\nx\n")...)
	data = append(data, sftest.EncodeAPL("∇ B\ny\n")...)
	data = append(data, sftest.EncodeAPL("∇ C\nz\n")...)

	fns := DelScanner{}.Scan(data)
	if len(fns) != 3 {
		t.Fatalf("got %d functions, want 3 (one per marker)", len(fns))
	}
	for i := 1; i < len(fns); i++ {
		if fns[i].Offset <= fns[i-1].Offset {
			t.Errorf("offsets not strictly ascending: %v", []int{fns[0].Offset, fns[1].Offset, fns[2].Offset})
		}
	}
}

func TestDelScanner_QuotedDelIsNotBoundary(t *testing.T) {
	// The del glyph cited inside a character literal must not split the
	// record.
	data := sftest.EncodeAPL("∇ SHOW\n[1]   X←'∇'\n")
	fns := DelScanner{}.Scan(data)
	if len(fns) != 1 {
		t.Fatalf("got %d functions, want 1", len(fns))
	}
	if !strings.Contains(fns[0].Text, "'∇'") {
		t.Errorf("quoted del lost from text: %q", fns[0].Text)
	}
}

func TestDelScanner_NoMarkers(t *testing.T) {
	fns := DelScanner{}.Scan([]byte("plain ascii, no markers"))
	if len(fns) != 0 {
		t.Errorf("got %d functions, want 0", len(fns))
	}
}
