package textbuf

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dshills/textbuf/codec"
)

func collectForward[U Unit](v *RuneView[U]) []rune {
	var out []rune
	for {
		r, ok := v.Next()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}

func collectBackward[U Unit](v *RuneView[U]) []rune {
	var out []rune
	for {
		r, ok := v.Back()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}

func TestUnitsRoundTrip(t *testing.T) {
	t.Run("8-bit", func(t *testing.T) {
		in := []uint8("any bytes \xff\xfe at all")
		v := FromUnits[uint8](in).Units()
		if !slices.Equal(v.Slice(), in) {
			t.Error("code-unit view must reproduce the input exactly")
		}
	})

	t.Run("16-bit", func(t *testing.T) {
		in := utf16.Encode([]rune("surrogate 😀 pair"))
		v := FromUnits[uint16](in).Units()
		if !slices.Equal(v.Slice(), in) {
			t.Error("code-unit view must reproduce the input exactly")
		}
	})

	t.Run("32-bit", func(t *testing.T) {
		in := []int32("code points 🌍")
		v := FromUnits[int32](in).Units()
		if !slices.Equal(v.Slice(), in) {
			t.Error("code-unit view must reproduce the input exactly")
		}
	})
}

func TestUnitsRandomAccess(t *testing.T) {
	b := FromUnits[uint8]([]uint8("abcdef"))
	v := b.Units()

	if v.Len() != 6 {
		t.Fatalf("view length = %d, want 6", v.Len())
	}
	if v.At(0) != 'a' || v.At(5) != 'f' {
		t.Error("random access returned wrong units")
	}

	var viaSeq []uint8
	for u := range v.Seq() {
		viaSeq = append(viaSeq, u)
	}
	if string(viaSeq) != "abcdef" {
		t.Errorf("Seq iteration = %q", viaSeq)
	}
}

func TestViewSurvivesReallocation(t *testing.T) {
	b := FromUnits[uint8]([]uint8(strings.Repeat("seed", 10))) // large
	if b.IsInline() {
		t.Fatal("setup: expected a heap-backed buffer")
	}

	v := b.Units()
	rev := v.Revision()

	// Force at least one reallocation on the original.
	b.AppendUnits([]uint8(strings.Repeat("growth", 200))...)

	if v.Len() != 40 {
		t.Errorf("view length changed to %d after reallocation", v.Len())
	}
	if got := string(v.Slice()); got != strings.Repeat("seed", 10) {
		t.Errorf("view contents changed after reallocation: %q", got)
	}
	if b.Revision() == rev {
		t.Error("buffer revision should have advanced past the view's")
	}
}

func TestViewSurvivesInlineAppend(t *testing.T) {
	b := FromUnits[uint8]([]uint8("abc"))
	v := b.Units()

	b.AppendUnit('d') // still inline; view copied the inline region

	if v.Len() != 3 || string(v.Slice()) != "abc" {
		t.Errorf("inline view observed a later append: %q", string(v.Slice()))
	}
}

func TestRunesForward(t *testing.T) {
	b, err := FromString[uint8]("aé€😀")
	if err != nil {
		t.Fatal(err)
	}

	got := collectForward(b.Runes())
	want := []rune{'a', 'é', '€', '😀'}
	if !slices.Equal(got, want) {
		t.Errorf("forward runes = %q, want %q", got, want)
	}
}

func TestRunesBidirectional(t *testing.T) {
	inputs := []string{
		"plain ascii",
		"blandet tekst på dansk",
		"multi 😀 unit 🌍 points 𝄞",
		"é€😀",
	}

	for _, s := range inputs {
		b8, err := FromString[uint8](s)
		if err != nil {
			t.Fatal(err)
		}
		fwd := collectForward(b8.Runes())
		bwd := collectBackward(b8.Runes())
		slices.Reverse(bwd)
		if !slices.Equal(fwd, bwd) {
			t.Errorf("8-bit %q: backward traversal is not the reverse of forward", s)
		}

		b16, err := FromString[uint16](s)
		if err != nil {
			t.Fatal(err)
		}
		fwd = collectForward(b16.Runes())
		bwd = collectBackward(b16.Runes())
		slices.Reverse(bwd)
		if !slices.Equal(fwd, bwd) {
			t.Errorf("16-bit %q: backward traversal is not the reverse of forward", s)
		}
	}
}

// Construction from a 16-bit sequence: the code-point view must yield
// the six code points in order, and in exact reverse when walked from
// the back.
func TestRunesScenarioDiacritics(t *testing.T) {
	const text = "øōôòœõ"
	units := utf16.Encode([]rune(text))
	b := FromUnits[uint16](units)

	want := []rune(text)
	if len(want) != 6 {
		t.Fatalf("setup: expected 6 code points, got %d", len(want))
	}

	got := collectForward(b.Runes())
	if !slices.Equal(got, want) {
		t.Errorf("forward = %q, want %q", got, want)
	}

	back := collectBackward(b.Runes())
	wantRev := slices.Clone(want)
	slices.Reverse(wantRev)
	if !slices.Equal(back, wantRev) {
		t.Errorf("backward = %q, want %q", back, wantRev)
	}
}

func TestRunesMixedFrontAndBack(t *testing.T) {
	b, err := FromString[uint8]("a😀b")
	if err != nil {
		t.Fatal(err)
	}
	v := b.Runes()

	if r, _ := v.Next(); r != 'a' {
		t.Errorf("front = %q, want a", r)
	}
	if r, _ := v.Back(); r != 'b' {
		t.Errorf("back = %q, want b", r)
	}
	if r, _ := v.Next(); r != '😀' {
		t.Errorf("middle = %q, want the emoji", r)
	}
	if !v.IsEmpty() {
		t.Error("view should be exhausted")
	}
	if _, ok := v.Next(); ok {
		t.Error("Next on an exhausted view must return false")
	}
	if _, ok := v.Back(); ok {
		t.Error("Back on an exhausted view must return false")
	}
}

func TestRunesSaveIndependentCursor(t *testing.T) {
	b, err := FromString[uint8]("xyz")
	if err != nil {
		t.Fatal(err)
	}

	v := b.Runes()
	v.Next()

	saved := v.Save()
	v.Next()
	v.Next()

	if !v.IsEmpty() {
		t.Error("original cursor should be exhausted")
	}
	rest := collectForward(saved)
	if string(rest) != "yz" {
		t.Errorf("saved cursor yielded %q, want yz", string(rest))
	}
}

func TestRunesMalformedYieldsReplacement(t *testing.T) {
	b := FromUnits[uint8]([]uint8{'a', 0xff, 'b'})

	got := collectForward(b.Runes())
	want := []rune{'a', utf8.RuneError, 'b'}
	if !slices.Equal(got, want) {
		t.Errorf("runes = %q, want %q", got, want)
	}
}

func TestBidirectionalProperty(t *testing.T) {
	f := func(raw []byte) bool {
		b := FromUnits[uint8](raw)
		fwd := collectForward(b.Runes())
		bwd := collectBackward(b.Runes())
		slices.Reverse(bwd)
		return slices.Equal(fwd, bwd)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestBytesViewFromWide(t *testing.T) {
	const text = "smörgåsbord 😀"
	b, err := FromString[uint16](text)
	if err != nil {
		t.Fatal(err)
	}

	got, err := b.Bytes().Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if string(got) != text {
		t.Errorf("8-bit view = %q, want %q", got, text)
	}
}

func TestBytesViewNativePassthrough(t *testing.T) {
	// Same-width traversal never validates: malformed bytes pass
	// through untouched.
	raw := []uint8{0xff, 0xfe, 'o', 'k'}
	v := FromUnits[uint8](raw).Bytes()

	got, err := v.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if !slices.Equal(got, raw) {
		t.Errorf("passthrough = %#v, want %#v", got, raw)
	}
}

func TestBytesViewStopsOnMalformed(t *testing.T) {
	v := FromUnits[uint16]([]uint16{'A', 0xD800, 'B'}).Bytes()

	c, ok := v.Next()
	if !ok || c != 'A' {
		t.Fatalf("first unit = (%q, %v), want ('A', true)", c, ok)
	}
	if _, ok := v.Next(); ok {
		t.Fatal("traversal should stop at the unpaired surrogate")
	}

	err := v.Err()
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("Err() = %v, want *EncodingError", err)
	}
	if encErr.Offset != 1 {
		t.Errorf("EncodingError.Offset = %d, want 1", encErr.Offset)
	}
	if !errors.Is(err, codec.ErrMalformed) {
		t.Error("error should unwrap to codec.ErrMalformed")
	}
}

func TestUTF16ViewFromNarrow(t *testing.T) {
	const text = "dæmi 𝄞"
	b, err := FromString[uint8](text)
	if err != nil {
		t.Fatal(err)
	}

	got, err := b.UTF16().Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if !slices.Equal(got, utf16.Encode([]rune(text))) {
		t.Errorf("16-bit view mismatch: %#v", got)
	}
}

// Four code points that each need a surrogate pair must come out as
// exactly eight 16-bit units.
func TestUTF16ViewScenarioSurrogatePairs(t *testing.T) {
	runes := []rune{0x1D11E, 0x1F600, 0x1F30D, 0x10348}
	b, err := FromRunes[int32](runes)
	if err != nil {
		t.Fatal(err)
	}

	got, err := b.UTF16().Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("unit count = %d, want 8", len(got))
	}
	if !slices.Equal(got, utf16.Encode(runes)) {
		t.Errorf("units = %#v, want the surrogate-pair encoding", got)
	}
}

func TestUTF16ViewNativePassthrough(t *testing.T) {
	// A lone surrogate in native 16-bit contents is passed through;
	// only cross-width transcoding validates.
	raw := []uint16{'x', 0xDC00, 'y'}
	got, err := FromUnits[uint16](raw).UTF16().Collect()

	if err != nil {
		t.Fatalf("same-width traversal reported error: %v", err)
	}
	if !slices.Equal(got, raw) {
		t.Errorf("passthrough = %#v, want %#v", got, raw)
	}
}

func TestTranscodingViewSave(t *testing.T) {
	b, err := FromString[uint16]("abcd")
	if err != nil {
		t.Fatal(err)
	}

	v := b.Bytes()
	v.Next()
	saved := v.Save()

	rest1, err := v.Collect()
	if err != nil {
		t.Fatal(err)
	}
	rest2, err := saved.Collect()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(rest1, rest2) {
		t.Errorf("saved cursor diverged: %q vs %q", rest1, rest2)
	}
	if string(rest1) != "bcd" {
		t.Errorf("remaining = %q, want bcd", rest1)
	}
}

func TestViewSeqEarlyBreak(t *testing.T) {
	b, err := FromString[uint8]("abcdef")
	if err != nil {
		t.Fatal(err)
	}

	v := b.Runes()
	n := 0
	for range v.Seq() {
		n++
		if n == 2 {
			break
		}
	}

	// Seq must not consume the view it was taken from.
	if got := collectForward(v); string(got) != "abcdef" {
		t.Errorf("Seq consumed the view: remaining %q", string(got))
	}
}
