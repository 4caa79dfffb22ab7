package textbuf

import (
	"iter"
	"unicode/utf8"

	"github.com/dshills/textbuf/codec"
)

// AppendUnit appends one native-width code unit and returns the buffer
// to support chained appends. The inline fast path is a single store
// and a length-byte increment; a full inline buffer is promoted first,
// and a full large buffer is extended.
func (b *Buffer[U]) AppendUnit(u U) *Buffer[U] {
	if !b.isLarge() {
		k := int(b.lenb & countMask)
		if k < inlineCap[U]() {
			b.inlineSpan()[k] = u
			b.lenb++
			b.touch()
			return b
		}
		b.promote(k + 1)
	} else if len(b.heap) == cap(b.heap) {
		b.extend(1)
	}
	b.heap = b.heap[:len(b.heap)+1]
	b.heap[len(b.heap)-1] = u
	b.touch()
	return b
}

// appendRaw writes units into already-reserved space without stamping a
// revision. Callers must have called ensure for at least len(us).
func (b *Buffer[U]) appendRaw(us []U) {
	if b.isLarge() {
		b.heap = append(b.heap, us...)
		return
	}
	k := int(b.lenb & countMask)
	copy(b.inlineSpan()[k:], us)
	b.lenb += uint8(len(us))
}

// AppendUnits appends a native-width span, reserving the full required
// capacity in one step so the append triggers at most one promotion or
// extension.
func (b *Buffer[U]) AppendUnits(us ...U) *Buffer[U] {
	if len(us) == 0 {
		return b
	}
	b.ensure(len(us))
	b.appendRaw(us)
	b.touch()
	return b
}

// AppendRune transcodes one code point into 1..4 native units and
// appends them. Values that are not Unicode scalar values (surrogate
// halves, values past U+10FFFF) are rejected with an *EncodingError and
// the buffer is left unchanged; no replacement character is ever
// substituted on append.
func (b *Buffer[U]) AppendRune(r rune) error {
	var scratch [utf8.UTFMax]U
	n, err := codec.EncodeRune(scratch[:], r)
	if err != nil {
		return &EncodingError{Rune: r, Offset: -1, Err: err}
	}
	b.AppendUnits(scratch[:n]...)
	return nil
}

// AppendRunes appends a code-point sequence. The whole sequence is
// validated and measured before anything is written, so a rejected code
// point leaves the buffer untouched and the accepted case grows
// capacity exactly once.
func (b *Buffer[U]) AppendRunes(rs []rune) error {
	need := 0
	for _, r := range rs {
		n, err := codec.RuneLen[U](r)
		if err != nil {
			return &EncodingError{Rune: r, Offset: -1, Err: err}
		}
		need = checkedTotal(need, n)
	}
	if need == 0 {
		return nil
	}
	b.ensure(need)
	for _, r := range rs {
		var scratch [utf8.UTFMax]U
		n, _ := codec.EncodeRune(scratch[:], r)
		b.appendRaw(scratch[:n])
	}
	b.touch()
	return nil
}

// AppendString appends the text of s. For 8-bit buffers the bytes are
// bulk-copied verbatim, sharing the native width exactly; for wider
// units each code point is transcoded, and malformed UTF-8 in s is
// rejected with an *EncodingError before anything is written.
func (b *Buffer[U]) AppendString(s string) error {
	if len(s) == 0 {
		return nil
	}
	if bb, ok := any(b).(*Buffer[uint8]); ok {
		bb.ensure(len(s))
		if bb.isLarge() {
			bb.heap = append(bb.heap, s...)
		} else {
			k := int(bb.lenb & countMask)
			copy(bb.inlineSpan()[k:], s)
			bb.lenb += uint8(len(s))
		}
		bb.touch()
		return nil
	}

	need := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return &EncodingError{Rune: utf8.RuneError, Offset: i, Err: codec.ErrMalformed}
		}
		n, err := codec.RuneLen[U](r)
		if err != nil {
			return &EncodingError{Rune: r, Offset: i, Err: err}
		}
		need = checkedTotal(need, n)
		i += size
	}
	b.ensure(need)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		var scratch [utf8.UTFMax]U
		n, _ := codec.EncodeRune(scratch[:], r)
		b.appendRaw(scratch[:n])
		i += size
	}
	b.touch()
	return nil
}

// AppendSeq appends a finite sequence of another supported width to b.
// When source and target widths match the span is bulk-copied;
// otherwise each code point is decoded from the source width and
// re-encoded at the target width. The sequence is validated and
// measured up front, so failure leaves b unchanged and success grows
// capacity at most once.
func AppendSeq[U, V Unit](b *Buffer[U], src []V) error {
	if same, ok := any(src).([]U); ok {
		b.AppendUnits(same...)
		return nil
	}
	need := 0
	for i := 0; i < len(src); {
		r, size, err := codec.DecodeRune(src[i:])
		if err != nil {
			return &EncodingError{Rune: r, Offset: i, Err: err}
		}
		n, err := codec.RuneLen[U](r)
		if err != nil {
			return &EncodingError{Rune: r, Offset: i, Err: err}
		}
		need = checkedTotal(need, n)
		i += size
	}
	if need == 0 {
		return nil
	}
	b.ensure(need)
	for i := 0; i < len(src); {
		r, size, _ := codec.DecodeRune(src[i:])
		var scratch [utf8.UTFMax]U
		n, _ := codec.EncodeRune(scratch[:], r)
		b.appendRaw(scratch[:n])
		i += size
	}
	b.touch()
	return nil
}

// AppendRuneSeq appends code points from a sequence whose length is not
// known up front. Capacity is extended speculatively by a small chunk
// whenever headroom runs low, re-extending as needed. Unlike the
// slice-based appends, a mid-sequence encoding failure leaves the code
// points consumed before it in the buffer.
func (b *Buffer[U]) AppendRuneSeq(seq iter.Seq[rune]) error {
	maxUnits := codec.MaxUnits[U]()
	for r := range seq {
		if b.Cap()-b.Len() < maxUnits {
			b.ensure(growChunk * maxUnits)
		}
		var scratch [utf8.UTFMax]U
		n, err := codec.EncodeRune(scratch[:], r)
		if err != nil {
			b.touch()
			return &EncodingError{Rune: r, Offset: -1, Err: err}
		}
		b.appendRaw(scratch[:n])
	}
	b.touch()
	return nil
}

// SetUnits replaces the contents with a copy of the native-width span.
func (b *Buffer[U]) SetUnits(us []U) {
	b.Reset()
	b.AppendUnits(us...)
}

// SetString replaces the contents with the text of s.
func (b *Buffer[U]) SetString(s string) error {
	b.Reset()
	return b.AppendString(s)
}

// Sink-style put operations. These are append under io-flavored
// signatures so a Buffer can stand in for generic stream consumers.

// Write appends p interpreted as UTF-8 text and implements io.Writer.
// For 8-bit buffers the bytes are copied verbatim.
func (b *Buffer[U]) Write(p []byte) (int, error) {
	if us, ok := any(p).([]U); ok {
		b.AppendUnits(us...)
		return len(p), nil
	}
	if err := b.AppendString(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString appends the text of s and implements io.StringWriter.
func (b *Buffer[U]) WriteString(s string) (int, error) {
	if err := b.AppendString(s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// WriteRune appends one code point and returns the number of native
// units written.
func (b *Buffer[U]) WriteRune(r rune) (int, error) {
	n, err := codec.RuneLen[U](r)
	if err != nil {
		return 0, &EncodingError{Rune: r, Offset: -1, Err: err}
	}
	if err := b.AppendRune(r); err != nil {
		return 0, err
	}
	return n, nil
}
