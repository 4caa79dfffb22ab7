package textbuf

import (
	"iter"
	"slices"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dshills/textbuf/codec"
)

// Views are ephemeral, read-only traversals bound to a snapshot of the
// buffer taken at creation: the representation tag, the storage span,
// and the length. They are unaffected by later appends, reallocations,
// or resets on the source buffer.

// UnitView is a random-access, fixed-length view over the buffer's
// native code units. No decoding is performed.
type UnitView[U Unit] struct {
	units []U
	rev   Revision
}

// Units returns a code-unit view over the current contents.
func (b *Buffer[U]) Units() UnitView[U] {
	return UnitView[U]{units: b.snapshot(), rev: b.rev}
}

// Len returns the number of units in the view.
func (v UnitView[U]) Len() int { return len(v.units) }

// At returns the unit at index i.
func (v UnitView[U]) At(i int) U { return v.units[i] }

// Slice returns the units as a fresh slice.
func (v UnitView[U]) Slice() []U { return slices.Clone(v.units) }

// Seq iterates the units in order.
func (v UnitView[U]) Seq() iter.Seq[U] { return slices.Values(v.units) }

// Save returns an independent copy of the view. UnitView carries no
// cursor, so this is a plain value copy.
func (v UnitView[U]) Save() UnitView[U] { return v }

// Revision returns the buffer revision the view was taken at.
func (v UnitView[U]) Revision() Revision { return v.rev }

// RuneView is a lazy bidirectional code-point view. Code points are
// decoded only as the view is advanced or retreated, from whichever end
// is moved, by wrapping the forward-only codec primitive. Malformed
// native sequences yield utf8.RuneError and consume one unit.
type RuneView[U Unit] struct {
	units  []U
	lo, hi int
	rev    Revision
}

// Runes returns a code-point view over the current contents.
func (b *Buffer[U]) Runes() *RuneView[U] {
	s := b.snapshot()
	return &RuneView[U]{units: s, hi: len(s), rev: b.rev}
}

// IsEmpty reports whether the view has been fully consumed.
func (v *RuneView[U]) IsEmpty() bool { return v.lo >= v.hi }

// Next decodes and consumes the code point at the front of the view.
func (v *RuneView[U]) Next() (rune, bool) {
	if v.lo >= v.hi {
		return 0, false
	}
	r, size, err := codec.DecodeRune(v.units[v.lo:v.hi])
	if err != nil {
		r = utf8.RuneError
	}
	v.lo += size
	return r, true
}

// Back decodes and consumes the code point at the back of the view. The
// forward primitive is probed from at most MaxUnits start positions
// before the end; the one whose sequence spans exactly to the end is
// the final code point.
func (v *RuneView[U]) Back() (rune, bool) {
	if v.lo >= v.hi {
		return 0, false
	}
	maxUnits := codec.MaxUnits[U]()
	for k := 1; k <= maxUnits && v.hi-k >= v.lo; k++ {
		start := v.hi - k
		r, size, err := codec.DecodeRune(v.units[start:v.hi])
		if err == nil && size == k {
			v.hi = start
			return r, true
		}
	}
	// No well-formed sequence ends here; consume one malformed unit.
	v.hi--
	return utf8.RuneError, true
}

// Save returns an independent cursor over the same snapshot. Only the
// cursor bounds are copied, not the data.
func (v *RuneView[U]) Save() *RuneView[U] {
	c := *v
	return &c
}

// Seq iterates the remaining code points front to back without
// consuming the view.
func (v *RuneView[U]) Seq() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		c := *v
		for {
			r, ok := c.Next()
			if !ok {
				return
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Revision returns the buffer revision the view was taken at.
func (v *RuneView[U]) Revision() Revision { return v.rev }

// ByteView is a forward traversal that decodes the buffer's native
// units into 8-bit units on demand, one code point at a time. When the
// native width is already 8 bits the units pass through untouched; when
// it differs, a malformed native sequence stops the traversal and is
// reported through Err.
type ByteView[U Unit] struct {
	units   []U
	pos     int
	pending [utf8.UTFMax]byte
	pn, pi  int
	err     error
	rev     Revision
}

// Bytes returns an 8-bit transcoding view over the current contents.
func (b *Buffer[U]) Bytes() *ByteView[U] {
	return &ByteView[U]{units: b.snapshot(), rev: b.rev}
}

// Next returns the next 8-bit unit. Once it returns false, Err
// distinguishes end of input from a transcoding failure.
func (v *ByteView[U]) Next() (byte, bool) {
	if v.pi < v.pn {
		c := v.pending[v.pi]
		v.pi++
		return c, true
	}
	if v.err != nil || v.pos >= len(v.units) {
		return 0, false
	}
	if us, ok := any(v.units).([]uint8); ok {
		c := us[v.pos]
		v.pos++
		return c, true
	}
	r, size, err := codec.DecodeRune(v.units[v.pos:])
	if err != nil {
		v.err = &EncodingError{Rune: r, Offset: v.pos, Err: err}
		return 0, false
	}
	v.pos += size
	v.pn = utf8.EncodeRune(v.pending[:], r)
	v.pi = 1
	return v.pending[0], true
}

// Err returns the transcoding error that stopped the view, if any.
func (v *ByteView[U]) Err() error { return v.err }

// Save returns an independent cursor over the same snapshot.
func (v *ByteView[U]) Save() *ByteView[U] {
	c := *v
	return &c
}

// Collect drains the remaining units into a slice.
func (v *ByteView[U]) Collect() ([]byte, error) {
	var out []byte
	for {
		c, ok := v.Next()
		if !ok {
			return out, v.err
		}
		out = append(out, c)
	}
}

// Seq iterates the remaining 8-bit units without consuming the view.
// Iteration stops silently on a transcoding failure; use Next/Err when
// the error matters.
func (v *ByteView[U]) Seq() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		c := *v
		for {
			u, ok := c.Next()
			if !ok {
				return
			}
			if !yield(u) {
				return
			}
		}
	}
}

// Revision returns the buffer revision the view was taken at.
func (v *ByteView[U]) Revision() Revision { return v.rev }

// UTF16View is a forward traversal that decodes the buffer's native
// units into 16-bit units on demand. Same contract as ByteView: native
// 16-bit contents pass through untouched, and malformed input from a
// different native width stops the traversal with an error.
type UTF16View[U Unit] struct {
	units   []U
	pos     int
	pending [2]uint16
	pn, pi  int
	err     error
	rev     Revision
}

// UTF16 returns a 16-bit transcoding view over the current contents.
func (b *Buffer[U]) UTF16() *UTF16View[U] {
	return &UTF16View[U]{units: b.snapshot(), rev: b.rev}
}

// Next returns the next 16-bit unit. Once it returns false, Err
// distinguishes end of input from a transcoding failure.
func (v *UTF16View[U]) Next() (uint16, bool) {
	if v.pi < v.pn {
		c := v.pending[v.pi]
		v.pi++
		return c, true
	}
	if v.err != nil || v.pos >= len(v.units) {
		return 0, false
	}
	if us, ok := any(v.units).([]uint16); ok {
		c := us[v.pos]
		v.pos++
		return c, true
	}
	r, size, err := codec.DecodeRune(v.units[v.pos:])
	if err != nil {
		v.err = &EncodingError{Rune: r, Offset: v.pos, Err: err}
		return 0, false
	}
	v.pos += size
	if r < 0x10000 {
		v.pending[0] = uint16(r)
		v.pn = 1
	} else {
		hi, lo := utf16.EncodeRune(r)
		v.pending[0] = uint16(hi)
		v.pending[1] = uint16(lo)
		v.pn = 2
	}
	v.pi = 1
	return v.pending[0], true
}

// Err returns the transcoding error that stopped the view, if any.
func (v *UTF16View[U]) Err() error { return v.err }

// Save returns an independent cursor over the same snapshot.
func (v *UTF16View[U]) Save() *UTF16View[U] {
	c := *v
	return &c
}

// Collect drains the remaining units into a slice.
func (v *UTF16View[U]) Collect() ([]uint16, error) {
	var out []uint16
	for {
		c, ok := v.Next()
		if !ok {
			return out, v.err
		}
		out = append(out, c)
	}
}

// Seq iterates the remaining 16-bit units without consuming the view.
func (v *UTF16View[U]) Seq() iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		c := *v
		for {
			u, ok := c.Next()
			if !ok {
				return
			}
			if !yield(u) {
				return
			}
		}
	}
}

// Revision returns the buffer revision the view was taken at.
func (v *UTF16View[U]) Revision() Revision { return v.rev }
