package textbuf

import (
	"slices"
	"sync/atomic"
	"unicode/utf16"
	"unsafe"

	"github.com/dshills/textbuf/codec"
)

// Unit is the set of supported code-unit widths. It mirrors codec.Unit
// so a Buffer instantiation and its codec instantiation always agree.
type Unit = codec.Unit

// Width-specific instantiations. These are aliases, not distinct types:
// the width is fixed at compile time and there is no runtime dispatch.
type (
	Buffer8  = Buffer[uint8]
	Buffer16 = Buffer[uint16]
	Buffer32 = Buffer[int32]
)

const (
	// inlineBytes is the size of the inline storage region. Together
	// with the packed length byte it keeps the small representation at
	// 32 bytes, so a Buffer value stays within one cache line.
	inlineBytes = 31

	largeFlag = 0x80 // high bit of lenb: contents live in heap
	countMask = 0x7f // low bits of lenb: inline unit count
)

// Revision identifies a distinct content state of a Buffer. Every
// mutation stamps a fresh revision; views record the revision of the
// state they snapshot.
type Revision uint64

var revisionCounter uint64

func nextRevision() Revision {
	return Revision(atomic.AddUint64(&revisionCounter, 1))
}

// Buffer is a resizable sequence of code units with a small-size
// optimization: up to inlineBytes/sizeof(U) units are stored inline in
// the value with no heap allocation, and longer contents are promoted
// to a separately allocated array.
//
// The representation is discriminated by a single packed byte: the low
// seven bits hold the inline unit count and the high bit marks the
// heap-backed ("large") layout. The byte is valid to read in both
// layouts; transitions build the new layout completely and flip the bit
// last, so no operation ever observes a half-transitioned buffer.
//
// A Buffer must not be mutated from more than one goroutine. Views
// obtained from it are immutable snapshots and remain valid, with their
// original contents and length, across any later mutation of the
// buffer.
type Buffer[U Unit] struct {
	// inline must stay the first field: the unit span is reinterpreted
	// from its storage and relies on the field being aligned to the
	// struct, whose alignment is at least that of the heap slice.
	inline [inlineBytes]byte
	lenb   uint8
	heap   []U
	rev    Revision
}

// New creates an empty buffer in the inline representation.
func New[U Unit](opts ...Option[U]) *Buffer[U] {
	b := &Buffer[U]{rev: nextRevision()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromUnits creates a buffer holding a copy of the native-width span.
func FromUnits[U Unit](us []U, opts ...Option[U]) *Buffer[U] {
	b := New[U](opts...)
	b.AppendUnits(us...)
	return b
}

// FromString creates a buffer from the text of s, transcoding to the
// buffer's width.
func FromString[U Unit](s string, opts ...Option[U]) (*Buffer[U], error) {
	b := New[U](opts...)
	if err := b.AppendString(s); err != nil {
		return nil, err
	}
	return b, nil
}

// FromRunes creates a buffer from a code-point sequence.
func FromRunes[U Unit](rs []rune, opts ...Option[U]) (*Buffer[U], error) {
	b := New[U](opts...)
	if err := b.AppendRunes(rs); err != nil {
		return nil, err
	}
	return b, nil
}

// FromSeq creates a buffer from a finite sequence of any supported
// width, transcoding when the widths differ.
func FromSeq[U, V Unit](src []V, opts ...Option[U]) (*Buffer[U], error) {
	b := New[U](opts...)
	if err := AppendSeq(b, src); err != nil {
		return nil, err
	}
	return b, nil
}

func unitSize[U Unit]() int  { return codec.UnitSize[U]() }
func inlineCap[U Unit]() int { return inlineBytes / unitSize[U]() }

func (b *Buffer[U]) isLarge() bool { return b.lenb&largeFlag != 0 }

// IsInline reports whether the contents currently live in the inline
// region rather than a heap allocation.
func (b *Buffer[U]) IsInline() bool { return !b.isLarge() }

// inlineSpan reinterprets the inline region as a full-capacity span of
// native units.
func (b *Buffer[U]) inlineSpan() []U {
	return unsafe.Slice((*U)(unsafe.Pointer(&b.inline[0])), inlineCap[U]())
}

// Len returns the current length in units (elements, not bytes).
func (b *Buffer[U]) Len() int {
	if b.isLarge() {
		return len(b.heap)
	}
	return int(b.lenb & countMask)
}

// Cap returns the current capacity in units. For the inline
// representation this is the fixed inline capacity.
func (b *Buffer[U]) Cap() int {
	if b.isLarge() {
		return cap(b.heap)
	}
	return inlineCap[U]()
}

// IsEmpty reports whether the buffer holds no units.
func (b *Buffer[U]) IsEmpty() bool { return b.Len() == 0 }

// span returns the live span of stored units. Callers must not retain
// it across mutations; views use snapshot instead.
func (b *Buffer[U]) span() []U {
	if b.isLarge() {
		return b.heap
	}
	return b.inlineSpan()[:int(b.lenb&countMask)]
}

// snapshot returns the contents as a span detached from future
// mutation. Heap contents are aliased (with their current length
// captured); inline contents are copied, which is what copying the
// 32-byte header amounts to.
func (b *Buffer[U]) snapshot() []U {
	if b.isLarge() {
		return b.heap[:len(b.heap):len(b.heap)]
	}
	n := int(b.lenb & countMask)
	s := make([]U, n)
	copy(s, b.inlineSpan()[:n])
	return s
}

// Revision returns the buffer's current content revision.
func (b *Buffer[U]) Revision() Revision { return b.rev }

func (b *Buffer[U]) touch() { b.rev = nextRevision() }

// Reset truncates the buffer to zero length and returns it to the
// inline representation. The inline region is zeroed. A large backing
// array is abandoned to the garbage collector rather than reused, so
// views snapshotted before the call keep reading the old storage.
func (b *Buffer[U]) Reset() {
	b.inline = [inlineBytes]byte{}
	b.lenb = 0
	b.heap = nil
	b.touch()
}

// EqualUnits reports whether the contents equal the given native-width
// sequence. Cross-width comparison is deliberately not provided; use an
// explicit view to compare at another width.
func (b *Buffer[U]) EqualUnits(us []U) bool {
	return slices.Equal(b.span(), us)
}

// Equal reports whether two buffers of the same width hold identical
// unit sequences.
func (b *Buffer[U]) Equal(other *Buffer[U]) bool {
	return slices.Equal(b.span(), other.span())
}

// String returns the contents transcoded to a Go string. Malformed
// native sequences are replaced with U+FFFD; use the views for
// error-reporting traversal.
func (b *Buffer[U]) String() string {
	switch s := any(b.span()).(type) {
	case []uint8:
		return string(s)
	case []uint16:
		return string(utf16.Decode(s))
	case []int32:
		return string(s)
	}
	return ""
}
