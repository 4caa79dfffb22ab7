package textbuf

// Growth tuning.
const (
	// allocAlign rounds first allocations so their byte footprint is a
	// multiple of the allocator's small-size alignment.
	allocAlign = 16

	// growChunk is the speculative headroom, in code points, kept when
	// appending from a sequence whose length is not known up front.
	growChunk = 8
)

const maxInt = int(^uint(0) >> 1)

// checkedTotal returns n+extra, panicking with ErrTooLarge when the sum
// would overflow. Capacity arithmetic must never wrap silently.
func checkedTotal(n, extra int) int {
	if extra < 0 || n > maxInt-extra {
		panic(ErrTooLarge)
	}
	return n + extra
}

// roundCap rounds a unit count up so the byte footprint is a multiple
// of allocAlign.
func roundCap[U Unit](n int) int {
	size := unitSize[U]()
	if n > (maxInt-allocAlign+1)/size {
		panic(ErrTooLarge)
	}
	bytes := (n*size + allocAlign - 1) &^ (allocAlign - 1)
	return bytes / size
}

// Reserve ensures a total capacity of at least n units without changing
// the length. It promotes to the large representation when n exceeds
// the inline capacity, extends the large capacity when n exceeds it,
// and is a no-op otherwise.
func (b *Buffer[U]) Reserve(n int) {
	if n <= b.Cap() {
		return
	}
	if b.isLarge() {
		b.extend(n - len(b.heap))
		return
	}
	b.promote(n)
}

// promote moves inline contents to a freshly allocated array with room
// for at least n units. The new layout is built completely — array,
// contents, length — before the discriminant bit is flipped.
func (b *Buffer[U]) promote(n int) {
	k := int(b.lenb & countMask)
	if n < k {
		n = k
	}
	heap := make([]U, k, roundCap[U](n))
	copy(heap, b.inlineSpan()[:k])
	b.heap = heap
	b.lenb = largeFlag
}

// extend guarantees room to append extra more units to the large
// layout. Go exposes no in-place reallocation, so a short capacity is
// always grown by allocate-and-copy; incremental growth doubles the
// array to keep repeated unit appends amortized.
func (b *Buffer[U]) extend(extra int) {
	n := len(b.heap)
	need := checkedTotal(n, extra)
	if need <= cap(b.heap) {
		return
	}
	target := need
	if n <= maxInt/2 && target < 2*n {
		target = 2 * n
	}
	heap := make([]U, n, roundCap[U](target))
	copy(heap, b.heap)
	b.heap = heap
}

// ensure makes room to append extra units in whichever representation
// is active, promoting when the inline region cannot hold the result.
func (b *Buffer[U]) ensure(extra int) {
	if b.isLarge() {
		b.extend(extra)
		return
	}
	k := int(b.lenb & countMask)
	if checkedTotal(k, extra) <= inlineCap[U]() {
		return
	}
	b.promote(k + extra)
}
