package textbuf

import (
	"errors"
	"testing"
)

func TestReserveInlineNoop(t *testing.T) {
	b := New[uint8]()
	b.Reserve(10)

	if !b.IsInline() {
		t.Error("reserving within the inline capacity must not promote")
	}
	if b.Cap() != 31 {
		t.Errorf("capacity = %d, want 31", b.Cap())
	}
}

func TestReservePromotes(t *testing.T) {
	b := FromUnits[uint8]([]uint8("abc"))
	b.Reserve(64)

	if b.IsInline() {
		t.Error("reserving past the inline capacity must promote")
	}
	if b.Cap() < 64 {
		t.Errorf("capacity = %d, want at least 64", b.Cap())
	}
	if !b.EqualUnits([]uint8("abc")) {
		t.Errorf("promotion lost contents: %q", b.String())
	}
}

func TestReserveThenFillNoReallocation(t *testing.T) {
	const n = 100
	b := New[uint8]()
	b.Reserve(n)

	capAfterReserve := b.Cap()
	for i := 0; i < n; i++ {
		b.AppendUnit('x')
	}

	if b.Cap() != capAfterReserve {
		t.Errorf("capacity changed from %d to %d while filling reserved space",
			capAfterReserve, b.Cap())
	}
	if b.Len() != n {
		t.Errorf("length = %d, want %d", b.Len(), n)
	}
}

func TestLargeCapacityOnlyGrows(t *testing.T) {
	b := New[uint16]()
	b.Reserve(20)

	prev := b.Cap()
	for i := 0; i < 500; i++ {
		b.AppendUnit(uint16(i))
		if b.Cap() < prev {
			t.Fatalf("capacity shrank from %d to %d", prev, b.Cap())
		}
		prev = b.Cap()
	}
}

func TestRoundCapAlignment(t *testing.T) {
	tests := []struct {
		n    int
		size int
		want int
	}{
		{1, 1, 16},
		{16, 1, 16},
		{17, 1, 32},
		{33, 1, 48},
		{1, 2, 8},
		{17, 2, 24},
		{1, 4, 4},
		{9, 4, 12},
	}

	for _, tt := range tests {
		var got int
		switch tt.size {
		case 1:
			got = roundCap[uint8](tt.n)
		case 2:
			got = roundCap[uint16](tt.n)
		case 4:
			got = roundCap[int32](tt.n)
		}
		if got != tt.want {
			t.Errorf("roundCap(%d units of %d bytes) = %d, want %d",
				tt.n, tt.size, got, tt.want)
		}
		if got*tt.size%allocAlign != 0 {
			t.Errorf("roundCap(%d, %d) byte footprint %d not aligned",
				tt.n, tt.size, got*tt.size)
		}
	}
}

func TestCapacityOverflowPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic on capacity overflow")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrTooLarge) {
			t.Fatalf("panic value = %v, want ErrTooLarge", r)
		}
	}()

	checkedTotal(maxInt, 1)
}

func TestRoundCapOverflowPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic on capacity overflow")
		}
	}()

	roundCap[int32](maxInt / 2)
}

func TestPromoteCommitsLayoutBeforeFlag(t *testing.T) {
	// After any promotion the large fields must be fully consistent:
	// length preserved, capacity at least length.
	b := New[uint16]()
	for i := 0; i < 15; i++ {
		b.AppendUnit(uint16('a' + i))
	}
	b.AppendUnit(uint16('p')) // triggers promotion

	if b.IsInline() {
		t.Fatal("expected large representation")
	}
	if b.Len() != 16 {
		t.Errorf("length = %d, want 16", b.Len())
	}
	if b.Cap() < b.Len() {
		t.Errorf("capacity %d below length %d after promotion", b.Cap(), b.Len())
	}
}
