package textbuf

// Option is a functional option for configuring a Buffer at
// construction.
type Option[U Unit] func(*Buffer[U])

// WithCapacity reserves room for at least n units up front, avoiding
// incremental growth when the final size is known.
func WithCapacity[U Unit](n int) Option[U] {
	return func(b *Buffer[U]) {
		if n > 0 {
			b.Reserve(n)
		}
	}
}
