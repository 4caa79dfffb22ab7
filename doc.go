// Package textbuf provides a resizable text buffer with a small-size
// optimization and explicit-encoding read views.
//
// A Buffer is parametrized by its code-unit width: Buffer8 stores
// UTF-8 bytes, Buffer16 stores UTF-16 units, and Buffer32 stores one
// code point per unit. Short contents (31, 15, or 7 units
// respectively) live inline in the value with no heap allocation;
// longer contents are promoted to a growable heap array. Appending is
// cheap at both ends of the size spectrum: a store and a byte
// increment while inline, amortized array growth once large.
//
// Reading never imposes a decoding policy. The four view accessors
// each pick one explicitly:
//
//	b.Units()  // native code units, random access, no decoding
//	b.Bytes()  // 8-bit units, transcoded on demand
//	b.UTF16()  // 16-bit units, transcoded on demand
//	b.Runes()  // code points, lazy and bidirectional
//
// Views snapshot the buffer's header when created and are immune to
// later appends, reallocations, and resets on the source buffer. They
// are restartable: Save clones the cursor without copying data.
//
// Basic usage:
//
//	b := textbuf.New[uint8]()
//	b.AppendUnit('h').AppendUnit('i')
//	if err := b.AppendString(", world"); err != nil { ... }
//	for r := range b.Runes().Seq() {
//		...
//	}
//
// A Buffer must not be mutated from more than one goroutine; views may
// be read concurrently with further mutation of their source.
package textbuf
