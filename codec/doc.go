// Package codec converts between Unicode code points and code-unit
// sequences of a chosen width (8, 16, or 32 bit).
//
// The package provides exactly two primitives per width: EncodeRune,
// which writes one code point as 1..4 code units, and DecodeRune, a
// forward-only decoder that consumes one code-unit group and yields the
// code point it encodes. Higher-level traversal (bidirectional
// iteration, transcoding streams) is built on top of these by callers.
//
// All three widths share one generic signature; the width is selected
// at compile time through the Unit type parameter, so there is no
// runtime dispatch on width.
package codec
