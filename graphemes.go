package textbuf

import "github.com/rivo/uniseg"

// GraphemeView traverses the buffer's contents one extended grapheme
// cluster at a time.
//
// Experimental: cluster boundaries depend on the Unicode version
// shipped by the segmentation library, and the API may change. The
// contents are transcoded to UTF-8 when the view is created; malformed
// native sequences appear as U+FFFD clusters.
type GraphemeView struct {
	g   *uniseg.Graphemes
	rev Revision
}

// Graphemes returns an experimental grapheme-cluster view over the
// current contents.
func (b *Buffer[U]) Graphemes() *GraphemeView {
	return &GraphemeView{g: uniseg.NewGraphemes(b.String()), rev: b.rev}
}

// Next advances to the next cluster, returning false at the end.
func (v *GraphemeView) Next() bool { return v.g.Next() }

// Str returns the current cluster as a string.
func (v *GraphemeView) Str() string { return v.g.Str() }

// Runes returns the code points of the current cluster.
func (v *GraphemeView) Runes() []rune { return v.g.Runes() }

// Revision returns the buffer revision the view was taken at.
func (v *GraphemeView) Revision() Revision { return v.rev }
