package textbuf

import (
	"errors"
	"fmt"
)

// ErrTooLarge is the panic value used when a capacity computation would
// overflow the int size representation. Growth failures are not locally
// recoverable, so they abort rather than returning a degraded buffer.
var ErrTooLarge = errors.New("textbuf: buffer too large")

// EncodingError reports a transcoding failure: either a code point that
// cannot be encoded at the requested width, or a malformed native-width
// unit sequence found while decoding. It wraps the underlying codec
// error, so errors.Is works against codec.ErrInvalidRune and
// codec.ErrMalformed.
type EncodingError struct {
	Rune   rune  // offending code point; utf8.RuneError when unknown
	Offset int   // unit offset in the source span; -1 on append paths
	Err    error // underlying codec error
}

func (e *EncodingError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("textbuf: transcode failed at unit %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("textbuf: cannot encode %U: %v", e.Rune, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
