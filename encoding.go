package textbuf

import (
	"fmt"

	"golang.org/x/text/encoding"
)

// AppendEncoded decodes data with the given character encoding and
// appends the resulting text, transcoding to the buffer's width. The
// input is decoded in full before anything is appended, so a decoding
// failure leaves the buffer unchanged.
func (b *Buffer[U]) AppendEncoded(data []byte, enc encoding.Encoding) error {
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return fmt.Errorf("textbuf: decode input: %w", err)
	}
	return b.AppendString(string(decoded))
}

// FromEncoded creates a buffer from a byte stream in the given
// character encoding (UTF-16LE/BE, UTF-32, or any other
// golang.org/x/text encoding).
func FromEncoded[U Unit](data []byte, enc encoding.Encoding, opts ...Option[U]) (*Buffer[U], error) {
	b := New[U](opts...)
	if err := b.AppendEncoded(data, enc); err != nil {
		return nil, err
	}
	return b, nil
}
