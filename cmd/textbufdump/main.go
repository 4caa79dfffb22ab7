// Package main implements textbufdump, a small inspection tool that
// loads a file into a text buffer of a chosen code-unit width and
// reports what each view sees.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/dshills/textbuf"
)

type options struct {
	encoding string
	width    int
	path     string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	data, err := readInput(opts.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	enc, err := lookupEncoding(opts.encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	switch opts.width {
	case 8:
		err = report[uint8](data, enc)
	case 16:
		err = report[uint16](data, enc)
	case 32:
		err = report[int32](data, enc)
	default:
		err = fmt.Errorf("unsupported unit width %d (want 8, 16, or 32)", opts.width)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (options, error) {
	var opts options
	flag.StringVar(&opts.encoding, "encoding", "utf8",
		"input encoding: utf8, utf16le, utf16be, utf32le, utf32be")
	flag.IntVar(&opts.width, "width", 8, "buffer code-unit width: 8, 16, or 32")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: textbufdump [flags] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Reads file (or stdin) and prints buffer statistics.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		return opts, fmt.Errorf("at most one input file expected")
	}
	if flag.NArg() == 1 {
		opts.path = flag.Arg(0)
	}
	return opts, nil
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch name {
	case "utf8":
		return unicode.UTF8, nil
	case "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case "utf32le":
		return utf32.UTF32(utf32.LittleEndian, utf32.UseBOM), nil
	case "utf32be":
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM), nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

func report[U textbuf.Unit](data []byte, enc encoding.Encoding) error {
	b, err := textbuf.FromEncoded[U](data, enc)
	if err != nil {
		return err
	}

	rep := "large (heap)"
	if b.IsInline() {
		rep = "small (inline)"
	}

	runes := 0
	for range b.Runes().Seq() {
		runes++
	}

	graphemes := 0
	for g := b.Graphemes(); g.Next(); {
		graphemes++
	}

	utf16Units := 0
	w := b.UTF16()
	for {
		if _, ok := w.Next(); !ok {
			break
		}
		utf16Units++
	}
	if err := w.Err(); err != nil {
		return err
	}

	fmt.Printf("representation: %s\n", rep)
	fmt.Printf("native units:   %d (capacity %d)\n", b.Len(), b.Cap())
	fmt.Printf("utf-16 units:   %d\n", utf16Units)
	fmt.Printf("code points:    %d\n", runes)
	fmt.Printf("graphemes:      %d\n", graphemes)
	return nil
}
