// Package encoding decodes uploaded statements to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffSize is how much of the input is inspected before decoding.
const sniffSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// legacy maps charsets reported by chardet to their decoders. Anything not
// listed falls back to Windows-1252, the usual encoding of spreadsheet exports
// in Western Europe.
var legacy = map[string]xenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
}

// NewUTF8Reader returns a reader yielding r decoded to UTF-8.
//
// A BOM decides first (the UTF-8 BOM is dropped, UTF-16 is decoded). Input
// that is already valid UTF-8 passes through. Otherwise chardet guesses a
// single-byte charset.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(head, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case bytes.HasPrefix(head, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	case utf8.Valid(trimPartialRune(head)):
		return br, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(head)
	if err == nil {
		if result.Charset == "UTF-8" {
			return br, nil
		}

		if e, ok := legacy[result.Charset]; ok {
			return decode(br, e), nil
		}
	}

	return decode(br, charmap.Windows1252), nil
}

func decode(r io.Reader, e xenc.Encoding) io.Reader {
	return transform.NewReader(r, e.NewDecoder())
}

// trimPartialRune drops a multi-byte sequence cut off at the end of a full
// sniff buffer so it does not make valid UTF-8 look invalid.
func trimPartialRune(b []byte) []byte {
	if len(b) < sniffSize {
		return b
	}

	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}

			break
		}
	}

	return b
}
