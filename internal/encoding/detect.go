// Package encoding normalises uploaded text files to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sampleSize is how much of the input is inspected before decoding starts.
const sampleSize = 4096

// Charset names an input encoding this package knows how to decode.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF8BOM     Charset = "UTF-8-BOM"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88599    Charset = "ISO-8859-9"
)

var boms = []struct {
	prefix  []byte
	charset Charset
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8BOM},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

// Detect guesses the charset of a sample. A byte order mark wins, then valid UTF-8,
// then chardet's best guess. Unknown input is treated as Windows-1252.
func Detect(sample []byte) Charset {
	for _, bom := range boms {
		if bytes.HasPrefix(sample, bom.prefix) {
			return bom.charset
		}
	}

	if utf8.Valid(sample) {
		return UTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return Windows1252
	}

	switch result.Charset {
	case "UTF-8":
		return UTF8
	case "ISO-8859-9":
		return ISO88599
	default:
		return Windows1252
	}
}

// NewUTF8Reader wraps r so reads yield UTF-8 regardless of the source charset.
// A UTF-8 byte order mark is dropped.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sampleSize)

	sample, err := br.Peek(sampleSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	var dec encoding.Encoding

	if len(sample) == sampleSize {
		sample = trimPartialRune(sample)
	}

	switch Detect(sample) {
	case UTF8:
		return br, nil
	case UTF8BOM:
		_, _ = br.Discard(3)
		return br, nil
	case UTF16LE:
		dec = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		dec = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case ISO88599:
		dec = charmap.ISO8859_9
	default:
		dec = charmap.Windows1252
	}

	return transform.NewReader(br, dec.NewDecoder()), nil
}

// trimPartialRune drops a multi-byte sequence cut off by the end of a full sample window.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}

			break
		}
	}

	return b
}
