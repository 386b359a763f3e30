// Package encoding normalizes uploaded export files to UTF-8. Bank and
// spreadsheet exports arrive in whatever code page the exporting tool used.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	CharsetUTF8        = "UTF-8"
	CharsetUTF16LE     = "UTF-16LE"
	CharsetUTF16BE     = "UTF-16BE"
	CharsetWindows1252 = "windows-1252"
	CharsetISO88599    = "ISO-8859-9"
)

const sniffSize = 4096

var boms = []struct {
	prefix  []byte
	charset string
}{
	{[]byte{0xEF, 0xBB, 0xBF}, CharsetUTF8},
	{[]byte{0xFF, 0xFE}, CharsetUTF16LE},
	{[]byte{0xFE, 0xFF}, CharsetUTF16BE},
}

var decoders = map[string]textenc.Encoding{
	CharsetUTF16LE:     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	CharsetUTF16BE:     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	CharsetWindows1252: charmap.Windows1252,
	"ISO-8859-1":       charmap.Windows1252,
	CharsetISO88599:    charmap.ISO8859_9,
}

// Decode returns a UTF-8 reader over r and the name of the charset it was
// read as. A UTF-8 BOM is stripped. Input that is neither marked nor valid
// UTF-8 goes through chardet and falls back to windows-1252.
func Decode(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(head, bom.prefix) {
			continue
		}

		if bom.charset == CharsetUTF8 {
			_, _ = br.Discard(len(bom.prefix))
			return br, CharsetUTF8, nil
		}

		return transform.NewReader(br, decoders[bom.charset].NewDecoder()), bom.charset, nil
	}

	if validUTF8(head, len(head) == sniffSize) {
		return br, CharsetUTF8, nil
	}

	charset := CharsetWindows1252

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if result.Charset == CharsetUTF8 {
			return br, CharsetUTF8, nil
		}

		if _, ok := decoders[result.Charset]; ok {
			charset = result.Charset
		}
	}

	return transform.NewReader(br, decoders[charset].NewDecoder()), charset, nil
}

// validUTF8 reports whether b is UTF-8. A truncated sample may end mid-rune,
// so up to utf8.UTFMax-1 trailing bytes are tolerated.
func validUTF8(b []byte, truncated bool) bool {
	if utf8.Valid(b) {
		return true
	}

	if !truncated {
		return false
	}

	for i := 1; i < utf8.UTFMax && i < len(b); i++ {
		if utf8.Valid(b[:len(b)-i]) {
			return true
		}
	}

	return false
}
