package fileio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	sampleSize  = 64 << 10
	maxLineSize = 16 << 20
)

var ErrEncoding = errors.New("input is not valid UTF-8 and its charset could not be detected")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// detectCharset is swapped in tests.
var detectCharset = detect

// decodeUTF8 buffers all of r and returns it as UTF-8. BOMs win; valid UTF-8 is
// passed through; anything else goes through chardet (cp1251, latin-1, KOI8-R...
// from legacy exports), sampled from the first line that is not UTF-8.
func decodeUTF8(r io.Reader) (io.Reader, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(b, utf8BOM):
		b = b[len(utf8BOM):]
	case bytes.HasPrefix(b, []byte{0xFF, 0xFE}), bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
		dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		return transform.NewReader(bytes.NewReader(b), dec), nil
	}

	bad := invalidOffset(b)
	if bad < 0 {
		return bytes.NewReader(b), nil
	}
	from := bytes.LastIndexByte(b[:bad], '\n') + 1
	sample := b[from:min(len(b), from+sampleSize)]
	enc := detectCharset(sample)
	if enc == nil {
		return nil, fmt.Errorf("%w (line %d)", ErrEncoding, bytes.Count(b[:bad], []byte{'\n'})+1)
	}
	return transform.NewReader(bytes.NewReader(b), enc.NewDecoder()), nil
}

func detect(sample []byte) encoding.Encoding {
	det, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || det == nil {
		return nil
	}
	cs := strings.ToLower(det.Charset)
	if cs == "utf-8" {
		return nil
	}
	enc, err := htmlindex.Get(cs)
	if err != nil {
		return nil
	}
	return enc
}

// invalidOffset is the byte offset of the first invalid UTF-8 sequence, or -1.
func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// readText splits on \n; a trailing \r belongs to the terminator. Empty lines are
// returned as "" so the normalizer can reject them with their line number.
func readText(r io.Reader) ([]string, error) {
	dr, err := decodeUTF8(r)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(dr)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
