package textutil

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultCharset is used when no character set is configured.
const DefaultCharset = "utf-8"

// LookupCharset returns the encoding registered for a charset name. Names are
// case-insensitive; "utf8", "latin1" and "cp1252" aliases are accepted.
func LookupCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "latin9", "iso-8859-15":
		return charmap.ISO8859_15, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", name)
	}
}

// NewDecodingReader wraps r so it yields UTF-8 text. A leading UTF-8 byte order
// mark is dropped for UTF-8 input.
func NewDecodingReader(r io.Reader, charset string) (io.Reader, error) {
	enc, err := LookupCharset(charset)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
