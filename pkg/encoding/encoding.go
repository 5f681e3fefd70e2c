// Package encoding resolves the character encoding documents are written in.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"strings"

	textencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for labels that name no supported encoding.
var ErrUnknownEncoding = errors.New("encoding: unknown encoding")

// Default is the name written in the XML declaration when no encoding is set.
const Default = "utf-8"

// Lookup resolves an IANA label such as "ISO-8859-1" or "EUC-KR". It returns
// the encoding and its canonical name. An empty label is UTF-8.
func Lookup(label string) (textencoding.Encoding, string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return unicode.UTF8, Default, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	// Prefer the MIME name ("ISO-8859-1") over the registry name
	// ("ISO_8859-1:1987") for the declaration.
	name, err := ianaindex.MIME.Name(enc)
	if err != nil {
		if name, err = ianaindex.IANA.Name(enc); err != nil {
			return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
		}
	}
	return enc, name, nil
}

// IsUTF8 reports whether enc needs no transcoding.
func IsUTF8(enc textencoding.Encoding) bool {
	return enc == nil || enc == unicode.UTF8
}

// NewWriter returns a writer that transcodes UTF-8 input to enc. Characters
// enc cannot represent are written as numeric character references, which
// XML readers decode back. Close flushes buffered output.
func NewWriter(w io.Writer, enc textencoding.Encoding) io.WriteCloser {
	if IsUTF8(enc) {
		return nopCloser{w}
	}
	return transform.NewWriter(w, textencoding.HTMLEscapeUnsupported(enc.NewEncoder()))
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
