package encoding

import (
	"bytes"
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		label string
		name  string
	}{
		{"", "utf-8"},
		{"ISO-8859-1", "ISO-8859-1"},
		{"latin1", "ISO-8859-1"},
		{"EUC-KR", "EUC-KR"},
		{"Shift_JIS", "Shift_JIS"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			enc, name, err := Lookup(tt.label)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tt.label, err)
			}
			if enc == nil {
				t.Fatal("expected an encoding")
			}
			if name != tt.name {
				t.Errorf("expected name %s, got %s", tt.name, name)
			}
		})
	}

	if _, _, err := Lookup("klingon"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("expected ErrUnknownEncoding, got %v", err)
	}
}

func TestNewWriter(t *testing.T) {
	tests := []struct {
		label string
		in    string
		want  []byte
	}{
		{"", "Müller", []byte("Müller")},
		{"ISO-8859-1", "Müller", []byte("M\xfcller")},
		{"ISO-8859-1", "5€", []byte("5&#8364;")},
		{"EUC-KR", "한국", []byte{0xc7, 0xd1, 0xb1, 0xb9}},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.in, func(t *testing.T) {
			enc, _, err := Lookup(tt.label)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tt.label, err)
			}

			var buf bytes.Buffer
			w := NewWriter(&buf, enc)
			if _, err := w.Write([]byte(tt.in)); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("expected %q, got %q", tt.want, buf.Bytes())
			}
		})
	}
}
