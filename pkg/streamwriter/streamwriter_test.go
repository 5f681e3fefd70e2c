package streamwriter

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestWriter_Elements(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, "")

	steps := []func() error{
		w.StartDocument,
		func() error { return w.OpenElement("camera") },
		func() error { return w.AppendAttribute("id", "cam-1") },
		func() error { return w.AppendAttribute("name", `"main" & <top>`) },
		func() error { return w.TextElement("xfov", "45.0") },
		func() error { return w.OpenElement("empty") },
		w.CloseElement,
		w.EndDocument,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	want := `<?xml version="1.0" encoding="utf-8"?>` +
		`<camera id="cam-1" name="&#34;main&#34; &amp; &lt;top&gt;">` +
		`<xfov>45.0</xfov><empty></empty></camera>`
	if got := buf.String(); got != want {
		t.Errorf("output mismatch\ngot:  %s\nwant: %s", got, want)
	}
}

func TestWriter_Indent(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, "  ")

	if err := w.OpenElement("perspective"); err != nil {
		t.Fatal(err)
	}
	if err := w.OpenElement("xfov"); err != nil {
		t.Fatal(err)
	}
	if err := w.AppendValues(45); err != nil {
		t.Fatal(err)
	}
	if err := w.EndDocument(); err != nil {
		t.Fatal(err)
	}

	want := "<perspective>\n  <xfov>45.0</xfov>\n</perspective>"
	if got := buf.String(); got != want {
		t.Errorf("output mismatch\ngot:  %q\nwant: %q", got, want)
	}
}

func TestWriter_AttributeTooLate(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, "")

	if err := w.AppendAttribute("id", "x"); !errors.Is(err, ErrNoOpenElement) {
		t.Errorf("attribute without element: got %v, want ErrNoOpenElement", err)
	}

	_ = w.OpenElement("node")
	_ = w.AppendText("x")
	if err := w.AppendAttribute("id", "x"); !errors.Is(err, ErrAttributeTooLate) {
		t.Errorf("attribute after text: got %v, want ErrAttributeTooLate", err)
	}
}

func TestWriter_CloseWithoutOpen(t *testing.T) {
	w := New(&bytes.Buffer{}, "")
	if err := w.CloseElement(); !errors.Is(err, ErrNoOpenElement) {
		t.Errorf("got %v, want ErrNoOpenElement", err)
	}
	if err := w.AppendText("x"); !errors.Is(err, ErrNoOpenElement) {
		t.Errorf("text at top level: got %v, want ErrNoOpenElement", err)
	}
}

func TestWriter_StartDocumentTwice(t *testing.T) {
	w := New(&bytes.Buffer{}, "")
	if err := w.StartDocument(); err != nil {
		t.Fatal(err)
	}
	if err := w.StartDocument(); !errors.Is(err, ErrDocumentStarted) {
		t.Errorf("got %v, want ErrDocumentStarted", err)
	}
}

func TestWriter_Depth(t *testing.T) {
	w := New(&bytes.Buffer{}, "")
	_ = w.OpenElement("a")
	_ = w.OpenElement("b")
	if w.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", w.Depth())
	}
	_ = w.CloseElement()
	if w.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", w.Depth())
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{45, "45.0"},
		{1.78, "1.78"},
		{0, "0.0"},
		{-3, "-3.0"},
		{0.1, "0.1"},
		{1e21, "1e+21"},
		{math.Inf(1), "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatFloat(tt.in); got != tt.want {
				t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriter_Charset(t *testing.T) {
	var buf bytes.Buffer
	w := NewCharset(&buf, "", "ISO-8859-1")
	if err := w.StartDocument(); err != nil {
		t.Fatal(err)
	}
	if err := w.EndDocument(); err != nil {
		t.Fatal(err)
	}

	want := `<?xml version="1.0" encoding="ISO-8859-1"?>`
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
