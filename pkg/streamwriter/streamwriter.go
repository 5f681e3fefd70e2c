// Package streamwriter provides the element-level XML primitives that
// COLLADA element writers are composed from.
//
// An element is opened with OpenElement; attributes may be appended until
// the first child, text or close arrives, at which point the start tag is
// committed to the underlying encoder.
package streamwriter

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Stream writer errors.
var (
	ErrNoOpenElement    = errors.New("streamwriter: no open element")
	ErrAttributeTooLate = errors.New("streamwriter: attribute after element content")
	ErrDocumentStarted  = errors.New("streamwriter: document already started")
)

// Writer writes XML elements to an io.Writer.
type Writer struct {
	enc     *xml.Encoder
	open    []xml.Name
	pending *xml.StartElement
	indent  bool
	charset string
	started bool
	err     error
}

// New returns a Writer over w. A non-empty indent pretty-prints the output.
func New(w io.Writer, indent string) *Writer {
	return NewCharset(w, indent, "utf-8")
}

// NewCharset is New with the encoding named in the XML declaration. The
// caller is responsible for transcoding what reaches w.
func NewCharset(w io.Writer, indent, charset string) *Writer {
	enc := xml.NewEncoder(w)
	if indent != "" {
		enc.Indent("", indent)
	}
	return &Writer{enc: enc, indent: indent != "", charset: charset}
}

// StartDocument writes the XML declaration. It must be the first call.
func (w *Writer) StartDocument() error {
	if w.started {
		return ErrDocumentStarted
	}
	w.started = true
	if err := w.encode(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="` + w.charset + `"`)}); err != nil {
		return err
	}
	// The encoder does not break the line after a declaration.
	if w.indent {
		return w.encode(xml.CharData("\n"))
	}
	return nil
}

// OpenElement starts a child of the current element.
func (w *Writer) OpenElement(name string) error {
	if err := w.commit(); err != nil {
		return err
	}
	w.started = true
	w.pending = &xml.StartElement{Name: xml.Name{Local: name}}
	w.open = append(w.open, w.pending.Name)
	return nil
}

// AppendAttribute adds an attribute to the element opened last. It fails
// once that element has content.
func (w *Writer) AppendAttribute(name, value string) error {
	if w.err != nil {
		return w.err
	}
	if w.pending == nil {
		if len(w.open) == 0 {
			return ErrNoOpenElement
		}
		return fmt.Errorf("%w: %s on <%s>", ErrAttributeTooLate, name, w.open[len(w.open)-1].Local)
	}
	w.pending.Attr = append(w.pending.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return nil
}

// AppendText writes escaped character data into the current element.
func (w *Writer) AppendText(text string) error {
	if len(w.open) == 0 {
		return ErrNoOpenElement
	}
	if err := w.commit(); err != nil {
		return err
	}
	return w.encode(xml.CharData(text))
}

// AppendValues writes space-separated numbers into the current element.
func (w *Writer) AppendValues(values ...float64) error {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatFloat(v)
	}
	return w.AppendText(strings.Join(parts, " "))
}

// CloseElement ends the element opened last.
func (w *Writer) CloseElement() error {
	if len(w.open) == 0 {
		return ErrNoOpenElement
	}
	if err := w.commit(); err != nil {
		return err
	}
	name := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]
	return w.encode(xml.EndElement{Name: name})
}

// TextElement writes <name>text</name> as a child of the current element.
func (w *Writer) TextElement(name, text string) error {
	if err := w.OpenElement(name); err != nil {
		return err
	}
	if err := w.AppendText(text); err != nil {
		return err
	}
	return w.CloseElement()
}

// Depth returns the number of open elements.
func (w *Writer) Depth() int {
	return len(w.open)
}

// EndDocument closes every open element and flushes.
func (w *Writer) EndDocument() error {
	for len(w.open) > 0 {
		if err := w.CloseElement(); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.commit(); err != nil {
		return err
	}
	if err := w.enc.Flush(); err != nil {
		w.err = err
	}
	return w.err
}

func (w *Writer) commit() error {
	if w.err != nil {
		return w.err
	}
	if w.pending == nil {
		return nil
	}
	se := *w.pending
	w.pending = nil
	return w.encode(se)
}

func (w *Writer) encode(t xml.Token) error {
	if w.err != nil {
		return w.err
	}
	if err := w.enc.EncodeToken(t); err != nil {
		w.err = err
	}
	return w.err
}

// FormatFloat formats v with the fewest digits that round-trip, keeping a
// decimal point on integral values: 45 -> "45.0", 1.78 -> "1.78".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
