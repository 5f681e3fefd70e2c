package collada

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/Faultbox/collada-go/pkg/encoding"
	"github.com/Faultbox/collada-go/pkg/slot"
	"github.com/Faultbox/collada-go/pkg/streamwriter"
	"go.uber.org/zap"
	textencoding "golang.org/x/text/encoding"
)

// Writer serializes COLLADA elements. A Writer holds no per-document state
// and may be reused.
type Writer struct {
	indent   string
	encoding string
	log      *zap.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithIndent pretty-prints output using indent per nesting level.
func WithIndent(indent string) Option {
	return func(w *Writer) { w.indent = indent }
}

// WithEncoding writes documents in the named character encoding, e.g.
// "ISO-8859-1". Unknown names fail at write time with ErrInvalidValue.
func WithEncoding(label string) Option {
	return func(w *Writer) { w.encoding = label }
}

// WithLogger traces written and skipped elements at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(w *Writer) {
		if log != nil {
			w.log = log
		}
	}
}

// NewWriter returns a Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write validates doc and writes it to out. Nothing is written when the
// document is invalid.
func (w *Writer) Write(out io.Writer, doc *Document) error {
	enc, charset, err := w.check(doc)
	if err != nil {
		return err
	}

	tw := encoding.NewWriter(out, enc)
	if err := w.writeDocument(streamwriter.NewCharset(tw, w.indent, charset), doc); err != nil {
		return err
	}
	return tw.Close()
}

// check validates doc and resolves the output encoding.
func (w *Writer) check(doc *Document) (textencoding.Encoding, string, error) {
	if err := doc.Validate(); err != nil {
		return nil, "", err
	}
	enc, charset, err := encoding.Lookup(w.encoding)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return enc, charset, nil
}

func (w *Writer) writeDocument(sw *streamwriter.Writer, doc *Document) error {
	if err := sw.StartDocument(); err != nil {
		return err
	}
	if err := sw.OpenElement(tagCOLLADA); err != nil {
		return err
	}
	if err := sw.AppendAttribute(attrXMLNS, Namespace); err != nil {
		return err
	}
	if err := sw.AppendAttribute(attrVersion, Version); err != nil {
		return err
	}

	if err := w.WriteAsset(sw, doc.Asset); err != nil {
		return err
	}

	if len(doc.Cameras) > 0 {
		if err := sw.OpenElement(tagLibraryCameras); err != nil {
			return err
		}
		for _, c := range doc.Cameras {
			if err := w.WriteCamera(sw, c); err != nil {
				return err
			}
		}
		if err := sw.CloseElement(); err != nil {
			return err
		}
	}

	if len(doc.VisualScenes) > 0 {
		if err := sw.OpenElement(tagLibraryVisualScenes); err != nil {
			return err
		}
		for _, vs := range doc.VisualScenes {
			if err := w.WriteVisualScene(sw, vs); err != nil {
				return err
			}
		}
		if err := sw.CloseElement(); err != nil {
			return err
		}
	}

	if url, ok := doc.Scene.Lookup(); ok {
		if err := sw.OpenElement(tagScene); err != nil {
			return err
		}
		if err := sw.OpenElement(tagInstanceVisualScene); err != nil {
			return err
		}
		if err := sw.AppendAttribute(attrURL, url); err != nil {
			return err
		}
		if err := sw.CloseElement(); err != nil {
			return err
		}
		if err := sw.CloseElement(); err != nil {
			return err
		}
	}

	w.log.Debug("document written",
		zap.Int("cameras", len(doc.Cameras)),
		zap.Int("visual_scenes", len(doc.VisualScenes)))
	return sw.EndDocument()
}

// WriteFile writes doc to path, creating parent directories.
func (w *Writer) WriteFile(path string, doc *Document) error {
	if _, _, err := w.check(doc); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := w.Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// stringField is a text child element backed by a slot.
type stringField struct {
	tag   string
	value slot.Slot[string]
}

// stringAttr is an attribute backed by a slot.
type stringAttr struct {
	name  string
	value slot.Slot[string]
}

func anySet(fields []stringField) bool {
	for _, f := range fields {
		if f.value.IsSet() {
			return true
		}
	}
	return false
}

func (w *Writer) writeStringFields(sw *streamwriter.Writer, fields []stringField) error {
	for _, f := range fields {
		v, ok := f.value.Lookup()
		if !ok {
			continue
		}
		if err := sw.TextElement(f.tag, v); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) appendOptionalAttributes(sw *streamwriter.Writer, attrs ...stringAttr) error {
	for _, a := range attrs {
		v, ok := a.value.Lookup()
		if !ok {
			continue
		}
		if err := sw.AppendAttribute(a.name, v); err != nil {
			return err
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
