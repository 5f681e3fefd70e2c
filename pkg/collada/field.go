package collada

import (
	"math"

	"github.com/Faultbox/collada-go/pkg/slot"
	"github.com/Faultbox/collada-go/pkg/streamwriter"
	"go.uber.org/zap"
)

// FloatField is one schema-ordered numeric child of an element: its tag and
// a snapshot of the slot behind it.
type FloatField struct {
	Tag   string
	Value slot.Slot[float64]
	check func(float64) string
}

// validateFields checks every set field: non-finite values and values outside
// the field's domain are rejected. Unset fields are never read.
func validateFields(element string, fields []FloatField) error {
	for _, f := range fields {
		v, ok := f.Value.Lookup()
		if !ok {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidValue(element, f.Tag, "non-finite "+streamwriter.FormatFloat(v))
		}
		if f.check != nil {
			if msg := f.check(v); msg != "" {
				return invalidValue(element, f.Tag, msg)
			}
		}
	}
	return nil
}

// writeFields emits <tag>value</tag> for each set field, in slice order.
func (w *Writer) writeFields(sw *streamwriter.Writer, element string, fields []FloatField) error {
	for _, f := range fields {
		v, err := f.Value.Get()
		if err != nil {
			w.log.Debug("skipping unset field", zap.String("element", element), zap.String("field", f.Tag))
			continue
		}
		if err := sw.TextElement(f.Tag, streamwriter.FormatFloat(v)); err != nil {
			return err
		}
	}
	return nil
}

func positive(v float64) string {
	if v <= 0 {
		return "must be > 0"
	}
	return ""
}

func fieldOfView(v float64) string {
	if v <= 0 || v >= 180 {
		return "must be in (0, 180) degrees"
	}
	return ""
}
