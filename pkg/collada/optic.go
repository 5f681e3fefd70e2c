package collada

import (
	"fmt"

	"github.com/Faultbox/collada-go/pkg/slot"
	"github.com/Faultbox/collada-go/pkg/streamwriter"
)

// OpticKind is the projection type of a camera optic.
type OpticKind int

const (
	Perspective  OpticKind = 1 // <perspective>
	Orthographic OpticKind = 2 // <orthographic>
)

// String returns the element name of the kind.
func (k OpticKind) String() string {
	if spec, ok := opticKinds[k]; ok {
		return spec.tag
	}
	return fmt.Sprintf("Unknown(%d)", int(k))
}

// ParseOpticKind maps an element name to its kind.
func ParseOpticKind(s string) (OpticKind, error) {
	for k, spec := range opticKinds {
		if spec.tag == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown optic type %q", ErrInvalidValue, s)
}

// opticSpec is the per-kind behaviour of an optic: the fields only that kind
// writes, and the rule for which of them are required.
type opticSpec struct {
	tag      string
	specific func(o *Optic) []FloatField
	require  func(o *Optic) error
}

var opticKinds = map[OpticKind]opticSpec{
	Perspective: {
		tag: "perspective",
		specific: func(o *Optic) []FloatField {
			return []FloatField{
				{Tag: tagXFov, Value: o.xFov, check: fieldOfView},
				{Tag: tagYFov, Value: o.yFov, check: fieldOfView},
				{Tag: tagAspectRatio, Value: o.aspectRatio, check: positive},
			}
		},
		require: func(o *Optic) error {
			if !o.xFov.IsSet() && !o.yFov.IsSet() {
				return schemaViolation("perspective", "", "requires <xfov> or <yfov>")
			}
			return nil
		},
	},
	Orthographic: {
		tag: "orthographic",
		specific: func(o *Optic) []FloatField {
			return []FloatField{
				{Tag: tagXMag, Value: o.xMag},
				{Tag: tagYMag, Value: o.yMag},
				{Tag: tagAspectRatio, Value: o.aspectRatio, check: positive},
			}
		},
		require: func(o *Optic) error {
			if !o.xMag.IsSet() && !o.yMag.IsSet() {
				return schemaViolation("orthographic", "", "requires <xmag> or <ymag>")
			}
			return nil
		},
	},
}

// Optic holds the <optics> settings of a camera. Its kind is fixed when it is
// created; fields that do not belong to the kind may be set but are never
// written.
type Optic struct {
	Extra

	kind OpticKind

	// Horizontal and vertical field of view in degrees (perspective).
	xFov slot.Slot[float64]
	yFov slot.Slot[float64]

	// Horizontal and vertical magnification (orthographic). The viewport
	// becomes [[-xmag,xmag],[-ymag,ymag]].
	xMag slot.Slot[float64]
	yMag slot.Slot[float64]

	// Width over height of the field of view. When absent, readers derive it
	// from the fov or mag values and the viewport.
	aspectRatio slot.Slot[float64]

	zNear slot.Slot[float64]
	zFar  slot.Slot[float64]
}

// NewPerspectiveOptic returns an empty perspective optic.
func NewPerspectiveOptic() *Optic {
	return &Optic{kind: Perspective}
}

// NewOrthographicOptic returns an empty orthographic optic.
func NewOrthographicOptic() *Optic {
	return &Optic{kind: Orthographic}
}

// Kind returns the projection type.
func (o *Optic) Kind() OpticKind { return o.kind }

// SetXFov sets the horizontal field of view in degrees.
func (o *Optic) SetXFov(v float64) { o.xFov.Set(v) }

// SetYFov sets the vertical field of view in degrees.
func (o *Optic) SetYFov(v float64) { o.yFov.Set(v) }

// SetXMag sets the horizontal magnification.
func (o *Optic) SetXMag(v float64) { o.xMag.Set(v) }

// SetYMag sets the vertical magnification.
func (o *Optic) SetYMag(v float64) { o.yMag.Set(v) }

// SetAspectRatio sets the aspect ratio.
func (o *Optic) SetAspectRatio(v float64) { o.aspectRatio.Set(v) }

// SetZNear sets the near clipping distance.
func (o *Optic) SetZNear(v float64) { o.zNear.Set(v) }

// SetZFar sets the far clipping distance.
func (o *Optic) SetZFar(v float64) { o.zFar.Set(v) }

// Accessors return the raw value whether or not it was set. Whether a value
// is written is decided by the writer from Fields.

// XFov returns the horizontal field of view in degrees.
func (o *Optic) XFov() float64 { return o.xFov.Value() }

// YFov returns the vertical field of view in degrees.
func (o *Optic) YFov() float64 { return o.yFov.Value() }

// XMag returns the horizontal magnification.
func (o *Optic) XMag() float64 { return o.xMag.Value() }

// YMag returns the vertical magnification.
func (o *Optic) YMag() float64 { return o.yMag.Value() }

// AspectRatio returns the aspect ratio.
func (o *Optic) AspectRatio() float64 { return o.aspectRatio.Value() }

// ZNear returns the near clipping distance.
func (o *Optic) ZNear() float64 { return o.zNear.Value() }

// ZFar returns the far clipping distance.
func (o *Optic) ZFar() float64 { return o.zFar.Value() }

// Fields returns the fields written under the kind's element, in schema
// order: the kind-specific fields followed by znear and zfar.
func (o *Optic) Fields() []FloatField {
	spec, ok := opticKinds[o.kind]
	if !ok {
		return nil
	}
	return append(spec.specific(o),
		FloatField{Tag: tagZNear, Value: o.zNear},
		FloatField{Tag: tagZFar, Value: o.zFar},
	)
}

// Validate reports the first schema or value error of the optic.
func (o *Optic) Validate() error {
	spec, ok := opticKinds[o.kind]
	if !ok {
		return schemaViolation(tagOptics, "", fmt.Sprintf("unknown optic kind %d", int(o.kind)))
	}
	if err := spec.require(o); err != nil {
		return err
	}
	if err := validateFields(spec.tag, o.Fields()); err != nil {
		return err
	}
	return o.Extra.validate(tagOptics)
}

// WriteOptic writes <optics> for o: the common technique holding the
// kind's element, followed by any extra techniques.
func (w *Writer) WriteOptic(sw *streamwriter.Writer, o *Optic) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := sw.OpenElement(tagOptics); err != nil {
		return err
	}
	if err := sw.OpenElement(tagTechniqueCommon); err != nil {
		return err
	}
	if err := sw.OpenElement(o.kind.String()); err != nil {
		return err
	}
	if err := w.writeFields(sw, o.kind.String(), o.Fields()); err != nil {
		return err
	}
	if err := sw.CloseElement(); err != nil {
		return err
	}
	if err := sw.CloseElement(); err != nil {
		return err
	}
	if err := w.writeExtra(sw, &o.Extra); err != nil {
		return err
	}
	return sw.CloseElement()
}
