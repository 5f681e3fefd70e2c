package collada

import (
	"github.com/Faultbox/collada-go/pkg/slot"
	"github.com/Faultbox/collada-go/pkg/streamwriter"
	"go.uber.org/zap"
)

// Camera is a <camera> element of <library_cameras>.
type Camera struct {
	id    string
	name  slot.Slot[string]
	optic *Optic
}

// NewCamera returns a camera with the given id and optic.
func NewCamera(id string, optic *Optic) *Camera {
	return &Camera{id: id, optic: optic}
}

// ID returns the id.
func (c *Camera) ID() string { return c.id }

// Name returns the name.
func (c *Camera) Name() string { return c.name.Value() }

// SetName sets the name.
func (c *Camera) SetName(name string) { c.name.Set(name) }

// Optic returns the camera optics.
func (c *Camera) Optic() *Optic { return c.optic }

// URL returns the fragment reference used by <instance_camera>.
func (c *Camera) URL() string { return "#" + c.id }

// Validate reports the first schema or value error of the camera.
func (c *Camera) Validate() error {
	if c.id == "" {
		return schemaViolation(tagCamera, attrID, "id is required")
	}
	if c.optic == nil {
		return schemaViolation(tagCamera, tagOptics, "optics are required")
	}
	return c.optic.Validate()
}

// WriteCamera writes the <camera> element.
func (w *Writer) WriteCamera(sw *streamwriter.Writer, c *Camera) error {
	if err := c.Validate(); err != nil {
		return err
	}
	w.log.Debug("writing camera", zap.String("id", c.id), zap.Stringer("type", c.optic.Kind()))

	if err := sw.OpenElement(tagCamera); err != nil {
		return err
	}
	if err := sw.AppendAttribute(attrID, c.id); err != nil {
		return err
	}
	if name, ok := c.name.Lookup(); ok {
		if err := sw.AppendAttribute(attrName, name); err != nil {
			return err
		}
	}
	if err := w.WriteOptic(sw, c.optic); err != nil {
		return err
	}
	return sw.CloseElement()
}
