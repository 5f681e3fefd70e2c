package collada

import (
	"errors"
	"fmt"

	"github.com/Faultbox/collada-go/pkg/slot"
)

// Document is a complete COLLADA file.
type Document struct {
	Asset        *Asset
	Cameras      []*Camera
	VisualScenes []*VisualScene

	// Scene is the URL of the instanced visual scene, e.g. "#scene".
	Scene slot.Slot[string]
}

// NewDocument returns a document with the given asset.
func NewDocument(asset *Asset) *Document {
	return &Document{Asset: asset}
}

// AddCamera appends a camera to <library_cameras>.
func (d *Document) AddCamera(c *Camera) {
	d.Cameras = append(d.Cameras, c)
}

// AddVisualScene appends a scene to <library_visual_scenes>.
func (d *Document) AddVisualScene(vs *VisualScene) {
	d.VisualScenes = append(d.VisualScenes, vs)
}

// Camera returns the camera with the given id, or nil.
func (d *Document) Camera(id string) *Camera {
	for _, c := range d.Cameras {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// Validate checks every element and returns all failures joined, so callers
// can decide per element whether to drop it or abort. Each failure wraps
// ErrSchemaViolation or ErrInvalidValue.
func (d *Document) Validate() error {
	var errs []error
	if d.Asset == nil {
		errs = append(errs, schemaViolation(tagCOLLADA, tagAsset, "required"))
	} else if err := d.Asset.Validate(); err != nil {
		errs = append(errs, err)
	}

	// ids are unique across the whole document, not per library.
	ids := make(map[string]string)
	claim := func(element string, id slot.Slot[string]) {
		v, ok := id.Lookup()
		if !ok || v == "" {
			return
		}
		if prev, dup := ids[v]; dup {
			errs = append(errs, schemaViolation(element, attrID, fmt.Sprintf("duplicate id %q, already used by <%s>", v, prev)))
			return
		}
		ids[v] = element
	}

	for i, c := range d.Cameras {
		if c == nil {
			errs = append(errs, schemaViolation(tagLibraryCameras, tagCamera, fmt.Sprintf("camera %d is nil", i)))
			continue
		}
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("camera %q: %w", c.ID(), err))
		}
		claim(tagCamera, slot.Of(c.ID()))
	}

	for i, vs := range d.VisualScenes {
		if vs == nil {
			errs = append(errs, schemaViolation(tagLibraryVisualScenes, tagVisualScene, fmt.Sprintf("scene %d is nil", i)))
			continue
		}
		if err := vs.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("visual scene %q: %w", vs.ID(), err))
		}
		claim(tagVisualScene, vs.id)
		walkNodes(vs.nodes, func(n *Node) { claim(tagNode, n.id) })
	}

	if url, ok := d.Scene.Lookup(); ok && url == "" {
		errs = append(errs, schemaViolation(tagInstanceVisualScene, attrURL, "url is required"))
	}
	return errors.Join(errs...)
}

// walkNodes calls fn for every non-nil node in the forest, parents first.
func walkNodes(nodes []*Node, fn func(*Node)) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		fn(n)
		walkNodes(n.children, fn)
	}
}
