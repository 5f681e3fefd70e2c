package collada

import (
	"github.com/Faultbox/collada-go/pkg/math"
	"github.com/Faultbox/collada-go/pkg/slot"
	"github.com/Faultbox/collada-go/pkg/streamwriter"
	"go.uber.org/zap"
)

// Node is a <node> of a visual scene: an ordered list of transformations,
// camera instances and child nodes.
type Node struct {
	id   slot.Slot[string]
	name slot.Slot[string]
	sid  slot.Slot[string]

	transforms []Transformation
	cameras    []string
	children   []*Node
}

// NewNode returns an empty node.
func NewNode() *Node {
	return &Node{}
}

// ID returns the id.
func (n *Node) ID() string { return n.id.Value() }

// SetID sets the id attribute. An empty id fails validation.
func (n *Node) SetID(id string) { n.id.Set(id) }

// Name returns the name.
func (n *Node) Name() string { return n.name.Value() }

// SetName sets the name.
func (n *Node) SetName(name string) { n.name.Set(name) }

// SID returns the scoped id.
func (n *Node) SID() string { return n.sid.Value() }

// SetSID sets the scoped id.
func (n *Node) SetSID(sid string) { n.sid.Set(sid) }

// AddTransformation appends t. Transformations apply in the order added.
func (n *Node) AddTransformation(t Transformation) {
	n.transforms = append(n.transforms, t)
}

// Transformations returns the node's transformations.
func (n *Node) Transformations() []Transformation {
	return n.transforms
}

// InstanceCamera adds an <instance_camera> referencing url, e.g. "#cam".
func (n *Node) InstanceCamera(url string) {
	n.cameras = append(n.cameras, url)
}

// CameraURLs returns the instanced camera references.
func (n *Node) CameraURLs() []string {
	return n.cameras
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
}

// Children returns the child nodes.
func (n *Node) Children() []*Node {
	return n.children
}

// LocalMatrix composes the node's transformations in order.
func (n *Node) LocalMatrix() math.Mat4 {
	m := math.Identity()
	for _, t := range n.transforms {
		m = m.Mul(t.ToMat4())
	}
	return m
}

// Clone deep-copies the node and its subtree.
func (n *Node) Clone() *Node {
	c := &Node{id: n.id, name: n.name, sid: n.sid}
	if n.transforms != nil {
		c.transforms = make([]Transformation, len(n.transforms))
		for i, t := range n.transforms {
			if !isNilTransformation(t) {
				c.transforms[i] = t.Clone()
			}
		}
	}
	c.cameras = append([]string(nil), n.cameras...)
	for _, child := range n.children {
		c.children = append(c.children, child.Clone())
	}
	return c
}

// Validate checks the node and its subtree.
func (n *Node) Validate() error {
	if id, ok := n.id.Lookup(); ok && id == "" {
		return schemaViolation(tagNode, attrID, "id must not be empty when set")
	}
	for _, t := range n.transforms {
		if isNilTransformation(t) {
			return schemaViolation(tagNode, "", "nil transformation")
		}
		for _, v := range t.values() {
			if !isFinite(v) {
				return invalidValue(t.Kind().String(), "", "non-finite "+streamwriter.FormatFloat(v))
			}
		}
	}
	for _, url := range n.cameras {
		if url == "" {
			return schemaViolation(tagInstanceCamera, attrURL, "url is required")
		}
	}
	for _, child := range n.children {
		if child == nil {
			return schemaViolation(tagNode, "", "nil child node")
		}
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// WriteNode writes the <node> element and its subtree.
func (w *Writer) WriteNode(sw *streamwriter.Writer, n *Node) error {
	if err := n.Validate(); err != nil {
		return err
	}
	return w.writeNode(sw, n)
}

func (w *Writer) writeNode(sw *streamwriter.Writer, n *Node) error {
	w.log.Debug("writing node", zap.String("id", n.id.Value()), zap.Int("transforms", len(n.transforms)))

	if err := sw.OpenElement(tagNode); err != nil {
		return err
	}
	if err := w.appendOptionalAttributes(sw,
		stringAttr{attrID, n.id},
		stringAttr{attrName, n.name},
		stringAttr{attrSID, n.sid},
	); err != nil {
		return err
	}
	for _, t := range n.transforms {
		if err := w.writeTransformation(sw, t); err != nil {
			return err
		}
	}
	for _, url := range n.cameras {
		if err := sw.OpenElement(tagInstanceCamera); err != nil {
			return err
		}
		if err := sw.AppendAttribute(attrURL, url); err != nil {
			return err
		}
		if err := sw.CloseElement(); err != nil {
			return err
		}
	}
	for _, child := range n.children {
		if err := w.writeNode(sw, child); err != nil {
			return err
		}
	}
	return sw.CloseElement()
}

func (w *Writer) writeTransformation(sw *streamwriter.Writer, t Transformation) error {
	if err := sw.OpenElement(t.Kind().String()); err != nil {
		return err
	}
	if sid, ok := t.sidSlot().Lookup(); ok {
		if err := sw.AppendAttribute(attrSID, sid); err != nil {
			return err
		}
	}
	if err := sw.AppendValues(t.values()...); err != nil {
		return err
	}
	return sw.CloseElement()
}

// VisualScene is a <visual_scene> holding root nodes.
type VisualScene struct {
	id    slot.Slot[string]
	name  slot.Slot[string]
	nodes []*Node
}

// NewVisualScene returns a visual scene with the given id.
func NewVisualScene(id string) *VisualScene {
	vs := &VisualScene{}
	vs.id.Set(id)
	return vs
}

// ID returns the scene id.
func (vs *VisualScene) ID() string { return vs.id.Value() }

// Name returns the scene name, empty when unset.
func (vs *VisualScene) Name() string { return vs.name.Value() }

// SetName sets the name attribute.
func (vs *VisualScene) SetName(name string) { vs.name.Set(name) }

// AddNode appends a root node.
func (vs *VisualScene) AddNode(n *Node) { vs.nodes = append(vs.nodes, n) }

// Nodes returns the root nodes.
func (vs *VisualScene) Nodes() []*Node { return vs.nodes }

// URL returns the fragment reference used by <instance_visual_scene>.
func (vs *VisualScene) URL() string { return "#" + vs.id.Value() }

// Validate checks the scene and every node in it.
func (vs *VisualScene) Validate() error {
	if id, ok := vs.id.Lookup(); ok && id == "" {
		return schemaViolation(tagVisualScene, attrID, "id must not be empty when set")
	}
	if len(vs.nodes) == 0 {
		return schemaViolation(tagVisualScene, tagNode, "at least one node is required")
	}
	for _, n := range vs.nodes {
		if n == nil {
			return schemaViolation(tagVisualScene, tagNode, "nil node")
		}
		if err := n.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// WriteVisualScene writes the <visual_scene> element.
func (w *Writer) WriteVisualScene(sw *streamwriter.Writer, vs *VisualScene) error {
	if err := vs.Validate(); err != nil {
		return err
	}
	if err := sw.OpenElement(tagVisualScene); err != nil {
		return err
	}
	if err := w.appendOptionalAttributes(sw,
		stringAttr{attrID, vs.id},
		stringAttr{attrName, vs.name},
	); err != nil {
		return err
	}
	for _, n := range vs.nodes {
		if err := w.writeNode(sw, n); err != nil {
			return err
		}
	}
	return sw.CloseElement()
}
