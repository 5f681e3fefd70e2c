// Package scenefile reads YAML scene descriptions and converts them to
// COLLADA documents.
//
// A scene file looks like:
//
//	asset:
//	  title: Turntable
//	  up_axis: Z_UP
//	cameras:
//	  - id: cam
//	    type: perspective
//	    xfov: 45
//	    aspect_ratio: 1.78
//	visual_scenes:
//	  - id: main
//	    nodes:
//	      - id: camNode
//	        transforms:
//	          - orbit: {distance: 10, pitch: 30, yaw: 45}
//	        cameras: [cam]
//	scene: main
//
// Keys left out of the file stay unset on the resulting records.
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/collada-go/internal/rig"
	"github.com/Faultbox/collada-go/pkg/collada"
	"github.com/Faultbox/collada-go/pkg/math"
	"github.com/Faultbox/collada-go/pkg/slot"
)

var (
	ErrUnknownReference = errors.New("scenefile: unknown reference")
	ErrBadTransform     = errors.New("scenefile: bad transform")
)

// Scene is the top-level YAML document.
type Scene struct {
	Asset        Asset         `yaml:"asset,omitempty"`
	Cameras      []Camera      `yaml:"cameras,omitempty"`
	VisualScenes []VisualScene `yaml:"visual_scenes,omitempty"`

	// Scene is the id of the visual scene to instance.
	Scene slot.Slot[string] `yaml:"scene,omitempty"`
}

// Asset overrides the configured <asset> defaults.
type Asset struct {
	Author        slot.Slot[string]    `yaml:"author,omitempty"`
	AuthoringTool slot.Slot[string]    `yaml:"authoring_tool,omitempty"`
	Comments      slot.Slot[string]    `yaml:"comments,omitempty"`
	Copyright     slot.Slot[string]    `yaml:"copyright,omitempty"`
	Created       slot.Slot[time.Time] `yaml:"created,omitempty"`
	Modified      slot.Slot[time.Time] `yaml:"modified,omitempty"`
	Keywords      slot.Slot[string]    `yaml:"keywords,omitempty"`
	Subject       slot.Slot[string]    `yaml:"subject,omitempty"`
	Title         slot.Slot[string]    `yaml:"title,omitempty"`
	UnitName      slot.Slot[string]    `yaml:"unit_name,omitempty"`
	UnitMeter     slot.Slot[float64]   `yaml:"unit_meter,omitempty"`
	UpAxis        slot.Slot[string]    `yaml:"up_axis,omitempty"`
}

// Camera describes one camera and its optic.
type Camera struct {
	ID          string             `yaml:"id"`
	Name        slot.Slot[string]  `yaml:"name,omitempty"`
	Type        string             `yaml:"type"`
	XFov        slot.Slot[float64] `yaml:"xfov,omitempty"`
	YFov        slot.Slot[float64] `yaml:"yfov,omitempty"`
	XMag        slot.Slot[float64] `yaml:"xmag,omitempty"`
	YMag        slot.Slot[float64] `yaml:"ymag,omitempty"`
	AspectRatio slot.Slot[float64] `yaml:"aspect_ratio,omitempty"`
	ZNear       slot.Slot[float64] `yaml:"znear,omitempty"`
	ZFar        slot.Slot[float64] `yaml:"zfar,omitempty"`
	Extra       []Technique        `yaml:"extra,omitempty"`
}

// Technique is a profile-specific parameter list.
type Technique struct {
	Profile string  `yaml:"profile"`
	Params  []Param `yaml:"params"`
}

// Param is one extra parameter.
type Param struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// VisualScene is a named node hierarchy.
type VisualScene struct {
	ID    string            `yaml:"id"`
	Name  slot.Slot[string] `yaml:"name,omitempty"`
	Nodes []Node            `yaml:"nodes"`
}

// Node is one scene node. Cameras lists camera ids.
type Node struct {
	ID         slot.Slot[string] `yaml:"id,omitempty"`
	Name       slot.Slot[string] `yaml:"name,omitempty"`
	SID        slot.Slot[string] `yaml:"sid,omitempty"`
	Transforms []Transform       `yaml:"transforms,omitempty"`
	Cameras    []string          `yaml:"cameras,omitempty"`
	Children   []Node            `yaml:"children,omitempty"`
}

// Transform holds exactly one transformation, given as the values of its
// COLLADA element. Orbit is written as a <lookat>.
type Transform struct {
	SID       slot.Slot[string] `yaml:"sid,omitempty"`
	Lookat    []float64         `yaml:"lookat,omitempty"`
	Matrix    []float64         `yaml:"matrix,omitempty"`
	Rotate    []float64         `yaml:"rotate,omitempty"`
	Scale     []float64         `yaml:"scale,omitempty"`
	Skew      []float64         `yaml:"skew,omitempty"`
	Translate []float64         `yaml:"translate,omitempty"`
	Orbit     *Orbit            `yaml:"orbit,omitempty"`
}

// Orbit places a camera on a sphere around Center. Angles are in degrees.
type Orbit struct {
	Center   []float64 `yaml:"center,omitempty"`
	Distance float64   `yaml:"distance"`
	Pitch    float64   `yaml:"pitch"`
	Yaw      float64   `yaml:"yaw"`
}

func (o *Orbit) lookat() (collada.Transformation, error) {
	orbit := rig.Orbit{Distance: o.Distance, Pitch: o.Pitch, Yaw: o.Yaw}
	if o.Center != nil {
		if len(o.Center) != 3 {
			return nil, fmt.Errorf("%w: orbit center needs 3 values, got %d", ErrBadTransform, len(o.Center))
		}
		orbit.Center = math.V3(o.Center[0], o.Center[1], o.Center[2])
	}
	l, err := orbit.Lookat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadTransform, err)
	}
	return l, nil
}

// Parse decodes a scene. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return &s, nil
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Parse(data)
}

// Document converts the scene to a COLLADA document. base supplies the
// asset defaults; values set in the scene override them. base is modified.
func (s *Scene) Document(base *collada.Asset) (*collada.Document, error) {
	if err := s.Asset.apply(base); err != nil {
		return nil, err
	}
	doc := collada.NewDocument(base)

	cameras := make(map[string]bool, len(s.Cameras))
	for i := range s.Cameras {
		c, err := s.Cameras[i].camera()
		if err != nil {
			return nil, fmt.Errorf("camera %q: %w", s.Cameras[i].ID, err)
		}
		doc.AddCamera(c)
		cameras[c.ID()] = true
	}

	scenes := make(map[string]bool, len(s.VisualScenes))
	for _, xvs := range s.VisualScenes {
		vs := collada.NewVisualScene(xvs.ID)
		if name, ok := xvs.Name.Lookup(); ok {
			vs.SetName(name)
		}
		for i := range xvs.Nodes {
			n, err := xvs.Nodes[i].node(cameras)
			if err != nil {
				return nil, fmt.Errorf("visual scene %q: %w", xvs.ID, err)
			}
			vs.AddNode(n)
		}
		doc.AddVisualScene(vs)
		scenes[xvs.ID] = true
	}

	if id, ok := s.Scene.Lookup(); ok {
		if !scenes[id] {
			return nil, fmt.Errorf("%w: visual scene %q", ErrUnknownReference, id)
		}
		doc.Scene.Set("#" + id)
	} else if len(s.VisualScenes) > 0 {
		doc.Scene.Set("#" + s.VisualScenes[0].ID)
	}
	return doc, nil
}

func (a *Asset) apply(dst *collada.Asset) error {
	for _, f := range []struct {
		v   slot.Slot[string]
		set func(string)
	}{
		{a.Author, dst.SetAuthor},
		{a.AuthoringTool, dst.SetAuthoringTool},
		{a.Comments, dst.SetComments},
		{a.Copyright, dst.SetCopyright},
		{a.Keywords, dst.SetKeywords},
		{a.Subject, dst.SetSubject},
		{a.Title, dst.SetTitle},
		{a.UnitName, dst.SetUnitName},
	} {
		if v, ok := f.v.Lookup(); ok {
			f.set(v)
		}
	}
	if t, ok := a.Created.Lookup(); ok {
		dst.SetCreated(t)
	}
	if t, ok := a.Modified.Lookup(); ok {
		dst.SetModified(t)
	}
	if m, ok := a.UnitMeter.Lookup(); ok {
		dst.SetUnitMeter(m)
	}
	if s, ok := a.UpAxis.Lookup(); ok {
		axis, err := collada.ParseUpAxis(s)
		if err != nil {
			return err
		}
		dst.SetUpAxis(axis)
	}
	return nil
}

func (c *Camera) camera() (*collada.Camera, error) {
	kind, err := collada.ParseOpticKind(c.Type)
	if err != nil {
		return nil, err
	}
	optic := collada.NewPerspectiveOptic()
	if kind == collada.Orthographic {
		optic = collada.NewOrthographicOptic()
	}

	for _, f := range []struct {
		v   slot.Slot[float64]
		set func(float64)
	}{
		{c.XFov, optic.SetXFov},
		{c.YFov, optic.SetYFov},
		{c.XMag, optic.SetXMag},
		{c.YMag, optic.SetYMag},
		{c.AspectRatio, optic.SetAspectRatio},
		{c.ZNear, optic.SetZNear},
		{c.ZFar, optic.SetZFar},
	} {
		if v, ok := f.v.Lookup(); ok {
			f.set(v)
		}
	}
	for _, t := range c.Extra {
		for _, p := range t.Params {
			optic.AddExtraParameter(t.Profile, p.Name, p.Value)
		}
	}

	cam := collada.NewCamera(c.ID, optic)
	if name, ok := c.Name.Lookup(); ok {
		cam.SetName(name)
	}
	return cam, nil
}

func (n *Node) node(cameras map[string]bool) (*collada.Node, error) {
	out := collada.NewNode()
	if v, ok := n.ID.Lookup(); ok {
		out.SetID(v)
	}
	if v, ok := n.Name.Lookup(); ok {
		out.SetName(v)
	}
	if v, ok := n.SID.Lookup(); ok {
		out.SetSID(v)
	}

	for i := range n.Transforms {
		t, err := n.Transforms[i].transformation()
		if err != nil {
			return nil, fmt.Errorf("node %q transform %d: %w", n.ID.Value(), i, err)
		}
		out.AddTransformation(t)
	}
	for _, id := range n.Cameras {
		if !cameras[id] {
			return nil, fmt.Errorf("%w: camera %q in node %q", ErrUnknownReference, id, n.ID.Value())
		}
		out.InstanceCamera("#" + id)
	}
	for i := range n.Children {
		child, err := n.Children[i].node(cameras)
		if err != nil {
			return nil, err
		}
		out.AddChild(child)
	}
	return out, nil
}

func (t *Transform) transformation() (collada.Transformation, error) {
	kinds := []struct {
		kind  collada.TransformKind
		v     []float64
		want  int
		build func([]float64) collada.Transformation
	}{
		{collada.KindLookat, t.Lookat, 9, func(v []float64) collada.Transformation {
			return collada.NewLookat(math.V3(v[0], v[1], v[2]), math.V3(v[3], v[4], v[5]), math.V3(v[6], v[7], v[8]))
		}},
		{collada.KindMatrix, t.Matrix, 16, func(v []float64) collada.Transformation {
			var m math.Mat4
			copy(m[:], v)
			return collada.NewMatrix(m)
		}},
		{collada.KindRotate, t.Rotate, 4, func(v []float64) collada.Transformation {
			return collada.NewRotate(math.V3(v[0], v[1], v[2]), v[3])
		}},
		{collada.KindScale, t.Scale, 3, func(v []float64) collada.Transformation {
			return collada.NewScale(math.V3(v[0], v[1], v[2]))
		}},
		{collada.KindSkew, t.Skew, 7, func(v []float64) collada.Transformation {
			return collada.NewSkew(v[0], math.V3(v[1], v[2], v[3]), math.V3(v[4], v[5], v[6]))
		}},
		{collada.KindTranslate, t.Translate, 3, func(v []float64) collada.Transformation {
			return collada.NewTranslate(math.V3(v[0], v[1], v[2]))
		}},
	}

	var out collada.Transformation
	count := 0
	for _, k := range kinds {
		if k.v == nil {
			continue
		}
		count++
		if len(k.v) != k.want {
			return nil, fmt.Errorf("%w: %s needs %d values, got %d", ErrBadTransform, k.kind, k.want, len(k.v))
		}
		out = k.build(k.v)
	}
	if t.Orbit != nil {
		count++
		l, err := t.Orbit.lookat()
		if err != nil {
			return nil, err
		}
		out = l
	}
	if count != 1 {
		return nil, fmt.Errorf("%w: expected exactly one kind, got %d", ErrBadTransform, count)
	}

	if sid, ok := t.SID.Lookup(); ok {
		out.SetSID(sid)
	}
	return out, nil
}
