package collada

import (
	"bytes"
	"testing"

	"github.com/Faultbox/collada-go/pkg/math"
	"github.com/Faultbox/collada-go/pkg/streamwriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookat_Clone(t *testing.T) {
	orig := NewLookat(math.V3(0, 0, 10), math.V3(0, 0, 0), math.V3(0, 1, 0))
	orig.SetSID("view")

	clone, ok := orig.Clone().(*Lookat)
	require.True(t, ok, "clone of a lookat must be a lookat")

	assert.Equal(t, orig, clone, "clone should be value-equal")
	assert.NotSame(t, orig, clone, "clone must be a distinct instance")
	assert.Equal(t, KindLookat, clone.Kind())

	clone.SetEyePosition(math.V3(5, 5, 5))
	clone.SetSID("other")
	assert.Equal(t, math.V3(0, 0, 10), orig.EyePosition(), "original eye must not change")
	assert.Equal(t, "view", orig.SID())
}

func TestTransformations_CloneKeepsKind(t *testing.T) {
	tests := []Transformation{
		NewLookat(math.V3(1, 2, 3), math.V3(0, 0, 0), math.V3(0, 1, 0)),
		NewMatrix(math.Translate(math.V3(1, 2, 3))),
		NewRotate(math.V3(0, 1, 0), 90),
		NewScale(math.V3(2, 2, 2)),
		NewSkew(30, math.V3(0, 1, 0), math.V3(1, 0, 0)),
		NewTranslate(math.V3(4, 5, 6)),
	}

	for _, tr := range tests {
		t.Run(tr.Kind().String(), func(t *testing.T) {
			c := tr.Clone()
			assert.Equal(t, tr.Kind(), c.Kind())
			assert.Equal(t, tr.values(), c.values())
			assert.Equal(t, tr.ToMat4(), c.ToMat4())
		})
	}
}

func TestMatrix_CloneIsIndependent(t *testing.T) {
	orig := NewMatrix(math.Identity())
	clone := orig.Clone().(*Matrix)

	m := clone.Matrix()
	m[3] = 42
	clone.SetMatrix(m)

	assert.Equal(t, math.Identity(), orig.Matrix())
}

func TestTransformKind_String(t *testing.T) {
	tests := []struct {
		kind TransformKind
		want string
	}{
		{KindLookat, "lookat"},
		{KindMatrix, "matrix"},
		{KindRotate, "rotate"},
		{KindScale, "scale"},
		{KindSkew, "skew"},
		{KindTranslate, "translate"},
		{TransformKind(0), "Unknown(0)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestNewTransformation_ValueCount(t *testing.T) {
	_, err := newTransformation(KindRotate, []float64{0, 1, 0})
	assert.ErrorIs(t, err, ErrInvalidValue)

	tr, err := newTransformation(KindSkew, []float64{30, 0, 1, 0, 1, 0, 0})
	require.NoError(t, err)
	skew := tr.(*Skew)
	assert.Equal(t, 30.0, skew.Angle())
	assert.Equal(t, math.V3(0, 1, 0), skew.RotationAxis())
	assert.Equal(t, math.V3(1, 0, 0), skew.TranslationAxis())
}

func TestWriteNode(t *testing.T) {
	n := NewNode()
	n.SetID("camera_node")
	n.SetName("Camera")

	look := NewLookat(math.V3(0, 0, 10), math.V3(0, 0, 0), math.V3(0, 1, 0))
	n.AddTransformation(look)
	rot := NewRotate(math.V3(0, 1, 0), 45)
	rot.SetSID("rotateY")
	n.AddTransformation(rot)
	n.InstanceCamera("#cam")

	child := NewNode()
	child.AddTransformation(NewScale(math.V3(1, 2, 1)))
	n.AddChild(child)

	var buf bytes.Buffer
	sw := streamwriter.New(&buf, "")
	require.NoError(t, NewWriter().WriteNode(sw, n))
	require.NoError(t, sw.Flush())

	assert.Equal(t,
		`<node id="camera_node" name="Camera">`+
			`<lookat>0.0 0.0 10.0 0.0 0.0 0.0 0.0 1.0 0.0</lookat>`+
			`<rotate sid="rotateY">0.0 1.0 0.0 45.0</rotate>`+
			`<instance_camera url="#cam"></instance_camera>`+
			`<node><scale>1.0 2.0 1.0</scale></node>`+
			`</node>`,
		buf.String())
}

func TestWriteNode_NonFinite(t *testing.T) {
	n := NewNode()
	n.AddChild(NewNode())
	n.Children()[0].AddTransformation(NewTranslate(math.V3(0, nan(), 0)))

	var buf bytes.Buffer
	sw := streamwriter.New(&buf, "")
	err := NewWriter().WriteNode(sw, n)
	assert.ErrorIs(t, err, ErrInvalidValue)
	require.NoError(t, sw.Flush())
	assert.Empty(t, buf.String())
}

func TestNode_NilTransformation(t *testing.T) {
	tests := []struct {
		name string
		t    Transformation
	}{
		{"untyped", nil},
		{"lookat", (*Lookat)(nil)},
		{"matrix", (*Matrix)(nil)},
		{"rotate", (*Rotate)(nil)},
		{"scale", (*Scale)(nil)},
		{"skew", (*Skew)(nil)},
		{"translate", (*Translate)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNode()
			n.AddTransformation(tt.t)

			var err error
			require.NotPanics(t, func() { err = n.Validate() })
			assert.ErrorIs(t, err, ErrSchemaViolation)
			require.NotPanics(t, func() { n.Clone() })
		})
	}
}

func TestNode_CloneIsDeep(t *testing.T) {
	n := NewNode()
	n.SetID("root")
	n.AddTransformation(NewTranslate(math.V3(1, 0, 0)))
	child := NewNode()
	child.SetID("child")
	n.AddChild(child)

	c := n.Clone()
	assert.Equal(t, n, c)

	c.Transformations()[0].(*Translate).SetTranslation(math.V3(9, 9, 9))
	c.Children()[0].SetID("changed")
	c.InstanceCamera("#cam")

	assert.Equal(t, math.V3(1, 0, 0), n.Transformations()[0].(*Translate).Translation())
	assert.Equal(t, "child", n.Children()[0].ID())
	assert.Empty(t, n.CameraURLs())
}

func TestNode_LocalMatrix(t *testing.T) {
	n := NewNode()
	n.AddTransformation(NewTranslate(math.V3(10, 0, 0)))
	n.AddTransformation(NewScale(math.V3(2, 2, 2)))

	// Scale applies first, then the translation.
	got := n.LocalMatrix().TransformPoint(math.V3(1, 1, 1))
	assert.Equal(t, math.V3(12, 2, 2), got)
}
