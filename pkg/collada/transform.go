package collada

import (
	"fmt"

	"github.com/Faultbox/collada-go/pkg/math"
	"github.com/Faultbox/collada-go/pkg/slot"
)

// TransformKind identifies one of the COLLADA transformation elements.
type TransformKind int

const (
	KindLookat    TransformKind = 1
	KindMatrix    TransformKind = 2
	KindRotate    TransformKind = 3
	KindScale     TransformKind = 4
	KindSkew      TransformKind = 5
	KindTranslate TransformKind = 6
)

// transformKinds maps each kind to its element name and value count.
var transformKinds = map[TransformKind]struct {
	tag    string
	values int
}{
	KindLookat:    {"lookat", 9},
	KindMatrix:    {"matrix", 16},
	KindRotate:    {"rotate", 4},
	KindScale:     {"scale", 3},
	KindSkew:      {"skew", 7},
	KindTranslate: {"translate", 3},
}

// String returns the element name of the kind.
func (k TransformKind) String() string {
	if info, ok := transformKinds[k]; ok {
		return info.tag
	}
	return fmt.Sprintf("Unknown(%d)", int(k))
}

// Transformation is one of Lookat, Matrix, Rotate, Scale, Skew or Translate.
// The set is closed: only types in this package implement it.
type Transformation interface {
	// Kind returns the kind tag, fixed at construction.
	Kind() TransformKind
	// SID returns the scoped id, empty when unset.
	SID() string
	SetSID(sid string)
	// ToMat4 returns the transform as a row-major matrix.
	ToMat4() math.Mat4
	// Clone returns an independent copy of the same kind.
	Clone() Transformation

	// values returns the element text content in schema order.
	values() []float64
	sidSlot() slot.Slot[string]
}

type transformBase struct {
	sid slot.Slot[string]
}

// SID returns the scoped id, empty when unset.
func (b *transformBase) SID() string { return b.sid.Value() }

// SetSID sets the scoped id.
func (b *transformBase) SetSID(sid string)          { b.sid.Set(sid) }
func (b *transformBase) sidSlot() slot.Slot[string] { return b.sid }

// Lookat positions and orients an object from an eye position, an interest
// point and an up direction.
type Lookat struct {
	transformBase

	eye      math.Vec3 // Position of the viewer; the translation
	interest math.Vec3 // Target; defines pitch and yaw
	up       math.Vec3 // Up axis; defines roll
}

// NewLookat returns a lookat transform.
func NewLookat(eye, interest, up math.Vec3) *Lookat {
	return &Lookat{eye: eye, interest: interest, up: up}
}

// Kind returns KindLookat.
func (l *Lookat) Kind() TransformKind { return KindLookat }

// EyePosition returns the eye position.
func (l *Lookat) EyePosition() math.Vec3 { return l.eye }

// SetEyePosition sets the eye position.
func (l *Lookat) SetEyePosition(v math.Vec3) { l.eye = v }

// InterestPosition returns the interest point.
func (l *Lookat) InterestPosition() math.Vec3 { return l.interest }

// SetInterestPosition sets the interest point.
func (l *Lookat) SetInterestPosition(v math.Vec3) { l.interest = v }

// UpPosition returns the up vector.
func (l *Lookat) UpPosition() math.Vec3 { return l.up }

// SetUpPosition sets the up vector.
func (l *Lookat) SetUpPosition(v math.Vec3) { l.up = v }

// ToMat4 returns the lookat as a row-major matrix.
func (l *Lookat) ToMat4() math.Mat4 { return math.LookAt(l.eye, l.interest, l.up) }

// Clone returns a copy with its own vectors.
func (l *Lookat) Clone() Transformation {
	c := *l
	return &c
}

func (l *Lookat) values() []float64 {
	return []float64{
		l.eye.X, l.eye.Y, l.eye.Z,
		l.interest.X, l.interest.Y, l.interest.Z,
		l.up.X, l.up.Y, l.up.Z,
	}
}

// Matrix is an explicit 4x4 transform.
type Matrix struct {
	transformBase
	m math.Mat4
}

// NewMatrix returns a matrix transform.
func NewMatrix(m math.Mat4) *Matrix {
	return &Matrix{m: m}
}

// Kind returns KindMatrix.
func (t *Matrix) Kind() TransformKind { return KindMatrix }

// Matrix returns the matrix.
func (t *Matrix) Matrix() math.Mat4 { return t.m }

// SetMatrix sets the matrix.
func (t *Matrix) SetMatrix(m math.Mat4) { t.m = m }

// ToMat4 returns the matrix as a row-major matrix.
func (t *Matrix) ToMat4() math.Mat4 { return t.m }
func (t *Matrix) values() []float64 { return append([]float64(nil), t.m[:]...) }

// Clone returns an independent copy.
func (t *Matrix) Clone() Transformation { c := *t; return &c }

// Rotate is a rotation of Angle degrees around Axis.
type Rotate struct {
	transformBase
	axis  math.Vec3
	angle float64
}

// NewRotate returns a rotation of degrees around axis.
func NewRotate(axis math.Vec3, degrees float64) *Rotate {
	return &Rotate{axis: axis, angle: degrees}
}

// Kind returns KindRotate.
func (t *Rotate) Kind() TransformKind { return KindRotate }

// Axis returns the rotation axis.
func (t *Rotate) Axis() math.Vec3 { return t.axis }

// SetAxis sets the rotation axis.
func (t *Rotate) SetAxis(v math.Vec3) { t.axis = v }

// Angle returns the angle in degrees.
func (t *Rotate) Angle() float64 { return t.angle }

// SetAngle sets the angle in degrees.
func (t *Rotate) SetAngle(degrees float64) { t.angle = degrees }

// ToMat4 returns the rotate as a row-major matrix.
func (t *Rotate) ToMat4() math.Mat4 { return math.RotateAxis(t.axis, t.angle) }
func (t *Rotate) values() []float64 { return []float64{t.axis.X, t.axis.Y, t.axis.Z, t.angle} }

// Clone returns an independent copy.
func (t *Rotate) Clone() Transformation { c := *t; return &c }

// Scale is a non-uniform scale.
type Scale struct {
	transformBase
	v math.Vec3
}

// NewScale returns a scale transform.
func NewScale(v math.Vec3) *Scale {
	return &Scale{v: v}
}

// Kind returns KindScale.
func (t *Scale) Kind() TransformKind { return KindScale }

// Scale returns the scale factors.
func (t *Scale) Scale() math.Vec3 { return t.v }

// SetScale sets the scale factors.
func (t *Scale) SetScale(v math.Vec3) { t.v = v }

// ToMat4 returns the scale as a row-major matrix.
func (t *Scale) ToMat4() math.Mat4 { return math.Scale(t.v) }
func (t *Scale) values() []float64 { return []float64{t.v.X, t.v.Y, t.v.Z} }

// Clone returns an independent copy.
func (t *Scale) Clone() Transformation { c := *t; return &c }

// Skew displaces points along the translation axis in proportion to their
// component along the rotation axis.
type Skew struct {
	transformBase
	angle       float64
	rotation    math.Vec3
	translation math.Vec3
}

// NewSkew returns a skew of degrees between the two axes.
func NewSkew(degrees float64, rotation, translation math.Vec3) *Skew {
	return &Skew{angle: degrees, rotation: rotation, translation: translation}
}

// Kind returns KindSkew.
func (t *Skew) Kind() TransformKind { return KindSkew }

// Angle returns the angle in degrees.
func (t *Skew) Angle() float64 { return t.angle }

// SetAngle sets the angle in degrees.
func (t *Skew) SetAngle(degrees float64) { t.angle = degrees }

// RotationAxis returns the rotation axis.
func (t *Skew) RotationAxis() math.Vec3 { return t.rotation }

// SetRotationAxis sets the rotation axis.
func (t *Skew) SetRotationAxis(v math.Vec3) { t.rotation = v }

// TranslationAxis returns the translation axis.
func (t *Skew) TranslationAxis() math.Vec3 { return t.translation }

// SetTranslationAxis sets the translation axis.
func (t *Skew) SetTranslationAxis(v math.Vec3) { t.translation = v }

// ToMat4 returns the skew as a row-major matrix.
func (t *Skew) ToMat4() math.Mat4 { return math.Skew(t.angle, t.rotation, t.translation) }

// Clone returns an independent copy.
func (t *Skew) Clone() Transformation { c := *t; return &c }

func (t *Skew) values() []float64 {
	return []float64{
		t.angle,
		t.rotation.X, t.rotation.Y, t.rotation.Z,
		t.translation.X, t.translation.Y, t.translation.Z,
	}
}

// Translate is a translation.
type Translate struct {
	transformBase
	v math.Vec3
}

// NewTranslate returns a translation.
func NewTranslate(v math.Vec3) *Translate {
	return &Translate{v: v}
}

// Kind returns KindTranslate.
func (t *Translate) Kind() TransformKind { return KindTranslate }

// Translation returns the translation.
func (t *Translate) Translation() math.Vec3 { return t.v }

// SetTranslation sets the translation.
func (t *Translate) SetTranslation(v math.Vec3) { t.v = v }

// ToMat4 returns the translate as a row-major matrix.
func (t *Translate) ToMat4() math.Mat4 { return math.Translate(t.v) }
func (t *Translate) values() []float64 { return []float64{t.v.X, t.v.Y, t.v.Z} }

// Clone returns an independent copy.
func (t *Translate) Clone() Transformation { c := *t; return &c }

// isNilTransformation reports whether t is nil or holds a nil pointer of
// one of the package's transformation types.
func isNilTransformation(t Transformation) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *Lookat:
		return v == nil
	case *Matrix:
		return v == nil
	case *Rotate:
		return v == nil
	case *Scale:
		return v == nil
	case *Skew:
		return v == nil
	case *Translate:
		return v == nil
	}
	return false
}

// newTransformation builds a transformation of kind from its element values.
func newTransformation(kind TransformKind, v []float64) (Transformation, error) {
	info, ok := transformKinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown transformation kind %d", ErrInvalidValue, int(kind))
	}
	if len(v) != info.values {
		return nil, invalidValue(info.tag, "", fmt.Sprintf("expected %d values, got %d", info.values, len(v)))
	}
	switch kind {
	case KindLookat:
		return NewLookat(math.V3(v[0], v[1], v[2]), math.V3(v[3], v[4], v[5]), math.V3(v[6], v[7], v[8])), nil
	case KindMatrix:
		var m math.Mat4
		copy(m[:], v)
		return NewMatrix(m), nil
	case KindRotate:
		return NewRotate(math.V3(v[0], v[1], v[2]), v[3]), nil
	case KindScale:
		return NewScale(math.V3(v[0], v[1], v[2])), nil
	case KindSkew:
		return NewSkew(v[0], math.V3(v[1], v[2], v[3]), math.V3(v[4], v[5], v[6])), nil
	default:
		return NewTranslate(math.V3(v[0], v[1], v[2])), nil
	}
}
