// Package rig places cameras around a subject and expresses the placement
// as COLLADA transformations. Positions are computed for a Y-up scene.
package rig

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/collada-go/pkg/collada"
	"github.com/Faultbox/collada-go/pkg/math"
)

// ErrInvalidOrbit is returned for orbits that do not describe a position.
var ErrInvalidOrbit = errors.New("rig: invalid orbit")

// DefaultPitch looks down at the subject from about 35 degrees.
const DefaultPitch = 35.0

// Orbit is a camera position on a sphere around Center.
type Orbit struct {
	Center   math.Vec3
	Distance float64

	// Pitch is the elevation above the XZ plane and Yaw the rotation around
	// +Y, both in degrees. Yaw 0 places the camera on +Z.
	Pitch float64
	Yaw   float64
}

// Validate reports orbits with a non-positive distance, a pitch outside
// [-90,90] or non-finite values.
func (o Orbit) Validate() error {
	if !o.Center.IsFinite() || !finite(o.Distance) || !finite(o.Pitch) || !finite(o.Yaw) {
		return fmt.Errorf("%w: non-finite value", ErrInvalidOrbit)
	}
	if o.Distance <= 0 {
		return fmt.Errorf("%w: distance must be > 0, got %v", ErrInvalidOrbit, o.Distance)
	}
	if o.Pitch < -90 || o.Pitch > 90 {
		return fmt.Errorf("%w: pitch must be within [-90,90], got %v", ErrInvalidOrbit, o.Pitch)
	}
	return nil
}

// Position returns the camera position in world space.
func (o Orbit) Position() math.Vec3 {
	pitch := o.Pitch * gomath.Pi / 180
	yaw := o.Yaw * gomath.Pi / 180

	return o.Center.Add(math.V3(
		o.Distance*gomath.Cos(pitch)*gomath.Sin(yaw),
		o.Distance*gomath.Sin(pitch),
		o.Distance*gomath.Cos(pitch)*gomath.Cos(yaw),
	))
}

// Up returns an up vector that is never parallel to the view direction.
// Looking straight down, up points away from the yaw direction; looking
// straight up, toward it.
func (o Orbit) Up() math.Vec3 {
	if gomath.Abs(o.Pitch) < 90 {
		return math.V3(0, 1, 0)
	}
	yaw := o.Yaw * gomath.Pi / 180
	sign := -1.0
	if o.Pitch < 0 {
		sign = 1
	}
	return math.V3(sign*gomath.Sin(yaw), 0, sign*gomath.Cos(yaw))
}

// Lookat returns the orbit as a <lookat> transformation.
func (o Orbit) Lookat() (*collada.Lookat, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return collada.NewLookat(o.Position(), o.Center, o.Up()), nil
}

// Frame returns an orbit that keeps the box [lo,hi] inside a perspective
// camera with the given vertical field of view in degrees.
func Frame(lo, hi math.Vec3, yfov float64) (Orbit, error) {
	if !(yfov > 0 && yfov < 180) {
		return Orbit{}, fmt.Errorf("%w: field of view must be within (0,180), got %v", ErrInvalidOrbit, yfov)
	}

	center := lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Length() / 2
	if radius == 0 {
		radius = 1
	}

	half := yfov / 2 * gomath.Pi / 180
	o := Orbit{
		Center:   center,
		Distance: radius / gomath.Sin(half),
		Pitch:    DefaultPitch,
	}
	return o, o.Validate()
}

func finite(v float64) bool {
	return !gomath.IsNaN(v) && !gomath.IsInf(v, 0)
}
