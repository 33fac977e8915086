package vec3

import (
	"errors"
	"math"
)

// Eps is the length below which a vector is considered degenerate and
// cannot be normalized.
const Eps = 1e-12

// ErrDegenerateVector is returned by Normalize when the vector length is
// below Eps.
var ErrDegenerateVector = errors.New("vec3: degenerate vector")

// Vec3 is a 3-component double-precision vector.
type Vec3 struct {
	X, Y, Z float64
}

// New returns a vector with the given components.
func New(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Set assigns the components of v in place.
func (v *Vec3) Set(x, y, z float64) {
	v.X, v.Y, v.Z = x, y, z
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns v − w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product v·w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v×w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector along v.
// It returns ErrDegenerateVector when the length of v is below Eps.
func (v Vec3) Normalize() (Vec3, error) {
	n := v.Norm()
	if n < Eps {
		return Vec3{}, ErrDegenerateVector
	}

	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}, nil
}

// Dist returns the distance between a and b.
func Dist(a, b Vec3) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// SqDist returns the squared distance between a and b.
func SqDist(a, b Vec3) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z

	return dx*dx + dy*dy + dz*dz
}
