// Package geom holds the small vector type shared by data tables and the world.
package geom

import "math"

// Vec3 is a world-space position or offset.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// MoveToward returns the point reached after travelling at most maxDist from v
// toward target, and whether target was reached.
func (v Vec3) MoveToward(target Vec3, maxDist float64) (Vec3, bool) {
	d := target.Sub(v)
	dist := d.Len()
	if dist <= maxDist || dist == 0 {
		return target, true
	}
	return v.Add(d.Scale(maxDist / dist)), false
}
