package breath

import "math"

// Vec2 is a value-typed 2D vector. All operations return new values so the
// same vector can be reused across particles without aliasing.
type Vec2 struct {
	X, Y float64
}

func VecFromAngle(angle, mag float64) Vec2 {
	return Vec2{X: math.Cos(angle) * mag, Y: math.Sin(angle) * mag}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(k float64) Vec2 { return Vec2{X: v.X * k, Y: v.Y * k} }

func (v Vec2) Mag() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns a unit vector, or the zero vector for near-zero input.
func (v Vec2) Normalize() Vec2 {
	m := v.Mag()
	if m < 1e-9 {
		return Vec2{}
	}
	return Vec2{X: v.X / m, Y: v.Y / m}
}

// Limit caps the vector magnitude at max, preserving direction.
func (v Vec2) Limit(max float64) Vec2 {
	m := v.Mag()
	if m <= max || m < 1e-9 {
		return v
	}
	return v.Scale(max / m)
}
