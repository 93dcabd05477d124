package core

import "github.com/chewxy/math32"

// vec2 is a plain 2-D float32 vector in grid units. The core keeps its own
// minimal type here rather than reaching for golang/geo's r2.Point, whose
// float64 fields would force a cast at every call site on the hot path.
type vec2 struct {
	X, Y float32
}

func (v vec2) Add(o vec2) vec2 { return vec2{v.X + o.X, v.Y + o.Y} }
func (v vec2) Sub(o vec2) vec2 { return vec2{v.X - o.X, v.Y - o.Y} }
func (v vec2) Scale(s float32) vec2 { return vec2{v.X * s, v.Y * s} }

func (v vec2) Dot(o vec2) float32 { return v.X*o.X + v.Y*o.Y }

func (v vec2) Len() float32 { return math32.Sqrt(v.X*v.X + v.Y*v.Y) }

// Normalized returns v/|v|; the zero vector is returned unchanged.
func (v vec2) Normalized() vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Rotated rotates v by theta radians, clockwise-positive to match the
// robot's own frame convention.
func (v vec2) Rotated(theta float32) vec2 {
	s, c := math32.Sincos(theta)
	return vec2{
		X: v.X*c + v.Y*s,
		Y: -v.X*s + v.Y*c,
	}
}
