// Package core provides the geometry primitives shared by the simulation.
// It contains no external dependencies to keep the math pure and testable.
package core

import "math"

// Vec3 is a point or displacement in world space.
// X is lateral (across the lanes), Y is up, Z is forward along the track.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Len returns the Euclidean length of the vector.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Box is an axis-aligned bounding volume used for collision detection.
type Box struct {
	Min, Max Vec3
}

// NewBox creates a box from a center point and full extents per axis.
func NewBox(center Vec3, w, h, d float64) Box {
	half := Vec3{w / 2, h / 2, d / 2}
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the center point of the box.
func (b Box) Center() Vec3 {
	return Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Intersects reports whether two boxes overlap.
// Uses standard AABB separation tests on each axis.
func (b Box) Intersects(o Box) bool {
	if b.Max.X <= o.Min.X || o.Max.X <= b.Min.X {
		return false
	}
	if b.Max.Y <= o.Min.Y || o.Max.Y <= b.Min.Y {
		return false
	}
	if b.Max.Z <= o.Min.Z || o.Max.Z <= b.Min.Z {
		return false
	}
	return true
}

// Contains reports whether the point p lies inside the box.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X < b.Max.X &&
		p.Y >= b.Min.Y && p.Y < b.Max.Y &&
		p.Z >= b.Min.Z && p.Z < b.Max.Z
}

// Translate returns a copy of the box shifted by d.
func (b Box) Translate(d Vec3) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Clamp restricts an integer value to [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Lerp linearly interpolates between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SmoothStep applies the cubic ease 3t^2 - 2t^3, clamping t to [0, 1].
// Both endpoints have zero slope, which makes it suitable for easing
// lateral lane-change trajectories.
func SmoothStep(t float64) float64 {
	t = ClampF(t, 0, 1)
	return t * t * (3 - 2*t)
}
