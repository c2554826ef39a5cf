package core

import (
	"math"
	"testing"
)

func TestBoxIntersects(t *testing.T) {
	a := NewBox(Vec3{X: 0, Y: 1, Z: 0}, 2, 2, 2)

	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"overlapping", NewBox(Vec3{X: 0.5, Y: 1, Z: 0.5}, 2, 2, 2), true},
		{"identical", NewBox(Vec3{X: 0, Y: 1, Z: 0}, 2, 2, 2), true},
		{"separated on x", NewBox(Vec3{X: 5, Y: 1, Z: 0}, 2, 2, 2), false},
		{"separated on y", NewBox(Vec3{X: 0, Y: 10, Z: 0}, 2, 2, 2), false},
		{"separated on z", NewBox(Vec3{X: 0, Y: 1, Z: 5}, 2, 2, 2), false},
		{"touching faces", NewBox(Vec3{X: 2, Y: 1, Z: 0}, 2, 2, 2), false},
		{"thin overlapping", NewBox(Vec3{X: 0, Y: 1, Z: 0.9}, 10, 2, 0.5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			// Intersection is symmetric
			if got := tt.b.Intersects(a); got != tt.want {
				t.Errorf("reverse Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewBoxExtents(t *testing.T) {
	b := NewBox(Vec3{X: 1, Y: 2, Z: 3}, 2, 4, 6)

	if b.Min.X != 0 || b.Max.X != 2 {
		t.Errorf("X extents = [%f, %f], want [0, 2]", b.Min.X, b.Max.X)
	}
	if b.Min.Y != 0 || b.Max.Y != 4 {
		t.Errorf("Y extents = [%f, %f], want [0, 4]", b.Min.Y, b.Max.Y)
	}
	if b.Min.Z != 0 || b.Max.Z != 6 {
		t.Errorf("Z extents = [%f, %f], want [0, 6]", b.Min.Z, b.Max.Z)
	}

	c := b.Center()
	if c.X != 1 || c.Y != 2 || c.Z != 3 {
		t.Errorf("Center() = %+v, want {1 2 3}", c)
	}
}

func TestBoxContains(t *testing.T) {
	b := NewBox(Vec3{}, 2, 2, 2)

	if !b.Contains(Vec3{X: 0, Y: 0, Z: 0}) {
		t.Error("center should be contained")
	}
	if b.Contains(Vec3{X: 3, Y: 0, Z: 0}) {
		t.Error("outside point should not be contained")
	}
}

func TestSmoothStep(t *testing.T) {
	if got := SmoothStep(0); got != 0 {
		t.Errorf("SmoothStep(0) = %f, want 0", got)
	}
	if got := SmoothStep(1); got != 1 {
		t.Errorf("SmoothStep(1) = %f, want 1", got)
	}
	if got := SmoothStep(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("SmoothStep(0.5) = %f, want 0.5", got)
	}

	// Clamped outside [0, 1]
	if got := SmoothStep(-1); got != 0 {
		t.Errorf("SmoothStep(-1) = %f, want 0", got)
	}
	if got := SmoothStep(2); got != 1 {
		t.Errorf("SmoothStep(2) = %f, want 1", got)
	}

	// Monotone on [0, 1]
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := SmoothStep(float64(i) / 100)
		if v < prev {
			t.Fatalf("SmoothStep not monotone at t=%f", float64(i)/100)
		}
		prev = v
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 10, 0.5); got != 6 {
		t.Errorf("Lerp(2, 10, 0.5) = %f, want 6", got)
	}
	if got := Lerp(2, 10, 0); got != 2 {
		t.Errorf("Lerp(2, 10, 0) = %f, want 2", got)
	}
	if got := Lerp(2, 10, 1); got != 10 {
		t.Errorf("Lerp(2, 10, 1) = %f, want 10", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 1, 3); got != 3 {
		t.Errorf("Clamp(5, 1, 3) = %d, want 3", got)
	}
	if got := Clamp(-5, 1, 3); got != 1 {
		t.Errorf("Clamp(-5, 1, 3) = %d, want 1", got)
	}
	if got := ClampF(0.5, 0, 1); got != 0.5 {
		t.Errorf("ClampF(0.5, 0, 1) = %f, want 0.5", got)
	}
}
