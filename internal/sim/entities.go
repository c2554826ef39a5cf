// Package sim implements the deterministic simulation core of the rail
// runner: segment generation, content placement, difficulty progression,
// avatar motion, collision queries, and entity pooling. It advances once per
// externally supplied time delta and has no background concurrency.
package sim

import (
	"github.com/nvoronin/railrush/internal/core"
)

// HazardVariant tags the two barrier kinds. All hazards spawned in one
// placement invocation share the same variant.
type HazardVariant int

const (
	HazardVariantA HazardVariant = iota // Low, wide barrier
	HazardVariantB                      // Tall, narrow barrier
)

// String returns a human-readable name for the variant.
func (v HazardVariant) String() string {
	switch v {
	case HazardVariantA:
		return "A"
	case HazardVariantB:
		return "B"
	default:
		return "Unknown"
	}
}

// footprint describes the per-variant collision extents, scaled by the
// configured track width.
type footprint struct {
	Width, Height, Depth float64
}

// Footprint returns the collision extents for this variant.
func (v HazardVariant) Footprint(trackWidth float64) footprint {
	switch v {
	case HazardVariantB:
		return footprint{Width: trackWidth * 0.8, Height: 2.4, Depth: 0.6}
	default:
		return footprint{Width: trackWidth * 1.6, Height: 1.0, Depth: 0.6}
	}
}

// Hazard is a static barrier. Touching it ends the run.
// Its lifecycle is owned by the content placer and the entity pool; a hazard
// is never shared across slabs.
type Hazard struct {
	ID       int64
	Variant  HazardVariant
	Pos      core.Vec3
	Bounds   core.Box
	disposed bool
}

// Place initializes the hazard for a new spawn.
func (h *Hazard) Place(id int64, v HazardVariant, pos core.Vec3, trackWidth float64) {
	fp := v.Footprint(trackWidth)
	h.ID = id
	h.Variant = v
	h.Pos = pos
	h.Bounds = core.NewBox(core.Vec3{X: pos.X, Y: fp.Height / 2, Z: pos.Z}, fp.Width, fp.Height, fp.Depth)
}

// Reset returns the hazard to a usable default state.
func (h *Hazard) Reset() {
	*h = Hazard{}
}

// Dispose releases the hazard. It must not be referenced afterwards.
func (h *Hazard) Dispose() {
	h.disposed = true
}

// IsDisposed reports whether the hazard has been disposed.
func (h *Hazard) IsDisposed() bool {
	return h.disposed
}

// Target dimensions. Targets are people standing on a track; striking one
// affects scoring but never ends the run.
const (
	targetWidth  = 0.8
	targetHeight = 1.8
	targetDepth  = 0.6
)

// Target is a passive entity with a one-way struck flag. Once struck it is
// permanently excluded from collision checks but stays on its slab for
// bookkeeping until the slab is culled.
type Target struct {
	ID       int64
	Pos      core.Vec3
	Bounds   core.Box
	struck   bool
	disposed bool
}

// Place initializes the target for a new spawn.
func (t *Target) Place(id int64, pos core.Vec3) {
	t.ID = id
	t.Pos = pos
	t.Bounds = core.NewBox(core.Vec3{X: pos.X, Y: targetHeight / 2, Z: pos.Z}, targetWidth, targetHeight, targetDepth)
}

// Strike marks the target as struck. The transition is one-way.
func (t *Target) Strike() {
	t.struck = true
}

// Struck reports whether the target has been struck.
func (t *Target) Struck() bool {
	return t.struck
}

// Reset returns the target to a usable default state.
func (t *Target) Reset() {
	*t = Target{}
}

// Dispose releases the target. It must not be referenced afterwards.
func (t *Target) Dispose() {
	t.disposed = true
}

// IsDisposed reports whether the target has been disposed.
func (t *Target) IsDisposed() bool {
	return t.disposed
}

// Lane is one lateral position a slab offers, identified by a 1-based index.
type Lane struct {
	Index int
	X     float64
}

// Slab is a fixed-length longitudinal world unit. Exactly one slab instance
// exists per index at any time; its lane count never changes after creation.
type Slab struct {
	Index     int
	StartZ    float64
	EndZ      float64
	Lanes     []Lane
	Visible   bool
	Generated bool

	// Markers holds the Z coordinate of every section boundary that falls
	// within this slab's span. The origin boundary is suppressed on slab 0.
	Markers []float64

	Hazards []*Hazard
	Targets []*Target
}

// Contains reports whether the longitudinal coordinate z lies on this slab.
func (s *Slab) Contains(z float64) bool {
	return z >= s.StartZ && z < s.EndZ
}
