package sim

import "github.com/nvoronin/railrush/internal/core"

// CollisionSystem answers bounding-volume queries between the avatar and the
// live hazard/target set. A plain AABB overlap test is sufficient here; a
// secondary distance gate would misjudge long thin barriers.
type CollisionSystem struct{}

// FirstHazardHit returns the first hazard whose bounds intersect the avatar,
// or nil. The caller treats a hit as terminal.
func (CollisionSystem) FirstHazardHit(avatar core.Box, slabs []*Slab) *Hazard {
	for _, slab := range slabs {
		for _, h := range slab.Hazards {
			if avatar.Intersects(h.Bounds) {
				return h
			}
		}
	}
	return nil
}

// StrikeTargets marks every intersecting, not-yet-struck target as struck and
// returns them. Already-struck targets are skipped entirely.
func (CollisionSystem) StrikeTargets(avatar core.Box, slabs []*Slab) []*Target {
	var hit []*Target
	for _, slab := range slabs {
		for _, t := range slab.Targets {
			if t.Struck() {
				continue
			}
			if avatar.Intersects(t.Bounds) {
				t.Strike()
				hit = append(hit, t)
			}
		}
	}
	return hit
}

// AnyWithin reports whether any hazard or not-yet-struck target lies within
// radius of the avatar's bounding-volume center. Used for early-warning
// signaling only.
func (CollisionSystem) AnyWithin(avatar core.Box, radius float64, slabs []*Slab) bool {
	center := avatar.Center()
	for _, slab := range slabs {
		for _, h := range slab.Hazards {
			if h.Bounds.Center().Sub(center).Len() <= radius {
				return true
			}
		}
		for _, t := range slab.Targets {
			if t.Struck() {
				continue
			}
			if t.Bounds.Center().Sub(center).Len() <= radius {
				return true
			}
		}
	}
	return false
}
