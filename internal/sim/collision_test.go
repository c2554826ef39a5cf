package sim

import (
	"testing"

	"github.com/nvoronin/railrush/internal/core"
)

func collisionSlab(hazards []*Hazard, targets []*Target) []*Slab {
	return []*Slab{{Index: 5, StartZ: 100, EndZ: 120, Hazards: hazards, Targets: targets}}
}

func placedHazard(id int64, x, z float64) *Hazard {
	h := &Hazard{}
	h.Place(id, HazardVariantA, core.Vec3{X: x, Z: z}, 2.0)
	return h
}

func placedTarget(id int64, x, z float64) *Target {
	tg := &Target{}
	tg.Place(id, core.Vec3{X: x, Z: z})
	return tg
}

func avatarAt(x, z float64) core.Box {
	return core.NewBox(core.Vec3{X: x, Y: 0.8, Z: z}, 1.6, 1.6, 2.4)
}

func TestFirstHazardHit(t *testing.T) {
	var cs CollisionSystem
	slabs := collisionSlab([]*Hazard{
		placedHazard(1, -4, 110),
		placedHazard(2, 0, 110),
	}, nil)

	if h := cs.FirstHazardHit(avatarAt(0, 110), slabs); h == nil || h.ID != 2 {
		t.Errorf("hit = %+v, want hazard 2", h)
	}
	if h := cs.FirstHazardHit(avatarAt(4, 110), slabs); h != nil {
		t.Errorf("clear lane reported hit %+v", h)
	}
	if h := cs.FirstHazardHit(avatarAt(0, 105), slabs); h != nil {
		t.Errorf("longitudinal miss reported hit %+v", h)
	}
}

func TestStrikeTargetsMarksAndExcludes(t *testing.T) {
	var cs CollisionSystem
	slabs := collisionSlab(nil, []*Target{
		placedTarget(10, 0, 110),
		placedTarget(11, 4, 110),
	})

	hit := cs.StrikeTargets(avatarAt(0, 110), slabs)
	if len(hit) != 1 || hit[0].ID != 10 {
		t.Fatalf("struck = %v, want only target 10", hit)
	}
	if !hit[0].Struck() {
		t.Error("returned target not marked struck")
	}

	// A struck target is permanently excluded from further checks.
	if again := cs.StrikeTargets(avatarAt(0, 110), slabs); len(again) != 0 {
		t.Errorf("second pass struck %d targets, want 0", len(again))
	}
}

func TestAnyWithin(t *testing.T) {
	var cs CollisionSystem

	near := placedTarget(20, 0, 112)
	far := placedHazard(21, 0, 160)
	slabs := collisionSlab([]*Hazard{far}, []*Target{near})

	if !cs.AnyWithin(avatarAt(0, 110), 5, slabs) {
		t.Error("target 2 units ahead not reported within radius 5")
	}
	if cs.AnyWithin(avatarAt(0, 110), 1, slabs) {
		t.Error("nothing lies within radius 1")
	}

	// Struck targets no longer trigger the warning.
	near.Strike()
	if cs.AnyWithin(avatarAt(0, 110), 5, slabs) {
		t.Error("struck target still reported within radius")
	}

	// Hazards always count.
	if !cs.AnyWithin(avatarAt(0, 110), 60, slabs) {
		t.Error("hazard within radius 60 not reported")
	}
}
