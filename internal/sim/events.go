package sim

import "github.com/nvoronin/railrush/internal/core"

// Event is a notification toward the rendering collaborator. The renderer
// owns its own handles keyed by entity ID; it must not mutate simulation
// state in response.
type Event interface {
	simEvent()
}

// SlabCreatedEvent is emitted when a slab is generated.
type SlabCreatedEvent struct {
	Index     int
	StartZ    float64
	EndZ      float64
	LaneCount int
	Markers   []float64
}

func (SlabCreatedEvent) simEvent() {}

// SlabRemovedEvent is emitted when a slab is culled behind the avatar.
type SlabRemovedEvent struct {
	Index int
}

func (SlabRemovedEvent) simEvent() {}

// HazardSpawnedEvent is emitted when a barrier is placed on a slab.
type HazardSpawnedEvent struct {
	ID      int64
	Variant HazardVariant
	Pos     core.Vec3
}

func (HazardSpawnedEvent) simEvent() {}

// HazardRemovedEvent is emitted when a barrier's slab is culled.
type HazardRemovedEvent struct {
	ID int64
}

func (HazardRemovedEvent) simEvent() {}

// TargetSpawnedEvent is emitted when a person is placed on a slab.
type TargetSpawnedEvent struct {
	ID  int64
	Pos core.Vec3
}

func (TargetSpawnedEvent) simEvent() {}

// TargetRemovedEvent is emitted when a person's slab is culled.
type TargetRemovedEvent struct {
	ID     int64
	Struck bool
}

func (TargetRemovedEvent) simEvent() {}

// CollisionKind tags what the avatar collided with.
type CollisionKind int

const (
	CollisionHazard CollisionKind = iota
	CollisionTarget
)

// String returns a human-readable name for the collision kind.
func (k CollisionKind) String() string {
	switch k {
	case CollisionHazard:
		return "Hazard"
	case CollisionTarget:
		return "Target"
	default:
		return "Unknown"
	}
}

// CollisionEvent is emitted once when the avatar overlaps an entity.
// A hazard collision is terminal; a target collision marks the target struck.
type CollisionEvent struct {
	Kind CollisionKind
	ID   int64
}

func (CollisionEvent) simEvent() {}
