package sim

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nvoronin/railrush/internal/config"
	"github.com/nvoronin/railrush/internal/core"
)

// Avatar collision extents. The avatar is a rail vehicle, longer than wide.
const (
	avatarHeight = 1.6
	avatarDepth  = 2.4
)

// InvalidLaneError reports a lane-change request outside the valid range.
// The requested operation is a no-op and state is unchanged.
type InvalidLaneError struct {
	Lane, Max int
}

// Error implements the error interface.
func (e *InvalidLaneError) Error() string {
	return fmt.Sprintf("lane %d out of range [1, %d]", e.Lane, e.Max)
}

// laneTransition is an active lateral S-curve between two lanes. The curve
// spans a fixed forward distance, so its completion is driven by distance
// traveled rather than wall-clock time: speed changes mid-transition never
// stretch or compress the maneuver.
type laneTransition struct {
	fromX, toX   float64
	startZ, endZ float64
	target       int
}

// MotionController advances the avatar each tick, drives lane-change
// trajectories, and recomputes speed at section boundaries. It owns the
// avatar exclusively; there is exactly one per running game.
type MotionController struct {
	speed  config.SpeedConfig
	track  config.TrackConfig
	diff   *Difficulty
	logger *log.Logger

	pos            core.Vec3
	velocity       float64
	currentLane    int
	targetLane     int
	sectionsPassed int
	transition     *laneTransition
}

// NewMotionController creates a controller with the avatar on the center
// lane at the origin, moving at base speed.
func NewMotionController(cfg config.Config, diff *Difficulty, logger *log.Logger) *MotionController {
	if logger == nil {
		logger = log.Default()
	}
	mid := (cfg.Track.LaneCount + 1) / 2
	return &MotionController{
		speed:       cfg.Speed,
		track:       cfg.Track,
		diff:        diff,
		logger:      logger,
		pos:         core.Vec3{X: cfg.Track.LaneX(mid)},
		velocity:    cfg.Speed.BaseSpeed,
		currentLane: mid,
		targetLane:  mid,
	}
}

// Advance moves the avatar forward by velocity*dt, applies exactly one speed
// increment per newly entered section, and samples the active lane
// transition. A single large dt may cross several section boundaries; each
// one is applied in order, never skipped or doubled.
func (m *MotionController) Advance(dt float64) {
	prevZ := m.pos.Z
	m.pos.Z += m.velocity * dt

	from := SectionForZ(prevZ, m.track.SlabLength)
	to := SectionForZ(m.pos.Z, m.track.SlabLength)
	for s := from + 1; s <= to; s++ {
		m.sectionsPassed++
		m.velocity = m.diff.Speed(m.sectionsPassed)
	}

	if tr := m.transition; tr != nil {
		t := (m.pos.Z - tr.startZ) / (tr.endZ - tr.startZ)
		if t >= 1 {
			m.pos.X = tr.toX
			m.currentLane = tr.target
			m.transition = nil
		} else if t > 0 {
			m.pos.X = core.Lerp(tr.fromX, tr.toX, core.SmoothStep(t))
		}
	}
}

// SwitchToLane starts a lane transition toward lane n, discarding any prior
// one. An out-of-range lane is logged and returned as *InvalidLaneError; a
// request for the current lane with no active transition is logged and
// ignored.
func (m *MotionController) SwitchToLane(n int) error {
	if n < 1 || n > m.track.LaneCount {
		err := &InvalidLaneError{Lane: n, Max: m.track.LaneCount}
		m.logger.Warn("ignoring lane change", "error", err)
		return err
	}
	if n == m.currentLane && m.transition == nil {
		m.logger.Warn("ignoring lane change to current lane", "lane", n)
		return nil
	}

	// Fixed forward span at base speed keeps the maneuver geometry constant
	// regardless of the current multiplier.
	span := m.speed.BaseSpeed * m.speed.TransitionDuration
	m.transition = &laneTransition{
		fromX:  m.pos.X,
		toX:    m.track.LaneX(n),
		startZ: m.pos.Z,
		endZ:   m.pos.Z + span,
		target: n,
	}
	m.targetLane = n
	return nil
}

// Bounds returns the avatar's current bounding volume.
func (m *MotionController) Bounds() core.Box {
	center := core.Vec3{X: m.pos.X, Y: avatarHeight / 2, Z: m.pos.Z}
	return core.NewBox(center, m.track.TrackWidth*0.8, avatarHeight, avatarDepth)
}

// Position returns the avatar's current position.
func (m *MotionController) Position() core.Vec3 { return m.pos }

// Speed returns the avatar's current forward speed.
func (m *MotionController) Speed() float64 { return m.velocity }

// CurrentLane returns the committed lane index.
func (m *MotionController) CurrentLane() int { return m.currentLane }

// TargetLane returns the lane an active transition is heading to, or the
// current lane when idle.
func (m *MotionController) TargetLane() int { return m.targetLane }

// Transitioning reports whether a lane change is in progress.
func (m *MotionController) Transitioning() bool { return m.transition != nil }

// SectionsPassed returns how many section boundaries the avatar has crossed.
func (m *MotionController) SectionsPassed() int { return m.sectionsPassed }

// ForcePosition teleports the avatar. Test and restore hook only; the
// transition is cleared and the section counter realigned to the position.
func (m *MotionController) ForcePosition(pos core.Vec3) {
	m.pos = pos
	m.transition = nil
	m.sectionsPassed = SectionForZ(pos.Z, m.track.SlabLength)
	m.velocity = m.diff.Speed(m.sectionsPassed)
}

// ForceLane commits the avatar to lane n immediately, discarding any active
// transition. Restore hook only; n is clamped into the valid range.
func (m *MotionController) ForceLane(n int) {
	n = core.Clamp(n, 1, m.track.LaneCount)
	m.currentLane = n
	m.targetLane = n
	m.pos.X = m.track.LaneX(n)
	m.transition = nil
}

// ForceSpeed overrides the forward speed. Test hook only.
func (m *MotionController) ForceSpeed(v float64) {
	m.velocity = v
}

// Reset clears the transition state on total teardown.
func (m *MotionController) Reset() {
	m.transition = nil
}
