package sim

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/nvoronin/railrush/internal/config"
	"github.com/nvoronin/railrush/internal/core"
)

// Scoring weights.
const (
	pointsPerStruck  = 100
	pointsPerAvoided = 25
)

// State is the externally visible snapshot of a tick.
type State struct {
	Score          int
	Distance       float64
	Speed          float64
	Lane           int
	SectionsPassed int
	Struck         int
	Avoided        int
	Paused         bool
	Over           bool
}

// TickResult carries the events produced by one tick plus the resulting
// state. The event slice is reused between ticks; consumers must not retain
// it past the next Advance call.
type TickResult struct {
	Events []Event
	State  State
}

// Game wires the simulation components together and owns the tick loop.
// Everything is single-threaded and cooperative: the whole core advances
// once per externally supplied time delta, and all simulation-owned
// collections are mutated only from Advance.
type Game struct {
	cfg    config.Config
	logger *log.Logger

	diff       *Difficulty
	motion     *MotionController
	placer     *ContentPlacer
	segments   *SegmentGenerator
	collisions CollisionSystem

	events []Event
	primed bool

	score    int
	struck   int
	avoided  int
	paused   bool
	over     bool
	disposed bool
}

// New validates the configuration, builds the component graph, and eagerly
// generates the initial slab window. The creation and spawn events from that
// window are delivered with the first tick result. A nil logger falls back to
// the default.
func New(cfg config.Config, seed int64, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	g := &Game{cfg: cfg, logger: logger}
	emit := func(e Event) { g.events = append(g.events, e) }

	rng := rand.New(rand.NewSource(seed))
	g.diff = NewDifficulty(cfg)
	g.motion = NewMotionController(cfg, g.diff, logger)
	g.placer = NewContentPlacer(cfg, g.diff, rng, logger, emit)
	g.segments = NewSegmentGenerator(cfg.Track, g.placer, logger, emit)
	g.segments.Prime()
	g.primed = true
	return g, nil
}

// Advance runs one simulation tick: motion, generation/cleanup, then
// collision queries. Nothing in this path fails hard; faults degrade to a
// logged skip so a real-time presentation layer is never stalled.
func (g *Game) Advance(dt float64) TickResult {
	if g.disposed || g.over || g.paused || dt <= 0 {
		return TickResult{State: g.State()}
	}
	if g.primed {
		// Events accumulated while priming stay pending until this first
		// delivered tick, so the renderer sees the initial world.
		g.primed = false
	} else {
		g.events = g.events[:0]
	}

	g.motion.Advance(dt)

	avoided := g.segments.Advance(g.motion.Position().Z)
	g.avoided += avoided
	g.score += avoided * pointsPerAvoided

	slabs := g.segments.Slabs()
	avatar := g.motion.Bounds()

	for _, t := range g.collisions.StrikeTargets(avatar, slabs) {
		g.struck++
		g.score += pointsPerStruck
		g.events = append(g.events, CollisionEvent{Kind: CollisionTarget, ID: t.ID})
	}

	if h := g.collisions.FirstHazardHit(avatar, slabs); h != nil {
		g.over = true
		g.events = append(g.events, CollisionEvent{Kind: CollisionHazard, ID: h.ID})
		g.logger.Info("run ended", "hazard", h.ID, "variant", h.Variant, "score", g.score)
	}

	return TickResult{Events: g.events, State: g.State()}
}

// RequestLaneChange asks the avatar to move to lane n (1..laneCount).
// Returns *InvalidLaneError for an out-of-range lane; ignored after the run
// has ended.
func (g *Game) RequestLaneChange(n int) error {
	if g.over || g.disposed {
		return nil
	}
	return g.motion.SwitchToLane(n)
}

// Near reports whether any hazard or unstruck target is within radius of
// the avatar's bounding-volume center. Advisory only.
func (g *Game) Near(radius float64) bool {
	return g.collisions.AnyWithin(g.motion.Bounds(), radius, g.segments.Slabs())
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// State returns the current externally visible state.
func (g *Game) State() State {
	return State{
		Score:          g.score,
		Distance:       g.motion.Position().Z,
		Speed:          g.motion.Speed(),
		Lane:           g.motion.CurrentLane(),
		SectionsPassed: g.motion.SectionsPassed(),
		Struck:         g.struck,
		Avoided:        g.avoided,
		Paused:         g.paused,
		Over:           g.over,
	}
}

// Slabs returns the live slabs ordered by index, for the renderer.
func (g *Game) Slabs() []*Slab {
	return g.segments.Slabs()
}

// Avatar returns the avatar's position, for the renderer.
func (g *Game) Avatar() core.Vec3 {
	return g.motion.Position()
}

// Transitioning reports whether a lane change is in progress.
func (g *Game) Transitioning() bool {
	return g.motion.Transitioning()
}

// TargetLane returns the lane an active transition is heading to, or the
// current lane when idle.
func (g *Game) TargetLane() int {
	return g.motion.TargetLane()
}

// Config returns the active configuration.
func (g *Game) Config() config.Config {
	return g.cfg
}

// Difficulty returns the difficulty model for runtime adjustment.
func (g *Game) Difficulty() *Difficulty {
	return g.diff
}

// PoolStats returns the entity pool counters, for diagnostics.
func (g *Game) PoolStats() (hazards, targets PoolStats) {
	return g.placer.PoolStats()
}

// ForcePosition teleports the avatar. Test hook.
func (g *Game) ForcePosition(pos core.Vec3) {
	g.motion.ForcePosition(pos)
}

// ForceSpeed overrides the avatar's forward speed. Test hook.
func (g *Game) ForceSpeed(v float64) {
	g.motion.ForceSpeed(v)
}

// Dispose tears the whole core down: every slab, pooled entity, and
// transition. Deterministic and total; nothing may be referenced afterwards.
func (g *Game) Dispose() {
	if g.disposed {
		return
	}
	g.events = g.events[:0]
	g.primed = false
	g.segments.DisposeAll()
	g.placer.Dispose()
	g.motion.Reset()
	g.disposed = true
}
