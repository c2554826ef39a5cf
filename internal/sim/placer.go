package sim

import (
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/nvoronin/railrush/internal/config"
	"github.com/nvoronin/railrush/internal/core"
)

// warmupSections is the number of sections before the hazard type sequence
// switches from section-parity to strict alternation.
const warmupSections = 5

// ContentPlacer populates freshly generated full-lane slabs with hazards and
// targets. It owns the entity ID counter and the type-alternation counter;
// placed entities are acquired from the pools and reclaimed when the owning
// slab is culled.
type ContentPlacer struct {
	cfg    config.Config
	diff   *Difficulty
	rng    *rand.Rand
	logger *log.Logger
	emit   func(Event)

	hazards *Pool[*Hazard]
	targets *Pool[*Target]

	nextID      int64
	typeCounter int
	lastSection int
}

// NewContentPlacer creates a placer with its own entity pools.
func NewContentPlacer(cfg config.Config, diff *Difficulty, rng *rand.Rand, logger *log.Logger, emit func(Event)) *ContentPlacer {
	if logger == nil {
		logger = log.Default()
	}
	p := &ContentPlacer{
		cfg:         cfg,
		diff:        diff,
		rng:         rng,
		logger:      logger,
		emit:        emit,
		hazards:     NewPool(func() *Hazard { return &Hazard{} }, cfg.Pool.HazardCapacity, logger),
		targets:     NewPool(func() *Target { return &Target{} }, cfg.Pool.TargetCapacity, logger),
		lastSection: -1,
	}
	p.hazards.Prewarm(cfg.Hazard.MaxHighBarriers)
	p.targets.Prewarm(cfg.Track.LaneCount * cfg.People.MaxPerTrack)
	return p
}

// Populate places hazards and targets on a freshly generated slab. Initial
// single-lane slabs receive no content.
func (p *ContentPlacer) Populate(slab *Slab) {
	if len(slab.Lanes) < p.cfg.Track.LaneCount {
		return
	}

	section := SectionForSlab(slab.Index)
	variant := p.variantFor(section)

	count := p.diff.BarrierCount(p.rng, section)
	lanes := p.pickLanes(slab.Lanes, count)
	for _, lane := range lanes {
		h := p.hazards.Acquire()
		h.Place(p.newID(), variant, core.Vec3{X: lane.X, Z: p.bandZ(section)}, p.cfg.Track.TrackWidth)
		slab.Hazards = append(slab.Hazards, h)
		p.emit(HazardSpawnedEvent{ID: h.ID, Variant: h.Variant, Pos: h.Pos})
	}

	p.placeTargets(slab, section)
}

// variantFor returns the hazard variant for the given section, advancing the
// alternation counter once per newly seen section. Before the warm-up
// threshold the variant follows section parity; after it the counter
// alternates strictly.
func (p *ContentPlacer) variantFor(section int) HazardVariant {
	if section != p.lastSection {
		if section >= warmupSections {
			p.typeCounter++
		}
		p.lastSection = section
	}
	if section < warmupSections {
		if section%2 == 0 {
			return HazardVariantA
		}
		return HazardVariantB
	}
	if p.typeCounter%2 == 0 {
		return HazardVariantA
	}
	return HazardVariantB
}

// pickLanes draws count distinct lanes uniformly without replacement using
// remove-and-shrink sampling, then sorts them ascending by index so
// downstream ordering is deterministic. Count is clamped to the lane count.
func (p *ContentPlacer) pickLanes(lanes []Lane, count int) []Lane {
	if count > len(lanes) {
		count = len(lanes)
	}
	candidates := make([]Lane, len(lanes))
	copy(candidates, lanes)

	picked := make([]Lane, 0, count)
	for range count {
		j := p.rng.Intn(len(candidates))
		picked = append(picked, candidates[j])
		candidates[j] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i].Index < picked[j].Index })
	return picked
}

// bandZ draws a longitudinal coordinate uniformly from the placement band of
// the given section. The band is a fraction of the section's span, not the
// slab's, since a section covers two and a half slabs.
func (p *ContentPlacer) bandZ(section int) float64 {
	sectionLen := p.cfg.Track.SectionLength()
	start := float64(section) * sectionLen
	band := p.cfg.Hazard.BandLow + p.rng.Float64()*(p.cfg.Hazard.BandHigh-p.cfg.Hazard.BandLow)
	return start + band*sectionLen
}

// placeTargets spawns people on each lane of the slab. Counts come from the
// configured per-lane range; when GuaranteeSingle is set, one lane is forced
// to hold exactly one person.
func (p *ContentPlacer) placeTargets(slab *Slab, section int) {
	singleLane := -1
	if p.cfg.People.GuaranteeSingle {
		singleLane = p.rng.Intn(len(slab.Lanes))
	}

	for i, lane := range slab.Lanes {
		n := p.cfg.People.MinPerTrack
		if span := p.cfg.People.MaxPerTrack - p.cfg.People.MinPerTrack; span > 0 {
			n += p.rng.Intn(span + 1)
		}
		if i == singleLane {
			n = 1
		}
		for range n {
			t := p.targets.Acquire()
			jitter := (p.rng.Float64() - 0.5) * p.cfg.Track.TrackWidth * 0.5
			t.Place(p.newID(), core.Vec3{X: lane.X + jitter, Z: p.bandZ(section)})
			slab.Targets = append(slab.Targets, t)
			p.emit(TargetSpawnedEvent{ID: t.ID, Pos: t.Pos})
		}
	}
}

// Reclaim releases every entity on a culled slab back to the pools and
// returns the number of targets that were passed without being struck.
func (p *ContentPlacer) Reclaim(slab *Slab) (avoided int) {
	for _, h := range slab.Hazards {
		p.emit(HazardRemovedEvent{ID: h.ID})
		p.hazards.Release(h)
	}
	slab.Hazards = nil

	for _, t := range slab.Targets {
		if !t.Struck() {
			avoided++
		}
		p.emit(TargetRemovedEvent{ID: t.ID, Struck: t.Struck()})
		p.targets.Release(t)
	}
	slab.Targets = nil
	return avoided
}

// Dispose tears down both pools. Nothing may use the placer afterwards.
func (p *ContentPlacer) Dispose() {
	p.hazards.DisposeAll()
	p.targets.DisposeAll()
}

// PoolStats returns the hazard and target pool counters, for diagnostics.
func (p *ContentPlacer) PoolStats() (hazards, targets PoolStats) {
	return p.hazards.Stats(), p.targets.Stats()
}

func (p *ContentPlacer) newID() int64 {
	p.nextID++
	return p.nextID
}
