package sim

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/nvoronin/railrush/internal/config"
)

// SlabsPerSection is the number of slabs a difficulty section spans.
const SlabsPerSection = 2.5

// initialLaneSlabs is how many slabs at the start of the run carry a single
// centered lane before the track fans out to the full lane count.
const initialLaneSlabs = 3

// Per-tick generation bounds. Generation cost is amortized across frames
// rather than bursting; cleanup only runs near the start of a slab.
const (
	maxSlabsPerTick   = 2
	lookaheadProgress = 0.6
	cleanupProgress   = 0.1
)

// SectionForSlab derives the section index from a slab index.
func SectionForSlab(index int) int {
	return int(float64(index) / SlabsPerSection)
}

// SectionForZ derives the section index from a longitudinal position.
// At every slab boundary this agrees with SectionForSlab.
func SectionForZ(z, slabLength float64) int {
	if z < 0 {
		return 0
	}
	return int(z / (slabLength * SlabsPerSection))
}

// SegmentGenerator lazily creates slabs ahead of the avatar and culls them
// once they fall behind the cleanup distance. Creation is idempotent per
// index: a second request for an existing index returns the slab unchanged.
type SegmentGenerator struct {
	cfg    config.TrackConfig
	placer *ContentPlacer
	logger *log.Logger
	emit   func(Event)

	slabs map[int]*Slab
	next  int // lowest index not yet generated
}

// NewSegmentGenerator creates a generator wired to the given placer.
func NewSegmentGenerator(cfg config.TrackConfig, placer *ContentPlacer, logger *log.Logger, emit func(Event)) *SegmentGenerator {
	if logger == nil {
		logger = log.Default()
	}
	return &SegmentGenerator{
		cfg:    cfg,
		placer: placer,
		logger: logger,
		emit:   emit,
		slabs:  make(map[int]*Slab),
	}
}

// Prime eagerly generates the initial window of slabs. Called once at start;
// the per-tick generation cap does not apply here.
func (g *SegmentGenerator) Prime() {
	for g.next < g.cfg.MaxVisible+g.cfg.Buffer {
		g.generate(g.next)
		g.next++
	}
}

// Generate returns the slab at index, creating it if needed.
func (g *SegmentGenerator) Generate(index int) *Slab {
	if slab, ok := g.slabs[index]; ok {
		return slab
	}
	slab := g.generate(index)
	if index >= g.next {
		g.next = index + 1
	}
	return slab
}

// Slab returns the slab at index, or nil if it does not exist.
func (g *SegmentGenerator) Slab(index int) *Slab {
	return g.slabs[index]
}

// Slabs returns the live slabs ordered by index.
func (g *SegmentGenerator) Slabs() []*Slab {
	indices := make([]int, 0, len(g.slabs))
	for i := range g.slabs {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	out := make([]*Slab, len(indices))
	for i, idx := range indices {
		out[i] = g.slabs[idx]
	}
	return out
}

// Advance extends generation ahead of the avatar position z, updates
// visibility, and culls slabs behind the cleanup distance. At most two slabs
// are generated per call. It returns how many unstruck targets were culled.
func (g *SegmentGenerator) Advance(z float64) (avoided int) {
	cur := int(z / g.cfg.SlabLength)
	if cur < 0 {
		cur = 0
	}
	progress := (z - float64(cur)*g.cfg.SlabLength) / g.cfg.SlabLength

	// Extend the lookahead near the end of the current slab so generation
	// never stalls at a slab boundary.
	lookahead := g.cfg.MaxVisible + g.cfg.Buffer
	if progress > lookaheadProgress {
		lookahead += g.cfg.LookaheadBonus
	}

	want := cur + lookahead
	generated := 0
	for g.next <= want && generated < maxSlabsPerTick {
		g.generate(g.next)
		g.next++
		generated++
	}

	g.updateVisibility(z)

	if progress < cleanupProgress {
		avoided = g.cleanup(z)
	}
	return avoided
}

// updateVisibility toggles each slab's visibility on plain distance
// thresholds, with no hysteresis.
func (g *SegmentGenerator) updateVisibility(z float64) {
	ahead := float64(g.cfg.MaxVisible) * g.cfg.SlabLength
	for _, slab := range g.slabs {
		slab.Visible = slab.StartZ < z+ahead && slab.EndZ > z-g.cfg.SlabLength
	}
}

// cleanup removes every slab farther behind the avatar than the cleanup
// distance, reclaiming its content. Disposal is irreversible.
func (g *SegmentGenerator) cleanup(z float64) (avoided int) {
	for index, slab := range g.slabs {
		if slab.EndZ >= z-g.cfg.CleanupDistance {
			continue
		}
		avoided += g.placer.Reclaim(slab)
		slab.Lanes = nil
		delete(g.slabs, index)
		g.emit(SlabRemovedEvent{Index: index})
		g.logger.Debug("slab removed", "index", index)
	}
	return avoided
}

// generate builds the slab at index and hands it to the placer.
func (g *SegmentGenerator) generate(index int) *Slab {
	startZ := float64(index) * g.cfg.SlabLength
	slab := &Slab{
		Index:   index,
		StartZ:  startZ,
		EndZ:    startZ + g.cfg.SlabLength,
		Visible: true,
	}

	if index < initialLaneSlabs {
		// A single lane centered on the eventual multi-lane layout.
		mid := (g.cfg.LaneCount + 1) / 2
		slab.Lanes = []Lane{{Index: mid, X: g.cfg.LaneX(mid)}}
	} else {
		slab.Lanes = make([]Lane, 0, g.cfg.LaneCount)
		for n := 1; n <= g.cfg.LaneCount; n++ {
			slab.Lanes = append(slab.Lanes, Lane{Index: n, X: g.cfg.LaneX(n)})
		}
	}

	slab.Markers = g.markers(index, startZ, slab.EndZ)
	slab.Generated = true
	g.slabs[index] = slab

	g.emit(SlabCreatedEvent{
		Index:     index,
		StartZ:    slab.StartZ,
		EndZ:      slab.EndZ,
		LaneCount: len(slab.Lanes),
		Markers:   slab.Markers,
	})
	g.logger.Debug("slab generated", "index", index, "lanes", len(slab.Lanes))

	g.placer.Populate(slab)
	return slab
}

// markers computes the section boundary coordinates falling within the
// slab's span. The origin boundary is suppressed on slab 0 so no marker is
// duplicated at distance zero.
func (g *SegmentGenerator) markers(index int, startZ, endZ float64) []float64 {
	sectionLen := g.cfg.SectionLength()
	var out []float64
	for k := int(math.Ceil(startZ / sectionLen)); ; k++ {
		c := float64(k) * sectionLen
		if c >= endZ {
			break
		}
		if index == 0 && k == 0 {
			continue
		}
		if c >= startZ {
			out = append(out, c)
		}
	}
	return out
}

// DisposeAll tears down every slab and its content. The generator must not
// be advanced afterwards.
func (g *SegmentGenerator) DisposeAll() {
	for index, slab := range g.slabs {
		g.placer.Reclaim(slab)
		slab.Lanes = nil
		delete(g.slabs, index)
		g.emit(SlabRemovedEvent{Index: index})
	}
}
