package sim

import (
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nvoronin/railrush/internal/config"
)

func newTestPlacer(cfg config.Config, seed int64) *ContentPlacer {
	logger := log.New(io.Discard)
	diff := NewDifficulty(cfg)
	rng := rand.New(rand.NewSource(seed))
	return NewContentPlacer(cfg, diff, rng, logger, func(Event) {})
}

func fullSlab(cfg config.Config, index int) *Slab {
	startZ := float64(index) * cfg.Track.SlabLength
	slab := &Slab{Index: index, StartZ: startZ, EndZ: startZ + cfg.Track.SlabLength}
	for n := 1; n <= cfg.Track.LaneCount; n++ {
		slab.Lanes = append(slab.Lanes, Lane{Index: n, X: cfg.Track.LaneX(n)})
	}
	return slab
}

// nearestLane maps a jittered X coordinate back to its 1-based lane index.
func nearestLane(cfg config.Config, x float64) int {
	best, bestDist := 0, math.MaxFloat64
	for n := 1; n <= cfg.Track.LaneCount; n++ {
		if d := math.Abs(x - cfg.Track.LaneX(n)); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

func TestPopulateSkipsNarrowSlabs(t *testing.T) {
	cfg := config.Default()
	p := newTestPlacer(cfg, 1)

	slab := &Slab{Index: 0, EndZ: cfg.Track.SlabLength, Lanes: []Lane{{Index: 3, X: 0}}}
	p.Populate(slab)

	if len(slab.Hazards) != 0 || len(slab.Targets) != 0 {
		t.Error("single-lane slab should receive no content")
	}
}

func TestPlacementStaysInsideBand(t *testing.T) {
	cfg := config.Default()
	p := newTestPlacer(cfg, 7)
	sectionLen := cfg.Track.SectionLength()

	placed := 0
	for index := 3; index <= 150; index++ {
		slab := fullSlab(cfg, index)
		p.Populate(slab)

		section := SectionForSlab(index)
		start := float64(section) * sectionLen
		check := func(z float64, kind string, id int64) {
			frac := (z - start) / sectionLen
			if frac < cfg.Hazard.BandLow-1e-9 || frac > cfg.Hazard.BandHigh+1e-9 {
				t.Fatalf("%s %d on slab %d at section fraction %f, band is [%f, %f]",
					kind, id, index, frac, cfg.Hazard.BandLow, cfg.Hazard.BandHigh)
			}
		}
		for _, h := range slab.Hazards {
			check(h.Pos.Z, "hazard", h.ID)
			placed++
		}
		for _, tg := range slab.Targets {
			check(tg.Pos.Z, "target", tg.ID)
			placed++
		}
	}

	if placed < 1000 {
		t.Fatalf("only %d placements sampled, want at least 1000", placed)
	}
}

func TestHazardLanesDistinctAndSorted(t *testing.T) {
	cfg := config.Default()
	p := newTestPlacer(cfg, 11)

	for index := 3; index <= 120; index++ {
		slab := fullSlab(cfg, index)
		p.Populate(slab)

		seen := make(map[float64]bool)
		prevX := math.Inf(-1)
		for _, h := range slab.Hazards {
			if seen[h.Pos.X] {
				t.Fatalf("slab %d: duplicate hazard lane at x=%f", index, h.Pos.X)
			}
			seen[h.Pos.X] = true
			if h.Pos.X <= prevX {
				t.Fatalf("slab %d: hazard lanes not sorted ascending", index)
			}
			prevX = h.Pos.X
		}
		if len(slab.Hazards) > cfg.Track.LaneCount {
			t.Fatalf("slab %d: %d hazards exceed lane count", index, len(slab.Hazards))
		}
	}
}

func TestPickLanesClampsCount(t *testing.T) {
	cfg := config.Default()
	p := newTestPlacer(cfg, 3)
	lanes := fullSlab(cfg, 3).Lanes

	picked := p.pickLanes(lanes, 10)
	if len(picked) != len(lanes) {
		t.Errorf("picked %d lanes for oversized count, want %d", len(picked), len(lanes))
	}
}

func TestHazardVariantUniformPerSlab(t *testing.T) {
	cfg := config.Default()
	cfg.Hazard.MinHighBarriers = 3
	cfg.Hazard.MaxHighBarriers = 3
	p := newTestPlacer(cfg, 5)

	for index := 3; index <= 60; index++ {
		slab := fullSlab(cfg, index)
		p.Populate(slab)
		for _, h := range slab.Hazards[1:] {
			if h.Variant != slab.Hazards[0].Variant {
				t.Fatalf("slab %d mixes variants %v and %v", index, slab.Hazards[0].Variant, h.Variant)
			}
		}
	}
}

func TestHazardVariantSequence(t *testing.T) {
	cfg := config.Default()
	p := newTestPlacer(cfg, 9)

	variants := make(map[int]HazardVariant)
	for index := 3; index <= 60; index++ {
		slab := fullSlab(cfg, index)
		p.Populate(slab)
		section := SectionForSlab(index)
		v := slab.Hazards[0].Variant
		if prev, ok := variants[section]; ok && prev != v {
			t.Fatalf("section %d saw both variants %v and %v", section, prev, v)
		}
		variants[section] = v
	}

	// Warm-up sections follow section parity.
	for section := 1; section < 5; section++ {
		want := HazardVariantA
		if section%2 == 1 {
			want = HazardVariantB
		}
		if variants[section] != want {
			t.Errorf("warm-up section %d variant = %v, want %v", section, variants[section], want)
		}
	}

	// Past the warm-up the variant alternates strictly section to section.
	for section := 6; section <= 24; section++ {
		if variants[section] == variants[section-1] {
			t.Errorf("sections %d and %d share variant %v, expected alternation",
				section-1, section, variants[section])
		}
	}
}

func TestTargetCountsPerLane(t *testing.T) {
	cfg := config.Default()
	cfg.People.GuaranteeSingle = false
	p := newTestPlacer(cfg, 13)

	for index := 3; index <= 40; index++ {
		slab := fullSlab(cfg, index)
		p.Populate(slab)

		counts := make(map[int]int)
		for _, tg := range slab.Targets {
			counts[nearestLane(cfg, tg.Pos.X)]++
		}
		for n := 1; n <= cfg.Track.LaneCount; n++ {
			if counts[n] < cfg.People.MinPerTrack || counts[n] > cfg.People.MaxPerTrack {
				t.Fatalf("slab %d lane %d holds %d people, range is [%d, %d]",
					index, n, counts[n], cfg.People.MinPerTrack, cfg.People.MaxPerTrack)
			}
		}
	}
}

func TestGuaranteeSingleForcesOneLane(t *testing.T) {
	cfg := config.Default()
	cfg.People.MinPerTrack = 2
	cfg.People.MaxPerTrack = 2
	cfg.People.GuaranteeSingle = true
	p := newTestPlacer(cfg, 17)

	for index := 3; index <= 40; index++ {
		slab := fullSlab(cfg, index)
		p.Populate(slab)

		counts := make(map[int]int)
		for _, tg := range slab.Targets {
			counts[nearestLane(cfg, tg.Pos.X)]++
		}
		singles := 0
		for n := 1; n <= cfg.Track.LaneCount; n++ {
			switch counts[n] {
			case 1:
				singles++
			case 2:
			default:
				t.Fatalf("slab %d lane %d holds %d people, want 1 or 2", index, n, counts[n])
			}
		}
		if singles != 1 {
			t.Fatalf("slab %d has %d single-person lanes, want exactly 1", index, singles)
		}
	}
}

func TestReclaimCountsAvoidedAndReturnsToPools(t *testing.T) {
	cfg := config.Default()
	p := newTestPlacer(cfg, 19)

	slab := fullSlab(cfg, 5)
	p.Populate(slab)

	total := len(slab.Targets)
	if total == 0 {
		t.Fatal("slab received no targets")
	}
	slab.Targets[0].Strike()

	avoided := p.Reclaim(slab)
	if avoided != total-1 {
		t.Errorf("avoided = %d, want %d", avoided, total-1)
	}
	if slab.Hazards != nil || slab.Targets != nil {
		t.Error("reclaimed slab still references entities")
	}

	hazards, targets := p.PoolStats()
	if hazards.InUse != 0 || targets.InUse != 0 {
		t.Errorf("pool in-use after reclaim: hazards %d, targets %d", hazards.InUse, targets.InUse)
	}
	if targets.Available == 0 {
		t.Error("no targets returned to the idle set")
	}
}

func TestSpawnEventsEmitted(t *testing.T) {
	cfg := config.Default()
	logger := log.New(io.Discard)
	var events []Event
	diff := NewDifficulty(cfg)
	rng := rand.New(rand.NewSource(23))
	p := NewContentPlacer(cfg, diff, rng, logger, func(e Event) { events = append(events, e) })

	slab := fullSlab(cfg, 7)
	p.Populate(slab)

	spawnedHazards, spawnedTargets := 0, 0
	for _, e := range events {
		switch e.(type) {
		case HazardSpawnedEvent:
			spawnedHazards++
		case TargetSpawnedEvent:
			spawnedTargets++
		}
	}
	if spawnedHazards != len(slab.Hazards) {
		t.Errorf("hazard spawn events = %d, want %d", spawnedHazards, len(slab.Hazards))
	}
	if spawnedTargets != len(slab.Targets) {
		t.Errorf("target spawn events = %d, want %d", spawnedTargets, len(slab.Targets))
	}

	events = events[:0]
	p.Reclaim(slab)
	removedTargets := 0
	for _, e := range events {
		if _, ok := e.(TargetRemovedEvent); ok {
			removedTargets++
		}
	}
	if removedTargets != spawnedTargets {
		t.Errorf("target removal events = %d, want %d", removedTargets, spawnedTargets)
	}
}
