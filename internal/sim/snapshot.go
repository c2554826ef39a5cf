package sim

import (
	"encoding/json"

	"github.com/nvoronin/railrush/internal/core"
)

// Snapshot is the flat persisted form of the scoring and progression
// counters. Round-tripping through Encode then Decode reproduces identical
// values field-for-field. Slab is the authoritative position; Section is
// informational and re-derived from Slab on restore.
type Snapshot struct {
	Score   int  `json:"score"`
	Struck  int  `json:"struck"`
	Avoided int  `json:"avoided"`
	Section int  `json:"section"`
	Slab    int  `json:"slab"`
	Lane    int  `json:"lane"`
	Paused  bool `json:"paused"`
	Over    bool `json:"over"`
}

// Snapshot captures the current progression counters.
func (g *Game) Snapshot() Snapshot {
	z := g.motion.Position().Z
	return Snapshot{
		Score:   g.score,
		Struck:  g.struck,
		Avoided: g.avoided,
		Section: SectionForZ(z, g.cfg.Track.SlabLength),
		Slab:    int(z / g.cfg.Track.SlabLength),
		Lane:    g.motion.CurrentLane(),
		Paused:  g.paused,
		Over:    g.over,
	}
}

// Restore applies a snapshot: counters are adopted as-is, the avatar is
// placed at the start of the recorded slab on the recorded lane, and speed
// is recomputed from the recorded progression. The Section field is ignored
// in favor of the derivation from Slab, so an inconsistent pair cannot
// desynchronize position and progression. Events produced while re-priming
// are delivered with the next tick result.
func (g *Game) Restore(s Snapshot) {
	g.score = s.Score
	g.struck = s.Struck
	g.avoided = s.Avoided
	g.paused = s.Paused
	g.over = s.Over

	slab := s.Slab
	if slab < 0 {
		slab = 0
	}
	g.motion.ForcePosition(core.Vec3{Z: float64(slab) * g.cfg.Track.SlabLength})
	lane := s.Lane
	if lane == 0 {
		lane = (g.cfg.Track.LaneCount + 1) / 2
	}
	g.motion.ForceLane(lane)

	// Re-prime generation around the restored position.
	g.segments.Advance(g.motion.Position().Z)
	g.primed = true
}

// EncodeSnapshot serializes a snapshot to JSON.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot deserializes a snapshot. A syntactically invalid payload
// returns the default snapshot along with the parse error; a valid partial
// payload merges the present fields over the defaults, never leaving stale
// and new values mixed.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
