package sim

import (
	"math"
	"math/rand"

	"github.com/nvoronin/railrush/internal/config"
	"github.com/nvoronin/railrush/internal/core"
)

// Difficulty maps progression counters to speed multipliers and hazard
// density. The functions are pure over the held parameters; the counters
// themselves are owned by the motion controller and the content placer.
type Difficulty struct {
	speed  config.SpeedConfig
	hazard config.HazardConfig
}

// NewDifficulty creates a difficulty model from a validated configuration.
func NewDifficulty(cfg config.Config) *Difficulty {
	return &Difficulty{speed: cfg.Speed, hazard: cfg.Hazard}
}

// SpeedMultiplier returns min(maxMultiplier, growthFactor^sectionsPassed).
// It is non-decreasing in sectionsPassed and saturates exactly at the
// configured maximum.
func (d *Difficulty) SpeedMultiplier(sectionsPassed int) float64 {
	if sectionsPassed <= 0 {
		return 1
	}
	m := math.Pow(d.speed.GrowthFactor, float64(sectionsPassed))
	return math.Min(d.speed.MaxMultiplier, m)
}

// Speed returns the avatar's forward speed after sectionsPassed sections.
func (d *Difficulty) Speed(sectionsPassed int) float64 {
	return d.speed.BaseSpeed * d.SpeedMultiplier(sectionsPassed)
}

// HighSpeed reports whether the speed multiplier has crossed the high-speed
// threshold, raising hazard density.
func (d *Difficulty) HighSpeed(sectionsPassed int) bool {
	return d.SpeedMultiplier(sectionsPassed) >= d.speed.HighSpeedThreshold
}

// BarrierCount returns the number of barriers to place for a slab whose
// section is sectionsPassed sections in: exactly one before high-speed mode,
// afterwards a uniform draw from the configured range.
func (d *Difficulty) BarrierCount(rng *rand.Rand, sectionsPassed int) int {
	if !d.HighSpeed(sectionsPassed) {
		return 1
	}
	span := d.hazard.MaxHighBarriers - d.hazard.MinHighBarriers
	if span <= 0 {
		return d.hazard.MinHighBarriers
	}
	return d.hazard.MinHighBarriers + rng.Intn(span+1)
}

// Runtime adjustments clamp to the valid domain rather than failing.

// SetGrowthFactor adjusts the per-section growth rate.
func (d *Difficulty) SetGrowthFactor(f float64) {
	d.speed.GrowthFactor = core.ClampF(f, 1.0001, 10)
}

// SetMaxMultiplier adjusts the multiplier saturation point.
func (d *Difficulty) SetMaxMultiplier(m float64) {
	d.speed.MaxMultiplier = math.Max(1, m)
}

// SetHighSpeedThreshold adjusts the high-speed mode entry point.
func (d *Difficulty) SetHighSpeedThreshold(t float64) {
	d.speed.HighSpeedThreshold = math.Max(1.0001, t)
}
