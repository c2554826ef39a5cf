// Package config provides YAML-based configuration loading and validation
// for the rail-runner simulation.
package config

// Config contains all tunable parameters for a simulation run.
type Config struct {
	Track  TrackConfig  `yaml:"track"`
	Speed  SpeedConfig  `yaml:"speed"`
	Hazard HazardConfig `yaml:"hazards"`
	People PeopleConfig `yaml:"people"`
	Pool   PoolConfig   `yaml:"pool"`
}

// TrackConfig defines the track layout and segment generation parameters.
type TrackConfig struct {
	LaneCount       int     `yaml:"lane_count"`       // Number of parallel lanes on full slabs
	TrackWidth      float64 `yaml:"track_width"`      // Half the lane spacing; spacing = 2 * TrackWidth
	SlabLength      float64 `yaml:"slab_length"`      // Longitudinal length of one slab
	MaxVisible      int     `yaml:"max_visible"`      // Slabs kept visible ahead of the avatar
	Buffer          int     `yaml:"buffer"`           // Extra slabs generated beyond the visible set
	LookaheadBonus  int     `yaml:"lookahead_bonus"`  // Additional lookahead past 60% slab progress
	CleanupDistance float64 `yaml:"cleanup_distance"` // Distance behind the avatar before a slab is removed
}

// SpeedConfig defines avatar speed and difficulty progression.
type SpeedConfig struct {
	BaseSpeed          float64 `yaml:"base_speed"`           // Forward speed before any multiplier
	GrowthFactor       float64 `yaml:"growth_factor"`        // Per-section geometric growth of the multiplier
	MaxMultiplier      float64 `yaml:"max_multiplier"`       // Saturation point of the speed multiplier
	HighSpeedThreshold float64 `yaml:"high_speed_threshold"` // Multiplier at which high-speed mode begins
	TransitionDuration float64 `yaml:"transition_duration"`  // Lane change duration in seconds at base speed
}

// HazardConfig defines barrier placement parameters.
type HazardConfig struct {
	MinHighBarriers int     `yaml:"min_high_barriers"` // Min barriers per slab in high-speed mode
	MaxHighBarriers int     `yaml:"max_high_barriers"` // Max barriers per slab in high-speed mode
	BandLow         float64 `yaml:"band_low"`          // Lower bound of the section placement band
	BandHigh        float64 `yaml:"band_high"`         // Upper bound of the section placement band
}

// PeopleConfig defines passive target placement parameters.
type PeopleConfig struct {
	MinPerTrack     int  `yaml:"min_per_track"`    // Min people spawned per lane
	MaxPerTrack     int  `yaml:"max_per_track"`    // Max people spawned per lane
	GuaranteeSingle bool `yaml:"guarantee_single"` // Force at least one lane to hold exactly one person
}

// PoolConfig defines entity pool capacities.
type PoolConfig struct {
	HazardCapacity int `yaml:"hazard_capacity"`
	TargetCapacity int `yaml:"target_capacity"`
}

// LaneSpacing returns the lateral distance between adjacent lane centers.
func (t TrackConfig) LaneSpacing() float64 {
	return 2 * t.TrackWidth
}

// LaneX returns the X coordinate of lane n (1-based), centered on the origin.
func (t TrackConfig) LaneX(n int) float64 {
	return (float64(n-1) - float64(t.LaneCount-1)/2) * t.LaneSpacing()
}

// SectionLength returns the longitudinal length of one section.
// A section spans two and a half slabs.
func (t TrackConfig) SectionLength() float64 {
	return t.SlabLength * 2.5
}
