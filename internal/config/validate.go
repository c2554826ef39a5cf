package config

import "fmt"

// ConfigError reports an invalid configuration field. It is raised
// synchronously when a configuration is set or merged; invalid values are
// never silently clamped.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}

// Validate checks every field against its valid domain.
// It returns the first violation found as a *ConfigError.
func (c Config) Validate() error {
	if c.Track.LaneCount < 1 {
		return invalid("track.lane_count", "must be at least 1")
	}
	if c.Track.TrackWidth <= 0 {
		return invalid("track.track_width", "must be positive")
	}
	if c.Track.SlabLength <= 0 {
		return invalid("track.slab_length", "must be positive")
	}
	if c.Track.MaxVisible < 1 {
		return invalid("track.max_visible", "must be at least 1")
	}
	if c.Track.Buffer < 0 {
		return invalid("track.buffer", "must not be negative")
	}
	if c.Track.LookaheadBonus < 0 {
		return invalid("track.lookahead_bonus", "must not be negative")
	}
	if c.Track.CleanupDistance <= 0 {
		return invalid("track.cleanup_distance", "must be positive")
	}

	if c.Speed.BaseSpeed <= 0 {
		return invalid("speed.base_speed", "must be positive")
	}
	if c.Speed.GrowthFactor <= 1 {
		return invalid("speed.growth_factor", "must be greater than 1")
	}
	if c.Speed.MaxMultiplier < 1 {
		return invalid("speed.max_multiplier", "must be at least 1")
	}
	if c.Speed.HighSpeedThreshold <= 1 {
		return invalid("speed.high_speed_threshold", "must be greater than 1")
	}
	if c.Speed.TransitionDuration <= 0 {
		return invalid("speed.transition_duration", "must be positive")
	}

	if c.Hazard.MinHighBarriers < 1 {
		return invalid("hazards.min_high_barriers", "must be at least 1")
	}
	if c.Hazard.MaxHighBarriers < c.Hazard.MinHighBarriers {
		return invalid("hazards.max_high_barriers", "must not be below min_high_barriers")
	}
	if c.Hazard.BandLow < 0 || c.Hazard.BandLow >= 1 {
		return invalid("hazards.band_low", "must be in [0, 1)")
	}
	if c.Hazard.BandHigh <= c.Hazard.BandLow || c.Hazard.BandHigh > 1 {
		return invalid("hazards.band_high", "must be in (band_low, 1]")
	}

	if c.People.MinPerTrack < 0 {
		return invalid("people.min_per_track", "must not be negative")
	}
	if c.People.MaxPerTrack < c.People.MinPerTrack {
		return invalid("people.max_per_track", "must not be below min_per_track")
	}

	if c.Pool.HazardCapacity < 1 {
		return invalid("pool.hazard_capacity", "must be at least 1")
	}
	if c.Pool.TargetCapacity < 1 {
		return invalid("pool.target_capacity", "must be at least 1")
	}

	return nil
}
