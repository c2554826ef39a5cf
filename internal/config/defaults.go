package config

import (
	_ "embed"
)

//go:embed defaults/railrush.yaml
var defaultYAML []byte

// Default returns the default simulation configuration.
func Default() Config {
	return Config{
		Track: TrackConfig{
			LaneCount:       5,
			TrackWidth:      2.0,
			SlabLength:      20.0,
			MaxVisible:      5,
			Buffer:          2,
			LookaheadBonus:  2,
			CleanupDistance: 40.0,
		},
		Speed: SpeedConfig{
			BaseSpeed:          7.0,
			GrowthFactor:       1.25,
			MaxMultiplier:      7.0,
			HighSpeedThreshold: 2.0,
			TransitionDuration: 0.5,
		},
		Hazard: HazardConfig{
			MinHighBarriers: 1,
			MaxHighBarriers: 3,
			BandLow:         0.15,
			BandHigh:        0.65,
		},
		People: PeopleConfig{
			MinPerTrack:     1,
			MaxPerTrack:     3,
			GuaranteeSingle: true,
		},
		Pool: PoolConfig{
			HazardCapacity: 32,
			TargetCapacity: 64,
		},
	}
}
