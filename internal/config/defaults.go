package config

import (
	_ "embed"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the hardcoded tuning, used when even the embedded
// YAML cannot be parsed.
func DefaultTuning() Tuning {
	return Tuning{
		Bird: BirdTuning{
			WidthPercent:    6,
			HeightPercent:   11,
			MaxDescendRatio: 0.0038,
			MaxClimbRatio:   0.0911,
			FallIncrement:   0.05,
			DescendDelay:    38.4,
			ClimbDelayMS:    3,
			Tolerance:       20,
			Inset: Inset{
				Left:   0.33,
				Top:    0.25,
				Right:  0.26,
				Bottom: 0.13,
			},
		},
		Tubes: TubeTuning{
			WidthRatio:       0.1,
			MouthHeightRatio: 0.05,
			SpacingFactor:    4.5,
			Step:             10,
			Delay:            720,
		},
		Background: BackgroundTuning{
			Step:  10,
			Delay: 720,
		},
	}
}

// DefaultTuningYAML returns the embedded tuning file.
func DefaultTuningYAML() []byte {
	return defaultTuningYAML
}

// DefaultSettings returns the settings written when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		WindowFullscreen:      true,
		BirdEvent:             "up",
		Bird2Event:            " ",
		WindowStartEvent:      "enter",
		WindowExitEvent:       "esc",
		WindowFullscreenEvent: "f11",
		WindowPauseEvent:      "p",
		WindowPause2Event:     "P",
		BackgroundAnimation:   true,
	}
}
