// Package config provides the two configuration layers of the game:
// user Settings (window and key bindings, kept in a JSON or YAML file next
// to the save data) and Tuning (the scaled game constants, loaded from YAML
// with an embedded default).
package config

// Tuning contains every game constant that scales with the world size.
type Tuning struct {
	Bird       BirdTuning       `yaml:"bird"`
	Tubes      TubeTuning       `yaml:"tubes"`
	Background BackgroundTuning `yaml:"background"`
}

// BirdTuning defines the bird's size and motion.
type BirdTuning struct {
	WidthPercent    float64 `yaml:"width_percent"`
	HeightPercent   float64 `yaml:"height_percent"`
	MaxDescendRatio float64 `yaml:"max_descend_ratio"`
	MaxClimbRatio   float64 `yaml:"max_climb_ratio"`
	FallIncrement   float64 `yaml:"fall_increment"`
	DescendDelay    float64 `yaml:"descend_delay"`
	ClimbDelayMS    int     `yaml:"climb_delay_ms"`
	Tolerance       float64 `yaml:"tolerance"`
	Inset           Inset   `yaml:"collision_inset"`
}

// Inset holds the fractions of the bird's box trimmed from each side before
// collision queries.
type Inset struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// TubeTuning defines tube sizes, spacing and scrolling.
type TubeTuning struct {
	WidthRatio       float64 `yaml:"width_ratio"`
	MouthHeightRatio float64 `yaml:"mouth_height_ratio"`
	SpacingFactor    float64 `yaml:"spacing_factor"`
	Step             float64 `yaml:"step"`
	Delay            float64 `yaml:"delay"`
}

// BackgroundTuning defines background scrolling.
type BackgroundTuning struct {
	Step  float64 `yaml:"step"`
	Delay float64 `yaml:"delay"`
}

// Settings are the user-editable window and key binding options.
// Key names use Bubble Tea's notation ("up", " ", "enter", "f11");
// Tk-style names such as "<Up>" are accepted as well.
type Settings struct {
	WindowFullscreen      bool   `yaml:"window_fullscreen" json:"window_fullscreen"`
	WindowWidth           *int   `yaml:"window_width" json:"window_width"`
	WindowHeight          *int   `yaml:"window_height" json:"window_height"`
	BirdEvent             string `yaml:"bird_event" json:"bird_event"`
	Bird2Event            string `yaml:"bird_2_event" json:"bird_2_event"`
	WindowStartEvent      string `yaml:"window_start_event" json:"window_start_event"`
	WindowExitEvent       string `yaml:"window_exit_event" json:"window_exit_event"`
	WindowFullscreenEvent string `yaml:"window_fullscreen_event" json:"window_fullscreen_event"`
	WindowPauseEvent      string `yaml:"window_pause_event" json:"window_pause_event"`
	WindowPause2Event     string `yaml:"window_pause_2_event" json:"window_pause_2_event"`
	BackgroundAnimation   bool   `yaml:"background_animation" json:"background_animation"`
}

// WorldSize returns the configured world size, or zeros for the dimensions
// left null (full screen).
func (s Settings) WorldSize() (int, int) {
	var w, h int
	if s.WindowWidth != nil {
		w = *s.WindowWidth
	}
	if s.WindowHeight != nil {
		h = *s.WindowHeight
	}
	return w, h
}

// fillEmpty replaces blank bindings with their defaults.
func (s *Settings) fillEmpty() {
	d := DefaultSettings()
	for _, p := range []struct {
		dst *string
		def string
	}{
		{&s.BirdEvent, d.BirdEvent},
		{&s.Bird2Event, d.Bird2Event},
		{&s.WindowStartEvent, d.WindowStartEvent},
		{&s.WindowExitEvent, d.WindowExitEvent},
		{&s.WindowFullscreenEvent, d.WindowFullscreenEvent},
		{&s.WindowPauseEvent, d.WindowPauseEvent},
		{&s.WindowPause2Event, d.WindowPause2Event},
	} {
		if *p.dst == "" {
			*p.dst = p.def
		}
	}
}
