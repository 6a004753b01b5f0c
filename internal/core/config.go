package core

// Terminal cells are mapped onto world units with this fixed factor when the
// settings don't pin an explicit world size.
const (
	CellWidthUnits  = 8
	CellHeightUnits = 16
)

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	WorldW   int   // Simulation width in world units
	WorldH   int   // Simulation height in world units
	TickRate int   // Render ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means use current time in platform layer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		WorldW:   80 * CellWidthUnits,
		WorldH:   24 * CellHeightUnits,
		TickRate: 60,
	}
}

// WorldFromScreen derives the world size from the terminal size.
// Explicit overrides win when positive.
func WorldFromScreen(cols, rows, overrideW, overrideH int) (int, int) {
	w, h := cols*CellWidthUnits, rows*CellHeightUnits
	if overrideW > 0 {
		w = overrideW
	}
	if overrideH > 0 {
		h = overrideH
	}
	return w, h
}
