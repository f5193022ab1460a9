package config

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Particle count bounds
	MinCount     = 1
	MaxCount     = 999
	DefaultCount = 500

	// Pointer repulsion multiplier bounds
	MinRepulse     = 0.0
	MaxRepulse     = 10.0
	DefaultRepulse = 0.5

	// Outline stroke
	OutlineWidth = 8
	OutlineAlpha = 0.7

	DefaultColor   = "#00ff00"
	DefaultPalette = PaletteMono

	// Keyboard steps for the control panel
	CountStep     = 1
	CountPageStep = 50
	RepulseStep   = 0.1

	TicksPerSecond = 60
)
