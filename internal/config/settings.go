package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"
)

// Settings holds the values a user can tune from the config file, flags and the control keys.
type Settings struct {
	Count        int     `json:"count"`
	RepulseForce float64 `json:"repulse_force"`
	ShowOutline  bool    `json:"show_outline"`
	Palette      string  `json:"palette,omitempty"`
	Color        string  `json:"color,omitempty"`
	Seed         int64   `json:"seed,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
}

func Default() Settings {
	return Settings{
		Count:        DefaultCount,
		RepulseForce: DefaultRepulse,
		ShowOutline:  true,
		Palette:      DefaultPalette,
		Color:        DefaultColor,
		Width:        WindowWidth,
		Height:       WindowHeight,
	}
}

// Load reads a JSON settings file on top of the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s.Normalize(), nil
}

// Normalize clamps every field into its valid range.
func (s Settings) Normalize() Settings {
	s.Count = ClampCount(s.Count)
	s.RepulseForce = ClampRepulse(s.RepulseForce)
	if _, ok := palettes[s.Palette]; !ok {
		s.Palette = DefaultPalette
	}
	if s.Color == "" {
		s.Color = DefaultColor
	}
	if s.Width <= 0 {
		s.Width = WindowWidth
	}
	if s.Height <= 0 {
		s.Height = WindowHeight
	}
	return s
}

// BaseColor is the particle colour for the mono palette and the outline stroke.
func (s Settings) BaseColor() color.RGBA {
	return ParseColor(s.Color)
}

func ClampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

func ClampRepulse(f float64) float64 {
	if math.IsNaN(f) || f < MinRepulse {
		return MinRepulse
	}
	if f > MaxRepulse {
		return MaxRepulse
	}
	return f
}

// ParseCount reads the leading integer of s. Text without one maps to MinCount.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return MinCount
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// only overflow gets here
		if s[0] == '-' {
			return MinCount
		}
		return MaxCount
	}
	return ClampCount(n)
}

// ParseRepulse reads the leading decimal number of s. Text without one maps to MinRepulse.
// A leading "Infinity" counts as a number and clamps like any other.
func ParseRepulse(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	if strings.HasPrefix(s[end:], "Infinity") {
		if s[0] == '-' {
			return ClampRepulse(math.Inf(-1))
		}
		return ClampRepulse(math.Inf(1))
	}
	mantissa := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		mantissa++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			mantissa++
		}
	}
	if mantissa == 0 {
		return MinRepulse
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		start := exp
		for exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
			exp++
		}
		if exp > start {
			end = exp
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil && !math.IsInf(f, 0) {
		return MinRepulse
	}
	return ClampRepulse(f)
}

// ParseColor parses "#rrggbb". Anything else yields the default green.
func ParseColor(hex string) color.RGBA {
	green := color.RGBA{0, 255, 0, 255}
	if len(hex) != 7 || hex[0] != '#' {
		return green
	}
	for i := 1; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return green
		}
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return green
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
