package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"tiny": {
		Pattern: "invader",
		Grid:    GridConfig{Dim: 16, MaxRadius: 4, Gap: 1},
		Colors:  ColorConfig{Canvas: "black", Positive: "white", Negative: "#FE2244"},
		Delay:   DefaultDelay,
	},
	"large": {
		Pattern: "ripples",
		Grid:    GridConfig{Dim: 16, MaxRadius: 16, Gap: 4},
		Colors:  ColorConfig{Canvas: "black", Positive: "white", Negative: "#FE2244"},
		Delay:   DefaultDelay,
	},
	"dense": {
		Pattern: "stripes",
		Grid:    GridConfig{Dim: 32, MaxRadius: 4, Gap: 1},
		Colors:  ColorConfig{Canvas: "#001a33", Positive: "#e0f0ff", Negative: "#0077be"},
		Delay:   DefaultDelay,
	},
	"slow": {
		Pattern: "spiral",
		Grid:    GridConfig{Dim: 16, MaxRadius: 8, Gap: 2},
		Colors:  ColorConfig{Canvas: "#2d1b2e", Positive: "#feca57", Negative: "#ff6b6b"},
		Delay:   0.2,
	},
	"smooth": {
		Pattern: "rotation",
		Grid:    GridConfig{Dim: 16, MaxRadius: 8, Gap: 2},
		Colors:  ColorConfig{Canvas: "#0a0a0a", Positive: "#ff00ff", Negative: "#00ffff"},
		Delay:   1.0 / 60,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
