package palette

import "fmt"

// Theme is a named trio of color tokens.
type Theme struct {
	Name     string
	Canvas   string
	Positive string
	Negative string
}

var (
	Classic = Theme{
		Name:     "classic",
		Canvas:   "black",
		Positive: "white",
		Negative: "#FE2244",
	}

	Cyberpunk = Theme{
		Name:     "cyberpunk",
		Canvas:   "#0a0a0a",
		Positive: "#ff00ff", // Magenta
		Negative: "#00ffff", // Cyan
	}

	RetroGreen = Theme{
		Name:     "retro",
		Canvas:   "#001100",
		Positive: "#00ff00", // Green phosphor
		Negative: "#005500",
	}

	Minimal = Theme{
		Name:     "minimal",
		Canvas:   "#000000",
		Positive: "#ffffff",
		Negative: "#888888",
	}

	Ocean = Theme{
		Name:     "ocean",
		Canvas:   "#001a33",
		Positive: "#e0f0ff",
		Negative: "#0077be",
	}

	Sunset = Theme{
		Name:     "sunset",
		Canvas:   "#2d1b2e",
		Positive: "#feca57",
		Negative: "#ff6b6b", // Coral
	}

	Themes = []Theme{
		Classic,
		Cyberpunk,
		RetroGreen,
		Minimal,
		Ocean,
		Sunset,
	}
)

// Style resolves the theme's tokens. Built-in themes always parse.
func (t Theme) Style() Style {
	st, err := ParseStyle(t.Canvas, t.Positive, t.Negative)
	if err != nil {
		panic(fmt.Sprintf("palette: theme %s: %v", t.Name, err))
	}
	return st
}

// GetTheme returns a theme by name
func GetTheme(name string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("unknown theme: %s (available: %v)", name, ThemeNames())
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
