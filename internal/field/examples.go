package field

import "math"

// DefaultPattern is shown when no pattern is named.
const DefaultPattern = "spiral"

// invaderRows encodes the space invader bitmap, one column per rune.
var invaderRows = []rune("p}¶¼<¼¶}p")

var examples = []struct {
	name        string
	description string
	fn          Func
}{
	{"flip", "rows switch sign as time passes", func(t float64, i, x, y int) float64 {
		return float64(y) - t
	}},
	{"triangle", "diagonal split", func(t float64, i, x, y int) float64 {
		return float64(y - x)
	}},
	{"pattern", "repeating tile", func(t float64, i, x, y int) float64 {
		return float64(i%4 - y%4)
	}},
	{"mondrian", "quadrant blocks", func(t float64, i, x, y int) float64 {
		return float64((y - 6) * (x - 6))
	}},
	{"stripes", "moving diagonal waves", func(t float64, i, x, y int) float64 {
		return math.Sin(t + float64(x+y)/2)
	}},
	{"ripples", "rings from an off-center source", func(t float64, i, x, y int) float64 {
		dx, dy := float64(x)-7.5, float64(y)-6
		return math.Sin(t - math.Sqrt(dx*dx+dy*dy))
	}},
	{"invader", "static pixel sprite", func(t float64, i, x, y int) float64 {
		if x >= len(invaderRows) || y < 0 || y > 30 {
			return 0
		}
		return float64(int(invaderRows[x]) & (1 << y))
	}},
	{"rotation", "spinning propeller", func(t float64, i, x, y int) float64 {
		return math.Sin(2*math.Atan((float64(y)-7.5)/(float64(x)-7.5)) + 5*t)
	}},
	{"spiral", "rotating spiral arms", func(t float64, i, x, y int) float64 {
		dx, dy := float64(x)-7.5, float64(y)-7.5
		return math.Sin(t + math.Atan2(dy, dx) + math.Hypot(dx, dy))
	}},
}
