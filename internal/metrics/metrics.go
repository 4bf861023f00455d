package metrics

import (
	"fmt"

	"github.com/san-kum/tixy/internal/render"
)

// Metric accumulates a scalar over committed frames.
type Metric interface {
	render.Observer
	Name() string
	Value() float64
	Reset()
}

// Defaults returns the metrics reported by the live view and bench command.
func Defaults(historyCapacity int) []Metric {
	return []Metric{
		NewFrameTime(historyCapacity),
		NewFrameRate(),
		NewCoverage(),
	}
}

// Names lists the default metric names in display order.
func Names() []string {
	ms := Defaults(0)
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name()
	}
	return names
}

// Format renders a metric value with the unit its name implies.
func Format(name string, v float64) string {
	switch name {
	case "frame_ms":
		return fmt.Sprintf("%.2fms", v)
	case "coverage":
		return fmt.Sprintf("%.1f%%", 100*v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
