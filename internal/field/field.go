// Package field defines scalar field functions and the built-in pattern
// library.
//
// A field function maps elapsed time t (seconds) and a cell's linear index i
// and grid coordinates (x, y) to a signed value. Values are expected in
// [-1, 1]; the renderer clamps anything outside that range.
//
//	fn := field.Func(func(t float64, i, x, y int) float64 {
//		return math.Sin(t + float64(x+y)/2)
//	})
package field

import (
	"fmt"
	"sort"
)

// Func is a pure scalar field over time and grid cells.
type Func func(t float64, i, x, y int) float64

type pattern struct {
	fn          Func
	description string
}

// Registry maps pattern names to field functions.
type Registry struct {
	patterns map[string]pattern
}

// NewRegistry returns a registry preloaded with the built-in patterns.
func NewRegistry() *Registry {
	r := &Registry{patterns: make(map[string]pattern)}
	for _, ex := range examples {
		r.Register(ex.name, ex.description, ex.fn)
	}
	return r
}

// Register adds or replaces a pattern.
func (r *Registry) Register(name, description string, fn Func) {
	r.patterns[name] = pattern{fn: fn, description: description}
}

func (r *Registry) Get(name string) (Func, error) {
	p, ok := r.patterns[name]
	if !ok {
		return nil, fmt.Errorf("unknown pattern: %s", name)
	}
	return p.fn, nil
}

func (r *Registry) Describe(name string) string {
	return r.patterns[name].description
}

// Names returns the registered pattern names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.patterns))
	for name := range r.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
