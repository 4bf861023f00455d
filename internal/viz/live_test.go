package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/tixy/internal/render"
)

func testModel(t *testing.T, fn func(float64, int, int, int) float64, frames int) (*Model, *render.SimClock) {
	t.Helper()
	clock := render.NewSimClock()
	cfg := render.DefaultConfig()
	cfg.Grid.Dim = 4
	cfg.Frames = frames
	m, err := NewModel("test", fn, cfg, 16, render.WithClock(clock), render.WithSleeper(clock))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m.Init()
	return m, clock
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestTickRendersFrame(t *testing.T) {
	var last float64
	m, clock := testModel(t, func(t float64, i, x, y int) float64 {
		last = t
		return 1
	}, 0)

	clock.Advance(500 * time.Millisecond)
	_, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected another tick")
	}
	if m.renderer.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", m.renderer.Frames())
	}
	if last != 0.5 {
		t.Errorf("expected t=0.5, got %f", last)
	}
	if countDots(m.Canvas().Dots()) == 0 {
		t.Error("expected dots after a frame")
	}
}

func TestPauseFreezesTime(t *testing.T) {
	m, clock := testModel(t, func(t float64, i, x, y int) float64 { return 0 }, 0)

	clock.Advance(time.Second)
	m.Update(TickMsg(time.Now()))
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.Running() {
		t.Fatal("expected paused")
	}

	clock.Advance(3 * time.Second)
	m.Update(TickMsg(time.Now()))
	if m.renderer.Frames() != 1 {
		t.Errorf("paused view rendered a frame")
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	clock.Advance(time.Second)
	m.Update(TickMsg(time.Now()))
	if got := m.Time(); got != 2 {
		t.Errorf("expected t=2 after resuming, got %f", got)
	}
}

func TestFieldErrorQuits(t *testing.T) {
	m, _ := testModel(t, func(t float64, i, x, y int) float64 {
		if i == 5 {
			panic("bad")
		}
		return 0
	}, 0)

	_, cmd := m.Update(TickMsg(time.Now()))
	if !isQuit(cmd) {
		t.Fatal("expected quit after field error")
	}
	if !errors.Is(m.Err(), render.ErrFieldEvaluation) {
		t.Errorf("expected field error, got %v", m.Err())
	}
	if m.View() == "" {
		t.Error("expected a view")
	}
}

func TestFrameLimitQuits(t *testing.T) {
	m, _ := testModel(t, func(t float64, i, x, y int) float64 { return 0 }, 2)

	_, cmd := m.Update(TickMsg(time.Now()))
	if isQuit(cmd) {
		t.Fatal("quit too early")
	}
	_, cmd = m.Update(TickMsg(time.Now()))
	if !isQuit(cmd) {
		t.Fatal("expected quit at frame limit")
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := testModel(t, func(t float64, i, x, y int) float64 { return 0 }, 0)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !isQuit(cmd) {
		t.Error("expected quit on q")
	}
}

func TestStatsPanelShowsMetrics(t *testing.T) {
	m, clock := testModel(t, func(t float64, i, x, y int) float64 { return 1 }, 0)
	for i := 0; i < 3; i++ {
		clock.Advance(50 * time.Millisecond)
		m.Update(TickMsg(time.Now()))
	}

	view := m.View()
	for _, want := range []string{"frame_ms", "fps", "coverage", "100.0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	for _, mt := range m.metrics {
		if mt.Value() != 0 {
			t.Errorf("%s not reset: %v", mt.Name(), mt.Value())
		}
	}
}
