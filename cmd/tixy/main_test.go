package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/tixy/internal/config"
)

func execute(t *testing.T, args ...string) {
	t.Helper()
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("tixy %v: %v", args, err)
	}
}

func TestOutputDefaults(t *testing.T) {
	root := newRootCmd()
	tests := []struct {
		cmd  string
		want string
	}{
		{"png", "tixy.png"},
		{"svg", "tixy.svg"},
		{"gif", "tixy.gif"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			c, _, err := root.Find([]string{tt.cmd})
			if err != nil {
				t.Fatal(err)
			}
			if got := c.Flags().Lookup("output").DefValue; got != tt.want {
				t.Errorf("expected default %s, got %s", tt.want, got)
			}
		})
	}
	if pngOutput != "tixy.png" || svgOutput != "tixy.svg" || gifOutput != "tixy.gif" {
		t.Errorf("outputs share state: png=%s svg=%s gif=%s", pngOutput, svgOutput, gifOutput)
	}
}

func TestExportsWriteTheirOwnFile(t *testing.T) {
	tests := []struct {
		cmd  string
		file string
	}{
		{"png", "tixy.png"},
		{"svg", "tixy.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			t.Chdir(t.TempDir())
			execute(t, tt.cmd, "flip", "--dim", "2")

			if _, err := os.Stat(tt.file); err != nil {
				t.Errorf("expected %s: %v", tt.file, err)
			}
			if _, err := os.Stat("tixy.gif"); err == nil {
				t.Error("wrote tixy.gif")
			}
		})
	}
}

func TestConfigFileOverPreset(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "override.yaml")
	out := filepath.Join(dir, "effective.yaml")
	if err := os.WriteFile(in, []byte("delay: 0.2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	execute(t, "config", out, "--preset", "tiny", "--config", in)

	cfg, err := config.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	tiny := config.GetPreset("tiny")
	if cfg.Grid != tiny.Grid || cfg.Pattern != tiny.Pattern {
		t.Errorf("preset lost: got %+v", cfg)
	}
	if cfg.Delay != 0.2 {
		t.Errorf("file value not applied: %v", cfg.Delay)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "base.yaml")
	out := filepath.Join(dir, "effective.yaml")
	if err := os.WriteFile(in, []byte("grid:\n  dim: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	execute(t, "config", out, "--config", in, "--dim", "6", "--theme", "ocean")

	cfg, err := config.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grid.Dim != 6 {
		t.Errorf("expected dim 6, got %d", cfg.Grid.Dim)
	}
	if cfg.Colors.Canvas == config.DefaultCanvasFill {
		t.Error("theme not applied")
	}
}
