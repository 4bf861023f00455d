package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/san-kum/tixy/internal/config"
	"github.com/san-kum/tixy/internal/field"
	"github.com/san-kum/tixy/internal/render"
	"github.com/san-kum/tixy/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	theme      string
	verbose    bool
	// Grid and style overrides
	dim          int
	maxRadius    float64
	gap          float64
	canvasFill   string
	positiveFill string
	negativeFill string
	delay        float64
	frames       int
	// Terminal output
	columns  int
	useColor bool
	// File output
	pngOutput string
	svgOutput string
	gifOutput string
	at        float64
	// Benchmark
	benchAll   bool
	jsonOutput string
	csvOutput  string
)

var registry = field.NewRegistry()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers commands and flags; with no subcommand the root
// opens the live terminal view of the configured pattern.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tixy [pattern]",
		Short:        "animated circle-grid patterns from tiny field functions",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&theme, "theme", "", "color theme")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	pf.IntVar(&dim, "dim", config.DefaultDim, "circles per row and column")
	pf.Float64Var(&maxRadius, "radius", config.DefaultMaxRadius, "maximum circle radius (px)")
	pf.Float64Var(&gap, "gap", config.DefaultGap, "space between circles (px)")
	pf.StringVar(&canvasFill, "canvas-fill", config.DefaultCanvasFill, "background color")
	pf.StringVar(&positiveFill, "positive-fill", config.DefaultPositiveFill, "color for positive values")
	pf.StringVar(&negativeFill, "negative-fill", config.DefaultNegativeFill, "color for zero and negative values")
	pf.Float64Var(&delay, "delay", config.DefaultDelay, "seconds between frames")
	pf.IntVar(&frames, "frames", 0, "stop after this many frames (0 = forever)")
	pf.IntVar(&columns, "cols", viz.DefaultColumns, "terminal columns used by the canvas")

	liveCmd := &cobra.Command{
		Use:   "live [pattern]",
		Short: "interactive terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run [pattern]",
		Short: "stream frames to the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStream,
	}
	runCmd.Flags().BoolVar(&useColor, "color", true, "colored output")

	windowCmd := &cobra.Command{
		Use:   "window [pattern]",
		Short: "render in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWindow,
	}

	pngCmd := &cobra.Command{
		Use:   "png [pattern]",
		Short: "render one frame to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportPNG,
	}
	pngCmd.Flags().StringVarP(&pngOutput, "output", "o", "tixy.png", "output file")
	pngCmd.Flags().Float64Var(&at, "at", 0, "animation time (s)")

	svgCmd := &cobra.Command{
		Use:   "svg [pattern]",
		Short: "render one frame to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&svgOutput, "output", "o", "tixy.svg", "output file")
	svgCmd.Flags().Float64Var(&at, "at", 0, "animation time (s)")

	gifCmd := &cobra.Command{
		Use:   "gif [pattern]",
		Short: "render an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportGIF,
	}
	gifCmd.Flags().StringVarP(&gifOutput, "output", "o", "tixy.gif", "output file")

	benchCmd := &cobra.Command{
		Use:   "bench [pattern]",
		Short: "benchmark frame rendering",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPattern,
	}
	benchCmd.Flags().BoolVar(&benchAll, "all", false, "benchmark every pattern concurrently")
	benchCmd.Flags().StringVar(&jsonOutput, "json", "", "write report as JSON")
	benchCmd.Flags().StringVar(&csvOutput, "csv", "", "write per-frame times as CSV")

	playCmd := &cobra.Command{
		Use:   "play [playlist]",
		Short: "play a yaml playlist of patterns",
		Args:  cobra.ExactArgs(1),
		RunE:  playPlaylist,
	}
	playCmd.Flags().BoolVar(&useColor, "color", true, "colored output")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list patterns",
		RunE:  listPatterns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		RunE:  listThemes,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(liveCmd, runCmd, windowCmd, pngCmd, svgCmd, gifCmd, benchCmd, playCmd, listCmd, presetsCmd, themesCmd, configCmd)
	return rootCmd
}

func setupLogging() {
	if !verbose {
		return
	}
	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// loadConfig merges defaults, preset, config file, theme and flags, in that
// order. Flags only apply when set explicitly.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if theme != "" {
		if err := cfg.ApplyTheme(theme); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dim") {
		cfg.Grid.Dim = dim
	}
	if flags.Changed("radius") {
		cfg.Grid.MaxRadius = maxRadius
	}
	if flags.Changed("gap") {
		cfg.Grid.Gap = gap
	}
	if flags.Changed("canvas-fill") {
		cfg.Colors.Canvas = canvasFill
	}
	if flags.Changed("positive-fill") {
		cfg.Colors.Positive = positiveFill
	}
	if flags.Changed("negative-fill") {
		cfg.Colors.Negative = negativeFill
	}
	if flags.Changed("delay") {
		cfg.Delay = delay
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}

	if len(args) > 0 {
		cfg.Pattern = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup resolves the configuration and field function for a render command.
func setup(cmd *cobra.Command, args []string) (*config.Config, render.Config, field.Func, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, render.Config{}, nil, err
	}
	fn, err := registry.Get(cfg.Pattern)
	if err != nil {
		return nil, render.Config{}, nil, fmt.Errorf("%w (available: %v)", err, registry.Names())
	}
	rc, err := cfg.RenderConfig()
	if err != nil {
		return nil, render.Config{}, nil, err
	}
	return cfg, rc, fn, nil
}

// signalContext is cancelled on Ctrl-C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// stopped reports whether err is a normal end of an animation loop.
func stopped(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}
