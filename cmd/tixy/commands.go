package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/tixy/internal/automation"
	"github.com/san-kum/tixy/internal/bench"
	"github.com/san-kum/tixy/internal/config"
	"github.com/san-kum/tixy/internal/export"
	"github.com/san-kum/tixy/internal/gui"
	"github.com/san-kum/tixy/internal/metrics"
	"github.com/san-kum/tixy/internal/palette"
	"github.com/san-kum/tixy/internal/raster"
	"github.com/san-kum/tixy/internal/render"
	"github.com/san-kum/tixy/internal/store"
	"github.com/san-kum/tixy/internal/tui"
	"github.com/san-kum/tixy/internal/viz"
	"github.com/spf13/cobra"
)

const defaultGIFFrames = 60

func runLive(cmd *cobra.Command, args []string) error {
	cfg, rc, fn, err := setup(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(cfg.Pattern, fn, rc, columns)
}

func runStream(cmd *cobra.Command, args []string) error {
	_, rc, fn, err := setup(cmd, args)
	if err != nil {
		return err
	}

	length := rc.Grid.Length()
	term := tui.NewTerminal(os.Stdout, length, length, columns, useColor)
	defer term.Close()

	r, err := render.New(fn, rc, term)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	if err := r.Run(ctx); !stopped(err) {
		return err
	}
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, rc, fn, err := setup(cmd, args)
	if err != nil {
		return err
	}

	size := rc.Grid.Size()
	win := gui.Open(size, size, "tixy - "+cfg.Pattern)
	defer win.Close()

	r, err := render.New(fn, rc, win)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	if err := r.Run(ctx); !stopped(err) && !errors.Is(err, gui.ErrWindowClosed) {
		return err
	}
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	_, rc, fn, err := setup(cmd, args)
	if err != nil {
		return err
	}

	size := rc.Grid.Size()
	canvas := raster.NewCanvas(size, size)
	r, err := render.New(fn, rc, canvas)
	if err != nil {
		return err
	}
	if err := r.Frame(at); err != nil {
		return err
	}
	if err := canvas.SavePNG(pngOutput); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d, t=%.2fs)\n", pngOutput, canvas.Width(), canvas.Height(), at)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, rc, fn, err := setup(cmd, args)
	if err != nil {
		return err
	}

	length := rc.Grid.Length()
	canvas := export.NewSVGCanvas(length, length)
	r, err := render.New(fn, rc, canvas)
	if err != nil {
		return err
	}
	if err := r.Frame(at); err != nil {
		return err
	}
	if err := canvas.Save(svgOutput); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d circles, t=%.2fs)\n", svgOutput, canvas.Circles(), at)
	return nil
}

// exportGIF renders on a simulated clock so frame times are exact multiples
// of the delay regardless of how long rendering takes.
func exportGIF(cmd *cobra.Command, args []string) error {
	_, rc, fn, err := setup(cmd, args)
	if err != nil {
		return err
	}
	if rc.Frames == 0 {
		rc.Frames = defaultGIFFrames
	}

	size := rc.Grid.Size()
	canvas := raster.NewCanvas(size, size)
	canvas.Record(raster.StylePalette(rc.Style, 8))

	clock := render.NewSimClock()
	r, err := render.New(fn, rc, canvas, render.WithClock(clock), render.WithSleeper(clock))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	if err := r.Run(ctx); err != nil {
		return err
	}
	if err := raster.SaveGIF(gifOutput, canvas.Frames(), rc.Delay); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames, %.2fs)\n", gifOutput, len(canvas.Frames()), float64(rc.Frames)*rc.Delay.Seconds())
	return nil
}

func benchPattern(cmd *cobra.Command, args []string) error {
	cfg, rc, fn, err := setup(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	var results []*bench.Result
	if benchAll {
		results, err = bench.NewSuite(registry).Run(ctx, rc)
	} else {
		var res *bench.Result
		res, err = bench.Run(ctx, cfg.Pattern, fn, rc)
		results = []*bench.Result{res}
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	names := metrics.Names()
	fmt.Fprintf(w, "PATTERN\tFRAMES\tTOTAL\tMAX\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%d\t%v\t%s", res.Pattern, res.Frames, res.Total.Round(time.Millisecond), metrics.Format("frame_ms", res.MaxMs))
		for _, name := range names {
			fmt.Fprintf(w, "\t%s", metrics.Format(name, res.Metrics[name]))
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	if len(results) == 1 && len(results[0].FrameMs) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(results[0].FrameMs, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("frame time (ms)")))
	}

	report := store.NewReport(rc.Grid.MaxRadius, rc.Grid.Gap, results)
	if jsonOutput != "" {
		if err := store.ExportJSON(jsonOutput, report); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOutput)
	}
	if csvOutput != "" {
		if err := store.ExportCSV(csvOutput, report); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvOutput)
	}
	return nil
}

func playPlaylist(cmd *cobra.Command, args []string) error {
	p, err := automation.LoadPlaylist(args[0])
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	length := cfg.GridConfig().Length()
	term := tui.NewTerminal(os.Stdout, length, length, columns, useColor)
	defer term.Close()

	ctx, cancel := signalContext()
	defer cancel()
	results, err := automation.Run(ctx, p, registry, cfg, term)
	if !stopped(err) {
		return err
	}
	term.Close()
	for i, res := range results {
		fmt.Printf("%d. %-10s %d frames\n", i+1, res.Pattern, res.Frames)
	}
	return nil
}

func listPatterns(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tDESCRIPTION")
	for _, name := range registry.Names() {
		fmt.Fprintf(w, "%s\t%s\n", name, registry.Describe(name))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPATTERN\tGRID\tDELAY")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%dx%d r=%.0f gap=%.0f\t%.3fs\n", name, p.Pattern, p.Grid.Dim, p.Grid.Dim, p.Grid.MaxRadius, p.Grid.Gap, p.Delay)
	}
	return w.Flush()
}

func listThemes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THEME\tCANVAS\tPOSITIVE\tNEGATIVE")
	for _, th := range palette.Themes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", th.Name, th.Canvas, th.Positive, th.Negative)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
