package render_test

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"log/slog"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tixy/internal/field"
	"github.com/san-kum/tixy/internal/grid"
	"github.com/san-kum/tixy/internal/palette"
	"github.com/san-kum/tixy/internal/render"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{254, 34, 68, 255}
)

func testConfig(dim int) render.Config {
	return render.Config{
		Grid:  grid.Config{Dim: dim, MaxRadius: 8, Gap: 2},
		Style: palette.Style{CanvasFill: black, PositiveFill: white, NegativeFill: red},
		Delay: 50 * time.Millisecond,
	}
}

func triangle(t float64, i, x, y int) float64 { return float64(y - x) }

var _ = Describe("Renderer", func() {
	var (
		canvas *recordingCanvas
		clock  *render.SimClock
	)

	BeforeEach(func() {
		canvas = &recordingCanvas{}
		clock = render.NewSimClock()
	})

	newRenderer := func(fn field.Func, cfg render.Config, opts ...render.Option) *render.Renderer {
		opts = append([]render.Option{render.WithClock(clock), render.WithSleeper(clock)}, opts...)
		r, err := render.New(fn, cfg, canvas, opts...)
		Expect(err).NotTo(HaveOccurred())
		return r
	}

	Describe("configuration", func() {
		DescribeTable("rejects invalid settings before the loop starts",
			func(mutate func(*render.Config)) {
				cfg := testConfig(16)
				mutate(&cfg)
				_, err := render.New(triangle, cfg, canvas)
				Expect(err).To(MatchError(render.ErrInvalidConfig))
				Expect(canvas.syncs).To(BeZero())
			},
			Entry("zero dim", func(c *render.Config) { c.Grid.Dim = 0 }),
			Entry("negative dim", func(c *render.Config) { c.Grid.Dim = -1 }),
			Entry("negative radius", func(c *render.Config) { c.Grid.MaxRadius = -8 }),
			Entry("negative gap", func(c *render.Config) { c.Grid.Gap = -2 }),
			Entry("negative delay", func(c *render.Config) { c.Delay = -time.Second }),
			Entry("negative frames", func(c *render.Config) { c.Frames = -1 }),
			Entry("missing fill", func(c *render.Config) { c.Style.NegativeFill = nil }),
		)

		It("wraps grid errors", func() {
			cfg := testConfig(0)
			_, err := render.New(triangle, cfg, canvas)
			Expect(errors.Is(err, grid.ErrInvalidConfig)).To(BeTrue())
		})

		It("rejects a nil field function", func() {
			_, err := render.New(nil, testConfig(4), canvas)
			Expect(err).To(MatchError(render.ErrInvalidConfig))
		})

		It("uses the documented defaults", func() {
			cfg := render.DefaultConfig()
			Expect(cfg.Grid.Dim).To(Equal(16))
			Expect(cfg.Grid.MaxRadius).To(Equal(8.0))
			Expect(cfg.Grid.Gap).To(Equal(2.0))
			Expect(cfg.Delay).To(Equal(50 * time.Millisecond))
			Expect(cfg.Grid.Length()).To(Equal(286.0))
		})
	})

	Describe("a frame", func() {
		It("maps y-x on a 2x2 grid to radii and fills", func() {
			cfg := testConfig(2)
			cfg.Frames = 1
			r := newRenderer(triangle, cfg)

			Expect(r.Run(context.Background())).To(Succeed())
			Expect(canvas.frames).To(HaveLen(1))

			f := canvas.frames[0]
			Expect(f.Clear).To(Equal(color.Color(black)))
			Expect(f.Circles).To(Equal([]circle{
				{X: 8, Y: 8, Radius: 0, Fill: red},
				{X: 26, Y: 8, Radius: 8, Fill: red},
				{X: 8, Y: 26, Radius: 8, Fill: white},
				{X: 26, Y: 26, Radius: 0, Fill: red},
			}))
		})

		It("draws a single centered circle when dim is 1", func() {
			cfg := testConfig(1)
			cfg.Frames = 3
			r := newRenderer(func(t float64, i, x, y int) float64 { return 1 }, cfg)

			Expect(r.Run(context.Background())).To(Succeed())
			Expect(canvas.frames).To(HaveLen(3))
			for _, f := range canvas.frames {
				Expect(f.Circles).To(Equal([]circle{{X: 8, Y: 8, Radius: 8, Fill: white}}))
			}
		})

		It("visits cells in increasing index order", func() {
			cfg := testConfig(5)
			var seen [][3]int
			r := newRenderer(func(t float64, i, x, y int) float64 {
				seen = append(seen, [3]int{i, x, y})
				return 0
			}, cfg)

			Expect(r.Frame(0)).To(Succeed())
			Expect(seen).To(HaveLen(25))
			for n, v := range seen {
				Expect(v).To(Equal([3]int{n, n % 5, n / 5}))
			}
		})

		It("keeps every radius within max radius", func() {
			values := []float64{-1e9, -3, -1, -0.25, 0, 0.5, 1, 2, 1e9, math.Inf(1), math.Inf(-1), math.NaN()}
			cfg := testConfig(4)
			r := newRenderer(func(t float64, i, x, y int) float64 { return values[i%len(values)] }, cfg)

			Expect(r.Frame(0)).To(Succeed())
			for _, c := range canvas.frames[0].Circles {
				Expect(c.Radius).To(BeNumerically(">=", 0))
				Expect(c.Radius).To(BeNumerically("<=", cfg.Grid.MaxRadius))
			}
		})
	})

	Describe("timing", func() {
		It("passes elapsed seconds to the field function", func() {
			cfg := testConfig(1)
			cfg.Frames = 4
			var times []float64
			r := newRenderer(func(t float64, i, x, y int) float64 {
				times = append(times, t)
				return 0
			}, cfg)

			Expect(r.Run(context.Background())).To(Succeed())
			Expect(times).To(HaveLen(4))
			for n, t := range times {
				Expect(t).To(BeNumerically("~", 0.05*float64(n), 1e-9))
			}
		})

		It("gives each renderer its own start time", func() {
			a := newRenderer(triangle, testConfig(1))
			clock.Advance(2 * time.Second)
			b := newRenderer(triangle, testConfig(1))

			Expect(a.Elapsed()).To(BeNumerically("~", 2, 1e-9))
			Expect(b.Elapsed()).To(BeNumerically("~", 0, 1e-9))
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			obs := render.ObserverFunc(func(s render.FrameStats) {
				if s.Frame == 2 {
					cancel()
				}
			})
			r := newRenderer(triangle, testConfig(2), render.WithObserver(obs))

			err := r.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(canvas.frames).To(HaveLen(3))
		})
	})

	Describe("field failures", func() {
		It("terminates the run on the failing cell", func() {
			boom := errors.New("boom")
			cfg := testConfig(4)
			r := newRenderer(func(t float64, i, x, y int) float64 {
				if i == 5 {
					panic(boom)
				}
				return 1
			}, cfg)

			err := r.Run(context.Background())
			Expect(err).To(MatchError(render.ErrFieldEvaluation))
			Expect(err).To(MatchError(boom))

			var fe *render.FieldError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Cell.Index).To(Equal(5))
			Expect(fe.Cell.X).To(Equal(1))
			Expect(fe.Cell.Y).To(Equal(1))
			Expect(fe.Frame).To(Equal(0))

			Expect(canvas.frames).To(BeEmpty())
			Expect(canvas.syncs).To(Equal(1))
		})

		It("keeps earlier frames and renders none after the failure", func() {
			cfg := testConfig(4)
			r := newRenderer(func(t float64, i, x, y int) float64 {
				if t >= 0.1 && i == 5 {
					panic("bad cell")
				}
				return 0
			}, cfg)

			err := r.Run(context.Background())
			Expect(err).To(MatchError(render.ErrFieldEvaluation))
			Expect(err.Error()).To(ContainSubstring("bad cell"))
			Expect(canvas.frames).To(HaveLen(2))
			Expect(canvas.syncs).To(Equal(3))
			Expect(r.Frames()).To(Equal(2))
		})
	})

	Describe("observers", func() {
		It("reports per-frame statistics", func() {
			var stats []render.FrameStats
			cfg := testConfig(2)
			cfg.Frames = 2
			r := newRenderer(triangle, cfg, render.WithObserver(render.ObserverFunc(func(s render.FrameStats) {
				stats = append(stats, s)
			})))

			Expect(r.Run(context.Background())).To(Succeed())
			Expect(stats).To(HaveLen(2))
			Expect(stats[0].Frame).To(Equal(0))
			Expect(stats[1].Frame).To(Equal(1))
			Expect(stats[0].Cells).To(Equal(4))
			Expect(stats[0].Positive).To(Equal(1))
			Expect(stats[0].Mean).To(BeNumerically("~", 0, 1e-9))
			Expect(stats[0].Peak).To(Equal(1.0))
		})
	})

	Describe("logging", func() {
		It("writes loop records to the renderer's own logger", func() {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			cfg := testConfig(2)
			cfg.Frames = 1
			r := newRenderer(triangle, cfg, render.WithLogger(logger))

			Expect(r.Run(context.Background())).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("render loop started"))
			Expect(buf.String()).To(ContainSubstring("msg=frame"))
			Expect(buf.String()).To(ContainSubstring("render loop finished"))
		})

		It("ignores a nil logger", func() {
			cfg := testConfig(1)
			cfg.Frames = 1
			r := newRenderer(triangle, cfg, render.WithLogger(nil))
			Expect(r.Run(context.Background())).To(Succeed())
		})
	})
})

var _ = Describe("Clamp and Fill", func() {
	style := palette.Style{CanvasFill: black, PositiveFill: white, NegativeFill: red}

	DescribeTable("clamps to [-1, 1]",
		func(in, expected float64) {
			Expect(render.Clamp(in)).To(Equal(expected))
		},
		Entry("inside", 0.25, 0.25),
		Entry("upper bound", 1.0, 1.0),
		Entry("above", 7.0, 1.0),
		Entry("below", -3.0, -1.0),
		Entry("+inf", math.Inf(1), 1.0),
		Entry("-inf", math.Inf(-1), -1.0),
		Entry("nan", math.NaN(), 0.0),
	)

	It("scales radius by max radius", func() {
		Expect(render.Radius(0.5, 8)).To(Equal(4.0))
		Expect(render.Radius(-12, 8)).To(Equal(-8.0))
	})

	It("treats zero as negative", func() {
		Expect(render.Fill(style, 0)).To(Equal(color.Color(red)))
		Expect(render.Fill(style, -0.1)).To(Equal(color.Color(red)))
		Expect(render.Fill(style, 1e-9)).To(Equal(color.Color(white)))
	})
})

var _ = Describe("TimerSleeper", func() {
	It("returns early when cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		began := time.Now()
		err := render.TimerSleeper.Sleep(ctx, time.Hour)
		Expect(err).To(MatchError(context.Canceled))
		Expect(time.Since(began)).To(BeNumerically("<", time.Second))
	})

	It("sleeps for the delay", func() {
		Expect(render.TimerSleeper.Sleep(context.Background(), time.Millisecond)).To(Succeed())
	})
})
