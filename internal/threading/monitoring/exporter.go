package monitoring

import (
	"errors"
	"log"
	"net/http"
	"time"

	"doomlike/internal/render"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter publishes renderer metrics for Prometheus. Each exporter owns
// its registry so several can coexist in tests.
type Exporter struct {
	registry *prometheus.Registry

	frames        prometheus.Counter
	renderSeconds prometheus.Histogram
	pixels        prometheus.Counter
	wallsDrawn    prometheus.Counter
	wallsCulled   prometheus.Counter
	wallsClipped  prometheus.Counter
	sectors       prometheus.Gauge
	sampler       *ProcessSampler
}

// NewExporter creates an exporter but does not start the HTTP server.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doomlike",
			Name:      "frames_rendered_total",
			Help:      "Frames rendered.",
		}),
		renderSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "doomlike",
			Name:      "render_duration_seconds",
			Help:      "Time spent in RenderFrame.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		pixels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doomlike",
			Name:      "pixels_written_total",
			Help:      "Pixels written by the rasterizer.",
		}),
		wallsDrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doomlike",
			Name:      "wall_passes_drawn_total",
			Help:      "Wall passes handed to the rasterizer.",
		}),
		wallsCulled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doomlike",
			Name:      "wall_passes_culled_total",
			Help:      "Wall passes skipped with both ends behind the camera.",
		}),
		wallsClipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doomlike",
			Name:      "wall_passes_clipped_total",
			Help:      "Wall passes clipped against the near plane.",
		}),
		sectors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "doomlike",
			Name:      "sectors_drawn",
			Help:      "Sectors drawn in the last frame.",
		}),
	}

	e.registry.MustRegister(
		e.frames, e.renderSeconds, e.pixels,
		e.wallsDrawn, e.wallsCulled, e.wallsClipped, e.sectors,
		collectors.NewGoCollector(),
	)

	if sampler, err := NewProcessSampler(); err != nil {
		log.Printf("Warning: process metrics unavailable: %v", err)
	} else {
		e.sampler = sampler
		e.registry.MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: "doomlike",
				Name:      "process_cpu_percent",
				Help:      "CPU used by the renderer since the previous scrape.",
			}, func() float64 { return orZero(e.sampler.CPUPercent()) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: "doomlike",
				Name:      "process_rss_megabytes",
				Help:      "Resident memory of the renderer.",
			}, func() float64 { return orZero(e.sampler.RSSMB()) }),
		)
	}
	return e
}

func orZero(v float64, err error) float64 {
	if err != nil {
		return 0
	}
	return v
}

// Observe records one rendered frame.
func (e *Exporter) Observe(d time.Duration, stats render.FrameStats) {
	e.frames.Inc()
	e.renderSeconds.Observe(d.Seconds())
	e.pixels.Add(float64(stats.Pixels))
	e.wallsDrawn.Add(float64(stats.WallsDrawn))
	e.wallsCulled.Add(float64(stats.WallsCulled))
	e.wallsClipped.Add(float64(stats.WallsClipped))
	e.sectors.Set(float64(stats.Sectors))
}

// Registry exposes the exporter's registry.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Handler serves the metrics in the Prometheus text format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// StartHTTP serves /metrics on addr in a background goroutine. The caller
// stops it with Shutdown on the returned server.
func (e *Exporter) StartHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Printf("Prometheus /metrics available at %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Warning: metrics server failed: %v", err)
		}
	}()
	return srv
}
