package threading

import (
	"context"
	"log"
	"net/http"
	"time"

	"doomlike/internal/config"
	"doomlike/internal/threading/core"
	"doomlike/internal/threading/monitoring"
)

// ThreadingComponents holds the shared worker pool and the monitoring
// pieces a backend needs.
type ThreadingComponents struct {
	WorkerPool         *core.WorkerPool
	PerformanceMonitor *monitoring.PerformanceMonitor
	Exporter           *monitoring.Exporter

	metricsServer *http.Server
}

// NewThreadingComponents creates and initializes all threading components.
// The metrics endpoint is started only when enabled in the config.
func NewThreadingComponents(cfg *config.Config) *ThreadingComponents {
	tc := &ThreadingComponents{
		WorkerPool:         core.CreateDefaultWorkerPool(),
		PerformanceMonitor: monitoring.NewPerformanceMonitor(),
	}

	// Half the target frame rate counts as slow
	if ms := cfg.Timing.FrameIntervalMs; ms > 0 {
		tc.PerformanceMonitor.SetLowFPSThreshold(1000 / float64(ms) / 2)
	}

	if cfg.Metrics.Enabled {
		tc.Exporter = monitoring.NewExporter()
		tc.PerformanceMonitor.AttachExporter(tc.Exporter)
		tc.metricsServer = tc.Exporter.StartHTTP(cfg.Metrics.ListenAddr)
	}
	return tc
}

// Shutdown gracefully shuts down all threading components
func (tc *ThreadingComponents) Shutdown() {
	if tc.WorkerPool != nil {
		tc.WorkerPool.Stop()
	}
	if tc.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := tc.metricsServer.Shutdown(ctx); err != nil {
			log.Printf("Warning: metrics server shutdown: %v", err)
		}
		tc.metricsServer = nil
	}
}

// GetPerformanceMetrics returns current performance metrics
func (tc *ThreadingComponents) GetPerformanceMetrics() monitoring.FrameMetrics {
	return tc.PerformanceMonitor.GetCurrentMetrics()
}

// CheckPerformanceAlerts returns any performance warnings
func (tc *ThreadingComponents) CheckPerformanceAlerts() []monitoring.PerformanceAlert {
	return tc.PerformanceMonitor.CheckPerformanceAlerts()
}
