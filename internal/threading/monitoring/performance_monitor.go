package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"doomlike/internal/render"
)

// PerformanceMonitor tracks frame and render timings plus the counters of
// the most recent frame. All methods are safe for concurrent use.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, whole Step or Render call
	renderTime atomic.Uint64 // nanoseconds, RenderFrame only

	// Last frame's renderer counters
	sectors      atomic.Int64
	wallsDrawn   atomic.Int64
	wallsCulled  atomic.Int64
	wallsClipped atomic.Int64
	pixels       atomic.Int64
	totalPixels  atomic.Uint64

	// Statistics
	mutex         sync.RWMutex
	avgFrameTime  float64
	avgRenderTime float64
	startTime     time.Time
	exporter      *Exporter

	// Configuration
	enableDetailed atomic.Bool
	lowFPS         float64
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	pm := &PerformanceMonitor{
		startTime: time.Now(),
		lowFPS:    15,
	}
	pm.enableDetailed.Store(true)
	return pm
}

// AttachExporter forwards every finished render to e.
func (pm *PerformanceMonitor) AttachExporter(e *Exporter) {
	pm.mutex.Lock()
	pm.exporter = e
	pm.mutex.Unlock()
}

// SetLowFPSThreshold sets the frame rate below which an alert is raised
func (pm *PerformanceMonitor) SetLowFPSThreshold(fps float64) {
	pm.mutex.Lock()
	pm.lowFPS = fps
	pm.mutex.Unlock()
}

// smoothing factor of the running averages
const avgWeight = 0.1

func movingAverage(avg, sample float64) float64 {
	if avg == 0 {
		return sample
	}
	return avg + avgWeight*(sample-avg)
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	frameTime := time.Since(ft.startTime)
	pm := ft.monitor
	pm.frameTime.Store(uint64(frameTime.Nanoseconds()))
	pm.frameCount.Add(1)

	if pm.enableDetailed.Load() {
		pm.mutex.Lock()
		pm.avgFrameTime = movingAverage(pm.avgFrameTime, float64(frameTime.Nanoseconds()))
		pm.mutex.Unlock()
	}
}

// RenderTimer measures one RenderFrame call
type RenderTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRender begins render timing
func (pm *PerformanceMonitor) StartRender() *RenderTimer {
	return &RenderTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndRender completes render timing and records the frame's counters
func (rt *RenderTimer) EndRender(stats render.FrameStats) {
	renderTime := time.Since(rt.startTime)
	pm := rt.monitor
	pm.renderTime.Store(uint64(renderTime.Nanoseconds()))
	pm.RecordFrameStats(stats)

	pm.mutex.Lock()
	if pm.enableDetailed.Load() {
		pm.avgRenderTime = movingAverage(pm.avgRenderTime, float64(renderTime.Nanoseconds()))
	}
	exporter := pm.exporter
	pm.mutex.Unlock()

	if exporter != nil {
		exporter.Observe(renderTime, stats)
	}
}

// RecordFrameStats stores the renderer counters of the latest frame
func (pm *PerformanceMonitor) RecordFrameStats(stats render.FrameStats) {
	pm.sectors.Store(int64(stats.Sectors))
	pm.wallsDrawn.Store(int64(stats.WallsDrawn))
	pm.wallsCulled.Store(int64(stats.WallsCulled))
	pm.wallsClipped.Store(int64(stats.WallsClipped))
	pm.pixels.Store(int64(stats.Pixels))
	pm.totalPixels.Add(uint64(stats.Pixels))
}

// LastFrameStats returns the counters recorded for the latest frame
func (pm *PerformanceMonitor) LastFrameStats() render.FrameStats {
	return render.FrameStats{
		Sectors:      int(pm.sectors.Load()),
		WallsDrawn:   int(pm.wallsDrawn.Load()),
		WallsCulled:  int(pm.wallsCulled.Load()),
		WallsClipped: int(pm.wallsClipped.Load()),
		Pixels:       int(pm.pixels.Load()),
	}
}

// FrameMetrics is a snapshot of the monitor
type FrameMetrics struct {
	FrameCount      uint64
	FramesPerSecond float64
	RenderTime      time.Duration
	LastFrame       render.FrameStats
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return FrameMetrics{
		FrameCount:      pm.frameCount.Load(),
		FramesPerSecond: pm.fps(),
		RenderTime:      time.Duration(pm.renderTime.Load()),
		LastFrame:       pm.LastFrameStats(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

func (pm *PerformanceMonitor) fps() float64 {
	frameTime := pm.frameTime.Load()
	if frameTime == 0 {
		return 0
	}
	return float64(time.Second) / float64(frameTime)
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":     time.Since(pm.startTime).Seconds(),
		"frame_count":        pm.frameCount.Load(),
		"avg_frame_time_ms":  pm.avgFrameTime / 1e6,
		"avg_render_time_ms": pm.avgRenderTime / 1e6,
		"current_fps":        pm.fps(),
		"sectors":            pm.sectors.Load(),
		"walls_drawn":        pm.wallsDrawn.Load(),
		"walls_culled":       pm.wallsCulled.Load(),
		"walls_clipped":      pm.wallsClipped.Load(),
		"pixels":             pm.pixels.Load(),
		"pixels_total":       pm.totalPixels.Load(),
		"memory_alloc_mb":    memStats.Alloc / 1024 / 1024,
		"gc_cycles":          memStats.NumGC,
		"goroutines":         runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	pm.mutex.RLock()
	lowFPS := pm.lowFPS
	pm.mutex.RUnlock()

	if fps := pm.fps(); fps > 0 && fps < lowFPS {
		alerts = append(alerts, PerformanceAlert{
			Type:      "low_fps",
			Message:   "Frame rate is below threshold",
			Value:     fps,
			Threshold: lowFPS,
			Timestamp: currentTime,
		})
	}

	// A frame whose walls were all culled usually means the camera left the map
	if pm.frameCount.Load() > 0 && pm.wallsDrawn.Load() == 0 && pm.wallsCulled.Load() > 0 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "empty_view",
			Message:   "Every wall was behind the camera",
			Value:     float64(pm.wallsCulled.Load()),
			Timestamp: currentTime,
		})
	}

	return alerts
}

// EnableDetailedLogging enables/disables the running averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.enableDetailed.Store(enabled)
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.renderTime.Store(0)
	pm.RecordFrameStats(render.FrameStats{})
	pm.totalPixels.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRenderTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
