package monitoring

import (
	"os"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats is a point-in-time view of the renderer process.
type ProcessStats struct {
	CPUPercent float64
	RSSMB      float64
}

// ProcessSampler reads CPU and memory usage of the current process.
type ProcessSampler struct {
	proc *process.Process
}

func NewProcessSampler() (*ProcessSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &ProcessSampler{proc: proc}, nil
}

// CPUPercent returns CPU usage since the previous call. When the process
// counter is unavailable the system-wide figure is used.
func (s *ProcessSampler) CPUPercent() (float64, error) {
	percent, err := s.proc.Percent(0)
	if err == nil {
		return percent, nil
	}
	percents, sysErr := cpu.Percent(0, false)
	if sysErr != nil || len(percents) == 0 {
		return 0, err
	}
	return percents[0], nil
}

// RSSMB returns the resident set size in megabytes.
func (s *ProcessSampler) RSSMB() (float64, error) {
	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return float64(mem.RSS) / 1024 / 1024, nil
}

// Sample reads both values.
func (s *ProcessSampler) Sample() (ProcessStats, error) {
	cpuPercent, err := s.CPUPercent()
	if err != nil {
		return ProcessStats{}, err
	}
	rss, err := s.RSSMB()
	if err != nil {
		return ProcessStats{}, err
	}
	return ProcessStats{CPUPercent: cpuPercent, RSSMB: rss}, nil
}
