package health

import (
	"context"
	"fmt"
	"runtime"
)

// MemoryIndicatorConfig configures the memory health indicator.
type MemoryIndicatorConfig struct {
	// CriticalThreshold is the fraction of allocated memory that makes
	// the indicator report unhealthy.
	// Value should be between 0 and 1. Default: 0.95 (95%)
	CriticalThreshold float64

	// MaxAlloc is the maximum expected allocation in bytes.
	// If zero, uses the runtime's reported system memory.
	// Default: 0 (auto-detect)
	MaxAlloc uint64
}

// MemoryIndicator reports unhealthy when heap allocation crosses the
// critical threshold.
type MemoryIndicator struct {
	config MemoryIndicatorConfig
}

// NewMemoryIndicator creates a new memory health indicator.
func NewMemoryIndicator(config MemoryIndicatorConfig) *MemoryIndicator {
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	return &MemoryIndicator{config: config}
}

// Name returns the name of this indicator.
func (m *MemoryIndicator) Name() string {
	return "memory"
}

// Check performs the memory health determination.
func (m *MemoryIndicator) Check(ctx context.Context, inform Callback) {
	select {
	case <-ctx.Done():
		inform(Unhealthy(ctx.Err()))
		return
	default:
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	maxAlloc := m.config.MaxAlloc
	if maxAlloc == 0 {
		maxAlloc = stats.Sys
	}
	if maxAlloc == 0 {
		inform(Healthy().WithDetail("alloc_bytes", stats.Alloc))
		return
	}

	usageRatio := float64(stats.Alloc) / float64(maxAlloc)

	details := map[string]any{
		"alloc_bytes":   stats.Alloc,
		"alloc_mb":      float64(stats.Alloc) / (1024 * 1024),
		"max_alloc":     maxAlloc,
		"usage_percent": usageRatio * 100,
		"heap_in_use":   stats.HeapInuse,
		"heap_objects":  stats.HeapObjects,
		"num_gc":        stats.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}

	if usageRatio >= m.config.CriticalThreshold {
		inform(Unhealthy(
			fmt.Errorf("memory usage critical: %.1f%%", usageRatio*100),
		).WithDetails(details))
		return
	}

	inform(Healthy().WithDetails(details))
}
