package sysprobe

import (
	"context"
	"log/slog"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/vitals-cli/vitals/pkg/logger"
)

// MemorySampler measures physical memory utilization from the kernel
// memory-info source. There is no fallback chain: either the source reports
// both total and available memory, or the resource is unmeasured.
type MemorySampler struct {
	log *slog.Logger

	// Probe function, replaceable in tests.
	memInfo func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

// NewMemorySampler creates a memory sampler backed by the real system source.
func NewMemorySampler(log *slog.Logger) *MemorySampler {
	return &MemorySampler{
		log:     log.With(logger.Scope("sysprobe.memory")),
		memInfo: mem.VirtualMemoryWithContext,
	}
}

// Resource returns ResourceMemory.
func (s *MemorySampler) Resource() Resource { return ResourceMemory }

// Sample derives the used share from total and available memory. The
// arithmetic runs on whole kilobytes with integer division, matching the
// granularity of the kernel's meminfo interface.
func (s *MemorySampler) Sample(ctx context.Context) Reading {
	vm, err := s.memInfo(ctx)
	if err != nil {
		s.log.Debug("memory info unavailable", logger.Error(err))
		return unavailable(ResourceMemory)
	}

	totalKB := vm.Total / 1024
	availKB := vm.Available / 1024
	if totalKB == 0 || availKB > totalKB {
		s.log.Debug("memory info unusable",
			slog.Uint64("total_kb", totalKB),
			slog.Uint64("available_kb", availKB))
		return unavailable(ResourceMemory)
	}

	usedKB := totalKB - availKB
	return Reading{
		Resource:       ResourceMemory,
		UsagePercent:   int(usedKB * 100 / totalKB),
		Source:         SourceMemInfo,
		TotalBytes:     vm.Total,
		UsedBytes:      usedKB * 1024,
		AvailableBytes: vm.Available,
	}
}
