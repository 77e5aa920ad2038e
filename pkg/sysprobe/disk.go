package sysprobe

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/vitals-cli/vitals/pkg/logger"
)

// rootPath is the filesystem whose usage is checked.
const rootPath = "/"

// DiskUsage is one row of a filesystem usage report. UsePercent carries the
// use percentage as df-style reports print it, e.g. "45%"; producers format
// it, the sampler parses it.
type DiskUsage struct {
	TotalBytes     uint64
	UsedBytes      uint64
	AvailableBytes uint64
	UsePercent     string
}

// DiskSampler measures root filesystem utilization from a usage report.
// A report that cannot be obtained or parsed leaves the resource unmeasured;
// there is no fallback chain.
type DiskSampler struct {
	path string
	log  *slog.Logger

	// Probe function, replaceable in tests.
	usage func(ctx context.Context, path string) (*DiskUsage, error)
}

// NewDiskSampler creates a disk sampler for the root filesystem.
func NewDiskSampler(log *slog.Logger) *DiskSampler {
	return &DiskSampler{
		path:  rootPath,
		log:   log.With(logger.Scope("sysprobe.disk")),
		usage: readDiskUsage,
	}
}

// Resource returns ResourceDisk.
func (s *DiskSampler) Resource() Resource { return ResourceDisk }

// Sample parses the use percentage out of the report row, stripping the
// trailing percent sign. Size fields pass through for display only.
func (s *DiskSampler) Sample(ctx context.Context) Reading {
	du, err := s.usage(ctx, s.path)
	if err != nil {
		s.log.Debug("disk usage unavailable", slog.String("path", s.path), logger.Error(err))
		return unavailable(ResourceDisk)
	}

	pct, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(du.UsePercent), "%"))
	if err != nil || pct < 0 {
		s.log.Debug("disk use percentage unparsable", slog.String("use_percent", du.UsePercent))
		return unavailable(ResourceDisk)
	}

	return Reading{
		Resource:       ResourceDisk,
		UsagePercent:   pct,
		Source:         SourceDiskUsage,
		TotalBytes:     du.TotalBytes,
		UsedBytes:      du.UsedBytes,
		AvailableBytes: du.AvailableBytes,
	}
}

// readDiskUsage queries filesystem usage for path and shapes it as a
// report row.
func readDiskUsage(ctx context.Context, path string) (*DiskUsage, error) {
	du, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, err
	}
	return &DiskUsage{
		TotalBytes:     du.Total,
		UsedBytes:      du.Used,
		AvailableBytes: du.Free,
		UsePercent:     fmt.Sprintf("%d%%", int(du.UsedPercent)),
	}, nil
}
