package sysprobe

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/vitals-cli/vitals/pkg/logger"
)

// probeInterval is the window of the idle-based CPU measurement. The probe
// blocks for this long; it is the only wait in a check run.
const probeInterval = 500 * time.Millisecond

// CPUSampler measures CPU utilization through an ordered chain of sources,
// using the first one that yields a usable non-negative value.
type CPUSampler struct {
	interval time.Duration
	log      *slog.Logger

	// Probe functions, replaceable in tests.
	idlePercent  func(ctx context.Context, interval time.Duration) (float64, error)
	userSnapshot func(ctx context.Context) (string, error)
	loadAverage  func(ctx context.Context) (float64, error)
}

// NewCPUSampler creates a CPU sampler backed by the real system sources.
func NewCPUSampler(log *slog.Logger) *CPUSampler {
	return &CPUSampler{
		interval:     probeInterval,
		log:          log.With(logger.Scope("sysprobe.cpu")),
		idlePercent:  probeIdlePercent,
		userSnapshot: readUserSnapshot,
		loadAverage:  readLoadAverage,
	}
}

// Resource returns ResourceCPU.
func (s *CPUSampler) Resource() Resource { return ResourceCPU }

// Sample tries the idle probe, then the top snapshot, then the load
// average. A source that errors or yields an unusable value falls through
// to the next; when all are exhausted the CPU is reported as unmeasured.
func (s *CPUSampler) Sample(ctx context.Context) Reading {
	if idle, err := s.idlePercent(ctx, s.interval); err == nil {
		if usage := int(100 - idle); usage >= 0 {
			return Reading{Resource: ResourceCPU, UsagePercent: usage, Source: SourceIdleProbe}
		}
		s.log.Debug("idle probe value out of range", slog.Float64("idle", idle))
	} else {
		s.log.Debug("idle probe unavailable", logger.Error(err))
	}

	if field, err := s.userSnapshot(ctx); err == nil {
		if usage, ok := parsePercentField(field); ok && usage > 0 {
			return Reading{Resource: ResourceCPU, UsagePercent: usage, Source: SourceSnapshot}
		}
		s.log.Debug("snapshot user field unusable", slog.String("field", field))
	} else {
		s.log.Debug("snapshot unavailable", logger.Error(err))
	}

	// Load 1.0 is read as one fully busy core. The value is not normalized
	// by core count, so it can exceed 100 on busy multi-core hosts.
	if load1, err := s.loadAverage(ctx); err == nil {
		if load1 >= 0 {
			return Reading{Resource: ResourceCPU, UsagePercent: int(math.Round(load1 * 100)), Source: SourceLoadAverage}
		}
	} else {
		s.log.Debug("load average unavailable", logger.Error(err))
	}

	return unavailable(ResourceCPU)
}

// parsePercentField extracts the numeric prefix of a percentage field and
// truncates it to an integer. Fields arrive with trailing decoration from
// the snapshot tool, e.g. "12.3%us," or "45%".
func parsePercentField(field string) (int, bool) {
	field = strings.TrimSpace(field)
	end := 0
	for end < len(field) {
		c := field[end]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		end++
	}
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(field[:end], 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// probeIdlePercent measures the idle share of CPU time over interval. The
// delta between two snapshots reflects current activity rather than the
// since-boot average.
func probeIdlePercent(ctx context.Context, interval time.Duration) (float64, error) {
	busy, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(busy) == 0 {
		return 0, errors.New("no cpu usage data")
	}
	return 100 - busy[0], nil
}

// readUserSnapshot runs top in batch mode and returns the raw user-time
// field from its CPU summary line.
func readUserSnapshot(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "top", "-b", "-n", "1").Output()
	if err != nil {
		return "", err
	}
	return userFieldFromTop(string(out))
}

// userFieldFromTop locates the CPU summary line in top output and returns
// its user-time field. Known line formats:
//
//	%Cpu(s):  1.2 us,  0.3 sy, ...
//	Cpu(s): 12.3%us,  0.3%sy, ...
//	CPU:   1% usr   2% sys ...
func userFieldFromTop(out string) (string, error) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(strings.ToLower(line), "cpu") {
			continue
		}
		fields := strings.Fields(line)
		for i, f := range fields {
			if i+1 < len(fields) && strings.HasPrefix(fields[i+1], "us") {
				return f, nil
			}
			if i > 0 && f[0] >= '0' && f[0] <= '9' && strings.Contains(f, "us") {
				return f, nil
			}
		}
	}
	return "", errors.New("no cpu summary line in top output")
}

// readLoadAverage returns the 1-minute load average.
func readLoadAverage(ctx context.Context) (float64, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return avg.Load1, nil
}
