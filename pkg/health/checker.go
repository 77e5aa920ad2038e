package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/vitals-cli/vitals/pkg/logger"
	"github.com/vitals-cli/vitals/pkg/sysprobe"
)

// Sampler yields a utilization reading for one resource. Implementations
// never fail; an unmeasurable resource yields a fallback reading instead.
type Sampler interface {
	// Resource identifies what the sampler measures.
	Resource() sysprobe.Resource
	// Sample obtains the current reading.
	Sample(ctx context.Context) sysprobe.Reading
}

// Checker runs the samplers in a fixed order and combines their verdicts.
type Checker struct {
	samplers  []Sampler
	threshold int
	log       *slog.Logger

	// OnSampleStart, when set, is invoked before each resource is sampled.
	OnSampleStart func(sysprobe.Resource)
	// OnVerdict, when set, is invoked with each verdict as it is produced.
	OnVerdict func(Verdict)
}

// NewChecker wires a checker with the real CPU, memory and disk samplers.
func NewChecker(threshold int, log *slog.Logger) *Checker {
	return &Checker{
		samplers: []Sampler{
			sysprobe.NewCPUSampler(log),
			sysprobe.NewMemorySampler(log),
			sysprobe.NewDiskSampler(log),
		},
		threshold: threshold,
		log:       log.With(logger.Scope("health.checker")),
	}
}

// Run samples every resource sequentially, classifies each reading and
// returns the combined report. Sampling cannot fail, so a run has no error
// path; the overall verdict is its only failure signal.
func (c *Checker) Run(ctx context.Context) Report {
	verdicts := make([]Verdict, 0, len(c.samplers))
	healthy := true

	for _, s := range c.samplers {
		if c.OnSampleStart != nil {
			c.OnSampleStart(s.Resource())
		}

		reading := s.Sample(ctx)
		v := Classify(reading, c.threshold)
		if !v.Healthy {
			healthy = false
		}

		c.log.Debug("resource classified",
			slog.String("resource", string(v.Resource)),
			slog.Int("usage", reading.UsagePercent),
			slog.String("source", string(reading.Source)),
			slog.Bool("healthy", v.Healthy))

		if c.OnVerdict != nil {
			c.OnVerdict(v)
		}
		verdicts = append(verdicts, v)
	}

	rep := Report{
		Verdicts:  verdicts,
		Healthy:   healthy,
		Threshold: c.threshold,
		CheckedAt: time.Now(),
	}

	c.log.Info("health check complete",
		slog.Bool("healthy", rep.Healthy),
		slog.Int("threshold", rep.Threshold),
		slog.Int("unhealthy_resources", len(rep.Unhealthy())))

	return rep
}
