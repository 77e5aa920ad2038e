// Package health classifies resource readings against a single global
// threshold and composes them into an overall verdict.
package health

import (
	"time"

	"github.com/vitals-cli/vitals/pkg/sysprobe"
)

// DefaultThreshold is the utilization percentage below which a resource is
// healthy. One value applies identically to every resource.
const DefaultThreshold = 60

// Verdict is the health classification of one resource.
type Verdict struct {
	// Resource is the classified resource.
	Resource sysprobe.Resource `json:"resource" yaml:"resource"`
	// Healthy is true when the reading is strictly below the threshold.
	Healthy bool `json:"healthy" yaml:"healthy"`
	// Reading is the sample the verdict was derived from.
	Reading sysprobe.Reading `json:"reading" yaml:"reading"`
}

// Report is the outcome of one health check run.
type Report struct {
	// Verdicts holds one verdict per resource in CPU, memory, disk order.
	Verdicts []Verdict `json:"resources" yaml:"resources"`
	// Healthy is the conjunction of all verdicts.
	Healthy bool `json:"healthy" yaml:"healthy"`
	// Threshold is the percentage the run classified against.
	Threshold int `json:"threshold" yaml:"threshold"`
	// CheckedAt is when the run completed.
	CheckedAt time.Time `json:"checked_at" yaml:"checked_at"`
}

// Classify derives a verdict from a reading. Healthy means strictly below
// the threshold; a reading exactly at the threshold is unhealthy.
func Classify(r sysprobe.Reading, threshold int) Verdict {
	return Verdict{
		Resource: r.Resource,
		Healthy:  r.UsagePercent < threshold,
		Reading:  r,
	}
}

// Unhealthy returns the verdicts that failed classification, in report order.
func (r Report) Unhealthy() []Verdict {
	var out []Verdict
	for _, v := range r.Verdicts {
		if !v.Healthy {
			out = append(out, v)
		}
	}
	return out
}
