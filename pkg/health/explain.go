package health

import (
	"fmt"
	"strings"

	"github.com/vitals-cli/vitals/pkg/sysprobe"
)

// Explain states a verdict's outcome and the numeric comparison behind it.
// Pure: identical inputs produce identical text.
func Explain(v Verdict, threshold int) string {
	pct := v.Reading.UsagePercent
	if !v.Healthy {
		return fmt.Sprintf("%s is unhealthy: usage %d%% is at or above the %d%% threshold",
			v.Resource, pct, threshold)
	}

	text := fmt.Sprintf("%s is healthy: usage %d%% is below the %d%% threshold",
		v.Resource, pct, threshold)
	if v.Reading.Source == sysprobe.SourceUnavailable {
		text += " (no reading available, assumed healthy)"
	}
	return text
}

// Hint returns the remediation advice for an unhealthy resource.
func Hint(r sysprobe.Resource) string {
	switch r {
	case sysprobe.ResourceCPU:
		return "reduce load or upgrade CPU capacity"
	case sysprobe.ResourceMemory:
		return "free up memory or add RAM"
	case sysprobe.ResourceDisk:
		return "free up disk space or expand storage"
	}
	return ""
}

// ExplainReport summarizes the overall outcome. An unhealthy report lists
// each failing resource with its usage and remediation hint, one per line.
func ExplainReport(rep Report) string {
	if rep.Healthy {
		return fmt.Sprintf("all resources are below the %d%% threshold", rep.Threshold)
	}

	bad := rep.Unhealthy()
	lines := make([]string, 0, len(bad)+1)
	lines = append(lines, fmt.Sprintf("%d of %d resources at or above the %d%% threshold:",
		len(bad), len(rep.Verdicts), rep.Threshold))
	for _, v := range bad {
		lines = append(lines, fmt.Sprintf("- %s at %d%%: %s",
			v.Resource, v.Reading.UsagePercent, Hint(v.Resource)))
	}
	return strings.Join(lines, "\n")
}
