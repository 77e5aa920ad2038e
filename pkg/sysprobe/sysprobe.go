// Package sysprobe samples host resource utilization from best-effort
// system sources. Every sampler resolves to a reading; when no source is
// usable it reports zero usage with an explicit provenance marker instead
// of an error, so an unmeasurable resource never fails a health check.
package sysprobe

// Resource identifies a sampled host resource.
type Resource string

const (
	// ResourceCPU is processor utilization.
	ResourceCPU Resource = "cpu"
	// ResourceMemory is physical memory utilization.
	ResourceMemory Resource = "memory"
	// ResourceDisk is root filesystem utilization.
	ResourceDisk Resource = "disk"
)

// Source records which sampling strategy produced a reading.
type Source string

const (
	// SourceIdleProbe is the interval-based CPU idle measurement.
	SourceIdleProbe Source = "idle-probe"
	// SourceSnapshot is the point-in-time CPU snapshot from top.
	SourceSnapshot Source = "snapshot"
	// SourceLoadAverage is the 1-minute load average approximation.
	SourceLoadAverage Source = "load-average"
	// SourceMemInfo is the kernel memory-info source.
	SourceMemInfo Source = "meminfo"
	// SourceDiskUsage is the filesystem usage report for the root mount.
	SourceDiskUsage Source = "disk-usage"
	// SourceUnavailable marks a resource no source could measure. Such
	// readings carry zero usage and are treated as healthy.
	SourceUnavailable Source = "unavailable-assumed-healthy"
)

// Reading is one sampled utilization value with its provenance.
type Reading struct {
	// Resource is the sampled resource.
	Resource Resource `json:"resource" yaml:"resource"`

	// UsagePercent is the sampled utilization. Usually within 0-100; the
	// load-average approximation can exceed 100 and is not clamped.
	UsagePercent int `json:"usage_percent" yaml:"usage_percent"`

	// Source is the strategy that produced the value.
	Source Source `json:"source" yaml:"source"`

	// TotalBytes, UsedBytes and AvailableBytes are display-only size
	// details. Zero when the source reports none; never used for
	// classification.
	TotalBytes     uint64 `json:"total_bytes,omitempty" yaml:"total_bytes,omitempty"`
	UsedBytes      uint64 `json:"used_bytes,omitempty" yaml:"used_bytes,omitempty"`
	AvailableBytes uint64 `json:"available_bytes,omitempty" yaml:"available_bytes,omitempty"`
}

// unavailable is the fallback reading for a resource no source could measure.
func unavailable(r Resource) Reading {
	return Reading{Resource: r, Source: SourceUnavailable}
}
