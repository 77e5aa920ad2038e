package sysprobe

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
)

// HostInfo holds display-only host facts shown alongside a health report.
type HostInfo struct {
	// Hostname is the host's reported name.
	Hostname string `json:"hostname" yaml:"hostname"`
	// Platform is the OS distribution and version, e.g. "ubuntu 22.04".
	Platform string `json:"platform" yaml:"platform"`
	// CPUCores is the logical core count. Zero when unknown; useful for
	// judging load-average readings, which are not normalized by cores.
	CPUCores int `json:"cpu_cores" yaml:"cpu_cores"`
	// UptimeSeconds is time since boot.
	UptimeSeconds uint64 `json:"uptime_seconds" yaml:"uptime_seconds"`
}

// DescribeHost collects host facts on a best-effort basis. Returns nil when
// the platform reports none; callers must treat the result as optional.
func DescribeHost(ctx context.Context) *HostInfo {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil
	}

	hi := &HostInfo{
		Hostname:      info.Hostname,
		Platform:      strings.TrimSpace(info.Platform + " " + info.PlatformVersion),
		UptimeSeconds: info.Uptime,
	}
	if hi.Platform == "" {
		hi.Platform = info.OS
	}
	if cores, err := cpu.CountsWithContext(ctx, true); err == nil {
		hi.CPUCores = cores
	}
	return hi
}
