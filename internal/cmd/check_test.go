package cmd

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitals-cli/vitals/internal/testutil"
	"github.com/vitals-cli/vitals/pkg/health"
	"github.com/vitals-cli/vitals/pkg/sysprobe"
)

func TestExplainRequested(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no args", []string{}, false},
		{"explain token", []string{"explain"}, true},
		{"other token", []string{"verbose"}, false},
		{"wrong case", []string{"Explain"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, explainRequested(tt.args))
		})
	}
}

func testReport() health.Report {
	gib := uint64(1024 * 1024 * 1024)

	return health.Report{
		Verdicts: []health.Verdict{
			{
				Resource: sysprobe.ResourceCPU,
				Healthy:  true,
				Reading:  sysprobe.Reading{Resource: sysprobe.ResourceCPU, UsagePercent: 12, Source: sysprobe.SourceIdleProbe},
			},
			{
				Resource: sysprobe.ResourceMemory,
				Healthy:  false,
				Reading: sysprobe.Reading{
					Resource:       sysprobe.ResourceMemory,
					UsagePercent:   75,
					Source:         sysprobe.SourceMemInfo,
					TotalBytes:     8 * gib,
					UsedBytes:      6 * gib,
					AvailableBytes: 2 * gib,
				},
			},
			{
				Resource: sysprobe.ResourceDisk,
				Healthy:  true,
				Reading:  sysprobe.Reading{Resource: sysprobe.ResourceDisk, UsagePercent: 45, Source: sysprobe.SourceDiskUsage},
			},
		},
		Healthy:   false,
		Threshold: 60,
		CheckedAt: time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC),
	}
}

func TestRenderSummary(t *testing.T) {
	capture := testutil.CaptureOutput()
	renderSummary(testReport(), false, true)
	stdout, _, readErr := capture.Read()
	require.NoError(t, readErr)
	capture.Restore()

	assert.Contains(t, stdout, "Summary")
	assert.Contains(t, stdout, "cpu")
	assert.Contains(t, stdout, "12%")
	assert.Contains(t, stdout, "idle-probe")
	assert.Contains(t, stdout, "memory")
	assert.Contains(t, stdout, "75%")
	assert.Contains(t, stdout, "unhealthy")
	assert.Contains(t, stdout, "6.0 GiB of 8.0 GiB used")
	assert.Contains(t, stdout, "Resources: 2 healthy, 1 unhealthy (threshold 60%)")
	assert.Contains(t, stdout, "[ERR] Overall: UNHEALTHY")
}

func TestRenderSummary_Healthy(t *testing.T) {
	report := testReport()
	report.Verdicts[1].Healthy = true
	report.Verdicts[1].Reading.UsagePercent = 50
	report.Healthy = true

	capture := testutil.CaptureOutput()
	renderSummary(report, false, true)
	stdout, _, readErr := capture.Read()
	require.NoError(t, readErr)
	capture.Restore()

	assert.Contains(t, stdout, "Resources: 3 healthy, 0 unhealthy (threshold 60%)")
	assert.Contains(t, stdout, "[OK] Overall: HEALTHY")
}

func TestReadingDetails(t *testing.T) {
	gib := uint64(1024 * 1024 * 1024)

	unmeasured := sysprobe.Reading{Resource: sysprobe.ResourceCPU, Source: sysprobe.SourceUnavailable}
	assert.Equal(t, "no reading available", readingDetails(unmeasured))

	noSizes := sysprobe.Reading{Resource: sysprobe.ResourceCPU, UsagePercent: 12, Source: sysprobe.SourceIdleProbe}
	assert.Equal(t, "", readingDetails(noSizes))

	withSizes := sysprobe.Reading{
		Resource:     sysprobe.ResourceMemory,
		UsagePercent: 75,
		Source:       sysprobe.SourceMemInfo,
		TotalBytes:   8 * gib,
		UsedBytes:    6 * gib,
	}
	assert.Equal(t, "6.0 GiB of 8.0 GiB used", readingDetails(withSizes))
}

func TestRenderDocument_JSON(t *testing.T) {
	doc := checkOutput{
		Report:       testReport(),
		Explanations: []string{"memory is unhealthy: usage 75% is at or above the 60% threshold"},
	}

	capture := testutil.CaptureOutput()
	err := renderDocument(doc, "json")
	stdout, _, readErr := capture.Read()
	require.NoError(t, readErr)
	capture.Restore()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))

	assert.Equal(t, false, decoded["healthy"])
	assert.Equal(t, float64(60), decoded["threshold"])
	assert.Len(t, decoded["resources"], 3)
	assert.Len(t, decoded["explanations"], 1)

	_, hasHost := decoded["host"]
	assert.False(t, hasHost, "nil host facts should be omitted")
}

func TestRenderDocument_YAML(t *testing.T) {
	doc := checkOutput{Report: testReport()}

	capture := testutil.CaptureOutput()
	err := renderDocument(doc, "yaml")
	stdout, _, readErr := capture.Read()
	require.NoError(t, readErr)
	capture.Restore()
	require.NoError(t, err)

	assert.Contains(t, stdout, "resources:")
	assert.Contains(t, stdout, "healthy: false")
	assert.Contains(t, stdout, "threshold: 60")
	assert.Contains(t, stdout, "source: idle-probe")
	assert.NotContains(t, stdout, "unavailable-assumed-healthy", "measured readings should keep their real source")
}
