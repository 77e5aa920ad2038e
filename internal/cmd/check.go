package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/vitals-cli/vitals/internal/config"
	"github.com/vitals-cli/vitals/internal/ui"
	"github.com/vitals-cli/vitals/pkg/health"
	"github.com/vitals-cli/vitals/pkg/logger"
	"github.com/vitals-cli/vitals/pkg/sysprobe"
	"gopkg.in/yaml.v3"
)

// checkOutput is the document emitted for --output json|yaml.
type checkOutput struct {
	Host          *sysprobe.HostInfo `json:"host,omitempty" yaml:"host,omitempty"`
	health.Report `yaml:",inline"`
	Explanations  []string `json:"explanations,omitempty" yaml:"explanations,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	explain := explainRequested(args)

	configPath := config.DiscoverPath(cfgFile)
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags win over config file and environment
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = threshold
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = output
	}

	if cfg.Threshold < 1 || cfg.Threshold > 100 {
		return fmt.Errorf("invalid threshold %d: must be between 1 and 100", cfg.Threshold)
	}
	switch cfg.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (expected table, json, or yaml)", cfg.Output)
	}

	log := logger.NewLogger()
	if debug {
		log = logger.NewDebugLogger()
	}

	useColor := cfg.ShouldUseColor(noColor)
	if useColor && cfg.UI.Color != "always" && !ui.IsTerminal() {
		useColor = false
	}

	ctx := cmd.Context()
	host := sysprobe.DescribeHost(ctx)

	checker := health.NewChecker(cfg.Threshold, log)
	tableMode := cfg.Output == "table"

	if tableMode {
		fmt.Println("Host Health Check")
		fmt.Println("=================")
		fmt.Println()

		if host != nil {
			fmt.Printf("%s (%s, %d cores, up %s)\n", host.Hostname, host.Platform, host.CPUCores, ui.FormatUptime(host.UptimeSeconds))
			fmt.Println()
		}

		checker.OnSampleStart = func(r sysprobe.Resource) {
			fmt.Printf("Sampling %s... ", r)
		}
		checker.OnVerdict = func(v health.Verdict) {
			fmt.Printf("%d%% (%s)\n", v.Reading.UsagePercent, v.Reading.Source)
			if explain {
				fmt.Printf("  %s\n", health.Explain(v, cfg.Threshold))
			}
		}
	}

	log.Debug("starting health check",
		slog.Int("threshold", cfg.Threshold),
		slog.String("output", cfg.Output))

	report := checker.Run(ctx)

	if tableMode {
		fmt.Println()
		renderSummary(report, useColor, cfg.UI.Unicode)

		if explain && !report.Healthy {
			fmt.Println()
			fmt.Println("Explanation")
			fmt.Println("-----------")
			fmt.Println(health.ExplainReport(report))
		}
	} else {
		doc := checkOutput{Host: host, Report: report}
		if explain {
			for _, v := range report.Verdicts {
				doc.Explanations = append(doc.Explanations, health.Explain(v, report.Threshold))
			}
		}

		if err := renderDocument(doc, cfg.Output); err != nil {
			return err
		}
	}

	if !report.Healthy {
		return fmt.Errorf("%d of %d resources unhealthy", len(report.Unhealthy()), len(report.Verdicts))
	}

	return nil
}

// explainRequested reports whether the single optional positional argument is
// the literal token "explain". Any other value disables explanations.
func explainRequested(args []string) bool {
	return len(args) == 1 && args[0] == "explain"
}

func renderSummary(report health.Report, useColor bool, useUnicode bool) {
	fmt.Println("Summary")
	fmt.Println("-------")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Resource", "Usage", "Status", "Source", "Details")

	for _, v := range report.Verdicts {
		status := "healthy"
		if !v.Healthy {
			status = "unhealthy"
		}
		table.Append(string(v.Resource), fmt.Sprintf("%d%%", v.Reading.UsagePercent), status, string(v.Reading.Source), readingDetails(v.Reading))
	}

	if err := table.Render(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to render summary table: %v\n", err)
	}

	unhealthyCount := len(report.Unhealthy())
	healthyCount := len(report.Verdicts) - unhealthyCount

	fmt.Println()
	fmt.Printf("Resources: %d healthy, %d unhealthy (threshold %d%%)\n", healthyCount, unhealthyCount, report.Threshold)

	indicator := ui.StatusSuccess
	if !report.Healthy {
		indicator = ui.StatusError
	}
	fmt.Printf("%s Overall: %s\n", ui.RenderStatus(indicator, !useColor, useUnicode), ui.RenderVerdict(report.Healthy, !useColor))
}

// readingDetails renders the auxiliary sizes carried by a reading. They are
// display-only and never affect classification.
func readingDetails(r sysprobe.Reading) string {
	if r.Source == sysprobe.SourceUnavailable {
		return "no reading available"
	}
	if r.TotalBytes == 0 {
		return ""
	}
	return fmt.Sprintf("%s of %s used", humanize.IBytes(r.UsedBytes), humanize.IBytes(r.TotalBytes))
}

func renderDocument(doc checkOutput, format string) error {
	if format == "json" {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
