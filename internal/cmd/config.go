package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/vitals-cli/vitals/internal/config"
	"github.com/vitals-cli/vitals/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vitals configuration",
	Long:  "Inspect and update the health threshold, output format, and UI settings",
}

func newConfigShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.DiscoverPath("")
			}

			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				warn := ui.RenderStatus(ui.StatusWarning, !ui.Colors(noColor), cfg.UI.Unicode)
				fmt.Printf("%s no config file found, showing defaults (run 'vitals config init' to create one)\n", warn)
			}

			fmt.Println("Current Configuration:")
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Setting", "Value")

			table.Append("Threshold", fmt.Sprintf("%d%%", cfg.Threshold))
			table.Append("Output", cfg.Output)
			table.Append("Color", cfg.UI.Color)
			table.Append("Unicode", fmt.Sprintf("%v", cfg.UI.Unicode))
			table.Append("Config File", configPath)

			return table.Render()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.DiscoverPath("")
			}

			if _, err := os.Stat(configPath); err == nil {
				fmt.Printf("Config file already exists: %s\n", configPath)
				return nil
			}

			if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			if err := config.Save(config.Defaults(), configPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Printf("Default configuration written to: %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	return cmd
}

func newConfigSetThresholdCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "set-threshold [percent]",
		Short: "Set the health threshold percentage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid threshold %q: %w", args[0], err)
			}
			if value < 1 || value > 100 {
				return fmt.Errorf("invalid threshold %d: must be between 1 and 100", value)
			}

			if configPath == "" {
				configPath = config.DiscoverPath("")
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			cfg.Threshold = value

			if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			if err := config.Save(cfg, configPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Printf("Threshold updated to: %d%%\n", value)
			fmt.Printf("Configuration saved to: %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	return cmd
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigSetThresholdCmd())
}
