package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	threshold int
	output    string
	debug     bool
	noColor   bool
)

// rootCmd represents the base command; invoking it runs the health check
var rootCmd = &cobra.Command{
	Use:   "vitals [explain]",
	Short: "Check host CPU, memory, and disk health",
	Long: `Check whether CPU, memory, and disk utilization on the local host stay
below a single health threshold (default 60%).

Each resource is sampled from the best available source, falling back to
coarser ones when a probe fails. A resource that cannot be measured at all
is assumed healthy. Pass the literal argument "explain" to get a
plain-language rationale for every verdict.

The exit code is 0 when all resources are healthy and 1 otherwise.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runCheck,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// NewRootCommand creates and returns the root command
// This function is used for testing and allows dependency injection
func NewRootCommand() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vitals/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&threshold, "threshold", 0, "health threshold percentage, 1-100 (overrides config)")
	rootCmd.PersistentFlags().StringVar(&output, "output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Bind flags to viper for config file support
	viper.BindPFlag("threshold", rootCmd.PersistentFlags().Lookup("threshold"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory with name ".vitals" (without extension)
		viper.AddConfigPath(home + "/.vitals")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("VITALS")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if debug {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
