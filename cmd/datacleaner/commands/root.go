// Package commands implements the CLI commands for datacleaner.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/datacleaner/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "datacleaner",
	Short: "Clean missing values and duplicates out of CSV files",
	Long: `Datacleaner loads a CSV file, drops rows and columns with too many
missing values, fills the remaining gaps, removes duplicate rows and
writes the result back to CSV.

Examples:
  # Clean with the defaults, writing data_cleaned.csv
  datacleaner clean data.csv

  # Stricter thresholds and a custom fill order
  datacleaner clean data.csv --drop-thresh 2 --nan-col-thresh 0.6 \
      --fill mean --fill ffill

  # Encode categories and scale numbers, summary as JSON
  datacleaner clean data.csv --encode --scale --summary-format json

  # Inspect files without cleaning them
  datacleaner summarize a.csv b.csv --format yaml`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug:  viper.GetBool("debug"),
			Quiet:  viper.GetBool("quiet"),
			Level:  viper.GetString("log_level"),
			JSON:   viper.GetBool("log_json"),
			Output: cmd.ErrOrStderr(),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.datacleaner.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".datacleaner")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("DATACLEANER")
	viper.AutomaticEnv()

	// A missing default config file is fine; an explicit one must load.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && viper.GetString("config") != "" {
			logError("failed to read config file: %v", err)
		}
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
