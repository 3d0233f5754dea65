package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/semaforo/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "semaforo",
	Short: "Semaforo simulates a four-way traffic signal",
	Long: `Semaforo runs the signals of a four-way intersection (North South East West)
through their red, green and yellow cycle over a time window and prints every
state change with the time it happens.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file (default \"semaforo.yaml\")")
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to stderr")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level of the servers (debug, info, warn, error)")
}

// logLevel resolves --log-level. --debug wins over it.
func logLevel(cmd *cobra.Command) (slog.Level, error) {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		return slog.LevelDebug, nil
	}
	raw, _ := cmd.Flags().GetString("log-level")
	return logging.ParseLevel(raw)
}
