package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/semaforo/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a signal simulation",
	Long: `Runs one simulation. On a terminal the parameters are asked for interactively
unless --no-prompt or any of --state, --red-green, --yellow, --window is given.
Values are taken from defaults, then the config file, then flags.`,
	Example: `  semaforo run --state RRGG --red-green 270 --yellow 30 --window "09:00 09:30"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.State, _ = cmd.Flags().GetString("state")
		opts.RedGreen, _ = cmd.Flags().GetInt("red-green")
		opts.Yellow, _ = cmd.Flags().GetInt("yellow")
		opts.Window, _ = cmd.Flags().GetString("window")
		opts.TimeLayout, _ = cmd.Flags().GetString("time-layout")
		opts.NoPrompt, _ = cmd.Flags().GetBool("no-prompt")
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		opts.Metrics, _ = cmd.Flags().GetBool("metrics")
		opts.JSON, _ = cmd.Flags().GetBool("json")

		return cli.Execute(opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("state", "", "Initial state, North South East West (e.g. RGRG)")
	runCmd.Flags().Int("red-green", 0, "Seconds a red or green phase lasts (default 300)")
	runCmd.Flags().Int("yellow", 0, "Seconds a yellow phase lasts (default 30)")
	runCmd.Flags().String("window", "", "Start and end time as \"HH:MM HH:MM\" (default \"09:00 09:30\")")
	runCmd.Flags().String("time-layout", "", "Go time layout for output lines (default \"3:04:05 PM\")")
	runCmd.Flags().Bool("no-prompt", false, "Never ask for parameters interactively")
	runCmd.Flags().Bool("plain", false, "Disable banner, colours and markdown rendering")
	runCmd.Flags().Bool("metrics", false, "Print simulation metrics when done")
	runCmd.Flags().Bool("json", false, "Write steps as NDJSON (implies --no-prompt)")

	// 'run' is the default when no command is provided.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
