package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/semaforo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of semaforo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "semaforo version %s\n", strings.TrimSpace(semaforo.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
