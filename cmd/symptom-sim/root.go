package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "symptom-sim",
	Short: "Crohn's symptom event simulator",
	Long: "symptom-sim generates a day of bathroom events shaped by a severity profile, " +
		"either as synthetic data in fast time or as a live rehearsal in real time.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(severitiesCmd)
	rootCmd.AddCommand(presetsCmd)
}
