package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"symptom-sim/internal/severity"
)

var severitiesCmd = &cobra.Command{
	Use:   "severities",
	Short: "List severity tiers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIER\tEVENTS/DAY\tCLUSTER PROBABILITY")
		for _, l := range severity.Levels() {
			p := l.Profile()
			fmt.Fprintf(tw, "%s\t%d-%d\t%.2f\n", l.Title(), p.MinDailyRate, p.MaxDailyRate, p.ClusterProbability)
		}
		return tw.Flush()
	},
}
