package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"symptom-sim/internal/preset"
)

var presetsFile string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List named presets",
	Long:  "presets lists the built-in presets and those of an optional presets file.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		all, err := loadPresets(presetsFile)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSEVERITY\tHOURS\tSTART\tMODE\tDESCRIPTION")
		for _, name := range preset.Names(all) {
			p := all[name]
			start := "-"
			if p.StartHour != nil {
				start = fmt.Sprintf("%02d:00", *p.StartHour)
			}
			mode := "fast"
			if p.Realtime {
				mode = "real"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.Name, p.Severity, strconv.Itoa(p.DurationHours), start, mode, p.Description)
		}
		return tw.Flush()
	},
}

func init() {
	presetsCmd.Flags().StringVar(&presetsFile, "presets-file", "", "YAML file with additional presets")
}
