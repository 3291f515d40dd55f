package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/statsmc/mcstats/internal/classifier"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Print the built-in classifier policy presets",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func runPresets(cmd *cobra.Command, args []string) error {
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("PRESET", "THRESHOLD", "LOW_TIME", "LOW_MOVE", "ZERO_ACT", "NO_JUMPS", "NAME", "IDLE", "MIN_TICKS")
	for _, p := range classifier.Presets() {
		table.Append(
			p.Name,
			fmt.Sprintf("%d", p.Threshold),
			fmt.Sprintf("%d", p.Weights.LowPlaytime),
			fmt.Sprintf("%d", p.Weights.LowMovement),
			fmt.Sprintf("%d", p.Weights.ZeroActivity),
			fmt.Sprintf("%d", p.Weights.NoJumps),
			fmt.Sprintf("%d", p.Weights.SuspiciousName),
			fmt.Sprintf("%d", p.Weights.IdleSignature),
			fmt.Sprintf("%d", p.MinTicks),
		)
	}
	table.Render()

	fmt.Fprintln(os.Stdout, "\nA record is classified as a bot when its score reaches the threshold.")
	fmt.Fprintln(os.Stdout, "Write a YAML file with the same field names to define a custom policy.")
	return nil
}
