package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/statsmc/mcstats/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored generation runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	if dbPath == "" {
		return fmt.Errorf("run history disabled (--db is empty)")
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs stored yet. Run 'mcstats generate' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%4s  %-16s  %-20s  %-8s  %7s  %5s  %8s\n",
		"ID", "GENERATED", "HOST", "POLICY", "PLAYERS", "BOTS", "BLOCKS")
	fmt.Fprintf(os.Stdout, "%4s  %-16s  %-20s  %-8s  %7s  %5s  %8s\n",
		"────", "────────────────", "────────────────────", "────────", "───────", "─────", "────────")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%4d  %-16s  %-20s  %-8s  %7d  %5d  %8d\n",
			r.ID, r.GeneratedAt, r.Host, r.Policy, r.PlayerCount, r.BotCount, r.TotalBlocks)
	}
	return nil
}
