package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/statsmc/mcstats/internal/model"
	"github.com/statsmc/mcstats/internal/report"
	"github.com/statsmc/mcstats/internal/storage"
)

var showHTMLPath string

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showHTMLPath, "html", "", "also write the archived report snapshot to this path")
}

func runShow(cmd *cobra.Command, args []string) error {
	if dbPath == "" {
		return fmt.Errorf("run history disabled (--db is empty)")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	run, err := db.GetRun(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %d not found", id)
	}

	fmt.Fprintf(os.Stdout, "\nRun %d  |  %s UTC  |  %s%s  |  policy: %s  |  bots filtered: %d\n\n",
		run.ID, run.GeneratedAt, run.Host, run.WorldPath, run.Policy, run.BotCount)
	report.PrintAggregate(os.Stdout, model.ServerAggregate{
		TotalTicks:  run.TotalTicks,
		TotalBlocks: run.TotalBlocks,
		TotalKills:  run.TotalKills,
		TotalDeaths: run.TotalDeaths,
		DistanceKM:  run.DistanceKM,
		PlayerCount: run.PlayerCount,
		AvgTicks:    avgTicks(run),
	})

	if showHTMLPath != "" {
		html, err := db.RunSnapshot(id)
		if err != nil {
			return err
		}
		if err := os.WriteFile(showHTMLPath, []byte(html), 0644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		fmt.Fprintf(os.Stdout, "\nSnapshot written to %s\n", showHTMLPath)
	}
	return nil
}

func avgTicks(run *model.RunSummary) int64 {
	if run.PlayerCount == 0 {
		return 0
	}
	return run.TotalTicks / int64(run.PlayerCount)
}
