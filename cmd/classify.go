package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/statsmc/mcstats/internal/classifier"
	"github.com/statsmc/mcstats/internal/extractor"
	"github.com/statsmc/mcstats/internal/identity"
	"github.com/statsmc/mcstats/internal/model"
	"github.com/statsmc/mcstats/internal/remote"
)

var (
	classifyWorldPath string
	classifyPolicy    string
)

var classifyCmd = &cobra.Command{
	Use:   "classify <server-root-dir>",
	Short: "Dry-run the bot classifier over a local copy of the server files",
	Long: `Reads a local directory laid out like the server root (usercache.json at the
top, stats under the world directory) and prints every player with their
suspicion score and verdict. No network, no page render, no history write.

Useful for tuning a policy before pointing generate at the live server.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyWorldPath, "world-path", "world", "world directory relative to the server root")
	classifyCmd.Flags().StringVar(&classifyPolicy, "policy", "default", "classifier preset name or YAML policy file")
}

func runClassify(cmd *cobra.Command, args []string) error {
	policy, err := resolvePolicy(classifyPolicy)
	if err != nil {
		return err
	}

	src := remote.DirSource(args[0])
	defer src.Close()

	names, nameStatus, _ := identity.LoadNames(src, "/usercache.json")
	if nameStatus != identity.Loaded {
		logger.Warn("name cache unavailable, showing raw UUIDs",
			zap.String("status", nameStatus.String()))
	}

	statsDir := path.Join("/", classifyWorldPath, "stats")
	files, err := src.ListJSON(statsDir)
	if err != nil {
		return fmt.Errorf("stats directory: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no statistics files in %s", statsDir)
	}

	var records []model.PlayerRecord
	for _, fname := range files {
		rawID := strings.TrimSuffix(fname, ".json")
		data, err := src.ReadFile(path.Join(statsDir, fname))
		if err != nil {
			logger.Warn("skipping player, stats unreadable", zap.String("id", rawID), zap.Error(err))
			continue
		}
		rec, err := extractor.Extract(rawID, data, names)
		if err != nil {
			logger.Warn("skipping player, stats malformed", zap.String("id", rawID), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	part := classifier.Partition(records, policy)
	printScores(part, policy)
	fmt.Fprintf(os.Stdout, "\n%d genuine, %d bots (policy %q, threshold %d)\n",
		len(part.Genuine), len(part.Bots), policy.Name, policy.Threshold)
	return nil
}

func printScores(part model.Partition, policy *classifier.Policy) {
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("VERDICT", "NAME", "SCORE", "TICKS", "BLOCKS", "KILLS", "JUMPS")
	appendRows := func(records []model.PlayerRecord, verdict string) {
		for _, rec := range records {
			table.Append(
				verdict,
				rec.Name,
				fmt.Sprintf("%d", policy.Score(rec)),
				fmt.Sprintf("%d", rec.PlayTicks),
				fmt.Sprintf("%d", rec.BlocksMined),
				fmt.Sprintf("%d", rec.MobsKilled),
				fmt.Sprintf("%d", rec.Jumps),
			)
		}
	}
	appendRows(part.Bots, "bot")
	appendRows(part.Genuine, "player")
	table.Render()
}
