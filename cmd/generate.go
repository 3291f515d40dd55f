package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/statsmc/mcstats/internal/aggregator"
	"github.com/statsmc/mcstats/internal/classifier"
	"github.com/statsmc/mcstats/internal/config"
	"github.com/statsmc/mcstats/internal/extractor"
	"github.com/statsmc/mcstats/internal/identity"
	"github.com/statsmc/mcstats/internal/model"
	"github.com/statsmc/mcstats/internal/remote"
	"github.com/statsmc/mcstats/internal/report"
	"github.com/statsmc/mcstats/internal/storage"
)

// generate command flags.
var (
	// genTemplate is the local HTML template path.
	genTemplate string
	// genOutput is where the rendered page is written.
	genOutput string
	// genPolicy selects a classifier preset by name, or a YAML policy file.
	genPolicy string
	// genTop is the leaderboard size.
	genTop int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fetch stats over SFTP and render the HTML page",
	Long: `Connects to the server configured via MCSTATS_SSH_* environment variables,
reads every player's statistics and advancements from the world directory,
classifies genuine players vs bots, and renders the leaderboard page.

Examples:
  # Default policy, page written to index.html
  mcstats generate

  # Stricter bot filtering and a custom output path
  mcstats generate --policy strict --output public/index.html`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genTemplate, "template", "template.html", "HTML template file")
	generateCmd.Flags().StringVar(&genOutput, "output", "index.html", "output HTML file")
	generateCmd.Flags().StringVar(&genPolicy, "policy", "default", "classifier preset name (strict|default|lenient) or YAML policy file")
	generateCmd.Flags().IntVar(&genTop, "top", aggregator.DefaultTopLimit, "leaderboard size")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	policy, err := resolvePolicy(genPolicy)
	if err != nil {
		return err
	}

	// Read the template before touching the network so a missing file fails
	// without wasting a fetch.
	tmpl, err := os.ReadFile(genTemplate)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	logger.Info("connecting", zap.String("addr", cfg.Addr()), zap.String("user", cfg.User))
	src, err := remote.DialSFTP(cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer src.Close()

	records, botCount, err := collectRecords(src, cfg, policy)
	if err != nil {
		return err
	}

	skins, skinStatus, skinSkipped := identity.LoadSkins(src, cfg.SkinsDir())
	logger.Info("skin textures",
		zap.String("status", skinStatus.String()),
		zap.Int("loaded", len(skins)),
		zap.Int("skipped", skinSkipped))

	board := aggregator.Leaderboard(records, genTop)
	agg := aggregator.Aggregate(board)

	playersJSON, err := report.PlayersJSON(board, skins)
	if err != nil {
		return err
	}

	now := time.Now()
	html, unresolved := report.Render(string(tmpl),
		report.Values(agg, playersJSON, now.Format("02/01/2006 15:04")))
	for _, token := range unresolved {
		logger.Warn("template placeholder not substituted", zap.String("token", token))
	}

	if err := os.WriteFile(genOutput, []byte(html), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	report.PrintAggregate(os.Stdout, agg)
	report.PrintLeaderboard(os.Stdout, board)
	fmt.Fprintf(os.Stdout, "\nWrote %s (%d players, %d bots filtered)\n",
		genOutput, len(board), botCount)

	if dbPath != "" {
		recordRun(cfg, policy.Name, now, agg, botCount, html)
	}
	return nil
}

// collectRecords reads every stats file, extracts records, and returns the
// genuine set plus the number of bots filtered out. Fails only when the
// stats directory itself is missing or empty.
func collectRecords(src remote.Source, cfg *config.Config, policy *classifier.Policy) ([]model.PlayerRecord, int, error) {
	names, nameStatus, nameErr := identity.LoadNames(src, cfg.NameCachePath())
	if nameStatus != identity.Loaded {
		logger.Warn("name cache unavailable, falling back to raw UUIDs",
			zap.String("status", nameStatus.String()), zap.Error(nameErr))
	} else {
		logger.Info("name cache loaded", zap.Int("names", len(names)))
	}

	files, err := src.ListJSON(cfg.StatsDir())
	if err != nil {
		return nil, 0, fmt.Errorf("stats directory: %w", err)
	}
	if len(files) == 0 {
		return nil, 0, fmt.Errorf("no statistics files in %s", cfg.StatsDir())
	}
	logger.Info("statistics files found", zap.Int("count", len(files)))

	// One cheap probe decides whether advancement reads are worth attempting.
	advAvailable := true
	if _, err := src.ListJSON(cfg.AdvancementsDir()); err != nil {
		advAvailable = false
		logger.Warn("advancements directory unavailable", zap.Error(err))
	}

	var records []model.PlayerRecord
	for _, fname := range files {
		rawID := strings.TrimSuffix(fname, ".json")

		data, err := src.ReadFile(path.Join(cfg.StatsDir(), fname))
		if err != nil {
			logger.Warn("skipping player, stats unreadable", zap.String("id", rawID), zap.Error(err))
			continue
		}
		rec, err := extractor.Extract(rawID, data, names)
		if err != nil {
			logger.Warn("skipping player, stats malformed", zap.String("id", rawID), zap.Error(err))
			continue
		}

		if advAvailable {
			advData, err := src.ReadFile(path.Join(cfg.AdvancementsDir(), fname))
			if err == nil {
				adv, err := extractor.Advancements(advData)
				if err != nil {
					logger.Warn("advancements malformed", zap.String("id", rawID), zap.Error(err))
				} else {
					rec.Advancements = adv
				}
			}
		}
		records = append(records, rec)
	}
	logger.Info("players extracted", zap.Int("count", len(records)))

	part := classifier.Partition(records, policy)
	for _, bot := range part.Bots {
		logger.Info("bot detected",
			zap.String("name", bot.Name),
			zap.Int("score", policy.Score(bot)))
	}
	if len(part.Genuine) == 0 {
		logger.Warn("no genuine players after classification; check the policy thresholds")
	}
	return part.Genuine, len(part.Bots), nil
}

// recordRun archives the finished run in the history store. History is a
// convenience; a storage failure downgrades to a warning because the report
// has already been written.
func recordRun(cfg *config.Config, policyName string, now time.Time, agg model.ServerAggregate, botCount int, html string) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Warn("run history unavailable", zap.Error(err))
		return
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		logger.Warn("run history unavailable", zap.Error(err))
		return
	}
	defer db.Close()

	id, err := db.InsertRun(model.RunSummary{
		GeneratedAt: now.UTC().Format("2006-01-02 15:04"),
		Host:        cfg.Host,
		WorldPath:   cfg.WorldPath,
		Policy:      policyName,
		PlayerCount: agg.PlayerCount,
		BotCount:    botCount,
		TotalTicks:  agg.TotalTicks,
		TotalBlocks: agg.TotalBlocks,
		TotalKills:  agg.TotalKills,
		TotalDeaths: agg.TotalDeaths,
		DistanceKM:  agg.DistanceKM,
	}, html)
	if err != nil {
		logger.Warn("failed to record run", zap.Error(err))
		return
	}
	logger.Info("run recorded", zap.Int64("id", id))
}

// resolvePolicy turns the --policy value into a Policy: a preset name first,
// otherwise a YAML policy file path.
func resolvePolicy(nameOrPath string) (*classifier.Policy, error) {
	if p, ok := classifier.PresetByName(nameOrPath); ok {
		return p, nil
	}
	if _, err := os.Stat(nameOrPath); err != nil {
		return nil, fmt.Errorf("unknown policy %q: not a preset and not a readable file", nameOrPath)
	}
	return classifier.LoadPolicy(nameOrPath)
}
