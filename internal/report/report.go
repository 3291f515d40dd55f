// Package report renders the final HTML document from the template and
// prints the console summary tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/statsmc/mcstats/internal/aggregator"
	"github.com/statsmc/mcstats/internal/identity"
	"github.com/statsmc/mcstats/internal/model"
)

// Placeholder tokens recognized in the template. Tokens are literal strings;
// none contains another's name, so substitution order does not matter.
const (
	TokenPlayersData   = "{PLAYERS_DATA}"
	TokenUpdateTime    = "{UPDATE_TIME}"
	TokenPlayerCount   = "{PLAYER_COUNT}"
	TokenTotalTime     = "{TOTAL_TIME}"
	TokenTotalBlocks   = "{TOTAL_BLOCKS}"
	TokenTotalDistance = "{TOTAL_DISTANCE}"
	TokenTotalKills    = "{TOTAL_KILLS}"
	TokenTotalDeaths   = "{TOTAL_DEATHS}"
	TokenAvgTime       = "{AVG_TIME}"
)

// expectedTokens is the full token set checked for leftovers after a render.
var expectedTokens = []string{
	TokenPlayersData, TokenUpdateTime, TokenPlayerCount, TokenTotalTime,
	TokenTotalBlocks, TokenTotalDistance, TokenTotalKills, TokenTotalDeaths,
	TokenAvgTime,
}

// Render substitutes every occurrence of each value's token in the template.
// Tokens with no entry in values are left untouched. The returned slice
// lists expected tokens still present afterwards — a diagnostic for the
// caller to warn about, never a failure.
func Render(template string, values map[string]string) (string, []string) {
	// Older templates carried the token double-braced; normalize first.
	out := strings.ReplaceAll(template, "{{PLAYERS_DATA}}", TokenPlayersData)

	for token, value := range values {
		out = strings.ReplaceAll(out, token, value)
	}

	var unresolved []string
	for _, token := range expectedTokens {
		if strings.Contains(out, token) {
			unresolved = append(unresolved, token)
		}
	}
	return out, unresolved
}

// Values builds the substitution map for an aggregate plus the serialized
// player payload and timestamp.
func Values(agg model.ServerAggregate, playersJSON, updateTime string) map[string]string {
	return map[string]string{
		TokenPlayersData:   playersJSON,
		TokenUpdateTime:    updateTime,
		TokenPlayerCount:   fmt.Sprintf("%d", agg.PlayerCount),
		TokenTotalTime:     aggregator.FormatTicks(agg.TotalTicks),
		TokenTotalBlocks:   aggregator.FormatInt(agg.TotalBlocks),
		TokenTotalDistance: aggregator.FormatInt(agg.DistanceKM),
		TokenTotalKills:    aggregator.FormatInt(agg.TotalKills),
		TokenTotalDeaths:   aggregator.FormatInt(agg.TotalDeaths),
		TokenAvgTime:       aggregator.FormatTicks(agg.AvgTicks),
	}
}

// playerPayload is one leaderboard entry embedded in the page for
// client-side rendering.
type playerPayload struct {
	UUID         string                       `json:"uuid"`
	Name         string                       `json:"name"`
	Skin         string                       `json:"skin"`
	TimeText     string                       `json:"time_txt"`
	Ticks        int64                        `json:"ticks"`
	Blocks       int64                        `json:"blocks"`
	Kills        int64                        `json:"kills"`
	Deaths       int64                        `json:"deaths"`
	Jumps        int64                        `json:"jumps"`
	Extras       map[string]int64             `json:"extras"`
	Advancements map[string]model.Advancement `json:"advancements"`
}

// PlayersJSON serializes the leaderboard for the embedded payload.
func PlayersJSON(records []model.PlayerRecord, skins identity.SkinTable) (string, error) {
	payload := make([]playerPayload, 0, len(records))
	for _, rec := range records {
		payload = append(payload, playerPayload{
			UUID:         rec.ID,
			Name:         rec.Name,
			Skin:         skins.AvatarURL(rec.ID, rec.Name, 80),
			TimeText:     aggregator.FormatTicks(rec.PlayTicks),
			Ticks:        rec.PlayTicks,
			Blocks:       rec.BlocksMined,
			Kills:        rec.MobsKilled,
			Deaths:       rec.Deaths,
			Jumps:        rec.Jumps,
			Extras:       rec.Extra,
			Advancements: rec.Advancements,
		})
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal players payload: %w", err)
	}
	return string(data), nil
}

// PrintLeaderboard writes the genuine-player leaderboard table.
func PrintLeaderboard(w io.Writer, records []model.PlayerRecord) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("#", "NAME", "TIME", "BLOCKS", "KILLS", "DEATHS", "JUMPS")
	for i, rec := range records {
		table.Append(
			fmt.Sprintf("%d", i+1),
			rec.Name,
			aggregator.FormatTicks(rec.PlayTicks),
			aggregator.FormatInt(rec.BlocksMined),
			aggregator.FormatInt(rec.MobsKilled),
			aggregator.FormatInt(rec.Deaths),
			aggregator.FormatInt(rec.Jumps),
		)
	}
	table.Render()
}

// PrintAggregate writes the server-wide totals table.
func PrintAggregate(w io.Writer, agg model.ServerAggregate) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("PLAYERS", "TOTAL TIME", "AVG TIME", "BLOCKS", "KILLS", "DEATHS", "DISTANCE")
	table.Append(
		fmt.Sprintf("%d", agg.PlayerCount),
		aggregator.FormatTicks(agg.TotalTicks),
		aggregator.FormatTicks(agg.AvgTicks),
		aggregator.FormatInt(agg.TotalBlocks),
		aggregator.FormatInt(agg.TotalKills),
		aggregator.FormatInt(agg.TotalDeaths),
		aggregator.FormatInt(agg.DistanceKM)+" km",
	)
	table.Render()
}
