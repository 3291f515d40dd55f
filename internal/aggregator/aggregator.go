// Package aggregator reduces the genuine-player leaderboard to server-wide
// totals and formats them for display.
package aggregator

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/statsmc/mcstats/internal/model"
)

// DefaultTopLimit is the leaderboard size when no override is given.
const DefaultTopLimit = 100

// movementCounters are the eight distance stats summed into total distance.
// All are recorded in centimeters.
var movementCounters = []string{
	"minecraft:walk_one_cm",
	"minecraft:sprint_one_cm",
	"minecraft:fly_one_cm",
	"minecraft:swim_one_cm",
	"minecraft:aviate_one_cm",
	"minecraft:boat_one_cm",
	"minecraft:minecart_one_cm",
	"minecraft:horse_one_cm",
}

// Leaderboard sorts records by play time descending and truncates to the top
// n. Ties break on ID ascending so equal play times still order
// deterministically regardless of input order. n <= 0 means DefaultTopLimit.
func Leaderboard(records []model.PlayerRecord, n int) []model.PlayerRecord {
	if n <= 0 {
		n = DefaultTopLimit
	}
	board := make([]model.PlayerRecord, len(records))
	copy(board, records)
	sort.Slice(board, func(i, j int) bool {
		if board[i].PlayTicks != board[j].PlayTicks {
			return board[i].PlayTicks > board[j].PlayTicks
		}
		return board[i].ID < board[j].ID
	})
	if len(board) > n {
		board = board[:n]
	}
	return board
}

// Aggregate sums the leaderboard into a ServerAggregate. An empty input
// yields the zero aggregate; no field ever divides by zero.
func Aggregate(records []model.PlayerRecord) model.ServerAggregate {
	var agg model.ServerAggregate
	agg.PlayerCount = len(records)

	var distanceCM int64
	for _, rec := range records {
		agg.TotalTicks += rec.PlayTicks
		agg.TotalBlocks += rec.BlocksMined
		agg.TotalKills += rec.MobsKilled
		agg.TotalDeaths += rec.Deaths
		for _, counter := range movementCounters {
			distanceCM += rec.Extra[counter]
		}
	}
	// Round to the nearest whole kilometer (100,000 cm per km).
	agg.DistanceKM = (distanceCM + 50000) / 100000

	if agg.PlayerCount > 0 {
		agg.AvgTicks = agg.TotalTicks / int64(agg.PlayerCount)
	}
	return agg
}

// FormatTicks renders a tick count as "<hours>h <minutes>m" using integer
// arithmetic throughout (20 ticks per second).
func FormatTicks(ticks int64) string {
	seconds := ticks / 20
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatInt groups digits with "." as the thousands separator, the locale
// convention of the server's community pages.
func FormatInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
