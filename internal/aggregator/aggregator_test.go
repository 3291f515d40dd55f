package aggregator

import (
	"fmt"
	"testing"

	"github.com/statsmc/mcstats/internal/model"
)

func TestFormatTicks(t *testing.T) {
	cases := []struct {
		ticks int64
		want  string
	}{
		{0, "0h 0m"},
		{1200, "0h 1m"},
		{72000, "1h 0m"},
		{90000, "1h 15m"},
		{1199, "0h 0m"}, // integer division throughout
	}
	for _, tc := range cases {
		if got := FormatTicks(tc.ticks); got != tc.want {
			t.Errorf("FormatTicks(%d) = %q, want %q", tc.ticks, got, tc.want)
		}
	}
}

func TestFormatInt(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{1234567, "1.234.567"},
		{-4500, "-4.500"},
	}
	for _, tc := range cases {
		if got := FormatInt(tc.n); got != tc.want {
			t.Errorf("FormatInt(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil)
	if agg.PlayerCount != 0 || agg.TotalTicks != 0 || agg.TotalBlocks != 0 ||
		agg.TotalKills != 0 || agg.TotalDeaths != 0 || agg.DistanceKM != 0 || agg.AvgTicks != 0 {
		t.Errorf("Aggregate(nil) not all-zero: %+v", agg)
	}
}

func TestAggregateSums(t *testing.T) {
	records := []model.PlayerRecord{
		{ID: "a", PlayTicks: 72000, BlocksMined: 100, MobsKilled: 10, Deaths: 3,
			Extra: map[string]int64{"minecraft:walk_one_cm": 100000}},
		{ID: "b", PlayTicks: 36000, BlocksMined: 50, MobsKilled: 5, Deaths: 1,
			Extra: map[string]int64{"minecraft:boat_one_cm": 300000}},
	}
	agg := Aggregate(records)

	if agg.TotalTicks != 108000 {
		t.Errorf("TotalTicks = %d, want 108000", agg.TotalTicks)
	}
	if agg.TotalBlocks != 150 || agg.TotalKills != 15 || agg.TotalDeaths != 4 {
		t.Errorf("sums wrong: %+v", agg)
	}
	if agg.DistanceKM != 4 {
		t.Errorf("DistanceKM = %d, want 4", agg.DistanceKM)
	}
	if agg.AvgTicks != 54000 {
		t.Errorf("AvgTicks = %d, want 54000", agg.AvgTicks)
	}
}

func TestDistanceSingleWalker(t *testing.T) {
	records := []model.PlayerRecord{
		{ID: "a", Extra: map[string]int64{"minecraft:walk_one_cm": 100000}},
	}
	if got := Aggregate(records).DistanceKM; got != 1 {
		t.Errorf("DistanceKM = %d, want 1", got)
	}
}

func TestDistanceRounding(t *testing.T) {
	cases := []struct {
		cm   int64
		want int64
	}{
		{49999, 0},
		{50000, 1}, // rounds to nearest km
		{149999, 1},
		{150000, 2},
	}
	for _, tc := range cases {
		records := []model.PlayerRecord{
			{ID: "a", Extra: map[string]int64{"minecraft:fly_one_cm": tc.cm}},
		}
		if got := Aggregate(records).DistanceKM; got != tc.want {
			t.Errorf("distance %d cm = %d km, want %d", tc.cm, got, tc.want)
		}
	}
}

func TestLeaderboardTruncation(t *testing.T) {
	records := make([]model.PlayerRecord, 150)
	for i := range records {
		records[i] = model.PlayerRecord{
			ID:        fmt.Sprintf("id%03d", i),
			PlayTicks: int64(i + 1), // distinct, ascending
		}
	}
	board := Leaderboard(records, 100)

	if len(board) != 100 {
		t.Fatalf("leaderboard size = %d, want 100", len(board))
	}
	// The 100 highest tick counts are 51..150, descending.
	if board[0].PlayTicks != 150 || board[99].PlayTicks != 51 {
		t.Errorf("boundaries wrong: top=%d bottom=%d", board[0].PlayTicks, board[99].PlayTicks)
	}
	for i := 1; i < len(board); i++ {
		if board[i].PlayTicks > board[i-1].PlayTicks {
			t.Fatalf("board not descending at %d", i)
		}
	}
}

func TestLeaderboardTieBreak(t *testing.T) {
	records := []model.PlayerRecord{
		{ID: "ccc", PlayTicks: 100},
		{ID: "aaa", PlayTicks: 100},
		{ID: "bbb", PlayTicks: 100},
	}
	board := Leaderboard(records, 10)
	if board[0].ID != "aaa" || board[1].ID != "bbb" || board[2].ID != "ccc" {
		t.Errorf("ties not broken by ID ascending: %v %v %v", board[0].ID, board[1].ID, board[2].ID)
	}
}

func TestLeaderboardDoesNotMutateInput(t *testing.T) {
	records := []model.PlayerRecord{
		{ID: "a", PlayTicks: 1},
		{ID: "b", PlayTicks: 2},
	}
	_ = Leaderboard(records, 1)
	if records[0].ID != "a" || records[1].ID != "b" {
		t.Error("input slice reordered")
	}
}
