package model

import "strings"

// NormalizeID strips separator dashes from a player UUID so that the dashed
// and undashed forms of the same 32-hex identifier compare equal.
func NormalizeID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

// Advancement is one completed advancement from a player's advancement file.
// Only entries whose "done" flag is true are kept on a record.
type Advancement struct {
	Done     bool              `json:"done"`
	Criteria map[string]string `json:"criteria,omitempty"`
}

// PlayerRecord holds the normalized statistics for one player, extracted from
// that player's stats file (plus an optional advancements file). Records are
// immutable after extraction; there is exactly one per distinct player ID.
type PlayerRecord struct {
	ID   string // normalized UUID (dashes stripped)
	Name string // display name from the name cache, or ID if unknown

	BlocksMined int64
	MobsKilled  int64
	Deaths      int64
	Jumps       int64
	PlayTicks   int64

	// Extra holds every custom counter not promoted to a named field,
	// keyed by its raw counter name (e.g. "minecraft:walk_one_cm").
	Extra map[string]int64

	Advancements map[string]Advancement
}

// Partition splits a record set into genuine players and bots. Every input
// record lands in exactly one of the two slices.
type Partition struct {
	Genuine []PlayerRecord
	Bots    []PlayerRecord
}

// ServerAggregate is the server-wide summary computed over the genuine-player
// leaderboard.
type ServerAggregate struct {
	TotalTicks  int64
	TotalBlocks int64
	TotalKills  int64
	TotalDeaths int64
	DistanceKM  int64 // total distance traveled, centimeters summed then rounded to km
	PlayerCount int
	AvgTicks    int64 // TotalTicks / PlayerCount, 0 when empty
}

// RunSummary is a lightweight record of one completed generation run, used by
// the history store and the history/show commands.
type RunSummary struct {
	ID          int64
	GeneratedAt string // "2006-01-02 15:04" UTC
	Host        string
	WorldPath   string
	Policy      string
	PlayerCount int
	BotCount    int
	TotalTicks  int64
	TotalBlocks int64
	TotalKills  int64
	TotalDeaths int64
	DistanceKM  int64
}
