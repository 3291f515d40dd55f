// Package extractor turns one raw per-player statistics document (plus an
// optional advancements document) into a normalized PlayerRecord.
package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/statsmc/mcstats/internal/identity"
	"github.com/statsmc/mcstats/internal/model"
)

// Stat categories and counters consumed from the vanilla stats format.
const (
	categoryMined  = "minecraft:mined"
	categoryKilled = "minecraft:killed"
	categoryCustom = "minecraft:custom"

	counterMobKills = "minecraft:mob_kills"
	counterDeaths   = "minecraft:deaths"
	counterJump     = "minecraft:jump"
	counterPlayTime = "minecraft:play_time"
)

// statsDoc is the top-level shape of a stats/<uuid>.json file: categories
// keyed by name, each a map of counter name to value. Counter values are kept
// raw because servers have been seen emitting floats and the odd junk value;
// anything that is not a number degrades to zero rather than failing the
// record.
type statsDoc struct {
	Stats map[string]map[string]json.RawMessage `json:"stats"`
}

// Extract parses statsData into a PlayerRecord for the player with the given
// raw id. Only a top-level parse failure returns an error (the caller skips
// that player); missing categories and malformed counter values contribute
// zero instead.
func Extract(rawID string, statsData []byte, names identity.NameTable) (model.PlayerRecord, error) {
	var doc statsDoc
	if err := json.Unmarshal(statsData, &doc); err != nil {
		return model.PlayerRecord{}, fmt.Errorf("decode stats for %s: %w", rawID, err)
	}

	mined := doc.Stats[categoryMined]
	killed := doc.Stats[categoryKilled]
	custom := doc.Stats[categoryCustom]

	rec := model.PlayerRecord{
		ID:           model.NormalizeID(rawID),
		Name:         names.Resolve(rawID),
		BlocksMined:  sumValues(mined),
		MobsKilled:   sumValues(killed) + counterValue(custom, counterMobKills),
		Deaths:       counterValue(custom, counterDeaths),
		Jumps:        counterValue(custom, counterJump),
		PlayTicks:    counterValue(custom, counterPlayTime),
		Extra:        make(map[string]int64),
		Advancements: map[string]model.Advancement{},
	}

	for name, v := range custom {
		switch name {
		case counterDeaths, counterJump, counterPlayTime:
			continue
		}
		rec.Extra[name] = toInt(v)
	}
	return rec, nil
}

// Advancements parses an advancements document and keeps only completed
// entries. The document's DataVersion key and any non-object entries are
// ignored. Callers treat a parse failure as "no advancements" for that
// player, not as a skipped record.
func Advancements(data []byte) (map[string]model.Advancement, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode advancements: %w", err)
	}
	done := make(map[string]model.Advancement)
	for key, msg := range raw {
		if strings.EqualFold(key, "DataVersion") {
			continue
		}
		var adv advEntry
		if err := json.Unmarshal(msg, &adv); err != nil {
			continue
		}
		if adv.Done {
			done[key] = model.Advancement{Done: true, Criteria: adv.Criteria}
		}
	}
	return done, nil
}

// advEntry mirrors one advancement object: completion flag plus criteria
// timestamps keyed by criterion name.
type advEntry struct {
	Done     bool              `json:"done"`
	Criteria map[string]string `json:"criteria"`
}

// sumValues totals a category's counters, skipping values that do not parse
// as numbers. A missing category (nil map) sums to zero.
func sumValues(m map[string]json.RawMessage) int64 {
	var total int64
	for _, v := range m {
		total += toInt(v)
	}
	return total
}

// counterValue reads one named counter, zero when missing or malformed.
func counterValue(m map[string]json.RawMessage, name string) int64 {
	return toInt(m[name])
}

// toInt coerces a raw JSON value to int64: integers pass through, floats
// truncate, everything else (strings, objects, null) maps to zero.
func toInt(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return int64(f)
	}
	return 0
}
