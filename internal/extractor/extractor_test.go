package extractor

import (
	"testing"

	"github.com/statsmc/mcstats/internal/identity"
)

const statsJSON = `{
	"stats": {
		"minecraft:mined": {
			"minecraft:stone": 120,
			"minecraft:dirt": 30
		},
		"minecraft:killed": {
			"minecraft:zombie": 7,
			"minecraft:skeleton": 3
		},
		"minecraft:custom": {
			"minecraft:mob_kills": 12,
			"minecraft:deaths": 4,
			"minecraft:jump": 250,
			"minecraft:play_time": 90000,
			"minecraft:walk_one_cm": 123456,
			"minecraft:sprint_one_cm": 7890
		}
	},
	"DataVersion": 3700
}`

func TestExtract(t *testing.T) {
	names := identity.NameTable{"0123456789abcdef0123456789abcdef": "Steve"}
	rec, err := Extract("01234567-89ab-cdef-0123-456789abcdef", []byte(statsJSON), names)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if rec.ID != "0123456789abcdef0123456789abcdef" {
		t.Errorf("ID not normalized: %q", rec.ID)
	}
	if rec.Name != "Steve" {
		t.Errorf("Name = %q, want Steve", rec.Name)
	}
	if rec.BlocksMined != 150 {
		t.Errorf("BlocksMined = %d, want 150", rec.BlocksMined)
	}
	// killed sum (10) plus the explicit mob_kills counter (12).
	if rec.MobsKilled != 22 {
		t.Errorf("MobsKilled = %d, want 22", rec.MobsKilled)
	}
	if rec.Deaths != 4 || rec.Jumps != 250 || rec.PlayTicks != 90000 {
		t.Errorf("counters wrong: deaths=%d jumps=%d ticks=%d", rec.Deaths, rec.Jumps, rec.PlayTicks)
	}

	// Promoted counters stay out of Extra; movement counters stay in.
	if _, ok := rec.Extra["minecraft:deaths"]; ok {
		t.Error("promoted counter leaked into Extra")
	}
	if rec.Extra["minecraft:walk_one_cm"] != 123456 {
		t.Errorf("walk_one_cm = %d, want 123456", rec.Extra["minecraft:walk_one_cm"])
	}
	// mob_kills is promoted into MobsKilled but is still a custom counter.
	if rec.Extra["minecraft:mob_kills"] != 12 {
		t.Errorf("mob_kills missing from Extra: %d", rec.Extra["minecraft:mob_kills"])
	}
}

func TestExtractNameFallback(t *testing.T) {
	rec, err := Extract("deadbeefdeadbeefdeadbeefdeadbeef", []byte(`{"stats":{}}`), identity.NameTable{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rec.Name != "deadbeefdeadbeefdeadbeefdeadbeef" {
		t.Errorf("Name = %q, want the raw id", rec.Name)
	}
}

func TestExtractMissingCategories(t *testing.T) {
	rec, err := Extract("abc", []byte(`{"stats":{"minecraft:custom":{"minecraft:play_time":1200}}}`), identity.NameTable{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rec.BlocksMined != 0 || rec.MobsKilled != 0 {
		t.Errorf("missing categories should sum to zero: blocks=%d kills=%d", rec.BlocksMined, rec.MobsKilled)
	}
	if rec.PlayTicks != 1200 {
		t.Errorf("PlayTicks = %d, want 1200", rec.PlayTicks)
	}
}

func TestExtractMalformedDocument(t *testing.T) {
	if _, err := Extract("abc", []byte(`{not json`), identity.NameTable{}); err == nil {
		t.Error("expected error for malformed stats document")
	}
}

func TestExtractCoercion(t *testing.T) {
	doc := `{
		"stats": {
			"minecraft:mined": {
				"minecraft:stone": 10,
				"minecraft:dirt": 2.9,
				"minecraft:sand": "junk"
			},
			"minecraft:custom": {
				"minecraft:deaths": "many",
				"minecraft:play_time": 6000.7
			}
		}
	}`
	rec, err := Extract("abc", []byte(doc), identity.NameTable{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	// 10 + trunc(2.9) + 0 for the junk value.
	if rec.BlocksMined != 12 {
		t.Errorf("BlocksMined = %d, want 12", rec.BlocksMined)
	}
	if rec.Deaths != 0 {
		t.Errorf("Deaths = %d, want 0 for non-numeric counter", rec.Deaths)
	}
	if rec.PlayTicks != 6000 {
		t.Errorf("PlayTicks = %d, want 6000", rec.PlayTicks)
	}
}

func TestAdvancements(t *testing.T) {
	doc := `{
		"minecraft:story/mine_stone": {"done": true, "criteria": {"get_stone": "2025-03-01 10:00:00 +0000"}},
		"minecraft:story/root": {"done": false, "criteria": {}},
		"DataVersion": 3700
	}`
	adv, err := Advancements([]byte(doc))
	if err != nil {
		t.Fatalf("Advancements: %v", err)
	}
	if len(adv) != 1 {
		t.Fatalf("kept %d advancements, want 1 (done only)", len(adv))
	}
	entry, ok := adv["minecraft:story/mine_stone"]
	if !ok || !entry.Done {
		t.Errorf("completed advancement missing: %+v", adv)
	}
	if entry.Criteria["get_stone"] == "" {
		t.Error("criteria timestamps dropped")
	}
}

func TestAdvancementsMalformed(t *testing.T) {
	if _, err := Advancements([]byte(`[1,2,3]`)); err == nil {
		t.Error("expected error for non-object advancements document")
	}
}
