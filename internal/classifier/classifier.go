// Package classifier scores player records for automation signals and splits
// a record set into genuine players and bots. Scoring is a pure function of
// one record and one policy; tuning lives entirely in the Policy values.
package classifier

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/statsmc/mcstats/internal/model"
)

// Movement counters consulted by the low-movement signal.
const (
	counterWalkCM        = "minecraft:walk_one_cm"
	counterSprintCM      = "minecraft:sprint_one_cm"
	counterCraftingTable = "minecraft:interact_with_crafting_table"
)

// Weights holds the score contribution of each independent signal.
type Weights struct {
	LowPlaytime    int `yaml:"low_playtime"`
	LowMovement    int `yaml:"low_movement"`
	ZeroActivity   int `yaml:"zero_activity"`
	NoJumps        int `yaml:"no_jumps"`
	SuspiciousName int `yaml:"suspicious_name"`
	IdleSignature  int `yaml:"idle_signature"`
}

// Policy is one complete classifier configuration: signal weights, the
// per-signal trigger thresholds, the name patterns, and the decision
// threshold. A record is a bot iff its score reaches Threshold (inclusive).
type Policy struct {
	Name      string  `yaml:"name"`
	Weights   Weights `yaml:"weights"`
	Threshold int     `yaml:"threshold"`

	// Signal triggers.
	MinTicks            int64 `yaml:"min_ticks"`             // play time below this is suspicious
	MinWalkCM           int64 `yaml:"min_walk_cm"`           // walked distance floor, centimeters
	MinSprintCM         int64 `yaml:"min_sprint_cm"`         // sprinted distance floor, centimeters
	JumplessTicksFloor  int64 `yaml:"jumpless_ticks_floor"`  // zero jumps only counts past this play time
	IdleTicks           int64 `yaml:"idle_ticks"`            // play time above this with no activity = AFK signature
	IdleActivityCeiling int64 `yaml:"idle_activity_ceiling"` // blocks+kills+jumps below this counts as idle

	// NamePatterns are matched against the lowercased display name. A match
	// adds SuspiciousName once, no matter how many patterns hit.
	NamePatterns []string `yaml:"name_patterns"`

	compiled []*regexp.Regexp
}

// compile builds the regexp set from NamePatterns. Called once per policy;
// Score assumes it has run.
func (p *Policy) compile() error {
	p.compiled = p.compiled[:0]
	for _, pat := range p.NamePatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return fmt.Errorf("name pattern %q: %w", pat, err)
		}
		p.compiled = append(p.compiled, re)
	}
	return nil
}

// Score accumulates the suspicion score for one record. Pure: the result
// depends only on the record's fields and the policy values.
func (p *Policy) Score(rec model.PlayerRecord) int {
	score := 0

	if rec.PlayTicks < p.MinTicks {
		score += p.Weights.LowPlaytime
	}

	if rec.Extra[counterWalkCM] < p.MinWalkCM && rec.Extra[counterSprintCM] < p.MinSprintCM {
		score += p.Weights.LowMovement
	}

	if rec.BlocksMined == 0 && rec.MobsKilled == 0 && rec.Extra[counterCraftingTable] == 0 {
		score += p.Weights.ZeroActivity
	}

	if rec.Jumps == 0 && rec.PlayTicks > p.JumplessTicksFloor {
		score += p.Weights.NoJumps
	}

	if p.nameSuspicious(rec.Name) {
		score += p.Weights.SuspiciousName
	}

	if rec.PlayTicks > p.IdleTicks && rec.BlocksMined+rec.MobsKilled+rec.Jumps < p.IdleActivityCeiling {
		score += p.Weights.IdleSignature
	}

	return score
}

// IsBot reports whether the record's score reaches the policy threshold.
// The comparison is inclusive: exactly Threshold classifies as bot.
func (p *Policy) IsBot(rec model.PlayerRecord) bool {
	return p.Score(rec) >= p.Threshold
}

func (p *Policy) nameSuspicious(name string) bool {
	lower := strings.ToLower(name)
	for _, re := range p.compiled {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// Partition classifies every record under the policy. Each input record
// lands in exactly one of the two output sets; input order is preserved.
func Partition(records []model.PlayerRecord, p *Policy) model.Partition {
	var part model.Partition
	for _, rec := range records {
		if p.IsBot(rec) {
			part.Bots = append(part.Bots, rec)
		} else {
			part.Genuine = append(part.Genuine, rec)
		}
	}
	return part
}

// LoadPolicy reads a YAML policy file. Fields left out of the file keep the
// Default preset's values, so a file only needs to state what it overrides.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode policy %s: %w", path, err)
	}
	if err := p.compile(); err != nil {
		return nil, err
	}
	return p, nil
}
