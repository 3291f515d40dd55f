package classifier

// The historical generator scripts drifted into three inconsistent copies of
// the same heuristic, each with its own weights and threshold. Those variants
// survive here as named presets of one algorithm.

// defaultNamePatterns flag names that obviously belong to automation:
// bot/npc/test/dummy/fake/afk prefixes and suffixes, digits-only names,
// raw undashed UUIDs used as names, and the player_<n> pattern some plugins
// assign to synthetic accounts. Patterns are matched against the lowercased
// display name.
var defaultNamePatterns = []string{
	`^bot[_-]?`,
	`[_-]bot$`,
	`^npc[_-]?`,
	`^test[_-]`,
	`^dummy`,
	`^fake`,
	`^afk[_-]?`,
	`[_-]afk$`,
	`^[0-9]+$`,
	`^[0-9a-f]{32}$`,
	`^player[_-][0-9]+$`,
}

// Default is the balanced preset: a suspicious name together with any single
// behavioral signal crosses the threshold, but behavioral signals alone need
// at least three to stack up.
func Default() *Policy {
	p := &Policy{
		Name: "default",
		Weights: Weights{
			LowPlaytime:    5,
			LowMovement:    2,
			ZeroActivity:   4,
			NoJumps:        4,
			SuspiciousName: 10,
			IdleSignature:  3,
		},
		Threshold:           12,
		MinTicks:            1200, // one minute of play
		MinWalkCM:           1600, // one block walked per minute floor
		MinSprintCM:         100,
		JumplessTicksFloor:  1200,
		IdleTicks:           72000, // one hour
		IdleActivityCeiling: 10,
		NamePatterns:        defaultNamePatterns,
	}
	mustCompile(p)
	return p
}

// Strict flags aggressively: useful on servers overrun by farm accounts,
// at the cost of misclassifying very passive genuine players.
func Strict() *Policy {
	p := &Policy{
		Name: "strict",
		Weights: Weights{
			LowPlaytime:    6,
			LowMovement:    3,
			ZeroActivity:   5,
			NoJumps:        5,
			SuspiciousName: 10,
			IdleSignature:  5,
		},
		Threshold:           8,
		MinTicks:            6000, // five minutes
		MinWalkCM:           5000,
		MinSprintCM:         500,
		JumplessTicksFloor:  1200,
		IdleTicks:           36000, // thirty minutes
		IdleActivityCeiling: 25,
		NamePatterns:        defaultNamePatterns,
	}
	mustCompile(p)
	return p
}

// Lenient only removes the unmistakable: a suspicious name plus total
// inactivity. Nearly every record stays on the leaderboard.
func Lenient() *Policy {
	p := &Policy{
		Name: "lenient",
		Weights: Weights{
			LowPlaytime:    4,
			LowMovement:    1,
			ZeroActivity:   3,
			NoJumps:        3,
			SuspiciousName: 10,
			IdleSignature:  2,
		},
		Threshold:           16,
		MinTicks:            1200,
		MinWalkCM:           100,
		MinSprintCM:         0,
		JumplessTicksFloor:  2400,
		IdleTicks:           144000, // two hours
		IdleActivityCeiling: 5,
		NamePatterns:        defaultNamePatterns,
	}
	mustCompile(p)
	return p
}

// Presets returns the built-in policies in display order.
func Presets() []*Policy {
	return []*Policy{Strict(), Default(), Lenient()}
}

// PresetByName resolves a preset by its name.
func PresetByName(name string) (*Policy, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func mustCompile(p *Policy) {
	if err := p.compile(); err != nil {
		panic(err)
	}
}
