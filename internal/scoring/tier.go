package scoring

// Tier is a discrete maturity label derived from a numeric score.
type Tier string

const (
	TierWIP     Tier = "WIP"
	TierPassing Tier = "PASSING"
	TierBronze  Tier = "BRONZE"
	TierSilver  Tier = "SILVER"
	TierGold    Tier = "GOLD"
)

// Level is one rung of a tier ladder: the tier awarded at and above Min.
type Level struct {
	Tier Tier
	Min  float64
}

// Policy is a named tier ladder. Levels are ordered by ascending Min and the
// first level is the floor: any score below the second level's Min, however
// negative, classifies as the floor tier. Classification is total; scores
// above 100 simply land on the top tier.
type Policy struct {
	Name   string
	Levels []Level
}

// StandardPolicy is the authoritative five-tier ladder.
var StandardPolicy = Policy{
	Name: "standard",
	Levels: []Level{
		{TierWIP, 0},
		{TierPassing, 30},
		{TierBronze, 50},
		{TierSilver, 70},
		{TierGold, 90},
	},
}

// LegacyPolicy is the historical four-tier ladder kept selectable so older
// deployments can reproduce their published levels.
var LegacyPolicy = Policy{
	Name: "legacy",
	Levels: []Level{
		{Tier("Beginner"), 0},
		{Tier("Bronze"), 50},
		{Tier("Silver"), 70},
		{Tier("Gold"), 90},
	},
}

// PolicyByName resolves a configured policy name.
func PolicyByName(name string) (Policy, bool) {
	switch name {
	case "", StandardPolicy.Name:
		return StandardPolicy, true
	case LegacyPolicy.Name:
		return LegacyPolicy, true
	default:
		return Policy{}, false
	}
}

// Classify maps a score to a tier. Boundaries are half-open and
// lower-inclusive: a score equal to a level's Min earns that level.
func (p Policy) Classify(score float64) Tier {
	tier := p.Levels[0].Tier
	for _, lvl := range p.Levels {
		if score >= lvl.Min {
			tier = lvl.Tier
		}
	}
	return tier
}

// ScoreToLevel classifies a score under the standard policy.
func ScoreToLevel(score float64) Tier {
	return StandardPolicy.Classify(score)
}
