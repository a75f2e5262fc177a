package scoring

import "testing"

func TestScoreToLevelBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Tier
	}{
		{-50, TierWIP},
		{0, TierWIP},
		{29.999, TierWIP},
		{30.0, TierPassing},
		{49.999, TierPassing},
		{50.0, TierBronze},
		{69.999, TierBronze},
		{70.0, TierSilver},
		{89.999, TierSilver},
		{90.0, TierGold},
		{100.0, TierGold},
		{150.0, TierGold},
	}
	for _, c := range cases {
		if got := ScoreToLevel(c.score); got != c.want {
			t.Fatalf("ScoreToLevel(%v)=%s, want %s", c.score, got, c.want)
		}
	}
}

func TestLegacyPolicy(t *testing.T) {
	cases := []struct {
		score float64
		want  Tier
	}{
		{-1, "Beginner"},
		{49.999, "Beginner"},
		{50, "Bronze"},
		{70, "Silver"},
		{89.999, "Silver"},
		{90, "Gold"},
		{120, "Gold"},
	}
	for _, c := range cases {
		if got := LegacyPolicy.Classify(c.score); got != c.want {
			t.Fatalf("LegacyPolicy.Classify(%v)=%s, want %s", c.score, got, c.want)
		}
	}
}

func TestPolicyByName(t *testing.T) {
	if p, ok := PolicyByName(""); !ok || p.Name != "standard" {
		t.Fatalf("empty name should resolve to standard, got %v %v", p.Name, ok)
	}
	if p, ok := PolicyByName("legacy"); !ok || p.Name != "legacy" {
		t.Fatalf("legacy lookup failed: %v %v", p.Name, ok)
	}
	if _, ok := PolicyByName("platinum"); ok {
		t.Fatalf("unknown policy should not resolve")
	}
}
