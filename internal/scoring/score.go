// Package scoring computes weighted percentage scores over a criteria
// catalog and classifies them into maturity tiers. Everything here is a pure
// function: no clock, no storage, safe under concurrent use.
package scoring

import "github.com/openmaturity/maturity/internal/catalog"

// Response is one yes/no answer keyed by criterion id.
type Response struct {
	CriterionID string `json:"criterion_id"`
	Answer      bool   `json:"answer"`
}

// AnswerMap collapses responses into a criterion-id lookup. When the same
// criterion id appears more than once the last entry wins; this is the
// documented collision policy, not an accident of map behavior.
func AnswerMap(responses []Response) map[string]bool {
	m := make(map[string]bool, len(responses))
	for _, r := range responses {
		m[r.CriterionID] = r.Answer
	}
	return m
}

// Score returns the weighted percentage of achieved criteria in [0, 100].
// Responses that reference no catalog criterion are ignored; they affect
// neither numerator nor denominator. An empty catalog scores exactly 0.0.
func Score(criteria []catalog.Criterion, responses []Response) float64 {
	answers := AnswerMap(responses)
	var achieved, maxScore float64
	for _, c := range criteria {
		maxScore += c.Weight
		if answers[c.ID] {
			achieved += c.Weight
		}
	}
	if maxScore == 0 {
		return 0.0
	}
	return achieved / maxScore * 100
}

// CategoryScore is the per-category slice of an assessment result.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Achieved float64 `json:"achieved"`
	Max      float64 `json:"max"`
}

// CategoryScores applies the scoring rule per category, in catalog order.
// Categories with no criteria score 0.0 by the same empty-denominator rule.
func CategoryScores(cat *catalog.Catalog, responses []Response) []CategoryScore {
	answers := AnswerMap(responses)
	out := make([]CategoryScore, 0, len(cat.Categories))
	for _, category := range cat.Categories {
		cs := CategoryScore{Category: category}
		for _, c := range cat.Criteria {
			if c.Category != category {
				continue
			}
			cs.Max += c.Weight
			if answers[c.ID] {
				cs.Achieved += c.Weight
			}
		}
		if cs.Max > 0 {
			cs.Score = cs.Achieved / cs.Max * 100
		}
		out = append(out, cs)
	}
	return out
}
