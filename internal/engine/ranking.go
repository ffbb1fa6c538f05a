package engine

import (
	"math"
	"sort"
)

// PriorityRanking is one row of the priority ranking. PriorityScore is
// a percentage rounded to one decimal; RiskImpact echoes the action's
// declared priority for display.
type PriorityRanking struct {
	ActionID          string  `json:"actionId"`
	Title             string  `json:"title"`
	PriorityScore     float64 `json:"priorityScore"`
	SuggestedPriority string  `json:"suggestedPriority"`
	RiskImpact        string  `json:"riskImpact"`
	OverdueDays       int     `json:"overdueDays"`
}

// RankPriorities orders actions by composite urgency-to-act. Rows are
// sorted by descending score; rows with equal scores keep their input
// order.
func (e *Engine) RankPriorities(actions []ActionSnapshot) []PriorityRanking {
	ranked := make([]PriorityRanking, 0, len(actions))
	for _, action := range actions {
		progress := e.normalizeProgress(action.Progress, action.Status)
		overdueDays := e.overdueDays(action)

		priorityComponent := weightOr(e.weights.Priority, action.Priority, e.weights.PriorityFallback)
		impactComponent := weightOr(e.weights.Priority, action.Impact, e.weights.PriorityFallback)
		urgencyComponent := weightOr(e.weights.Urgency, action.Urgency, e.weights.UrgencyFallback)
		progressGap := 1 - progress
		overduePenalty := math.Min(float64(overdueDays)/60, 0.35)

		// Component mix is tunable, source of truth unknown.
		score := 0.32*priorityComponent +
			0.28*impactComponent +
			0.2*urgencyComponent +
			0.15*progressGap +
			0.05*overduePenalty

		riskBoost := 0.0
		if action.RiskScore != nil {
			riskBoost = *action.RiskScore
		}
		score = clamp(score+riskBoost*0.15, 0.2, 1.0)

		ranked = append(ranked, PriorityRanking{
			ActionID:          action.ID,
			Title:             action.Title,
			PriorityScore:     round1(score * 100),
			SuggestedPriority: e.priorityLevelForScore(score),
			RiskImpact:        action.Priority,
			OverdueDays:       overdueDays,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})
	return ranked
}

// priorityLevelForScore bands the unrounded composite score into a
// suggested priority level.
func (e *Engine) priorityLevelForScore(score float64) string {
	switch {
	case score >= 0.82:
		return "Critical"
	case score >= 0.68:
		return "High"
	case score >= 0.48:
		return "Medium"
	default:
		return "Low"
	}
}
