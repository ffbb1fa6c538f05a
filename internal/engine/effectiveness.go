package engine

import (
	"fmt"
	"math"
)

// EffectivenessInsight is the scored effectiveness view of one action.
// Score is a percentage rounded to one decimal; Confidence is banded
// from the unscaled score.
type EffectivenessInsight struct {
	ActionID   string   `json:"actionId"`
	Title      string   `json:"title"`
	Score      float64  `json:"score"`
	Confidence string   `json:"confidence"`
	Drivers    []string `json:"drivers"`
}

// EffectivenessScores estimates how effective each action is likely to
// be, from progress, schedule pressure and the persisted risk signal.
// Output order follows input order.
func (e *Engine) EffectivenessScores(actions []ActionSnapshot) []EffectivenessInsight {
	insights := make([]EffectivenessInsight, 0, len(actions))
	for _, action := range actions {
		progress := e.normalizeProgress(action.Progress, action.Status)
		overdueDays := e.overdueDays(action)

		riskSignal := weightOr(e.weights.Priority, action.Priority, e.weights.PriorityFallback)
		if action.RiskScore != nil {
			riskSignal = *action.RiskScore
		}

		// Coefficients are tunable, source of truth unknown.
		baseline := 0.45 + 0.45*progress
		penalty := 0.0
		if overdueDays > 0 {
			penalty += math.Min(float64(overdueDays)/120, 0.25)
		}
		if action.OpenIssues > 0 {
			penalty += math.Min(float64(action.OpenIssues)*0.05, 0.2)
		}
		if action.Status == "Closed" || action.Status == "Cancelled" {
			baseline *= 0.7
		}

		score := clamp(baseline-penalty+0.08*(1-riskSignal), 0.22, 0.98)

		insights = append(insights, EffectivenessInsight{
			ActionID:   action.ID,
			Title:      action.Title,
			Score:      round1(score * 100),
			Confidence: e.confidenceForScore(score),
			Drivers:    e.effectivenessDrivers(action, progress, overdueDays),
		})
	}
	return insights
}

func (e *Engine) effectivenessDrivers(action ActionSnapshot, progress float64, overdueDays int) []string {
	var drivers []string
	if overdueDays > 0 {
		drivers = append(drivers, fmt.Sprintf("Overdue by %d day(s)", overdueDays))
	}
	if progress >= 0.75 {
		drivers = append(drivers, "Implementation momentum is strong")
	} else if progress <= 0.25 {
		drivers = append(drivers, "Low execution progress")
	}
	if action.OpenIssues > 0 {
		drivers = append(drivers, fmt.Sprintf("%d outstanding issue(s) reported", action.OpenIssues))
	}
	if len(drivers) == 0 {
		drivers = append(drivers, "On-track performance with balanced progress")
	}
	return drivers
}
