package engine

import (
	"fmt"

	"github.com/sathesh-kumar-v/comply/common"
)

// forecastDateLayout is the human-readable date format used in
// completion forecast narratives (e.g. "18 Mar 2025").
const forecastDateLayout = "02 Jan 2006"

// ActionAnalysis is the deep single-action assessment: forecast scores,
// alerts, advisor output and narrative summaries. Score fields are
// percentages rounded to one decimal. PredictedCompletionDate is zero
// (serialized as null) when no forecast is possible.
type ActionAnalysis struct {
	EffectivenessScore      float64     `json:"effectivenessScore"`
	SuccessProbability      float64     `json:"successProbability"`
	PredictedCompletionDate common.Date `json:"predictedCompletionDate"`
	ProgressConfidence      float64     `json:"progressConfidence"`
	RiskAlerts              []string    `json:"riskAlerts"`
	ResourceRecommendations []string    `json:"resourceRecommendations"`
	EscalationPath          []string    `json:"escalationPath"`
	AutomatedTracking       string      `json:"automatedTracking"`
	RiskAssessment          string      `json:"riskAssessment"`
	EffectivenessReview     string      `json:"effectivenessReview"`
	CompletionForecast      string      `json:"completionForecast"`
}

// AnalyzeAction produces the full per-action assessment. Its
// effectiveness formula is intentionally independent of the batch
// EffectivenessScores formula, and its risk fallback for unknown
// priorities is the analyzer-specific one.
func (e *Engine) AnalyzeAction(action ActionSnapshot) ActionAnalysis {
	progress := e.normalizeProgress(action.Progress, action.Status)
	overdueDays := e.overdueDays(action)

	riskSignal := weightOr(e.weights.Priority, action.Priority, e.weights.AnalyzerRiskFallback)
	if action.RiskScore != nil {
		riskSignal = *action.RiskScore
	}

	// Staleness window: updates older than two weeks drag the trend
	// down, fresh ones lift it. Tunable, source of truth unknown.
	trendFactor := 0.0
	if action.LastUpdated != nil {
		daysSinceUpdate := common.DateOf(*action.LastUpdated).DaysUntil(e.referenceDate)
		if daysSinceUpdate > 14 {
			trendFactor -= 0.08
		} else if daysSinceUpdate < 5 {
			trendFactor += 0.05
		}
	}

	successProbability := clamp(0.55+0.35*progress-0.25*riskSignal-0.02*float64(overdueDays)+trendFactor, 0.18, 0.97)
	effectivenessScore := clamp(0.5+0.3*progress-0.15*riskSignal, 0.2, 0.95)
	progressConfidence := clamp(0.4+0.35*progress-0.1*float64(overdueDays)/30, 0.2, 0.92)
	predictedCompletion := e.predictCompletionDate(action, progress)

	var riskAlerts []string
	if overdueDays > 0 {
		riskAlerts = append(riskAlerts, fmt.Sprintf("Action is overdue by %d day(s)", overdueDays))
	}
	if progress < 0.3 {
		riskAlerts = append(riskAlerts, "Progress remains below 30% of plan")
	}
	if (action.Priority == "Critical" || action.Priority == "High") && successProbability < 0.7 {
		riskAlerts = append(riskAlerts, "Escalate for executive visibility")
	}
	if len(riskAlerts) == 0 {
		riskAlerts = append(riskAlerts, "Risk profile acceptable with current trajectory")
	}

	single := []ActionSnapshot{action}

	return ActionAnalysis{
		EffectivenessScore:      round1(effectivenessScore * 100),
		SuccessProbability:      round1(successProbability * 100),
		PredictedCompletionDate: predictedCompletion,
		ProgressConfidence:      round1(progressConfidence * 100),
		RiskAlerts:              riskAlerts,
		ResourceRecommendations: e.RecommendResources(single)[0].Recommendations,
		EscalationPath:          e.SuggestEscalations(single)[0].EscalationPath,
		AutomatedTracking:       e.automatedTrackingSummary(action, overdueDays),
		RiskAssessment:          e.riskAssessmentSummary(action, overdueDays, successProbability),
		EffectivenessReview:     e.effectivenessSummary(effectivenessScore),
		CompletionForecast:      e.completionForecastSummary(predictedCompletion, successProbability),
	}
}

// predictCompletionDate forecasts when the action will land. Finished
// actions report their actual completion date; actions with no due date
// cannot be forecast at all.
func (e *Engine) predictCompletionDate(action ActionSnapshot, progress float64) common.Date {
	if (action.Status == "Completed" || action.Status == "Closed") && !action.CompletedOn.IsZero() {
		return action.CompletedOn
	}
	if action.DueDate.IsZero() {
		return common.Date{}
	}

	remaining := 1 - progress
	if remaining < 0.05 {
		remaining = 0.05
	}
	estimatedDays := int(remaining * 30)
	if action.Priority == "Critical" || action.Priority == "High" {
		estimatedDays += 5
	} else {
		estimatedDays += 2
	}
	return action.DueDate.AddDays(estimatedDays / 2)
}

func (e *Engine) automatedTrackingSummary(action ActionSnapshot, overdueDays int) string {
	if overdueDays > 0 {
		return "Automated alerts triggered for overdue milestones and pending evidence uploads"
	}
	if action.OpenIssues > 0 {
		return "Digital evidence review flag raised for unresolved issues"
	}
	return "Digital evidence ingestion confirms step completion cadence"
}

func (e *Engine) riskAssessmentSummary(action ActionSnapshot, overdueDays int, successProbability float64) string {
	if overdueDays >= 14 {
		return "High risk: extended overdue period detected"
	}
	if successProbability < 0.6 {
		return "Moderate risk: completion probability below 60%"
	}
	if action.Priority == "Critical" || action.Priority == "High" {
		return "Managed risk with elevated monitoring"
	}
	return "Low risk profile based on current performance"
}

func (e *Engine) effectivenessSummary(effectivenessScore float64) string {
	if effectivenessScore >= 0.8 {
		return "Effectiveness trending high based on interim metrics"
	}
	if effectivenessScore >= 0.6 {
		return "Effectiveness moderate; validate metric definitions"
	}
	return "Effectiveness is constrained; schedule a rapid impact review"
}

func (e *Engine) completionForecastSummary(predictedCompletion common.Date, successProbability float64) string {
	if predictedCompletion.IsZero() {
		return "Completion forecast pending additional milestone data"
	}
	formatted := predictedCompletion.Format(forecastDateLayout)
	if successProbability >= 0.75 {
		return fmt.Sprintf("Projected completion by %s with strong confidence", formatted)
	}
	if successProbability >= 0.6 {
		return fmt.Sprintf("Projected completion around %s; monitor constraints", formatted)
	}
	return fmt.Sprintf("Completion likely slipping beyond %s; escalate contingency plan", formatted)
}
