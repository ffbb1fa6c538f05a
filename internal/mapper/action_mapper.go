package mapper

import (
	"github.com/sathesh-kumar-v/comply/internal/engine"
	"github.com/sathesh-kumar-v/comply/internal/model"
)

// ActionMapper flattens stored corrective actions into the loosely-shaped
// records the intelligence engine parses. All engine scoring goes through
// this single conversion, so stored and ad-hoc records take the same path.
type ActionMapper struct{}

func NewActionMapper() *ActionMapper {
	return &ActionMapper{}
}

// RawRecord converts one action to the engine's record shape.
func (m *ActionMapper) RawRecord(action model.CorrectiveAction) engine.RawAction {
	record := engine.RawAction{
		"id":           action.ID,
		"title":        action.Title,
		"priority":     string(action.Priority),
		"impact":       string(action.Impact),
		"urgency":      string(action.Urgency),
		"status":       string(action.Status),
		"progress":     action.Progress,
		"due_date":     action.DueDate,
		"completed_on": action.CompletedOn,
		"last_updated": action.LastUpdated,
		"departments":  action.Departments,
		"ai_metadata":  metadataMap(action.AIMetadata),
		"open_issues":  openIssueList(action.OpenIssues),
	}
	return record
}

// RawRecords converts a batch, preserving order.
func (m *ActionMapper) RawRecords(actions []model.CorrectiveAction) []engine.RawAction {
	records := make([]engine.RawAction, 0, len(actions))
	for _, action := range actions {
		records = append(records, m.RawRecord(action))
	}
	return records
}

func metadataMap(meta model.AIMetadata) map[string]any {
	out := make(map[string]any, 3)
	if meta.EffectivenessScore != nil {
		out["effectiveness_score"] = *meta.EffectivenessScore
	}
	if meta.RiskScore != nil {
		out["risk_score"] = *meta.RiskScore
	}
	if meta.PriorityScore != nil {
		out["priority_score"] = *meta.PriorityScore
	}
	return out
}

func openIssueList(issues []model.OpenIssue) []any {
	out := make([]any, 0, len(issues))
	for _, issue := range issues {
		out = append(out, map[string]any{
			"id":          issue.ID,
			"description": issue.Description,
		})
	}
	return out
}
