package engine

// ResourceRecommendation lists staffing guidance for one action.
type ResourceRecommendation struct {
	ActionID        string   `json:"actionId"`
	Title           string   `json:"title"`
	Recommendations []string `json:"recommendations"`
}

// EscalationSuggestion names the people to pull in and why.
type EscalationSuggestion struct {
	ActionID       string   `json:"actionId"`
	Title          string   `json:"title"`
	Trigger        string   `json:"trigger"`
	EscalationPath []string `json:"escalationPath"`
}

// RecommendResources advises on staffing per action. Matching rules
// accumulate; the adequate-resourcing line appears only when nothing
// else fired.
func (e *Engine) RecommendResources(actions []ActionSnapshot) []ResourceRecommendation {
	recommendations := make([]ResourceRecommendation, 0, len(actions))
	for _, action := range actions {
		overdueDays := e.overdueDays(action)
		progress := e.normalizeProgress(action.Progress, action.Status)

		var res []string
		if overdueDays > 0 {
			res = append(res, "Allocate surge support to recover overdue milestones")
		}
		if progress < 0.4 {
			res = append(res, "Assign a senior owner to accelerate execution pace")
		}
		if (action.Priority == "Critical" || action.Priority == "High") && containsDepartment(action.Departments, "Operations") {
			res = append(res, "Dedicated operational excellence lead recommended")
		}
		if len(res) == 0 {
			res = append(res, "Current resourcing level is adequate; monitor weekly")
		}

		recommendations = append(recommendations, ResourceRecommendation{
			ActionID:        action.ID,
			Title:           action.Title,
			Recommendations: res,
		})
	}
	return recommendations
}

// SuggestEscalations picks an escalation path per action. Rules are
// checked in severity order and the first match wins; every path
// starts at the action owner.
func (e *Engine) SuggestEscalations(actions []ActionSnapshot) []EscalationSuggestion {
	suggestions := make([]EscalationSuggestion, 0, len(actions))
	for _, action := range actions {
		overdueDays := e.overdueDays(action)
		progress := e.normalizeProgress(action.Progress, action.Status)

		var path []string
		var trigger string
		switch {
		// Day thresholds are tunable, source of truth unknown.
		case overdueDays >= 14 || action.Priority == "Critical":
			path = []string{"Action Owner", "Department Head", "Chief Compliance Officer"}
			trigger = "High risk or extended overdue condition"
		case overdueDays >= 7:
			path = []string{"Action Owner", "Risk Manager"}
			trigger = "Moderate overdue condition"
		case progress < 0.25:
			path = []string{"Action Owner", "Program Management Office"}
			trigger = "Insufficient implementation progress"
		default:
			path = []string{"Action Owner"}
			trigger = "Standard monitoring"
		}

		suggestions = append(suggestions, EscalationSuggestion{
			ActionID:       action.ID,
			Title:          action.Title,
			Trigger:        trigger,
			EscalationPath: path,
		})
	}
	return suggestions
}

func containsDepartment(departments []string, name string) bool {
	for _, d := range departments {
		if d == name {
			return true
		}
	}
	return false
}
