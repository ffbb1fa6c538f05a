package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sathesh-kumar-v/comply/common"
)

// PlanRequest describes the action a remediation plan is wanted for.
// Empty ActionType, Urgency and Impact fall back to "Immediate Action"
// and "Medium".
type PlanRequest struct {
	ActionTitle      string
	ActionType       string
	ProblemStatement string
	RootCause        string
	Impact           string
	Urgency          string
	Departments      []string
}

type PlanStep struct {
	Title                 string `json:"title"`
	Description           string `json:"description"`
	OwnerRole             string `json:"ownerRole"`
	SuggestedDurationDays int    `json:"suggestedDurationDays"`
	Resources             string `json:"resources"`
	SuccessCriteria       string `json:"successCriteria"`
}

type PlanMilestone struct {
	Name       string      `json:"name"`
	TargetDate common.Date `json:"targetDate"`
}

type PlanTimeline struct {
	OverallDurationDays  int             `json:"overallDurationDays"`
	TargetCompletionDate common.Date     `json:"targetCompletionDate"`
	Milestones           []PlanMilestone `json:"milestones"`
}

type ResourcePlan struct {
	Roles          []string `json:"roles"`
	Tools          []string `json:"tools"`
	BudgetEstimate int      `json:"budgetEstimate"`
	Notes          string   `json:"notes"`
}

type ActionPlan struct {
	ActionNarrative    string       `json:"actionNarrative"`
	Steps              []PlanStep   `json:"steps"`
	Timeline           PlanTimeline `json:"timeline"`
	ResourcePlan       ResourcePlan `json:"resourcePlan"`
	SuccessProbability float64      `json:"successProbability"`
	RiskConsiderations []string     `json:"riskConsiderations"`
}

// GenerateActionPlan assembles a remediation plan template: step list,
// timeline with milestones, resource plan, success probability and risk
// considerations. The step list is built by a fixed pipeline of
// transforms over the core template, so equal requests always produce
// identical plans.
func (e *Engine) GenerateActionPlan(req PlanRequest) ActionPlan {
	actionType := orDefault(req.ActionType, "Immediate Action")
	urgency := orDefault(req.Urgency, "Medium")
	impact := orDefault(req.Impact, "Medium")

	// Duration model is tunable, source of truth unknown.
	baselineDuration := 28
	if actionType == "Long-term Corrective Action" {
		baselineDuration = 45
	}
	if urgency == "Critical" || urgency == "High" {
		baselineDuration -= 10
	}
	if impact == "Critical" || impact == "High" {
		baselineDuration += 5
	}
	if baselineDuration < 21 {
		baselineDuration = 21
	}

	startDate := e.referenceDate.AddDays(1)
	targetCompletion := startDate.AddDays(baselineDuration)

	return ActionPlan{
		ActionNarrative: e.planNarrative(req, baselineDuration),
		Steps:           e.planSteps(actionType, urgency, impact),
		Timeline: PlanTimeline{
			OverallDurationDays:  baselineDuration,
			TargetCompletionDate: targetCompletion,
			Milestones:           e.planMilestones(startDate, baselineDuration),
		},
		ResourcePlan:       e.resourcePlan(req.Departments, impact),
		SuccessProbability: round1(e.planSuccessProbability(urgency, impact, actionType) * 100),
		RiskConsiderations: e.planRisks(urgency, impact),
	}
}

// planSteps builds the step list as a pipeline of transforms applied in
// a fixed order: redesign insertion, containment compression, executive
// readout. Reordering these changes step positions in the output.
func (e *Engine) planSteps(actionType, urgency, impact string) []PlanStep {
	steps := corePlanSteps()
	steps = insertRedesignStep(steps, actionType)
	steps = compressContainment(steps, urgency)
	steps = appendExecutiveReadout(steps, impact)
	return steps
}

func corePlanSteps() []PlanStep {
	return []PlanStep{
		{
			Title:                 "Containment & Immediate Controls",
			Description:           "Stabilize the issue and prevent recurrence while analysis proceeds.",
			OwnerRole:             "Action Owner",
			SuggestedDurationDays: 5,
			Resources:             "Front-line supervisors, quick reference guides",
			SuccessCriteria:       "Containment measures verified with zero repeat incidents",
		},
		{
			Title:                 "Root Cause Analysis",
			Description:           "Facilitate cross-functional session to confirm primary and contributing causes.",
			OwnerRole:             "Quality Lead",
			SuggestedDurationDays: 7,
			Resources:             "Facilitator, process maps, incident records",
			SuccessCriteria:       "Approved RCA with validated contributing factors",
		},
		{
			Title:                 "Corrective Implementation",
			Description:           "Deploy corrective and preventive changes with controlled rollout.",
			OwnerRole:             "Department Manager",
			SuggestedDurationDays: 10,
			Resources:             "Implementation team, change management toolkit",
			SuccessCriteria:       "Process change deployed and training completed",
		},
		{
			Title:                 "Effectiveness Verification",
			Description:           "Measure outcomes, collect evidence, and confirm sustainability.",
			OwnerRole:             "Compliance Partner",
			SuggestedDurationDays: 6,
			Resources:             "Audit checklist, performance dashboards",
			SuccessCriteria:       "All success metrics met for two consecutive cycles",
		},
	}
}

// insertRedesignStep adds a Process Redesign step at position 2 for
// long-term and improvement work.
func insertRedesignStep(steps []PlanStep, actionType string) []PlanStep {
	if actionType != "Long-term Corrective Action" && actionType != "Improvement Action" {
		return steps
	}
	redesign := PlanStep{
		Title:                 "Process Redesign",
		Description:           "Optimize the workflow and integrate systemic safeguards.",
		OwnerRole:             "Process Excellence",
		SuggestedDurationDays: 12,
		Resources:             "Lean specialist, automation engineer",
		SuccessCriteria:       "Future-state design approved and resourced",
	}
	out := make([]PlanStep, 0, len(steps)+1)
	out = append(out, steps[:2]...)
	out = append(out, redesign)
	out = append(out, steps[2:]...)
	return out
}

// compressContainment tightens the first step for critical urgency.
func compressContainment(steps []PlanStep, urgency string) []PlanStep {
	if urgency != "Critical" || len(steps) == 0 {
		return steps
	}
	steps[0].SuggestedDurationDays = 3
	steps[0].Resources = "Rapid response team, executive sponsor"
	return steps
}

// appendExecutiveReadout adds a leadership briefing step for critical
// impact.
func appendExecutiveReadout(steps []PlanStep, impact string) []PlanStep {
	if impact != "Critical" {
		return steps
	}
	return append(steps, PlanStep{
		Title:                 "Executive Readout",
		Description:           "Brief leadership on remediation impact and risk posture.",
		OwnerRole:             "Program Manager",
		SuggestedDurationDays: 4,
		Resources:             "Executive summary pack, KPIs",
		SuccessCriteria:       "Leadership sign-off with risk acceptance documented",
	})
}

// planMilestones places checkpoints at fixed offsets from the start
// date; only the final checkpoint scales with the plan duration.
func (e *Engine) planMilestones(startDate common.Date, duration int) []PlanMilestone {
	return []PlanMilestone{
		{Name: "Containment Complete", TargetDate: startDate.AddDays(5)},
		{Name: "Root Cause Validated", TargetDate: startDate.AddDays(12)},
		{Name: "Implementation Complete", TargetDate: startDate.AddDays(int(float64(duration) * 0.75))},
	}
}

func (e *Engine) resourcePlan(departments []string, impact string) ResourcePlan {
	roles := []string{"Action Owner", "Process Engineer", "Quality Partner"}
	for _, dep := range departments {
		if strings.HasPrefix(strings.ToLower(dep), "it") {
			roles = append(roles, "Security Architect")
			break
		}
	}
	if containsDepartment(departments, "Operations") {
		roles = append(roles, "Operations Excellence Coach")
	}

	budget := 8500
	if impact == "High" || impact == "Critical" {
		budget = 18000
	}

	return ResourcePlan{
		Roles:          sortedUnique(roles),
		Tools:          []string{"Root cause analysis toolkit", "Collaboration workspace", "Effectiveness scorecard"},
		BudgetEstimate: budget,
		Notes:          "Budget accounts for training, technology enhancements, and validation activities.",
	}
}

func (e *Engine) planSuccessProbability(urgency, impact, actionType string) float64 {
	base := 0.72
	if urgency == "Critical" {
		base -= 0.08
	}
	if impact == "Critical" {
		base -= 0.05
	}
	if actionType == "Immediate Action" {
		base += 0.05
	}
	if actionType == "Long-term Corrective Action" {
		base -= 0.04
	}
	return clamp(base, 0.35, 0.9)
}

func (e *Engine) planRisks(urgency, impact string) []string {
	risks := []string{"Ensure evidence capture keeps pace with accelerated timeline"}
	if urgency == "High" || urgency == "Critical" {
		risks = append(risks, "Resource contention likely; secure executive sponsorship")
	}
	if impact == "High" || impact == "Critical" {
		risks = append(risks, "Validate downstream processes for unintended consequences")
	}
	return risks
}

func (e *Engine) planNarrative(req PlanRequest, duration int) string {
	title := orDefault(req.ActionTitle, "Corrective Action")
	actionType := orDefault(req.ActionType, "Corrective Action")
	urgency := strings.ToLower(orDefault(req.Urgency, "Medium"))
	impact := strings.ToLower(orDefault(req.Impact, "Medium"))
	return fmt.Sprintf(
		"<p><strong>%s</strong> will be executed as a %s with an expected %d-day horizon. "+
			"The plan prioritizes rapid containment, validated root cause analysis, and sustained effectiveness "+
			"verification while managing %s urgency and %s impact considerations.</p>",
		title, strings.ToLower(actionType), duration, urgency, impact,
	)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
