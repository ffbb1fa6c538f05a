package dto

import (
	"github.com/sathesh-kumar-v/comply/common"
	"github.com/sathesh-kumar-v/comply/internal/engine"
	"github.com/sathesh-kumar-v/comply/internal/model"
	"github.com/sathesh-kumar-v/comply/internal/service"
)

type ImplementationStepPayload struct {
	StepDescription   string      `json:"stepDescription" binding:"required,max=1000"`
	ResponsiblePerson *string     `json:"responsiblePerson,omitempty"`
	DueDate           common.Date `json:"dueDate,omitempty"`
	ResourcesRequired *string     `json:"resourcesRequired,omitempty" binding:"omitempty,max=1000"`
	SuccessCriteria   *string     `json:"successCriteria,omitempty" binding:"omitempty,max=1000"`
}

type ActionCreateRequest struct {
	ActionTitle                 string                      `json:"actionTitle" binding:"required,max=200"`
	ActionType                  string                      `json:"actionType" binding:"required,max=120"`
	SourceReference             string                      `json:"sourceReference" binding:"required,max=120"`
	ReferenceID                 *string                     `json:"referenceId,omitempty" binding:"omitempty,max=120"`
	Departments                 []string                    `json:"departments" binding:"required,min=1"`
	Priority                    string                      `json:"priority" binding:"required,oneof=Low Medium High Critical"`
	Impact                      string                      `json:"impact" binding:"required,oneof=Low Medium High Critical"`
	Urgency                     string                      `json:"urgency" binding:"required,oneof=Low Medium High Critical"`
	ProblemStatement            string                      `json:"problemStatement" binding:"required,max=1000"`
	RootCause                   string                      `json:"rootCause" binding:"required,max=1000"`
	ContributingFactors         *string                     `json:"contributingFactors,omitempty" binding:"omitempty,max=1000"`
	ImpactAssessment            string                      `json:"impactAssessment" binding:"required,max=1000"`
	CurrentControls             *string                     `json:"currentControls,omitempty" binding:"omitempty,max=1000"`
	Evidence                    []string                    `json:"evidence,omitempty"`
	ActionPlanDescription       string                      `json:"actionPlanDescription" binding:"required"`
	ImplementationSteps         []ImplementationStepPayload `json:"implementationSteps,omitempty" binding:"omitempty,dive"`
	OverallDueDate              common.Date                 `json:"overallDueDate" binding:"required"`
	ActionOwner                 string                      `json:"actionOwner" binding:"required,max=120"`
	ReviewTeam                  []string                    `json:"reviewTeam,omitempty"`
	BudgetRequired              *float64                    `json:"budgetRequired,omitempty" binding:"omitempty,gte=0"`
	ApprovalRequired            bool                        `json:"approvalRequired"`
	Approver                    *string                     `json:"approver,omitempty" binding:"omitempty,max=120"`
	AIAssisted                  bool                        `json:"aiAssisted"`
	PredictedSuccessProbability *float64                    `json:"predictedSuccessProbability,omitempty"`
}

func ToActionCreateParams(req ActionCreateRequest) service.ActionCreateParams {
	steps := make([]service.StepParams, 0, len(req.ImplementationSteps))
	for _, step := range req.ImplementationSteps {
		steps = append(steps, service.StepParams{
			Description:       step.StepDescription,
			ResponsiblePerson: step.ResponsiblePerson,
			DueDate:           step.DueDate,
			ResourcesRequired: step.ResourcesRequired,
			SuccessCriteria:   step.SuccessCriteria,
		})
	}
	return service.ActionCreateParams{
		ActionTitle:                 req.ActionTitle,
		ActionType:                  req.ActionType,
		SourceReference:             req.SourceReference,
		ReferenceID:                 req.ReferenceID,
		Departments:                 req.Departments,
		Priority:                    model.Severity(req.Priority),
		Impact:                      model.Severity(req.Impact),
		Urgency:                     model.Severity(req.Urgency),
		ProblemStatement:            req.ProblemStatement,
		RootCause:                   req.RootCause,
		ContributingFactors:         req.ContributingFactors,
		ImpactAssessment:            req.ImpactAssessment,
		CurrentControls:             req.CurrentControls,
		Evidence:                    req.Evidence,
		ActionPlanDescription:       req.ActionPlanDescription,
		ImplementationSteps:         steps,
		OverallDueDate:              req.OverallDueDate,
		ActionOwner:                 req.ActionOwner,
		ReviewTeam:                  req.ReviewTeam,
		BudgetRequired:              req.BudgetRequired,
		ApprovalRequired:            req.ApprovalRequired,
		Approver:                    req.Approver,
		AIAssisted:                  req.AIAssisted,
		PredictedSuccessProbability: req.PredictedSuccessProbability,
	}
}

// PlanAIRequest is looser than the create payload: impact and urgency
// accept any label, matching the ad-hoc nature of planning calls.
type PlanAIRequest struct {
	ActionTitle      string   `json:"actionTitle" binding:"required,max=200"`
	ActionType       string   `json:"actionType" binding:"required,max=120"`
	ProblemStatement string   `json:"problemStatement" binding:"required,max=1000"`
	RootCause        *string  `json:"rootCause,omitempty" binding:"omitempty,max=1000"`
	Impact           string   `json:"impact" binding:"required,max=40"`
	Urgency          string   `json:"urgency" binding:"required,max=40"`
	Departments      []string `json:"departments,omitempty"`
}

func ToPlanRequest(req PlanAIRequest) engine.PlanRequest {
	rootCause := ""
	if req.RootCause != nil {
		rootCause = *req.RootCause
	}
	return engine.PlanRequest{
		ActionTitle:      req.ActionTitle,
		ActionType:       req.ActionType,
		ProblemStatement: req.ProblemStatement,
		RootCause:        rootCause,
		Impact:           req.Impact,
		Urgency:          req.Urgency,
		Departments:      req.Departments,
	}
}
