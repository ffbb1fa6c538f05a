package model

import (
	"time"

	"github.com/sathesh-kumar-v/comply/common"
)

// Severity is the shared four-level scale used for priority, impact and urgency.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

type ActionStatus string

const (
	ActionStatusOpen       ActionStatus = "Open"
	ActionStatusInProgress ActionStatus = "In Progress"
	ActionStatusCompleted  ActionStatus = "Completed"
	ActionStatusClosed     ActionStatus = "Closed"
	ActionStatusCancelled  ActionStatus = "Cancelled"
)

// ActionType is free-form on intake; these are the values the planner
// branches on.
type ActionType string

const (
	ActionTypeImmediate   ActionType = "Immediate Action"
	ActionTypeShortTerm   ActionType = "Short-term Corrective Action"
	ActionTypeLongTerm    ActionType = "Long-term Corrective Action"
	ActionTypeImprovement ActionType = "Improvement Action"
)

type StepStatus string

const (
	StepStatusNotStarted StepStatus = "Not Started"
	StepStatusInProgress StepStatus = "In Progress"
	StepStatusCompleted  StepStatus = "Completed"
	StepStatusDelayed    StepStatus = "Delayed"
)

type UpdateType string

const (
	UpdateTypeProgress UpdateType = "Progress Update"
	UpdateTypeIssue    UpdateType = "Issue Report"
	UpdateTypeReview   UpdateType = "Review"
	UpdateTypeTimeline UpdateType = "Timeline Change"
)

type EvaluationRating string

const (
	RatingNotRated           EvaluationRating = "Not Rated"
	RatingEffective          EvaluationRating = "Effective"
	RatingPartiallyEffective EvaluationRating = "Partially Effective"
	RatingNotEffective       EvaluationRating = "Not Effective"
)

// CorrectiveAction is the full action record. Top-level fields use the
// snake_case storage format; nested collections keep the camelCase keys
// they are served with.
type CorrectiveAction struct {
	ID                   string                   `json:"id"`
	Title                string                   `json:"title"`
	Type                 ActionType               `json:"type"`
	Source               string                   `json:"source"`
	ReferenceID          *string                  `json:"reference_id"`
	Departments          []string                 `json:"departments"`
	Priority             Severity                 `json:"priority"`
	Impact               Severity                 `json:"impact"`
	Urgency              Severity                 `json:"urgency"`
	Status               ActionStatus             `json:"status"`
	Owner                string                   `json:"owner"`
	ReviewTeam           []string                 `json:"review_team"`
	DueDate              common.Date              `json:"due_date"`
	CompletedOn          common.Date              `json:"completed_on"`
	CreatedOn            time.Time                `json:"created_on"`
	LastUpdated          time.Time                `json:"last_updated"`
	Progress             int                      `json:"progress"`
	ProblemStatement     string                   `json:"problem_statement"`
	RootCause            string                   `json:"root_cause"`
	ContributingFactors  *string                  `json:"contributing_factors"`
	ImpactAssessment     string                   `json:"impact_assessment"`
	CurrentControls      *string                  `json:"current_controls"`
	Evidence             []EvidenceRef            `json:"evidence"`
	ActionPlan           string                   `json:"action_plan"`
	ImplementationSteps  []ImplementationStep     `json:"implementation_steps"`
	CommunicationLog     []CommunicationEntry     `json:"communication_log"`
	EffectivenessReview  *EffectivenessEvaluation `json:"effectiveness_evaluation"`
	AIMetadata           AIMetadata               `json:"ai_metadata"`
	OpenIssues           []OpenIssue              `json:"open_issues"`
}

type EvidenceRef struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

type ImplementationStep struct {
	ID                string        `json:"id"`
	StepNumber        int           `json:"stepNumber"`
	Description       string        `json:"description"`
	ResponsiblePerson string        `json:"responsiblePerson"`
	DueDate           common.Date   `json:"dueDate"`
	Status            StepStatus    `json:"status"`
	ResourcesRequired *string       `json:"resourcesRequired,omitempty"`
	SuccessCriteria   *string       `json:"successCriteria,omitempty"`
	ProgressNotes     *string       `json:"progressNotes,omitempty"`
	CompletionDate    common.Date   `json:"completionDate,omitempty"`
	Evidence          []EvidenceRef `json:"evidence,omitempty"`
	Issues            *string       `json:"issues,omitempty"`
}

type CommunicationEntry struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	UpdateType  UpdateType    `json:"updateType"`
	User        string        `json:"user"`
	Description string        `json:"description"`
	Attachments []EvidenceRef `json:"attachments"`
}

type SuccessMetric struct {
	Name              string      `json:"name"`
	TargetValue       string      `json:"targetValue"`
	ActualValue       *string     `json:"actualValue"`
	MeasurementMethod string      `json:"measurementMethod"`
	MeasurementDate   common.Date `json:"measurementDate"`
}

type EffectivenessEvaluation struct {
	EvaluationDueDate      common.Date      `json:"evaluation_due_date"`
	EvaluationMethod       string           `json:"evaluation_method"`
	SuccessMetrics         []SuccessMetric  `json:"success_metrics"`
	Rating                 EvaluationRating `json:"rating"`
	Comments               *string          `json:"comments"`
	FurtherActionsRequired bool             `json:"further_actions_required"`
	FollowUpActions        *string          `json:"follow_up_actions"`
}

// AIMetadata carries the engine-derived fractions (0..1) persisted with
// each action. Presented scores are these values scaled to percentages.
type AIMetadata struct {
	EffectivenessScore *float64 `json:"effectiveness_score"`
	RiskScore          *float64 `json:"risk_score"`
	PriorityScore      *float64 `json:"priority_score"`
}

type OpenIssue struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
