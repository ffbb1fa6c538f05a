package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/sathesh-kumar-v/comply/common"
	"github.com/sathesh-kumar-v/comply/common/id"
	"github.com/sathesh-kumar-v/comply/common/logger"
	"github.com/sathesh-kumar-v/comply/internal/engine"
	"github.com/sathesh-kumar-v/comply/internal/mapper"
	"github.com/sathesh-kumar-v/comply/internal/model"
	"github.com/sathesh-kumar-v/comply/internal/queue"
	"github.com/sathesh-kumar-v/comply/internal/store"
)

var (
	// ErrActionNotFound marks lookups for action ids that are not in the registry.
	ErrActionNotFound = errors.New("corrective action not found")

	// ErrInvalidParams marks requests that fail semantic validation.
	ErrInvalidParams = errors.New("invalid action params")
)

// StepParams describes one planned implementation step on intake.
type StepParams struct {
	Description       string      `json:"stepDescription"`
	ResponsiblePerson *string     `json:"responsiblePerson,omitempty"`
	DueDate           common.Date `json:"dueDate,omitempty"`
	ResourcesRequired *string     `json:"resourcesRequired,omitempty"`
	SuccessCriteria   *string     `json:"successCriteria,omitempty"`
}

// ActionCreateParams is the create-action request after binding.
// Budget, approval and AI-assist flags are accepted for workflow
// routing but are not part of the stored record.
type ActionCreateParams struct {
	ActionTitle                 string         `json:"actionTitle"`
	ActionType                  string         `json:"actionType"`
	SourceReference             string         `json:"sourceReference"`
	ReferenceID                 *string        `json:"referenceId,omitempty"`
	Departments                 []string       `json:"departments"`
	Priority                    model.Severity `json:"priority"`
	Impact                      model.Severity `json:"impact"`
	Urgency                     model.Severity `json:"urgency"`
	ProblemStatement            string         `json:"problemStatement"`
	RootCause                   string         `json:"rootCause"`
	ContributingFactors         *string        `json:"contributingFactors,omitempty"`
	ImpactAssessment            string         `json:"impactAssessment"`
	CurrentControls             *string        `json:"currentControls,omitempty"`
	Evidence                    []string       `json:"evidence,omitempty"`
	ActionPlanDescription       string         `json:"actionPlanDescription"`
	ImplementationSteps         []StepParams   `json:"implementationSteps,omitempty"`
	OverallDueDate              common.Date    `json:"overallDueDate"`
	ActionOwner                 string         `json:"actionOwner"`
	ReviewTeam                  []string       `json:"reviewTeam,omitempty"`
	BudgetRequired              *float64       `json:"budgetRequired,omitempty"`
	ApprovalRequired            bool           `json:"approvalRequired"`
	Approver                    *string        `json:"approver,omitempty"`
	AIAssisted                  bool           `json:"aiAssisted"`
	PredictedSuccessProbability *float64       `json:"predictedSuccessProbability,omitempty"`

	TraceID *string `json:"-"`
}

// ActionCreateResult is the create-action response body.
type ActionCreateResult struct {
	ActionID     string                `json:"actionId"`
	Status       string                `json:"status"`
	AIAssessment engine.ActionAnalysis `json:"aiAssessment"`
}

// ActionDetail is the full single-action view, including the on-demand
// engine assessment.
type ActionDetail struct {
	ID                      string                         `json:"id"`
	Title                   string                         `json:"title"`
	Status                  model.ActionStatus             `json:"status"`
	Type                    model.ActionType               `json:"type"`
	Priority                model.Severity                 `json:"priority"`
	Impact                  model.Severity                 `json:"impact"`
	Urgency                 model.Severity                 `json:"urgency"`
	Owner                   string                         `json:"owner"`
	ReviewTeam              []string                       `json:"reviewTeam"`
	Departments             []string                       `json:"departments"`
	Source                  string                         `json:"source"`
	ReferenceID             *string                        `json:"referenceId"`
	Progress                int                            `json:"progress"`
	DueDate                 common.Date                    `json:"dueDate"`
	DaysToDueDate           *int                           `json:"daysToDueDate"`
	LastUpdated             time.Time                      `json:"lastUpdated"`
	ProblemStatement        string                         `json:"problemStatement"`
	RootCause               string                         `json:"rootCause"`
	ContributingFactors     *string                        `json:"contributingFactors"`
	ImpactAssessment        string                         `json:"impactAssessment"`
	CurrentControls         *string                        `json:"currentControls"`
	Evidence                []model.EvidenceRef            `json:"evidence"`
	ImplementationSteps     []model.ImplementationStep     `json:"implementationSteps"`
	CommunicationLog        []model.CommunicationEntry     `json:"communicationLog"`
	EffectivenessEvaluation *model.EffectivenessEvaluation `json:"effectivenessEvaluation"`
	AIIntelligence          engine.ActionAnalysis          `json:"aiIntelligence"`
}

// ActionService is the corrective-action workflow: dashboard
// aggregation, intake, detail views, plan generation and the
// assessment refresh the worker runs on queued events.
type ActionService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	GetAction(ctx context.Context, actionID string) (*ActionDetail, error)
	CreateAction(ctx context.Context, params ActionCreateParams) (*ActionCreateResult, error)
	GeneratePlan(ctx context.Context, req engine.PlanRequest) engine.ActionPlan
	RefreshAssessment(ctx context.Context, actionID string) error
}

type actionService struct {
	actions  store.ActionStore
	producer queue.Producer
	mapper   *mapper.ActionMapper
	weights  engine.Weights
	now      func() time.Time
	logger   *slog.Logger
}

func NewActionService(actions store.ActionStore, producer queue.Producer, weights engine.Weights, now func() time.Time, logger *slog.Logger) ActionService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &actionService{
		actions:  actions,
		producer: producer,
		mapper:   mapper.NewActionMapper(),
		weights:  weights,
		now:      now,
		logger:   logger,
	}
}

// today is computed once per request so every score in one response
// shares a reference date.
func (s *actionService) today() common.Date {
	return common.DateOf(s.now().UTC())
}

func (s *actionService) GetAction(ctx context.Context, actionID string) (*ActionDetail, error) {
	action, err := s.actions.GetByID(ctx, actionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w", ErrActionNotFound)
		}
		return nil, fmt.Errorf("fetching action: %w", err)
	}

	today := s.today()
	eng := engine.NewWithWeights(today, s.weights)
	snapshots, err := engine.BuildSnapshots([]engine.RawAction{s.mapper.RawRecord(*action)})
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}

	return &ActionDetail{
		ID:                      action.ID,
		Title:                   action.Title,
		Status:                  action.Status,
		Type:                    action.Type,
		Priority:                action.Priority,
		Impact:                  action.Impact,
		Urgency:                 action.Urgency,
		Owner:                   action.Owner,
		ReviewTeam:              orEmpty(action.ReviewTeam),
		Departments:             orEmpty(action.Departments),
		Source:                  action.Source,
		ReferenceID:             action.ReferenceID,
		Progress:                overallProgress(*action),
		DueDate:                 action.DueDate,
		DaysToDueDate:           daysToDue(*action, today),
		LastUpdated:             action.LastUpdated,
		ProblemStatement:        action.ProblemStatement,
		RootCause:               action.RootCause,
		ContributingFactors:     action.ContributingFactors,
		ImpactAssessment:        action.ImpactAssessment,
		CurrentControls:         action.CurrentControls,
		Evidence:                orEmpty(action.Evidence),
		ImplementationSteps:     orEmpty(action.ImplementationSteps),
		CommunicationLog:        orEmpty(action.CommunicationLog),
		EffectivenessEvaluation: action.EffectivenessReview,
		AIIntelligence:          eng.AnalyzeAction(snapshots[0]),
	}, nil
}

func (s *actionService) CreateAction(ctx context.Context, params ActionCreateParams) (*ActionCreateResult, error) {
	if params.ActionTitle == "" || params.ActionOwner == "" || params.OverallDueDate.IsZero() {
		return nil, fmt.Errorf("%w: actionTitle, actionOwner and overallDueDate are required", ErrInvalidParams)
	}
	departments, err := cleanDepartments(params.Departments)
	if err != nil {
		return nil, err
	}
	if params.ApprovalRequired && (params.Approver == nil || strings.TrimSpace(*params.Approver) == "") {
		return nil, fmt.Errorf("%w: approver is required when approval is needed", ErrInvalidParams)
	}

	today := s.today()
	now := s.now().UTC()

	actionID, err := s.actions.NextID(ctx, today.Year())
	if err != nil {
		return nil, fmt.Errorf("allocating action id: %w", err)
	}

	risk := riskScore(s.weights, params.Priority, params.Impact, params.Urgency)
	predicted := 68.0
	if params.PredictedSuccessProbability != nil && *params.PredictedSuccessProbability != 0 {
		predicted = *params.PredictedSuccessProbability
	}
	priorityComponent := severityWeight(s.weights.Priority, params.Priority, s.weights.PriorityFallback)
	metadata := model.AIMetadata{
		EffectivenessScore: ptr(predicted / 100),
		RiskScore:          ptr(risk),
		PriorityScore:      ptr(math.Min(1.0, 0.35+risk+priorityComponent*0.2)),
	}

	evidence := make([]model.EvidenceRef, 0, len(params.Evidence))
	for _, name := range params.Evidence {
		evidence = append(evidence, model.EvidenceRef{Name: name})
	}

	record := &model.CorrectiveAction{
		ID:                  actionID,
		Title:               params.ActionTitle,
		Type:                model.ActionType(params.ActionType),
		Source:              params.SourceReference,
		ReferenceID:         params.ReferenceID,
		Departments:         departments,
		Priority:            params.Priority,
		Impact:              params.Impact,
		Urgency:             params.Urgency,
		Status:              model.ActionStatusOpen,
		Owner:               params.ActionOwner,
		ReviewTeam:          orEmpty(params.ReviewTeam),
		DueDate:             params.OverallDueDate,
		CreatedOn:           now,
		LastUpdated:         now,
		Progress:            0,
		ProblemStatement:    params.ProblemStatement,
		RootCause:           params.RootCause,
		ContributingFactors: params.ContributingFactors,
		ImpactAssessment:    params.ImpactAssessment,
		CurrentControls:     params.CurrentControls,
		Evidence:            evidence,
		ActionPlan:          params.ActionPlanDescription,
		ImplementationSteps: buildSteps(actionID, params.ActionOwner, params.ImplementationSteps),
		CommunicationLog:    []model.CommunicationEntry{},
		EffectivenessReview: &model.EffectivenessEvaluation{
			EvaluationDueDate: params.OverallDueDate.AddDays(30),
			EvaluationMethod:  "Metrics review",
			SuccessMetrics: []model.SuccessMetric{
				{
					Name:              "Primary success metric",
					TargetValue:       "Defined at kickoff",
					MeasurementMethod: "To be confirmed",
				},
			},
			Rating: model.RatingNotRated,
		},
		AIMetadata: metadata,
		OpenIssues: []model.OpenIssue{},
	}

	if err := s.actions.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("creating action: %w", err)
	}

	// The event feed is advisory; the record and its assessment are
	// already durable, so a queue outage must not fail the request.
	if err := s.producer.Enqueue(ctx, queue.ActionEvent{
		EventID:   id.New(),
		ActionID:  actionID,
		EventType: queue.EventActionCreated,
		TraceID:   params.TraceID,
		Attempt:   1,
	}); err != nil {
		s.logger.WarnContext(ctx, "enqueueing action event failed", "action_id", actionID, "error", err)
	}

	snapshots, err := engine.BuildSnapshots([]engine.RawAction{s.mapper.RawRecord(*record)})
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}
	eng := engine.NewWithWeights(today, s.weights)

	s.logger.InfoContext(ctx, "corrective action created", "action_id", actionID, "priority", string(params.Priority), "departments", len(departments))

	return &ActionCreateResult{
		ActionID:     actionID,
		Status:       "created",
		AIAssessment: eng.AnalyzeAction(snapshots[0]),
	}, nil
}

func (s *actionService) GeneratePlan(ctx context.Context, req engine.PlanRequest) engine.ActionPlan {
	eng := engine.NewWithWeights(s.today(), s.weights)
	return eng.GenerateActionPlan(req)
}

// RefreshAssessment recomputes the stored effectiveness and priority
// fractions from current action state. The risk score carries over
// from intake; the batch scorers consume it as an input signal.
func (s *actionService) RefreshAssessment(ctx context.Context, actionID string) error {
	action, err := s.actions.GetByID(ctx, actionID)
	if err != nil {
		return fmt.Errorf("fetching action: %w", err)
	}

	if len(action.Departments) > 0 {
		ctx = logger.WithLogFields(ctx, logger.LogFields{Department: &action.Departments[0]})
	}

	today := s.today()
	eng := engine.NewWithWeights(today, s.weights)
	snapshots, err := engine.BuildSnapshots([]engine.RawAction{s.mapper.RawRecord(*action)})
	if err != nil {
		return fmt.Errorf("building snapshot: %w", err)
	}

	insights := eng.EffectivenessScores(snapshots)
	rankings := eng.RankPriorities(snapshots)

	meta := action.AIMetadata
	meta.EffectivenessScore = ptr(insights[0].Score / 100)
	meta.PriorityScore = ptr(rankings[0].PriorityScore / 100)

	if err := s.actions.SaveAIMetadata(ctx, actionID, meta, s.now().UTC()); err != nil {
		return fmt.Errorf("saving ai metadata: %w", err)
	}

	s.logger.InfoContext(ctx, "assessment refreshed",
		"action_id", actionID,
		"effectiveness", insights[0].Score,
		"priority", rankings[0].PriorityScore,
	)
	return nil
}

// riskScore blends the three severity components into the intake risk
// fraction, capped at 1.
func riskScore(w engine.Weights, priority, impact, urgency model.Severity) float64 {
	priorityComponent := severityWeight(w.Priority, priority, w.PriorityFallback)
	impactComponent := severityWeight(w.Priority, impact, w.PriorityFallback)
	urgencyComponent := severityWeight(w.Urgency, urgency, w.UrgencyFallback)
	return math.Min(1.0, 0.35+0.4*priorityComponent+0.2*impactComponent+0.15*urgencyComponent)
}

func severityWeight(table map[string]float64, level model.Severity, fallback float64) float64 {
	if v, ok := table[string(level)]; ok {
		return v
	}
	return fallback
}

func buildSteps(actionID, owner string, steps []StepParams) []model.ImplementationStep {
	built := make([]model.ImplementationStep, 0, len(steps))
	for i, step := range steps {
		number := i + 1
		responsible := owner
		if step.ResponsiblePerson != nil && *step.ResponsiblePerson != "" {
			responsible = *step.ResponsiblePerson
		}
		built = append(built, model.ImplementationStep{
			ID:                fmt.Sprintf("%s-step-%d", actionID, number),
			StepNumber:        number,
			Description:       step.Description,
			ResponsiblePerson: responsible,
			DueDate:           step.DueDate,
			Status:            model.StepStatusNotStarted,
			ResourcesRequired: step.ResourcesRequired,
			SuccessCriteria:   step.SuccessCriteria,
		})
	}
	return built
}

func cleanDepartments(departments []string) ([]string, error) {
	cleaned := make([]string, 0, len(departments))
	for _, department := range departments {
		if trimmed := strings.TrimSpace(department); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: at least one department must be selected", ErrInvalidParams)
	}
	return cleaned, nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func ptr[T any](v T) *T {
	return &v
}
