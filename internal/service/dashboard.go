package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sathesh-kumar-v/comply/common"
	"github.com/sathesh-kumar-v/comply/internal/engine"
	"github.com/sathesh-kumar-v/comply/internal/model"
)

// Baseline metrics are the prior reporting period's totals. Summary
// trends are deltas against these values.
const (
	baselineTotalActions       = 22.0
	baselineOpenActions        = 11.0
	baselineOverdueActions     = 6.0
	baselineCompletedThisMonth = 5.0
	baselineEffectiveness      = 74.0
)

// statusOrder fixes the status distribution row order. Overdue is a
// synthetic bucket layered on top of the stored statuses.
var statusOrder = []string{"Open", "In Progress", "Completed", "Closed", "Cancelled", "Overdue"}

// SummaryMetric is one headline number with its delta against the
// baseline and a coarse direction flag.
type SummaryMetric struct {
	Value     float64 `json:"value"`
	Trend     float64 `json:"trend"`
	Direction string  `json:"direction"`
}

type DashboardSummary struct {
	TotalActions        SummaryMetric `json:"totalActions"`
	OpenActions         SummaryMetric `json:"openActions"`
	OverdueActions      SummaryMetric `json:"overdueActions"`
	CompletedThisMonth  SummaryMetric `json:"completedThisMonth"`
	EffectivenessRating SummaryMetric `json:"effectivenessRating"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DepartmentBreakdown struct {
	Department string `json:"department"`
	Open       int    `json:"open"`
	InProgress int    `json:"inProgress"`
	Completed  int    `json:"completed"`
	Overdue    int    `json:"overdue"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// TrendPoint is one month of the completion trend series.
type TrendPoint struct {
	Period    string `json:"period"`
	Completed int    `json:"completed"`
	Overdue   int    `json:"overdue"`
	Forecast  int    `json:"forecast"`
}

type DashboardAnalytics struct {
	StatusDistribution     []StatusCount         `json:"statusDistribution"`
	ActionsByDepartment    []DepartmentBreakdown `json:"actionsByDepartment"`
	ActionTypeDistribution []TypeCount           `json:"actionTypeDistribution"`
	CompletionTrend        []TrendPoint          `json:"completionTrend"`
}

// TableAction is the compact list row used by the dashboard table.
// Scores are the persisted ai_metadata fractions scaled to
// percentages; absent metadata presents as zero.
type TableAction struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Type               model.ActionType   `json:"type"`
	Source             string             `json:"source"`
	Departments        []string           `json:"departments"`
	Priority           model.Severity     `json:"priority"`
	Impact             model.Severity     `json:"impact"`
	Urgency            model.Severity     `json:"urgency"`
	Status             model.ActionStatus `json:"status"`
	Owner              string             `json:"owner"`
	DueDate            common.Date        `json:"dueDate"`
	Progress           int                `json:"progress"`
	EffectivenessScore float64            `json:"effectivenessScore"`
	PriorityScore      float64            `json:"priorityScore"`
}

// PriorityListEntry is a table row plus the completion date the
// priority panels display.
type PriorityListEntry struct {
	TableAction
	CompletedOn common.Date `json:"completedOn"`
}

type PriorityLists struct {
	HighPriority      []PriorityListEntry `json:"highPriority"`
	Overdue           []PriorityListEntry `json:"overdue"`
	DueThisWeek       []PriorityListEntry `json:"dueThisWeek"`
	RecentlyCompleted []PriorityListEntry `json:"recentlyCompleted"`
}

type AIInsights struct {
	EffectivenessScores     []engine.EffectivenessInsight   `json:"effectivenessScores"`
	PriorityRanking         []engine.PriorityRanking        `json:"priorityRanking"`
	ResourceRecommendations []engine.ResourceRecommendation `json:"resourceRecommendations"`
	EscalationPaths         []engine.EscalationSuggestion   `json:"escalationPaths"`
}

// Dashboard is the full dashboard document.
type Dashboard struct {
	Summary       DashboardSummary   `json:"summary"`
	Analytics     DashboardAnalytics `json:"analytics"`
	PriorityLists PriorityLists      `json:"priorityLists"`
	Actions       []TableAction      `json:"actions"`
	AIInsights    AIInsights         `json:"aiInsights"`
}

func (s *actionService) Dashboard(ctx context.Context) (*Dashboard, error) {
	actions, err := s.actions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing actions: %w", err)
	}

	today := s.today()
	eng := engine.NewWithWeights(today, s.weights)
	snapshots, err := engine.BuildSnapshots(s.mapper.RawRecords(actions))
	if err != nil {
		return nil, fmt.Errorf("building snapshots: %w", err)
	}

	insights := eng.EffectivenessScores(snapshots)

	rows := make([]TableAction, 0, len(actions))
	for _, action := range actions {
		rows = append(rows, tableAction(action))
	}

	return &Dashboard{
		Summary: summarize(actions, insights, today),
		Analytics: DashboardAnalytics{
			StatusDistribution:     statusDistribution(actions, today),
			ActionsByDepartment:    departmentDistribution(actions, today),
			ActionTypeDistribution: typeDistribution(actions),
			CompletionTrend:        completionTrend(),
		},
		PriorityLists: priorityLists(actions, today),
		Actions:       rows,
		AIInsights: AIInsights{
			EffectivenessScores:     insights,
			PriorityRanking:         eng.RankPriorities(snapshots),
			ResourceRecommendations: eng.RecommendResources(snapshots),
			EscalationPaths:         eng.SuggestEscalations(snapshots),
		},
	}, nil
}

// completionTrend returns the fixed monthly series. Callers get a
// fresh slice so response assembly cannot mutate shared state.
func completionTrend() []TrendPoint {
	return []TrendPoint{
		{Period: "Oct", Completed: 6, Overdue: 3, Forecast: 7},
		{Period: "Nov", Completed: 5, Overdue: 4, Forecast: 6},
		{Period: "Dec", Completed: 7, Overdue: 3, Forecast: 8},
		{Period: "Jan", Completed: 8, Overdue: 2, Forecast: 7},
		{Period: "Feb", Completed: 9, Overdue: 2, Forecast: 9},
	}
}

func summarize(actions []model.CorrectiveAction, insights []engine.EffectivenessInsight, today common.Date) DashboardSummary {
	var open, overdueCount, completedThisMonth int
	for _, action := range actions {
		if action.Status == model.ActionStatusOpen || action.Status == model.ActionStatusInProgress {
			open++
		}
		if isOverdue(action, today) {
			overdueCount++
		}
		if action.Status == model.ActionStatusCompleted && !action.CompletedOn.IsZero() &&
			action.CompletedOn.Month() == today.Month() && action.CompletedOn.Year() == today.Year() {
			completedThisMonth++
		}
	}

	avg := baselineEffectiveness
	if len(insights) > 0 {
		sum := 0.0
		for _, insight := range insights {
			sum += insight.Score
		}
		avg = sum / float64(len(insights))
	}

	return DashboardSummary{
		TotalActions:        trendMetric(float64(len(actions)), baselineTotalActions, false),
		OpenActions:         trendMetric(float64(open), baselineOpenActions, false),
		OverdueActions:      trendMetric(float64(overdueCount), baselineOverdueActions, true),
		CompletedThisMonth:  trendMetric(float64(completedThisMonth), baselineCompletedThisMonth, false),
		EffectivenessRating: trendMetric(round1(avg), baselineEffectiveness, false),
	}
}

// trendMetric computes the baseline delta. Deltas under 0.1 in either
// direction read as flat; invert keeps the raw movement direction for
// metrics where lower is better.
func trendMetric(current, baseline float64, invert bool) SummaryMetric {
	delta := round1(current - baseline)
	direction := "flat"
	if math.Abs(delta) >= 0.1 {
		if invert {
			direction = "up"
			if delta < 0 {
				direction = "down"
			}
		} else {
			direction = "down"
			if delta > 0 {
				direction = "up"
			}
		}
	}
	return SummaryMetric{Value: current, Trend: delta, Direction: direction}
}

func statusDistribution(actions []model.CorrectiveAction, today common.Date) []StatusCount {
	counts := make(map[string]int, len(statusOrder))
	for _, action := range actions {
		counts[string(action.Status)]++
		if isOverdue(action, today) {
			counts["Overdue"]++
		}
	}
	out := make([]StatusCount, 0, len(statusOrder))
	for _, status := range statusOrder {
		if counts[status] > 0 {
			out = append(out, StatusCount{Status: status, Count: counts[status]})
		}
	}
	return out
}

func departmentDistribution(actions []model.CorrectiveAction, today common.Date) []DepartmentBreakdown {
	rows := make(map[string]*DepartmentBreakdown)
	for _, action := range actions {
		departments := action.Departments
		if len(departments) == 0 {
			departments = []string{"Unassigned"}
		}
		for _, department := range departments {
			row, ok := rows[department]
			if !ok {
				row = &DepartmentBreakdown{Department: department}
				rows[department] = row
			}
			switch action.Status {
			case model.ActionStatusCompleted, model.ActionStatusClosed, model.ActionStatusCancelled:
				row.Completed++
			case model.ActionStatusInProgress:
				row.InProgress++
			default:
				row.Open++
			}
			if isOverdue(action, today) {
				row.Overdue++
			}
		}
	}

	names := make([]string, 0, len(rows))
	for name := range rows {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]DepartmentBreakdown, 0, len(names))
	for _, name := range names {
		out = append(out, *rows[name])
	}
	return out
}

func typeDistribution(actions []model.CorrectiveAction) []TypeCount {
	counts := make(map[string]int)
	for _, action := range actions {
		name := string(action.Type)
		if name == "" {
			name = "Corrective Action"
		}
		counts[name]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]TypeCount, 0, len(names))
	for _, name := range names {
		out = append(out, TypeCount{Type: name, Count: counts[name]})
	}
	return out
}

func priorityLists(actions []model.CorrectiveAction, today common.Date) PriorityLists {
	var highPriority, overdueActions, dueThisWeek, recentlyCompleted []model.CorrectiveAction
	for _, action := range actions {
		if action.Priority == model.SeverityHigh || action.Priority == model.SeverityCritical {
			highPriority = append(highPriority, action)
		}
		if isOverdue(action, today) {
			overdueActions = append(overdueActions, action)
		}
		if !action.DueDate.IsZero() && !terminalStatus(action.Status) {
			if days := today.DaysUntil(action.DueDate); days >= 0 && days <= 7 {
				dueThisWeek = append(dueThisWeek, action)
			}
		}
		if !action.CompletedOn.IsZero() && action.CompletedOn.DaysUntil(today) <= 30 {
			recentlyCompleted = append(recentlyCompleted, action)
		}
	}

	sort.SliceStable(highPriority, func(i, j int) bool {
		return scoreOrZero(highPriority[i].AIMetadata.PriorityScore) > scoreOrZero(highPriority[j].AIMetadata.PriorityScore)
	})
	sort.SliceStable(overdueActions, func(i, j int) bool {
		return overdueActions[i].DueDate.Time.Before(overdueActions[j].DueDate.Time)
	})
	sort.SliceStable(dueThisWeek, func(i, j int) bool {
		return dueThisWeek[i].DueDate.Time.Before(dueThisWeek[j].DueDate.Time)
	})
	sort.SliceStable(recentlyCompleted, func(i, j int) bool {
		return recentlyCompleted[j].CompletedOn.Time.Before(recentlyCompleted[i].CompletedOn.Time)
	})

	return PriorityLists{
		HighPriority:      listEntries(highPriority),
		Overdue:           listEntries(overdueActions),
		DueThisWeek:       listEntries(dueThisWeek),
		RecentlyCompleted: listEntries(recentlyCompleted),
	}
}

func listEntries(actions []model.CorrectiveAction) []PriorityListEntry {
	entries := make([]PriorityListEntry, 0, len(actions))
	for _, action := range actions {
		entries = append(entries, PriorityListEntry{
			TableAction: tableAction(action),
			CompletedOn: action.CompletedOn,
		})
	}
	return entries
}

func tableAction(action model.CorrectiveAction) TableAction {
	return TableAction{
		ID:                 action.ID,
		Title:              action.Title,
		Type:               action.Type,
		Source:             action.Source,
		Departments:        orEmpty(action.Departments),
		Priority:           action.Priority,
		Impact:             action.Impact,
		Urgency:            action.Urgency,
		Status:             action.Status,
		Owner:              action.Owner,
		DueDate:            action.DueDate,
		Progress:           action.Progress,
		EffectivenessScore: scaledScore(action.AIMetadata.EffectivenessScore),
		PriorityScore:      scaledScore(action.AIMetadata.PriorityScore),
	}
}

// isOverdue is the shared overdue rule: a due date in the past on an
// action that has not reached a terminal status.
func isOverdue(action model.CorrectiveAction, today common.Date) bool {
	if action.DueDate.IsZero() || terminalStatus(action.Status) {
		return false
	}
	return action.DueDate.Time.Before(today.Time)
}

func terminalStatus(status model.ActionStatus) bool {
	switch status {
	case model.ActionStatusCompleted, model.ActionStatusClosed, model.ActionStatusCancelled:
		return true
	}
	return false
}

// overallProgress derives progress from step states when steps exist,
// otherwise it reports the stored top-level figure. Partial credit:
// in-progress counts half, delayed a quarter.
func overallProgress(action model.CorrectiveAction) int {
	steps := action.ImplementationSteps
	if len(steps) == 0 {
		return action.Progress
	}
	score := 0.0
	for _, step := range steps {
		switch step.Status {
		case model.StepStatusCompleted:
			score++
		case model.StepStatusInProgress:
			score += 0.5
		case model.StepStatusDelayed:
			score += 0.25
		}
	}
	return int(math.RoundToEven(score / float64(len(steps)) * 100))
}

func daysToDue(action model.CorrectiveAction, today common.Date) *int {
	if action.DueDate.IsZero() {
		return nil
	}
	days := today.DaysUntil(action.DueDate)
	return &days
}

func scaledScore(fraction *float64) float64 {
	if fraction == nil {
		return 0
	}
	return round1(*fraction * 100)
}

func scoreOrZero(score *float64) float64 {
	if score == nil {
		return 0
	}
	return *score
}

// round1 rounds half to even at one decimal, matching the presentation
// rounding used across the scoring surfaces.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
