package service_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sathesh-kumar-v/comply/common"
	"github.com/sathesh-kumar-v/comply/internal/engine"
	"github.com/sathesh-kumar-v/comply/internal/mapper"
	"github.com/sathesh-kumar-v/comply/internal/model"
	"github.com/sathesh-kumar-v/comply/internal/service"
)

// dashboardFixtures covers one action per bucket: an overdue open
// action, an in-progress one due this week, a completion inside the
// current month and an old closed record with no ai metadata.
func dashboardFixtures() []model.CorrectiveAction {
	return []model.CorrectiveAction{
		{
			ID:          "CA-2025-101",
			Title:       "Segregate chemical storage",
			Type:        "Corrective Action",
			Source:      "Safety Inspection",
			Departments: []string{"Operations"},
			Priority:    model.SeverityHigh,
			Impact:      model.SeverityHigh,
			Urgency:     model.SeverityMedium,
			Status:      model.ActionStatusOpen,
			Owner:       "Rosa Delgado",
			DueDate:     common.NewDate(2025, time.February, 1),
			LastUpdated: time.Date(2025, time.February, 3, 8, 0, 0, 0, time.UTC),
			Progress:    40,
			AIMetadata: model.AIMetadata{
				EffectivenessScore: ptrTo(0.52),
				RiskScore:          ptrTo(0.7),
				PriorityScore:      ptrTo(0.9),
			},
		},
		{
			ID:          "CA-2025-102",
			Title:       "Rotate exposed service credentials",
			Type:        "Corrective Action",
			Source:      "Penetration Test",
			Departments: []string{"IT Security", "Operations"},
			Priority:    model.SeverityCritical,
			Impact:      model.SeverityCritical,
			Urgency:     model.SeverityHigh,
			Status:      model.ActionStatusInProgress,
			Owner:       "Marcus Webb",
			DueDate:     common.NewDate(2025, time.February, 14),
			LastUpdated: time.Date(2025, time.February, 9, 16, 0, 0, 0, time.UTC),
			Progress:    60,
			AIMetadata: model.AIMetadata{
				EffectivenessScore: ptrTo(0.74),
				RiskScore:          ptrTo(0.85),
				PriorityScore:      ptrTo(0.7),
			},
		},
		{
			ID:          "CA-2025-103",
			Title:       "Refresher training for lab staff",
			Type:        "Preventive Action",
			Source:      "Quality Review",
			Departments: []string{"Quality"},
			Priority:    model.SeverityMedium,
			Impact:      model.SeverityMedium,
			Urgency:     model.SeverityLow,
			Status:      model.ActionStatusCompleted,
			Owner:       "Ingrid Wolf",
			DueDate:     common.NewDate(2025, time.February, 8),
			CompletedOn: common.NewDate(2025, time.February, 5),
			LastUpdated: time.Date(2025, time.February, 5, 10, 0, 0, 0, time.UTC),
			Progress:    100,
			AIMetadata: model.AIMetadata{
				EffectivenessScore: ptrTo(0.88),
				RiskScore:          ptrTo(0.3),
				PriorityScore:      ptrTo(0.45),
			},
		},
		{
			ID:          "CA-2025-104",
			Title:       "Retire legacy file transfer",
			Source:      "Architecture Review",
			Priority:    model.SeverityLow,
			Impact:      model.SeverityLow,
			Urgency:     model.SeverityLow,
			Status:      model.ActionStatusClosed,
			Owner:       "Platform Team",
			DueDate:     common.NewDate(2025, time.January, 15),
			CompletedOn: common.NewDate(2024, time.December, 20),
			LastUpdated: time.Date(2024, time.December, 20, 12, 0, 0, 0, time.UTC),
			Progress:    100,
		},
	}
}

var _ = Describe("ActionService dashboard", func() {
	var (
		ctx      context.Context
		actions  *mockActionStore
		producer *mockProducer
		svc      service.ActionService
	)

	BeforeEach(func() {
		ctx = context.Background()
		actions = &mockActionStore{}
		producer = &mockProducer{}
		svc = service.NewActionService(actions, producer, engine.DefaultWeights(), fixedNow, nil)
	})

	Context("with the mixed fixture set", func() {
		var fixtures []model.CorrectiveAction

		BeforeEach(func() {
			fixtures = dashboardFixtures()
			actions.listFn = func(ctx context.Context) ([]model.CorrectiveAction, error) {
				return fixtures, nil
			}
		})

		It("summarizes headline counts against the baselines", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(dash.Summary.TotalActions.Value).To(Equal(4.0))
			Expect(dash.Summary.TotalActions.Trend).To(Equal(-18.0))
			Expect(dash.Summary.TotalActions.Direction).To(Equal("down"))

			Expect(dash.Summary.OpenActions.Value).To(Equal(2.0))
			Expect(dash.Summary.OpenActions.Trend).To(Equal(-9.0))
			Expect(dash.Summary.OpenActions.Direction).To(Equal("down"))

			Expect(dash.Summary.OverdueActions.Value).To(Equal(1.0))
			Expect(dash.Summary.OverdueActions.Trend).To(Equal(-5.0))
			Expect(dash.Summary.OverdueActions.Direction).To(Equal("down"))

			Expect(dash.Summary.CompletedThisMonth.Value).To(Equal(1.0))
			Expect(dash.Summary.CompletedThisMonth.Direction).To(Equal("down"))
		})

		It("averages the engine effectiveness scores for the rating", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(dash.AIInsights.EffectivenessScores).To(HaveLen(4))
			sum := 0.0
			for _, insight := range dash.AIInsights.EffectivenessScores {
				sum += insight.Score
			}
			want := roundHalfEven(sum / 4)
			Expect(dash.Summary.EffectivenessRating.Value).To(Equal(want))
			Expect(dash.Summary.EffectivenessRating.Trend).To(Equal(roundHalfEven(want - 74.0)))
		})

		It("builds the status distribution with the synthetic overdue bucket", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(dash.Analytics.StatusDistribution).To(Equal([]service.StatusCount{
				{Status: "Open", Count: 1},
				{Status: "In Progress", Count: 1},
				{Status: "Completed", Count: 1},
				{Status: "Closed", Count: 1},
				{Status: "Overdue", Count: 1},
			}))
		})

		It("breaks actions down by department with an unassigned fallback", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(dash.Analytics.ActionsByDepartment).To(Equal([]service.DepartmentBreakdown{
				{Department: "IT Security", InProgress: 1},
				{Department: "Operations", Open: 1, InProgress: 1, Overdue: 1},
				{Department: "Quality", Completed: 1},
				{Department: "Unassigned", Completed: 1},
			}))
		})

		It("counts types with the default label for untyped actions", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(dash.Analytics.ActionTypeDistribution).To(Equal([]service.TypeCount{
				{Type: "Corrective Action", Count: 3},
				{Type: "Preventive Action", Count: 1},
			}))
		})

		It("serves the fixed completion trend", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(dash.Analytics.CompletionTrend).To(HaveLen(5))
			Expect(dash.Analytics.CompletionTrend[0]).To(Equal(service.TrendPoint{Period: "Oct", Completed: 6, Overdue: 3, Forecast: 7}))
			Expect(dash.Analytics.CompletionTrend[4]).To(Equal(service.TrendPoint{Period: "Feb", Completed: 9, Overdue: 2, Forecast: 9}))
		})

		It("assembles the priority lists with their sort orders", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(listIDs(dash.PriorityLists.HighPriority)).To(Equal([]string{"CA-2025-101", "CA-2025-102"}))
			Expect(listIDs(dash.PriorityLists.Overdue)).To(Equal([]string{"CA-2025-101"}))
			Expect(listIDs(dash.PriorityLists.DueThisWeek)).To(Equal([]string{"CA-2025-102"}))
			Expect(listIDs(dash.PriorityLists.RecentlyCompleted)).To(Equal([]string{"CA-2025-103"}))

			recent := dash.PriorityLists.RecentlyCompleted[0]
			Expect(recent.CompletedOn).To(Equal(common.NewDate(2025, time.February, 5)))
			Expect(recent.Title).To(Equal("Refresher training for lab staff"))
		})

		It("scales stored metadata into the table rows", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(dash.Actions).To(HaveLen(4))
			Expect(dash.Actions[0].ID).To(Equal("CA-2025-101"))
			Expect(dash.Actions[0].EffectivenessScore).To(Equal(52.0))
			Expect(dash.Actions[0].PriorityScore).To(Equal(90.0))
			Expect(dash.Actions[3].EffectivenessScore).To(Equal(0.0))
			Expect(dash.Actions[3].PriorityScore).To(Equal(0.0))
		})

		It("matches the engine batch outputs exactly", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			snapshots, err := engine.BuildSnapshots(mapper.NewActionMapper().RawRecords(fixtures))
			Expect(err).NotTo(HaveOccurred())
			eng := engine.NewWithWeights(common.DateOf(fixedNow().UTC()), engine.DefaultWeights())

			Expect(dash.AIInsights.EffectivenessScores).To(Equal(eng.EffectivenessScores(snapshots)))
			Expect(dash.AIInsights.PriorityRanking).To(Equal(eng.RankPriorities(snapshots)))
			Expect(dash.AIInsights.ResourceRecommendations).To(Equal(eng.RecommendResources(snapshots)))
			Expect(dash.AIInsights.EscalationPaths).To(Equal(eng.SuggestEscalations(snapshots)))
		})
	})

	Context("when counts run ahead of the baselines", func() {
		BeforeEach(func() {
			var fixtures []model.CorrectiveAction
			for i := 0; i < 6; i++ {
				fixtures = append(fixtures, model.CorrectiveAction{
					ID:       fmt.Sprintf("CA-2025-2%02d", i+1),
					Title:    fmt.Sprintf("Backlog item %d", i+1),
					Status:   model.ActionStatusOpen,
					Priority: model.SeverityMedium,
					DueDate:  common.NewDate(2025, time.January, 20),
				})
			}
			for i := 0; i < 6; i++ {
				fixtures = append(fixtures, model.CorrectiveAction{
					ID:          fmt.Sprintf("CA-2025-3%02d", i+1),
					Title:       fmt.Sprintf("Closed-out item %d", i+1),
					Status:      model.ActionStatusCompleted,
					Priority:    model.SeverityMedium,
					CompletedOn: common.NewDate(2025, time.February, 3),
				})
			}
			actions.listFn = func(ctx context.Context) ([]model.CorrectiveAction, error) {
				return fixtures, nil
			}
		})

		It("reports flat and upward trends", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(dash.Summary.OverdueActions.Value).To(Equal(6.0))
			Expect(dash.Summary.OverdueActions.Trend).To(Equal(0.0))
			Expect(dash.Summary.OverdueActions.Direction).To(Equal("flat"))

			Expect(dash.Summary.CompletedThisMonth.Value).To(Equal(6.0))
			Expect(dash.Summary.CompletedThisMonth.Trend).To(Equal(1.0))
			Expect(dash.Summary.CompletedThisMonth.Direction).To(Equal("up"))

			Expect(dash.Summary.OpenActions.Value).To(Equal(6.0))
			Expect(dash.Summary.OpenActions.Direction).To(Equal("down"))
		})
	})

	Context("with an empty registry", func() {
		BeforeEach(func() {
			actions.listFn = func(ctx context.Context) ([]model.CorrectiveAction, error) {
				return []model.CorrectiveAction{}, nil
			}
		})

		It("falls back to the baseline effectiveness rating", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(dash.Summary.EffectivenessRating.Value).To(Equal(74.0))
			Expect(dash.Summary.EffectivenessRating.Trend).To(Equal(0.0))
			Expect(dash.Summary.EffectivenessRating.Direction).To(Equal("flat"))
		})

		It("returns empty collections rather than nulls", func() {
			dash, err := svc.Dashboard(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(dash.Actions).NotTo(BeNil())
			Expect(dash.Actions).To(BeEmpty())
			Expect(dash.Analytics.StatusDistribution).NotTo(BeNil())
			Expect(dash.Analytics.StatusDistribution).To(BeEmpty())
			Expect(dash.PriorityLists.HighPriority).NotTo(BeNil())
			Expect(dash.PriorityLists.HighPriority).To(BeEmpty())
			Expect(dash.AIInsights.EffectivenessScores).NotTo(BeNil())
			Expect(dash.Analytics.CompletionTrend).To(HaveLen(5))
		})
	})

	Context("when the store is unavailable", func() {
		It("propagates the failure", func() {
			actions.listFn = func(ctx context.Context) ([]model.CorrectiveAction, error) {
				return nil, errors.New("connection refused")
			}

			_, err := svc.Dashboard(ctx)
			Expect(err).To(MatchError(ContainSubstring("listing actions")))
		})
	})
})

func listIDs(entries []service.PriorityListEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	return ids
}

// roundHalfEven mirrors the one-decimal presentation rounding.
func roundHalfEven(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
