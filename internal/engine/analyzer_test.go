package engine_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sathesh-kumar-v/comply/common"
	"github.com/sathesh-kumar-v/comply/internal/engine"
)

var _ = Describe("AnalyzeAction", func() {
	var (
		referenceDate common.Date
		eng           *engine.Engine
	)

	BeforeEach(func() {
		referenceDate = common.NewDate(2025, time.February, 21)
		eng = engine.New(referenceDate)
	})

	It("assembles the full assessment for a distressed critical action", func() {
		analysis := eng.AnalyzeAction(engine.ActionSnapshot{
			ID:       "CA-2025-001",
			Title:    "Contain Supplier Quality Escape",
			Priority: "Critical",
			Status:   "In Progress",
			Progress: 0.2,
			DueDate:  common.NewDate(2025, time.February, 6),
		})

		Expect(analysis.EffectivenessScore).To(Equal(41.0))
		Expect(analysis.SuccessProbability).To(Equal(18.0))
		Expect(analysis.ProgressConfidence).To(Equal(42.0))
		Expect(analysis.PredictedCompletionDate).To(Equal(common.NewDate(2025, time.February, 20)))
		Expect(analysis.RiskAlerts).To(Equal([]string{
			"Action is overdue by 15 day(s)",
			"Progress remains below 30% of plan",
			"Escalate for executive visibility",
		}))
		Expect(analysis.ResourceRecommendations).To(Equal([]string{
			"Allocate surge support to recover overdue milestones",
			"Assign a senior owner to accelerate execution pace",
		}))
		Expect(analysis.EscalationPath).To(Equal([]string{
			"Action Owner", "Department Head", "Chief Compliance Officer",
		}))
		Expect(analysis.AutomatedTracking).To(Equal("Automated alerts triggered for overdue milestones and pending evidence uploads"))
		Expect(analysis.RiskAssessment).To(Equal("High risk: extended overdue period detected"))
		Expect(analysis.EffectivenessReview).To(Equal("Effectiveness is constrained; schedule a rapid impact review"))
		Expect(analysis.CompletionForecast).To(Equal("Completion likely slipping beyond 20 Feb 2025; escalate contingency plan"))
	})

	It("assembles a calm assessment for a completed action", func() {
		analysis := eng.AnalyzeAction(engine.ActionSnapshot{
			ID:          "CA-2025-002",
			Title:       "Refresh Vendor Due Diligence",
			Priority:    "Medium",
			Status:      "Completed",
			Progress:    1.0,
			DueDate:     common.NewDate(2025, time.March, 1),
			CompletedOn: common.NewDate(2025, time.February, 12),
			RiskScore:   floatPtr(0.5),
		})

		Expect(analysis.EffectivenessScore).To(Equal(72.5))
		Expect(analysis.SuccessProbability).To(Equal(77.5))
		Expect(analysis.ProgressConfidence).To(Equal(75.0))
		Expect(analysis.PredictedCompletionDate).To(Equal(common.NewDate(2025, time.February, 12)))
		Expect(analysis.RiskAlerts).To(Equal([]string{"Risk profile acceptable with current trajectory"}))
		Expect(analysis.ResourceRecommendations).To(Equal([]string{"Current resourcing level is adequate; monitor weekly"}))
		Expect(analysis.EscalationPath).To(Equal([]string{"Action Owner"}))
		Expect(analysis.AutomatedTracking).To(Equal("Digital evidence ingestion confirms step completion cadence"))
		Expect(analysis.RiskAssessment).To(Equal("Low risk profile based on current performance"))
		Expect(analysis.EffectivenessReview).To(Equal("Effectiveness moderate; validate metric definitions"))
		Expect(analysis.CompletionForecast).To(Equal("Projected completion by 12 Feb 2025 with strong confidence"))
	})

	It("adjusts the success probability with the update recency trend", func() {
		snapshot := engine.ActionSnapshot{
			ID:        "CA-2025-003",
			Priority:  "Medium",
			Status:    "Completed",
			Progress:  1.0,
			DueDate:   common.NewDate(2025, time.March, 1),
			RiskScore: floatPtr(0.5),
		}
		analyze := func(lastUpdated *time.Time) float64 {
			snapshot.LastUpdated = lastUpdated
			return eng.AnalyzeAction(snapshot).SuccessProbability
		}
		at := func(day int) *time.Time {
			t := time.Date(2025, time.February, day, 10, 0, 0, 0, time.UTC)
			return &t
		}

		Expect(analyze(nil)).To(Equal(77.5))
		Expect(analyze(at(20))).To(Equal(82.5))
		Expect(analyze(at(16))).To(Equal(77.5))
		Expect(analyze(at(6))).To(Equal(69.5))
	})

	Describe("completion forecasting", func() {
		It("projects forward from the due date by remaining work", func() {
			analysis := eng.AnalyzeAction(engine.ActionSnapshot{
				ID:       "CA-2025-004",
				Priority: "Medium",
				Status:   "In Progress",
				Progress: 0.5,
				DueDate:  common.NewDate(2025, time.March, 10),
			})

			Expect(analysis.PredictedCompletionDate).To(Equal(common.NewDate(2025, time.March, 18)))
		})

		It("floors the remaining-work estimate for nearly finished actions", func() {
			analysis := eng.AnalyzeAction(engine.ActionSnapshot{
				ID:       "CA-2025-005",
				Priority: "Medium",
				Status:   "In Progress",
				Progress: 0.98,
				DueDate:  common.NewDate(2025, time.March, 10),
			})

			Expect(analysis.PredictedCompletionDate).To(Equal(common.NewDate(2025, time.March, 11)))
		})

		It("cannot forecast without a due date", func() {
			analysis := eng.AnalyzeAction(engine.ActionSnapshot{
				ID:       "CA-2025-006",
				Priority: "Medium",
				Status:   "In Progress",
				Progress: 0.5,
			})

			Expect(analysis.PredictedCompletionDate.IsZero()).To(BeTrue())
			Expect(analysis.CompletionForecast).To(Equal("Completion forecast pending additional milestone data"))
		})

		It("reports the actual completion date for finished work", func() {
			analysis := eng.AnalyzeAction(engine.ActionSnapshot{
				ID:          "CA-2025-007",
				Priority:    "High",
				Status:      "Closed",
				Progress:    1.0,
				DueDate:     common.NewDate(2025, time.January, 20),
				CompletedOn: common.NewDate(2025, time.January, 18),
			})

			Expect(analysis.PredictedCompletionDate).To(Equal(common.NewDate(2025, time.January, 18)))
		})
	})

	It("returns an identical assessment for identical input", func() {
		snapshot := engine.ActionSnapshot{
			ID:        "CA-2025-008",
			Priority:  "High",
			Status:    "In Progress",
			Progress:  0.35,
			DueDate:   referenceDate.AddDays(-4),
			RiskScore: floatPtr(0.66),
		}

		first := eng.AnalyzeAction(snapshot)
		second := eng.AnalyzeAction(snapshot)

		Expect(second).To(Equal(first))
	})
})
