package engine_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sathesh-kumar-v/comply/common"
	"github.com/sathesh-kumar-v/comply/internal/engine"
)

var _ = Describe("BuildSnapshots", func() {
	It("rejects the whole batch when a record has no id", func() {
		_, err := engine.BuildSnapshots([]engine.RawAction{
			{"id": "CA-2025-001"},
			{"title": "No identifier"},
		})

		Expect(err).To(MatchError(engine.ErrMissingID))
		Expect(err.Error()).To(ContainSubstring("record 1"))
	})

	It("treats a blank id as missing", func() {
		_, err := engine.BuildSnapshots([]engine.RawAction{{"id": ""}})

		Expect(err).To(MatchError(engine.ErrMissingID))
	})

	It("applies defaults to a record that only carries an id", func() {
		snapshots, err := engine.BuildSnapshots([]engine.RawAction{{"id": "CA-2025-009"}})

		Expect(err).NotTo(HaveOccurred())
		Expect(snapshots).To(HaveLen(1))

		snapshot := snapshots[0]
		Expect(snapshot.ID).To(Equal("CA-2025-009"))
		Expect(snapshot.Title).To(BeEmpty())
		Expect(snapshot.Priority).To(Equal("Medium"))
		Expect(snapshot.Impact).To(Equal("Medium"))
		Expect(snapshot.Urgency).To(Equal("Medium"))
		Expect(snapshot.Status).To(Equal("Open"))
		Expect(snapshot.Progress).To(BeZero())
		Expect(snapshot.DueDate.IsZero()).To(BeTrue())
		Expect(snapshot.CompletedOn.IsZero()).To(BeTrue())
		Expect(snapshot.Departments).To(BeEmpty())
		Expect(snapshot.LastUpdated).To(BeNil())
		Expect(snapshot.EffectivenessScore).To(BeNil())
		Expect(snapshot.RiskScore).To(BeNil())
		Expect(snapshot.OpenIssues).To(BeZero())
	})

	It("falls back to the record's priority when impact is missing", func() {
		snapshots, err := engine.BuildSnapshots([]engine.RawAction{
			{"id": "CA-2025-010", "priority": "High"},
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(snapshots[0].Impact).To(Equal("High"))
	})

	It("parses a fully populated record", func() {
		lastUpdated := time.Date(2025, time.February, 18, 9, 30, 0, 0, time.UTC)

		snapshots, err := engine.BuildSnapshots([]engine.RawAction{{
			"id":           "CA-2025-002",
			"title":        "Update Data Retention Policy",
			"priority":     "High",
			"impact":       "Critical",
			"urgency":      "Medium",
			"status":       "In Progress",
			"progress":     62,
			"due_date":     "2025-03-15",
			"completed_on": common.NewDate(2025, time.March, 1),
			"departments":  []any{"Operations", "IT"},
			"last_updated": lastUpdated,
			"ai_metadata": map[string]any{
				"effectiveness_score": 0.61,
				"risk_score":          0.72,
			},
			"open_issues": []any{
				map[string]any{"id": "ISS-1"},
				map[string]any{"id": "ISS-2"},
			},
		}})

		Expect(err).NotTo(HaveOccurred())

		snapshot := snapshots[0]
		Expect(snapshot.Title).To(Equal("Update Data Retention Policy"))
		Expect(snapshot.Priority).To(Equal("High"))
		Expect(snapshot.Impact).To(Equal("Critical"))
		Expect(snapshot.Urgency).To(Equal("Medium"))
		Expect(snapshot.Status).To(Equal("In Progress"))
		Expect(snapshot.Progress).To(Equal(0.62))
		Expect(snapshot.DueDate).To(Equal(common.NewDate(2025, time.March, 15)))
		Expect(snapshot.CompletedOn).To(Equal(common.NewDate(2025, time.March, 1)))
		Expect(snapshot.Departments).To(Equal([]string{"Operations", "IT"}))
		Expect(*snapshot.LastUpdated).To(Equal(lastUpdated))
		Expect(*snapshot.EffectivenessScore).To(Equal(0.61))
		Expect(*snapshot.RiskScore).To(Equal(0.72))
		Expect(snapshot.OpenIssues).To(Equal(2))
	})

	It("accepts alternate raw shapes for dates, timestamps and lists", func() {
		snapshots, err := engine.BuildSnapshots([]engine.RawAction{{
			"id":           "CA-2025-003",
			"progress":     55.5,
			"due_date":     time.Date(2025, time.April, 2, 16, 45, 0, 0, time.UTC),
			"last_updated": "2025-02-18T09:30:00Z",
			"departments":  []string{"Quality Assurance"},
			"ai_metadata":  map[string]any{"risk_score": 1},
			"open_issues": []map[string]any{
				{"id": "ISS-3"},
			},
		}})

		Expect(err).NotTo(HaveOccurred())

		snapshot := snapshots[0]
		Expect(snapshot.Progress).To(Equal(0.555))
		Expect(snapshot.DueDate).To(Equal(common.NewDate(2025, time.April, 2)))
		Expect(*snapshot.LastUpdated).To(Equal(time.Date(2025, time.February, 18, 9, 30, 0, 0, time.UTC)))
		Expect(snapshot.Departments).To(Equal([]string{"Quality Assurance"}))
		Expect(*snapshot.RiskScore).To(Equal(1.0))
		Expect(snapshot.OpenIssues).To(Equal(1))
	})

	It("ignores unparseable date strings", func() {
		snapshots, err := engine.BuildSnapshots([]engine.RawAction{{
			"id":       "CA-2025-004",
			"due_date": "next Tuesday",
		}})

		Expect(err).NotTo(HaveOccurred())
		Expect(snapshots[0].DueDate.IsZero()).To(BeTrue())
	})
})
