package store

import (
	"time"

	"github.com/sathesh-kumar-v/comply/common"
	"github.com/sathesh-kumar-v/comply/internal/model"
)

func ptr[T any](v T) *T {
	return &v
}

// seedActions returns the starter registry served before any real intake
// source is connected. Ids continue from the highest seeded sequence.
func seedActions() []model.CorrectiveAction {
	return []model.CorrectiveAction{
		{
			ID:                  "CA-2025-001",
			Title:               "Stabilize supplier onboarding controls",
			Type:                model.ActionTypeShortTerm,
			Source:              "Audit Finding",
			ReferenceID:         ptr("AUD-2025-014"),
			Departments:         []string{"Operations", "Quality Assurance"},
			Priority:            model.SeverityHigh,
			Impact:              model.SeverityHigh,
			Urgency:             model.SeverityCritical,
			Status:              model.ActionStatusInProgress,
			Owner:               "Jordan Smith",
			ReviewTeam:          []string{"Quality Director", "Compliance Lead"},
			DueDate:             common.NewDate(2025, time.March, 18),
			CreatedOn:           time.Date(2025, time.January, 20, 9, 0, 0, 0, time.UTC),
			LastUpdated:         time.Date(2025, time.February, 18, 14, 35, 0, 0, time.UTC),
			Progress:            62,
			ProblemStatement:    "Supplier onboarding errors exceeded threshold causing compliance delays.",
			RootCause:           "Manual checklist gaps and inconsistent verification steps.",
			ContributingFactors: ptr("Legacy documentation, limited cross-training, and unclear escalation path."),
			ImpactAssessment:    "Delayed vendor activation impacts revenue recognition and audit compliance.",
			CurrentControls:     ptr("Manual review by procurement analyst with weekly supervisor spot checks."),
			Evidence: []model.EvidenceRef{
				{Name: "Audit_Observation.pdf", Type: "document"},
				{Name: "Vendor_Error_Log.xlsx", Type: "spreadsheet"},
			},
			ActionPlan: "<p>Implement standardized onboarding workflow with automated validation checks and escalation triggers.</p>",
			ImplementationSteps: []model.ImplementationStep{
				{
					ID:                "CA-2025-001-step-1",
					StepNumber:        1,
					Description:       "Deploy interim containment checklist to stop data gaps.",
					ResponsiblePerson: "Jordan Smith",
					DueDate:           common.NewDate(2025, time.February, 10),
					Status:            model.StepStatusCompleted,
					ResourcesRequired: ptr("Containment taskforce, communication toolkit"),
					SuccessCriteria:   ptr("No new onboarding defects recorded"),
					ProgressNotes:     ptr("Checklist distributed and validated with pilot team."),
					CompletionDate:    common.NewDate(2025, time.February, 9),
					Evidence:          []model.EvidenceRef{{Name: "Containment_Signoff.pdf"}},
				},
				{
					ID:                "CA-2025-001-step-2",
					StepNumber:        2,
					Description:       "Automate verification against compliance reference data.",
					ResponsiblePerson: "Priya Patel",
					DueDate:           common.NewDate(2025, time.March, 5),
					Status:            model.StepStatusInProgress,
					ResourcesRequired: ptr("IT integration support, service account"),
					SuccessCriteria:   ptr("System blocks incomplete submissions"),
					ProgressNotes:     ptr("Integration testing 70% complete."),
					Issues:            ptr("Awaiting security approvals for API access."),
				},
				{
					ID:                "CA-2025-001-step-3",
					StepNumber:        3,
					Description:       "Train procurement analysts on new workflow and escalation path.",
					ResponsiblePerson: "Alex Martinez",
					DueDate:           common.NewDate(2025, time.March, 15),
					Status:            model.StepStatusNotStarted,
					ResourcesRequired: ptr("Training deck, LMS updates"),
					SuccessCriteria:   ptr("100% analysts certified"),
				},
			},
			CommunicationLog: []model.CommunicationEntry{
				{
					ID:          "CA-2025-001-log-1",
					Timestamp:   time.Date(2025, time.February, 14, 10, 20, 0, 0, time.UTC),
					UpdateType:  model.UpdateTypeProgress,
					User:        "Jordan Smith",
					Description: "Containment checklist deployed; defect rate dropped by 40% week-over-week.",
					Attachments: []model.EvidenceRef{},
				},
				{
					ID:          "CA-2025-001-log-2",
					Timestamp:   time.Date(2025, time.February, 19, 16, 45, 0, 0, time.UTC),
					UpdateType:  model.UpdateTypeIssue,
					User:        "Priya Patel",
					Description: "API security review delaying automation go-live by 3 days.",
					Attachments: []model.EvidenceRef{{Name: "SecurityException.msg"}},
				},
			},
			EffectivenessReview: &model.EffectivenessEvaluation{
				EvaluationDueDate: common.NewDate(2025, time.April, 5),
				EvaluationMethod:  "Metrics review",
				SuccessMetrics: []model.SuccessMetric{
					{
						Name:              "Onboarding defect rate",
						TargetValue:       "≤ 1.5%",
						ActualValue:       ptr("1.8%"),
						MeasurementMethod: "Automated dashboard",
						MeasurementDate:   common.NewDate(2025, time.February, 15),
					},
					{
						Name:              "Cycle time",
						TargetValue:       "5 days",
						ActualValue:       ptr("6.5 days"),
						MeasurementMethod: "Workflow analytics",
						MeasurementDate:   common.NewDate(2025, time.February, 18),
					},
				},
				Rating:                 model.RatingPartiallyEffective,
				Comments:               ptr("Containment working; automation delay impacting metrics."),
				FurtherActionsRequired: true,
				FollowUpActions:        ptr("Escalate API approval and schedule refresher training for analysts."),
			},
			AIMetadata: model.AIMetadata{
				EffectivenessScore: ptr(0.74),
				RiskScore:          ptr(0.82),
				PriorityScore:      ptr(0.88),
			},
			OpenIssues: []model.OpenIssue{
				{ID: "issue-2025-001", Description: "Automation API pending security review"},
			},
		},
		{
			ID:                  "CA-2025-002",
			Title:               "Modernize access control audit trail",
			Type:                model.ActionTypeLongTerm,
			Source:              "Risk Assessment",
			ReferenceID:         ptr("RSK-2025-032"),
			Departments:         []string{"IT Security", "Compliance"},
			Priority:            model.SeverityCritical,
			Impact:              model.SeverityCritical,
			Urgency:             model.SeverityHigh,
			Status:              model.ActionStatusOpen,
			Owner:               "Maria Chen",
			ReviewTeam:          []string{"CISO", "Internal Audit"},
			DueDate:             common.NewDate(2025, time.May, 30),
			CreatedOn:           time.Date(2025, time.January, 10, 11, 15, 0, 0, time.UTC),
			LastUpdated:         time.Date(2025, time.February, 12, 9, 30, 0, 0, time.UTC),
			Progress:            28,
			ProblemStatement:    "Legacy audit trail cannot meet regulatory evidence retention requirements.",
			RootCause:           "Fragmented logging architecture and manual reconciliation steps.",
			ContributingFactors: ptr("Aging infrastructure and limited integration with IAM platform."),
			ImpactAssessment:    "High risk of non-compliance during regulatory inspections.",
			CurrentControls:     ptr("Manual log exports reviewed monthly by compliance analyst."),
			Evidence:            []model.EvidenceRef{{Name: "Risk_Assessment_Summary.pdf"}},
			ActionPlan:          "<p>Implement centralized immutable logging platform with automated reconciliation and alerting.</p>",
			ImplementationSteps: []model.ImplementationStep{
				{
					ID:                "CA-2025-002-step-1",
					StepNumber:        1,
					Description:       "Design target-state logging architecture with IAM integration.",
					ResponsiblePerson: "Maria Chen",
					DueDate:           common.NewDate(2025, time.March, 1),
					Status:            model.StepStatusInProgress,
					ResourcesRequired: ptr("Solutions architect, IAM analyst"),
					SuccessCriteria:   ptr("Design approved by security architecture board"),
					ProgressNotes:     ptr("Architecture draft awaiting IAM input."),
				},
				{
					ID:                "CA-2025-002-step-2",
					StepNumber:        2,
					Description:       "Select tooling for immutable log storage and alerting.",
					ResponsiblePerson: "Rahul Iyer",
					DueDate:           common.NewDate(2025, time.March, 28),
					Status:            model.StepStatusNotStarted,
					ResourcesRequired: ptr("Vendor evaluation matrix, procurement support"),
					SuccessCriteria:   ptr("Tool selection signed off with budget"),
				},
			},
			CommunicationLog: []model.CommunicationEntry{
				{
					ID:          "CA-2025-002-log-1",
					Timestamp:   time.Date(2025, time.February, 5, 13, 0, 0, 0, time.UTC),
					UpdateType:  model.UpdateTypeReview,
					User:        "Internal Audit",
					Description: "Confirmed scope aligns with regulatory commitments.",
					Attachments: []model.EvidenceRef{},
				},
			},
			EffectivenessReview: &model.EffectivenessEvaluation{
				EvaluationDueDate: common.NewDate(2025, time.June, 30),
				EvaluationMethod:  "Audit",
				SuccessMetrics: []model.SuccessMetric{
					{
						Name:              "Log immutability",
						TargetValue:       "100%",
						MeasurementMethod: "Security validation",
					},
					{
						Name:              "Alert latency",
						TargetValue:       "< 5 min",
						MeasurementMethod: "Monitoring report",
					},
				},
				Rating:   model.RatingNotRated,
				Comments: ptr("Awaiting implementation"),
			},
			AIMetadata: model.AIMetadata{
				EffectivenessScore: ptr(0.62),
				RiskScore:          ptr(0.9),
				PriorityScore:      ptr(0.94),
			},
			OpenIssues: []model.OpenIssue{},
		},
		{
			ID:                  "CA-2025-003",
			Title:               "Refresh compliance training library",
			Type:                model.ActionTypeImprovement,
			Source:              "Management Review",
			ReferenceID:         ptr("MR-2024-019"),
			Departments:         []string{"Compliance", "Human Resources"},
			Priority:            model.SeverityMedium,
			Impact:              model.SeverityMedium,
			Urgency:             model.SeverityMedium,
			Status:              model.ActionStatusCompleted,
			Owner:               "Alex Martinez",
			ReviewTeam:          []string{"Learning & Development", "Compliance"},
			DueDate:             common.NewDate(2025, time.February, 20),
			CompletedOn:         common.NewDate(2025, time.February, 12),
			CreatedOn:           time.Date(2024, time.December, 15, 10, 45, 0, 0, time.UTC),
			LastUpdated:         time.Date(2025, time.February, 12, 17, 10, 0, 0, time.UTC),
			Progress:            100,
			ProblemStatement:    "Training completion scores declining below target.",
			RootCause:           "Content outdated and not scenario-based.",
			ContributingFactors: ptr("Limited localization and engagement."),
			ImpactAssessment:    "Employee readiness impacted; regulatory training obligations at risk.",
			CurrentControls:     ptr("Annual content review with manual updates."),
			Evidence: []model.EvidenceRef{
				{Name: "Training_Completion_Report.pdf"},
				{Name: "Feedback_Survey_2024.xlsx"},
			},
			ActionPlan: "<p>Introduce modular micro-learning with quarterly refresh cadence and region-specific scenarios.</p>",
			ImplementationSteps: []model.ImplementationStep{
				{
					ID:                "CA-2025-003-step-1",
					StepNumber:        1,
					Description:       "Audit existing course catalog and retire outdated modules.",
					ResponsiblePerson: "Alex Martinez",
					DueDate:           common.NewDate(2025, time.January, 10),
					Status:            model.StepStatusCompleted,
					ResourcesRequired: ptr("Course audit checklist"),
					SuccessCriteria:   ptr("Obsolete modules archived"),
					CompletionDate:    common.NewDate(2025, time.January, 8),
				},
				{
					ID:                "CA-2025-003-step-2",
					StepNumber:        2,
					Description:       "Design new scenario-based modules with localization.",
					ResponsiblePerson: "L&D Team",
					DueDate:           common.NewDate(2025, time.January, 30),
					Status:            model.StepStatusCompleted,
					CompletionDate:    common.NewDate(2025, time.January, 28),
					SuccessCriteria:   ptr("Regional leads approve localized content"),
				},
				{
					ID:                "CA-2025-003-step-3",
					StepNumber:        3,
					Description:       "Launch communication campaign and track completion.",
					ResponsiblePerson: "Communications",
					DueDate:           common.NewDate(2025, time.February, 12),
					Status:            model.StepStatusCompleted,
					CompletionDate:    common.NewDate(2025, time.February, 12),
					SuccessCriteria:   ptr("Completion rates improved by 20%"),
				},
			},
			CommunicationLog: []model.CommunicationEntry{
				{
					ID:          "CA-2025-003-log-1",
					Timestamp:   time.Date(2025, time.January, 29, 9, 15, 0, 0, time.UTC),
					UpdateType:  model.UpdateTypeProgress,
					User:        "Alex Martinez",
					Description: "Localized modules finalized; translation QA complete.",
					Attachments: []model.EvidenceRef{},
				},
				{
					ID:          "CA-2025-003-log-2",
					Timestamp:   time.Date(2025, time.February, 12, 12, 5, 0, 0, time.UTC),
					UpdateType:  model.UpdateTypeReview,
					User:        "Learning & Development",
					Description: "Campaign launch achieved 92% completion within first week.",
					Attachments: []model.EvidenceRef{},
				},
			},
			EffectivenessReview: &model.EffectivenessEvaluation{
				EvaluationDueDate: common.NewDate(2025, time.March, 15),
				EvaluationMethod:  "Survey",
				SuccessMetrics: []model.SuccessMetric{
					{
						Name:              "Training completion",
						TargetValue:       "95%",
						ActualValue:       ptr("96%"),
						MeasurementMethod: "LMS report",
						MeasurementDate:   common.NewDate(2025, time.February, 12),
					},
					{
						Name:              "Knowledge retention",
						TargetValue:       "80%",
						ActualValue:       ptr("84%"),
						MeasurementMethod: "Post-training assessment",
						MeasurementDate:   common.NewDate(2025, time.February, 10),
					},
				},
				Rating:   model.RatingEffective,
				Comments: ptr("Engagement scores exceeded plan."),
			},
			AIMetadata: model.AIMetadata{
				EffectivenessScore: ptr(0.9),
				RiskScore:          ptr(0.35),
				PriorityScore:      ptr(0.52),
			},
			OpenIssues: []model.OpenIssue{},
		},
		{
			ID:                  "CA-2025-004",
			Title:               "Address recurring environmental audit findings",
			Type:                model.ActionTypeShortTerm,
			Source:              "Audit Finding",
			ReferenceID:         ptr("ENV-2024-077"),
			Departments:         []string{"Facilities", "Operations"},
			Priority:            model.SeverityHigh,
			Impact:              model.SeverityCritical,
			Urgency:             model.SeverityHigh,
			Status:              model.ActionStatusInProgress,
			Owner:               "Lena Ortiz",
			ReviewTeam:          []string{"EHS Director", "Operations VP"},
			DueDate:             common.NewDate(2025, time.February, 25),
			CreatedOn:           time.Date(2024, time.December, 5, 8, 40, 0, 0, time.UTC),
			LastUpdated:         time.Date(2025, time.February, 20, 8, 10, 0, 0, time.UTC),
			Progress:            48,
			ProblemStatement:    "Repeat findings around waste segregation and spill response readiness.",
			RootCause:           "Inconsistent supervisor oversight and outdated response kits.",
			ContributingFactors: ptr("High turnover in frontline teams and inadequate refresher drills."),
			ImpactAssessment:    "Regulatory fines and operational disruption risk if non-compliance persists.",
			CurrentControls:     ptr("Monthly site checks and quarterly drills."),
			Evidence:            []model.EvidenceRef{{Name: "EHS_Audit_Report.pdf"}},
			ActionPlan:          "<p>Reinforce waste segregation standards, modernize response kits, and automate inspection reminders.</p>",
			ImplementationSteps: []model.ImplementationStep{
				{
					ID:                "CA-2025-004-step-1",
					StepNumber:        1,
					Description:       "Replace outdated spill response kits across facilities.",
					ResponsiblePerson: "Lena Ortiz",
					DueDate:           common.NewDate(2025, time.January, 20),
					Status:            model.StepStatusCompleted,
					CompletionDate:    common.NewDate(2025, time.January, 18),
					ResourcesRequired: ptr("Procurement budget, vendor coordination"),
				},
				{
					ID:                "CA-2025-004-step-2",
					StepNumber:        2,
					Description:       "Launch targeted supervisor training on waste segregation checks.",
					ResponsiblePerson: "Training Team",
					DueDate:           common.NewDate(2025, time.February, 10),
					Status:            model.StepStatusDelayed,
					ResourcesRequired: ptr("Training rooms, facilitator"),
					Issues:            ptr("Severe weather postponed two regional sessions."),
				},
				{
					ID:                "CA-2025-004-step-3",
					StepNumber:        3,
					Description:       "Implement digital inspection app with automated reminders.",
					ResponsiblePerson: "IT Operations",
					DueDate:           common.NewDate(2025, time.February, 28),
					Status:            model.StepStatusInProgress,
					ProgressNotes:     ptr("Pilot underway at two facilities."),
				},
			},
			CommunicationLog: []model.CommunicationEntry{
				{
					ID:          "CA-2025-004-log-1",
					Timestamp:   time.Date(2025, time.February, 11, 15, 25, 0, 0, time.UTC),
					UpdateType:  model.UpdateTypeTimeline,
					User:        "Training Team",
					Description: "Training rescheduled to Feb 20 due to weather closures.",
					Attachments: []model.EvidenceRef{{Name: "Training_Reschedule.pdf"}},
				},
				{
					ID:          "CA-2025-004-log-2",
					Timestamp:   time.Date(2025, time.February, 20, 9, 0, 0, 0, time.UTC),
					UpdateType:  model.UpdateTypeIssue,
					User:        "Lena Ortiz",
					Description: "Need temporary staff coverage to complete kit deployment.",
					Attachments: []model.EvidenceRef{},
				},
			},
			EffectivenessReview: &model.EffectivenessEvaluation{
				EvaluationDueDate: common.NewDate(2025, time.April, 1),
				EvaluationMethod:  "Metrics review",
				SuccessMetrics: []model.SuccessMetric{
					{
						Name:              "Inspection completion",
						TargetValue:       "100%",
						ActualValue:       ptr("78%"),
						MeasurementMethod: "Inspection app dashboard",
						MeasurementDate:   common.NewDate(2025, time.February, 19),
					},
					{
						Name:              "Incident response time",
						TargetValue:       "< 4 min",
						ActualValue:       ptr("5.5 min"),
						MeasurementMethod: "Drill assessment",
						MeasurementDate:   common.NewDate(2025, time.February, 17),
					},
				},
				Rating:                 model.RatingPartiallyEffective,
				Comments:               ptr("Weather disruptions slowed roll-out; corrective steps in place."),
				FurtherActionsRequired: true,
				FollowUpActions:        ptr("Add temporary coverage and extend training window."),
			},
			AIMetadata: model.AIMetadata{
				EffectivenessScore: ptr(0.58),
				RiskScore:          ptr(0.76),
				PriorityScore:      ptr(0.81),
			},
			OpenIssues: []model.OpenIssue{
				{ID: "issue-2025-104", Description: "Supervisor training delayed"},
				{ID: "issue-2025-105", Description: "Temporary staffing gap"},
			},
		},
		{
			ID:                  "CA-2025-005",
			Title:               "Improve customer escalation response workflow",
			Type:                model.ActionTypeShortTerm,
			Source:              "Customer Complaint",
			ReferenceID:         ptr("CUST-2025-008"),
			Departments:         []string{"Customer Support", "Operations"},
			Priority:            model.SeverityMedium,
			Impact:              model.SeverityHigh,
			Urgency:             model.SeverityMedium,
			Status:              model.ActionStatusCompleted,
			Owner:               "Priya Patel",
			ReviewTeam:          []string{"Customer Success", "Compliance"},
			DueDate:             common.NewDate(2025, time.January, 25),
			CompletedOn:         common.NewDate(2025, time.January, 22),
			CreatedOn:           time.Date(2024, time.November, 28, 14, 5, 0, 0, time.UTC),
			LastUpdated:         time.Date(2025, time.January, 22, 18, 0, 0, 0, time.UTC),
			Progress:            100,
			ProblemStatement:    "Escalations lacked consistent root cause tracking leading to repeat issues.",
			RootCause:           "Manual routing and absence of feedback loop with operations.",
			ContributingFactors: ptr("Disparate ticketing systems and limited analytics."),
			ImpactAssessment:    "Customer churn risk and compliance with service level obligations impacted.",
			CurrentControls:     ptr("Weekly manual review by escalation manager."),
			Evidence:            []model.EvidenceRef{{Name: "Escalation_Trend_Report.pdf"}},
			ActionPlan:          "<p>Create unified escalation playbook with analytics dashboard and automated routing.</p>",
			ImplementationSteps: []model.ImplementationStep{
				{
					ID:                "CA-2025-005-step-1",
					StepNumber:        1,
					Description:       "Consolidate escalation intake channels into unified queue.",
					ResponsiblePerson: "Priya Patel",
					DueDate:           common.NewDate(2024, time.December, 20),
					Status:            model.StepStatusCompleted,
					CompletionDate:    common.NewDate(2024, time.December, 18),
				},
				{
					ID:                "CA-2025-005-step-2",
					StepNumber:        2,
					Description:       "Implement analytics dashboard for root cause trending.",
					ResponsiblePerson: "Data Analytics",
					DueDate:           common.NewDate(2025, time.January, 10),
					Status:            model.StepStatusCompleted,
					CompletionDate:    common.NewDate(2025, time.January, 8),
				},
				{
					ID:                "CA-2025-005-step-3",
					StepNumber:        3,
					Description:       "Train escalation managers on new workflow and metrics.",
					ResponsiblePerson: "Customer Success",
					DueDate:           common.NewDate(2025, time.January, 20),
					Status:            model.StepStatusCompleted,
					CompletionDate:    common.NewDate(2025, time.January, 19),
				},
			},
			CommunicationLog: []model.CommunicationEntry{
				{
					ID:          "CA-2025-005-log-1",
					Timestamp:   time.Date(2025, time.January, 12, 11, 30, 0, 0, time.UTC),
					UpdateType:  model.UpdateTypeProgress,
					User:        "Priya Patel",
					Description: "Dashboard live; early alerts highlight backlog drivers.",
					Attachments: []model.EvidenceRef{},
				},
			},
			EffectivenessReview: &model.EffectivenessEvaluation{
				EvaluationDueDate: common.NewDate(2025, time.February, 28),
				EvaluationMethod:  "Metrics review",
				SuccessMetrics: []model.SuccessMetric{
					{
						Name:              "Escalation resolution time",
						TargetValue:       "< 24 hrs",
						ActualValue:       ptr("18 hrs"),
						MeasurementMethod: "Support analytics",
						MeasurementDate:   common.NewDate(2025, time.January, 25),
					},
					{
						Name:              "Repeat escalations",
						TargetValue:       "< 5%",
						ActualValue:       ptr("3%"),
						MeasurementMethod: "Operations dashboard",
						MeasurementDate:   common.NewDate(2025, time.January, 24),
					},
				},
				Rating:   model.RatingEffective,
				Comments: ptr("Workflow stabilized and reporting automated."),
			},
			AIMetadata: model.AIMetadata{
				EffectivenessScore: ptr(0.88),
				RiskScore:          ptr(0.42),
				PriorityScore:      ptr(0.6),
			},
			OpenIssues: []model.OpenIssue{},
		},
	}
}
