package store

import "github.com/sathesh-kumar-v/comply/internal/model"

// cloneAction deep-copies an action so callers can mutate the result
// without aliasing store state.
func cloneAction(a model.CorrectiveAction) model.CorrectiveAction {
	out := a
	out.ReferenceID = clonePtr(a.ReferenceID)
	out.Departments = cloneSlice(a.Departments)
	out.ReviewTeam = cloneSlice(a.ReviewTeam)
	out.ContributingFactors = clonePtr(a.ContributingFactors)
	out.CurrentControls = clonePtr(a.CurrentControls)
	out.Evidence = cloneSlice(a.Evidence)
	out.OpenIssues = cloneSlice(a.OpenIssues)
	out.AIMetadata = cloneMetadata(a.AIMetadata)

	if a.ImplementationSteps != nil {
		out.ImplementationSteps = make([]model.ImplementationStep, len(a.ImplementationSteps))
		for i, step := range a.ImplementationSteps {
			step.ResourcesRequired = clonePtr(step.ResourcesRequired)
			step.SuccessCriteria = clonePtr(step.SuccessCriteria)
			step.ProgressNotes = clonePtr(step.ProgressNotes)
			step.Issues = clonePtr(step.Issues)
			step.Evidence = cloneSlice(step.Evidence)
			out.ImplementationSteps[i] = step
		}
	}

	if a.CommunicationLog != nil {
		out.CommunicationLog = make([]model.CommunicationEntry, len(a.CommunicationLog))
		for i, entry := range a.CommunicationLog {
			entry.Attachments = cloneSlice(entry.Attachments)
			out.CommunicationLog[i] = entry
		}
	}

	if a.EffectivenessReview != nil {
		review := *a.EffectivenessReview
		review.Comments = clonePtr(review.Comments)
		review.FollowUpActions = clonePtr(review.FollowUpActions)
		if review.SuccessMetrics != nil {
			review.SuccessMetrics = make([]model.SuccessMetric, len(a.EffectivenessReview.SuccessMetrics))
			for i, metric := range a.EffectivenessReview.SuccessMetrics {
				metric.ActualValue = clonePtr(metric.ActualValue)
				review.SuccessMetrics[i] = metric
			}
		}
		out.EffectivenessReview = &review
	}

	return out
}

func cloneMetadata(m model.AIMetadata) model.AIMetadata {
	return model.AIMetadata{
		EffectivenessScore: clonePtr(m.EffectivenessScore),
		RiskScore:          clonePtr(m.RiskScore),
		PriorityScore:      clonePtr(m.PriorityScore),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
