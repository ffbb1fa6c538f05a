// Package engine implements the corrective-action intelligence engine:
// deterministic, rule-based scoring and forecasting over action
// snapshots. Every operation is a pure function of its inputs, the
// engine's weight tables and its reference date; there is no I/O, no
// randomness and no model inference anywhere in this package.
package engine

import (
	"math"

	"github.com/sathesh-kumar-v/comply/common"
)

// Engine scores corrective actions against a fixed reference date.
// Construct one per request so every row in a response shares the same
// notion of "today".
type Engine struct {
	referenceDate common.Date
	weights       Weights
}

// New returns an engine with the default weight tables.
func New(referenceDate common.Date) *Engine {
	return NewWithWeights(referenceDate, DefaultWeights())
}

// NewWithWeights returns an engine using the supplied weight tables.
func NewWithWeights(referenceDate common.Date, w Weights) *Engine {
	return &Engine{referenceDate: referenceDate, weights: w}
}

// normalizeProgress resolves the working progress fraction for an
// action. Reported progress wins when positive; otherwise the status
// table supplies an assumed value (unknown statuses assume 0).
func (e *Engine) normalizeProgress(progress float64, status string) float64 {
	if progress <= 0 {
		return e.weights.StatusProgress[status]
	}
	return clamp(progress, 0, 1)
}

// overdueDays counts whole days past the due date, never negative.
// Actions without a due date are never overdue.
func (e *Engine) overdueDays(s ActionSnapshot) int {
	if s.DueDate.IsZero() {
		return 0
	}
	delta := s.DueDate.DaysUntil(e.referenceDate)
	if delta < 0 {
		return 0
	}
	return delta
}

func (e *Engine) confidenceForScore(score float64) string {
	if score >= e.weights.ConfidenceHigh {
		return "High"
	}
	if score >= e.weights.ConfidenceMedium {
		return "Medium"
	}
	return "Low"
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// round1 rounds to one decimal place, ties to the even digit.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
