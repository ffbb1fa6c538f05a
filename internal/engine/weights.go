package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights holds the scoring tables the engine runs on. Values are
// immutable once an Engine is constructed; overrides come in through
// NewWithWeights or a YAML file loaded at startup.
//
// All table values are tunable, source of truth unknown.
type Weights struct {
	// Priority maps the four severity levels to scoring weight. The same
	// table is used for both priority and impact components.
	Priority map[string]float64 `yaml:"priority"`

	// Urgency maps the four severity levels to urgency weight.
	Urgency map[string]float64 `yaml:"urgency"`

	// StatusProgress supplies assumed progress fractions when an action
	// reports no progress of its own.
	StatusProgress map[string]float64 `yaml:"status_progress"`

	// PriorityFallback is used when a priority or impact level is not in
	// the Priority table (effectiveness scoring and ranking).
	PriorityFallback float64 `yaml:"priority_fallback"`

	// UrgencyFallback is used when an urgency level is not in the
	// Urgency table.
	UrgencyFallback float64 `yaml:"urgency_fallback"`

	// AnalyzerRiskFallback is the risk signal the deep analyzer assumes
	// for priority levels missing from the Priority table. It is
	// deliberately not the same value as PriorityFallback.
	AnalyzerRiskFallback float64 `yaml:"analyzer_risk_fallback"`

	// ConfidenceHigh and ConfidenceMedium are the lower bounds of the
	// High and Medium confidence bands for effectiveness scores.
	ConfidenceHigh   float64 `yaml:"confidence_high"`
	ConfidenceMedium float64 `yaml:"confidence_medium"`
}

// DefaultWeights returns the canonical scoring tables.
func DefaultWeights() Weights {
	return Weights{
		Priority: map[string]float64{
			"Critical": 1.0,
			"High":     0.85,
			"Medium":   0.55,
			"Low":      0.3,
		},
		Urgency: map[string]float64{
			"Critical": 1.0,
			"High":     0.8,
			"Medium":   0.55,
			"Low":      0.35,
		},
		StatusProgress: map[string]float64{
			"Open":        0.1,
			"In Progress": 0.45,
			"Completed":   1.0,
			"Closed":      1.0,
			"Cancelled":   0.0,
		},
		PriorityFallback:     0.4,
		UrgencyFallback:      0.45,
		AnalyzerRiskFallback: 0.5,
		ConfidenceHigh:       0.65,
		ConfidenceMedium:     0.4,
	}
}

// LoadWeightsFile reads a YAML override file on top of the defaults.
// Only keys present in the file are replaced; everything else keeps its
// default value.
func LoadWeightsFile(path string) (Weights, error) {
	w := DefaultWeights()

	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("reading weights file: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, fmt.Errorf("parsing weights file %s: %w", path, err)
	}

	return w, nil
}

func weightOr(table map[string]float64, key string, fallback float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}
