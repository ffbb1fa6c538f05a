package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/sathesh-kumar-v/comply/common"
)

// ErrMissingID is returned by BuildSnapshots when a record has no usable id.
var ErrMissingID = errors.New("action record missing id")

// ActionSnapshot is the typed, point-in-time view of a corrective action
// that all scoring operates on. Parsing from loosely-shaped records
// happens once, in BuildSnapshots; the engine itself never inspects raw
// maps.
type ActionSnapshot struct {
	ID          string
	Title       string
	Priority    string
	Impact      string
	Urgency     string
	Status      string
	Progress    float64 // fraction of plan completed, 0..1
	DueDate     common.Date
	CompletedOn common.Date
	Departments []string
	LastUpdated *time.Time

	// Engine-derived fractions persisted from a previous assessment.
	// Nil when the action has never been scored.
	EffectivenessScore *float64
	RiskScore          *float64

	OpenIssues int
}

// RawAction is a loosely-shaped action record, as stored registries and
// JSON documents produce it. Dates may be common.Date, time.Time or
// ISO-8601 strings.
type RawAction map[string]any

// BuildSnapshots parses raw records into snapshots. A record without an
// id is a hard error: scores keyed to no action are unusable, so the
// whole batch is rejected rather than silently skipped.
//
// Field defaults: title ""; priority, urgency "Medium"; impact falls
// back to the record's priority; status "Open"; progress is a 0-100
// percentage scaled to a fraction.
func BuildSnapshots(rawActions []RawAction) ([]ActionSnapshot, error) {
	snapshots := make([]ActionSnapshot, 0, len(rawActions))
	for i, item := range rawActions {
		id := rawString(item, "id", "")
		if id == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrMissingID)
		}

		priority := rawString(item, "priority", "Medium")
		meta, _ := item["ai_metadata"].(map[string]any)

		snapshots = append(snapshots, ActionSnapshot{
			ID:                 id,
			Title:              rawString(item, "title", ""),
			Priority:           priority,
			Impact:             rawString(item, "impact", priority),
			Urgency:            rawString(item, "urgency", "Medium"),
			Status:             rawString(item, "status", "Open"),
			Progress:           rawFloat(item, "progress") / 100,
			DueDate:            rawDate(item, "due_date"),
			CompletedOn:        rawDate(item, "completed_on"),
			Departments:        rawStrings(item, "departments"),
			LastUpdated:        rawTime(item, "last_updated"),
			EffectivenessScore: metaFloat(meta, "effectiveness_score"),
			RiskScore:          metaFloat(meta, "risk_score"),
			OpenIssues:         rawLen(item, "open_issues"),
		})
	}
	return snapshots, nil
}

func rawString(m RawAction, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func rawFloat(m RawAction, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func rawDate(m RawAction, key string) common.Date {
	switch v := m[key].(type) {
	case common.Date:
		return v
	case time.Time:
		return common.DateOf(v)
	case string:
		if d, err := common.ParseDate(v); err == nil {
			return d
		}
	}
	return common.Date{}
}

func rawTime(m RawAction, key string) *time.Time {
	switch v := m[key].(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case *time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return &t
		}
	}
	return nil
}

func rawStrings(m RawAction, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func rawLen(m RawAction, key string) int {
	switch v := m[key].(type) {
	case []any:
		return len(v)
	case []map[string]any:
		return len(v)
	default:
		return 0
	}
}

func metaFloat(meta map[string]any, key string) *float64 {
	if meta == nil {
		return nil
	}
	switch v := meta[key].(type) {
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	default:
		return nil
	}
}
