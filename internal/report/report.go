// Package report computes derived metrics over evidence snapshots.
package report

import "caseapi/internal/model"

// External carries scalar scores supplied by collaborators outside the
// catalog. Aggregate passes them through unmodified.
type External struct {
	CaseStrength    int `json:"case_strength"`
	DaysActive      int `json:"days_active"`
	MilestonesDone  int `json:"milestones_done"`
	MilestonesTotal int `json:"milestones_total"`
	PriorityActions int `json:"priority_actions"`
}

// Metrics is the derived view consumed by the case metrics panel. Count maps
// always carry every enum key so the display never has to special-case a
// missing type.
type Metrics struct {
	Total       int                          `json:"total"`
	ByMediaType map[model.MediaType]int      `json:"by_media_type"`
	ByState     map[model.LifecycleState]int `json:"by_state"`
	External    External                     `json:"external"`
}

// Aggregate computes metrics from an immutable snapshot. Pure function: no
// caching, recomputed on every call.
func Aggregate(snapshot []model.EvidenceRecord, ext External) Metrics {
	m := Metrics{
		Total:       len(snapshot),
		ByMediaType: make(map[model.MediaType]int, 4),
		ByState:     make(map[model.LifecycleState]int, 4),
		External:    ext,
	}
	for _, mt := range model.MediaTypes() {
		m.ByMediaType[mt] = 0
	}
	for _, st := range model.LifecycleStates() {
		m.ByState[st] = 0
	}
	for _, rec := range snapshot {
		m.ByMediaType[rec.MediaType]++
		m.ByState[rec.State]++
	}
	return m
}
