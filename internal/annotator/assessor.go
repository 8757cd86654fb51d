package annotator

import (
	"context"
	"fmt"
	"time"

	"caseapi/internal/model"
)

// RiskLevel grades the assessed litigation risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Assessment is the result of a whole-case analysis pass.
type Assessment struct {
	CaseStrength       int       `json:"case_strength"`
	ViolationType      string    `json:"violation_type"`
	RiskLevel          RiskLevel `json:"risk_level"`
	RecommendedActions []string  `json:"recommended_actions"`
	EstimatedTimeline  string    `json:"estimated_timeline"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// Assessor produces a case assessment from an evidence snapshot. Like
// annotation, the computation itself is a collaborator concern.
type Assessor interface {
	Assess(ctx context.Context, snapshot []model.EvidenceRecord) (Assessment, error)
}

// SimulatedAssessor scores a case from catalog shape alone: breadth of media
// types and weight of completed high-importance evidence. Deterministic for
// a given snapshot.
type SimulatedAssessor struct {
	Delay time.Duration
}

var _ Assessor = (*SimulatedAssessor)(nil)

// Assess implements Assessor.
func (s *SimulatedAssessor) Assess(ctx context.Context, snapshot []model.EvidenceRecord) (Assessment, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Assessment{}, ctx.Err()
		case <-t.C:
		}
	}

	types := map[model.MediaType]struct{}{}
	strength := 30
	for _, rec := range snapshot {
		types[rec.MediaType] = struct{}{}
		if rec.State != model.StateCompleted {
			continue
		}
		strength += 2 + 2*rec.Importance.Rank()
	}
	strength += 5 * len(types)
	if strength > 95 {
		strength = 95
	}

	risk := RiskHigh
	switch {
	case strength >= 70:
		risk = RiskLow
	case strength >= 40:
		risk = RiskMedium
	}

	return Assessment{
		CaseStrength:  strength,
		ViolationType: "Workplace Discrimination",
		RiskLevel:     risk,
		RecommendedActions: []string{
			"Document all incidents with dates",
			"Collect witness statements",
			"File formal complaint with HR",
			"Consult employment attorney",
		},
		EstimatedTimeline: fmt.Sprintf("%d-%d months", 3, 6),
		GeneratedAt:       time.Now().UTC(),
	}, nil
}
