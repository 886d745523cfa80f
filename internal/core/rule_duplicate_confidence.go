package core

import (
	"context"
	"fmt"

	"claimcore/pkg/domain"
)

// NewDuplicateConfidenceRule returns the blocking rule keeping every flagged
// pair's confidence within [0,1] and its two sides distinct.
func NewDuplicateConfidenceRule() domain.Rule {
	return duplicateConfidenceRule{}
}

type duplicateConfidenceRule struct{}

func (duplicateConfidenceRule) Name() string { return "duplicate_confidence" }

func (duplicateConfidenceRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, dup := range view.ListPotentialDuplicates() {
		if dup.Confidence < 0 || dup.Confidence > 1 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "duplicate_confidence",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("duplicate %d confidence %.3f outside [0,1]", dup.ID, dup.Confidence),
				Entity:   domain.EntityPotentialDuplicate,
				EntityID: dup.ID,
			})
		}
		if dup.ItemID1 == dup.ItemID2 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "duplicate_confidence",
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("duplicate %d pairs item %d with itself", dup.ID, dup.ItemID1),
				Entity:   domain.EntityPotentialDuplicate,
				EntityID: dup.ID,
			})
		}
	}
	return res, nil
}
