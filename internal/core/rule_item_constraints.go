package core

import (
	"context"
	"fmt"

	"claimcore/pkg/domain"
)

// NewItemConstraintsRule returns the blocking rule re-validating item
// structural invariants on every commit: quantity at least 1, cost not
// negative. The store enforces the same bounds on write; the rule catches
// snapshots imported from older data.
func NewItemConstraintsRule() domain.Rule {
	return itemConstraintsRule{}
}

type itemConstraintsRule struct{}

func (itemConstraintsRule) Name() string { return "item_constraints" }

func (itemConstraintsRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, item := range view.ListItems() {
		if item.Quantity < 1 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "item_constraints",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("item %d (%s) has quantity %d, minimum is 1", item.ID, item.Name, item.Quantity),
				Entity:   domain.EntityItem,
				EntityID: item.ID,
			})
		}
		if item.Cost < 0 {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "item_constraints",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("item %d (%s) has negative cost %.2f", item.ID, item.Name, item.Cost),
				Entity:   domain.EntityItem,
				EntityID: item.ID,
			})
		}
	}
	return res, nil
}
