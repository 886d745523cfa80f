package core

import (
	"context"
	"fmt"

	"claimcore/pkg/domain"
)

// NewReferenceIntegrityRule returns the blocking rule that keeps references
// to never-deleted parents (users, claimants, claims) resolvable. Edges that
// may legally dangle after a parent delete — item.room, documentation.item,
// duplicate item pairs — are checked at create time by the service instead.
func NewReferenceIntegrityRule() domain.Rule {
	return referenceIntegrityRule{}
}

type referenceIntegrityRule struct{}

func (referenceIntegrityRule) Name() string { return "reference_integrity" }

func (referenceIntegrityRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	dangling := func(entity domain.EntityType, id int64, field string, parent domain.EntityType, parentID int64) {
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     "reference_integrity",
			Severity: domain.SeverityBlock,
			Message:  fmt.Sprintf("%s %d field %s references missing %s %d", entity, id, field, parent, parentID),
			Entity:   entity,
			EntityID: id,
		})
	}

	for _, claim := range view.ListClaims() {
		if _, ok := view.FindClaimant(claim.ClaimantID); !ok {
			dangling(domain.EntityClaim, claim.ID, "claimant_id", domain.EntityClaimant, claim.ClaimantID)
		}
	}
	for _, room := range view.ListRooms() {
		if _, ok := view.FindClaim(room.ClaimID); !ok {
			dangling(domain.EntityRoom, room.ID, "claim_id", domain.EntityClaim, room.ClaimID)
		}
	}
	for _, doc := range view.ListDocumentations() {
		if _, ok := view.FindUser(doc.UserID); !ok {
			dangling(domain.EntityDocumentation, doc.ID, "user_id", domain.EntityUser, doc.UserID)
		}
	}
	for _, col := range view.ListCollaborators() {
		if _, ok := view.FindClaim(col.ClaimID); !ok {
			dangling(domain.EntityCollaborator, col.ID, "claim_id", domain.EntityClaim, col.ClaimID)
		}
		if _, ok := view.FindUser(col.UserID); !ok {
			dangling(domain.EntityCollaborator, col.ID, "user_id", domain.EntityUser, col.UserID)
		}
	}
	return res, nil
}
