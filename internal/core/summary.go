package core

import (
	"context"

	"claimcore/pkg/domain"
)

// GetClaimSummary assembles the full claim view: the claim, its claimant, its
// rooms with their items, and a derived total. The derived total is the sum
// of cost times quantity over every item and deliberately ignores the stored
// TotalValue, which is advisory input from the claimant.
func (s *Service) GetClaimSummary(ctx context.Context, claimID int64) (ClaimSummary, error) {
	var summary ClaimSummary
	err := s.store.View(ctx, func(view RuleView) error {
		claim, ok := view.FindClaim(claimID)
		if !ok {
			return domain.NotFoundError{Entity: EntityClaim, ID: claimID}
		}
		claimant, ok := view.FindClaimant(claim.ClaimantID)
		if !ok {
			return domain.NotFoundError{Entity: EntityClaimant, ID: claim.ClaimantID}
		}
		summary = ClaimSummary{Claim: claim, Claimant: claimant, Rooms: []RoomSummary{}}
		itemsByRoom := make(map[int64][]Item)
		for _, item := range view.ListItems() {
			itemsByRoom[item.RoomID] = append(itemsByRoom[item.RoomID], item)
		}
		for _, room := range view.ListRooms() {
			if room.ClaimID != claimID {
				continue
			}
			items := itemsByRoom[room.ID]
			if items == nil {
				items = []Item{}
			}
			for _, item := range items {
				summary.DerivedTotal += item.Cost * float64(item.Quantity)
			}
			summary.Rooms = append(summary.Rooms, RoomSummary{Room: room, Items: items})
		}
		return nil
	})
	if err != nil {
		return ClaimSummary{}, err
	}
	return summary, nil
}
