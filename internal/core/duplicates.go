package core

import (
	"context"
	"fmt"
	"strings"

	"claimcore/pkg/domain"
)

// DuplicateThreshold is the similarity a pair must exceed (strictly) before
// it is flagged for review.
const DuplicateThreshold = 0.6

// NameSimilarity scores two item names by Jaccard word overlap: the names are
// lower-cased and split on whitespace, and the score is the size of the token
// intersection over the size of the token union. Two empty names score 0.
func NameSimilarity(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 && len(tokensB) == 0 {
		return 0
	}
	union := make(map[string]struct{}, len(tokensA)+len(tokensB))
	for t := range tokensA {
		union[t] = struct{}{}
	}
	for t := range tokensB {
		union[t] = struct{}{}
	}
	intersection := 0
	for t := range tokensA {
		if _, ok := tokensB[t]; ok {
			intersection++
		}
	}
	return float64(intersection) / float64(len(union))
}

func tokenize(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, field := range strings.Fields(strings.ToLower(s)) {
		out[field] = struct{}{}
	}
	return out
}

// pairKey identifies an unordered item pair.
type pairKey struct {
	lo, hi int64
}

func makePairKey(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// DetectPotentialDuplicates scans the claim containing the given item for
// other items whose names score above the threshold, and persists one pending
// record per newly flagged pair. A pair that already has a record in any
// review status is never re-flagged, so rejecting a pair silences it for good.
// The scan itself runs against a read snapshot; records are written in a
// follow-up transaction that re-checks the pair guard.
func (s *Service) DetectPotentialDuplicates(ctx context.Context, itemID int64) ([]PotentialDuplicate, Result, error) {
	ctx, finish := s.instrument(ctx, "detect_duplicates")

	type candidate struct {
		otherID    int64
		confidence float64
	}
	var candidates []candidate
	err := s.store.View(ctx, func(view RuleView) error {
		target, ok := view.FindItem(itemID)
		if !ok {
			return domain.NotFoundError{Entity: EntityItem, ID: itemID}
		}
		room, ok := view.FindRoom(target.RoomID)
		if !ok {
			// Orphaned item: its room was deleted, so there is no claim to scan.
			return nil
		}
		claimRooms := make(map[int64]struct{})
		for _, r := range view.ListRooms() {
			if r.ClaimID == room.ClaimID {
				claimRooms[r.ID] = struct{}{}
			}
		}
		seen := make(map[pairKey]struct{})
		for _, dup := range view.ListPotentialDuplicates() {
			seen[makePairKey(dup.ItemID1, dup.ItemID2)] = struct{}{}
		}
		for _, other := range view.ListItems() {
			if other.ID == itemID {
				continue
			}
			if _, ok := claimRooms[other.RoomID]; !ok {
				continue
			}
			if _, flagged := seen[makePairKey(itemID, other.ID)]; flagged {
				continue
			}
			score := NameSimilarity(target.Name, other.Name)
			if score > DuplicateThreshold {
				candidates = append(candidates, candidate{otherID: other.ID, confidence: score})
			}
		}
		return nil
	})
	if err != nil {
		finish(itemID, err)
		return nil, Result{}, err
	}
	if len(candidates) == 0 {
		finish(itemID, nil)
		return nil, Result{}, nil
	}

	var created []PotentialDuplicate
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		view := tx.Snapshot()
		seen := make(map[pairKey]struct{})
		for _, dup := range view.ListPotentialDuplicates() {
			seen[makePairKey(dup.ItemID1, dup.ItemID2)] = struct{}{}
		}
		for _, cand := range candidates {
			if _, flagged := seen[makePairKey(itemID, cand.otherID)]; flagged {
				continue
			}
			dup, err := tx.CreatePotentialDuplicate(PotentialDuplicate{
				ItemID1:    itemID,
				ItemID2:    cand.otherID,
				Confidence: cand.confidence,
			})
			if err != nil {
				return err
			}
			created = append(created, dup)
		}
		return nil
	})
	finish(itemID, err)
	if err != nil {
		return nil, res, err
	}
	return created, res, nil
}

// UpdatePotentialDuplicateStatus resolves a flagged pair. Only pending pairs
// may transition, and only to confirmed or rejected.
func (s *Service) UpdatePotentialDuplicateStatus(ctx context.Context, id int64, status DuplicateStatus) (PotentialDuplicate, Result, error) {
	ctx, finish := s.instrument(ctx, "update_duplicate_status")
	var updated PotentialDuplicate
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdatePotentialDuplicate(id, func(d *PotentialDuplicate) error {
			if !validDuplicateStatus(status) {
				return domain.ValidationError{Entity: EntityPotentialDuplicate, Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
			}
			if status == domain.DuplicatePending {
				return domain.ValidationError{Entity: EntityPotentialDuplicate, Field: "status", Message: "cannot transition back to pending"}
			}
			if d.Status != domain.DuplicatePending {
				return domain.ValidationError{Entity: EntityPotentialDuplicate, Field: "status", Message: fmt.Sprintf("pair already resolved as %q", d.Status)}
			}
			d.Status = status
			return nil
		})
		return err
	})
	finish(id, err)
	return updated, res, err
}

// GetPotentialDuplicate returns the flagged pair with the given id.
func (s *Service) GetPotentialDuplicate(ctx context.Context, id int64) (PotentialDuplicate, error) {
	return s.store.GetPotentialDuplicate(ctx, id)
}

// ListPotentialDuplicatesByItem returns every flagged pair touching an item.
func (s *Service) ListPotentialDuplicatesByItem(ctx context.Context, itemID int64) ([]PotentialDuplicate, error) {
	return s.store.ListPotentialDuplicatesByItem(ctx, itemID)
}
