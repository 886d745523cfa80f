package core

import (
	"context"
	"math"
	"testing"

	"claimcore/pkg/domain"
)

func TestNameSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"Microwave Oven", "Oven Microwave", 1.0},
		{"Sofa", "Lamp", 0},
		{"Black Leather Sofa", "Leather Sofa", 2.0 / 3.0},
		{"sofa", "SOFA", 1.0},
		{"", "", 0},
		{"Sofa", "", 0},
	}
	for _, tc := range cases {
		got := NameSimilarity(tc.a, tc.b)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("NameSimilarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if sym := NameSimilarity(tc.b, tc.a); sym != got {
			t.Errorf("NameSimilarity not symmetric for %q / %q: %v vs %v", tc.a, tc.b, got, sym)
		}
	}
}

func TestDetectFlagsSimilarItemsAcrossRooms(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	bedroom, _, err := svc.CreateRoom(ctx, Room{ClaimID: g.claim.ID, Name: "Bedroom"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	other, _, err := svc.CreateItem(ctx, Item{RoomID: bedroom.ID, Name: "Sofa Leather", Cost: 900})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	dups, _, err := svc.DetectPotentialDuplicates(ctx, g.item.ID)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(dups) != 1 {
		t.Fatalf("expected 1 flagged pair, got %d", len(dups))
	}
	dup := dups[0]
	if dup.ItemID1 != g.item.ID || dup.ItemID2 != other.ID {
		t.Fatalf("unexpected pair %d/%d", dup.ItemID1, dup.ItemID2)
	}
	if dup.Status != domain.DuplicatePending {
		t.Fatalf("expected pending status, got %q", dup.Status)
	}
	if math.Abs(dup.Confidence-1.0) > 1e-9 {
		t.Fatalf("expected confidence 1.0 for reordered tokens, got %v", dup.Confidence)
	}
}

func TestDetectIgnoresOtherClaims(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	otherClaim, _, err := svc.CreateClaim(ctx, Claim{ClaimantID: g.claimant.ID})
	if err != nil {
		t.Fatalf("create claim: %v", err)
	}
	otherRoom, _, err := svc.CreateRoom(ctx, Room{ClaimID: otherClaim.ID, Name: "Living Room"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, _, err := svc.CreateItem(ctx, Item{RoomID: otherRoom.ID, Name: "Leather Sofa"}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	dups, _, err := svc.DetectPotentialDuplicates(ctx, g.item.ID)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(dups) != 0 {
		t.Fatalf("expected identical item on another claim to be ignored, got %d pairs", len(dups))
	}
}

func TestDetectThresholdIsStrict(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	// 3 shared tokens out of a 5 token union scores exactly 0.6, which must
	// not be flagged.
	if _, _, err := svc.CreateItem(ctx, Item{RoomID: g.room.ID, Name: "antique oak dining table set"}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	target, _, err := svc.CreateItem(ctx, Item{RoomID: g.room.ID, Name: "oak dining table"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	dups, _, err := svc.DetectPotentialDuplicates(ctx, target.ID)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(dups) != 0 {
		t.Fatalf("expected score 0.6 to stay below the strict threshold, got %d pairs", len(dups))
	}
}

func TestDetectSkipsAlreadyFlaggedPairs(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	twin, _, err := svc.CreateItem(ctx, Item{RoomID: g.room.ID, Name: "Leather Sofa"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	first, _, err := svc.DetectPotentialDuplicates(ctx, g.item.ID)
	if err != nil || len(first) != 1 {
		t.Fatalf("expected one pair on first scan, got %v err=%v", first, err)
	}

	// Rescanning from either side of the pair must not create another record,
	// and resolving the pair silences it for good.
	again, _, err := svc.DetectPotentialDuplicates(ctx, twin.ID)
	if err != nil {
		t.Fatalf("detect from other side: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected flagged pair to be skipped, got %d new pairs", len(again))
	}

	if _, _, err := svc.UpdatePotentialDuplicateStatus(ctx, first[0].ID, domain.DuplicateRejected); err != nil {
		t.Fatalf("reject pair: %v", err)
	}
	afterReject, _, err := svc.DetectPotentialDuplicates(ctx, g.item.ID)
	if err != nil {
		t.Fatalf("detect after reject: %v", err)
	}
	if len(afterReject) != 0 {
		t.Fatalf("expected rejected pair to stay silenced, got %d new pairs", len(afterReject))
	}
}

func TestDetectMissingItem(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.DetectPotentialDuplicates(context.Background(), 404)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDetectOrphanedItemFindsNothing(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	if _, _, err := svc.CreateItem(ctx, Item{RoomID: g.room.ID, Name: "Leather Sofa"}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, err := svc.DeleteRoom(ctx, g.room.ID); err != nil {
		t.Fatalf("delete room: %v", err)
	}

	dups, _, err := svc.DetectPotentialDuplicates(ctx, g.item.ID)
	if err != nil {
		t.Fatalf("detect on orphaned item: %v", err)
	}
	if len(dups) != 0 {
		t.Fatalf("expected no pairs for orphaned item, got %d", len(dups))
	}
}

func TestUpdateDuplicateStatusTransitions(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	if _, _, err := svc.CreateItem(ctx, Item{RoomID: g.room.ID, Name: "Leather Sofa"}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	dups, _, err := svc.DetectPotentialDuplicates(ctx, g.item.ID)
	if err != nil || len(dups) != 1 {
		t.Fatalf("expected one pair, got %v err=%v", dups, err)
	}
	id := dups[0].ID

	if _, _, err := svc.UpdatePotentialDuplicateStatus(ctx, id, "maybe"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if _, _, err := svc.UpdatePotentialDuplicateStatus(ctx, id, domain.DuplicatePending); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for pending target, got %v", err)
	}

	confirmed, _, err := svc.UpdatePotentialDuplicateStatus(ctx, id, domain.DuplicateConfirmed)
	if err != nil {
		t.Fatalf("confirm pair: %v", err)
	}
	if confirmed.Status != domain.DuplicateConfirmed {
		t.Fatalf("expected confirmed, got %q", confirmed.Status)
	}

	if _, _, err := svc.UpdatePotentialDuplicateStatus(ctx, id, domain.DuplicateRejected); !domain.IsValidation(err) {
		t.Fatalf("expected validation error re-resolving pair, got %v", err)
	}
}

func TestListPotentialDuplicatesByItemMatchesEitherSide(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	twin, _, err := svc.CreateItem(ctx, Item{RoomID: g.room.ID, Name: "Leather Sofa"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, _, err := svc.DetectPotentialDuplicates(ctx, g.item.ID); err != nil {
		t.Fatalf("detect: %v", err)
	}

	for _, itemID := range []int64{g.item.ID, twin.ID} {
		got, err := svc.ListPotentialDuplicatesByItem(ctx, itemID)
		if err != nil {
			t.Fatalf("list for item %d: %v", itemID, err)
		}
		if len(got) != 1 {
			t.Fatalf("expected pair visible from item %d, got %d", itemID, len(got))
		}
	}
}
