package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"claimcore/pkg/domain"
)

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.db")

	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	var claim domain.Claim
	var item domain.Item
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		claimant, err := tx.CreateClaimant(domain.Claimant{FullName: "Ines Duarte"})
		if err != nil {
			return err
		}
		claim, err = tx.CreateClaim(domain.Claim{ClaimantID: claimant.ID})
		if err != nil {
			return err
		}
		room, err := tx.CreateRoom(domain.Room{ClaimID: claim.ID, Name: "Garage"})
		if err != nil {
			return err
		}
		item, err = tx.CreateItem(domain.Item{RoomID: room.ID, Name: "Drill", Cost: 120})
		if err != nil {
			return err
		}
		return tx.DeleteItem(item.ID)
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.GetClaim(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("claim lost across reopen: %v", err)
	}
	if got.Status != domain.ClaimStatusDraft {
		t.Fatalf("unexpected claim after reload: %+v", got)
	}

	var next domain.Item
	rooms, err := reopened.ListRoomsByClaim(context.Background(), claim.ID)
	if err != nil || len(rooms) != 1 {
		t.Fatalf("rooms lost across reopen: %v %+v", err, rooms)
	}
	_, err = reopened.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		next, err = tx.CreateItem(domain.Item{RoomID: rooms[0].ID, Name: "Saw", Cost: 45})
		return err
	})
	if err != nil {
		t.Fatalf("create after reopen: %v", err)
	}
	if next.ID <= item.ID {
		t.Fatalf("reopened store reissued id %d (previous high %d)", next.ID, item.ID)
	}
}

func TestFailedTransactionDoesNotSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.db")
	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.CreateClaimant(domain.Claimant{FullName: "Ghost"}); err != nil {
			return err
		}
		return context.Canceled
	})
	if err == nil {
		t.Fatal("expected error from fn")
	}

	var count int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&count); err != nil {
		t.Fatalf("count state rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("aborted transaction snapshotted state, rows=%d", count)
	}
}
