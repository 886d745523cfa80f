package core

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"claimcore/internal/infra/persistence/memory"
	"claimcore/pkg/domain"
)

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	return NewService(memory.NewStore(NewDefaultRulesEngine()), opts...)
}

type seededGraph struct {
	user     User
	claimant Claimant
	claim    Claim
	room     Room
	item     Item
}

func seedGraph(t *testing.T, svc *Service) seededGraph {
	t.Helper()
	ctx := context.Background()
	user, _, err := svc.RegisterUser(ctx, User{Username: "adjuster", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	claimant, _, err := svc.CreateClaimant(ctx, Claimant{FullName: "Jordan Ruiz", Email: "jordan@example.com"})
	if err != nil {
		t.Fatalf("create claimant: %v", err)
	}
	claim, _, err := svc.CreateClaim(ctx, Claim{ClaimantID: claimant.ID})
	if err != nil {
		t.Fatalf("create claim: %v", err)
	}
	room, _, err := svc.CreateRoom(ctx, Room{ClaimID: claim.ID, Name: "Living Room"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	item, _, err := svc.CreateItem(ctx, Item{RoomID: room.ID, Name: "Leather Sofa", Cost: 1200, Quantity: 1})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return seededGraph{user: user, claimant: claimant, claim: claim, room: room, item: item}
}

func TestRegisterUserRequiresCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.RegisterUser(ctx, User{Password: "pw"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty username, got %v", err)
	}
	if _, _, err := svc.RegisterUser(ctx, User{Username: "nopass"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty password, got %v", err)
	}
}

func TestRegisterUserRejectsDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.RegisterUser(ctx, User{Username: "taken", Password: "pw"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.RegisterUser(ctx, User{Username: "taken", Password: "pw2"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for duplicate username, got %v", err)
	}
}

func TestCreateClaimRequiresExistingClaimant(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.CreateClaim(context.Background(), Claim{ClaimantID: 404})
	if !domain.IsReference(err) {
		t.Fatalf("expected reference error, got %v", err)
	}
}

func TestCreateClaimDefaultsToDraft(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	if g.claim.Status != domain.ClaimStatusDraft {
		t.Fatalf("expected draft status, got %q", g.claim.Status)
	}
	if g.claimant.Language != "en" || g.claimant.Currency != "USD" {
		t.Fatalf("expected claimant defaults en/USD, got %q/%q", g.claimant.Language, g.claimant.Currency)
	}
}

func TestCreateClaimRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	_, _, err := svc.CreateClaim(context.Background(), Claim{ClaimantID: g.claimant.ID, Status: "closed"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestCreateRoomRequiresExistingClaim(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.CreateRoom(context.Background(), Room{ClaimID: 99, Name: "Garage"})
	if !domain.IsReference(err) {
		t.Fatalf("expected reference error, got %v", err)
	}
}

func TestCreateItemRequiresExistingRoom(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.CreateItem(context.Background(), Item{RoomID: 7, Name: "Lamp"})
	if !domain.IsReference(err) {
		t.Fatalf("expected reference error, got %v", err)
	}
}

func TestCreateItemDefaultsQuantityAndSlices(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	item, _, err := svc.CreateItem(context.Background(), Item{RoomID: g.room.ID, Name: "Table Lamp", Cost: 45})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("expected quantity default 1, got %d", item.Quantity)
	}
	if item.ImageURLs == nil || item.DocumentURLs == nil || item.Tags == nil {
		t.Fatalf("expected empty slices, got %v %v %v", item.ImageURLs, item.DocumentURLs, item.Tags)
	}
}

func TestCreateItemRejectsBadBounds(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	if _, _, err := svc.CreateItem(ctx, Item{RoomID: g.room.ID, Name: "Chair", Quantity: -2}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for negative quantity, got %v", err)
	}
	if _, _, err := svc.CreateItem(ctx, Item{RoomID: g.room.ID, Name: "Chair", Cost: -10}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for negative cost, got %v", err)
	}
}

func TestUpdateItemMergesPatch(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	cost := 950.0
	brand := "Natuzzi"
	updated, _, err := svc.UpdateItem(context.Background(), g.item.ID, domain.ItemPatch{Cost: &cost, Brand: &brand})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Cost != 950 {
		t.Fatalf("expected cost 950, got %v", updated.Cost)
	}
	if updated.Name != g.item.Name || updated.Quantity != g.item.Quantity {
		t.Fatalf("patch clobbered unset fields: %+v", updated)
	}
	if updated.Brand == nil || *updated.Brand != "Natuzzi" {
		t.Fatalf("expected brand set, got %v", updated.Brand)
	}
	if !updated.UpdatedAt.After(g.item.UpdatedAt) && !updated.UpdatedAt.Equal(g.item.UpdatedAt) {
		t.Fatalf("expected UpdatedAt stamped, got %v", updated.UpdatedAt)
	}
}

func TestDeleteRoomLeavesItemsInPlace(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	if _, err := svc.DeleteRoom(ctx, g.room.ID); err != nil {
		t.Fatalf("delete room: %v", err)
	}
	if _, err := svc.GetRoom(ctx, g.room.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected room gone, got %v", err)
	}
	item, err := svc.GetItem(ctx, g.item.ID)
	if err != nil {
		t.Fatalf("expected orphaned item to survive, got %v", err)
	}
	if item.RoomID != g.room.ID {
		t.Fatalf("orphaned item lost its room reference: %+v", item)
	}
}

func TestDeleteItemLeavesDocumentation(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	doc, _, err := svc.CreateDocumentation(ctx, Documentation{
		ItemID:       g.item.ID,
		UserID:       g.user.ID,
		DocumentType: domain.DocumentTypeReceipt,
		SourceType:   domain.SourceTypeManualUpload,
		Title:        "Purchase receipt",
		FileURL:      "claims/1/items/1/docs/receipt.pdf",
	})
	if err != nil {
		t.Fatalf("create documentation: %v", err)
	}
	if _, err := svc.DeleteItem(ctx, g.item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if _, err := svc.GetDocumentation(ctx, doc.ID); err != nil {
		t.Fatalf("expected documentation to survive item delete, got %v", err)
	}
}

func TestCreateDocumentationChecksReferencesAndEnums(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()
	base := Documentation{
		ItemID:       g.item.ID,
		UserID:       g.user.ID,
		DocumentType: domain.DocumentTypePhoto,
		SourceType:   domain.SourceTypeEmail,
		Title:        "Sofa photo",
		FileURL:      "https://example.com/sofa.jpg",
	}

	missingItem := base
	missingItem.ItemID = 404
	if _, _, err := svc.CreateDocumentation(ctx, missingItem); !domain.IsReference(err) {
		t.Fatalf("expected reference error for missing item, got %v", err)
	}

	missingUser := base
	missingUser.UserID = 404
	if _, _, err := svc.CreateDocumentation(ctx, missingUser); !domain.IsReference(err) {
		t.Fatalf("expected reference error for missing user, got %v", err)
	}

	badType := base
	badType.DocumentType = "blueprint"
	if _, _, err := svc.CreateDocumentation(ctx, badType); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown document type, got %v", err)
	}

	created, _, err := svc.CreateDocumentation(ctx, base)
	if err != nil {
		t.Fatalf("create documentation: %v", err)
	}
	if created.Metadata == nil {
		t.Fatalf("expected metadata default {}, got nil")
	}
}

func TestCollaboratorLifecycle(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	col, _, err := svc.CreateCollaborator(ctx, Collaborator{ClaimID: g.claim.ID, UserID: g.user.ID, Email: "adjuster@example.com"})
	if err != nil {
		t.Fatalf("create collaborator: %v", err)
	}
	if col.Role != domain.RoleViewer || col.InviteStatus != domain.InvitePending {
		t.Fatalf("expected viewer/pending defaults, got %q/%q", col.Role, col.InviteStatus)
	}

	role := domain.RoleEditor
	accepted := domain.InviteAccepted
	updated, _, err := svc.UpdateCollaborator(ctx, col.ID, domain.CollaboratorPatch{Role: &role, InviteStatus: &accepted})
	if err != nil {
		t.Fatalf("update collaborator: %v", err)
	}
	if updated.Role != domain.RoleEditor || updated.InviteStatus != domain.InviteAccepted {
		t.Fatalf("unexpected collaborator after update: %+v", updated)
	}

	byUser, err := svc.ListCollaboratorsByUser(ctx, g.user.ID)
	if err != nil || len(byUser) != 1 {
		t.Fatalf("expected one collaboration for user, got %v err=%v", byUser, err)
	}

	if _, err := svc.DeleteCollaborator(ctx, col.ID); err != nil {
		t.Fatalf("delete collaborator: %v", err)
	}
	byClaim, err := svc.ListCollaboratorsByClaim(ctx, g.claim.ID)
	if err != nil || len(byClaim) != 0 {
		t.Fatalf("expected no collaborators after delete, got %v err=%v", byClaim, err)
	}
}

func TestCreateCollaboratorRejectsUnknownRole(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	_, _, err := svc.CreateCollaborator(context.Background(), Collaborator{ClaimID: g.claim.ID, UserID: g.user.ID, Role: "admin"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}
}

func TestTouchUserLastLoginUsesClock(t *testing.T) {
	fixed := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	svc := newTestService(t, WithClock(ClockFunc(func() time.Time { return fixed })))
	g := seedGraph(t, svc)

	updated, _, err := svc.TouchUserLastLogin(context.Background(), g.user.ID)
	if err != nil {
		t.Fatalf("touch last login: %v", err)
	}
	if updated.LastLogin == nil || !updated.LastLogin.Equal(fixed) {
		t.Fatalf("expected last login %v, got %v", fixed, updated.LastLogin)
	}
}

func TestUpdateUserCannotClearPassword(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	empty := ""
	_, _, err := svc.UpdateUser(context.Background(), g.user.ID, domain.UserPatch{Password: &empty})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty password, got %v", err)
	}
}

func TestUpdateMissingIDReturnsNotFound(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	cases := []struct {
		name   string
		update func() error
	}{
		{"user", func() error {
			email := "new@example.com"
			_, _, err := svc.UpdateUser(ctx, 404, domain.UserPatch{Email: &email})
			return err
		}},
		{"claimant", func() error {
			name := "Nobody"
			_, _, err := svc.UpdateClaimant(ctx, 404, domain.ClaimantPatch{FullName: &name})
			return err
		}},
		{"claim", func() error {
			total := 1.0
			_, _, err := svc.UpdateClaim(ctx, 404, domain.ClaimPatch{TotalValue: &total})
			return err
		}},
		{"room", func() error {
			name := "Nowhere"
			_, _, err := svc.UpdateRoom(ctx, 404, domain.RoomPatch{Name: &name})
			return err
		}},
		{"item", func() error {
			cost := 1.0
			_, _, err := svc.UpdateItem(ctx, 404, domain.ItemPatch{Cost: &cost})
			return err
		}},
		{"documentation", func() error {
			title := "Ghost"
			_, _, err := svc.UpdateDocumentation(ctx, 404, domain.DocumentationPatch{Title: &title})
			return err
		}},
		{"collaborator", func() error {
			email := "ghost@example.com"
			_, _, err := svc.UpdateCollaborator(ctx, 404, domain.CollaboratorPatch{Email: &email})
			return err
		}},
		{"potential_duplicate", func() error {
			_, _, err := svc.UpdatePotentialDuplicateStatus(ctx, 404, domain.DuplicateConfirmed)
			return err
		}},
	}
	for _, tc := range cases {
		if err := tc.update(); !domain.IsNotFound(err) {
			t.Errorf("update missing %s: expected not found, got %v", tc.name, err)
		}
	}

	// Failed updates must leave existing records untouched.
	item, err := svc.GetItem(ctx, g.item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if !reflect.DeepEqual(item, g.item) {
		t.Fatalf("failed updates mutated state: %+v != %+v", item, g.item)
	}
	user, err := svc.GetUser(ctx, g.user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !reflect.DeepEqual(user, g.user) {
		t.Fatalf("failed updates mutated user: %+v != %+v", user, g.user)
	}
}

func TestGetUserByUsername(t *testing.T) {
	svc := newTestService(t)
	g := seedGraph(t, svc)
	ctx := context.Background()

	found, err := svc.GetUserByUsername(ctx, g.user.Username)
	if err != nil {
		t.Fatalf("lookup by username: %v", err)
	}
	if found.ID != g.user.ID {
		t.Fatalf("expected user %d, got %d", g.user.ID, found.ID)
	}
	_, err = svc.GetUserByUsername(ctx, "ghost")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	// The miss names the username, not a zero id.
	if !strings.Contains(err.Error(), `"ghost"`) {
		t.Fatalf("expected username in error, got %q", err.Error())
	}
}
