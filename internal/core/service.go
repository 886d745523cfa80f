// Package core exposes the transactional claim service: CRUD for the claim
// graph, duplicate detection, claim summaries, and evidence file attachment.
package core

import (
	"context"
	"fmt"
	"time"

	"claimcore/internal/blob"
	"claimcore/pkg/domain"
)

// Service exposes higher-level transactional operations over a persistent
// store. Parent references are verified inside the same transaction as the
// write, so a concurrent delete cannot slip between check and commit.
type Service struct {
	store   PersistentStore
	blobs   blob.Store
	logger  Logger
	audit   AuditRecorder
	metrics MetricsRecorder
	tracer  Tracer
	clock   Clock
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		logger:  noopLogger{},
		audit:   noopAuditRecorder{},
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
		clock:   ClockFunc(func() time.Time { return time.Now().UTC() }),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithBlobStore installs the evidence file backend used by
// AttachDocumentationFile.
func WithBlobStore(store blob.Store) ServiceOption {
	return func(s *Service) {
		if store != nil {
			s.blobs = store
		}
	}
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore { return s.store }

// instrument wraps an operation with tracing, metrics, and auditing. The
// returned finish func takes the id of the touched entity (0 when unknown)
// and the operation error.
func (s *Service) instrument(ctx context.Context, operation string) (context.Context, func(entityID int64, err error)) {
	started := s.clock.Now()
	ctx, span := s.tracer.Start(ctx, operation)
	return ctx, func(entityID int64, err error) {
		duration := s.clock.Now().Sub(started)
		span.End(err)
		s.metrics.Observe(ctx, operation, err == nil, duration)
		meta, ok := operationCatalog[operation]
		if !ok {
			return
		}
		entry := AuditEntry{
			Operation: operation,
			Entity:    meta.Entity,
			Action:    meta.Action,
			EntityID:  entityID,
			Status:    AuditStatusSuccess,
			Duration:  duration,
			Timestamp: s.clock.Now(),
		}
		if err != nil {
			entry.Status = AuditStatusError
			entry.Error = err.Error()
			s.logger.Warn("operation failed", "operation", operation, "error", err)
		}
		s.audit.Record(ctx, entry)
	}
}

// requireRef returns a typed reference error when the lookup failed.
func requireRef(ok bool, entity EntityType, field string, parent EntityType, id int64) error {
	if ok {
		return nil
	}
	return domain.ReferenceError{Entity: entity, Field: field, Parent: parent, ID: id}
}

// --- users ---

// RegisterUser creates an account. Username uniqueness is enforced by the store.
func (s *Service) RegisterUser(ctx context.Context, user User) (User, Result, error) {
	ctx, finish := s.instrument(ctx, "create_user")
	var created User
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		if user.Username == "" {
			return domain.ValidationError{Entity: EntityUser, Field: "username", Message: "must not be empty"}
		}
		if user.Password == "" {
			return domain.ValidationError{Entity: EntityUser, Field: "password", Message: "must not be empty"}
		}
		var err error
		created, err = tx.CreateUser(user)
		return err
	})
	finish(created.ID, err)
	return created, res, err
}

// UpdateUser applies a partial profile update.
func (s *Service) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (User, Result, error) {
	ctx, finish := s.instrument(ctx, "update_user")
	var updated User
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateUser(id, func(u *User) error {
			patch.Apply(u)
			if u.Password == "" {
				return domain.ValidationError{Entity: EntityUser, Field: "password", Message: "must not be empty"}
			}
			return nil
		})
		return err
	})
	finish(id, err)
	return updated, res, err
}

// TouchUserLastLogin stamps the account's last login time.
func (s *Service) TouchUserLastLogin(ctx context.Context, id int64) (User, Result, error) {
	ctx, finish := s.instrument(ctx, "touch_user_last_login")
	now := s.clock.Now()
	var updated User
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateUser(id, func(u *User) error {
			u.LastLogin = &now
			return nil
		})
		return err
	})
	finish(id, err)
	return updated, res, err
}

// GetUser returns the user with the given id.
func (s *Service) GetUser(ctx context.Context, id int64) (User, error) {
	return s.store.GetUser(ctx, id)
}

// GetUserByUsername returns the user with the given username.
func (s *Service) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return s.store.GetUserByUsername(ctx, username)
}

// --- claimants ---

// CreateClaimant persists a new claimant.
func (s *Service) CreateClaimant(ctx context.Context, claimant Claimant) (Claimant, Result, error) {
	ctx, finish := s.instrument(ctx, "create_claimant")
	var created Claimant
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		if claimant.FullName == "" {
			return domain.ValidationError{Entity: EntityClaimant, Field: "full_name", Message: "must not be empty"}
		}
		var err error
		created, err = tx.CreateClaimant(claimant)
		return err
	})
	finish(created.ID, err)
	return created, res, err
}

// UpdateClaimant applies a partial claimant update.
func (s *Service) UpdateClaimant(ctx context.Context, id int64, patch domain.ClaimantPatch) (Claimant, Result, error) {
	ctx, finish := s.instrument(ctx, "update_claimant")
	var updated Claimant
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateClaimant(id, func(c *Claimant) error {
			patch.Apply(c)
			if c.FullName == "" {
				return domain.ValidationError{Entity: EntityClaimant, Field: "full_name", Message: "must not be empty"}
			}
			return nil
		})
		return err
	})
	finish(id, err)
	return updated, res, err
}

// GetClaimant returns the claimant with the given id.
func (s *Service) GetClaimant(ctx context.Context, id int64) (Claimant, error) {
	return s.store.GetClaimant(ctx, id)
}

// --- claims ---

// CreateClaim persists a new claim after verifying its claimant exists.
func (s *Service) CreateClaim(ctx context.Context, claim Claim) (Claim, Result, error) {
	ctx, finish := s.instrument(ctx, "create_claim")
	var created Claim
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		_, ok := tx.Snapshot().FindClaimant(claim.ClaimantID)
		if err := requireRef(ok, EntityClaim, "claimant_id", EntityClaimant, claim.ClaimantID); err != nil {
			return err
		}
		if claim.Status != "" && !validClaimStatus(claim.Status) {
			return domain.ValidationError{Entity: EntityClaim, Field: "status", Message: fmt.Sprintf("unknown status %q", claim.Status)}
		}
		var err error
		created, err = tx.CreateClaim(claim)
		return err
	})
	finish(created.ID, err)
	return created, res, err
}

// UpdateClaim applies a partial claim update.
func (s *Service) UpdateClaim(ctx context.Context, id int64, patch domain.ClaimPatch) (Claim, Result, error) {
	ctx, finish := s.instrument(ctx, "update_claim")
	var updated Claim
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateClaim(id, func(c *Claim) error {
			patch.Apply(c)
			if !validClaimStatus(c.Status) {
				return domain.ValidationError{Entity: EntityClaim, Field: "status", Message: fmt.Sprintf("unknown status %q", c.Status)}
			}
			return nil
		})
		return err
	})
	finish(id, err)
	return updated, res, err
}

// GetClaim returns the claim with the given id.
func (s *Service) GetClaim(ctx context.Context, id int64) (Claim, error) {
	return s.store.GetClaim(ctx, id)
}

// ListClaimsByClaimant returns all claims filed by the claimant.
func (s *Service) ListClaimsByClaimant(ctx context.Context, claimantID int64) ([]Claim, error) {
	return s.store.ListClaimsByClaimant(ctx, claimantID)
}

// --- rooms ---

// CreateRoom persists a room after verifying its claim exists.
func (s *Service) CreateRoom(ctx context.Context, room Room) (Room, Result, error) {
	ctx, finish := s.instrument(ctx, "create_room")
	var created Room
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		_, ok := tx.Snapshot().FindClaim(room.ClaimID)
		if err := requireRef(ok, EntityRoom, "claim_id", EntityClaim, room.ClaimID); err != nil {
			return err
		}
		if room.Name == "" {
			return domain.ValidationError{Entity: EntityRoom, Field: "name", Message: "must not be empty"}
		}
		var err error
		created, err = tx.CreateRoom(room)
		return err
	})
	finish(created.ID, err)
	return created, res, err
}

// UpdateRoom applies a partial room update.
func (s *Service) UpdateRoom(ctx context.Context, id int64, patch domain.RoomPatch) (Room, Result, error) {
	ctx, finish := s.instrument(ctx, "update_room")
	var updated Room
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateRoom(id, func(r *Room) error {
			patch.Apply(r)
			if r.Name == "" {
				return domain.ValidationError{Entity: EntityRoom, Field: "name", Message: "must not be empty"}
			}
			return nil
		})
		return err
	})
	finish(id, err)
	return updated, res, err
}

// DeleteRoom removes a room. Items in the room are left in place and remain
// reachable by id; there is no cascade.
func (s *Service) DeleteRoom(ctx context.Context, id int64) (Result, error) {
	ctx, finish := s.instrument(ctx, "delete_room")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteRoom(id)
	})
	finish(id, err)
	return res, err
}

// GetRoom returns the room with the given id.
func (s *Service) GetRoom(ctx context.Context, id int64) (Room, error) {
	return s.store.GetRoom(ctx, id)
}

// ListRoomsByClaim returns the rooms grouped under a claim.
func (s *Service) ListRoomsByClaim(ctx context.Context, claimID int64) ([]Room, error) {
	return s.store.ListRoomsByClaim(ctx, claimID)
}

// --- items ---

// CreateItem persists an item after verifying its room exists.
func (s *Service) CreateItem(ctx context.Context, item Item) (Item, Result, error) {
	ctx, finish := s.instrument(ctx, "create_item")
	var created Item
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		_, ok := tx.Snapshot().FindRoom(item.RoomID)
		if err := requireRef(ok, EntityItem, "room_id", EntityRoom, item.RoomID); err != nil {
			return err
		}
		if item.Name == "" {
			return domain.ValidationError{Entity: EntityItem, Field: "name", Message: "must not be empty"}
		}
		var err error
		created, err = tx.CreateItem(item)
		return err
	})
	finish(created.ID, err)
	return created, res, err
}

// UpdateItem applies a partial item update. The room reference is fixed at
// creation; moving an item between rooms is not supported.
func (s *Service) UpdateItem(ctx context.Context, id int64, patch domain.ItemPatch) (Item, Result, error) {
	ctx, finish := s.instrument(ctx, "update_item")
	var updated Item
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateItem(id, func(it *Item) error {
			patch.Apply(it)
			if it.Name == "" {
				return domain.ValidationError{Entity: EntityItem, Field: "name", Message: "must not be empty"}
			}
			return nil
		})
		return err
	})
	finish(id, err)
	return updated, res, err
}

// DeleteItem removes an item. Documentation and flagged duplicate records
// referencing it are left in place.
func (s *Service) DeleteItem(ctx context.Context, id int64) (Result, error) {
	ctx, finish := s.instrument(ctx, "delete_item")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteItem(id)
	})
	finish(id, err)
	return res, err
}

// GetItem returns the item with the given id.
func (s *Service) GetItem(ctx context.Context, id int64) (Item, error) {
	return s.store.GetItem(ctx, id)
}

// ListItemsByRoom returns the items inventoried in a room.
func (s *Service) ListItemsByRoom(ctx context.Context, roomID int64) ([]Item, error) {
	return s.store.ListItemsByRoom(ctx, roomID)
}

// --- documentation ---

// CreateDocumentation persists evidence metadata after verifying the item and
// uploading user exist.
func (s *Service) CreateDocumentation(ctx context.Context, doc Documentation) (Documentation, Result, error) {
	ctx, finish := s.instrument(ctx, "create_documentation")
	var created Documentation
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		view := tx.Snapshot()
		_, ok := view.FindItem(doc.ItemID)
		if err := requireRef(ok, EntityDocumentation, "item_id", EntityItem, doc.ItemID); err != nil {
			return err
		}
		_, ok = view.FindUser(doc.UserID)
		if err := requireRef(ok, EntityDocumentation, "user_id", EntityUser, doc.UserID); err != nil {
			return err
		}
		if err := validateDocumentationEnums(doc); err != nil {
			return err
		}
		if doc.Title == "" {
			return domain.ValidationError{Entity: EntityDocumentation, Field: "title", Message: "must not be empty"}
		}
		if doc.FileURL == "" {
			return domain.ValidationError{Entity: EntityDocumentation, Field: "file_url", Message: "must not be empty"}
		}
		var err error
		created, err = tx.CreateDocumentation(doc)
		return err
	})
	finish(created.ID, err)
	return created, res, err
}

// UpdateDocumentation applies a partial documentation update.
func (s *Service) UpdateDocumentation(ctx context.Context, id int64, patch domain.DocumentationPatch) (Documentation, Result, error) {
	ctx, finish := s.instrument(ctx, "update_documentation")
	var updated Documentation
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateDocumentation(id, func(d *Documentation) error {
			patch.Apply(d)
			return validateDocumentationEnums(*d)
		})
		return err
	})
	finish(id, err)
	return updated, res, err
}

// DeleteDocumentation removes an evidence record. The underlying blob, if
// any, is not touched; blob lifecycle is the caller's concern.
func (s *Service) DeleteDocumentation(ctx context.Context, id int64) (Result, error) {
	ctx, finish := s.instrument(ctx, "delete_documentation")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteDocumentation(id)
	})
	finish(id, err)
	return res, err
}

// GetDocumentation returns the evidence record with the given id.
func (s *Service) GetDocumentation(ctx context.Context, id int64) (Documentation, error) {
	return s.store.GetDocumentation(ctx, id)
}

// ListDocumentationsByItem returns the evidence attached to an item.
func (s *Service) ListDocumentationsByItem(ctx context.Context, itemID int64) ([]Documentation, error) {
	return s.store.ListDocumentationsByItem(ctx, itemID)
}

// --- collaborators ---

// CreateCollaborator invites a user onto a claim.
func (s *Service) CreateCollaborator(ctx context.Context, col Collaborator) (Collaborator, Result, error) {
	ctx, finish := s.instrument(ctx, "create_collaborator")
	var created Collaborator
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		view := tx.Snapshot()
		_, ok := view.FindClaim(col.ClaimID)
		if err := requireRef(ok, EntityCollaborator, "claim_id", EntityClaim, col.ClaimID); err != nil {
			return err
		}
		_, ok = view.FindUser(col.UserID)
		if err := requireRef(ok, EntityCollaborator, "user_id", EntityUser, col.UserID); err != nil {
			return err
		}
		if col.Role != "" && !validRole(col.Role) {
			return domain.ValidationError{Entity: EntityCollaborator, Field: "role", Message: fmt.Sprintf("unknown role %q", col.Role)}
		}
		if col.InviteStatus != "" && !validInviteStatus(col.InviteStatus) {
			return domain.ValidationError{Entity: EntityCollaborator, Field: "invite_status", Message: fmt.Sprintf("unknown invite status %q", col.InviteStatus)}
		}
		var err error
		created, err = tx.CreateCollaborator(col)
		return err
	})
	finish(created.ID, err)
	return created, res, err
}

// UpdateCollaborator applies a partial collaborator update (role changes,
// invite acceptance).
func (s *Service) UpdateCollaborator(ctx context.Context, id int64, patch domain.CollaboratorPatch) (Collaborator, Result, error) {
	ctx, finish := s.instrument(ctx, "update_collaborator")
	var updated Collaborator
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateCollaborator(id, func(c *Collaborator) error {
			patch.Apply(c)
			if !validRole(c.Role) {
				return domain.ValidationError{Entity: EntityCollaborator, Field: "role", Message: fmt.Sprintf("unknown role %q", c.Role)}
			}
			if !validInviteStatus(c.InviteStatus) {
				return domain.ValidationError{Entity: EntityCollaborator, Field: "invite_status", Message: fmt.Sprintf("unknown invite status %q", c.InviteStatus)}
			}
			return nil
		})
		return err
	})
	finish(id, err)
	return updated, res, err
}

// DeleteCollaborator revokes a user's access to a claim.
func (s *Service) DeleteCollaborator(ctx context.Context, id int64) (Result, error) {
	ctx, finish := s.instrument(ctx, "delete_collaborator")
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteCollaborator(id)
	})
	finish(id, err)
	return res, err
}

// GetCollaborator returns the collaborator record with the given id.
func (s *Service) GetCollaborator(ctx context.Context, id int64) (Collaborator, error) {
	return s.store.GetCollaborator(ctx, id)
}

// ListCollaboratorsByClaim returns the collaborators on a claim.
func (s *Service) ListCollaboratorsByClaim(ctx context.Context, claimID int64) ([]Collaborator, error) {
	return s.store.ListCollaboratorsByClaim(ctx, claimID)
}

// ListCollaboratorsByUser returns every collaboration record for a user.
func (s *Service) ListCollaboratorsByUser(ctx context.Context, userID int64) ([]Collaborator, error) {
	return s.store.ListCollaboratorsByUser(ctx, userID)
}

// --- enum validation ---

func validClaimStatus(v ClaimStatus) bool {
	switch v {
	case domain.ClaimStatusDraft, domain.ClaimStatusSubmitted, domain.ClaimStatusUnderReview, domain.ClaimStatusSettled:
		return true
	}
	return false
}

func validDocumentType(v DocumentType) bool {
	switch v {
	case domain.DocumentTypeReceipt, domain.DocumentTypePhoto, domain.DocumentTypeWarranty,
		domain.DocumentTypeManual, domain.DocumentTypeAppraisal, domain.DocumentTypeOther:
		return true
	}
	return false
}

func validSourceType(v SourceType) bool {
	switch v {
	case domain.SourceTypeEmail, domain.SourceTypeRetailer, domain.SourceTypePhotoLibrary,
		domain.SourceTypeManualUpload, domain.SourceTypeOther:
		return true
	}
	return false
}

func validRole(v CollaboratorRole) bool {
	switch v {
	case domain.RoleOwner, domain.RoleEditor, domain.RoleViewer:
		return true
	}
	return false
}

func validInviteStatus(v InviteStatus) bool {
	switch v {
	case domain.InvitePending, domain.InviteAccepted, domain.InviteRejected:
		return true
	}
	return false
}

func validDuplicateStatus(v DuplicateStatus) bool {
	switch v {
	case domain.DuplicatePending, domain.DuplicateConfirmed, domain.DuplicateRejected:
		return true
	}
	return false
}

func validateDocumentationEnums(doc Documentation) error {
	if !validDocumentType(doc.DocumentType) {
		return domain.ValidationError{Entity: EntityDocumentation, Field: "document_type", Message: fmt.Sprintf("unknown document type %q", doc.DocumentType)}
	}
	if !validSourceType(doc.SourceType) {
		return domain.ValidationError{Entity: EntityDocumentation, Field: "source_type", Message: fmt.Sprintf("unknown source type %q", doc.SourceType)}
	}
	return nil
}
