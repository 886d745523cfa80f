// Package domain defines the persistent entities, value types, and rule
// evaluation primitives of the claim data store.
package domain

import (
	"time"
)

// EntityType identifies the kind of record stored in the claim domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityUser identifies an account record.
	EntityUser EntityType = "user"
	// EntityClaimant identifies the person filing a claim.
	EntityClaimant EntityType = "claimant"
	// EntityClaim identifies a single insurance submission.
	EntityClaim EntityType = "claim"
	// EntityRoom identifies a named grouping of items within a claim.
	EntityRoom EntityType = "room"
	// EntityItem identifies an inventoried possession.
	EntityItem EntityType = "item"
	// EntityDocumentation identifies supporting evidence attached to an item.
	EntityDocumentation EntityType = "documentation"
	// EntityPotentialDuplicate identifies a detector-flagged item pair.
	EntityPotentialDuplicate EntityType = "potential_duplicate"
	// EntityCollaborator identifies a user granted access to a claim.
	EntityCollaborator EntityType = "collaborator"
)

// ClaimStatus tracks a claim through the intake workflow.
type ClaimStatus string

// Canonical claim statuses. New claims default to draft.
const (
	ClaimStatusDraft       ClaimStatus = "draft"
	ClaimStatusSubmitted   ClaimStatus = "submitted"
	ClaimStatusUnderReview ClaimStatus = "under_review"
	ClaimStatusSettled     ClaimStatus = "settled"
)

// DocumentType classifies a documentation upload.
type DocumentType string

// Documentation type vocabulary, matching the intake upload form.
const (
	DocumentTypeReceipt   DocumentType = "receipt"
	DocumentTypePhoto     DocumentType = "photo"
	DocumentTypeWarranty  DocumentType = "warranty"
	DocumentTypeManual    DocumentType = "manual"
	DocumentTypeAppraisal DocumentType = "appraisal"
	DocumentTypeOther     DocumentType = "other"
)

// SourceType records where a documentation upload came from.
type SourceType string

// Documentation source vocabulary.
const (
	SourceTypeEmail        SourceType = "email"
	SourceTypeRetailer     SourceType = "retailer"
	SourceTypePhotoLibrary SourceType = "photo_library"
	SourceTypeManualUpload SourceType = "manual_upload"
	SourceTypeOther        SourceType = "other"
)

// CollaboratorRole determines what an invited user may do on a claim.
type CollaboratorRole string

// Collaborator roles. Invites default to viewer.
const (
	RoleOwner  CollaboratorRole = "owner"
	RoleEditor CollaboratorRole = "editor"
	RoleViewer CollaboratorRole = "viewer"
)

// InviteStatus tracks the lifecycle of a collaboration invite.
type InviteStatus string

// Invite statuses.
const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRejected InviteStatus = "rejected"
)

// DuplicateStatus tracks human review of a flagged item pair.
type DuplicateStatus string

// Duplicate review statuses. Flagged pairs start pending and transition to
// confirmed or rejected exactly once; there is no re-open.
const (
	DuplicatePending   DuplicateStatus = "pending"
	DuplicateConfirmed DuplicateStatus = "confirmed"
	DuplicateRejected  DuplicateStatus = "rejected"
)

// Base contains the common fields of timestamped domain records.
type Base struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User represents an account able to log in and collaborate on claims.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Password  string     `json:"password"`
	Email     *string    `json:"email"`
	FullName  *string    `json:"full_name"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
}

// Claimant is the person filing a claim.
type Claimant struct {
	ID            int64     `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PolicyNumber  *string   `json:"policy_number"`
	StreetAddress string    `json:"street_address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	ZipCode       string    `json:"zip_code"`
	Country       string    `json:"country"`
	Language      string    `json:"language"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// Claim is a single insurance submission owned by one claimant.
//
// TotalValue is informative only: it holds whatever the boundary last stored
// and is NOT kept in sync with item costs. The summary builder recomputes the
// derived sum on every read.
type Claim struct {
	Base
	ClaimantID int64       `json:"claimant_id"`
	TotalValue float64     `json:"total_value"`
	Status     ClaimStatus `json:"status"`
}

// Room is a named grouping of items within a claim.
type Room struct {
	ID       int64  `json:"id"`
	ClaimID  int64  `json:"claim_id"`
	Name     string `json:"name"`
	IsCustom bool   `json:"is_custom"`
}

// Item is a single inventoried possession with estimated replacement cost.
type Item struct {
	Base
	RoomID       int64    `json:"room_id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	Cost         float64  `json:"cost"`
	Quantity     int      `json:"quantity"`
	PurchaseDate *string  `json:"purchase_date"`
	Retailer     *string  `json:"retailer"`
	Model        *string  `json:"model"`
	SerialNumber *string  `json:"serial_number"`
	Brand        *string  `json:"brand"`
	Condition    *string  `json:"condition"`
	Notes        *string  `json:"notes"`
	ImageURLs    []string `json:"image_urls"`
	DocumentURLs []string `json:"document_urls"`
	Tags         []string `json:"tags"`
	CreatedBy    *int64   `json:"created_by"`
	UpdatedBy    *int64   `json:"updated_by"`
}

// Documentation is supporting evidence (receipt, photo, warranty, ...)
// attached to an item, uploaded by a user.
type Documentation struct {
	Base
	ItemID       int64             `json:"item_id"`
	UserID       int64             `json:"user_id"`
	DocumentType DocumentType      `json:"document_type"`
	SourceType   SourceType        `json:"source_type"`
	Title        string            `json:"title"`
	Description  *string           `json:"description"`
	FileURL      string            `json:"file_url"`
	SourceURL    *string           `json:"source_url"`
	SourceName   *string           `json:"source_name"`
	Metadata     map[string]string `json:"metadata"`
}

// PotentialDuplicate is a detector-flagged pair of items suspected to
// represent the same physical object, pending human confirmation.
// Confidence is the Jaccard word-overlap similarity of the two item names,
// always within [0,1].
type PotentialDuplicate struct {
	Base
	ItemID1    int64           `json:"item_id_1"`
	ItemID2    int64           `json:"item_id_2"`
	Confidence float64         `json:"confidence"`
	Status     DuplicateStatus `json:"status"`
}

// Collaborator grants a secondary user access to a claim.
type Collaborator struct {
	Base
	ClaimID      int64            `json:"claim_id"`
	UserID       int64            `json:"user_id"`
	Email        string           `json:"email"`
	Role         CollaboratorRole `json:"role"`
	InviteStatus InviteStatus     `json:"invite_status"`
}

// RoomSummary is a room populated with its items for read composition.
type RoomSummary struct {
	Room
	Items []Item `json:"items"`
}

// ClaimSummary is the read-only aggregate view of a claim: the claim itself,
// its claimant, and every room populated with its items. DerivedTotal is the
// sum of cost x quantity over all items, recomputed on every build and
// independent of the stored Claim.TotalValue.
type ClaimSummary struct {
	Claim        Claim         `json:"claim"`
	Claimant     Claimant      `json:"claimant"`
	Rooms        []RoomSummary `json:"rooms"`
	DerivedTotal float64       `json:"derived_total"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured in the audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID int64
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
