package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope. Update operations apply a mutator to a
// copy of the current record; the mutated copy replaces the original only if
// the mutator returns nil.
type Transaction interface {
	Snapshot() RuleView
	CreateUser(User) (User, error)
	UpdateUser(id int64, mutator func(*User) error) (User, error)
	CreateClaimant(Claimant) (Claimant, error)
	UpdateClaimant(id int64, mutator func(*Claimant) error) (Claimant, error)
	CreateClaim(Claim) (Claim, error)
	UpdateClaim(id int64, mutator func(*Claim) error) (Claim, error)
	CreateRoom(Room) (Room, error)
	UpdateRoom(id int64, mutator func(*Room) error) (Room, error)
	DeleteRoom(id int64) error
	CreateItem(Item) (Item, error)
	UpdateItem(id int64, mutator func(*Item) error) (Item, error)
	DeleteItem(id int64) error
	CreateDocumentation(Documentation) (Documentation, error)
	UpdateDocumentation(id int64, mutator func(*Documentation) error) (Documentation, error)
	DeleteDocumentation(id int64) error
	CreatePotentialDuplicate(PotentialDuplicate) (PotentialDuplicate, error)
	UpdatePotentialDuplicate(id int64, mutator func(*PotentialDuplicate) error) (PotentialDuplicate, error)
	CreateCollaborator(Collaborator) (Collaborator, error)
	UpdateCollaborator(id int64, mutator func(*Collaborator) error) (Collaborator, error)
	DeleteCollaborator(id int64) error
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers. Read
// helpers return defensive clones and list results ordered by ascending id.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(RuleView) error) error
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetClaimant(ctx context.Context, id int64) (Claimant, error)
	GetClaim(ctx context.Context, id int64) (Claim, error)
	ListClaimsByClaimant(ctx context.Context, claimantID int64) ([]Claim, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	ListRoomsByClaim(ctx context.Context, claimID int64) ([]Room, error)
	GetItem(ctx context.Context, id int64) (Item, error)
	ListItemsByRoom(ctx context.Context, roomID int64) ([]Item, error)
	GetDocumentation(ctx context.Context, id int64) (Documentation, error)
	ListDocumentationsByItem(ctx context.Context, itemID int64) ([]Documentation, error)
	GetPotentialDuplicate(ctx context.Context, id int64) (PotentialDuplicate, error)
	ListPotentialDuplicatesByItem(ctx context.Context, itemID int64) ([]PotentialDuplicate, error)
	GetCollaborator(ctx context.Context, id int64) (Collaborator, error)
	ListCollaboratorsByClaim(ctx context.Context, claimID int64) ([]Collaborator, error)
	ListCollaboratorsByUser(ctx context.Context, userID int64) ([]Collaborator, error)
}
