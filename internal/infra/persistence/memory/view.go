package memory

import (
	"context"
	"sort"

	"claimcore/pkg/domain"
)

var _ domain.RuleView = view{}

func sortedValues[T any](m map[int64]T, clone func(T) T, id func(T) int64) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, clone(v))
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}

func (v view) ListUsers() []User {
	return sortedValues(v.state.users, cloneUser, func(u User) int64 { return u.ID })
}

func (v view) ListClaimants() []Claimant {
	return sortedValues(v.state.claimants, cloneClaimant, func(c Claimant) int64 { return c.ID })
}

func (v view) ListClaims() []Claim {
	return sortedValues(v.state.claims, cloneClaim, func(c Claim) int64 { return c.ID })
}

func (v view) ListRooms() []Room {
	return sortedValues(v.state.rooms, cloneRoom, func(r Room) int64 { return r.ID })
}

func (v view) ListItems() []Item {
	return sortedValues(v.state.items, cloneItem, func(i Item) int64 { return i.ID })
}

func (v view) ListDocumentations() []Documentation {
	return sortedValues(v.state.documentations, cloneDocumentation, func(d Documentation) int64 { return d.ID })
}

func (v view) ListPotentialDuplicates() []PotentialDuplicate {
	return sortedValues(v.state.duplicates, cloneDuplicate, func(d PotentialDuplicate) int64 { return d.ID })
}

func (v view) ListCollaborators() []Collaborator {
	return sortedValues(v.state.collaborators, cloneCollaborator, func(c Collaborator) int64 { return c.ID })
}

func (v view) FindUser(id int64) (User, bool) {
	u, ok := v.state.users[id]
	if !ok {
		return User{}, false
	}
	return cloneUser(u), true
}

func (v view) FindClaimant(id int64) (Claimant, bool) {
	c, ok := v.state.claimants[id]
	if !ok {
		return Claimant{}, false
	}
	return cloneClaimant(c), true
}

func (v view) FindClaim(id int64) (Claim, bool) {
	c, ok := v.state.claims[id]
	if !ok {
		return Claim{}, false
	}
	return cloneClaim(c), true
}

func (v view) FindRoom(id int64) (Room, bool) {
	r, ok := v.state.rooms[id]
	if !ok {
		return Room{}, false
	}
	return cloneRoom(r), true
}

func (v view) FindItem(id int64) (Item, bool) {
	i, ok := v.state.items[id]
	if !ok {
		return Item{}, false
	}
	return cloneItem(i), true
}

func (v view) FindDocumentation(id int64) (Documentation, bool) {
	d, ok := v.state.documentations[id]
	if !ok {
		return Documentation{}, false
	}
	return cloneDocumentation(d), true
}

func (v view) FindPotentialDuplicate(id int64) (PotentialDuplicate, bool) {
	d, ok := v.state.duplicates[id]
	if !ok {
		return PotentialDuplicate{}, false
	}
	return cloneDuplicate(d), true
}

func (v view) FindCollaborator(id int64) (Collaborator, bool) {
	c, ok := v.state.collaborators[id]
	if !ok {
		return Collaborator{}, false
	}
	return cloneCollaborator(c), true
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(_ context.Context, id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.state.users[id]
	if !ok {
		return User{}, domain.NotFoundError{Entity: domain.EntityUser, ID: id}
	}
	return cloneUser(u), nil
}

// GetUserByUsername returns the user with the given username.
func (s *Store) GetUserByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.state.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return User{}, domain.NotFoundError{Entity: domain.EntityUser, Key: username}
}

// GetClaimant returns the claimant with the given id.
func (s *Store) GetClaimant(_ context.Context, id int64) (Claimant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.claimants[id]
	if !ok {
		return Claimant{}, domain.NotFoundError{Entity: domain.EntityClaimant, ID: id}
	}
	return cloneClaimant(c), nil
}

// GetClaim returns the claim with the given id.
func (s *Store) GetClaim(_ context.Context, id int64) (Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.claims[id]
	if !ok {
		return Claim{}, domain.NotFoundError{Entity: domain.EntityClaim, ID: id}
	}
	return cloneClaim(c), nil
}

// ListClaimsByClaimant returns the claims filed by a claimant, ordered by id.
func (s *Store) ListClaimsByClaimant(_ context.Context, claimantID int64) ([]Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Claim, 0)
	for _, c := range s.state.claims {
		if c.ClaimantID == claimantID {
			out = append(out, cloneClaim(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetRoom returns the room with the given id.
func (s *Store) GetRoom(_ context.Context, id int64) (Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.state.rooms[id]
	if !ok {
		return Room{}, domain.NotFoundError{Entity: domain.EntityRoom, ID: id}
	}
	return cloneRoom(r), nil
}

// ListRoomsByClaim returns the rooms in a claim, ordered by id.
func (s *Store) ListRoomsByClaim(_ context.Context, claimID int64) ([]Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Room, 0)
	for _, r := range s.state.rooms {
		if r.ClaimID == claimID {
			out = append(out, cloneRoom(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetItem returns the item with the given id.
func (s *Store) GetItem(_ context.Context, id int64) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.state.items[id]
	if !ok {
		return Item{}, domain.NotFoundError{Entity: domain.EntityItem, ID: id}
	}
	return cloneItem(i), nil
}

// ListItemsByRoom returns the items in a room, ordered by id.
func (s *Store) ListItemsByRoom(_ context.Context, roomID int64) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0)
	for _, i := range s.state.items {
		if i.RoomID == roomID {
			out = append(out, cloneItem(i))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetDocumentation returns the documentation record with the given id.
func (s *Store) GetDocumentation(_ context.Context, id int64) (Documentation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.state.documentations[id]
	if !ok {
		return Documentation{}, domain.NotFoundError{Entity: domain.EntityDocumentation, ID: id}
	}
	return cloneDocumentation(d), nil
}

// ListDocumentationsByItem returns the documentation attached to an item,
// ordered by id.
func (s *Store) ListDocumentationsByItem(_ context.Context, itemID int64) ([]Documentation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Documentation, 0)
	for _, d := range s.state.documentations {
		if d.ItemID == itemID {
			out = append(out, cloneDocumentation(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetPotentialDuplicate returns the flagged pair with the given id.
func (s *Store) GetPotentialDuplicate(_ context.Context, id int64) (PotentialDuplicate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.state.duplicates[id]
	if !ok {
		return PotentialDuplicate{}, domain.NotFoundError{Entity: domain.EntityPotentialDuplicate, ID: id}
	}
	return cloneDuplicate(d), nil
}

// ListPotentialDuplicatesByItem returns every flagged pair touching an item,
// regardless of which side of the pair it is on, ordered by id.
func (s *Store) ListPotentialDuplicatesByItem(_ context.Context, itemID int64) ([]PotentialDuplicate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PotentialDuplicate, 0)
	for _, d := range s.state.duplicates {
		if d.ItemID1 == itemID || d.ItemID2 == itemID {
			out = append(out, cloneDuplicate(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetCollaborator returns the collaborator record with the given id.
func (s *Store) GetCollaborator(_ context.Context, id int64) (Collaborator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.collaborators[id]
	if !ok {
		return Collaborator{}, domain.NotFoundError{Entity: domain.EntityCollaborator, ID: id}
	}
	return cloneCollaborator(c), nil
}

// ListCollaboratorsByClaim returns the collaborators on a claim, ordered by id.
func (s *Store) ListCollaboratorsByClaim(_ context.Context, claimID int64) ([]Collaborator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Collaborator, 0)
	for _, c := range s.state.collaborators {
		if c.ClaimID == claimID {
			out = append(out, cloneCollaborator(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListCollaboratorsByUser returns the claims a user collaborates on, ordered
// by id.
func (s *Store) ListCollaboratorsByUser(_ context.Context, userID int64) ([]Collaborator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Collaborator, 0)
	for _, c := range s.state.collaborators {
		if c.UserID == userID {
			out = append(out, cloneCollaborator(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
