// Package memory provides the in-memory implementation of the claim
// persistence store. It is the canonical implementation: durable backends
// wrap it and snapshot its state after every committed transaction.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"claimcore/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// User aliases domain.User for in-memory persistence operations.
	User = domain.User
	// Claimant aliases domain.Claimant.
	Claimant = domain.Claimant
	// Claim aliases domain.Claim.
	Claim = domain.Claim
	// Room aliases domain.Room.
	Room = domain.Room
	// Item aliases domain.Item.
	Item = domain.Item
	// Documentation aliases domain.Documentation.
	Documentation = domain.Documentation
	// PotentialDuplicate aliases domain.PotentialDuplicate.
	PotentialDuplicate = domain.PotentialDuplicate
	// Collaborator aliases domain.Collaborator.
	Collaborator = domain.Collaborator
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// RuleView aliases domain.RuleView providing read-only state.
	RuleView = domain.RuleView
)

type memoryState struct {
	users          map[int64]User
	claimants      map[int64]Claimant
	claims         map[int64]Claim
	rooms          map[int64]Room
	items          map[int64]Item
	documentations map[int64]Documentation
	duplicates     map[int64]PotentialDuplicate
	collaborators  map[int64]Collaborator
	// One monotonic sequence per entity kind, seeded at 1. Sequences only
	// ever advance; deleting a record never returns its id to the pool.
	sequences map[domain.EntityType]int64
}

// Snapshot captures a point-in-time clone of the store state, including the
// id sequences so a restored store never reissues an id.
type Snapshot struct {
	Users          map[int64]User               `json:"users"`
	Claimants      map[int64]Claimant           `json:"claimants"`
	Claims         map[int64]Claim              `json:"claims"`
	Rooms          map[int64]Room               `json:"rooms"`
	Items          map[int64]Item               `json:"items"`
	Documentations map[int64]Documentation      `json:"documentations"`
	Duplicates     map[int64]PotentialDuplicate `json:"potential_duplicates"`
	Collaborators  map[int64]Collaborator       `json:"collaborators"`
	Sequences      map[string]int64             `json:"sequences"`
}

func newMemoryState() memoryState {
	return memoryState{
		users:          make(map[int64]User),
		claimants:      make(map[int64]Claimant),
		claims:         make(map[int64]Claim),
		rooms:          make(map[int64]Room),
		items:          make(map[int64]Item),
		documentations: make(map[int64]Documentation),
		duplicates:     make(map[int64]PotentialDuplicate),
		collaborators:  make(map[int64]Collaborator),
		sequences:      make(map[domain.EntityType]int64),
	}
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for k, v := range s.users {
		cloned.users[k] = cloneUser(v)
	}
	for k, v := range s.claimants {
		cloned.claimants[k] = cloneClaimant(v)
	}
	for k, v := range s.claims {
		cloned.claims[k] = cloneClaim(v)
	}
	for k, v := range s.rooms {
		cloned.rooms[k] = cloneRoom(v)
	}
	for k, v := range s.items {
		cloned.items[k] = cloneItem(v)
	}
	for k, v := range s.documentations {
		cloned.documentations[k] = cloneDocumentation(v)
	}
	for k, v := range s.duplicates {
		cloned.duplicates[k] = cloneDuplicate(v)
	}
	for k, v := range s.collaborators {
		cloned.collaborators[k] = cloneCollaborator(v)
	}
	for k, v := range s.sequences {
		cloned.sequences[k] = v
	}
	return cloned
}

func cloneUser(u User) User {
	cp := u
	cp.Email = clonePtr(u.Email)
	cp.FullName = clonePtr(u.FullName)
	cp.LastLogin = clonePtr(u.LastLogin)
	return cp
}

func cloneClaimant(c Claimant) Claimant {
	cp := c
	cp.PolicyNumber = clonePtr(c.PolicyNumber)
	return cp
}

func cloneClaim(c Claim) Claim { return c }
func cloneRoom(r Room) Room    { return r }

func cloneItem(i Item) Item {
	cp := i
	cp.Description = clonePtr(i.Description)
	cp.Category = clonePtr(i.Category)
	cp.PurchaseDate = clonePtr(i.PurchaseDate)
	cp.Retailer = clonePtr(i.Retailer)
	cp.Model = clonePtr(i.Model)
	cp.SerialNumber = clonePtr(i.SerialNumber)
	cp.Brand = clonePtr(i.Brand)
	cp.Condition = clonePtr(i.Condition)
	cp.Notes = clonePtr(i.Notes)
	cp.ImageURLs = cloneSlice(i.ImageURLs)
	cp.DocumentURLs = cloneSlice(i.DocumentURLs)
	cp.Tags = cloneSlice(i.Tags)
	cp.CreatedBy = clonePtr(i.CreatedBy)
	cp.UpdatedBy = clonePtr(i.UpdatedBy)
	return cp
}

func cloneDocumentation(d Documentation) Documentation {
	cp := d
	cp.Description = clonePtr(d.Description)
	cp.SourceURL = clonePtr(d.SourceURL)
	cp.SourceName = clonePtr(d.SourceName)
	if d.Metadata != nil {
		cp.Metadata = make(map[string]string, len(d.Metadata))
		for k, v := range d.Metadata {
			cp.Metadata[k] = v
		}
	}
	return cp
}

func cloneDuplicate(d PotentialDuplicate) PotentialDuplicate { return d }
func cloneCollaborator(c Collaborator) Collaborator          { return c }

// cloneSlice copies a slice while preserving the nil/empty distinction, so
// the empty-slice defaults stamped at create time survive round-trips.
func cloneSlice(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Store provides an in-memory transactional store for the claim domain.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// RulesEngine returns the engine evaluated on every transaction.
func (s *Store) RulesEngine() *RulesEngine {
	return s.engine
}

// SetNowFunc overrides the transaction clock; intended for tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.nowFn = fn
	}
}

// ExportState returns a deep copy of the current state for snapshotting.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromState(s.state.clone())
}

// ImportState replaces the store state with the snapshot contents. Sequences
// are advanced past both the snapshot's recorded counters and the highest id
// present per kind, so restored stores never reissue ids.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(snapshot)
}

func snapshotFromState(state memoryState) Snapshot {
	seqs := make(map[string]int64, len(state.sequences))
	for k, v := range state.sequences {
		seqs[string(k)] = v
	}
	return Snapshot{
		Users:          state.users,
		Claimants:      state.claimants,
		Claims:         state.claims,
		Rooms:          state.rooms,
		Items:          state.items,
		Documentations: state.documentations,
		Duplicates:     state.duplicates,
		Collaborators:  state.collaborators,
		Sequences:      seqs,
	}
}

func stateFromSnapshot(snapshot Snapshot) memoryState {
	state := newMemoryState()
	for k, v := range snapshot.Users {
		state.users[k] = cloneUser(v)
	}
	for k, v := range snapshot.Claimants {
		state.claimants[k] = cloneClaimant(v)
	}
	for k, v := range snapshot.Claims {
		state.claims[k] = cloneClaim(v)
	}
	for k, v := range snapshot.Rooms {
		state.rooms[k] = cloneRoom(v)
	}
	for k, v := range snapshot.Items {
		state.items[k] = cloneItem(v)
	}
	for k, v := range snapshot.Documentations {
		state.documentations[k] = cloneDocumentation(v)
	}
	for k, v := range snapshot.Duplicates {
		state.duplicates[k] = cloneDuplicate(v)
	}
	for k, v := range snapshot.Collaborators {
		state.collaborators[k] = cloneCollaborator(v)
	}
	for k, v := range snapshot.Sequences {
		state.sequences[domain.EntityType(k)] = v
	}
	advance := func(kind domain.EntityType, id int64) {
		if state.sequences[kind] <= id {
			state.sequences[kind] = id + 1
		}
	}
	for id := range state.users {
		advance(domain.EntityUser, id)
	}
	for id := range state.claimants {
		advance(domain.EntityClaimant, id)
	}
	for id := range state.claims {
		advance(domain.EntityClaim, id)
	}
	for id := range state.rooms {
		advance(domain.EntityRoom, id)
	}
	for id := range state.items {
		advance(domain.EntityItem, id)
	}
	for id := range state.documentations {
		advance(domain.EntityDocumentation, id)
	}
	for id := range state.duplicates {
		advance(domain.EntityPotentialDuplicate, id)
	}
	for id := range state.collaborators {
		advance(domain.EntityCollaborator, id)
	}
	return state
}

// nextID returns the next id for the kind and advances its sequence.
func (state *memoryState) nextID(kind domain.EntityType) int64 {
	id := state.sequences[kind]
	if id == 0 {
		id = 1
	}
	state.sequences[kind] = id + 1
	return id
}

// assignID allocates a fresh id when none was supplied, or records a
// caller-chosen id while keeping the sequence strictly ahead of it.
// A collision with a live record is an allocator invariant violation and
// fails loudly: it indicates a bug, not a recoverable condition.
func assignID(state *memoryState, kind domain.EntityType, id int64, exists func(int64) bool) int64 {
	if id == 0 {
		id = state.nextID(kind)
	} else if state.sequences[kind] <= id {
		state.sequences[kind] = id + 1
	}
	if exists(id) {
		panic(fmt.Sprintf("memory store: duplicate %s id %d", kind, id))
	}
	return id
}

// transaction is a mutation set applied to a cloned state and committed only
// after the rules engine accepts it.
type transaction struct {
	state   memoryState
	changes []Change
	now     time.Time
}

var _ domain.Transaction = (*transaction)(nil)

type view struct {
	state *memoryState
}

func newView(state *memoryState) RuleView {
	return view{state: state}
}

// RunInTransaction executes fn within a transactional copy of the store
// state. The clone is committed only if fn and every blocking rule succeed;
// otherwise the store is left untouched and no partial state is observable.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		res, err := s.engine.Evaluate(ctx, newView(&tx.state), tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(RuleView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(newView(&snapshot))
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot exposes the transactional state to in-transaction reference checks.
func (tx *transaction) Snapshot() RuleView {
	return newView(&tx.state)
}

// CreateUser stores a new account. Usernames are unique across live records.
func (tx *transaction) CreateUser(u User) (User, error) {
	for _, existing := range tx.state.users {
		if existing.Username == u.Username {
			return User{}, domain.ValidationError{Entity: domain.EntityUser, Field: "username", Message: fmt.Sprintf("username %q already taken", u.Username)}
		}
	}
	u.ID = assignID(&tx.state, domain.EntityUser, u.ID, func(id int64) bool { _, ok := tx.state.users[id]; return ok })
	u.CreatedAt = tx.now
	u.LastLogin = nil
	tx.state.users[u.ID] = cloneUser(u)
	tx.recordChange(Change{Entity: domain.EntityUser, Action: domain.ActionCreate, After: cloneUser(u)})
	return cloneUser(u), nil
}

// UpdateUser mutates a user using the provided mutator function.
func (tx *transaction) UpdateUser(id int64, mutator func(*User) error) (User, error) {
	current, ok := tx.state.users[id]
	if !ok {
		return User{}, domain.NotFoundError{Entity: domain.EntityUser, ID: id}
	}
	before := cloneUser(current)
	if err := mutator(&current); err != nil {
		return User{}, err
	}
	current.ID = id
	tx.state.users[id] = cloneUser(current)
	tx.recordChange(Change{Entity: domain.EntityUser, Action: domain.ActionUpdate, Before: before, After: cloneUser(current)})
	return cloneUser(current), nil
}

// CreateClaimant stores a new claimant, defaulting language and currency.
func (tx *transaction) CreateClaimant(c Claimant) (Claimant, error) {
	c.ID = assignID(&tx.state, domain.EntityClaimant, c.ID, func(id int64) bool { _, ok := tx.state.claimants[id]; return ok })
	c.CreatedAt = tx.now
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	tx.state.claimants[c.ID] = cloneClaimant(c)
	tx.recordChange(Change{Entity: domain.EntityClaimant, Action: domain.ActionCreate, After: cloneClaimant(c)})
	return cloneClaimant(c), nil
}

// UpdateClaimant mutates a claimant.
func (tx *transaction) UpdateClaimant(id int64, mutator func(*Claimant) error) (Claimant, error) {
	current, ok := tx.state.claimants[id]
	if !ok {
		return Claimant{}, domain.NotFoundError{Entity: domain.EntityClaimant, ID: id}
	}
	before := cloneClaimant(current)
	if err := mutator(&current); err != nil {
		return Claimant{}, err
	}
	current.ID = id
	tx.state.claimants[id] = cloneClaimant(current)
	tx.recordChange(Change{Entity: domain.EntityClaimant, Action: domain.ActionUpdate, Before: before, After: cloneClaimant(current)})
	return cloneClaimant(current), nil
}

// CreateClaim stores a new claim, defaulting status to draft.
func (tx *transaction) CreateClaim(c Claim) (Claim, error) {
	c.ID = assignID(&tx.state, domain.EntityClaim, c.ID, func(id int64) bool { _, ok := tx.state.claims[id]; return ok })
	c.CreatedAt = tx.now
	c.UpdatedAt = tx.now
	if c.Status == "" {
		c.Status = domain.ClaimStatusDraft
	}
	tx.state.claims[c.ID] = cloneClaim(c)
	tx.recordChange(Change{Entity: domain.EntityClaim, Action: domain.ActionCreate, After: cloneClaim(c)})
	return cloneClaim(c), nil
}

// UpdateClaim mutates a claim and refreshes its updated timestamp.
func (tx *transaction) UpdateClaim(id int64, mutator func(*Claim) error) (Claim, error) {
	current, ok := tx.state.claims[id]
	if !ok {
		return Claim{}, domain.NotFoundError{Entity: domain.EntityClaim, ID: id}
	}
	before := cloneClaim(current)
	if err := mutator(&current); err != nil {
		return Claim{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.claims[id] = cloneClaim(current)
	tx.recordChange(Change{Entity: domain.EntityClaim, Action: domain.ActionUpdate, Before: before, After: cloneClaim(current)})
	return cloneClaim(current), nil
}

// CreateRoom stores a new room.
func (tx *transaction) CreateRoom(r Room) (Room, error) {
	r.ID = assignID(&tx.state, domain.EntityRoom, r.ID, func(id int64) bool { _, ok := tx.state.rooms[id]; return ok })
	tx.state.rooms[r.ID] = cloneRoom(r)
	tx.recordChange(Change{Entity: domain.EntityRoom, Action: domain.ActionCreate, After: cloneRoom(r)})
	return cloneRoom(r), nil
}

// UpdateRoom mutates a room (rename, custom flag).
func (tx *transaction) UpdateRoom(id int64, mutator func(*Room) error) (Room, error) {
	current, ok := tx.state.rooms[id]
	if !ok {
		return Room{}, domain.NotFoundError{Entity: domain.EntityRoom, ID: id}
	}
	before := cloneRoom(current)
	if err := mutator(&current); err != nil {
		return Room{}, err
	}
	current.ID = id
	tx.state.rooms[id] = cloneRoom(current)
	tx.recordChange(Change{Entity: domain.EntityRoom, Action: domain.ActionUpdate, Before: before, After: cloneRoom(current)})
	return cloneRoom(current), nil
}

// DeleteRoom removes a room. Items referencing it are NOT deleted: the
// original system never cascades, and callers depend on orphaned items
// remaining reachable by id.
func (tx *transaction) DeleteRoom(id int64) error {
	current, ok := tx.state.rooms[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityRoom, ID: id}
	}
	delete(tx.state.rooms, id)
	tx.recordChange(Change{Entity: domain.EntityRoom, Action: domain.ActionDelete, Before: cloneRoom(current)})
	return nil
}

func validateItem(i Item) error {
	if i.Quantity < 1 {
		return domain.ValidationError{Entity: domain.EntityItem, Field: "quantity", Message: "must be at least 1"}
	}
	if i.Cost < 0 {
		return domain.ValidationError{Entity: domain.EntityItem, Field: "cost", Message: "must not be negative"}
	}
	return nil
}

// CreateItem stores a new item, defaulting quantity to 1 and normalizing nil
// URL/tag slices to empty ones.
func (tx *transaction) CreateItem(i Item) (Item, error) {
	if i.Quantity == 0 {
		i.Quantity = 1
	}
	if err := validateItem(i); err != nil {
		return Item{}, err
	}
	i.ID = assignID(&tx.state, domain.EntityItem, i.ID, func(id int64) bool { _, ok := tx.state.items[id]; return ok })
	i.CreatedAt = tx.now
	i.UpdatedAt = tx.now
	if i.ImageURLs == nil {
		i.ImageURLs = []string{}
	}
	if i.DocumentURLs == nil {
		i.DocumentURLs = []string{}
	}
	if i.Tags == nil {
		i.Tags = []string{}
	}
	tx.state.items[i.ID] = cloneItem(i)
	tx.recordChange(Change{Entity: domain.EntityItem, Action: domain.ActionCreate, After: cloneItem(i)})
	return cloneItem(i), nil
}

// UpdateItem mutates an item, re-validating structural invariants.
func (tx *transaction) UpdateItem(id int64, mutator func(*Item) error) (Item, error) {
	current, ok := tx.state.items[id]
	if !ok {
		return Item{}, domain.NotFoundError{Entity: domain.EntityItem, ID: id}
	}
	before := cloneItem(current)
	if err := mutator(&current); err != nil {
		return Item{}, err
	}
	if err := validateItem(current); err != nil {
		return Item{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.items[id] = cloneItem(current)
	tx.recordChange(Change{Entity: domain.EntityItem, Action: domain.ActionUpdate, Before: before, After: cloneItem(current)})
	return cloneItem(current), nil
}

// DeleteItem removes an item. Its documentation records are NOT deleted.
func (tx *transaction) DeleteItem(id int64) error {
	current, ok := tx.state.items[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityItem, ID: id}
	}
	delete(tx.state.items, id)
	tx.recordChange(Change{Entity: domain.EntityItem, Action: domain.ActionDelete, Before: cloneItem(current)})
	return nil
}

// CreateDocumentation stores a documentation record, normalizing a nil
// metadata map to an empty one.
func (tx *transaction) CreateDocumentation(d Documentation) (Documentation, error) {
	d.ID = assignID(&tx.state, domain.EntityDocumentation, d.ID, func(id int64) bool { _, ok := tx.state.documentations[id]; return ok })
	d.CreatedAt = tx.now
	d.UpdatedAt = tx.now
	if d.Metadata == nil {
		d.Metadata = map[string]string{}
	}
	tx.state.documentations[d.ID] = cloneDocumentation(d)
	tx.recordChange(Change{Entity: domain.EntityDocumentation, Action: domain.ActionCreate, After: cloneDocumentation(d)})
	return cloneDocumentation(d), nil
}

// UpdateDocumentation mutates a documentation record.
func (tx *transaction) UpdateDocumentation(id int64, mutator func(*Documentation) error) (Documentation, error) {
	current, ok := tx.state.documentations[id]
	if !ok {
		return Documentation{}, domain.NotFoundError{Entity: domain.EntityDocumentation, ID: id}
	}
	before := cloneDocumentation(current)
	if err := mutator(&current); err != nil {
		return Documentation{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.documentations[id] = cloneDocumentation(current)
	tx.recordChange(Change{Entity: domain.EntityDocumentation, Action: domain.ActionUpdate, Before: before, After: cloneDocumentation(current)})
	return cloneDocumentation(current), nil
}

// DeleteDocumentation removes a documentation record.
func (tx *transaction) DeleteDocumentation(id int64) error {
	current, ok := tx.state.documentations[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityDocumentation, ID: id}
	}
	delete(tx.state.documentations, id)
	tx.recordChange(Change{Entity: domain.EntityDocumentation, Action: domain.ActionDelete, Before: cloneDocumentation(current)})
	return nil
}

// CreatePotentialDuplicate stores a flagged item pair. Confidence must lie
// within [0,1]; the status defaults to pending.
func (tx *transaction) CreatePotentialDuplicate(d PotentialDuplicate) (PotentialDuplicate, error) {
	if d.Confidence < 0 || d.Confidence > 1 {
		return PotentialDuplicate{}, domain.ValidationError{Entity: domain.EntityPotentialDuplicate, Field: "confidence", Message: "must be within [0,1]"}
	}
	d.ID = assignID(&tx.state, domain.EntityPotentialDuplicate, d.ID, func(id int64) bool { _, ok := tx.state.duplicates[id]; return ok })
	d.CreatedAt = tx.now
	d.UpdatedAt = tx.now
	if d.Status == "" {
		d.Status = domain.DuplicatePending
	}
	tx.state.duplicates[d.ID] = cloneDuplicate(d)
	tx.recordChange(Change{Entity: domain.EntityPotentialDuplicate, Action: domain.ActionCreate, After: cloneDuplicate(d)})
	return cloneDuplicate(d), nil
}

// UpdatePotentialDuplicate mutates a flagged pair (status review).
func (tx *transaction) UpdatePotentialDuplicate(id int64, mutator func(*PotentialDuplicate) error) (PotentialDuplicate, error) {
	current, ok := tx.state.duplicates[id]
	if !ok {
		return PotentialDuplicate{}, domain.NotFoundError{Entity: domain.EntityPotentialDuplicate, ID: id}
	}
	before := cloneDuplicate(current)
	if err := mutator(&current); err != nil {
		return PotentialDuplicate{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.duplicates[id] = cloneDuplicate(current)
	tx.recordChange(Change{Entity: domain.EntityPotentialDuplicate, Action: domain.ActionUpdate, Before: before, After: cloneDuplicate(current)})
	return cloneDuplicate(current), nil
}

// CreateCollaborator stores an invite, defaulting role and invite status.
func (tx *transaction) CreateCollaborator(c Collaborator) (Collaborator, error) {
	c.ID = assignID(&tx.state, domain.EntityCollaborator, c.ID, func(id int64) bool { _, ok := tx.state.collaborators[id]; return ok })
	c.CreatedAt = tx.now
	c.UpdatedAt = tx.now
	if c.Role == "" {
		c.Role = domain.RoleViewer
	}
	if c.InviteStatus == "" {
		c.InviteStatus = domain.InvitePending
	}
	tx.state.collaborators[c.ID] = cloneCollaborator(c)
	tx.recordChange(Change{Entity: domain.EntityCollaborator, Action: domain.ActionCreate, After: cloneCollaborator(c)})
	return cloneCollaborator(c), nil
}

// UpdateCollaborator mutates a collaborator record.
func (tx *transaction) UpdateCollaborator(id int64, mutator func(*Collaborator) error) (Collaborator, error) {
	current, ok := tx.state.collaborators[id]
	if !ok {
		return Collaborator{}, domain.NotFoundError{Entity: domain.EntityCollaborator, ID: id}
	}
	before := cloneCollaborator(current)
	if err := mutator(&current); err != nil {
		return Collaborator{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	tx.state.collaborators[id] = cloneCollaborator(current)
	tx.recordChange(Change{Entity: domain.EntityCollaborator, Action: domain.ActionUpdate, Before: before, After: cloneCollaborator(current)})
	return cloneCollaborator(current), nil
}

// DeleteCollaborator removes a collaborator record.
func (tx *transaction) DeleteCollaborator(id int64) error {
	current, ok := tx.state.collaborators[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityCollaborator, ID: id}
	}
	delete(tx.state.collaborators, id)
	tx.recordChange(Change{Entity: domain.EntityCollaborator, Action: domain.ActionDelete, Before: cloneCollaborator(current)})
	return nil
}
