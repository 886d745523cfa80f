package domain

import "context"

// RuleView provides read-only access to domain entities for rule evaluation.
type RuleView interface {
	ListUsers() []User
	ListClaimants() []Claimant
	ListClaims() []Claim
	ListRooms() []Room
	ListItems() []Item
	ListDocumentations() []Documentation
	ListPotentialDuplicates() []PotentialDuplicate
	ListCollaborators() []Collaborator
	FindUser(id int64) (User, bool)
	FindClaimant(id int64) (Claimant, bool)
	FindClaim(id int64) (Claim, bool)
	FindRoom(id int64) (Room, bool)
	FindItem(id int64) (Item, bool)
	FindDocumentation(id int64) (Documentation, bool)
	FindPotentialDuplicate(id int64) (PotentialDuplicate, bool)
	FindCollaborator(id int64) (Collaborator, bool)
}

// Rule defines an evaluation executed within a transaction boundary.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error)
}

// RulesEngine orchestrates rule evaluation.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view, changes)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
