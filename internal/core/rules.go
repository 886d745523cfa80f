package core

import "claimcore/pkg/domain"

// NewDefaultRulesEngine returns a rules engine preloaded with the rules every
// deployment runs: referential integrity, item constraints, and duplicate
// confidence bounds.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewReferenceIntegrityRule())
	engine.Register(NewItemConstraintsRule())
	engine.Register(NewDuplicateConfidenceRule())
	return engine
}
