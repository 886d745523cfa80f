package core

import "claimcore/pkg/domain"

type (
	EntityType         = domain.EntityType
	ClaimStatus        = domain.ClaimStatus
	DocumentType       = domain.DocumentType
	SourceType         = domain.SourceType
	CollaboratorRole   = domain.CollaboratorRole
	InviteStatus       = domain.InviteStatus
	DuplicateStatus    = domain.DuplicateStatus
	Severity           = domain.Severity
	Base               = domain.Base
	User               = domain.User
	Claimant           = domain.Claimant
	Claim              = domain.Claim
	Room               = domain.Room
	Item               = domain.Item
	Documentation      = domain.Documentation
	PotentialDuplicate = domain.PotentialDuplicate
	Collaborator       = domain.Collaborator
	RoomSummary        = domain.RoomSummary
	ClaimSummary       = domain.ClaimSummary
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	RuleViolationError = domain.RuleViolationError
	RulesEngine        = domain.RulesEngine
	RuleView           = domain.RuleView
	Transaction        = domain.Transaction
	PersistentStore    = domain.PersistentStore
)

const (
	EntityUser               = domain.EntityUser
	EntityClaimant           = domain.EntityClaimant
	EntityClaim              = domain.EntityClaim
	EntityRoom               = domain.EntityRoom
	EntityItem               = domain.EntityItem
	EntityDocumentation      = domain.EntityDocumentation
	EntityPotentialDuplicate = domain.EntityPotentialDuplicate
	EntityCollaborator       = domain.EntityCollaborator
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)
