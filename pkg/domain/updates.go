package domain

// Patch structs model partial updates as explicit all-optional field sets.
// A nil pointer means "leave the stored value untouched"; a non-nil pointer
// replaces it. Applying a patch is a shallow field merge: fields absent from
// the patch are preserved, including optional fields that are currently set.

// UserPatch updates mutable user profile fields.
type UserPatch struct {
	Password *string
	Email    *string
	FullName *string
}

// Apply merges the patch into u field by field.
func (p UserPatch) Apply(u *User) {
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Email != nil {
		u.Email = p.Email
	}
	if p.FullName != nil {
		u.FullName = p.FullName
	}
}

// ClaimantPatch updates claimant contact and preference fields.
type ClaimantPatch struct {
	FullName      *string
	Email         *string
	Phone         *string
	PolicyNumber  *string
	StreetAddress *string
	City          *string
	State         *string
	ZipCode       *string
	Country       *string
	Language      *string
	Currency      *string
}

// Apply merges the patch into c field by field.
func (p ClaimantPatch) Apply(c *Claimant) {
	if p.FullName != nil {
		c.FullName = *p.FullName
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.PolicyNumber != nil {
		c.PolicyNumber = p.PolicyNumber
	}
	if p.StreetAddress != nil {
		c.StreetAddress = *p.StreetAddress
	}
	if p.City != nil {
		c.City = *p.City
	}
	if p.State != nil {
		c.State = *p.State
	}
	if p.ZipCode != nil {
		c.ZipCode = *p.ZipCode
	}
	if p.Country != nil {
		c.Country = *p.Country
	}
	if p.Language != nil {
		c.Language = *p.Language
	}
	if p.Currency != nil {
		c.Currency = *p.Currency
	}
}

// ClaimPatch updates claim status and stored total value.
type ClaimPatch struct {
	TotalValue *float64
	Status     *ClaimStatus
}

// Apply merges the patch into c field by field.
func (p ClaimPatch) Apply(c *Claim) {
	if p.TotalValue != nil {
		c.TotalValue = *p.TotalValue
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}

// RoomPatch updates room naming.
type RoomPatch struct {
	Name     *string
	IsCustom *bool
}

// Apply merges the patch into r field by field.
func (p RoomPatch) Apply(r *Room) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.IsCustom != nil {
		r.IsCustom = *p.IsCustom
	}
}

// ItemPatch updates item attributes. URL and tag slices replace the stored
// slice wholesale when present; element-level edits are the boundary's job.
type ItemPatch struct {
	Name         *string
	Description  *string
	Category     *string
	Cost         *float64
	Quantity     *int
	PurchaseDate *string
	Retailer     *string
	Model        *string
	SerialNumber *string
	Brand        *string
	Condition    *string
	Notes        *string
	ImageURLs    []string
	DocumentURLs []string
	Tags         []string
	UpdatedBy    *int64
}

// Apply merges the patch into it field by field.
func (p ItemPatch) Apply(it *Item) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Description != nil {
		it.Description = p.Description
	}
	if p.Category != nil {
		it.Category = p.Category
	}
	if p.Cost != nil {
		it.Cost = *p.Cost
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.PurchaseDate != nil {
		it.PurchaseDate = p.PurchaseDate
	}
	if p.Retailer != nil {
		it.Retailer = p.Retailer
	}
	if p.Model != nil {
		it.Model = p.Model
	}
	if p.SerialNumber != nil {
		it.SerialNumber = p.SerialNumber
	}
	if p.Brand != nil {
		it.Brand = p.Brand
	}
	if p.Condition != nil {
		it.Condition = p.Condition
	}
	if p.Notes != nil {
		it.Notes = p.Notes
	}
	if p.ImageURLs != nil {
		it.ImageURLs = make([]string, len(p.ImageURLs))
		copy(it.ImageURLs, p.ImageURLs)
	}
	if p.DocumentURLs != nil {
		it.DocumentURLs = make([]string, len(p.DocumentURLs))
		copy(it.DocumentURLs, p.DocumentURLs)
	}
	if p.Tags != nil {
		it.Tags = make([]string, len(p.Tags))
		copy(it.Tags, p.Tags)
	}
	if p.UpdatedBy != nil {
		it.UpdatedBy = p.UpdatedBy
	}
}

// DocumentationPatch updates documentation descriptors. The owning item and
// uploader are immutable once created.
type DocumentationPatch struct {
	DocumentType *DocumentType
	SourceType   *SourceType
	Title        *string
	Description  *string
	FileURL      *string
	SourceURL    *string
	SourceName   *string
	Metadata     map[string]string
}

// Apply merges the patch into d field by field.
func (p DocumentationPatch) Apply(d *Documentation) {
	if p.DocumentType != nil {
		d.DocumentType = *p.DocumentType
	}
	if p.SourceType != nil {
		d.SourceType = *p.SourceType
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = p.Description
	}
	if p.FileURL != nil {
		d.FileURL = *p.FileURL
	}
	if p.SourceURL != nil {
		d.SourceURL = p.SourceURL
	}
	if p.SourceName != nil {
		d.SourceName = p.SourceName
	}
	if p.Metadata != nil {
		meta := make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			meta[k] = v
		}
		d.Metadata = meta
	}
}

// CollaboratorPatch updates a collaborator's role, invite state, or email.
type CollaboratorPatch struct {
	Email        *string
	Role         *CollaboratorRole
	InviteStatus *InviteStatus
}

// Apply merges the patch into c field by field.
func (p CollaboratorPatch) Apply(c *Collaborator) {
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Role != nil {
		c.Role = *p.Role
	}
	if p.InviteStatus != nil {
		c.InviteStatus = *p.InviteStatus
	}
}
