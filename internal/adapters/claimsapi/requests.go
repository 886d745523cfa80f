package claimsapi

import (
	"claimcore/pkg/domain"
)

// Request shapes decode the wire payloads and convert into domain values.
// Absent fields stay nil so patch conversion preserves merge semantics.

type userRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

func (r userRequest) toUser() domain.User {
	return domain.User{
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
		FullName: r.FullName,
	}
}

type userPatchRequest struct {
	Password *string `json:"password"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

func (r userPatchRequest) toPatch() domain.UserPatch {
	return domain.UserPatch{Password: r.Password, Email: r.Email, FullName: r.FullName}
}

type claimantRequest struct {
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	PolicyNumber  *string `json:"policy_number"`
	StreetAddress string  `json:"street_address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	ZipCode       string  `json:"zip_code"`
	Country       string  `json:"country"`
	Language      string  `json:"language"`
	Currency      string  `json:"currency"`
}

func (r claimantRequest) toClaimant() domain.Claimant {
	return domain.Claimant{
		FullName:      r.FullName,
		Email:         r.Email,
		Phone:         r.Phone,
		PolicyNumber:  r.PolicyNumber,
		StreetAddress: r.StreetAddress,
		City:          r.City,
		State:         r.State,
		ZipCode:       r.ZipCode,
		Country:       r.Country,
		Language:      r.Language,
		Currency:      r.Currency,
	}
}

type claimantPatchRequest struct {
	FullName      *string `json:"full_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	PolicyNumber  *string `json:"policy_number"`
	StreetAddress *string `json:"street_address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	ZipCode       *string `json:"zip_code"`
	Country       *string `json:"country"`
	Language      *string `json:"language"`
	Currency      *string `json:"currency"`
}

func (r claimantPatchRequest) toPatch() domain.ClaimantPatch {
	return domain.ClaimantPatch{
		FullName:      r.FullName,
		Email:         r.Email,
		Phone:         r.Phone,
		PolicyNumber:  r.PolicyNumber,
		StreetAddress: r.StreetAddress,
		City:          r.City,
		State:         r.State,
		ZipCode:       r.ZipCode,
		Country:       r.Country,
		Language:      r.Language,
		Currency:      r.Currency,
	}
}

type claimRequest struct {
	ClaimantID int64   `json:"claimant_id"`
	TotalValue float64 `json:"total_value"`
	Status     string  `json:"status"`
}

func (r claimRequest) toClaim() domain.Claim {
	return domain.Claim{
		ClaimantID: r.ClaimantID,
		TotalValue: r.TotalValue,
		Status:     domain.ClaimStatus(r.Status),
	}
}

type claimPatchRequest struct {
	TotalValue *float64 `json:"total_value"`
	Status     *string  `json:"status"`
}

func (r claimPatchRequest) toPatch() domain.ClaimPatch {
	patch := domain.ClaimPatch{TotalValue: r.TotalValue}
	if r.Status != nil {
		status := domain.ClaimStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

type roomRequest struct {
	ClaimID  int64  `json:"claim_id"`
	Name     string `json:"name"`
	IsCustom bool   `json:"is_custom"`
}

func (r roomRequest) toRoom() domain.Room {
	return domain.Room{ClaimID: r.ClaimID, Name: r.Name, IsCustom: r.IsCustom}
}

type roomPatchRequest struct {
	Name     *string `json:"name"`
	IsCustom *bool   `json:"is_custom"`
}

func (r roomPatchRequest) toPatch() domain.RoomPatch {
	return domain.RoomPatch{Name: r.Name, IsCustom: r.IsCustom}
}

type itemRequest struct {
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
}

func (r itemRequest) toItem() domain.Item {
	return domain.Item{
		RoomID:       r.RoomID,
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Cost:         r.Cost,
		Quantity:     r.Quantity,
		PurchaseDate: r.PurchaseDate,
		Retailer:     r.Retailer,
		Model:        r.Model,
		SerialNumber: r.SerialNumber,
		Brand:        r.Brand,
		Condition:    r.Condition,
		Notes:        r.Notes,
		ImageURLs:    r.ImageURLs,
		DocumentURLs: r.DocumentURLs,
		Tags:         r.Tags,
		CreatedBy:    r.CreatedBy,
	}
}

type itemPatchRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	Cost         *float64 `json:"cost"`
	Quantity     *int     `json:"quantity"`
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
	UpdatedBy    *int64   `json:"updated_by"`
}

func (r itemPatchRequest) toPatch() domain.ItemPatch {
	return domain.ItemPatch{
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Cost:         r.Cost,
		Quantity:     r.Quantity,
		PurchaseDate: r.PurchaseDate,
		Retailer:     r.Retailer,
		Model:        r.Model,
		SerialNumber: r.SerialNumber,
		Brand:        r.Brand,
		Condition:    r.Condition,
		Notes:        r.Notes,
		ImageURLs:    r.ImageURLs,
		DocumentURLs: r.DocumentURLs,
		Tags:         r.Tags,
		UpdatedBy:    r.UpdatedBy,
	}
}

type documentationRequest struct {
	ItemID       int64             `json:"item_id"`
	UserID       int64             `json:"user_id"`
	DocumentType string            `json:"document_type"`
	SourceType   string            `json:"source_type"`
	Title        string            `json:"title"`
	Description  *string           `json:"description"`
	FileURL      string            `json:"file_url"`
	SourceURL    *string           `json:"source_url"`
	SourceName   *string           `json:"source_name"`
	Metadata     map[string]string `json:"metadata"`
}

func (r documentationRequest) toDocumentation() domain.Documentation {
	return domain.Documentation{
		ItemID:       r.ItemID,
		UserID:       r.UserID,
		DocumentType: domain.DocumentType(r.DocumentType),
		SourceType:   domain.SourceType(r.SourceType),
		Title:        r.Title,
		Description:  r.Description,
		FileURL:      r.FileURL,
		SourceURL:    r.SourceURL,
		SourceName:   r.SourceName,
		Metadata:     r.Metadata,
	}
}

type documentationPatchRequest struct {
	DocumentType *string           `json:"document_type"`
	SourceType   *string           `json:"source_type"`
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	FileURL      *string           `json:"file_url"`
	SourceURL    *string           `json:"source_url"`
	SourceName   *string           `json:"source_name"`
	Metadata     map[string]string `json:"metadata"`
}

func (r documentationPatchRequest) toPatch() domain.DocumentationPatch {
	patch := domain.DocumentationPatch{
		Title:       r.Title,
		Description: r.Description,
		FileURL:     r.FileURL,
		SourceURL:   r.SourceURL,
		SourceName:  r.SourceName,
		Metadata:    r.Metadata,
	}
	if r.DocumentType != nil {
		dt := domain.DocumentType(*r.DocumentType)
		patch.DocumentType = &dt
	}
	if r.SourceType != nil {
		st := domain.SourceType(*r.SourceType)
		patch.SourceType = &st
	}
	return patch
}

type collaboratorRequest struct {
	ClaimID      int64  `json:"claim_id"`
	UserID       int64  `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	InviteStatus string `json:"invite_status"`
}

func (r collaboratorRequest) toCollaborator() domain.Collaborator {
	return domain.Collaborator{
		ClaimID:      r.ClaimID,
		UserID:       r.UserID,
		Email:        r.Email,
		Role:         domain.CollaboratorRole(r.Role),
		InviteStatus: domain.InviteStatus(r.InviteStatus),
	}
}

type collaboratorPatchRequest struct {
	Email        *string `json:"email"`
	Role         *string `json:"role"`
	InviteStatus *string `json:"invite_status"`
}

func (r collaboratorPatchRequest) toPatch() domain.CollaboratorPatch {
	patch := domain.CollaboratorPatch{Email: r.Email}
	if r.Role != nil {
		role := domain.CollaboratorRole(*r.Role)
		patch.Role = &role
	}
	if r.InviteStatus != nil {
		status := domain.InviteStatus(*r.InviteStatus)
		patch.InviteStatus = &status
	}
	return patch
}
