package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tender is the current state of a procurement request. Version starts at 1
// and advances by one on every successful mutation; the pre-mutation state is
// snapshotted into tender_history before the counter moves.
type Tender struct {
	ID             uuid.UUID
	Name           string
	Description    string
	ServiceType    string
	Status         string
	OrganizationID uuid.UUID
	Version        int
	CreatedAt      time.Time
}

type CreateTenderInput struct {
	Name            string
	Description     string
	ServiceType     string
	OrganizationID  string
	CreatorUsername string
}

// UpdateTenderInput carries a partial edit. Empty fields mean "keep the
// current value".
type UpdateTenderInput struct {
	Name        string
	Description string
	ServiceType string
}

// Empty reports whether the edit provides no fields at all.
func (u UpdateTenderInput) Empty() bool {
	return u.Name == "" && u.Description == "" && u.ServiceType == ""
}

// TenderOutput is the wire representation of a tender.
type TenderOutput struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ServiceType    string `json:"serviceType"`
	Status         string `json:"status"`
	OrganizationID string `json:"organizationId"`
	Version        int    `json:"version"`
	CreatedAt      string `json:"createdAt"`
}
