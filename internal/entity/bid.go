package entity

import (
	"time"

	"github.com/google/uuid"
)

// Bid is a proposal submitted against a tender. AuthorID is polymorphic: it
// holds an employee id when AuthorType is "User" and an organization id when
// AuthorType is "Organization"; no referential constraint spans the two.
type Bid struct {
	ID          uuid.UUID
	Name        string
	Description string
	Status      string
	TenderID    uuid.UUID
	AuthorType  string
	AuthorID    uuid.UUID
	Version     int
	CreatedAt   time.Time
}

type CreateBidInput struct {
	Name        string
	Description string
	TenderID    string
	AuthorType  string
	AuthorID    string
}

// UpdateBidInput carries a partial edit. Empty fields mean "keep the current
// value".
type UpdateBidInput struct {
	Name        string
	Description string
}

func (u UpdateBidInput) Empty() bool {
	return u.Name == "" && u.Description == ""
}

// DecisionOutcome names the state transition a recorded vote produced.
type DecisionOutcome int

const (
	// DecisionPending: the vote was recorded, nothing transitioned.
	DecisionPending DecisionOutcome = iota
	// BidCanceled: a rejection exists for the bid, so it was canceled.
	BidCanceled
	// TenderClosed: approvals reached quorum and the tender was closed.
	TenderClosed
)

// BidOutput is the wire representation of a bid.
type BidOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	TenderID    string `json:"tenderId"`
	AuthorType  string `json:"authorType"`
	AuthorID    string `json:"authorId"`
	Version     int    `json:"version"`
	CreatedAt   string `json:"createdAt"`
}
