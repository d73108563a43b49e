package entity

import (
	"time"

	"github.com/google/uuid"
)

// BidFeedback is append-only reviewer commentary on a bid.
type BidFeedback struct {
	ID        uuid.UUID
	BidID     uuid.UUID
	UserID    uuid.UUID
	Feedback  string
	CreatedAt time.Time
}

// BidFeedbackOutput is the wire representation of one feedback entry.
type BidFeedbackOutput struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}
