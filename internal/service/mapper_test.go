package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tender-marketplace-api/internal/common"
	"tender-marketplace-api/internal/entity"
)

func TestMapTender(t *testing.T) {
	created := time.Date(2024, 9, 1, 12, 30, 0, 0, time.FixedZone("MSK", 3*60*60))
	tender := &entity.Tender{
		ID:             uuid.New(),
		Name:           "Office renovation",
		Description:    "Full renovation of the third floor",
		ServiceType:    common.Construction,
		Status:         common.Published,
		OrganizationID: uuid.New(),
		Version:        3,
		CreatedAt:      created,
	}

	out := mapTender(tender)
	require.Equal(t, tender.ID.String(), out.ID)
	require.Equal(t, tender.OrganizationID.String(), out.OrganizationID)
	require.Equal(t, 3, out.Version)
	// Timestamps are rendered in UTC with a Z suffix.
	require.Equal(t, "2024-09-01T09:30:00Z", out.CreatedAt)
}

func TestMapBid(t *testing.T) {
	bid := &entity.Bid{
		ID:         uuid.New(),
		Name:       "Renovation crew",
		Status:     common.Created,
		TenderID:   uuid.New(),
		AuthorType: common.AuthorUser,
		AuthorID:   uuid.New(),
		Version:    1,
		CreatedAt:  time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC),
	}

	out := mapBid(bid)
	require.Equal(t, bid.TenderID.String(), out.TenderID)
	require.Equal(t, common.AuthorUser, out.AuthorType)
	require.Equal(t, "2024-09-01T09:00:00Z", out.CreatedAt)
}

func TestMapFeedback(t *testing.T) {
	f := &entity.BidFeedback{
		ID:        uuid.New(),
		Feedback:  "Good work",
		CreatedAt: time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC),
	}

	out := mapFeedback(f)
	require.Equal(t, f.ID.String(), out.ID)
	require.Equal(t, "Good work", out.Description)
	require.Equal(t, "2024-09-01T09:00:00Z", out.CreatedAt)
}
