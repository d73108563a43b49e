package service

import (
	"time"

	"tender-marketplace-api/internal/entity"
)

// rfc3339UTC renders a timestamp as RFC3339 with a Z suffix.
func rfc3339UTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func mapTender(t *entity.Tender) *entity.TenderOutput {
	return &entity.TenderOutput{
		ID:             t.ID.String(),
		Name:           t.Name,
		Description:    t.Description,
		ServiceType:    t.ServiceType,
		Status:         t.Status,
		OrganizationID: t.OrganizationID.String(),
		Version:        t.Version,
		CreatedAt:      rfc3339UTC(t.CreatedAt),
	}
}

func mapTenders(tenders []entity.Tender) []entity.TenderOutput {
	out := make([]entity.TenderOutput, 0, len(tenders))
	for i := range tenders {
		out = append(out, *mapTender(&tenders[i]))
	}

	return out
}

func mapBid(b *entity.Bid) *entity.BidOutput {
	return &entity.BidOutput{
		ID:          b.ID.String(),
		Name:        b.Name,
		Description: b.Description,
		Status:      b.Status,
		TenderID:    b.TenderID.String(),
		AuthorType:  b.AuthorType,
		AuthorID:    b.AuthorID.String(),
		Version:     b.Version,
		CreatedAt:   rfc3339UTC(b.CreatedAt),
	}
}

func mapBids(bids []entity.Bid) []entity.BidOutput {
	out := make([]entity.BidOutput, 0, len(bids))
	for i := range bids {
		out = append(out, *mapBid(&bids[i]))
	}

	return out
}

func mapFeedback(f *entity.BidFeedback) *entity.BidFeedbackOutput {
	return &entity.BidFeedbackOutput{
		ID:          f.ID.String(),
		Description: f.Feedback,
		CreatedAt:   rfc3339UTC(f.CreatedAt),
	}
}

func mapFeedbacks(feedbacks []entity.BidFeedback) []entity.BidFeedbackOutput {
	out := make([]entity.BidFeedbackOutput, 0, len(feedbacks))
	for i := range feedbacks {
		out = append(out, *mapFeedback(&feedbacks[i]))
	}

	return out
}
