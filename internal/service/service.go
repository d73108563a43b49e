package service

import (
	"context"

	"tender-marketplace-api/internal/entity"
	"tender-marketplace-api/internal/repo"
)

type Diagnostics interface {
	Ping() error
}

type Tender interface {
	CreateTender(ctx context.Context, input *entity.CreateTenderInput) (*entity.TenderOutput, error)
	GetPublishedTenders(ctx context.Context, serviceTypes []string, pg entity.Pagination) ([]entity.TenderOutput, error)
	GetUserTenders(ctx context.Context, username string, pg entity.Pagination) ([]entity.TenderOutput, error)
	GetTenderStatus(ctx context.Context, tenderID, username string) (string, error)
	UpdateTenderStatus(ctx context.Context, tenderID, newStatus, username string) (*entity.TenderOutput, error)
	EditTender(ctx context.Context, tenderID, username string, upd entity.UpdateTenderInput) (*entity.TenderOutput, error)
	RollbackTender(ctx context.Context, tenderID string, version int, username string) (*entity.TenderOutput, error)
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutput, error)
	GetUserBids(ctx context.Context, username string, pg entity.Pagination) ([]entity.BidOutput, error)
	GetTenderBids(ctx context.Context, tenderID, username string, pg entity.Pagination) ([]entity.BidOutput, error)
	GetBidStatus(ctx context.Context, bidID, username string) (string, error)
	UpdateBidStatus(ctx context.Context, bidID, newStatus, username string) (*entity.BidOutput, error)
	EditBid(ctx context.Context, bidID, username string, upd entity.UpdateBidInput) (*entity.BidOutput, error)
	RollbackBid(ctx context.Context, bidID string, version int, username string) (*entity.BidOutput, error)
	SubmitDecision(ctx context.Context, bidID, decision, username string) (*entity.BidOutput, error)
	SubmitFeedback(ctx context.Context, bidID, username, feedback string) (*entity.BidOutput, error)
	GetAuthorReviews(ctx context.Context, tenderID, authorUsername, requesterUsername string, pg entity.Pagination) ([]entity.BidFeedbackOutput, error)
}

type Services struct {
	Diagnostics Diagnostics
	Tender      Tender
	Bid         Bid
}

func NewServices(repos *repo.Repositories) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Tender:      NewTenderService(repos),
		Bid:         NewBidService(repos),
	}
}
