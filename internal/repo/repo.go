package repo

import (
	"context"

	"github.com/google/uuid"

	"tender-marketplace-api/internal/entity"
	"tender-marketplace-api/internal/repo/pgdb"
	"tender-marketplace-api/pkg/postgres"
)

type Diagnostics interface {
	Ping() error
}

type Employee interface {
	GetEmployeeIDByUsername(ctx context.Context, username string) (uuid.UUID, error)
	OrganizationExists(ctx context.Context, id uuid.UUID) (bool, error)
	IsResponsible(ctx context.Context, userID, organizationID uuid.UUID) (bool, error)
	IsResponsibleForAny(ctx context.Context, userID uuid.UUID) (bool, error)
	ResponsibleOrganizationIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CountResponsibles(ctx context.Context, organizationID uuid.UUID) (int, error)
}

type Tender interface {
	CreateTender(ctx context.Context, input *entity.CreateTenderInput, organizationID uuid.UUID) (uuid.UUID, error)
	GetTenderByID(ctx context.Context, id uuid.UUID) (*entity.Tender, error)
	GetPublishedTenders(ctx context.Context, serviceTypes []string, pg entity.Pagination) ([]entity.Tender, error)
	GetUserTenders(ctx context.Context, userID uuid.UUID, pg entity.Pagination) ([]entity.Tender, error)
	UpdateTender(ctx context.Context, t *entity.Tender, name, description, serviceType string) error
	UpdateTenderStatus(ctx context.Context, t *entity.Tender, newStatus string) error
	RollbackTender(ctx context.Context, t *entity.Tender, version int) error
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput, tenderID, authorID uuid.UUID) (uuid.UUID, error)
	GetBidByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error)
	GetUserBids(ctx context.Context, userID uuid.UUID, organizationIDs []uuid.UUID, pg entity.Pagination) ([]entity.Bid, error)
	GetTenderBids(ctx context.Context, tenderID, userID uuid.UUID, viewAll bool, pg entity.Pagination) ([]entity.Bid, error)
	UpdateBid(ctx context.Context, b *entity.Bid, name, description string) error
	UpdateBidStatus(ctx context.Context, b *entity.Bid, newStatus string) error
	RollbackBid(ctx context.Context, b *entity.Bid, version int) error
	SubmitDecision(ctx context.Context, b *entity.Bid, userID uuid.UUID, decision string, organizationID uuid.UUID) (entity.DecisionOutcome, error)
	SubmitFeedback(ctx context.Context, bidID, userID uuid.UUID, feedback string) error
	GetFeedbackForAuthor(ctx context.Context, authorID uuid.UUID, pg entity.Pagination) ([]entity.BidFeedback, error)
	AuthorHasBids(ctx context.Context, authorID uuid.UUID) (bool, error)
}

type Repositories struct {
	Diagnostics
	Employee
	Tender
	Bid
}

func NewRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(pg),
		Employee:    pgdb.NewEmployeeRepo(pg),
		Tender:      pgdb.NewTenderRepo(pg),
		Bid:         pgdb.NewBidRepo(pg),
	}
}
