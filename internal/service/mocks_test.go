package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tender-marketplace-api/internal/common"
	"tender-marketplace-api/internal/entity"
	"tender-marketplace-api/internal/repo/repoerrs"
)

// mockEmployeeRepo answers identity and responsibility lookups from fixed
// fields.
type mockEmployeeRepo struct {
	users          map[string]uuid.UUID
	orgExists      bool
	responsible    bool
	responsibleAny bool
	orgIDs         []uuid.UUID
	responsibles   int
}

func (m *mockEmployeeRepo) GetEmployeeIDByUsername(_ context.Context, username string) (uuid.UUID, error) {
	id, ok := m.users[username]
	if !ok {
		return uuid.Nil, repoerrs.ErrNotFound
	}

	return id, nil
}

func (m *mockEmployeeRepo) OrganizationExists(_ context.Context, _ uuid.UUID) (bool, error) {
	return m.orgExists, nil
}

func (m *mockEmployeeRepo) IsResponsible(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return m.responsible, nil
}

func (m *mockEmployeeRepo) IsResponsibleForAny(_ context.Context, _ uuid.UUID) (bool, error) {
	return m.responsibleAny, nil
}

func (m *mockEmployeeRepo) ResponsibleOrganizationIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return m.orgIDs, nil
}

func (m *mockEmployeeRepo) CountResponsibles(_ context.Context, _ uuid.UUID) (int, error) {
	return m.responsibles, nil
}

// mockTenderRepo keeps a single tender in memory and applies mutations the
// way the real store would: bump the version, change the fields.
type mockTenderRepo struct {
	tender        *entity.Tender
	published     []entity.Tender
	userTenders   []entity.Tender
	updateCalls   int
	statusCalls   int
	rollbackCalls int
	rollbackErr   error
}

func (m *mockTenderRepo) CreateTender(_ context.Context, input *entity.CreateTenderInput, organizationID uuid.UUID) (uuid.UUID, error) {
	m.tender = &entity.Tender{
		ID:             uuid.New(),
		Name:           input.Name,
		Description:    input.Description,
		ServiceType:    input.ServiceType,
		Status:         common.Created,
		OrganizationID: organizationID,
		Version:        1,
		CreatedAt:      time.Now(),
	}

	return m.tender.ID, nil
}

func (m *mockTenderRepo) GetTenderByID(_ context.Context, id uuid.UUID) (*entity.Tender, error) {
	if m.tender == nil || m.tender.ID != id {
		return nil, repoerrs.ErrNotFound
	}

	t := *m.tender

	return &t, nil
}

func (m *mockTenderRepo) GetPublishedTenders(_ context.Context, _ []string, _ entity.Pagination) ([]entity.Tender, error) {
	return m.published, nil
}

func (m *mockTenderRepo) GetUserTenders(_ context.Context, _ uuid.UUID, _ entity.Pagination) ([]entity.Tender, error) {
	return m.userTenders, nil
}

func (m *mockTenderRepo) UpdateTender(_ context.Context, _ *entity.Tender, name, description, serviceType string) error {
	m.updateCalls++
	m.tender.Name = name
	m.tender.Description = description
	m.tender.ServiceType = serviceType
	m.tender.Version++

	return nil
}

func (m *mockTenderRepo) UpdateTenderStatus(_ context.Context, _ *entity.Tender, newStatus string) error {
	m.statusCalls++
	m.tender.Status = newStatus
	m.tender.Version++

	return nil
}

func (m *mockTenderRepo) RollbackTender(_ context.Context, _ *entity.Tender, _ int) error {
	if m.rollbackErr != nil {
		return m.rollbackErr
	}
	m.rollbackCalls++
	m.tender.Version++

	return nil
}

// mockBidRepo mirrors mockTenderRepo for bids and records decision and
// feedback submissions.
type mockBidRepo struct {
	bid           *entity.Bid
	userBids      []entity.Bid
	tenderBids    []entity.Bid
	feedbacks     []entity.BidFeedback
	hasBids       bool
	outcome       entity.DecisionOutcome
	decisions     []string
	feedbackTexts []string
	updateCalls   int
	statusCalls   int
	rollbackCalls int
	rollbackErr   error
	lastViewAll   bool
}

func (m *mockBidRepo) CreateBid(_ context.Context, input *entity.CreateBidInput, tenderID, authorID uuid.UUID) (uuid.UUID, error) {
	m.bid = &entity.Bid{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Status:      common.Created,
		TenderID:    tenderID,
		AuthorType:  input.AuthorType,
		AuthorID:    authorID,
		Version:     1,
		CreatedAt:   time.Now(),
	}

	return m.bid.ID, nil
}

func (m *mockBidRepo) GetBidByID(_ context.Context, id uuid.UUID) (*entity.Bid, error) {
	if m.bid == nil || m.bid.ID != id {
		return nil, repoerrs.ErrNotFound
	}

	b := *m.bid

	return &b, nil
}

func (m *mockBidRepo) GetUserBids(_ context.Context, _ uuid.UUID, _ []uuid.UUID, _ entity.Pagination) ([]entity.Bid, error) {
	return m.userBids, nil
}

func (m *mockBidRepo) GetTenderBids(_ context.Context, _, _ uuid.UUID, viewAll bool, _ entity.Pagination) ([]entity.Bid, error) {
	m.lastViewAll = viewAll

	return m.tenderBids, nil
}

func (m *mockBidRepo) UpdateBid(_ context.Context, _ *entity.Bid, name, description string) error {
	m.updateCalls++
	m.bid.Name = name
	m.bid.Description = description
	m.bid.Version++

	return nil
}

func (m *mockBidRepo) UpdateBidStatus(_ context.Context, _ *entity.Bid, newStatus string) error {
	m.statusCalls++
	m.bid.Status = newStatus
	m.bid.Version++

	return nil
}

func (m *mockBidRepo) RollbackBid(_ context.Context, _ *entity.Bid, _ int) error {
	if m.rollbackErr != nil {
		return m.rollbackErr
	}
	m.rollbackCalls++
	m.bid.Version++

	return nil
}

func (m *mockBidRepo) SubmitDecision(_ context.Context, _ *entity.Bid, _ uuid.UUID, decision string, _ uuid.UUID) (entity.DecisionOutcome, error) {
	m.decisions = append(m.decisions, decision)
	if m.outcome == entity.BidCanceled {
		m.bid.Status = common.Canceled
	}

	return m.outcome, nil
}

func (m *mockBidRepo) SubmitFeedback(_ context.Context, _, _ uuid.UUID, feedback string) error {
	m.feedbackTexts = append(m.feedbackTexts, feedback)

	return nil
}

func (m *mockBidRepo) GetFeedbackForAuthor(_ context.Context, _ uuid.UUID, _ entity.Pagination) ([]entity.BidFeedback, error) {
	return m.feedbacks, nil
}

func (m *mockBidRepo) AuthorHasBids(_ context.Context, _ uuid.UUID) (bool, error) {
	return m.hasBids, nil
}
