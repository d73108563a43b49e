package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tender-marketplace-api/internal/common"
	"tender-marketplace-api/internal/entity"
	"tender-marketplace-api/internal/repo"
	"tender-marketplace-api/internal/repo/repoerrs"
)

type BidService struct {
	bidRepo      repo.Bid
	tenderRepo   repo.Tender
	employeeRepo repo.Employee
}

func NewBidService(repos *repo.Repositories) *BidService {
	return &BidService{
		bidRepo:      repos.Bid,
		tenderRepo:   repos.Tender,
		employeeRepo: repos.Employee,
	}
}

// CreateBid inserts a bid against an existing tender. An organization-typed
// author only has to be responsible for some organization, not necessarily
// the tender's.
func (s *BidService) CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutput, error) {
	tenderID, err := uuid.Parse(input.TenderID)
	if err != nil {
		return nil, fmt.Errorf("parse tender id: %w", err)
	}

	if _, err := s.tenderRepo.GetTenderByID(ctx, tenderID); err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrTenderNotFound
		}

		return nil, err
	}

	authorID, err := uuid.Parse(input.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("parse author id: %w", err)
	}

	if input.AuthorType == common.AuthorOrganization {
		responsible, err := s.employeeRepo.IsResponsibleForAny(ctx, authorID)
		if err != nil {
			return nil, err
		}
		if !responsible {
			return nil, ErrNotResponsible
		}
	}

	id, err := s.bidRepo.CreateBid(ctx, input, tenderID, authorID)
	if err != nil {
		return nil, err
	}

	bid, err := s.bidRepo.GetBidByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

func (s *BidService) GetUserBids(ctx context.Context, username string, pg entity.Pagination) ([]entity.BidOutput, error) {
	userID, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	organizationIDs, err := s.employeeRepo.ResponsibleOrganizationIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.GetUserBids(ctx, userID, organizationIDs, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

func (s *BidService) GetTenderBids(ctx context.Context, tenderID, username string, pg entity.Pagination) ([]entity.BidOutput, error) {
	userID, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	tender, err := s.getTender(ctx, tenderID)
	if err != nil {
		return nil, err
	}

	isResponsible, err := s.employeeRepo.IsResponsible(ctx, userID, tender.OrganizationID)
	if err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.GetTenderBids(ctx, tender.ID, userID, isResponsible, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

// GetBidStatus returns the bid's status to its author, to responsibles of the
// tender's organization, or to anyone once the bid is published.
func (s *BidService) GetBidStatus(ctx context.Context, bidID, username string) (string, error) {
	userID, err := s.resolveUser(ctx, username)
	if err != nil {
		return "", err
	}

	bid, err := s.getBid(ctx, bidID)
	if err != nil {
		return "", err
	}

	if bid.Status == common.Published || bid.AuthorID == userID {
		return bid.Status, nil
	}

	tender, err := s.tenderRepo.GetTenderByID(ctx, bid.TenderID)
	if err != nil {
		return "", err
	}

	isResponsible, err := s.employeeRepo.IsResponsible(ctx, userID, tender.OrganizationID)
	if err != nil {
		return "", err
	}
	if !isResponsible {
		return "", ErrBidAccessDenied
	}

	return bid.Status, nil
}

func (s *BidService) UpdateBidStatus(ctx context.Context, bidID, newStatus, username string) (*entity.BidOutput, error) {
	bid, err := s.authorizeBidMutation(ctx, bidID, username)
	if err != nil {
		return nil, err
	}

	if err := s.bidRepo.UpdateBidStatus(ctx, bid, newStatus); err != nil {
		return nil, err
	}

	bid, err = s.bidRepo.GetBidByID(ctx, bid.ID)
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

// EditBid applies a partial edit under the no-op rule: when no provided field
// differs from the current value, nothing is written.
func (s *BidService) EditBid(ctx context.Context, bidID, username string, upd entity.UpdateBidInput) (*entity.BidOutput, error) {
	bid, err := s.authorizeBidMutation(ctx, bidID, username)
	if err != nil {
		return nil, err
	}

	name, description := bid.Name, bid.Description
	if upd.Name != "" {
		name = upd.Name
	}
	if upd.Description != "" {
		description = upd.Description
	}

	if name == bid.Name && description == bid.Description {
		return mapBid(bid), nil
	}

	if err := s.bidRepo.UpdateBid(ctx, bid, name, description); err != nil {
		return nil, err
	}

	bid, err = s.bidRepo.GetBidByID(ctx, bid.ID)
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

func (s *BidService) RollbackBid(ctx context.Context, bidID string, version int, username string) (*entity.BidOutput, error) {
	bid, err := s.authorizeBidMutation(ctx, bidID, username)
	if err != nil {
		return nil, err
	}

	if err := s.bidRepo.RollbackBid(ctx, bid, version); err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrBidVersionNotFound
		}

		return nil, err
	}

	bid, err = s.bidRepo.GetBidByID(ctx, bid.ID)
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

// SubmitDecision records a reviewer's vote on a bid. Only responsibles of the
// tender's organization may vote. A single rejection cancels the bid no
// matter how many approvals exist; approvals reaching quorum close the
// tender.
func (s *BidService) SubmitDecision(ctx context.Context, bidID, decision, username string) (*entity.BidOutput, error) {
	userID, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	bid, err := s.getBid(ctx, bidID)
	if err != nil {
		return nil, err
	}

	tender, err := s.tenderRepo.GetTenderByID(ctx, bid.TenderID)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrTenderNotFound
		}

		return nil, err
	}

	isResponsible, err := s.employeeRepo.IsResponsible(ctx, userID, tender.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !isResponsible {
		return nil, ErrBidAccessDenied
	}

	if _, err := s.bidRepo.SubmitDecision(ctx, bid, userID, decision, tender.OrganizationID); err != nil {
		return nil, err
	}

	bid, err = s.bidRepo.GetBidByID(ctx, bid.ID)
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

func (s *BidService) SubmitFeedback(ctx context.Context, bidID, username, feedback string) (*entity.BidOutput, error) {
	userID, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	bid, err := s.getBid(ctx, bidID)
	if err != nil {
		return nil, err
	}

	tender, err := s.tenderRepo.GetTenderByID(ctx, bid.TenderID)
	if err != nil {
		return nil, err
	}

	isResponsible, err := s.employeeRepo.IsResponsible(ctx, userID, tender.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !isResponsible {
		return nil, ErrBidAccessDenied
	}

	if err := s.bidRepo.SubmitFeedback(ctx, bid.ID, userID, feedback); err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

// GetAuthorReviews lists feedback left on the author's bids. The tender only
// gates authorization: returned feedback spans all of the author's bids, not
// just those on this tender.
func (s *BidService) GetAuthorReviews(ctx context.Context, tenderID, authorUsername, requesterUsername string, pg entity.Pagination) ([]entity.BidFeedbackOutput, error) {
	authorID, err := s.employeeRepo.GetEmployeeIDByUsername(ctx, authorUsername)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrAuthorNotFound
		}

		return nil, err
	}

	requesterID, err := s.resolveUser(ctx, requesterUsername)
	if err != nil {
		return nil, err
	}

	tender, err := s.getTender(ctx, tenderID)
	if err != nil {
		return nil, err
	}

	isResponsible, err := s.employeeRepo.IsResponsible(ctx, requesterID, tender.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !isResponsible {
		return nil, ErrTenderAccessDenied
	}

	hasBids, err := s.bidRepo.AuthorHasBids(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !hasBids {
		return nil, ErrBidNotFound
	}

	feedbacks, err := s.bidRepo.GetFeedbackForAuthor(ctx, authorID, pg)
	if err != nil {
		return nil, err
	}

	return mapFeedbacks(feedbacks), nil
}

func (s *BidService) resolveUser(ctx context.Context, username string) (uuid.UUID, error) {
	userID, err := s.employeeRepo.GetEmployeeIDByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return uuid.Nil, ErrUserNotFound
		}

		return uuid.Nil, err
	}

	return userID, nil
}

func (s *BidService) getBid(ctx context.Context, bidID string) (*entity.Bid, error) {
	id, err := uuid.Parse(bidID)
	if err != nil {
		return nil, fmt.Errorf("parse bid id: %w", err)
	}

	bid, err := s.bidRepo.GetBidByID(ctx, id)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	return bid, nil
}

func (s *BidService) getTender(ctx context.Context, tenderID string) (*entity.Tender, error) {
	id, err := uuid.Parse(tenderID)
	if err != nil {
		return nil, fmt.Errorf("parse tender id: %w", err)
	}

	tender, err := s.tenderRepo.GetTenderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrTenderNotFound
		}

		return nil, err
	}

	return tender, nil
}

// authorizeBidMutation loads the bid and allows the mutation for the bid's
// author or a responsible of the tender's owning organization.
func (s *BidService) authorizeBidMutation(ctx context.Context, bidID, username string) (*entity.Bid, error) {
	userID, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	bid, err := s.getBid(ctx, bidID)
	if err != nil {
		return nil, err
	}

	if bid.AuthorID == userID {
		return bid, nil
	}

	tender, err := s.tenderRepo.GetTenderByID(ctx, bid.TenderID)
	if err != nil {
		return nil, err
	}

	isResponsible, err := s.employeeRepo.IsResponsible(ctx, userID, tender.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !isResponsible {
		return nil, ErrBidAccessDenied
	}

	return bid, nil
}
