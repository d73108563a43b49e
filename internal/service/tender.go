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

type TenderService struct {
	tenderRepo   repo.Tender
	employeeRepo repo.Employee
}

func NewTenderService(repos *repo.Repositories) *TenderService {
	return &TenderService{
		tenderRepo:   repos.Tender,
		employeeRepo: repos.Employee,
	}
}

func (s *TenderService) CreateTender(ctx context.Context, input *entity.CreateTenderInput) (*entity.TenderOutput, error) {
	userID, err := s.resolveUser(ctx, input.CreatorUsername)
	if err != nil {
		return nil, err
	}

	organizationID, err := uuid.Parse(input.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("parse organization id: %w", err)
	}

	exists, err := s.employeeRepo.OrganizationExists(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOrganizationNotFound
	}

	isResponsible, err := s.employeeRepo.IsResponsible(ctx, userID, organizationID)
	if err != nil {
		return nil, err
	}
	if !isResponsible {
		return nil, ErrNotResponsible
	}

	id, err := s.tenderRepo.CreateTender(ctx, input, organizationID)
	if err != nil {
		return nil, err
	}

	tender, err := s.tenderRepo.GetTenderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return mapTender(tender), nil
}

func (s *TenderService) GetPublishedTenders(ctx context.Context, serviceTypes []string, pg entity.Pagination) ([]entity.TenderOutput, error) {
	tenders, err := s.tenderRepo.GetPublishedTenders(ctx, serviceTypes, pg)
	if err != nil {
		return nil, err
	}

	return mapTenders(tenders), nil
}

func (s *TenderService) GetUserTenders(ctx context.Context, username string, pg entity.Pagination) ([]entity.TenderOutput, error) {
	userID, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	tenders, err := s.tenderRepo.GetUserTenders(ctx, userID, pg)
	if err != nil {
		return nil, err
	}

	return mapTenders(tenders), nil
}

// GetTenderStatus returns the tender's status. Unpublished tenders are
// visible only to responsibles of the owning organization.
func (s *TenderService) GetTenderStatus(ctx context.Context, tenderID, username string) (string, error) {
	userID, err := s.resolveUser(ctx, username)
	if err != nil {
		return "", err
	}

	tender, err := s.getTender(ctx, tenderID)
	if err != nil {
		return "", err
	}

	if tender.Status == common.Published {
		return tender.Status, nil
	}

	isResponsible, err := s.employeeRepo.IsResponsible(ctx, userID, tender.OrganizationID)
	if err != nil {
		return "", err
	}
	if !isResponsible {
		return "", ErrTenderAccessDenied
	}

	return tender.Status, nil
}

// UpdateTenderStatus always snapshots the pre-change state and advances the
// version, even when the status value does not change.
func (s *TenderService) UpdateTenderStatus(ctx context.Context, tenderID, newStatus, username string) (*entity.TenderOutput, error) {
	tender, err := s.authorizeTenderMutation(ctx, tenderID, username)
	if err != nil {
		return nil, err
	}

	if err := s.tenderRepo.UpdateTenderStatus(ctx, tender, newStatus); err != nil {
		return nil, err
	}

	tender, err = s.tenderRepo.GetTenderByID(ctx, tender.ID)
	if err != nil {
		return nil, err
	}

	return mapTender(tender), nil
}

// EditTender applies a partial edit. If no provided field differs from the
// current value, nothing is written: no history row, no version bump.
func (s *TenderService) EditTender(ctx context.Context, tenderID, username string, upd entity.UpdateTenderInput) (*entity.TenderOutput, error) {
	tender, err := s.authorizeTenderMutation(ctx, tenderID, username)
	if err != nil {
		return nil, err
	}

	name, description, serviceType := tender.Name, tender.Description, tender.ServiceType
	if upd.Name != "" {
		name = upd.Name
	}
	if upd.Description != "" {
		description = upd.Description
	}
	if upd.ServiceType != "" {
		serviceType = upd.ServiceType
	}

	if name == tender.Name && description == tender.Description && serviceType == tender.ServiceType {
		return mapTender(tender), nil
	}

	if err := s.tenderRepo.UpdateTender(ctx, tender, name, description, serviceType); err != nil {
		return nil, err
	}

	tender, err = s.tenderRepo.GetTenderByID(ctx, tender.ID)
	if err != nil {
		return nil, err
	}

	return mapTender(tender), nil
}

// RollbackTender makes the historical snapshot at version the tender's new
// current state, under a fresh version number.
func (s *TenderService) RollbackTender(ctx context.Context, tenderID string, version int, username string) (*entity.TenderOutput, error) {
	tender, err := s.authorizeTenderMutation(ctx, tenderID, username)
	if err != nil {
		return nil, err
	}

	if err := s.tenderRepo.RollbackTender(ctx, tender, version); err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrTenderVersionNotFound
		}

		return nil, err
	}

	tender, err = s.tenderRepo.GetTenderByID(ctx, tender.ID)
	if err != nil {
		return nil, err
	}

	return mapTender(tender), nil
}

func (s *TenderService) resolveUser(ctx context.Context, username string) (uuid.UUID, error) {
	userID, err := s.employeeRepo.GetEmployeeIDByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return uuid.Nil, ErrUserNotFound
		}

		return uuid.Nil, err
	}

	return userID, nil
}

func (s *TenderService) getTender(ctx context.Context, tenderID string) (*entity.Tender, error) {
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

func (s *TenderService) authorizeTenderMutation(ctx context.Context, tenderID, username string) (*entity.Tender, error) {
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
	if !isResponsible {
		return nil, ErrTenderAccessDenied
	}

	return tender, nil
}
