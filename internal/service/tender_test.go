package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tender-marketplace-api/internal/common"
	"tender-marketplace-api/internal/entity"
	"tender-marketplace-api/internal/repo"
	"tender-marketplace-api/internal/repo/repoerrs"
	"tender-marketplace-api/internal/service"
)

func newTenderService(tenders *mockTenderRepo, employees *mockEmployeeRepo) *service.TenderService {
	return service.NewTenderService(&repo.Repositories{
		Tender:   tenders,
		Employee: employees,
	})
}

func fixedTender(orgID uuid.UUID, status string) *entity.Tender {
	return &entity.Tender{
		ID:             uuid.New(),
		Name:           "Office renovation",
		Description:    "Full renovation of the third floor",
		ServiceType:    common.Construction,
		Status:         status,
		OrganizationID: orgID,
		Version:        1,
		CreatedAt:      time.Now(),
	}
}

func TestCreateTender(t *testing.T) {
	userID := uuid.New()
	orgID := uuid.New()

	tenders := &mockTenderRepo{}
	employees := &mockEmployeeRepo{
		users:       map[string]uuid.UUID{"alice": userID},
		orgExists:   true,
		responsible: true,
	}
	svc := newTenderService(tenders, employees)

	out, err := svc.CreateTender(context.Background(), &entity.CreateTenderInput{
		Name:            "Office renovation",
		Description:     "Full renovation of the third floor",
		ServiceType:     common.Construction,
		OrganizationID:  orgID.String(),
		CreatorUsername: "alice",
	})
	require.NoError(t, err)
	require.Equal(t, common.Created, out.Status)
	require.Equal(t, 1, out.Version)
	require.Equal(t, orgID.String(), out.OrganizationID)
}

func TestCreateTenderUnknownUser(t *testing.T) {
	svc := newTenderService(&mockTenderRepo{}, &mockEmployeeRepo{users: map[string]uuid.UUID{}})

	_, err := svc.CreateTender(context.Background(), &entity.CreateTenderInput{
		Name:            "Office renovation",
		ServiceType:     common.Construction,
		OrganizationID:  uuid.New().String(),
		CreatorUsername: "ghost",
	})
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestCreateTenderOrganizationMissing(t *testing.T) {
	svc := newTenderService(&mockTenderRepo{}, &mockEmployeeRepo{
		users:     map[string]uuid.UUID{"alice": uuid.New()},
		orgExists: false,
	})

	_, err := svc.CreateTender(context.Background(), &entity.CreateTenderInput{
		Name:            "Office renovation",
		ServiceType:     common.Construction,
		OrganizationID:  uuid.New().String(),
		CreatorUsername: "alice",
	})
	require.ErrorIs(t, err, service.ErrOrganizationNotFound)
}

func TestCreateTenderNotResponsible(t *testing.T) {
	svc := newTenderService(&mockTenderRepo{}, &mockEmployeeRepo{
		users:       map[string]uuid.UUID{"alice": uuid.New()},
		orgExists:   true,
		responsible: false,
	})

	_, err := svc.CreateTender(context.Background(), &entity.CreateTenderInput{
		Name:            "Office renovation",
		ServiceType:     common.Construction,
		OrganizationID:  uuid.New().String(),
		CreatorUsername: "alice",
	})
	require.ErrorIs(t, err, service.ErrNotResponsible)
}

func TestGetTenderStatus(t *testing.T) {
	orgID := uuid.New()

	t.Run("published tender is visible to anyone", func(t *testing.T) {
		tenders := &mockTenderRepo{tender: fixedTender(orgID, common.Published)}
		svc := newTenderService(tenders, &mockEmployeeRepo{
			users:       map[string]uuid.UUID{"bob": uuid.New()},
			responsible: false,
		})

		status, err := svc.GetTenderStatus(context.Background(), tenders.tender.ID.String(), "bob")
		require.NoError(t, err)
		require.Equal(t, common.Published, status)
	})

	t.Run("unpublished tender is hidden from outsiders", func(t *testing.T) {
		tenders := &mockTenderRepo{tender: fixedTender(orgID, common.Created)}
		svc := newTenderService(tenders, &mockEmployeeRepo{
			users:       map[string]uuid.UUID{"bob": uuid.New()},
			responsible: false,
		})

		_, err := svc.GetTenderStatus(context.Background(), tenders.tender.ID.String(), "bob")
		require.ErrorIs(t, err, service.ErrTenderAccessDenied)
	})

	t.Run("unpublished tender is visible to a responsible", func(t *testing.T) {
		tenders := &mockTenderRepo{tender: fixedTender(orgID, common.Created)}
		svc := newTenderService(tenders, &mockEmployeeRepo{
			users:       map[string]uuid.UUID{"alice": uuid.New()},
			responsible: true,
		})

		status, err := svc.GetTenderStatus(context.Background(), tenders.tender.ID.String(), "alice")
		require.NoError(t, err)
		require.Equal(t, common.Created, status)
	})

	t.Run("missing tender", func(t *testing.T) {
		svc := newTenderService(&mockTenderRepo{}, &mockEmployeeRepo{
			users: map[string]uuid.UUID{"alice": uuid.New()},
		})

		_, err := svc.GetTenderStatus(context.Background(), uuid.New().String(), "alice")
		require.ErrorIs(t, err, service.ErrTenderNotFound)
	})
}

func TestUpdateTenderStatusAlwaysAdvancesVersion(t *testing.T) {
	orgID := uuid.New()
	tenders := &mockTenderRepo{tender: fixedTender(orgID, common.Created)}
	svc := newTenderService(tenders, &mockEmployeeRepo{
		users:       map[string]uuid.UUID{"alice": uuid.New()},
		responsible: true,
	})

	// Setting the status to its current value is still a mutation.
	out, err := svc.UpdateTenderStatus(context.Background(), tenders.tender.ID.String(), common.Created, "alice")
	require.NoError(t, err)
	require.Equal(t, 1, tenders.statusCalls)
	require.Equal(t, 2, out.Version)
	require.Equal(t, common.Created, out.Status)
}

func TestEditTenderMergesProvidedFields(t *testing.T) {
	orgID := uuid.New()
	tenders := &mockTenderRepo{tender: fixedTender(orgID, common.Created)}
	svc := newTenderService(tenders, &mockEmployeeRepo{
		users:       map[string]uuid.UUID{"alice": uuid.New()},
		responsible: true,
	})

	out, err := svc.EditTender(context.Background(), tenders.tender.ID.String(), "alice", entity.UpdateTenderInput{
		Name: "Warehouse renovation",
	})
	require.NoError(t, err)
	require.Equal(t, 1, tenders.updateCalls)
	require.Equal(t, "Warehouse renovation", out.Name)
	require.Equal(t, "Full renovation of the third floor", out.Description)
	require.Equal(t, common.Construction, out.ServiceType)
	require.Equal(t, 2, out.Version)
}

func TestEditTenderNoOp(t *testing.T) {
	orgID := uuid.New()
	tenders := &mockTenderRepo{tender: fixedTender(orgID, common.Created)}
	svc := newTenderService(tenders, &mockEmployeeRepo{
		users:       map[string]uuid.UUID{"alice": uuid.New()},
		responsible: true,
	})

	// All provided values match the current state: no write, no version bump.
	out, err := svc.EditTender(context.Background(), tenders.tender.ID.String(), "alice", entity.UpdateTenderInput{
		Name:        "Office renovation",
		ServiceType: common.Construction,
	})
	require.NoError(t, err)
	require.Equal(t, 0, tenders.updateCalls)
	require.Equal(t, 1, out.Version)
}

func TestEditTenderAccessDenied(t *testing.T) {
	orgID := uuid.New()
	tenders := &mockTenderRepo{tender: fixedTender(orgID, common.Created)}
	svc := newTenderService(tenders, &mockEmployeeRepo{
		users:       map[string]uuid.UUID{"bob": uuid.New()},
		responsible: false,
	})

	_, err := svc.EditTender(context.Background(), tenders.tender.ID.String(), "bob", entity.UpdateTenderInput{
		Name: "Hijacked",
	})
	require.ErrorIs(t, err, service.ErrTenderAccessDenied)
	require.Equal(t, 0, tenders.updateCalls)
}

func TestRollbackTender(t *testing.T) {
	orgID := uuid.New()
	tenders := &mockTenderRepo{tender: fixedTender(orgID, common.Created)}
	svc := newTenderService(tenders, &mockEmployeeRepo{
		users:       map[string]uuid.UUID{"alice": uuid.New()},
		responsible: true,
	})

	out, err := svc.RollbackTender(context.Background(), tenders.tender.ID.String(), 1, "alice")
	require.NoError(t, err)
	require.Equal(t, 1, tenders.rollbackCalls)
	require.Equal(t, 2, out.Version)
}

func TestRollbackTenderVersionMissing(t *testing.T) {
	orgID := uuid.New()
	tenders := &mockTenderRepo{
		tender:      fixedTender(orgID, common.Created),
		rollbackErr: repoerrs.ErrNotFound,
	}
	svc := newTenderService(tenders, &mockEmployeeRepo{
		users:       map[string]uuid.UUID{"alice": uuid.New()},
		responsible: true,
	})

	_, err := svc.RollbackTender(context.Background(), tenders.tender.ID.String(), 42, "alice")
	require.ErrorIs(t, err, service.ErrTenderVersionNotFound)
}

func TestGetUserTendersUnknownUser(t *testing.T) {
	svc := newTenderService(&mockTenderRepo{}, &mockEmployeeRepo{users: map[string]uuid.UUID{}})

	_, err := svc.GetUserTenders(context.Background(), "ghost", entity.NewPagination(5, 0))
	require.ErrorIs(t, err, service.ErrUserNotFound)
}
