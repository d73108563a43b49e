package controller

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"tender-marketplace-api/internal/entity"
	"tender-marketplace-api/internal/service"
)

type tenderRoutes struct {
	tenderService service.Tender
	validate      *validator.Validate
}

func newTenderRoutes(api *echo.Group, services *service.Services, v *validator.Validate) *tenderRoutes {
	h := &tenderRoutes{tenderService: services.Tender, validate: v}

	api.GET("/tenders", h.GetTenders)
	api.GET("/tenders/", h.GetTenders)
	api.POST("/tenders/new", h.CreateTender)
	api.GET("/tenders/my", h.GetUserTenders)
	api.GET("/tenders/:tenderId/status", h.GetTenderStatus)
	api.PUT("/tenders/:tenderId/status", h.UpdateTenderStatus)
	api.PATCH("/tenders/:tenderId/edit", h.EditTender)
	api.PUT("/tenders/:tenderId/rollback/:version", h.RollbackTender)

	return h
}

type getTendersInput struct {
	Limit        int      `query:"limit" validate:"gte=0,lte=50"`
	Offset       int      `query:"offset" validate:"gte=0"`
	ServiceTypes []string `query:"service_type" validate:"dive,oneof=Construction Delivery Manufacture"`
}

// GET /api/tenders
func (h *tenderRoutes) GetTenders(c echo.Context) error {
	input := getTendersInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return respondBadInput(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	tenders, err := h.tenderService.GetPublishedTenders(c.Request().Context(), input.ServiceTypes,
		entity.NewPagination(input.Limit, input.Offset))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tenders)
}

type createTenderInput struct {
	Name            string `json:"name" validate:"required,max=100"`
	Description     string `json:"description" validate:"required,max=500"`
	ServiceType     string `json:"serviceType" validate:"required,oneof=Construction Delivery Manufacture"`
	OrganizationID  string `json:"organizationId" validate:"required,uuid"`
	CreatorUsername string `json:"creatorUsername" validate:"required"`
}

// POST /api/tenders/new
func (h *tenderRoutes) CreateTender(c echo.Context) error {
	var input createTenderInput
	if err := c.Bind(&input); err != nil {
		return respondBadInput(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	tender, err := h.tenderService.CreateTender(c.Request().Context(), &entity.CreateTenderInput{
		Name:            input.Name,
		Description:     input.Description,
		ServiceType:     input.ServiceType,
		OrganizationID:  input.OrganizationID,
		CreatorUsername: input.CreatorUsername,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tender)
}

type getUserTendersInput struct {
	Limit    int    `query:"limit" validate:"gte=0,lte=50"`
	Offset   int    `query:"offset" validate:"gte=0"`
	Username string `query:"username" validate:"required"`
}

// GET /api/tenders/my
func (h *tenderRoutes) GetUserTenders(c echo.Context) error {
	input := getUserTendersInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return respondBadInput(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	tenders, err := h.tenderService.GetUserTenders(c.Request().Context(), input.Username,
		entity.NewPagination(input.Limit, input.Offset))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tenders)
}

type tenderStatusInput struct {
	TenderID string `validate:"required,uuid"`
	Username string `validate:"required"`
}

// GET /api/tenders/:tenderId/status
func (h *tenderRoutes) GetTenderStatus(c echo.Context) error {
	input := tenderStatusInput{TenderID: c.Param("tenderId"), Username: c.QueryParam("username")}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	status, err := h.tenderService.GetTenderStatus(c.Request().Context(), input.TenderID, input.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

type updateTenderStatusInput struct {
	TenderID string `validate:"required,uuid"`
	Status   string `validate:"required,oneof=Created Published Closed"`
	Username string `validate:"required"`
}

// PUT /api/tenders/:tenderId/status
func (h *tenderRoutes) UpdateTenderStatus(c echo.Context) error {
	input := updateTenderStatusInput{
		TenderID: c.Param("tenderId"),
		Status:   c.QueryParam("status"),
		Username: c.QueryParam("username"),
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	tender, err := h.tenderService.UpdateTenderStatus(c.Request().Context(), input.TenderID, input.Status, input.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tender)
}

type editTenderInput struct {
	TenderID    string `param:"tenderId" validate:"required,uuid"`
	Username    string `query:"username" validate:"required"`
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
	ServiceType string `json:"serviceType" validate:"omitempty,oneof=Construction Delivery Manufacture"`
}

// PATCH /api/tenders/:tenderId/edit
func (h *tenderRoutes) EditTender(c echo.Context) error {
	var input editTenderInput
	if err := c.Bind(&input); err != nil {
		return respondBadInput(c)
	}
	input.TenderID = c.Param("tenderId")
	input.Username = c.QueryParam("username")
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	tender, err := h.tenderService.EditTender(c.Request().Context(), input.TenderID, input.Username,
		entity.UpdateTenderInput{
			Name:        input.Name,
			Description: input.Description,
			ServiceType: input.ServiceType,
		})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tender)
}

type rollbackTenderInput struct {
	TenderID string `validate:"required,uuid"`
	Version  int    `validate:"required,min=1"`
	Username string `validate:"required"`
}

// PUT /api/tenders/:tenderId/rollback/:version
func (h *tenderRoutes) RollbackTender(c echo.Context) error {
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil {
		return respondBadInput(c)
	}

	input := rollbackTenderInput{
		TenderID: c.Param("tenderId"),
		Version:  version,
		Username: c.QueryParam("username"),
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	tender, err := h.tenderService.RollbackTender(c.Request().Context(), input.TenderID, input.Version, input.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tender)
}
