package controller

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"tender-marketplace-api/internal/entity"
	"tender-marketplace-api/internal/service"
)

type bidRoutes struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutes(api *echo.Group, services *service.Services, v *validator.Validate) *bidRoutes {
	h := &bidRoutes{bidService: services.Bid, validate: v}

	api.POST("/bids/new", h.CreateBid)
	api.GET("/bids/my", h.GetUserBids)
	api.GET("/bids/:tenderId/list", h.GetTenderBids)
	api.GET("/bids/:bidId/status", h.GetBidStatus)
	api.PUT("/bids/:bidId/status", h.UpdateBidStatus)
	api.PATCH("/bids/:bidId/edit", h.EditBid)
	api.PUT("/bids/:bidId/submit_decision", h.SubmitDecision)
	api.PUT("/bids/:bidId/feedback", h.SubmitFeedback)
	api.PUT("/bids/:bidId/rollback/:version", h.RollbackBid)
	api.GET("/bids/:tenderId/reviews", h.GetAuthorReviews)

	return h
}

type createBidInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	TenderID    string `json:"tenderId" validate:"required,uuid"`
	AuthorType  string `json:"authorType" validate:"required,oneof=User Organization"`
	AuthorID    string `json:"authorId" validate:"required,uuid"`
}

// POST /api/bids/new
func (h *bidRoutes) CreateBid(c echo.Context) error {
	var input createBidInput
	if err := c.Bind(&input); err != nil {
		return respondBadInput(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	bid, err := h.bidService.CreateBid(c.Request().Context(), &entity.CreateBidInput{
		Name:        input.Name,
		Description: input.Description,
		TenderID:    input.TenderID,
		AuthorType:  input.AuthorType,
		AuthorID:    input.AuthorID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

type getUserBidsInput struct {
	Limit    int    `query:"limit" validate:"gte=0,lte=50"`
	Offset   int    `query:"offset" validate:"gte=0"`
	Username string `query:"username" validate:"required"`
}

// GET /api/bids/my
func (h *bidRoutes) GetUserBids(c echo.Context) error {
	input := getUserBidsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return respondBadInput(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	bids, err := h.bidService.GetUserBids(c.Request().Context(), input.Username,
		entity.NewPagination(input.Limit, input.Offset))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bids)
}

type getTenderBidsInput struct {
	TenderID string `validate:"required,uuid"`
	Username string `query:"username" validate:"required"`
	Limit    int    `query:"limit" validate:"gte=0,lte=50"`
	Offset   int    `query:"offset" validate:"gte=0"`
}

// GET /api/bids/:tenderId/list
func (h *bidRoutes) GetTenderBids(c echo.Context) error {
	input := getTenderBidsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return respondBadInput(c)
	}
	input.TenderID = c.Param("tenderId")
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	bids, err := h.bidService.GetTenderBids(c.Request().Context(), input.TenderID, input.Username,
		entity.NewPagination(input.Limit, input.Offset))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bids)
}

type bidStatusInput struct {
	BidID    string `validate:"required,uuid"`
	Username string `validate:"required"`
}

// GET /api/bids/:bidId/status
func (h *bidRoutes) GetBidStatus(c echo.Context) error {
	input := bidStatusInput{BidID: c.Param("bidId"), Username: c.QueryParam("username")}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	status, err := h.bidService.GetBidStatus(c.Request().Context(), input.BidID, input.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

type updateBidStatusInput struct {
	BidID    string `validate:"required,uuid"`
	Status   string `validate:"required,oneof=Created Published Canceled"`
	Username string `validate:"required"`
}

// PUT /api/bids/:bidId/status
func (h *bidRoutes) UpdateBidStatus(c echo.Context) error {
	input := updateBidStatusInput{
		BidID:    c.Param("bidId"),
		Status:   c.QueryParam("status"),
		Username: c.QueryParam("username"),
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	bid, err := h.bidService.UpdateBidStatus(c.Request().Context(), input.BidID, input.Status, input.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

type editBidInput struct {
	BidID       string `param:"bidId" validate:"required,uuid"`
	Username    string `query:"username" validate:"required"`
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
}

// PATCH /api/bids/:bidId/edit
func (h *bidRoutes) EditBid(c echo.Context) error {
	var input editBidInput
	if err := c.Bind(&input); err != nil {
		return respondBadInput(c)
	}
	input.BidID = c.Param("bidId")
	input.Username = c.QueryParam("username")
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	bid, err := h.bidService.EditBid(c.Request().Context(), input.BidID, input.Username,
		entity.UpdateBidInput{Name: input.Name, Description: input.Description})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

type submitDecisionInput struct {
	BidID    string `validate:"required,uuid"`
	Decision string `validate:"required,oneof=Approved Rejected"`
	Username string `validate:"required"`
}

// PUT /api/bids/:bidId/submit_decision
func (h *bidRoutes) SubmitDecision(c echo.Context) error {
	input := submitDecisionInput{
		BidID:    c.Param("bidId"),
		Decision: c.QueryParam("decision"),
		Username: c.QueryParam("username"),
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	bid, err := h.bidService.SubmitDecision(c.Request().Context(), input.BidID, input.Decision, input.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

type submitFeedbackInput struct {
	BidID    string `validate:"required,uuid"`
	Feedback string `validate:"required,max=1000"`
	Username string `validate:"required"`
}

// PUT /api/bids/:bidId/feedback
func (h *bidRoutes) SubmitFeedback(c echo.Context) error {
	input := submitFeedbackInput{
		BidID:    c.Param("bidId"),
		Feedback: c.QueryParam("bidFeedback"),
		Username: c.QueryParam("username"),
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	bid, err := h.bidService.SubmitFeedback(c.Request().Context(), input.BidID, input.Username, input.Feedback)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

type rollbackBidInput struct {
	BidID    string `validate:"required,uuid"`
	Version  int    `validate:"required,min=1"`
	Username string `validate:"required"`
}

// PUT /api/bids/:bidId/rollback/:version
func (h *bidRoutes) RollbackBid(c echo.Context) error {
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil {
		return respondBadInput(c)
	}

	input := rollbackBidInput{
		BidID:    c.Param("bidId"),
		Version:  version,
		Username: c.QueryParam("username"),
	}
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	bid, err := h.bidService.RollbackBid(c.Request().Context(), input.BidID, input.Version, input.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

type authorReviewsInput struct {
	TenderID          string `validate:"required,uuid"`
	AuthorUsername    string `query:"authorUsername" validate:"required"`
	RequesterUsername string `query:"requesterUsername" validate:"required"`
	Limit             int    `query:"limit" validate:"gte=0,lte=50"`
	Offset            int    `query:"offset" validate:"gte=0"`
}

// GET /api/bids/:tenderId/reviews
func (h *bidRoutes) GetAuthorReviews(c echo.Context) error {
	input := authorReviewsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return respondBadInput(c)
	}
	input.TenderID = c.Param("tenderId")
	if err := h.validate.Struct(input); err != nil {
		return respondValidationError(c, err)
	}

	reviews, err := h.bidService.GetAuthorReviews(c.Request().Context(), input.TenderID,
		input.AuthorUsername, input.RequesterUsername, entity.NewPagination(input.Limit, input.Offset))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, reviews)
}
