package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"tender-marketplace-api/internal/service"
)

const (
	defaultLimit  = 5
	defaultOffset = 0
)

type errorResponse struct {
	Reason string `json:"reason"`
}

func respondBadInput(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
}

func respondValidationError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{validationMessages(err)})
}

// respondServiceError translates the service error taxonomy into the HTTP
// contract: unknown user 401, insufficient rights 403, absent entity or
// version 404, anything else 400.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAuthorNotFound):
		return c.JSON(http.StatusUnauthorized, errorResponse{err.Error()})
	case errors.Is(err, service.ErrNotResponsible),
		errors.Is(err, service.ErrTenderAccessDenied),
		errors.Is(err, service.ErrBidAccessDenied):
		return c.JSON(http.StatusForbidden, errorResponse{err.Error()})
	case errors.Is(err, service.ErrTenderNotFound),
		errors.Is(err, service.ErrBidNotFound),
		errors.Is(err, service.ErrOrganizationNotFound),
		errors.Is(err, service.ErrTenderVersionNotFound),
		errors.Is(err, service.ErrBidVersionNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
	}
}

func validationMessages(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "Input data is not formed correctly"
	}

	var b strings.Builder
	for _, fe := range ve {
		b.WriteString(fmt.Sprintf("'%s': %s\n", fe.Field(), fieldMessage(fe)))
	}

	return b.String()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	case "uuid":
		return "should be a valid UUID"
	}

	return "incorrect value passed"
}
