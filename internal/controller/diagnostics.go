package controller

import (
	"net/http"

	"github.com/labstack/echo"

	"tender-marketplace-api/internal/service"
)

type diagnosticsRoutes struct {
	diagnosticsService service.Diagnostics
}

func newDiagnosticsRoutes(api *echo.Group, services *service.Services) *diagnosticsRoutes {
	h := &diagnosticsRoutes{diagnosticsService: services.Diagnostics}
	api.GET("/ping", h.Ping)

	return h
}

func (h *diagnosticsRoutes) Ping(c echo.Context) error {
	if err := h.diagnosticsService.Ping(); err != nil {
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.String(http.StatusOK, "ok")
}
