package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"go.uber.org/zap"

	"tender-marketplace-api/internal/service"
)

func SetupRoutes(handler *echo.Echo, services *service.Services, log *zap.SugaredLogger) {
	handler.Use(requestLogger(log))

	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticsRoutes(api, services)
	newTenderRoutes(api, services, validate)
	newBidRoutes(api, services, validate)
}

func requestLogger(log *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			log.Infow("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
			)

			return err
		}
	}
}
