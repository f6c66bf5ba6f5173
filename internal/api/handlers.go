package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nwestbury/pulselog/internal/db"
	"github.com/nwestbury/pulselog/internal/services"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secretKey string, cookieSecure bool) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if secretKey == "" {
		return nil, errors.New("secret key is required")
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		cookieSecure: cookieSecure,
	}
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.logService = services.NewLogService(handler.repositories.DailyLogs)
	handler.insightService = services.NewInsightService(
		handler.repositories.DailyLogs,
		handler.repositories.Insights,
		services.NewSummaryGenerator(),
	)
	handler.summaryService = services.NewSummaryService(handler.repositories.DailyLogs)
	handler.exportService = services.NewExportService(handler.logService)
	handler.settingsService = services.NewSettingsService(handler.repositories.Users)
	return handler, nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
