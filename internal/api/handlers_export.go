package api

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nwestbury/pulselog/internal/services"
)

func (handler *Handler) parseExportRange(c *fiber.Ctx) (*time.Time, *time.Time, bool) {
	location := currentLocation(c)

	var from *time.Time
	var to *time.Time
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		parsed, err := parseDayParam(raw, location)
		if err != nil {
			return nil, nil, false
		}
		from = &parsed
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		parsed, err := parseDayParam(raw, location)
		if err != nil {
			return nil, nil, false
		}
		to = &parsed
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, false
	}
	return from, to, true
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, ok := handler.parseExportRange(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	logs, err := handler.exportService.LoadDataForRange(user.ID, from, to, currentLocation(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load export data")
	}

	summary := handler.exportService.BuildSummary(logs)
	return c.JSON(fiber.Map{
		"total_entries": summary.TotalEntries,
		"has_data":      summary.HasData,
		"date_from":     summary.DateFrom,
		"date_to":       summary.DateTo,
	})
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, ok := handler.parseExportRange(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	logs, err := handler.exportService.LoadDataForRange(user.ID, from, to, currentLocation(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load export data")
	}

	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	for _, row := range handler.exportService.BuildCSVRows(logs) {
		if err := writer.Write(row); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build export")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pulselog-export.csv"`)
	return c.Send(buffer.Bytes())
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, ok := handler.parseExportRange(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	logs, err := handler.exportService.LoadDataForRange(user.ID, from, to, currentLocation(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load export data")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pulselog-export.json"`)
	return c.JSON(handler.exportService.BuildJSONEntries(logs))
}
