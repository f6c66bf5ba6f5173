package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nwestbury/pulselog/internal/services"
)

// CreateLog starts the day's record from the morning form, the only
// submission that may create one.
func (handler *Handler) CreateLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	location := currentLocation(c)

	input := createLogInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	day, err := parseDayParam(input.Date, location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload, err := input.Morning.toPayload()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid morning fields")
	}

	entry, err := handler.logService.CreateMorningLog(user.ID, day, payload, location)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateDayLog) {
			return apiError(c, fiber.StatusConflict, "log already exists for this day")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create log")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) GetLogByID(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logID, err := parseLogID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	entry, err := handler.logService.FetchLogByID(user.ID, logID)
	if err != nil {
		if errors.Is(err, services.ErrLogNotFound) {
			return apiError(c, fiber.StatusNotFound, "log not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load log")
	}
	return c.JSON(entry)
}

// GetLogByDay resolves "the record for this date" in the requester's
// timezone. An empty body with 200 means no log yet, a normal state.
func (handler *Handler) GetLogByDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	location := currentLocation(c)

	day, err := parseDayParam(c.Params("date"), location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, found, err := handler.logService.FetchLogByDay(user.ID, day, location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load log")
	}
	if !found {
		return c.JSON(fiber.Map{"log": nil})
	}
	return c.JSON(fiber.Map{"log": entry})
}

// GetLogs serves the range and recent-N read views: ?from=&to= for a
// range, ?recent=N for dashboards, neither for the full history.
func (handler *Handler) GetLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	location := currentLocation(c)

	if recentRaw := strings.TrimSpace(c.Query("recent")); recentRaw != "" {
		limit, err := strconv.Atoi(recentRaw)
		if err != nil || limit < 1 {
			return apiError(c, fiber.StatusBadRequest, "invalid recent limit")
		}
		logs, err := handler.logService.FetchRecentLogs(user.ID, limit)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load logs")
		}
		return c.JSON(logs)
	}

	fromRaw := strings.TrimSpace(c.Query("from"))
	toRaw := strings.TrimSpace(c.Query("to"))
	if fromRaw == "" && toRaw == "" {
		logs, err := handler.logService.FetchAllLogs(user.ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load logs")
		}
		return c.JSON(logs)
	}
	if fromRaw == "" || toRaw == "" {
		return apiError(c, fiber.StatusBadRequest, "both from and to are required")
	}

	from, err := parseDayParam(fromRaw, location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseDayParam(toRaw, location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}
	if to.Before(from) {
		return apiError(c, fiber.StatusBadRequest, "range end before start")
	}

	logs, err := handler.logService.FetchLogsForRange(user.ID, from, to, location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load logs")
	}
	return c.JSON(logs)
}

func (handler *Handler) DeleteLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logID, err := parseLogID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	if err := handler.logService.DeleteLog(user.ID, logID); err != nil {
		if errors.Is(err, services.ErrLogNotFound) {
			return apiError(c, fiber.StatusNotFound, "log not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete log")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func parseLogID(c *fiber.Ctx) (uint, error) {
	logID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 32)
	if err != nil || logID == 0 {
		return 0, errors.New("invalid log id")
	}
	return uint(logID), nil
}
