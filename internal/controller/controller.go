package controller

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"

	"problem-analytics-service/internal/model"
	"problem-analytics-service/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// GenericFailureMessage is the only text an unexpected fault ever shows to the caller.
const GenericFailureMessage = "Failed to analyse problem events"

const defaultFailureLimit = 50

type AnalyticsController interface {
	GetProblemAnalytics(c *fiber.Ctx) error
	GetProblemTimeline(c *fiber.Ctx) error
	GetFetchFailures(c *fiber.Ctx) error
}

// analyticsController exposes the problem analytics endpoints.
type analyticsController struct {
	comparisonService service.ComparisonService
}

// NewAnalyticsController builds an AnalyticsController.
func NewAnalyticsController(svc service.ComparisonService) AnalyticsController {
	return &analyticsController{comparisonService: svc}
}

// GetProblemAnalytics returns the current vs previous month comparison of a trigger.
func (h *analyticsController) GetProblemAnalytics(c *fiber.Ctx) error {
	hostID, triggerID, err := parseAnalyticsRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.NewErrorResponse(err.Error()))
	}

	comparison, svcErr := h.comparisonService.Compare(c.UserContext(), hostID, triggerID)
	if svcErr != nil {
		var validationErr *service.ValidationError
		if errors.As(svcErr, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(model.NewErrorResponse(validationErr.Message))
		}

		log.Printf("[ERROR] problem analytics host=%d trigger=%d: %v", hostID, triggerID, svcErr)
		return c.Status(fiber.StatusInternalServerError).JSON(model.NewErrorResponse(GenericFailureMessage))
	}

	return c.JSON(model.AnalyticsResponse{Success: true, Data: &comparison})
}

// GetProblemTimeline returns the latest events of a trigger with their time patterns.
func (h *analyticsController) GetProblemTimeline(c *fiber.Ctx) error {
	hostID, triggerID, eventID, err := parseTimelineRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.NewErrorResponse(err.Error()))
	}

	timeline, svcErr := h.comparisonService.Timeline(c.UserContext(), hostID, triggerID, eventID)
	if svcErr != nil {
		var validationErr *service.ValidationError
		if errors.As(svcErr, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(model.NewErrorResponse(validationErr.Message))
		}

		log.Printf("[ERROR] problem timeline trigger=%d event=%d: %v", triggerID, eventID, svcErr)
		return c.Status(fiber.StatusInternalServerError).JSON(model.NewErrorResponse(GenericFailureMessage))
	}

	return c.JSON(model.TimelineResponse{Success: true, Data: &timeline})
}

// GetFetchFailures lists recently recorded upstream fetch failures.
func (h *analyticsController) GetFetchFailures(c *fiber.Ctx) error {
	limit := defaultFailureLimit
	if raw := utils.Trim(c.Query("limit"), ' '); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	failures, err := h.comparisonService.RecentFailures(c.UserContext(), limit)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return fiber.NewError(fiber.StatusBadRequest, validationErr.Message)
		}
		log.Printf("[ERROR] list fetch failures: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch diagnostics")
	}

	return c.JSON(model.FetchFailuresResponse{Data: failures})
}

var errInvalidInput = errors.New("Invalid input parameters")

// parseAnalyticsRequest reads hostid and triggerid from the query string, a form body or a
// JSON body. Both are required positive integers.
func parseAnalyticsRequest(c *fiber.Ctx) (int64, int64, error) {
	var req model.AnalyticsRequest
	if c.Method() == fiber.MethodPost && c.Is("json") {
		if err := c.BodyParser(&req); err != nil {
			return 0, 0, errInvalidInput
		}
	} else {
		req.HostID = json.Number(readParam(c, "hostid"))
		req.TriggerID = json.Number(readParam(c, "triggerid"))
	}

	hostID, err := parseID(req.HostID)
	if err != nil {
		return 0, 0, err
	}
	triggerID, err := parseID(req.TriggerID)
	if err != nil {
		return 0, 0, err
	}
	return hostID, triggerID, nil
}

// parseTimelineRequest reads the same sources as parseAnalyticsRequest. Only triggerid is
// required; a missing hostid or eventid is 0.
func parseTimelineRequest(c *fiber.Ctx) (hostID, triggerID, eventID int64, err error) {
	var req model.TimelineRequest
	if c.Method() == fiber.MethodPost && c.Is("json") {
		if err := c.BodyParser(&req); err != nil {
			return 0, 0, 0, errInvalidInput
		}
	} else {
		req.HostID = json.Number(readParam(c, "hostid"))
		req.TriggerID = json.Number(readParam(c, "triggerid"))
		req.EventID = json.Number(readParam(c, "eventid"))
	}

	if triggerID, err = parseID(req.TriggerID); err != nil {
		return 0, 0, 0, err
	}
	if hostID, err = parseOptionalID(req.HostID); err != nil {
		return 0, 0, 0, err
	}
	if eventID, err = parseOptionalID(req.EventID); err != nil {
		return 0, 0, 0, err
	}
	return hostID, triggerID, eventID, nil
}

func readParam(c *fiber.Ctx, key string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return c.FormValue(key)
}

func parseID(raw json.Number) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw.String()), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidInput
	}
	return id, nil
}

func parseOptionalID(raw json.Number) (int64, error) {
	if strings.TrimSpace(raw.String()) == "" {
		return 0, nil
	}
	return parseID(raw)
}
