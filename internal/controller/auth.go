package controller

import (
	"errors"
	"log"
	"strings"

	"problem-analytics-service/internal/model"
	"problem-analytics-service/internal/zabbix"

	"github.com/gofiber/fiber/v2"
)

const (
	callerKey     = "caller"
	sessionHeader = "X-Zabbix-Session"
)

// AuthMiddleware validates the caller's Zabbix session and requires at least minUserType
// (1 user, 2 admin, 3 super admin).
func AuthMiddleware(auth zabbix.Authenticator, minUserType int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := sessionFromRequest(c)
		if sessionID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(model.NewErrorResponse("Not authorised."))
		}

		caller, err := auth.CheckAuthentication(c.UserContext(), sessionID)
		if err != nil {
			var apiErr *zabbix.APIError
			if errors.As(err, &apiErr) || errors.Is(err, zabbix.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(model.NewErrorResponse("Session terminated, re-login, please."))
			}
			log.Printf("[ERROR] session check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(model.NewErrorResponse("Authentication service unavailable."))
		}

		if caller.Type < minUserType {
			return c.Status(fiber.StatusForbidden).JSON(model.NewErrorResponse("No permissions to referred object or it does not exist!"))
		}

		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// CallerFromContext returns the caller stored by AuthMiddleware.
func CallerFromContext(c *fiber.Ctx) (model.Caller, bool) {
	caller, ok := c.Locals(callerKey).(model.Caller)
	return caller, ok
}

func sessionFromRequest(c *fiber.Ctx) string {
	if sid := strings.TrimSpace(c.Get(sessionHeader)); sid != "" {
		return sid
	}
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
