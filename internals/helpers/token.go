// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys filled by the auth middleware.
const (
	LocRawToken = "raw_token"
	LocUserID   = "user_id"
	LocRole     = "role"
)

// GetRawAccessToken reads the token from the "access_token" cookie, Locals,
// or the Authorization: Bearer header, in that order.
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

// GetUserIDFromToken returns 401 when no staff user is attached to the request.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	switch t := c.Locals(LocUserID).(type) {
	case uuid.UUID:
		if t != uuid.Nil {
			return t, nil
		}
	case string:
		if id, err := uuid.Parse(strings.TrimSpace(t)); err == nil && id != uuid.Nil {
			return id, nil
		}
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid user id in token")
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "not logged in")
}

func GetRoleFromToken(c *fiber.Ctx) string {
	r, _ := c.Locals(LocRole).(string)
	return strings.ToLower(strings.TrimSpace(r))
}
