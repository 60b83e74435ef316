package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserID mengambil user_id yang dipasang middleware auth.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := c.Locals("user_id"); raw != nil {
		if s, ok := raw.(string); ok {
			if parsed, err := uuid.Parse(s); err == nil {
				return parsed, nil
			}
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user_id tidak ada di token")
}

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" tidak valid")
	}
	return id, nil
}

// QueryUUIDPtr: kosong → nil; tidak valid → 400.
func QueryUUIDPtr(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" tidak valid")
	}
	return &id, nil
}
