package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vertragswerk/contracts-api/internal/application/dto"
	"github.com/vertragswerk/contracts-api/pkg/jwt"
)

// Locals-Key für den Akteur in Fiber.
const LocalActor = "actor"

// Der Akteur landet in created_by/updated_by. Fallback ohne Authentifizierung.
const defaultActor = "System"

// ActorMiddleware ermittelt den Akteur der Anfrage: Bearer-Token (wenn ein
// JWT-Secret konfiguriert ist), sonst X-Actor-Header, sonst "System".
// Ein vorhandener, aber ungültiger Token wird abgelehnt.
func ActorMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := defaultActor

		authHeader := c.Get("Authorization")
		if authHeader != "" && jwtSecret != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Format: Bearer <token>"})
			}
			tokenString := strings.TrimSpace(parts[1])
			parsed, err := jwt.Parse(jwtSecret, tokenString)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Token ungültig oder abgelaufen"})
			}
			actor = parsed
		} else if h := strings.TrimSpace(c.Get("X-Actor")); h != "" {
			actor = h
		}

		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// GetActor liefert den Akteur aus dem Kontext (nach der ActorMiddleware).
func GetActor(c *fiber.Ctx) string {
	v := c.Locals(LocalActor)
	if v == nil {
		return defaultActor
	}
	s, _ := v.(string)
	if s == "" {
		return defaultActor
	}
	return s
}
