package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// preflightMaxAge is how long browsers may cache a preflight answer, in seconds.
const preflightMaxAge = 600

// CORS admits the web clients listed in CORS_ORIGINS. Sessions travel as
// bearer tokens, so cookies are never allowed cross-origin.
func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  allowedOrigins(cfg.CORSOrigins),
		AllowMethods:  strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions}, ","),
		AllowHeaders:  strings.Join([]string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAuthorization, fiber.HeaderAccept}, ","),
		ExposeHeaders: fiber.HeaderXRequestID,
		MaxAge:        preflightMaxAge,
	})
}

// allowedOrigins normalises a comma separated origin list: blanks and
// duplicates are dropped, trailing slashes trimmed. An empty list means "*".
func allowedOrigins(raw string) string {
	seen := make(map[string]bool)
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" || seen[origin] {
			continue
		}
		if origin == "*" {
			return "*"
		}
		seen[origin] = true
		origins = append(origins, origin)
	}
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
