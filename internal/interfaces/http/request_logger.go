package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Acueducto-api/pkg/logger"
)

// RequestLogger registra una línea por request. Los 5xx salen en nivel error y los 4xx en warn.
// Debe ir antes de AuthMiddleware para cubrir también los 401; user_id solo aparece si hubo token.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de fiber fije el status antes de registrarlo.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		event := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			event = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			event = log.Warn()
		}
		event = event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if userID := GetUserID(c); userID != "" {
			event = event.Str("user_id", userID)
		}
		event.Msg("request")
		return nil
	}
}
