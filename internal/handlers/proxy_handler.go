package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/janwerner/fotobox/internal/services"
)

// ProxyImage relays an arbitrary upstream image for pages that cannot embed
// it directly. Upstream failures pass their status through.
func (g *Gateway) ProxyImage(c *fiber.Ctx) error {
	rawURL := c.Query("url")
	if rawURL == "" {
		return c.Status(fiber.StatusBadRequest).SendString("URL-Parameter fehlt.")
	}

	if err := g.Delivery.ProxyImage(c, rawURL); err != nil {
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) && upstream.Status != 0 {
			return c.SendStatus(upstream.Status)
		}
		zap.L().Error("image proxy failed", zap.String("url", rawURL), zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return nil
}
