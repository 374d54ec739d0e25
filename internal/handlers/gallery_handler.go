package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/janwerner/fotobox/internal/models"
	"github.com/janwerner/fotobox/internal/services"
	"github.com/janwerner/fotobox/internal/utils"
)

type passwordRequest struct {
	GalleryID string `json:"galleryId"`
	ShareID   string `json:"shareId"`
	Password  string `json:"password"`
}

// ValidatePassword checks the owner-view password of a gallery addressed by
// its internal id.
func (g *Gateway) ValidatePassword(c *fiber.Ctx) error {
	var req passwordRequest
	if err := c.BodyParser(&req); err != nil || req.GalleryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"valid": false, "message": "Galerie-ID fehlt"})
	}
	return g.validate(c, req.GalleryID, req.Password, services.ByGalleryID)
}

// ValidateSharePassword checks the share password of a public share link,
// additionally enforcing enablement and expiry.
func (g *Gateway) ValidateSharePassword(c *fiber.Ctx) error {
	var req passwordRequest
	if err := c.BodyParser(&req); err != nil || req.ShareID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"valid": false, "message": "Share-ID fehlt"})
	}
	return g.validate(c, req.ShareID, req.Password, services.ByShareID)
}

func (g *Gateway) validate(c *fiber.Ctx, id, password string, by services.LookupBy) error {
	grant, err := g.Gate.Validate(c.UserContext(), id, password, by)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGalleryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"valid": false, "message": "Galerie nicht gefunden"})
		case errors.Is(err, services.ErrShareDisabled):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"valid": false, "message": "Freigabe ist deaktiviert"})
		case errors.Is(err, services.ErrShareExpired):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"valid": false, "message": "Freigabe ist abgelaufen"})
		case errors.Is(err, services.ErrInvalidPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"valid": false, "message": "Falsches Passwort"})
		default:
			zap.L().Error("password validation failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"valid": false, "message": "Interner Fehler"})
		}
	}

	c.Cookie(grant.Cookie(g.SecureCookies))
	return c.JSON(fiber.Map{"valid": true})
}

// ShareView serves a public share: gallery metadata plus file listing, gated
// by the share-session cookie when the share carries a password. The share
// id may contain slashes.
func (g *Gateway) ShareView(c *fiber.Ctx) error {
	shareID := c.Params("+")
	token := c.Cookies("share_password_" + shareID)

	gallery, err := g.Gate.CheckAccess(c.UserContext(), shareID, token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGalleryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Galerie nicht gefunden"})
		case errors.Is(err, services.ErrShareDisabled):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Freigabe ist deaktiviert"})
		case errors.Is(err, services.ErrShareExpired):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Freigabe ist abgelaufen"})
		case errors.Is(err, services.ErrInvalidSession):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"locked": true})
		default:
			zap.L().Error("share access check failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Interner Fehler"})
		}
	}

	ctx := c.UserContext()
	results, errs := utils.RunParallel([]utils.Task{
		func() (interface{}, error) { return g.Resolver.List(ctx, gallery.FolderID) },
		func() (interface{}, error) { return g.Settings.ForFolder(ctx, gallery.FolderID) },
	})
	for _, err := range errs {
		if err != nil {
			zap.L().Error("share view fetch failed", zap.String("share_id", shareID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Interner Fehler"})
		}
	}
	files := results[0].([]models.FileRecord)
	settings := results[1].(models.FolderSettings)

	return c.JSON(fiber.Map{
		"gallery": fiber.Map{
			"name":    gallery.Name,
			"shareId": gallery.ShareID,
		},
		"files":    files,
		"settings": settings,
	})
}

// ShareSettings returns the sharing-button configuration of a folder,
// served through the TTL cache.
func (g *Gateway) ShareSettings(c *fiber.Ctx) error {
	cfg, err := g.Settings.ForFolder(c.UserContext(), c.Params("folderID"))
	if err != nil {
		zap.L().Error("settings lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Interner Fehler"})
	}
	return c.JSON(cfg)
}
