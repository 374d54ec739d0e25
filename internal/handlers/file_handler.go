package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/janwerner/fotobox/internal/services"
)

const msgFileNotFound = "Datei nicht gefunden."

// FileInline streams a file for direct viewing. The file name here is the
// literal storage name handed back at upload time, so a point lookup is
// enough.
func (g *Gateway) FileInline(c *fiber.Ctx) error {
	file, err := g.Resolver.ResolveExact(c.UserContext(), c.Params("folderID"), c.Params("fileName"))
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(msgFileNotFound)
		}
		zap.L().Error("inline lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("Fehler beim Laden der Datei.")
	}

	if err := g.Delivery.StreamInline(c, file); err != nil {
		zap.L().Error("inline delivery failed", zap.String("file", file.StorageName), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("Fehler beim Laden der Datei.")
	}
	return nil
}

// FileDirect resolves across all name fields and redirects to the object URL.
func (g *Gateway) FileDirect(c *fiber.Ctx) error {
	file, err := g.Resolver.Resolve(c.UserContext(), c.Params("folderID"), c.Params("fileName"))
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(msgFileNotFound)
		}
		zap.L().Error("direct lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("Fehler beim Laden der Datei.")
	}

	if err := g.Delivery.Redirect(c, file); err != nil {
		if errors.Is(err, services.ErrNoDeliverableURL) {
			return c.Status(fiber.StatusNotFound).SendString(msgFileNotFound)
		}
		zap.L().Error("redirect delivery failed", zap.String("file", file.StorageName), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("Fehler beim Laden der Datei.")
	}
	return nil
}

// FileDownload resolves across all name fields and sends the payload as an
// attachment. Upstream fetch failures propagate their status code.
func (g *Gateway) FileDownload(c *fiber.Ctx) error {
	folderID, fileName := c.Params("folderID"), c.Params("fileName")
	if folderID == "" || fileName == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Ordner oder Dateiname fehlt.")
	}

	file, err := g.Resolver.Resolve(c.UserContext(), folderID, fileName)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(msgFileNotFound)
		}
		zap.L().Error("download lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("Fehler beim Laden der Datei.")
	}

	if err := g.Delivery.StreamAttachment(c, file); err != nil {
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) && upstream.Status != 0 {
			return c.Status(upstream.Status).SendString("Fehler beim Herunterladen der Datei.")
		}
		zap.L().Error("attachment delivery failed", zap.String("file", file.StorageName), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("Fehler beim Herunterladen der Datei.")
	}
	return nil
}

// FileMetadata returns the JSON projection of a single file.
func (g *Gateway) FileMetadata(c *fiber.Ctx) error {
	file, err := g.Resolver.Resolve(c.UserContext(), c.Params("folderID"), c.Params("fileName"))
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Datei nicht gefunden"})
		}
		zap.L().Error("metadata lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Interner Fehler"})
	}
	return g.Delivery.Metadata(c, file)
}

// FolderList returns every file of a folder. An empty folder is an empty
// list, not a 404.
func (g *Gateway) FolderList(c *fiber.Ctx) error {
	files, err := g.Resolver.List(c.UserContext(), c.Params("folderID"))
	if err != nil {
		zap.L().Error("folder listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Interner Fehler"})
	}
	return c.JSON(fiber.Map{"files": files})
}
