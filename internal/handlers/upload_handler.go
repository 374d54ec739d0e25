package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/janwerner/fotobox/internal/services"
)

// Upload is the programmatic ingress: multipart form field "file",
// authorized by the api key in the query string.
func (g *Gateway) Upload(c *fiber.Ctx) error {
	apiKey := c.Query("key")
	if apiKey == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "API-Key fehlt"})
	}

	// A missing file part is reported by the service after the key check,
	// so a bad key always answers 401 rather than 400.
	var input services.UploadInput
	if fileHeader, err := c.FormFile("file"); err == nil {
		part, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Keine Datei übermittelt"})
		}
		defer part.Close()

		data, err := io.ReadAll(part)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Keine Datei übermittelt"})
		}
		input = services.UploadInput{
			FileName: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Data:     data,
		}
	}

	record, err := g.Uploader.Upload(c.UserContext(), apiKey, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingAPIKey), errors.Is(err, services.ErrInvalidAPIKey):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Ungültiger API-Key"})
		case errors.Is(err, services.ErrNoFilePayload):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Keine Datei übermittelt"})
		default:
			zap.L().Error("upload failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Upload fehlgeschlagen"})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"fileId":  record.ID.Hex(),
		"url":     record.URL,
		"name":    record.Name,
	})
}
