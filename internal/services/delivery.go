package services

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/janwerner/fotobox/internal/models"
	"github.com/janwerner/fotobox/internal/storage"
)

// User-Agent presented to arbitrary upstreams by the image proxy. Some CDNs
// refuse requests without a browser-like agent.
const proxyUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Delivery writes a resolved FileRecord to the client in one of the
// supported modes: inline stream, buffered attachment, redirect or metadata.
type Delivery struct {
	blobs storage.BlobStore
}

func NewDelivery(b storage.BlobStore) *Delivery {
	return &Delivery{blobs: b}
}

// StreamInline pipes the object through without buffering the whole payload.
func (d *Delivery) StreamInline(c *fiber.Ctx, file *models.FileRecord) error {
	obj, err := d.blobs.Fetch(c.UserContext(), file.URL, "")
	if err != nil {
		return &UpstreamError{Err: err}
	}
	if obj.StatusCode < 200 || obj.StatusCode > 299 {
		obj.Body.Close()
		return &UpstreamError{Status: obj.StatusCode, Err: fmt.Errorf("blob fetch returned status %d", obj.StatusCode)}
	}

	if obj.ContentType != "" {
		c.Set(fiber.HeaderContentType, obj.ContentType)
	} else if file.Type != "" {
		c.Set(fiber.HeaderContentType, file.Type)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400, s-maxage=86400, stale-while-revalidate=604800")
	c.Set("X-Robots-Tag", "noindex, nofollow")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", url.PathEscape(file.Name)))

	if obj.ContentLength >= 0 {
		return c.SendStream(obj.Body, int(obj.ContentLength))
	}
	return c.SendStream(obj.Body)
}

// StreamAttachment fetches the full payload and sends it as a download.
func (d *Delivery) StreamAttachment(c *fiber.Ctx, file *models.FileRecord) error {
	obj, err := d.blobs.Fetch(c.UserContext(), file.URL, "")
	if err != nil {
		return &UpstreamError{Err: err}
	}
	defer obj.Body.Close()
	if obj.StatusCode < 200 || obj.StatusCode > 299 {
		return &UpstreamError{Status: obj.StatusCode, Err: fmt.Errorf("blob fetch returned status %d", obj.StatusCode)}
	}

	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return &UpstreamError{Err: fmt.Errorf("failed to read object body: %w", err)}
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", url.PathEscape(file.DownloadFileName())))

	return c.Send(body)
}

// Redirect issues a 302 to the record's preferred URL.
func (d *Delivery) Redirect(c *fiber.Ctx, file *models.FileRecord) error {
	target := file.DeliveryURL()
	if target == "" {
		return ErrNoDeliverableURL
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000")
	if file.Type != "" {
		c.Set(fiber.HeaderContentType, file.Type)
	}
	return c.Redirect(target, fiber.StatusFound)
}

// Metadata returns the JSON projection of the record.
func (d *Delivery) Metadata(c *fiber.Ctx, file *models.FileRecord) error {
	originalName := file.OriginalName
	if originalName == "" {
		originalName = file.Name
	}
	return c.JSON(fiber.Map{
		"id":             file.ID.Hex(),
		"name":           file.Name,
		"originalName":   originalName,
		"url":            file.URL,
		"type":           file.Type,
		"size":           file.Size,
		"createdAt":      file.CreatedAt,
		"uploadedViaApi": file.UploadedViaAPI,
	})
}

// ProxyImage relays an arbitrary upstream image with permissive CORS and an
// attachment disposition named after the content type.
func (d *Delivery) ProxyImage(c *fiber.Ctx, rawURL string) error {
	obj, err := d.blobs.Fetch(c.UserContext(), rawURL, proxyUserAgent)
	if err != nil {
		return &UpstreamError{Err: err}
	}
	if obj.StatusCode < 200 || obj.StatusCode > 299 {
		obj.Body.Close()
		return &UpstreamError{Status: obj.StatusCode, Err: fmt.Errorf("upstream returned status %d", obj.StatusCode)}
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "image."+extensionFor(contentType)))

	if obj.ContentLength >= 0 {
		return c.SendStream(obj.Body, int(obj.ContentLength))
	}
	return c.SendStream(obj.Body)
}

// extensionFor derives a filename extension from a MIME subtype, e.g.
// image/svg+xml -> svg.
func extensionFor(contentType string) string {
	sub := contentType
	if i := strings.Index(sub, "/"); i >= 0 {
		sub = sub[i+1:]
	}
	if i := strings.IndexAny(sub, "+;"); i >= 0 {
		sub = sub[:i]
	}
	if sub == "" {
		return "bin"
	}
	return sub
}
