// Package handlers adapts the gateway services onto the Fiber routes.
// Handlers translate service error kinds into the HTTP statuses and
// localized bodies of the public surface; they hold no state of their own.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/janwerner/fotobox/internal/services"
)

// Gateway bundles the injected services behind the HTTP surface.
type Gateway struct {
	Resolver *services.Resolver
	Delivery *services.Delivery
	Gate     *services.ShareGate
	Uploader *services.Uploader
	Settings *services.Settings

	// SecureCookies marks issued session cookies Secure (production only).
	SecureCookies bool
}

// Register mounts every route of the gateway on the app. The legacy rewrite
// middleware must already be registered by the caller.
func (g *Gateway) Register(app *fiber.App) {
	app.Get("/file/:folderID/:fileName", g.FileInline)
	app.Get("/s/+", g.ShareView)

	api := app.Group("/api")
	api.Get("/direct/:folderID/:fileName", g.FileDirect)
	api.Get("/download/:folderID/:fileName", g.FileDownload)
	api.Get("/files/:folderID/:fileName", g.FileMetadata)
	api.Get("/files/:folderID", g.FolderList)
	api.Get("/proxy-image", g.ProxyImage)
	api.Get("/folder/:folderID/share-settings", g.ShareSettings)
	api.Post("/upload", g.Upload)
	api.Post("/gallery/validate-password", g.ValidatePassword)
	api.Post("/gallery/validate-share-password", g.ValidateSharePassword)
}
