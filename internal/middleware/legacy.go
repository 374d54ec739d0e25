package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const legacySharePrefix = "/view/s/"

// Namespaces owned by canonical routes; bare two-segment paths under them
// are never treated as legacy file links.
var reservedRoots = map[string]bool{
	"api":  true,
	"s":    true,
	"file": true,
	"view": true,
}

// LegacyRewrite redirects deprecated URL shapes to their canonical routes
// before any other routing happens. Unmatched paths pass through untouched.
func LegacyRewrite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		// Old share-view links: /view/s/<shareId...> -> /s/<shareId...>.
		// The share id may itself contain slashes.
		if strings.HasPrefix(path, legacySharePrefix) {
			return c.Redirect("/s/"+strings.TrimPrefix(path, legacySharePrefix), fiber.StatusFound)
		}

		// Legacy direct-file links: /<folderId>/<fileName> with exactly two
		// segments outside the reserved namespaces.
		trimmed := strings.Trim(path, "/")
		if trimmed != "" {
			segments := strings.Split(trimmed, "/")
			if len(segments) == 2 && segments[0] != "" && segments[1] != "" && !reservedRoots[segments[0]] {
				return c.Redirect("/api/direct/"+segments[0]+"/"+segments[1], fiber.StatusFound)
			}
		}

		return c.Next()
	}
}
