package handlers

import (
	"github.com/gofiber/fiber/v3"

	"trendboard/internal/config"
)

// Branding is the site chrome every page layout renders.
type Branding struct {
	Title   string
	Tagline string
	Footer  string
}

func NewBranding(cfg *config.Config) Branding {
	return Branding{Title: cfg.SiteTitle, Tagline: cfg.SiteTagline, Footer: cfg.SiteFooter}
}

// Page starts the template data for a page named title.
func (b Branding) Page(title string) fiber.Map {
	return fiber.Map{
		"Title":       title,
		"SiteTitle":   b.Title,
		"SiteTagline": b.Tagline,
		"SiteFooter":  b.Footer,
	}
}
