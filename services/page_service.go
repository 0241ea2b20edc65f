// services/page_service.go
package services

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// PageService sends the prebuilt HTML pages from PagesDir.
type PageService struct {
	PagesDir string
}

func NewPageService(pagesDir string) *PageService {
	return &PageService{PagesDir: pagesDir}
}

func (s *PageService) Home(c *fiber.Ctx) error { return s.send(c, "index.html") }

func (s *PageService) LoginForm(c *fiber.Ctx) error { return s.send(c, "login.html") }

func (s *PageService) CreatureForm(c *fiber.Ctx) error { return s.send(c, "input.html") }

func (s *PageService) MoveForm(c *fiber.Ctx) error { return s.send(c, "moveset.html") }

func (s *PageService) send(c *fiber.Ctx, page string) error {
	return c.SendFile(filepath.Join(s.PagesDir, page))
}
