// services/catalog_service.go
package services

import (
	"errors"
	"net/url"
	"strings"

	"pokedex-catalog/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogService serves the public, read-only JSON API.
type CatalogService struct {
	Gateway *store.Gateway
	Logger  *zap.Logger
}

func NewCatalogService(gateway *store.Gateway, logger *zap.Logger) *CatalogService {
	return &CatalogService{Gateway: gateway, Logger: logger}
}

// GetAllCreatures returns every creature in insertion order.
func (s *CatalogService) GetAllCreatures(c *fiber.Ctx) error {
	creatures, err := s.Gateway.ListCreatures(c.UserContext())
	if err != nil {
		return s.readError(c, err, "An error occurred while fetching pokedex data")
	}
	return c.JSON(creatures)
}

// GetAllMoves returns every move in insertion order.
func (s *CatalogService) GetAllMoves(c *fiber.Ctx) error {
	moves, err := s.Gateway.ListMoves(c.UserContext())
	if err != nil {
		return s.readError(c, err, "An error occurred while fetching moves data")
	}
	return c.JSON(moves)
}

// GetCreatureByName answers with the creature or null.
func (s *CatalogService) GetCreatureByName(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}
	creature, err := s.Gateway.FindCreature(c.UserContext(), "name", name)
	if err != nil {
		return s.readError(c, err, "An error occurred while fetching pokedex data")
	}
	return c.JSON(creature)
}

// GetCreatureByCatalogID answers with the creature or null. A non-numeric id
// is a client error.
func (s *CatalogService) GetCreatureByCatalogID(c *fiber.Ctx) error {
	creature, err := s.Gateway.FindCreature(c.UserContext(), "catalogId", c.Params("id"))
	if err != nil {
		return s.readError(c, err, "An error occurred while fetching pokedex data")
	}
	return c.JSON(creature)
}

// GetMoveByName looks up a move; hyphens in the path stand for spaces, so
// /moves/flame-thrower finds "flame thrower".
func (s *CatalogService) GetMoveByName(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}
	move, err := s.Gateway.FindMove(c.UserContext(), "name", MoveNameFromPath(raw))
	if err != nil {
		return s.readError(c, err, "An error occurred while fetching moves data")
	}
	return c.JSON(move)
}

// MoveNameFromPath turns a path segment into the stored move name.
func MoveNameFromPath(segment string) string {
	return strings.ReplaceAll(segment, "-", " ")
}

func (s *CatalogService) readError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, store.ErrValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	s.Logger.Error("catalog read failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}
