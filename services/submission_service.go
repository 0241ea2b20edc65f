// services/submission_service.go
package services

import (
	"context"
	"errors"
	"math"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"

	"pokedex-catalog/models"
	"pokedex-catalog/store"
	"pokedex-catalog/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PictureUploader stores an uploaded creature picture and returns its URL.
type PictureUploader interface {
	UploadPicture(ctx context.Context, fileHeader *multipart.FileHeader, key string) (string, error)
}

// SubmissionService handles the input forms that populate the catalog.
type SubmissionService struct {
	Gateway  *store.Gateway
	Pictures PictureUploader // nil disables uploads
	Logger   *zap.Logger
}

func NewSubmissionService(gateway *store.Gateway, pictures PictureUploader, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{Gateway: gateway, Pictures: pictures, Logger: logger}
}

// SubmitCreature builds a creature from the input form and stores it.
func (s *SubmissionService) SubmitCreature(c *fiber.Ctx) error {
	moveset, err := models.BuildMoveset(c.FormValue("moveName"), c.FormValue("levelLearned"))
	if err != nil {
		s.Logger.Info("moveset rejected",
			zap.String("moveName", c.FormValue("moveName")),
			zap.String("levelLearned", c.FormValue("levelLearned")))
		return c.Status(fiber.StatusBadRequest).SendString("Moveset parameters are not of equal length, Retry")
	}

	form := formReader{c: c}
	creature := &models.Creature{
		Name:           form.text("name"),
		CatalogID:      form.integer("catalogId", "PokedexId"),
		Weight:         form.number("weight"),
		Height:         form.number("height"),
		HP:             form.number("hp"),
		Attack:         form.number("attack"),
		Defense:        form.number("defense"),
		Speed:          form.number("speed"),
		SpecialAttack:  form.number("specialAttack"),
		SpecialDefense: form.number("specialDefense"),
		CatchRate:      form.number("catchRate"),
		Description:    form.text("description"),
		ElementalType:  models.SplitTokens(c.FormValue("elementalType")),
		Strength:       models.SplitTokens(c.FormValue("strength")),
		Weakness:       models.SplitTokens(c.FormValue("weakness")),
		MainPicture:    form.text("mainPicture"),
		Moveset:        moveset,
		EvolutionChain: []models.EvolutionStep{},
	}
	if len(form.problems) > 0 {
		return c.Status(fiber.StatusBadRequest).SendString(strings.Join(form.problems, "; "))
	}

	if file := s.pictureFile(c); file != nil {
		// The uploaded URL stands in for mainPicture; everything else must
		// already be valid so a rejected entry leaves nothing in the bucket.
		pending := *creature
		pending.MainPicture = file.Filename
		if err := models.CreatureSchema.Validate(&pending); err != nil {
			return s.writeError(c, err, "An error occurred while saving pokedex entry")
		}

		pictureURL, err := s.Pictures.UploadPicture(c.UserContext(), file, utils.PictureKey(creature.Name, file.Filename))
		if err != nil {
			s.Logger.Error("picture upload failed", zap.String("name", creature.Name), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).SendString("An error occurred while uploading the picture")
		}
		creature.MainPicture = pictureURL
	}

	if err := s.Gateway.InsertCreature(c.UserContext(), creature); err != nil {
		return s.writeError(c, err, "An error occurred while saving pokedex entry")
	}

	s.Logger.Info("saved creature", zap.String("name", creature.Name), zap.String("id", creature.ID))
	return c.Redirect("/pokemon-input")
}

// SubmitMove stores a move from the move input form.
func (s *SubmissionService) SubmitMove(c *fiber.Ctx) error {
	form := formReader{c: c}
	move := &models.Move{
		Name:        form.text("name"),
		Type:        form.text("type"),
		Category:    form.text("category"),
		Power:       form.number("power"),
		PowerPoints: form.number("powerPoints"),
		Accuracy:    form.number("accuracy"),
	}
	if len(form.problems) > 0 {
		return c.Status(fiber.StatusBadRequest).SendString(strings.Join(form.problems, "; "))
	}

	if err := s.Gateway.InsertMove(c.UserContext(), move); err != nil {
		return s.writeError(c, err, "An error occurred while saving move entry")
	}

	s.Logger.Info("saved move", zap.String("name", move.Name), zap.String("id", move.ID))
	return c.Redirect("/move-input?saved=" + url.QueryEscape(move.Name))
}

// pictureFile returns the uploaded picture, or nil when uploads are disabled
// or the field is empty.
func (s *SubmissionService) pictureFile(c *fiber.Ctx) *multipart.FileHeader {
	if s.Pictures == nil {
		return nil
	}
	file, err := c.FormFile("mainPictureFile")
	if err != nil || file.Size == 0 {
		return nil
	}
	return file
}

func (s *SubmissionService) writeError(c *fiber.Ctx, err error, message string) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).SendString(verr.Error())
	}
	s.Logger.Error("catalog write failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).SendString(message)
}

// formReader collects typed form values. Blank fields read as absent; a
// non-blank value that does not parse is recorded as a problem.
type formReader struct {
	c        *fiber.Ctx
	problems []string
}

func (f *formReader) text(key string) string {
	return strings.TrimSpace(f.c.FormValue(key))
}

// integer reads the first non-blank key.
func (f *formReader) integer(keys ...string) *int {
	for _, key := range keys {
		raw := f.text(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			f.problems = append(f.problems, key+" must be an integer")
			return nil
		}
		return &n
	}
	return nil
}

func (f *formReader) number(key string) *float64 {
	raw := f.text(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		f.problems = append(f.problems, key+" must be a finite number")
		return nil
	}
	return &n
}
