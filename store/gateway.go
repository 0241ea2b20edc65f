package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pokedex-catalog/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Gateway is the only path from request handlers to a Backend. It validates
// records before insert, stamps their identity and resolves lookup fields
// through the collection schema.
type Gateway struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

func NewGateway(backend Backend, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		backend: backend,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

func (g *Gateway) Backend() Backend {
	return g.backend
}

// ListAll decodes the whole collection, in insertion order, into out.
func (g *Gateway) ListAll(ctx context.Context, collection string, out any) error {
	schema, err := schemaFor(collection)
	if err != nil {
		return err
	}
	if err := g.backend.ListAll(ctx, schema, out); err != nil {
		g.logger.Error("list failed", zap.String("collection", collection), zap.Error(err))
		return fmt.Errorf("%w: list %s: %w", ErrStorage, collection, err)
	}
	return nil
}

// FindOneByField looks up the first record whose field equals the textual
// value, converted to the field's declared kind. A miss is (false, nil).
func (g *Gateway) FindOneByField(ctx context.Context, collection, field, value string, out any) (bool, error) {
	schema, err := schemaFor(collection)
	if err != nil {
		return false, err
	}
	f, ok := schema.Lookup(field)
	if !ok {
		return false, models.NewValidationError(collection, fmt.Sprintf("%s is not a field", field))
	}
	typed, err := coerce(f, value)
	if err != nil {
		return false, models.NewValidationError(collection, err.Error())
	}

	found, err := g.backend.FindOne(ctx, schema, f, typed, out)
	if err != nil {
		g.logger.Error("lookup failed",
			zap.String("collection", collection),
			zap.String("field", field),
			zap.Error(err))
		return false, fmt.Errorf("%w: find %s by %s: %w", ErrStorage, collection, field, err)
	}
	return found, nil
}

// Insert validates doc against its schema, assigns an id and creation time
// when absent and stores it. The record is updated in place.
func (g *Gateway) Insert(ctx context.Context, collection string, doc models.Record) error {
	schema, err := schemaFor(collection)
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return err
	}

	id, createdAt := doc.Identity()
	if id == "" {
		id = g.newID()
	}
	if createdAt.IsZero() {
		createdAt = g.now()
	}
	doc.SetIdentity(id, createdAt)

	if err := g.backend.Insert(ctx, schema, doc); err != nil {
		g.logger.Error("insert failed", zap.String("collection", collection), zap.Error(err))
		return fmt.Errorf("%w: insert into %s: %w", ErrStorage, collection, err)
	}
	return nil
}

func (g *Gateway) ListCreatures(ctx context.Context) ([]models.Creature, error) {
	creatures := []models.Creature{}
	if err := g.ListAll(ctx, models.CreatureCollection, &creatures); err != nil {
		return nil, err
	}
	return creatures, nil
}

func (g *Gateway) ListMoves(ctx context.Context) ([]models.Move, error) {
	moves := []models.Move{}
	if err := g.ListAll(ctx, models.MoveCollection, &moves); err != nil {
		return nil, err
	}
	return moves, nil
}

// FindCreature returns nil, nil when no creature matches.
func (g *Gateway) FindCreature(ctx context.Context, field, value string) (*models.Creature, error) {
	var creature models.Creature
	found, err := g.FindOneByField(ctx, models.CreatureCollection, field, value, &creature)
	if err != nil || !found {
		return nil, err
	}
	return &creature, nil
}

// FindMove returns nil, nil when no move matches.
func (g *Gateway) FindMove(ctx context.Context, field, value string) (*models.Move, error) {
	var move models.Move
	found, err := g.FindOneByField(ctx, models.MoveCollection, field, value, &move)
	if err != nil || !found {
		return nil, err
	}
	return &move, nil
}

func (g *Gateway) InsertCreature(ctx context.Context, c *models.Creature) error {
	return g.Insert(ctx, models.CreatureCollection, c)
}

func (g *Gateway) InsertMove(ctx context.Context, m *models.Move) error {
	return g.Insert(ctx, models.MoveCollection, m)
}

func schemaFor(collection string) (models.Schema, error) {
	schema, ok := models.SchemaFor(collection)
	if !ok {
		return models.Schema{}, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return schema, nil
}

func coerce(f models.Field, value string) (any, error) {
	switch f.Kind {
	case models.KindInteger:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer, got %q", f.Name, value)
		}
		return n, nil
	case models.KindNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number, got %q", f.Name, value)
		}
		return n, nil
	case models.KindText:
		return value, nil
	}
	return nil, fmt.Errorf("%s cannot be used for lookups", f.Name)
}
