package store

import (
	"context"
	"errors"

	"pokedex-catalog/models"
)

// Backend is a document store holding the catalog collections.
type Backend interface {
	// ListAll decodes every record of the collection, oldest first, into out
	// (a pointer to a slice).
	ListAll(ctx context.Context, schema models.Schema, out any) error
	// FindOne decodes the first record whose field equals value into out.
	// It reports false, with a nil error, when nothing matches.
	FindOne(ctx context.Context, schema models.Schema, field models.Field, value any, out any) (bool, error)
	Insert(ctx context.Context, schema models.Schema, doc models.Record) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	ErrStorage           = errors.New("storage failure")
	ErrValidation        = models.ErrValidation
	ErrUnknownStore      = errors.New("unknown store driver")
	ErrUnknownCollection = errors.New("unknown collection")
)
