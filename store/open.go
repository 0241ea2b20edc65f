package store

import (
	"context"
	"fmt"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Options struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	PostgresDSN   string
}

// Open returns the backend selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverMongo:
		return OpenMongo(ctx, opts.MongoURI, opts.MongoDatabase)
	case DriverPostgres:
		return OpenPostgres(opts.PostgresDSN)
	case DriverMemory:
		return NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStore, opts.Driver)
}
