package store

import (
	"context"
	"errors"
	"fmt"

	"pokedex-catalog/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresBackend keeps each collection in its own table. List-valued fields
// are stored as JSON text columns.
type PostgresBackend struct {
	DB *gorm.DB
}

// OpenPostgres connects with dsn and migrates the catalog tables.
func OpenPostgres(dsn string) (*PostgresBackend, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	b := NewPostgresBackend(db)
	if err := b.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return b, nil
}

func NewPostgresBackend(db *gorm.DB) *PostgresBackend {
	return &PostgresBackend{DB: db}
}

func (b *PostgresBackend) Migrate() error {
	return b.DB.AutoMigrate(&models.Creature{}, &models.Move{})
}

func (b *PostgresBackend) ListAll(ctx context.Context, schema models.Schema, out any) error {
	return b.DB.WithContext(ctx).Table(schema.Table).Order("created_at").Find(out).Error
}

func (b *PostgresBackend) FindOne(ctx context.Context, schema models.Schema, field models.Field, value any, out any) (bool, error) {
	err := b.DB.WithContext(ctx).
		Table(schema.Table).
		Where(clause.Eq{Column: clause.Column{Name: field.Column}, Value: value}).
		Order("created_at").
		Take(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *PostgresBackend) Insert(ctx context.Context, schema models.Schema, doc models.Record) error {
	return b.DB.WithContext(ctx).Table(schema.Table).Create(doc).Error
}

func (b *PostgresBackend) Ping(ctx context.Context) error {
	sqlDB, err := b.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (b *PostgresBackend) Close(ctx context.Context) error {
	sqlDB, err := b.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
