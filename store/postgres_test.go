package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"pokedex-catalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

func newMockBackend(t *testing.T) (*PostgresBackend, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock := newMockDB(t)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewPostgresBackend(db), mock
}

var moveColumns = []string{"id", "name", "type", "category", "power", "power_points", "accuracy", "created_at"}

var rowTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestPostgresListAll(t *testing.T) {
	b, mock := newMockBackend(t)
	rows := sqlmock.NewRows(moveColumns).
		AddRow("m1", "tackle", "normal", "physical", 40.0, 35.0, 100.0, rowTime).
		AddRow("m2", "ember", "fire", "special", 40.0, 25.0, 100.0, rowTime)
	mock.ExpectQuery(`SELECT \* FROM "moves" ORDER BY created_at`).WillReturnRows(rows)

	var moves []models.Move
	require.NoError(t, b.ListAll(context.Background(), models.MoveSchema, &moves))
	require.Len(t, moves, 2)
	assert.Equal(t, "tackle", moves[0].Name)
	assert.Equal(t, 25.0, *moves[1].PowerPoints)
}

func TestPostgresFindOne(t *testing.T) {
	field, _ := models.MoveSchema.Lookup("name")

	t.Run("match", func(t *testing.T) {
		b, mock := newMockBackend(t)
		mock.ExpectQuery(`SELECT \* FROM "moves" WHERE "name" = \$1 ORDER BY created_at LIMIT`).
			WillReturnRows(sqlmock.NewRows(moveColumns).
				AddRow("m9", "flame thrower", "fire", "special", 90.0, 15.0, 100.0, rowTime))

		var move models.Move
		found, err := b.FindOne(context.Background(), models.MoveSchema, field, "flame thrower", &move)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "m9", move.ID)
	})

	t.Run("no rows", func(t *testing.T) {
		b, mock := newMockBackend(t)
		mock.ExpectQuery(`SELECT \* FROM "moves" WHERE "name" = \$1`).
			WillReturnRows(sqlmock.NewRows(moveColumns))

		var move models.Move
		found, err := b.FindOne(context.Background(), models.MoveSchema, field, "splash", &move)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("query error", func(t *testing.T) {
		b, mock := newMockBackend(t)
		mock.ExpectQuery(`SELECT \* FROM "moves"`).WillReturnError(errors.New("conn reset"))

		var move models.Move
		_, err := b.FindOne(context.Background(), models.MoveSchema, field, "splash", &move)
		assert.EqualError(t, err, "conn reset")
	})
}

func TestPostgresInsert(t *testing.T) {
	b, mock := newMockBackend(t)
	mock.ExpectExec(`INSERT INTO "moves"`).WillReturnResult(sqlmock.NewResult(1, 1))

	power, pp, acc := 40.0, 35.0, 100.0
	move := &models.Move{ID: "m1", Name: "tackle", Type: "normal", Category: "physical",
		Power: &power, PowerPoints: &pp, Accuracy: &acc}
	require.NoError(t, b.Insert(context.Background(), models.MoveSchema, move))
}
