package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pokedex-catalog/models"
	"pokedex-catalog/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moves.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "tackle", "type": "normal", "category": "physical", "power": 40, "powerPoints": 35, "accuracy": 100},
		{"name": "growl", "type": "normal", "category": "status", "powerPoints": 40, "accuracy": 100},
		{"name": "ember", "type": "fire", "category": "special", "power": 40, "powerPoints": 25, "accuracy": 100}
	]`), 0o600))

	backend := store.NewMemoryBackend()
	gateway := store.NewGateway(backend, zap.NewNop())

	report, err := importFile[models.Move](context.Background(), path, zap.NewNop(), gateway.InsertMove)
	require.NoError(t, err)
	assert.Equal(t, importReport{Inserted: 2, Rejected: 1}, report)
	assert.Equal(t, "2 inserted, 1 rejected", report.String())
	assert.Equal(t, 2, backend.Len(models.MoveCollection))
}

func TestImportFileErrors(t *testing.T) {
	gateway := store.NewGateway(store.NewMemoryBackend(), zap.NewNop())

	_, err := importFile[models.Move](context.Background(), "does-not-exist.json", zap.NewNop(), gateway.InsertMove)
	assert.ErrorContains(t, err, "failed to read")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "not an array"}`), 0o600))
	_, err = importFile[models.Move](context.Background(), path, zap.NewNop(), gateway.InsertMove)
	assert.ErrorContains(t, err, "failed to decode")
}
