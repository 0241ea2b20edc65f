package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"pokedex-catalog/models"
	"pokedex-catalog/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importCreatures string
	importMoves     string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk insert creatures and moves from JSON array files",
	RunE: func(cmd *cobra.Command, args []string) error {
		if importCreatures == "" && importMoves == "" {
			return errors.New("nothing to import: pass --creatures and/or --moves")
		}
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := cmd.Context()
		backend, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer backend.Close(context.Background())

		gateway := store.NewGateway(backend, logger)
		if importCreatures != "" {
			report, err := importFile[models.Creature](ctx, importCreatures, logger, gateway.InsertCreature)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "creatures: %s\n", report)
		}
		if importMoves != "" {
			report, err := importFile[models.Move](ctx, importMoves, logger, gateway.InsertMove)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moves: %s\n", report)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importCreatures, "creatures", "", "JSON file holding an array of creatures")
	importCmd.Flags().StringVar(&importMoves, "moves", "", "JSON file holding an array of moves")
}

type importReport struct {
	Inserted int
	Rejected int
}

func (r importReport) String() string {
	return fmt.Sprintf("%d inserted, %d rejected", r.Inserted, r.Rejected)
}

// importFile inserts every record of a JSON array. Records failing validation
// are skipped; a storage failure stops the import.
func importFile[T any](ctx context.Context, path string, logger *zap.Logger, insert func(context.Context, *T) error) (importReport, error) {
	var report importReport

	raw, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return report, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	for i := range records {
		err := insert(ctx, &records[i])
		switch {
		case err == nil:
			report.Inserted++
		case errors.Is(err, store.ErrValidation):
			report.Rejected++
			logger.Warn("record rejected", zap.String("file", path), zap.Int("index", i), zap.Error(err))
		default:
			return report, err
		}
	}
	return report, nil
}
