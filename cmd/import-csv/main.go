package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mangashelf/internal/catalog"
	"mangashelf/pkg/database"
	"mangashelf/pkg/logging"
)

func main() {
	var (
		in     string
		dbPath string
	)
	logger := logging.Must(os.Getenv("MANGASHELF_LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()

	cmd := &cobra.Command{
		Use:          "import-csv",
		Short:        "Import an authoring CSV into the sqlite catalog store",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			cfg := database.DefaultConfig()
			if dbPath != "" {
				cfg.Path = dbPath
			}
			db := database.MustOpen(cfg, logger)
			defer db.Close()

			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			raw, err := catalog.ReadCSV(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", in, err)
			}
			items, dropped := catalog.Normalize(raw)
			for _, d := range dropped {
				logger.Warn("skipping row", zap.String("id", d.ID), zap.String("reason", d.Reason))
			}

			if err := catalog.NewRepo(db).Upsert(ctx, items); err != nil {
				return fmt.Errorf("import: %w", err)
			}
			logger.Info("imported catalog", zap.String("from", in), zap.String("db", cfg.Path), zap.Int("items", len(items)))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "data/manga.csv", "input CSV path")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite path (defaults to the configured db_path)")

	if err := cmd.Execute(); err != nil {
		logger.Fatal("import-csv failed", zap.Error(err))
	}
}
