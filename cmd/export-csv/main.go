package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mangashelf/internal/catalog"
	"mangashelf/pkg/database"
	"mangashelf/pkg/logging"
)

func main() {
	var (
		out    string
		dbPath string
	)
	logger := logging.Must(os.Getenv("MANGASHELF_LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()

	cmd := &cobra.Command{
		Use:          "export-csv",
		Short:        "Dump the sqlite catalog store as an authoring CSV",
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

			items, err := catalog.NewRepo(db).List(ctx, 0)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := catalog.WriteCSV(f, items); err != nil {
				return err
			}
			logger.Info("exported catalog", zap.String("to", out), zap.Int("items", len(items)))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "data/manga.csv", "output CSV path")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite path (defaults to the configured db_path)")

	if err := cmd.Execute(); err != nil {
		logger.Fatal("export-csv failed", zap.Error(err))
	}
}
