package main

import (
	"context"
	"encoding/json"
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
		outPath string
		dbPath  string
		limit   int
	)
	logger := logging.Must(os.Getenv("MANGASHELF_LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()

	cmd := &cobra.Command{
		Use:          "export-mirror",
		Short:        "Write manga_data.json from the sqlite catalog store",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			cfg := database.DefaultConfig()
			if dbPath != "" {
				cfg.Path = dbPath
			}
			db := database.MustOpen(cfg, logger)
			defer db.Close()

			items, err := catalog.NewRepo(db).List(ctx, limit)
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				return err
			}
			// the page refuses an unloadable file, so does the exporter
			if _, _, err := catalog.Decode(b); err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(outPath, append(b, '\n'), 0o644); err != nil {
				return err
			}
			logger.Info("exported titles", zap.Int("items", len(items)), zap.String("to", outPath))
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "data/manga_data.json", "output JSON path")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite path (defaults to the configured db_path)")
	cmd.Flags().IntVar(&limit, "limit", 0, "how many titles to export (0 = all)")

	if err := cmd.Execute(); err != nil {
		logger.Fatal("export-mirror failed", zap.Error(err))
	}
}
