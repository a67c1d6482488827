package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mangashelf/internal/web"
	"mangashelf/pkg/logging"
)

func main() {
	var (
		dataPath string
		addr     string
		level    string
	)
	cmd := &cobra.Command{
		Use:          "mirror-server",
		Short:        "Serve a local manga_data.json for development",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Must(level)
			defer func() { _ = logger.Sync() }()

			srv := &http.Server{
				Addr:              addr,
				Handler:           web.NewMirrorRouter(dataPath, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			logger.Info("mirror-server listening", zap.String("addr", addr), zap.String("file", dataPath))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "file", "data/manga_data.json", "catalog JSON to serve")
	cmd.Flags().StringVar(&addr, "addr", ":9000", "listen address")
	cmd.Flags().StringVar(&level, "log-level", "info", "log level")

	if err := cmd.Execute(); err != nil {
		logging.Must("info").Fatal("mirror-server stopped", zap.Error(err))
	}
}
