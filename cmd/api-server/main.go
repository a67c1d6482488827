package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mangashelf/internal/browser"
	"mangashelf/internal/catalog"
	"mangashelf/internal/grpcserver"
	"mangashelf/internal/web"
	"mangashelf/pkg/logging"
	"mangashelf/pkg/utils"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		logging.Must("info").Fatal("load config", zap.Error(err))
	}
	logger := logging.Must(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := catalog.NewStore()
	loader := catalog.NewLoader(cfg, logger.Named("catalog"))
	health := grpcserver.NewServer(logger.Named("grpc"))

	handler := web.NewHandler(store, loader, browser.ParseLanguage(cfg.Language), logger.Named("http"))
	handler.OnReload = func(int) { health.MarkServing() }
	router, err := web.NewRouter(handler)
	if err != nil {
		logger.Fatal("build router", zap.Error(err))
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcLis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Fatal("grpc listen failed", zap.String("addr", cfg.Server.GRPCAddr), zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := health.Serve(grpcLis); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("HTTP server listening",
			zap.String("addr", cfg.Server.HTTPAddr),
			zap.String("environment", cfg.Environment),
			zap.String("source", loader.Source().Name()),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// the page is served (empty) while the first load is in flight
	wg.Add(1)
	go func() {
		defer wg.Done()
		n := store.Reload(ctx, loader)
		health.MarkServing()
		logger.Info("initial catalog load finished", zap.Int("items", n))
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	logger.Info("shutting down servers")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", zap.Error(err))
	}
	health.Stop()

	wg.Wait()
	logger.Info("servers stopped")
}
