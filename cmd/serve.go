package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github/itish2003/growthvision/config"
	"github/itish2003/growthvision/controller"
	"github/itish2003/growthvision/logger"
	"github/itish2003/growthvision/metrics"
	"github/itish2003/growthvision/services"
)

func serveCMD() *cobra.Command {
	var cfgPath string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run the chat HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
	serve.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default ./config.* or ./config/config.*)")
	return serve
}

func runServer(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log := logger.For("SERVER")
	gin.SetMode(gin.ReleaseMode)

	m := metrics.New()
	settings, err := services.NewSessionSettings(ctx, cfg, m)
	if err != nil {
		return fmt.Errorf("could not build session settings: %w", err)
	}
	sessions := services.NewSessionRegistry(settings, cfg.Session.IdleTTL, m)
	go sessions.RunSweeper(ctx, cfg.Session.SweepInterval)

	if cfg.File != "" {
		watcher, err := config.NewWatcher(cfg.File, func(next *config.Config) {
			logger.Init(next.Log.Level, next.Log.Format)
			updated, err := services.NewSessionSettings(ctx, next, m)
			if err != nil {
				logger.For("CONFIG").WithError(err).Error("Reloaded config rejected")
				return
			}
			sessions.UpdateSettings(updated)
		})
		if err != nil {
			log.WithError(err).Warn("Config hot reload disabled")
		} else {
			go func() {
				if err := watcher.Run(ctx); err != nil {
					logger.For("CONFIG").WithError(err).Warn("Config watcher stopped")
				}
			}()
		}
	}

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           controller.NewRouter(sessions, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.Server.Address).
			WithField("backend", cfg.Backend.Kind).
			WithField("ingestion", cfg.Ingestion.Kind).
			Info("Chat server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down chat server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
