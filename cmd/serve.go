package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/killallgit/vad-annotator/api"
	"github.com/killallgit/vad-annotator/api/types"
	"github.com/killallgit/vad-annotator/internal/database"
	"github.com/killallgit/vad-annotator/internal/services/cache"
	"github.com/killallgit/vad-annotator/internal/services/clips"
	"github.com/killallgit/vad-annotator/internal/services/ratings"
	"github.com/killallgit/vad-annotator/pkg/config"
)

func newServeCmd() *cobra.Command {
	var (
		serverHost string
		serverPort int
		clipsDir   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the rating service",
		Long: `Start the VAD Annotator rating service with the configured settings.

The service lists the clips in the clip directory, serves their audio,
reports annotator progress and stores submitted ratings.

Example:
  vad-annotator serve
  vad-annotator serve --port 9090
  vad-annotator serve --clips ./audio --host 127.0.0.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// Flags override config
			if serverHost != "" {
				cfg.Server.Host = serverHost
			}
			if serverPort != 0 {
				cfg.Server.Port = serverPort
			}
			if clipsDir != "" {
				cfg.Audio.ClipsDir = clipsDir
			}

			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	cmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
	cmd.Flags().StringVar(&clipsDir, "clips", "", "clip directory (overrides config)")
	return cmd
}

// openDatabase opens and migrates the configured database
func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// newRatingService wires the rating service over db and the clip directory
func newRatingService(cfg *config.Config, db *database.DB, c cache.Cache) (*clips.Catalog, ratings.Service) {
	log := logrus.StandardLogger()
	catalog := clips.NewCatalog(clips.Config{
		Dir:        cfg.Audio.ClipsDir,
		Extensions: cfg.Audio.Extensions,
		Cache:      c,
		CacheTTL:   cfg.Audio.ListCacheTTL,
		Logger:     log,
	})
	return catalog, ratings.NewService(ratings.NewRepository(db.DB), catalog, log)
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logrus.StandardLogger()
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	listCache := cache.NewMemoryCache(16, time.Minute)
	defer listCache.Stop()

	catalog, ratingService := newRatingService(cfg, db, listCache)

	server := api.NewServer(cfg.Server)
	server.SetLogger(log)
	server.SetSecurity(cfg.Security)
	server.SetDependencies(&types.Dependencies{
		DB:            db,
		Catalog:       catalog,
		RatingService: ratingService,
		Version:       Version,
	})
	if err := server.Initialize(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	log.WithFields(logrus.Fields{
		"addr":  server.Addr(),
		"clips": cfg.Audio.ClipsDir,
		"db":    cfg.Database.Path,
	}).Info("rating service started")

	select {
	case <-ctx.Done():
		log.Info("shutting down rating service")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("rating service stopped")
	return nil
}
