package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"portfolio/internal/api"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/fetcher"
	"portfolio/internal/loader"
	"portfolio/internal/retention"
	"portfolio/internal/storage"
)

const historyPruneInterval = time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the article page and the JSON API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	styles, err := config.LoadCategoryStyles(cfg.Site.CategoryStylesFile)
	if err != nil {
		return err
	}

	// Resident session collection
	cacheManager := cache.NewManager(cfg.CacheTTL)

	storageManager, err := storage.NewStorage(cfg.DataDir)
	if err != nil {
		return err
	}
	defer storageManager.Close()

	pruner := retention.New(storageManager, cfg.HistoryRetention, historyPruneInterval)
	pruner.Start()
	defer pruner.Stop()

	articleLoader, err := loader.New(fetcher.New(), cacheManager, storageManager, cfg.Feed)
	if err != nil {
		return err
	}

	server, err := api.NewServer(articleLoader, storageManager, styles, cfg)
	if err != nil {
		return err
	}

	log.Printf("Starting portfolio server on port %d", cfg.Port)
	log.Printf("Feed source: %s (%s)", articleLoader.Source(), cfg.Feed.Format)
	if cfg.Feed.FallbackURL != "" {
		log.Printf("Fallback source: %s", cfg.Feed.FallbackURL)
	}
	log.Printf("Session TTL: %v", cfg.CacheTTL)
	log.Printf("Data directory: %s", cfg.DataDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.StartWithContext(ctx); err != nil && err != context.Canceled {
		return err
	}
	log.Println("Server stopped")
	return nil
}
