// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/analytics"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/api"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/cache"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/catalog"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/config"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/dataload"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/filestore"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/forecast"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/inventory"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/optimizer"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/repository/sqlite"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/timeutil"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/weather"
	"github.com/yoichiojima-2/karaage-tencho-kun/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := sqlite.NewDB("")
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	inventoryRepo := sqlite.NewInventoryRepository(db)
	salesRepo := sqlite.NewSalesRepository(db)

	ctx := context.Background()
	now := timeutil.NowJST()

	// Inventory seed carries the markdown policy alongside the sample rows.
	seedLoader := dataload.New[inventory.SeedData](filepath.Join(cfg.App.DataDir, "inventory_seed.json"))
	seedData, err := seedLoader.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load inventory seed")
	}
	items, movements := seedData.Materialize(now)
	if err := inventoryRepo.Seed(ctx, items, movements); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to seed inventory")
	}
	logger.Log.Info().Int("items", len(items)).Int("movements", len(movements)).Msg("Inventory seeded")

	analyticsCache, err := cache.NewAnalyticsCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Redis unavailable, analytics cache disabled")
		analyticsCache = cache.NewNoopAnalyticsCache()
	}

	if err := seedSales(ctx, salesRepo, analyticsCache, filepath.Join(cfg.App.DataDir, "sales_seed.json")); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to seed sales history")
	}

	inventoryService := inventory.NewService(inventoryRepo, seedData.Policy())
	model := forecast.NewModel(cfg.App.ModelPath)
	optimizerService := optimizer.NewService(model, inventoryService)
	analyticsService := analytics.NewService(salesRepo, analyticsCache)
	catalogService := catalog.NewService(filepath.Join(cfg.App.DataDir, "item_catalog.json"))
	weatherClient := weather.NewClient("")
	fileStore := filestore.NewStore(cfg.App.FileTTLSeconds)

	router := api.NewRouter(&api.Services{
		Inventory: inventoryService,
		Forecast:  model,
		Optimizer: optimizerService,
		Analytics: analyticsService,
		Catalog:   catalogService,
		Weather:   weatherClient,
		Files:     fileStore,
		BaseURL:   cfg.Server.BaseURL,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
