// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/analytics"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/api/handlers"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/api/middleware"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/catalog"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/filestore"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/forecast"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/inventory"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/optimizer"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/weather"
)

// Services bundles everything the router exposes. Nil entries simply
// leave their routes unregistered.
type Services struct {
	Inventory *inventory.Service
	Forecast  *forecast.Model
	Optimizer *optimizer.Service
	Analytics *analytics.Service
	Catalog   *catalog.Service
	Weather   *weather.Client
	Files     *filestore.Store
	BaseURL   string
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Inventory != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.GET("", inventoryHandler.List)
				inventoryGroup.GET("/expiration", inventoryHandler.CheckExpiration)
				inventoryGroup.POST("/add", inventoryHandler.AddStock)
				inventoryGroup.POST("/remove", inventoryHandler.RemoveStock)
				inventoryGroup.GET("/low_stock", inventoryHandler.LowStock)
				inventoryGroup.GET("/reorder", inventoryHandler.Reorder)
				inventoryGroup.GET("/movements", inventoryHandler.Movements)
			}
		}

		if services.Forecast != nil {
			forecastHandler := handlers.NewForecastHandler(services.Forecast)
			apiGroup.POST("/forecast/demand", forecastHandler.PredictDemand)
		}

		if services.Optimizer != nil && services.Files != nil {
			optimizerHandler := handlers.NewOptimizerHandler(services.Optimizer, services.Files, services.BaseURL)
			ordersGroup := apiGroup.Group("/orders")
			{
				ordersGroup.POST("/optimize", optimizerHandler.Optimize)
				ordersGroup.POST("/optimize/export", optimizerHandler.Export)
			}
		}

		if services.Analytics != nil {
			analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics)
			analyticsGroup := apiGroup.Group("/analytics")
			{
				analyticsGroup.GET("/summary", analyticsHandler.DailySummaries)
				analyticsGroup.GET("/categories", analyticsHandler.CategoryRanking)
				analyticsGroup.GET("/hourly", analyticsHandler.HourlyPattern)
				analyticsGroup.POST("/query", analyticsHandler.Query)
			}
		}

		if services.Catalog != nil {
			catalogHandler := handlers.NewCatalogHandler(services.Catalog)
			apiGroup.GET("/catalog/items", catalogHandler.Search)
		}

		if services.Weather != nil {
			weatherHandler := handlers.NewWeatherHandler(services.Weather)
			apiGroup.GET("/weather/hourly", weatherHandler.Hourly)
		}

		if services.Files != nil {
			filesHandler := handlers.NewFilesHandler(services.Files, services.BaseURL)
			apiGroup.POST("/files", filesHandler.Write)
			router.GET("/files/:file_id", filesHandler.Download)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
