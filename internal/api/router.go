package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/fox-tracks-go/internal/chart"
	"github.com/jengzang/fox-tracks-go/internal/config"
	"github.com/jengzang/fox-tracks-go/internal/handler"
	"github.com/jengzang/fox-tracks-go/internal/middleware"
	"github.com/jengzang/fox-tracks-go/internal/repository"
	"github.com/jengzang/fox-tracks-go/internal/service"
)

// SetupRouter wires repositories, services and handlers over db
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	observationRepo := repository.NewObservationRepository(db)
	importRepo := repository.NewImportRepository(db)

	trajectoryService := service.NewTrajectoryService(observationRepo)
	analyticsService := service.NewAnalyticsService(observationRepo)
	importService := service.NewImportService(observationRepo, importRepo)

	defaults := cfg.Thresholds()
	subjects := handler.NewSubjectHandler(trajectoryService, defaults)
	downsample := handler.NewDownsampleHandler(defaults)
	analytics := handler.NewAnalyticsHandler(analyticsService)
	imports := handler.NewImportHandler(importService, cfg.MaxUploadBytes)
	charts := handler.NewChartHandler(trajectoryService, analyticsService, defaults, chart.Options{AssetsHost: cfg.ChartAssetsHost})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Fox Tracks API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/subjects", subjects.ListSubjects)
		subject := api.Group("/subjects/:id")
		{
			subject.GET("/observations", subjects.GetObservations)
			subject.GET("/geojson", subjects.GetGeoJSON)

			stats := subject.Group("/analytics")
			{
				stats.GET("/summary", analytics.GetSummary)
				stats.GET("/sections", analytics.GetSections)
				stats.GET("/monthly", analytics.GetMonthly)
				stats.GET("/directions", analytics.GetDirections)
				stats.GET("/displacement", analytics.GetDisplacement)
				stats.GET("/clusters", analytics.GetClusters)
			}
		}

		pairs := api.Group("/pairs/:a/:b")
		{
			pairs.GET("/distance", analytics.GetPairDistance)
			pairs.GET("/monthly-distance", analytics.GetMonthlyPairDistance)
			pairs.GET("/correlation", analytics.GetCorrelation)
		}

		api.GET("/heatmap", analytics.GetHeatmap)
		api.POST("/downsample", downsample.Downsample)

		api.GET("/imports", imports.ListImports)
		api.POST("/imports", middleware.JWTAuth(cfg.JWTSecret), imports.CreateImport)
	}

	views := r.Group("/charts")
	{
		views.GET("/map", charts.GetMap)
		views.GET("/trajectories.png", charts.GetTrajectoryPNG)
		views.GET("/heatmap", charts.GetHeatmap)
		views.GET("/timelapse", charts.GetTimelapse)
		views.GET("/pairs/:a/:b", charts.GetPair)
	}

	return r
}
