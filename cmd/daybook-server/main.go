package main

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daybookapp/daybook/pkg/daybook/analytics"
	"github.com/daybookapp/daybook/pkg/daybook/auth"
	"github.com/daybookapp/daybook/pkg/daybook/clock"
	"github.com/daybookapp/daybook/pkg/daybook/config"
	"github.com/daybookapp/daybook/pkg/daybook/database"
	"github.com/daybookapp/daybook/pkg/daybook/entries"
	"github.com/daybookapp/daybook/pkg/daybook/importexport"
	"github.com/daybookapp/daybook/pkg/daybook/models"
	"github.com/daybookapp/daybook/pkg/daybook/moods"
	"github.com/daybookapp/daybook/pkg/daybook/seed"
	"github.com/daybookapp/daybook/pkg/daybook/tags"
)

func main() {
	cfg := config.Load()

	if err := database.Connect(cfg.DBPath); err != nil {
		log.Fatal("Failed to connect to database", "path", cfg.DBPath, "err", err)
	}

	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatal("Failed to run migrations", "err", err)
	}
	log.Info("Database ready", "path", cfg.DBPath)

	seeds := seed.Default()
	store := entries.NewStore(database.GetDB())
	aggregator := analytics.NewAggregator(store, database.GetDB(), clock.System{})

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		authHandler := auth.NewHandler(database.GetDB(), func(tx *gorm.DB, userID uint) error {
			return tags.SeedDefaults(tx, userID, seeds)
		})
		authHandler.RegisterRoutes(api.Group("/auth"))

		protected := api.Group("", auth.AuthMiddleware())

		entriesHandler := entries.NewHandler(store)
		entriesHandler.RegisterRoutes(protected)

		tagsHandler := tags.NewHandler(database.GetDB())
		tagsHandler.RegisterRoutes(protected)

		moodsHandler := moods.NewHandler(seeds)
		moodsHandler.RegisterRoutes(protected)

		analyticsHandler := analytics.NewHandler(aggregator)
		analyticsHandler.RegisterRoutes(protected)

		importExportHandler := importexport.NewHandler(database.GetDB(), store)
		importExportHandler.RegisterRoutes(protected)
	}

	log.Info("Starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server exited", "err", err)
	}
}
