package main

import (
	"rentdash/config"
	"rentdash/internal/api"
	"rentdash/internal/dataset"
	"rentdash/internal/presentation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := cfg.NewLogger()

	logger.Infof("Using dataset at: %s", cfg.Data.Path)
	provider := dataset.NewProvider(cfg.Data.Path, cfg.Data.Reload, logger)

	// Load once up front so a bad file shows in the startup log
	if ds, err := provider.Dataset(); err != nil {
		logger.WithError(err).Error("Failed to load dataset")
	} else {
		logger.WithFields(logrus.Fields{
			"records": ds.Len(),
			"cities":  len(config.GetCityNames(ds)) - 1,
		}).Info("Dataset ready")
	}

	renderer := presentation.NewRenderer(cfg.Chart.Width, cfg.Chart.Height)
	handler := api.NewHandler(provider, renderer, logger)

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
