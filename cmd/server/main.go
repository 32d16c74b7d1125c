package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mfarias/listado-precios-backend/config"
	"github.com/mfarias/listado-precios-backend/internal/app/controller"
	"github.com/mfarias/listado-precios-backend/internal/app/model"
	"github.com/mfarias/listado-precios-backend/internal/app/service"
	"github.com/mfarias/listado-precios-backend/internal/app/store"
	"github.com/mfarias/listado-precios-backend/internal/router"
	"github.com/mfarias/listado-precios-backend/pkg/currency"
	"github.com/mfarias/listado-precios-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Listado de Precios Backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// The catalog lives in memory only: it starts from the seed data and is
	// gone when the process exits.
	productStore := store.New(model.SeedCatalog())
	logger.Info("Product store seeded", map[string]interface{}{
		"products": productStore.Len(),
	})

	formatter := currency.NewFormatter(cfg.Currency.Locale)

	// Initialize services
	catalogService := service.NewCatalogService(productStore)
	priceEditorService := service.NewPriceEditorService(productStore)
	adjustmentService := service.NewAdjustmentService(productStore)
	taxonomyService := service.NewTaxonomyService(productStore)
	exportService := service.NewExportService(productStore, formatter)

	// Initialize controllers
	catalogController := controller.NewCatalogController(catalogService, exportService, formatter)
	priceEditorController := controller.NewPriceEditorController(priceEditorService)
	adjustmentController := controller.NewAdjustmentController(adjustmentService, formatter)
	taxonomyController := controller.NewTaxonomyController(taxonomyService)

	// Setup router
	r := router.NewRouter(
		catalogController,
		priceEditorController,
		adjustmentController,
		taxonomyController,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
