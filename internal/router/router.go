package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mfarias/listado-precios-backend/config"
	"github.com/mfarias/listado-precios-backend/internal/app/controller"
	"github.com/mfarias/listado-precios-backend/internal/middleware"
)

type Router struct {
	catalogController     *controller.CatalogController
	priceEditorController *controller.PriceEditorController
	adjustmentController  *controller.AdjustmentController
	taxonomyController    *controller.TaxonomyController
	config                *config.Config
}

func NewRouter(
	catalogController *controller.CatalogController,
	priceEditorController *controller.PriceEditorController,
	adjustmentController *controller.AdjustmentController,
	taxonomyController *controller.TaxonomyController,
	cfg *config.Config,
) *Router {
	return &Router{
		catalogController:     catalogController,
		priceEditorController: priceEditorController,
		adjustmentController:  adjustmentController,
		taxonomyController:    taxonomyController,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Listado de Precios API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.catalogController.GetAllProducts)
			products.GET("/filters", r.catalogController.GetProductFilters)
			products.GET("/export", r.catalogController.ExportProducts)
			products.GET("/:id", r.catalogController.GetProductByID)
			products.DELETE("/:id", r.catalogController.DeleteProduct)
			products.POST("/:id/edit", r.taxonomyController.OpenEdit)
		}

		editor := v1.Group("/price-editor")
		{
			editor.GET("", r.priceEditorController.GetState)
			editor.POST("/save", r.priceEditorController.Save)
			editor.POST("/:id", r.priceEditorController.Begin)
			editor.PUT("", r.priceEditorController.SetValue)
			editor.DELETE("", r.priceEditorController.Cancel)
		}

		adjustments := v1.Group("/adjustments")
		{
			adjustments.GET("", r.adjustmentController.GetState)
			adjustments.PUT("", r.adjustmentController.Update)
			adjustments.POST("/confirm", r.adjustmentController.Confirm)
			adjustments.POST("/back", r.adjustmentController.Back)
			adjustments.POST("/apply", r.adjustmentController.Apply)
			adjustments.DELETE("", r.adjustmentController.Cancel)
		}

		v1.GET("/characteristics", r.taxonomyController.GetLibrary)

		drafts := v1.Group("/drafts")
		{
			drafts.POST("", r.taxonomyController.OpenCreate)
			drafts.GET("", r.taxonomyController.GetDraft)
			drafts.PUT("", r.taxonomyController.SetDetails)
			drafts.POST("/characteristics", r.taxonomyController.AddCharacteristic)
			drafts.POST("/characteristics/:name/options", r.taxonomyController.AddOption)
			drafts.POST("/characteristics/:name/toggle", r.taxonomyController.ToggleOption)
			drafts.POST("/save", r.taxonomyController.SaveDraft)
			drafts.DELETE("", r.taxonomyController.DiscardDraft)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
