package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mfarias/listado-precios-backend/internal/app/model"
	"github.com/mfarias/listado-precios-backend/internal/app/service"
	apperrors "github.com/mfarias/listado-precios-backend/internal/errors"
	"github.com/mfarias/listado-precios-backend/internal/middleware"
	"github.com/mfarias/listado-precios-backend/pkg/currency"
)

type CatalogController struct {
	catalogService service.CatalogService
	exportService  service.ExportService
	formatter      *currency.Formatter
}

func NewCatalogController(
	catalogService service.CatalogService,
	exportService service.ExportService,
	formatter *currency.Formatter,
) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		exportService:  exportService,
		formatter:      formatter,
	}
}

// productView is the product payload sent to the frontend. FormattedPrice is
// opaque display text produced by the currency formatter.
type productView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Category        string   `json:"category"`
	CurrentPrice    float64  `json:"current_price"`
	FormattedPrice  string   `json:"formatted_price"`
	Characteristics []string `json:"characteristics"`
}

func (ctrl *CatalogController) toView(p model.Product) productView {
	characteristics := p.Characteristics
	if characteristics == nil {
		characteristics = []string{}
	}
	return productView{
		ID:              p.ID,
		Name:            p.Name,
		Brand:           p.Brand,
		Category:        p.Category,
		CurrentPrice:    p.CurrentPrice,
		FormattedPrice:  ctrl.formatter.Format(p.CurrentPrice),
		Characteristics: characteristics,
	}
}

func (ctrl *CatalogController) toViews(products []model.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, ctrl.toView(p))
	}
	return views
}

// GetAllProducts returns the product listing, filtered by ?q=
// GET /api/v1/products
func (ctrl *CatalogController) GetAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	query := c.Query("q")
	products := ctrl.catalogService.ListProducts(query)

	log.Info("Products fetched successfully", map[string]interface{}{
		"query": query,
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": ctrl.toViews(products),
		"count":    len(products),
	})
}

// GetProductByID returns a product by ID
// GET /api/v1/products/:id
func (ctrl *CatalogController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	product, err := ctrl.catalogService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ListingProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": ctrl.toView(*product),
	})
}

// GetProductFilters returns the distinct brands and categories
// GET /api/v1/products/filters
func (ctrl *CatalogController) GetProductFilters(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	brands := ctrl.catalogService.Brands()
	categories := ctrl.catalogService.Categories()

	log.Info("Product filters fetched", map[string]interface{}{
		"brand_count":    len(brands),
		"category_count": len(categories),
	})

	c.JSON(http.StatusOK, gin.H{
		"brands":     brands,
		"categories": categories,
	})
}

// DeleteProduct removes a product from the listing
// DELETE /api/v1/products/:id
func (ctrl *CatalogController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	if err := ctrl.catalogService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for deletion", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ListingProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// ExportProducts streams the listing as an XLSX workbook
// GET /api/v1/products/export
func (ctrl *CatalogController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	workbook, err := ctrl.exportService.BuildWorkbook()
	if err != nil {
		log.Error("Failed to build export workbook", err, nil)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.ListingExportFailed, "Failed to export price listing")
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("listado-precios-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		log.Error("Failed to stream export workbook", err, nil)
		return
	}

	log.Info("Price listing exported", nil)
}
