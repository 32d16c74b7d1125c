package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mfarias/listado-precios-backend/internal/app/service"
	apperrors "github.com/mfarias/listado-precios-backend/internal/errors"
	"github.com/mfarias/listado-precios-backend/internal/middleware"
)

type PriceEditorController struct {
	editorService service.PriceEditorService
}

func NewPriceEditorController(editorService service.PriceEditorService) *PriceEditorController {
	return &PriceEditorController{editorService: editorService}
}

type SetEditorValueRequest struct {
	Value string `json:"value" binding:"required"`
}

// GetState returns the inline edit slot
// GET /api/v1/price-editor
func (ctrl *PriceEditorController) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"editor": ctrl.editorService.State(),
	})
}

// Begin opens the edit slot for a product, replacing any edit in flight
// POST /api/v1/price-editor/:id
func (ctrl *PriceEditorController) Begin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	state, err := ctrl.editorService.Begin(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for price edit", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ListingProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to begin price edit", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Price edit started", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"editor": state,
	})
}

// SetValue updates the pending edit value
// PUT /api/v1/price-editor
func (ctrl *PriceEditorController) SetValue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SetEditorValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid editor value request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"editor": ctrl.editorService.SetValue(req.Value),
	})
}

// Save commits the pending edit when it parses to a positive number and
// silently discards it otherwise; either way the slot returns to idle
// POST /api/v1/price-editor/save
func (ctrl *PriceEditorController) Save(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	committed, state := ctrl.editorService.Save()

	log.Info("Price edit closed", map[string]interface{}{
		"committed": committed,
	})

	c.JSON(http.StatusOK, gin.H{
		"committed": committed,
		"editor":    state,
	})
}

// Cancel discards the pending edit
// DELETE /api/v1/price-editor
func (ctrl *PriceEditorController) Cancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"editor": ctrl.editorService.Cancel(),
	})
}
