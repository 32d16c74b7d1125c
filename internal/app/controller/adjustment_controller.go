package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mfarias/listado-precios-backend/internal/app/model"
	"github.com/mfarias/listado-precios-backend/internal/app/service"
	apperrors "github.com/mfarias/listado-precios-backend/internal/errors"
	"github.com/mfarias/listado-precios-backend/internal/middleware"
	"github.com/mfarias/listado-precios-backend/pkg/currency"
)

type AdjustmentController struct {
	adjustmentService service.AdjustmentService
	formatter         *currency.Formatter
}

func NewAdjustmentController(adjustmentService service.AdjustmentService, formatter *currency.Formatter) *AdjustmentController {
	return &AdjustmentController{
		adjustmentService: adjustmentService,
		formatter:         formatter,
	}
}

type UpdateAdjustmentRequest struct {
	Brand    *string `json:"brand"`
	Category *string `json:"category"`
	Type     *string `json:"type"`
	Value    *string `json:"value"`
}

// affectedView is one row of the confirmation preview.
type affectedView struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Brand             string  `json:"brand"`
	Category          string  `json:"category"`
	CurrentPrice      float64 `json:"current_price"`
	NewPrice          float64 `json:"new_price"`
	FormattedCurrent  string  `json:"formatted_current_price"`
	FormattedNewPrice string  `json:"formatted_new_price"`
}

func (ctrl *AdjustmentController) preview() []affectedView {
	affected := ctrl.adjustmentService.Affected()
	views := make([]affectedView, 0, len(affected))
	for _, p := range affected {
		newPrice := ctrl.adjustmentService.ProjectPrice(p.CurrentPrice)
		views = append(views, affectedView{
			ID:                p.ID,
			Name:              p.Name,
			Brand:             p.Brand,
			Category:          p.Category,
			CurrentPrice:      p.CurrentPrice,
			NewPrice:          newPrice,
			FormattedCurrent:  ctrl.formatter.Format(p.CurrentPrice),
			FormattedNewPrice: ctrl.formatter.Format(newPrice),
		})
	}
	return views
}

func (ctrl *AdjustmentController) respondState(c *gin.Context) {
	affected := ctrl.preview()
	c.JSON(http.StatusOK, gin.H{
		"adjustment": ctrl.adjustmentService.State(),
		"affected":   affected,
		"count":      len(affected),
	})
}

// GetState returns the dialog state plus the affected-set preview
// GET /api/v1/adjustments
func (ctrl *AdjustmentController) GetState(c *gin.Context) {
	ctrl.respondState(c)
}

// Update sets any of the adjustment filters, type or value
// PUT /api/v1/adjustments
func (ctrl *AdjustmentController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid adjustment update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if req.Brand != nil {
		ctrl.adjustmentService.SetBrand(*req.Brand)
	}
	if req.Category != nil {
		ctrl.adjustmentService.SetCategory(*req.Category)
	}
	if req.Type != nil {
		adjustmentType := model.AdjustmentType(*req.Type)
		if !adjustmentType.Valid() {
			log.Warn("Invalid adjustment type", map[string]interface{}{
				"type": *req.Type,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Adjustment type must be percentage or fixed")
			return
		}
		ctrl.adjustmentService.SetType(adjustmentType)
	}
	if req.Value != nil {
		ctrl.adjustmentService.SetValue(*req.Value)
	}

	ctrl.respondState(c)
}

// Confirm moves the dialog into the confirmation phase
// POST /api/v1/adjustments/confirm
func (ctrl *AdjustmentController) Confirm(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.adjustmentService.Confirm(); err != nil {
		switch {
		case errors.Is(err, service.ErrNoAdjustmentValue):
			log.Warn("Adjustment confirmation rejected: no value", nil)
			apperrors.Conflict(c, apperrors.AdjustmentValueRequired, "Enter an adjustment value first")
		case errors.Is(err, service.ErrNoAffectedProducts):
			log.Warn("Adjustment confirmation rejected: nothing matched", nil)
			apperrors.Conflict(c, apperrors.AdjustmentNothingMatched, "No products match the selected filters")
		default:
			log.Error("Failed to confirm adjustment", err, nil)
			apperrors.InternalError(c, "")
		}
		return
	}

	ctrl.respondState(c)
}

// Back returns from the confirmation phase, keeping filters and value
// POST /api/v1/adjustments/back
func (ctrl *AdjustmentController) Back(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.adjustmentService.Back(); err != nil {
		log.Warn("Adjustment back rejected", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Conflict(c, apperrors.AdjustmentNotConfirming, "Adjustment is not awaiting confirmation")
		return
	}

	ctrl.respondState(c)
}

// Apply commits the adjustment to every affected product
// POST /api/v1/adjustments/apply
func (ctrl *AdjustmentController) Apply(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adjusted, err := ctrl.adjustmentService.Apply()
	if err != nil {
		if errors.Is(err, service.ErrInvalidAdjustment) {
			log.Warn("Adjustment commit aborted: invalid value", nil)
			apperrors.Conflict(c, apperrors.AdjustmentValueInvalid, "Adjustment value is not a number")
			return
		}
		log.Error("Failed to apply adjustment", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Bulk adjustment applied", map[string]interface{}{
		"adjusted": adjusted,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":    "Adjustment applied successfully",
		"adjusted":   adjusted,
		"adjustment": ctrl.adjustmentService.State(),
	})
}

// Cancel resets the dialog without touching any price
// DELETE /api/v1/adjustments
func (ctrl *AdjustmentController) Cancel(c *gin.Context) {
	ctrl.adjustmentService.Cancel()
	ctrl.respondState(c)
}
