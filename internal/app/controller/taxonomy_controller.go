package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mfarias/listado-precios-backend/internal/app/service"
	apperrors "github.com/mfarias/listado-precios-backend/internal/errors"
	"github.com/mfarias/listado-precios-backend/internal/middleware"
)

type TaxonomyController struct {
	taxonomyService service.TaxonomyService
}

func NewTaxonomyController(taxonomyService service.TaxonomyService) *TaxonomyController {
	return &TaxonomyController{taxonomyService: taxonomyService}
}

type DraftDetailsRequest struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

type AddCharacteristicRequest struct {
	Name string `json:"name" binding:"required"`
}

type CharacteristicOptionRequest struct {
	Option string `json:"option" binding:"required"`
}

// GetLibrary returns the global characteristic library
// GET /api/v1/characteristics
func (ctrl *TaxonomyController) GetLibrary(c *gin.Context) {
	library := ctrl.taxonomyService.Library()
	c.JSON(http.StatusOK, gin.H{
		"characteristics": library,
		"count":           len(library),
	})
}

// OpenCreate opens a draft for a new product
// POST /api/v1/drafts
func (ctrl *TaxonomyController) OpenCreate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	draft := ctrl.taxonomyService.OpenCreate()

	log.Info("Product draft opened", map[string]interface{}{
		"mode": string(draft.Mode),
	})

	c.JSON(http.StatusCreated, gin.H{
		"draft": draft,
	})
}

// OpenEdit opens a draft pre-populated from an existing product
// POST /api/v1/products/:id/edit
func (ctrl *TaxonomyController) OpenEdit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	draft, err := ctrl.taxonomyService.OpenEdit(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for editing", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ListingProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to open product draft", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Product draft opened", map[string]interface{}{
		"mode":       string(draft.Mode),
		"product_id": id,
	})

	c.JSON(http.StatusCreated, gin.H{
		"draft": draft,
	})
}

// GetDraft returns the open draft with its union option lists
// GET /api/v1/drafts
func (ctrl *TaxonomyController) GetDraft(c *gin.Context) {
	draft, ok := ctrl.taxonomyService.Draft()
	if !ok {
		apperrors.NotFound(c, apperrors.DraftNotOpen, "No product draft is open")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"draft": draft,
	})
}

// SetDetails updates the draft's name, price and category
// PUT /api/v1/drafts
func (ctrl *TaxonomyController) SetDetails(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req DraftDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid draft details request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.taxonomyService.SetDetails(req.Name, req.Price, req.Category); err != nil {
		apperrors.NotFound(c, apperrors.DraftNotOpen, "No product draft is open")
		return
	}

	ctrl.respondDraft(c)
}

// AddCharacteristic registers a characteristic name on the draft and library
// POST /api/v1/drafts/characteristics
func (ctrl *TaxonomyController) AddCharacteristic(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddCharacteristicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid characteristic request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.taxonomyService.AddCharacteristic(req.Name); err != nil {
		apperrors.NotFound(c, apperrors.DraftNotOpen, "No product draft is open")
		return
	}

	ctrl.respondDraft(c)
}

// AddOption registers an option for a draft characteristic
// POST /api/v1/drafts/characteristics/:name/options
func (ctrl *TaxonomyController) AddOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CharacteristicOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid option request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.taxonomyService.AddOption(c.Param("name"), req.Option); err != nil {
		ctrl.respondDraftError(c, err)
		return
	}

	ctrl.respondDraft(c)
}

// ToggleOption flips one selection on the draft
// POST /api/v1/drafts/characteristics/:name/toggle
func (ctrl *TaxonomyController) ToggleOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CharacteristicOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid toggle request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.taxonomyService.ToggleOption(c.Param("name"), req.Option); err != nil {
		ctrl.respondDraftError(c, err)
		return
	}

	ctrl.respondDraft(c)
}

// SaveDraft validates and commits the draft
// POST /api/v1/drafts/save
func (ctrl *TaxonomyController) SaveDraft(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	product, err := ctrl.taxonomyService.Save()
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoDraft):
			apperrors.NotFound(c, apperrors.DraftNotOpen, "No product draft is open")
		case errors.Is(err, service.ErrDraftIncomplete):
			log.Warn("Draft save rejected: missing fields", nil)
			apperrors.UnprocessableEntity(c, apperrors.DraftIncomplete, "Name, price and category are required")
		case errors.Is(err, service.ErrInvalidDraftPrice):
			log.Warn("Draft save rejected: invalid price", nil)
			apperrors.UnprocessableEntity(c, apperrors.DraftInvalidPrice, "Price must be a non-negative number")
		case errors.Is(err, service.ErrProductNotFound):
			log.Warn("Draft save rejected: product no longer exists", nil)
			apperrors.NotFound(c, apperrors.ListingProductNotFound, "Product not found")
		default:
			log.Error("Failed to save product draft", err, nil)
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Product saved from draft", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product saved successfully",
		"product": product,
	})
}

// DiscardDraft drops the open draft
// DELETE /api/v1/drafts
func (ctrl *TaxonomyController) DiscardDraft(c *gin.Context) {
	ctrl.taxonomyService.Discard()
	c.JSON(http.StatusOK, gin.H{
		"message": "Draft discarded",
	})
}

func (ctrl *TaxonomyController) respondDraft(c *gin.Context) {
	draft, ok := ctrl.taxonomyService.Draft()
	if !ok {
		apperrors.NotFound(c, apperrors.DraftNotOpen, "No product draft is open")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"draft": draft,
	})
}

func (ctrl *TaxonomyController) respondDraftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoDraft):
		apperrors.NotFound(c, apperrors.DraftNotOpen, "No product draft is open")
	case errors.Is(err, service.ErrUnknownCharacteristic):
		apperrors.NotFound(c, apperrors.DraftUnknownCharacteristic, "Characteristic not found in draft")
	default:
		apperrors.InternalError(c, "")
	}
}
