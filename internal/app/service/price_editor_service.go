package service

import (
	"math"
	"strconv"
	"sync"

	"github.com/mfarias/listado-precios-backend/internal/app/store"
	"github.com/mfarias/listado-precios-backend/pkg/logger"
)

// EditorState is a snapshot of the single inline-edit slot. EditingID is
// empty when no row is being edited.
type EditorState struct {
	EditingID string `json:"editing_id"`
	TempValue string `json:"temp_value"`
}

// Editing reports whether a row is currently in edit mode.
func (s EditorState) Editing() bool {
	return s.EditingID != ""
}

// PriceEditorService is the edit-in-place state machine for single-product
// price changes. The table has one global edit slot: beginning an edit on a
// new row silently discards whatever edit was in flight on the previous one.
type PriceEditorService interface {
	State() EditorState
	Begin(productID string) (EditorState, error)
	SetValue(value string) EditorState
	// Save parses the pending value and commits it only when it is a finite
	// number strictly greater than zero; anything else is discarded without
	// touching the product. Either way the editor returns to idle. The
	// returned flag reports whether a price was committed.
	Save() (bool, EditorState)
	Cancel() EditorState
}

type priceEditorService struct {
	store *store.ProductStore

	mu        sync.Mutex
	editingID string
	tempValue string
}

func NewPriceEditorService(productStore *store.ProductStore) PriceEditorService {
	return &priceEditorService{store: productStore}
}

func (s *priceEditorService) State() EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return EditorState{EditingID: s.editingID, TempValue: s.tempValue}
}

func (s *priceEditorService) Begin(productID string) (EditorState, error) {
	product, ok := s.store.FindByID(productID)
	if !ok {
		logger.Warn("Cannot edit price: product not found", map[string]interface{}{
			"product_id": productID,
		})
		return s.State(), ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editingID != "" && s.editingID != productID {
		logger.Debug("Switching price edit slot", map[string]interface{}{
			"previous_id": s.editingID,
			"product_id":  productID,
		})
	}

	// Overwrites any edit in flight: the slot is global to the table.
	s.editingID = productID
	s.tempValue = strconv.FormatFloat(product.CurrentPrice, 'f', -1, 64)

	return EditorState{EditingID: s.editingID, TempValue: s.tempValue}, nil
}

func (s *priceEditorService) SetValue(value string) EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editingID != "" {
		s.tempValue = value
	}
	return EditorState{EditingID: s.editingID, TempValue: s.tempValue}
}

func (s *priceEditorService) Save() (bool, EditorState) {
	s.mu.Lock()
	editingID := s.editingID
	tempValue := s.tempValue
	s.editingID = ""
	s.tempValue = ""
	s.mu.Unlock()

	if editingID == "" {
		return false, EditorState{}
	}

	price, err := strconv.ParseFloat(tempValue, 64)
	if err != nil || math.IsInf(price, 0) || math.IsNaN(price) || price <= 0 {
		logger.Warn("Discarding invalid price edit", map[string]interface{}{
			"product_id": editingID,
			"value":      tempValue,
		})
		return false, EditorState{}
	}

	if !s.store.UpdatePrice(editingID, price) {
		logger.Warn("Cannot save price: product not found", map[string]interface{}{
			"product_id": editingID,
		})
		return false, EditorState{}
	}

	logger.Info("Price updated", map[string]interface{}{
		"product_id": editingID,
		"price":      price,
	})
	return true, EditorState{}
}

func (s *priceEditorService) Cancel() EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editingID = ""
	s.tempValue = ""
	return EditorState{}
}
