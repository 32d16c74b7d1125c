package service

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/mfarias/listado-precios-backend/internal/app/model"
	"github.com/mfarias/listado-precios-backend/internal/app/store"
	"github.com/mfarias/listado-precios-backend/pkg/logger"
)

var (
	ErrNoAdjustmentValue  = errors.New("adjustment value is empty")
	ErrNoAffectedProducts = errors.New("no products match the adjustment filters")
	ErrInvalidAdjustment  = errors.New("adjustment value is not a number")
	ErrNotConfirming      = errors.New("adjustment is not awaiting confirmation")
)

// FilterAll selects every brand or category in an adjustment filter.
const FilterAll = "all"

// AdjustmentState is a snapshot of the bulk-adjustment dialog: the filter
// pair, the adjustment type and value, and whether the engine is in the
// confirmation phase.
type AdjustmentState struct {
	Brand      string               `json:"brand"`
	Category   string               `json:"category"`
	Type       model.AdjustmentType `json:"type"`
	Value      string               `json:"value"`
	Confirming bool                 `json:"confirming"`
}

// AdjustmentService is the bulk price-adjustment engine: a two-phase state
// machine (editing → confirming → commit or back). The affected set and the
// projected prices are derived on every read, never cached.
type AdjustmentService interface {
	State() AdjustmentState
	SetBrand(brand string)
	SetCategory(category string)
	SetType(adjustmentType model.AdjustmentType)
	SetValue(value string)
	// Affected returns the products matching the current brand/category
	// filters, in store order.
	Affected() []model.Product
	// ProjectPrice computes the price a product would get under the current
	// type and value. An unparseable value projects every price to itself.
	ProjectPrice(currentPrice float64) float64
	// Confirm moves editing → confirming. It is rejected while the value is
	// blank or the affected set is empty.
	Confirm() error
	// Back returns to the editing phase keeping filters and value intact.
	Back() error
	// Apply commits the adjustment to every affected product atomically and
	// resets the dialog. An unparseable value aborts the whole commit and
	// leaves the engine in the confirming phase.
	Apply() (int, error)
	// Cancel resets filters, value and phase without touching any price.
	Cancel()
}

type adjustmentService struct {
	store *store.ProductStore

	mu         sync.Mutex
	brand      string
	category   string
	adjType    model.AdjustmentType
	value      string
	confirming bool
}

func NewAdjustmentService(productStore *store.ProductStore) AdjustmentService {
	return &adjustmentService{
		store:    productStore,
		brand:    FilterAll,
		category: FilterAll,
		adjType:  model.AdjustmentPercentage,
	}
}

func (s *adjustmentService) State() AdjustmentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *adjustmentService) stateLocked() AdjustmentState {
	return AdjustmentState{
		Brand:      s.brand,
		Category:   s.category,
		Type:       s.adjType,
		Value:      s.value,
		Confirming: s.confirming,
	}
}

func (s *adjustmentService) SetBrand(brand string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if brand == "" {
		brand = FilterAll
	}
	s.brand = brand
}

func (s *adjustmentService) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == "" {
		category = FilterAll
	}
	s.category = category
}

func (s *adjustmentService) SetType(adjustmentType model.AdjustmentType) {
	if !adjustmentType.Valid() {
		logger.Warn("Ignoring unknown adjustment type", map[string]interface{}{
			"type": string(adjustmentType),
		})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjType = adjustmentType
}

func (s *adjustmentService) SetValue(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
}

func (s *adjustmentService) Affected() []model.Product {
	s.mu.Lock()
	brand, category := s.brand, s.category
	s.mu.Unlock()

	return affectedProducts(s.store.All(), brand, category)
}

func (s *adjustmentService) ProjectPrice(currentPrice float64) float64 {
	s.mu.Lock()
	adjType, value := s.adjType, s.value
	s.mu.Unlock()

	return projectPrice(currentPrice, adjType, value)
}

func (s *adjustmentService) Confirm() error {
	affected := s.Affected()

	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.value) == "" {
		return ErrNoAdjustmentValue
	}
	if len(affected) == 0 {
		return ErrNoAffectedProducts
	}

	s.confirming = true
	logger.Debug("Adjustment awaiting confirmation", map[string]interface{}{
		"brand":    s.brand,
		"category": s.category,
		"type":     string(s.adjType),
		"value":    s.value,
		"affected": len(affected),
	})
	return nil
}

func (s *adjustmentService) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.confirming {
		return ErrNotConfirming
	}
	// Phase only: the user's filter selection survives for further tweaking.
	s.confirming = false
	return nil
}

func (s *adjustmentService) Apply() (int, error) {
	s.mu.Lock()
	state := s.stateLocked()
	s.mu.Unlock()

	if _, err := strconv.ParseFloat(strings.TrimSpace(state.Value), 64); err != nil {
		logger.Warn("Aborting adjustment commit: value is not a number", map[string]interface{}{
			"value": state.Value,
		})
		return 0, ErrInvalidAdjustment
	}

	affected := affectedProducts(s.store.All(), state.Brand, state.Category)
	prices := make(map[string]float64, len(affected))
	for _, p := range affected {
		prices[p.ID] = projectPrice(p.CurrentPrice, state.Type, state.Value)
	}
	s.store.UpdatePrices(prices)

	s.mu.Lock()
	s.brand = FilterAll
	s.category = FilterAll
	s.value = ""
	s.confirming = false
	s.mu.Unlock()

	logger.Info("Bulk adjustment applied", map[string]interface{}{
		"type":     string(state.Type),
		"value":    state.Value,
		"brand":    state.Brand,
		"category": state.Category,
		"adjusted": len(affected),
	})
	return len(affected), nil
}

func (s *adjustmentService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.brand = FilterAll
	s.category = FilterAll
	s.value = ""
	s.confirming = false
}

// affectedProducts returns the subset matching both filters; "all" matches
// every brand or category.
func affectedProducts(products []model.Product, brand, category string) []model.Product {
	affected := make([]model.Product, 0, len(products))
	for _, p := range products {
		brandMatch := brand == FilterAll || p.Brand == brand
		categoryMatch := category == FilterAll || p.Category == category
		if brandMatch && categoryMatch {
			affected = append(affected, p)
		}
	}
	return affected
}

// projectPrice computes the adjusted price. Percentage adjustments scale the
// price by 1+value/100, fixed adjustments add the value; both round
// half-away-from-zero to a whole amount. A value that does not parse leaves
// the price unchanged.
func projectPrice(currentPrice float64, adjustmentType model.AdjustmentType, value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return currentPrice
	}
	if adjustmentType == model.AdjustmentPercentage {
		return math.Round(currentPrice * (1 + v/100))
	}
	return math.Round(currentPrice + v)
}
