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
	ErrNoDraft               = errors.New("no product draft is open")
	ErrDraftIncomplete       = errors.New("draft name, price and category are required")
	ErrInvalidDraftPrice     = errors.New("draft price is not a valid amount")
	ErrUnknownCharacteristic = errors.New("characteristic not found in draft")
)

// DraftMode tags what a save will do with the open draft.
type DraftMode string

const (
	DraftCreating DraftMode = "creating"
	DraftEditing  DraftMode = "editing"
)

// DraftCharacteristic is one characteristic inside the open draft: the
// options registered through this draft plus the selections made so far.
// The rendered option list is the union of the library's options and the
// draft's own, so options added by other products stay offered here.
type DraftCharacteristic struct {
	Name     string            `json:"name"`
	Options  []string          `json:"options"`
	Selected []model.Selection `json:"selected"`
}

// Draft is a snapshot of the open product form. It exists only between open
// and save/discard and is never part of the committed store.
type Draft struct {
	Mode            DraftMode             `json:"mode"`
	ProductID       string                `json:"product_id,omitempty"`
	Name            string                `json:"name"`
	Price           string                `json:"price"`
	Category        string                `json:"category"`
	Characteristics []DraftCharacteristic `json:"characteristics"`
}

// TaxonomyService maintains the global characteristic library and the
// single product draft. The library is append-only: names and options are
// registered forever, even when no product uses them anymore.
type TaxonomyService interface {
	Library() []model.Characteristic
	// OpenCreate opens a draft for a new product, seeded with a snapshot of
	// the whole library and no selections.
	OpenCreate() Draft
	// OpenEdit opens a draft for an existing product; each characteristic's
	// selection is pre-populated from the product's persisted entries.
	OpenEdit(productID string) (Draft, error)
	Draft() (Draft, bool)
	SetDetails(name, price, category string) error
	// AddCharacteristic registers a new characteristic name on the draft and,
	// if unseen, on the library. Blank or duplicate names are no-ops.
	AddCharacteristic(name string) error
	// AddOption registers an option on a draft characteristic and on the
	// matching library entry, deduplicated independently in each place.
	AddOption(characteristic, option string) error
	// ToggleOption flips one selection on the draft.
	ToggleOption(characteristic, option string) error
	// Save validates the draft and commits it: in-place update when editing,
	// append with a fresh id when creating. The draft is discarded on
	// success and kept open on validation failure.
	Save() (model.Product, error)
	Discard()
}

type draftCharacteristic struct {
	name     string
	options  []string
	selected []model.Selection
}

type taxonomyService struct {
	store *store.ProductStore

	mu        sync.Mutex
	library   []model.Characteristic
	open      bool
	mode      DraftMode
	productID string
	name      string
	price     string
	category  string
	chars     []draftCharacteristic
}

func NewTaxonomyService(productStore *store.ProductStore) TaxonomyService {
	return &taxonomyService{store: productStore}
}

func (s *taxonomyService) Library() []model.Characteristic {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Characteristic, 0, len(s.library))
	for _, c := range s.library {
		out = append(out, c.Clone())
	}
	return out
}

func (s *taxonomyService) OpenCreate() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.openLocked(DraftCreating, "", "", "", "", nil)
	logger.Debug("Opened product draft", map[string]interface{}{
		"mode": string(DraftCreating),
	})
	return s.draftLocked()
}

func (s *taxonomyService) OpenEdit(productID string) (Draft, error) {
	product, ok := s.store.FindByID(productID)
	if !ok {
		logger.Warn("Cannot edit: product not found", map[string]interface{}{
			"product_id": productID,
		})
		return Draft{}, ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	price := strconv.FormatFloat(product.CurrentPrice, 'f', -1, 64)
	s.openLocked(DraftEditing, product.ID, product.Name, price, product.Category, product.Characteristics)
	logger.Debug("Opened product draft", map[string]interface{}{
		"mode":       string(DraftEditing),
		"product_id": product.ID,
	})
	return s.draftLocked(), nil
}

// openLocked resets the draft to a snapshot of the library. When persisted
// characteristics are given, every "<name>:" prefixed entry becomes a
// pre-selected option of the matching characteristic; bare legacy labels are
// left alone (they are not selectable through the taxonomy form).
func (s *taxonomyService) openLocked(mode DraftMode, productID, name, price, category string, persisted []string) {
	s.open = true
	s.mode = mode
	s.productID = productID
	s.name = name
	s.price = price
	s.category = category

	s.chars = make([]draftCharacteristic, 0, len(s.library))
	for _, entry := range s.library {
		dc := draftCharacteristic{
			name:    entry.Name,
			options: append([]string(nil), entry.Options...),
		}
		for _, encoded := range persisted {
			if sel, ok := model.ParseSelection(encoded); ok && sel.Name == entry.Name {
				dc.selected = append(dc.selected, sel)
			}
		}
		s.chars = append(s.chars, dc)
	}
}

func (s *taxonomyService) Draft() (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return Draft{}, false
	}
	return s.draftLocked(), true
}

func (s *taxonomyService) draftLocked() Draft {
	draft := Draft{
		Mode:            s.mode,
		ProductID:       s.productID,
		Name:            s.name,
		Price:           s.price,
		Category:        s.category,
		Characteristics: make([]DraftCharacteristic, 0, len(s.chars)),
	}
	for _, dc := range s.chars {
		draft.Characteristics = append(draft.Characteristics, DraftCharacteristic{
			Name:     dc.name,
			Options:  s.unionOptionsLocked(dc),
			Selected: append([]model.Selection(nil), dc.selected...),
		})
	}
	return draft
}

// unionOptionsLocked merges the library's options for a characteristic with
// the draft's own, library order first, deduplicated.
func (s *taxonomyService) unionOptionsLocked(dc draftCharacteristic) []string {
	var union []string
	seen := make(map[string]struct{})
	for _, entry := range s.library {
		if entry.Name != dc.name {
			continue
		}
		for _, opt := range entry.Options {
			if _, ok := seen[opt]; !ok {
				seen[opt] = struct{}{}
				union = append(union, opt)
			}
		}
	}
	for _, opt := range dc.options {
		if _, ok := seen[opt]; !ok {
			seen[opt] = struct{}{}
			union = append(union, opt)
		}
	}
	return union
}

func (s *taxonomyService) SetDetails(name, price, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrNoDraft
	}
	s.name = name
	s.price = price
	s.category = category
	return nil
}

func (s *taxonomyService) AddCharacteristic(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrNoDraft
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}
	for _, dc := range s.chars {
		if dc.name == trimmed {
			// Already on the draft: adding the same name twice is a no-op.
			return nil
		}
	}

	s.chars = append(s.chars, draftCharacteristic{name: trimmed})
	if !s.libraryHasLocked(trimmed) {
		s.library = append(s.library, model.Characteristic{Name: trimmed})
		logger.Info("Characteristic registered in library", map[string]interface{}{
			"characteristic": trimmed,
		})
	}
	return nil
}

func (s *taxonomyService) AddOption(characteristic, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrNoDraft
	}

	trimmed := strings.TrimSpace(option)
	if trimmed == "" {
		return nil
	}

	idx := s.draftCharIndexLocked(characteristic)
	if idx < 0 {
		return ErrUnknownCharacteristic
	}

	if !containsString(s.chars[idx].options, trimmed) {
		s.chars[idx].options = append(s.chars[idx].options, trimmed)
	}

	// The library entry deduplicates on its own: it may already carry the
	// option from an earlier product even when this draft does not.
	for i := range s.library {
		if s.library[i].Name == characteristic && !containsString(s.library[i].Options, trimmed) {
			s.library[i].Options = append(s.library[i].Options, trimmed)
			logger.Info("Option registered in library", map[string]interface{}{
				"characteristic": characteristic,
				"option":         trimmed,
			})
		}
	}
	return nil
}

func (s *taxonomyService) ToggleOption(characteristic, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrNoDraft
	}

	idx := s.draftCharIndexLocked(characteristic)
	if idx < 0 {
		return ErrUnknownCharacteristic
	}

	sel := model.Selection{Name: characteristic, Option: option}
	for i, existing := range s.chars[idx].selected {
		if existing == sel {
			s.chars[idx].selected = append(s.chars[idx].selected[:i], s.chars[idx].selected[i+1:]...)
			return nil
		}
	}
	s.chars[idx].selected = append(s.chars[idx].selected, sel)
	return nil
}

func (s *taxonomyService) Save() (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return model.Product{}, ErrNoDraft
	}
	if strings.TrimSpace(s.name) == "" || strings.TrimSpace(s.price) == "" || strings.TrimSpace(s.category) == "" {
		return model.Product{}, ErrDraftIncomplete
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(s.price), 64)
	if err != nil || math.IsInf(price, 0) || math.IsNaN(price) || price < 0 {
		logger.Warn("Rejecting draft save: invalid price", map[string]interface{}{
			"price": s.price,
		})
		return model.Product{}, ErrInvalidDraftPrice
	}

	var characteristics []string
	for _, dc := range s.chars {
		for _, sel := range dc.selected {
			characteristics = append(characteristics, sel.String())
		}
	}

	// The product form collects no brand, so saved products carry an empty
	// one. Known gap inherited from the original screen; kept until the
	// product owner decides otherwise.
	product := model.Product{
		ID:              s.productID,
		Name:            s.name,
		Brand:           "",
		Category:        s.category,
		CurrentPrice:    price,
		Characteristics: characteristics,
	}

	if s.mode == DraftEditing {
		if !s.store.Update(product) {
			logger.Warn("Cannot save draft: product disappeared", map[string]interface{}{
				"product_id": s.productID,
			})
			s.discardLocked()
			return model.Product{}, ErrProductNotFound
		}
	} else {
		product = s.store.Create(product)
	}

	logger.Info("Product saved", map[string]interface{}{
		"product_id":      product.ID,
		"mode":            string(s.mode),
		"characteristics": len(characteristics),
	})

	s.discardLocked()
	return product, nil
}

func (s *taxonomyService) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discardLocked()
}

func (s *taxonomyService) discardLocked() {
	s.open = false
	s.mode = ""
	s.productID = ""
	s.name = ""
	s.price = ""
	s.category = ""
	s.chars = nil
}

func (s *taxonomyService) draftCharIndexLocked(name string) int {
	for i, dc := range s.chars {
		if dc.name == name {
			return i
		}
	}
	return -1
}

func (s *taxonomyService) libraryHasLocked(name string) bool {
	for _, entry := range s.library {
		if entry.Name == name {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
