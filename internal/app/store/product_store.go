// Package store holds the authoritative in-memory product collection. It is
// the only owner of committed data; every derived view (search results,
// affected sets, brand/category lists) is recomputed from it on each read.
// Nothing is persisted: the catalog starts from the seed data and is gone
// when the process exits.
package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/mfarias/listado-precios-backend/internal/app/model"
)

// ProductStore is a mutex-guarded, insertion-ordered product collection.
// Reads return copies so callers can never alias committed state.
type ProductStore struct {
	mu       sync.RWMutex
	products []model.Product
}

// New creates a store populated with the given seed products.
func New(seed []model.Product) *ProductStore {
	s := &ProductStore{products: make([]model.Product, 0, len(seed))}
	for _, p := range seed {
		s.products = append(s.products, p.Clone())
	}
	return s
}

// All returns every product in insertion order.
func (s *ProductStore) All() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	return out
}

// FindByID returns the product with the given id.
func (s *ProductStore) FindByID(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return model.Product{}, false
}

// Create appends a product. An empty id is replaced with a freshly minted
// UUID; the stored product is returned.
func (s *ProductStore) Create(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.products = append(s.products, p.Clone())
	return p
}

// Update replaces the product with p.ID in place, preserving its position.
// It reports whether a product with that id existed.
func (s *ProductStore) Update(p model.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p.Clone()
			return true
		}
	}
	return false
}

// UpdatePrice sets the price of a single product.
func (s *ProductStore) UpdatePrice(id string, price float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].CurrentPrice = price
			return true
		}
	}
	return false
}

// UpdatePrices applies every entry of the id→price map in one critical
// section, so a bulk adjustment commit is atomic: concurrent readers observe
// either no new price or all of them. Unknown ids are ignored.
func (s *ProductStore) UpdatePrices(prices map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if price, ok := prices[s.products[i].ID]; ok {
			s.products[i].CurrentPrice = price
		}
	}
}

// Delete removes the product with the given id. Deleting an unknown id is a
// no-op and reports false.
func (s *ProductStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of products.
func (s *ProductStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
