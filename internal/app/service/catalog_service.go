package service

import (
	"errors"
	"sort"

	"github.com/mfarias/listado-precios-backend/internal/app/model"
	"github.com/mfarias/listado-precios-backend/internal/app/store"
	"github.com/mfarias/listado-precios-backend/pkg/logger"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService exposes the read side of the price listing plus product
// deletion. Brand and category lists are recomputed from the store on every
// call; nothing is cached across mutations.
type CatalogService interface {
	ListProducts(query string) []model.Product
	GetProductByID(id string) (*model.Product, error)
	Brands() []string
	Categories() []string
	DeleteProduct(id string) error
}

type catalogService struct {
	store *store.ProductStore
}

func NewCatalogService(productStore *store.ProductStore) CatalogService {
	return &catalogService{store: productStore}
}

func (s *catalogService) ListProducts(query string) []model.Product {
	logger.Debug("Listing products", map[string]interface{}{
		"query": query,
	})

	products := FilterProducts(s.store.All(), query)

	logger.Debug("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products
}

func (s *catalogService) GetProductByID(id string) (*model.Product, error) {
	product, ok := s.store.FindByID(id)
	if !ok {
		logger.Warn("Product not found", map[string]interface{}{
			"product_id": id,
		})
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Brands returns the distinct brands in the store, sorted.
func (s *catalogService) Brands() []string {
	return distinctSorted(s.store.All(), func(p model.Product) string { return p.Brand })
}

// Categories returns the distinct categories in the store, sorted.
func (s *catalogService) Categories() []string {
	return distinctSorted(s.store.All(), func(p model.Product) string { return p.Category })
}

func (s *catalogService) DeleteProduct(id string) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if !s.store.Delete(id) {
		logger.Warn("Cannot delete: product not found", map[string]interface{}{
			"product_id": id,
		})
		return ErrProductNotFound
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func distinctSorted(products []model.Product, key func(model.Product) string) []string {
	seen := make(map[string]struct{}, len(products))
	values := make([]string, 0, len(products))
	for _, p := range products {
		v := key(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
