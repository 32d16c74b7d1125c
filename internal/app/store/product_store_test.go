package store

import (
	"testing"

	"github.com/mfarias/listado-precios-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStore_SeededInOrder(t *testing.T) {
	productStore := New(model.SeedCatalog())

	products := productStore.All()
	require.Len(t, products, 6)
	for i, p := range products {
		assert.Equal(t, model.SeedCatalog()[i].ID, p.ID)
	}
}

func TestProductStore_FindByID(t *testing.T) {
	productStore := New(model.SeedCatalog())

	product, ok := productStore.FindByID("3")
	require.True(t, ok)
	assert.Equal(t, "Membrana Asfáltica Premium", product.Name)

	_, ok = productStore.FindByID("9999")
	assert.False(t, ok)
}

func TestProductStore_CreateMintsID(t *testing.T) {
	productStore := New(nil)

	created := productStore.Create(model.Product{Name: "Portón"})
	assert.NotEmpty(t, created.ID)

	other := productStore.Create(model.Product{Name: "Reja"})
	assert.NotEqual(t, created.ID, other.ID)

	assert.Equal(t, 2, productStore.Len())
}

func TestProductStore_CreateKeepsGivenID(t *testing.T) {
	productStore := New(nil)

	created := productStore.Create(model.Product{ID: "custom", Name: "Portón"})
	assert.Equal(t, "custom", created.ID)

	stored, ok := productStore.FindByID("custom")
	require.True(t, ok)
	assert.Equal(t, "Portón", stored.Name)
}

func TestProductStore_UpdatePreservesPosition(t *testing.T) {
	productStore := New(model.SeedCatalog())

	ok := productStore.Update(model.Product{
		ID:           "2",
		Name:         "Ventana Corrediza Reforzada",
		Brand:        "Modena",
		Category:     "Ventanas",
		CurrentPrice: 52000,
	})
	require.True(t, ok)

	products := productStore.All()
	assert.Equal(t, "Ventana Corrediza Reforzada", products[1].Name)
	assert.Equal(t, float64(52000), products[1].CurrentPrice)
}

func TestProductStore_UpdateUnknownID(t *testing.T) {
	productStore := New(model.SeedCatalog())

	assert.False(t, productStore.Update(model.Product{ID: "9999"}))
	assert.Equal(t, 6, productStore.Len())
}

func TestProductStore_UpdatePrices(t *testing.T) {
	productStore := New(model.SeedCatalog())

	productStore.UpdatePrices(map[string]float64{
		"1":    93500,
		"4":    137500,
		"9999": 1, // unknown ids are ignored
	})

	product, _ := productStore.FindByID("1")
	assert.Equal(t, float64(93500), product.CurrentPrice)
	product, _ = productStore.FindByID("4")
	assert.Equal(t, float64(137500), product.CurrentPrice)
	product, _ = productStore.FindByID("2")
	assert.Equal(t, float64(45000), product.CurrentPrice)
	assert.Equal(t, 6, productStore.Len())
}

func TestProductStore_Delete(t *testing.T) {
	productStore := New(model.SeedCatalog())

	require.True(t, productStore.Delete("3"))
	assert.Equal(t, 5, productStore.Len())
	_, ok := productStore.FindByID("3")
	assert.False(t, ok)

	// Deleting again is a no-op
	assert.False(t, productStore.Delete("3"))
	assert.Equal(t, 5, productStore.Len())
}

func TestProductStore_ReadsReturnCopies(t *testing.T) {
	productStore := New(model.SeedCatalog())

	products := productStore.All()
	products[0].Name = "mutated"
	products[0].Characteristics[0] = "mutated"

	stored, _ := productStore.FindByID("1")
	assert.Equal(t, "Puerta Principal Modelo A", stored.Name)
	assert.Equal(t, "Aluminio", stored.Characteristics[0])

	// The same holds for FindByID results
	stored.Characteristics[0] = "mutated"
	again, _ := productStore.FindByID("1")
	assert.Equal(t, "Aluminio", again.Characteristics[0])
}

func TestProductStore_SeedIsNotAliased(t *testing.T) {
	seed := model.SeedCatalog()
	productStore := New(seed)

	seed[0].Characteristics[0] = "mutated"

	stored, _ := productStore.FindByID("1")
	assert.Equal(t, "Aluminio", stored.Characteristics[0])
}
