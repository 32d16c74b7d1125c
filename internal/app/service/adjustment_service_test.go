package service

import (
	"testing"

	"github.com/mfarias/listado-precios-backend/internal/app/model"
	"github.com/mfarias/listado-precios-backend/internal/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAdjustmentServiceTest() (AdjustmentService, *store.ProductStore) {
	productStore := store.New(model.SeedCatalog())
	return NewAdjustmentService(productStore), productStore
}

func TestProjectPrice(t *testing.T) {
	tests := []struct {
		name           string
		price          float64
		adjustmentType model.AdjustmentType
		value          string
		want           float64
	}{
		{
			name:           "Percentage increase",
			price:          85000,
			adjustmentType: model.AdjustmentPercentage,
			value:          "5",
			want:           89250,
		},
		{
			name:           "Percentage decrease",
			price:          85000,
			adjustmentType: model.AdjustmentPercentage,
			value:          "-10",
			want:           76500,
		},
		{
			name:           "Fixed decrease",
			price:          85000,
			adjustmentType: model.AdjustmentFixed,
			value:          "-500",
			want:           84500,
		},
		{
			name:           "Fixed increase",
			price:          8900,
			adjustmentType: model.AdjustmentFixed,
			value:          "100",
			want:           9000,
		},
		{
			name:           "Rounds to whole amount",
			price:          12500,
			adjustmentType: model.AdjustmentPercentage,
			value:          "0.01",
			want:           12501,
		},
		{
			name:           "Unparseable value is a no-op",
			price:          45000,
			adjustmentType: model.AdjustmentPercentage,
			value:          "not-a-number",
			want:           45000,
		},
		{
			name:           "Empty value is a no-op",
			price:          45000,
			adjustmentType: model.AdjustmentFixed,
			value:          "",
			want:           45000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, projectPrice(tt.price, tt.adjustmentType, tt.value))
		})
	}
}

func TestAdjustmentService_Affected(t *testing.T) {
	adjustmentService, _ := setupAdjustmentServiceTest()

	tests := []struct {
		name     string
		brand    string
		category string
		wantIDs  []string
	}{
		{
			name:     "All filters match everything",
			brand:    FilterAll,
			category: FilterAll,
			wantIDs:  []string{"1", "2", "3", "4", "5", "6"},
		},
		{
			name:     "Brand only",
			brand:    "Aluar",
			category: FilterAll,
			wantIDs:  []string{"1", "4"},
		},
		{
			name:     "Category only",
			brand:    FilterAll,
			category: "Membranas",
			wantIDs:  []string{"3", "6"},
		},
		{
			name:     "Brand and category intersect",
			brand:    "Aluar",
			category: "Puertas",
			wantIDs:  []string{"1", "4"},
		},
		{
			name:     "Disjoint filters match nothing",
			brand:    "Aluar",
			category: "Membranas",
			wantIDs:  []string{},
		},
		{
			name:     "Unknown brand matches nothing",
			brand:    "Desconocida",
			category: FilterAll,
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adjustmentService.SetBrand(tt.brand)
			adjustmentService.SetCategory(tt.category)

			affected := adjustmentService.Affected()
			gotIDs := make([]string, 0, len(affected))
			for _, p := range affected {
				gotIDs = append(gotIDs, p.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestAdjustmentService_ConfirmGuards(t *testing.T) {
	adjustmentService, _ := setupAdjustmentServiceTest()

	// No value yet
	err := adjustmentService.Confirm()
	assert.ErrorIs(t, err, ErrNoAdjustmentValue)
	assert.False(t, adjustmentService.State().Confirming)

	// Blank value
	adjustmentService.SetValue("   ")
	err = adjustmentService.Confirm()
	assert.ErrorIs(t, err, ErrNoAdjustmentValue)

	// Value set but nothing matches
	adjustmentService.SetValue("10")
	adjustmentService.SetBrand("Aluar")
	adjustmentService.SetCategory("Membranas")
	err = adjustmentService.Confirm()
	assert.ErrorIs(t, err, ErrNoAffectedProducts)
	assert.False(t, adjustmentService.State().Confirming)

	// Valid
	adjustmentService.SetCategory(FilterAll)
	require.NoError(t, adjustmentService.Confirm())
	assert.True(t, adjustmentService.State().Confirming)
}

func TestAdjustmentService_BackKeepsFiltersAndValue(t *testing.T) {
	adjustmentService, _ := setupAdjustmentServiceTest()

	adjustmentService.SetBrand("Modena")
	adjustmentService.SetValue("15")
	require.NoError(t, adjustmentService.Confirm())

	require.NoError(t, adjustmentService.Back())

	state := adjustmentService.State()
	assert.False(t, state.Confirming)
	assert.Equal(t, "Modena", state.Brand)
	assert.Equal(t, "15", state.Value)
}

func TestAdjustmentService_BackRequiresConfirmingPhase(t *testing.T) {
	adjustmentService, _ := setupAdjustmentServiceTest()

	assert.ErrorIs(t, adjustmentService.Back(), ErrNotConfirming)
}

func TestAdjustmentService_ApplyCommitsAndResets(t *testing.T) {
	adjustmentService, productStore := setupAdjustmentServiceTest()

	adjustmentService.SetBrand("Aluar")
	adjustmentService.SetType(model.AdjustmentPercentage)
	adjustmentService.SetValue("10")
	require.NoError(t, adjustmentService.Confirm())

	adjusted, err := adjustmentService.Apply()
	require.NoError(t, err)
	assert.Equal(t, 2, adjusted)

	// The two Aluar products were raised, everything else untouched
	wantPrices := map[string]float64{
		"1": 93500,
		"2": 45000,
		"3": 12500,
		"4": 137500,
		"5": 32000,
		"6": 8900,
	}
	for id, want := range wantPrices {
		product, ok := productStore.FindByID(id)
		require.True(t, ok)
		assert.Equal(t, want, product.CurrentPrice, "product %s", id)
	}

	// Dialog reset: filters back to all, value cleared, editing phase
	state := adjustmentService.State()
	assert.Equal(t, FilterAll, state.Brand)
	assert.Equal(t, FilterAll, state.Category)
	assert.Equal(t, "", state.Value)
	assert.False(t, state.Confirming)
}

func TestAdjustmentService_ApplyFixedAmount(t *testing.T) {
	adjustmentService, productStore := setupAdjustmentServiceTest()

	adjustmentService.SetCategory("Membranas")
	adjustmentService.SetType(model.AdjustmentFixed)
	adjustmentService.SetValue("-500")
	require.NoError(t, adjustmentService.Confirm())

	adjusted, err := adjustmentService.Apply()
	require.NoError(t, err)
	assert.Equal(t, 2, adjusted)

	product, _ := productStore.FindByID("3")
	assert.Equal(t, float64(12000), product.CurrentPrice)
	product, _ = productStore.FindByID("6")
	assert.Equal(t, float64(8400), product.CurrentPrice)
}

func TestAdjustmentService_ApplyAbortsOnInvalidValue(t *testing.T) {
	adjustmentService, productStore := setupAdjustmentServiceTest()

	adjustmentService.SetValue("10")
	require.NoError(t, adjustmentService.Confirm())

	// The value turns invalid before commit: nothing may change
	adjustmentService.SetValue("abc")
	adjusted, err := adjustmentService.Apply()
	assert.ErrorIs(t, err, ErrInvalidAdjustment)
	assert.Zero(t, adjusted)

	for _, p := range model.SeedCatalog() {
		stored, ok := productStore.FindByID(p.ID)
		require.True(t, ok)
		assert.Equal(t, p.CurrentPrice, stored.CurrentPrice, "product %s", p.ID)
	}

	// Still awaiting confirmation
	assert.True(t, adjustmentService.State().Confirming)
}

func TestAdjustmentService_CancelResetsWithoutTouchingPrices(t *testing.T) {
	adjustmentService, productStore := setupAdjustmentServiceTest()

	adjustmentService.SetBrand("Sika")
	adjustmentService.SetValue("50")
	require.NoError(t, adjustmentService.Confirm())

	adjustmentService.Cancel()

	state := adjustmentService.State()
	assert.Equal(t, FilterAll, state.Brand)
	assert.Equal(t, FilterAll, state.Category)
	assert.Equal(t, "", state.Value)
	assert.False(t, state.Confirming)

	product, _ := productStore.FindByID("3")
	assert.Equal(t, float64(12500), product.CurrentPrice)
}

func TestAdjustmentService_SetTypeIgnoresUnknownValues(t *testing.T) {
	adjustmentService, _ := setupAdjustmentServiceTest()

	adjustmentService.SetType(model.AdjustmentFixed)
	adjustmentService.SetType(model.AdjustmentType("discount"))

	assert.Equal(t, model.AdjustmentFixed, adjustmentService.State().Type)
}

func TestAdjustmentService_ProjectPriceTracksState(t *testing.T) {
	adjustmentService, _ := setupAdjustmentServiceTest()

	adjustmentService.SetType(model.AdjustmentPercentage)
	adjustmentService.SetValue("5")
	assert.Equal(t, float64(89250), adjustmentService.ProjectPrice(85000))

	adjustmentService.SetType(model.AdjustmentFixed)
	adjustmentService.SetValue("-500")
	assert.Equal(t, float64(84500), adjustmentService.ProjectPrice(85000))
}
