package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mfarias/listado-precios-backend/config"
	"github.com/mfarias/listado-precios-backend/internal/app/controller"
	"github.com/mfarias/listado-precios-backend/internal/app/model"
	"github.com/mfarias/listado-precios-backend/internal/app/service"
	"github.com/mfarias/listado-precios-backend/internal/app/store"
	"github.com/mfarias/listado-precios-backend/internal/router"
	"github.com/mfarias/listado-precios-backend/pkg/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Router *gin.Engine
	Store  *store.ProductStore
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:        "8080",
			GinMode:     gin.TestMode,
			Environment: "test",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Currency: config.CurrencyConfig{
			Locale: "es-AR",
		},
	}

	productStore := store.New(model.SeedCatalog())
	formatter := currency.NewFormatter(cfg.Currency.Locale)

	catalogService := service.NewCatalogService(productStore)
	exportService := service.NewExportService(productStore, formatter)
	editorService := service.NewPriceEditorService(productStore)
	adjustmentService := service.NewAdjustmentService(productStore)
	taxonomyService := service.NewTaxonomyService(productStore)

	catalogController := controller.NewCatalogController(catalogService, exportService, formatter)
	priceEditorController := controller.NewPriceEditorController(editorService)
	adjustmentController := controller.NewAdjustmentController(adjustmentService, formatter)
	taxonomyController := controller.NewTaxonomyController(taxonomyService)

	engine := router.NewRouter(
		catalogController,
		priceEditorController,
		adjustmentController,
		taxonomyController,
		cfg,
	).Setup()

	return &TestServer{Router: engine, Store: productStore}
}

func (ts *TestServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(jsonBody)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	}
	return w, response
}

func TestCompleteListingJourney(t *testing.T) {
	ts := setupIntegrationTest(t)

	// 1. Browse the seeded listing
	t.Log("Step 1: List products")
	w, response := ts.do(t, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(6), response["count"])

	// 2. Search with a diacritic-free, uppercased query
	t.Log("Step 2: Search for membranas")
	w, response = ts.do(t, http.MethodGet, "/api/v1/products?q=MEMBRANA", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := response["products"].([]interface{})
	require.Len(t, products, 2)
	assert.Equal(t, "3", products[0].(map[string]interface{})["id"])
	assert.Equal(t, "6", products[1].(map[string]interface{})["id"])

	// 3. Edit one price inline
	t.Log("Step 3: Inline price edit")
	w, response = ts.do(t, http.MethodPost, "/api/v1/price-editor/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	editor := response["editor"].(map[string]interface{})
	assert.Equal(t, "45000", editor["temp_value"])

	w, _ = ts.do(t, http.MethodPut, "/api/v1/price-editor", map[string]string{"value": "47500"})
	require.Equal(t, http.StatusOK, w.Code)

	w, response = ts.do(t, http.MethodPost, "/api/v1/price-editor/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, response["committed"])

	product, ok := ts.Store.FindByID("2")
	require.True(t, ok)
	assert.Equal(t, float64(47500), product.CurrentPrice)

	// 4. Bulk adjustment over one brand
	t.Log("Step 4: Bulk price adjustment")
	w, response = ts.do(t, http.MethodPut, "/api/v1/adjustments", map[string]string{
		"brand": "Aluar",
		"type":  "percentage",
		"value": "10",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), response["count"])

	w, _ = ts.do(t, http.MethodPost, "/api/v1/adjustments/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, response = ts.do(t, http.MethodPost, "/api/v1/adjustments/apply", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), response["adjusted"])

	product, _ = ts.Store.FindByID("1")
	assert.Equal(t, float64(93500), product.CurrentPrice)
	product, _ = ts.Store.FindByID("4")
	assert.Equal(t, float64(137500), product.CurrentPrice)

	// Filters are reset after the commit
	state := response["adjustment"].(map[string]interface{})
	assert.Equal(t, "all", state["brand"])
	assert.Equal(t, "all", state["category"])
	assert.Equal(t, "", state["value"])

	// 5. Create a product through the draft flow
	t.Log("Step 5: Create product with characteristics")
	w, _ = ts.do(t, http.MethodPost, "/api/v1/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = ts.do(t, http.MethodPut, "/api/v1/drafts", map[string]string{
		"name":     "Portón Corredizo",
		"price":    "150000",
		"category": "Portones",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/drafts/characteristics", map[string]string{"name": "Color"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/api/v1/drafts/characteristics/Color/options", map[string]string{"option": "Rojo"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/api/v1/drafts/characteristics/Color/toggle", map[string]string{"option": "Rojo"})
	require.Equal(t, http.StatusOK, w.Code)

	w, response = ts.do(t, http.MethodPost, "/api/v1/drafts/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	saved := response["product"].(map[string]interface{})
	newID := saved["id"].(string)
	assert.NotEmpty(t, newID)
	assert.Equal(t, 7, ts.Store.Len())

	characteristics := saved["characteristics"].([]interface{})
	require.Len(t, characteristics, 1)
	assert.Equal(t, "Color:Rojo", characteristics[0])

	// 6. Re-open it for editing: selection round-trips
	t.Log("Step 6: Reopen saved product")
	w, response = ts.do(t, http.MethodPost, "/api/v1/products/"+newID+"/edit", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	draft := response["draft"].(map[string]interface{})
	assert.Equal(t, "editing", draft["mode"])
	draftChars := draft["characteristics"].([]interface{})
	require.Len(t, draftChars, 1)
	selected := draftChars[0].(map[string]interface{})["selected"].([]interface{})
	require.Len(t, selected, 1)
	assert.Equal(t, "Color", selected[0].(map[string]interface{})["name"])
	assert.Equal(t, "Rojo", selected[0].(map[string]interface{})["option"])

	w, _ = ts.do(t, http.MethodDelete, "/api/v1/drafts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 7. The library survives the product's deletion
	t.Log("Step 7: Delete product, library keeps the characteristic")
	w, _ = ts.do(t, http.MethodDelete, "/api/v1/products/"+newID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 6, ts.Store.Len())

	w, response = ts.do(t, http.MethodGet, "/api/v1/characteristics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), response["count"])

	// 8. Export the final listing
	t.Log("Step 8: Export listing")
	w, _ = ts.do(t, http.MethodGet, "/api/v1/products/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupIntegrationTest(t)

	w, response := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", response["status"])
}
