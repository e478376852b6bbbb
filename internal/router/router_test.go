package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kiler-backend/internal/config"
	"kiler-backend/internal/router"
	"kiler-backend/internal/storage/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	cfg := &config.Config{
		HTTPPort:      "8080",
		StorageDriver: "memory",
		CORSOrigins:   "http://localhost:5173",
	}
	return router.New(memory.Open(), cfg)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var l []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&l))
	return l
}

func createItem(t *testing.T, app *fiber.App, body map[string]any) map[string]any {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/items", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeMap(t, resp)
}

func TestCreateItemThenUseAllStock(t *testing.T) {
	app := newTestApp()

	item := createItem(t, app, map[string]any{
		"name": "Rice", "category": "snacks",
		"current_stock": 5, "min_stock": 2, "unit": "bags",
	})
	assert.NotEmpty(t, item["id"])
	assert.Equal(t, []any{}, item["barcodes"])
	assert.Equal(t, "Snacks", item["category_name"])

	resp := doJSON(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"item_id": item["id"], "type": "usage", "quantity": 10, "notes": "used all",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	txn := decodeMap(t, resp)
	assert.Equal(t, "usage", txn["type"])
	assert.Equal(t, float64(10), txn["quantity"])

	// Stok eksiye inmez, sıfırda durur
	resp = doJSON(t, app, http.MethodGet, "/api/items", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := decodeList(t, resp)
	require.Len(t, items, 1)
	assert.Equal(t, float64(0), items[0]["current_stock"])
}

func TestCreateItemValidation(t *testing.T) {
	app := newTestApp()

	// Eksik alan
	resp := doJSON(t, app, http.MethodPost, "/api/items", map[string]any{
		"name": "Rice", "category": "snacks",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, decodeMap(t, resp)["error"])

	// Bilinmeyen kategori
	resp = doJSON(t, app, http.MethodPost, "/api/items", map[string]any{
		"name": "Rice", "category": "yok-boyle",
		"current_stock": 5, "min_stock": 2, "unit": "bags",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Sayıya çevrilemeyen stok
	resp = doJSON(t, app, http.MethodPost, "/api/items", map[string]any{
		"name": "Rice", "category": "snacks",
		"current_stock": "bol", "min_stock": 2, "unit": "bags",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// String sayı kabul edilir
	item := createItem(t, app, map[string]any{
		"name": "Rice", "category": "snacks",
		"current_stock": "5", "min_stock": 2, "unit": "bags",
	})
	assert.Equal(t, float64(5), item["current_stock"])
}

func TestCreateItemNormalizesBarcodes(t *testing.T) {
	app := newTestApp()

	item := createItem(t, app, map[string]any{
		"name": "Makarna", "category": "snacks",
		"current_stock": 3, "min_stock": 1, "unit": "paket",
		"barcodes": []string{"A", "A", " A "},
	})
	assert.Equal(t, []any{"A"}, item["barcodes"])

	// Tek string de kabul edilir
	item = createItem(t, app, map[string]any{
		"name": "Salça", "category": "canned-goods",
		"current_stock": 3, "min_stock": 1, "unit": "kavanoz",
		"barcodes": "B",
	})
	assert.Equal(t, []any{"B"}, item["barcodes"])
}

func TestBarcodeLookup(t *testing.T) {
	app := newTestApp()

	item := createItem(t, app, map[string]any{
		"name": "Süt", "category": "beverages",
		"current_stock": 6, "min_stock": 2, "unit": "kutu",
		"barcodes": []string{"A", "B"},
	})

	resp := doJSON(t, app, http.MethodGet, "/api/items/barcode/B", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decodeMap(t, resp)
	assert.Equal(t, item["id"], got["id"])

	resp = doJSON(t, app, http.MethodGet, "/api/items/barcode/YOK", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAddBarcodeConflicts(t *testing.T) {
	app := newTestApp()

	first := createItem(t, app, map[string]any{
		"name": "Çamaşır Suyu", "category": "cleaning-supplies",
		"current_stock": 2, "min_stock": 1, "unit": "şişe",
		"barcodes": "X",
	})
	second := createItem(t, app, map[string]any{
		"name": "Bulaşık Deterjanı", "category": "cleaning-supplies",
		"current_stock": 2, "min_stock": 1, "unit": "şişe",
	})

	// Başka ürüne kayıtlı kod: çakışan ürünün adı mesajda geçmeli
	resp := doJSON(t, app, http.MethodPost, "/api/items/"+second["id"].(string)+"/barcodes",
		map[string]any{"barcode": "X"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp)["error"], "Çamaşır Suyu")

	// Aynı ürüne ikinci kez
	resp = doJSON(t, app, http.MethodPost, "/api/items/"+first["id"].(string)+"/barcodes",
		map[string]any{"barcode": "X"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp)["error"], "bu üründe")

	// Yeni kod sorunsuz eklenir
	resp = doJSON(t, app, http.MethodPost, "/api/items/"+second["id"].(string)+"/barcodes",
		map[string]any{"barcode": "Y"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"Y"}, decodeMap(t, resp)["barcodes"])

	// Olmayan ürün
	resp = doJSON(t, app, http.MethodPost, "/api/items/yok/barcodes",
		map[string]any{"barcode": "Z"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Boş barkod
	resp = doJSON(t, app, http.MethodPost, "/api/items/"+second["id"].(string)+"/barcodes",
		map[string]any{"barcode": "  "})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestItemWritesEnforceBarcodeUniqueness(t *testing.T) {
	app := newTestApp()

	owner := createItem(t, app, map[string]any{
		"name": "Zeytinyağı", "category": "canned-goods",
		"current_stock": 2, "min_stock": 1, "unit": "şişe",
		"barcodes": "X",
	})

	// Yeni ürün başka ürünün koduyla oluşturulamaz
	resp := doJSON(t, app, http.MethodPost, "/api/items", map[string]any{
		"name": "Ayçiçek Yağı", "category": "canned-goods",
		"current_stock": 2, "min_stock": 1, "unit": "şişe",
		"barcodes": []string{"X"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp)["error"], "Zeytinyağı")

	other := createItem(t, app, map[string]any{
		"name": "Sirke", "category": "canned-goods",
		"current_stock": 2, "min_stock": 1, "unit": "şişe",
		"barcodes": "Y",
	})

	// Güncelleme de başka ürünün kodunu alamaz
	resp = doJSON(t, app, http.MethodPut, "/api/items/"+other["id"].(string), map[string]any{
		"barcodes": []string{"Y", "X"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp)["error"], "Zeytinyağı")

	// Ürünün kendi kodlarını yeniden göndermesi çakışma değildir
	resp = doJSON(t, app, http.MethodPut, "/api/items/"+owner["id"].(string), map[string]any{
		"barcodes": []string{"X", "Z"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"X", "Z"}, decodeMap(t, resp)["barcodes"])
}

func TestRemoveBarcode(t *testing.T) {
	app := newTestApp()

	item := createItem(t, app, map[string]any{
		"name": "Sabun", "category": "personal-care",
		"current_stock": 4, "min_stock": 1, "unit": "adet",
		"barcodes": []string{"A", "B"},
	})
	id := item["id"].(string)

	resp := doJSON(t, app, http.MethodDelete, "/api/items/"+id+"/barcodes/A", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decodeMap(t, resp)["message"])

	// Aynı kodu ikinci kez silmek 404
	resp = doJSON(t, app, http.MethodDelete, "/api/items/"+id+"/barcodes/A", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/items/yok/barcodes/B", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCategoriesMap(t *testing.T) {
	app := newTestApp()

	item := createItem(t, app, map[string]any{
		"name": "Cips", "category": "snacks",
		"current_stock": 3, "min_stock": 1, "unit": "paket",
	})

	resp := doJSON(t, app, http.MethodGet, "/api/categories", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	categories := decodeMap(t, resp)
	assert.Len(t, categories, 8)

	snacks, ok := categories["snacks"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Snacks", snacks["name"])
	assert.Equal(t, []any{item["id"]}, snacks["items"])

	other := categories["other"].(map[string]any)
	assert.Equal(t, []any{}, other["items"])
}

func TestTransactionValidation(t *testing.T) {
	app := newTestApp()

	item := createItem(t, app, map[string]any{
		"name": "Kahve", "category": "beverages",
		"current_stock": 5, "min_stock": 1, "unit": "paket",
	})
	id := item["id"].(string)

	// Eksik alanlar
	resp := doJSON(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"item_id": id, "type": "usage",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Olmayan ürün
	resp = doJSON(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"item_id": "yok", "type": "usage", "quantity": 1, "notes": "",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Geçersiz tip
	resp = doJSON(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"item_id": id, "type": "transfer", "quantity": 1, "notes": "",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Pozitif olmayan miktar
	resp = doJSON(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"item_id": id, "type": "usage", "quantity": 0, "notes": "",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListTransactionsNewestFirst(t *testing.T) {
	app := newTestApp()

	item := createItem(t, app, map[string]any{
		"name": "Çay", "category": "beverages",
		"current_stock": 5, "min_stock": 1, "unit": "paket",
	})
	id := item["id"].(string)

	resp := doJSON(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"item_id": id, "type": "restock", "quantity": 3, "notes": "ilk",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	time.Sleep(5 * time.Millisecond)
	resp = doJSON(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"item_id": id, "type": "usage", "quantity": 1, "notes": "son",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/transactions", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	txns := decodeList(t, resp)
	require.Len(t, txns, 2)
	assert.Equal(t, "son", txns[0]["notes"])
	assert.Equal(t, "Çay", txns[0]["item_name"])
}

func TestUpdateAndDeleteItem(t *testing.T) {
	app := newTestApp()

	item := createItem(t, app, map[string]any{
		"name": "Şeker", "category": "snacks",
		"current_stock": 5, "min_stock": 1, "unit": "kg",
	})
	id := item["id"].(string)

	resp := doJSON(t, app, http.MethodPut, "/api/items/"+id, map[string]any{
		"name": "Toz Şeker", "current_stock": "7", "location": "Raf B",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decodeMap(t, resp)
	assert.Equal(t, "Toz Şeker", updated["name"])
	assert.Equal(t, float64(7), updated["current_stock"])
	assert.Equal(t, "Raf B", updated["location"])

	resp = doJSON(t, app, http.MethodPut, "/api/items/yok", map[string]any{"name": "X"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Silme hareket kayıtlarını da götürür
	resp = doJSON(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"item_id": id, "type": "usage", "quantity": 1, "notes": "",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/items/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/transactions", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeList(t, resp))

	resp = doJSON(t, app, http.MethodDelete, "/api/items/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLowStockBoundary(t *testing.T) {
	app := newTestApp()

	boundary := createItem(t, app, map[string]any{
		"name": "Un", "category": "snacks",
		"current_stock": 2, "min_stock": 2, "unit": "kg",
	})
	createItem(t, app, map[string]any{
		"name": "Tuz", "category": "snacks",
		"current_stock": 5, "min_stock": 2, "unit": "kg",
	})

	resp := doJSON(t, app, http.MethodGet, "/api/low-stock", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	low := decodeList(t, resp)
	require.Len(t, low, 1)
	assert.Equal(t, boundary["id"], low[0]["id"])
}

func createProject(t *testing.T, app *fiber.App, body map[string]any) map[string]any {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/projects", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeMap(t, resp)
}

func TestProjectLifecycle(t *testing.T) {
	app := newTestApp()

	// Eksik alanlar
	resp := doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{"name": "Turşu"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Bozuk tarih
	resp = doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{
		"name": "Turşu", "type": "ferment", "start_date": "31.08.2026",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	p := createProject(t, app, map[string]any{
		"name": "Turşu", "type": "ferment", "start_date": "2026-08-01",
		"location": "Kiler rafı", "notes": "acı biberli",
	})
	assert.Equal(t, "active", p["status"])
	id := p["id"].(string)

	resp = doJSON(t, app, http.MethodGet, "/api/projects/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Geçersiz durum
	resp = doJSON(t, app, http.MethodPut, "/api/projects/"+id, map[string]any{"status": "paused"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/projects/"+id, map[string]any{
		"status": "completed", "ready_date": "2026-08-20",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decodeMap(t, resp)
	assert.Equal(t, "completed", updated["status"])
	assert.Equal(t, "2026-08-20", updated["ready_date"])

	// Boş string tarihi temizler
	resp = doJSON(t, app, http.MethodPut, "/api/projects/"+id, map[string]any{"ready_date": ""})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_, hasReady := decodeMap(t, resp)["ready_date"]
	assert.False(t, hasReady)

	resp = doJSON(t, app, http.MethodDelete, "/api/projects/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/projects/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProjectExpiryFilters(t *testing.T) {
	app := newTestApp()
	date := func(n int) string { return time.Now().AddDate(0, 0, n).Format("2006-01-02") }

	soon := createProject(t, app, map[string]any{
		"name": "Yakında", "type": "ferment",
		"start_date": date(-10), "expiry_date": date(2),
	})
	createProject(t, app, map[string]any{
		"name": "Uzak", "type": "ferment",
		"start_date": date(-10), "expiry_date": date(30),
	})
	past := createProject(t, app, map[string]any{
		"name": "Geçmiş", "type": "ferment",
		"start_date": date(-30), "expiry_date": date(-1),
	})

	resp := doJSON(t, app, http.MethodGet, "/api/projects/expiring?days=3", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	expiring := decodeList(t, resp)
	require.Len(t, expiring, 1)
	assert.Equal(t, soon["id"], expiring[0]["id"])

	// Varsayılan pencere 7 gün
	resp = doJSON(t, app, http.MethodGet, "/api/projects/expiring", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, decodeList(t, resp), 1)

	resp = doJSON(t, app, http.MethodGet, "/api/projects/expiring?days=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeList(t, resp))

	// Tamamlanan proje tarihten bağımsız listelenmez
	resp = doJSON(t, app, http.MethodPut, "/api/projects/"+soon["id"].(string),
		map[string]any{"status": "completed"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodGet, "/api/projects/expiring?days=3", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeList(t, resp))

	resp = doJSON(t, app, http.MethodGet, "/api/projects/expired", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	expired := decodeList(t, resp)
	require.Len(t, expired, 1)
	assert.Equal(t, past["id"], expired[0]["id"])
}

func TestProjectExpiringTodayBoundary(t *testing.T) {
	app := newTestApp()
	date := func(n int) string { return time.Now().AddDate(0, 0, n).Format("2006-01-02") }

	// Bugün biten proje: henüz expired değil, expiring penceresinde
	p := createProject(t, app, map[string]any{
		"name": "Bugün Biten", "type": "ferment",
		"start_date": date(-5), "expiry_date": date(0),
	})

	resp := doJSON(t, app, http.MethodGet, "/api/projects/expired", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeList(t, resp))

	resp = doJSON(t, app, http.MethodGet, "/api/projects/expiring?days=7", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	expiring := decodeList(t, resp)
	require.Len(t, expiring, 1)
	assert.Equal(t, p["id"], expiring[0]["id"])
}
