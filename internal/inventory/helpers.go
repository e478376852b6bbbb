package inventory

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"kiler-backend/internal/models"
	"kiler-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// normalizeBarcodes: JSON'dan gelen barkod alanını normalize eder.
// Tek string, string listesi veya hiç gelmeyebilir; başka her şekil boş set
// sayılır. Boşluklar kırpılır, boşlar atılır, tekrarlar tekilleştirilir.
func normalizeBarcodes(v any) []string {
	var raw []string
	switch val := v.(type) {
	case string:
		raw = []string{val}
	case []string:
		raw = val
	case []any:
		for _, e := range val {
			if s, ok := e.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, bc := range raw {
		bc = strings.TrimSpace(bc)
		if bc == "" {
			continue
		}
		if _, ok := seen[bc]; ok {
			continue
		}
		seen[bc] = struct{}{}
		out = append(out, bc)
	}
	sort.Strings(out)
	return out
}

// coerceInt: stok/miktar alanları sayı veya sayı içeren string gelebilir
func coerceInt(v any) (int, error) {
	switch val := v.(type) {
	case float64:
		return int(val), nil
	case int:
		return val, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, err
		}
		return n, nil
	}
	return 0, errors.New("sayıya çevrilemedi")
}

// checkBarcodeAvailable: kod başka bir üründe kayıtlıysa çakışan ürünün
// adıyla 400 döner. selfID'ye ait eşleşme çakışma sayılmaz (güncelleme yolu).
func checkBarcodeAvailable(store storage.Store, code, selfID string) error {
	existing, err := store.GetItemByBarcode(code)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Barkod kontrolü yapılamadı")
	}
	if existing.ID == selfID {
		return nil
	}
	return fiber.NewError(fiber.StatusBadRequest, "Barkod zaten başka bir üründe kayıtlı: "+existing.Name)
}

type ItemResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Barcodes     []string `json:"barcodes"`
	Category     string   `json:"category"`
	CategoryName string   `json:"category_name,omitempty"`
	CurrentStock int      `json:"current_stock"`
	MinStock     int      `json:"min_stock"`
	Unit         string   `json:"unit"`
	Location     string   `json:"location"`
	LastUpdated  string   `json:"last_updated"`
}

func newItemResponse(item *models.Item) ItemResponse {
	barcodes := make([]string, 0, len(item.Barcodes))
	barcodes = append(barcodes, item.Barcodes...)
	return ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Barcodes:     barcodes,
		Category:     item.CategoryID,
		CategoryName: item.CategoryName,
		CurrentStock: item.CurrentStock,
		MinStock:     item.MinStock,
		Unit:         item.Unit,
		Location:     item.Location,
		LastUpdated:  item.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
