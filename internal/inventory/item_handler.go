package inventory

import (
	"errors"

	"kiler-backend/internal/models"
	"kiler-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

type CreateItemRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	CurrentStock any     `json:"current_stock"`
	MinStock     any     `json:"min_stock"`
	Unit         *string `json:"unit"`
	Location     string  `json:"location"` // Opsiyonel
	Barcodes     any     `json:"barcodes"` // Opsiyonel: string veya string listesi
}

type UpdateItemRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	CurrentStock any     `json:"current_stock"`
	MinStock     any     `json:"min_stock"`
	Unit         *string `json:"unit"`
	Location     *string `json:"location"`
	Barcodes     any     `json:"barcodes"`
}

// GET /api/items
func ListItemsHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := store.ListItems()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ItemResponse, 0, len(items))
		for i := range items {
			res = append(res, newItemResponse(&items[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/items
func CreateItemHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name == nil || body.Category == nil || body.CurrentStock == nil ||
			body.MinStock == nil || body.Unit == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Eksik zorunlu alanlar")
		}

		if _, err := store.GetCategory(*body.Category); err != nil {
			if errors.Is(err, storage.ErrCategoryNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kategori")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori kontrolü yapılamadı")
		}

		currentStock, err := coerceInt(body.CurrentStock)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz stok değeri")
		}
		minStock, err := coerceInt(body.MinStock)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz minimum stok değeri")
		}

		barcodes := normalizeBarcodes(body.Barcodes)
		for _, bc := range barcodes {
			if err := checkBarcodeAvailable(store, bc, ""); err != nil {
				return err
			}
		}

		item := models.Item{
			Name:         *body.Name,
			Barcodes:     pq.StringArray(barcodes),
			CategoryID:   *body.Category,
			CurrentStock: currentStock,
			MinStock:     minStock,
			Unit:         *body.Unit,
			Location:     body.Location,
		}
		if err := store.CreateItem(&item); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		created, err := store.GetItem(item.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün okunamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(newItemResponse(created))
	}
}

// PUT /api/items/:id
func UpdateItemHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		item, err := store.GetItem(id)
		if err != nil {
			if errors.Is(err, storage.ErrItemNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün okunamadı")
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			item.Name = *body.Name
		}
		if body.Category != nil {
			if _, err := store.GetCategory(*body.Category); err != nil {
				if errors.Is(err, storage.ErrCategoryNotFound) {
					return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kategori")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Kategori kontrolü yapılamadı")
			}
			item.CategoryID = *body.Category
		}
		if body.CurrentStock != nil {
			currentStock, err := coerceInt(body.CurrentStock)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz stok değeri")
			}
			item.CurrentStock = currentStock
		}
		if body.MinStock != nil {
			minStock, err := coerceInt(body.MinStock)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz minimum stok değeri")
			}
			item.MinStock = minStock
		}
		if body.Unit != nil {
			item.Unit = *body.Unit
		}
		if body.Location != nil {
			item.Location = *body.Location
		}
		if body.Barcodes != nil {
			barcodes := normalizeBarcodes(body.Barcodes)
			for _, bc := range barcodes {
				if err := checkBarcodeAvailable(store, bc, item.ID); err != nil {
					return err
				}
			}
			item.Barcodes = pq.StringArray(barcodes)
		}

		if err := store.UpdateItem(item); err != nil {
			if errors.Is(err, storage.ErrItemNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		updated, err := store.GetItem(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün okunamadı")
		}
		return c.JSON(newItemResponse(updated))
	}
}

// DELETE /api/items/:id
func DeleteItemHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := store.DeleteItem(id); err != nil {
			if errors.Is(err, storage.ErrItemNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}
		return c.JSON(fiber.Map{"message": "Ürün silindi"})
	}
}

// GET /api/items/barcode/:code
func GetItemByBarcodeHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params("code")

		item, err := store.GetItemByBarcode(code)
		if err != nil {
			if errors.Is(err, storage.ErrItemNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün okunamadı")
		}
		return c.JSON(newItemResponse(item))
	}
}

// GET /api/low-stock
func ListLowStockItemsHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := store.ListLowStockItems()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ItemResponse, 0, len(items))
		for i := range items {
			res = append(res, newItemResponse(&items[i]))
		}
		return c.JSON(res)
	}
}
