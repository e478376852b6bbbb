package inventory

import (
	"errors"
	"strings"

	"kiler-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type AddBarcodeRequest struct {
	Barcode *string `json:"barcode"`
}

// POST /api/items/:id/barcodes
func AddBarcodeHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		item, err := store.GetItem(id)
		if err != nil {
			if errors.Is(err, storage.ErrItemNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün okunamadı")
		}

		var body AddBarcodeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}
		if body.Barcode == nil || strings.TrimSpace(*body.Barcode) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Barkod zorunlu")
		}
		code := strings.TrimSpace(*body.Barcode)

		// Global teklik: kod hiçbir üründe kayıtlı olmamalı
		existing, err := store.GetItemByBarcode(code)
		if err == nil {
			if existing.ID == item.ID {
				return fiber.NewError(fiber.StatusBadRequest, "Bu barkod zaten bu üründe kayıtlı")
			}
			return fiber.NewError(fiber.StatusBadRequest, "Barkod zaten başka bir üründe kayıtlı: "+existing.Name)
		}
		if !errors.Is(err, storage.ErrItemNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "Barkod kontrolü yapılamadı")
		}

		if err := store.AddBarcode(item.ID, code); err != nil {
			switch {
			case errors.Is(err, storage.ErrDuplicateBarcode):
				return fiber.NewError(fiber.StatusBadRequest, "Barkod zaten kayıtlı")
			case errors.Is(err, storage.ErrItemNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Barkod eklenemedi")
		}

		updated, err := store.GetItem(item.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün okunamadı")
		}
		return c.JSON(newItemResponse(updated))
	}
}

// DELETE /api/items/:id/barcodes/:code
func RemoveBarcodeHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		code := c.Params("code")

		if err := store.RemoveBarcode(id, code); err != nil {
			switch {
			case errors.Is(err, storage.ErrItemNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			case errors.Is(err, storage.ErrBarcodeNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Barkod bu üründe kayıtlı değil")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Barkod silinemedi")
		}
		return c.JSON(fiber.Map{"message": "Barkod silindi"})
	}
}
