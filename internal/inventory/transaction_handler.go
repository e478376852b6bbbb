package inventory

import (
	"errors"

	"kiler-backend/internal/models"
	"kiler-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type CreateTransactionRequest struct {
	ItemID   *string `json:"item_id"`
	Type     *string `json:"type"` // restock | usage
	Quantity any     `json:"quantity"`
	Notes    *string `json:"notes"`
}

type TransactionResponse struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name,omitempty"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
	Timestamp string `json:"timestamp"`
}

func newTransactionResponse(txn *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        txn.ID,
		ItemID:    txn.ItemID,
		ItemName:  txn.ItemName,
		Type:      txn.Type,
		Quantity:  txn.Quantity,
		Notes:     txn.Notes,
		Timestamp: txn.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/transactions
// Stok değişiminin tek yolu: restock ekler, usage düşer (sıfırda durur)
func CreateTransactionHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.ItemID == nil || body.Type == nil || body.Quantity == nil || body.Notes == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Eksik zorunlu alanlar")
		}

		if _, err := store.GetItem(*body.ItemID); err != nil {
			if errors.Is(err, storage.ErrItemNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün okunamadı")
		}

		if *body.Type != models.TransactionTypeRestock && *body.Type != models.TransactionTypeUsage {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hareket tipi")
		}

		quantity, err := coerceInt(body.Quantity)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz miktar")
		}
		if quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Miktar pozitif olmalı")
		}

		txn := models.Transaction{
			ItemID:   *body.ItemID,
			Type:     *body.Type,
			Quantity: quantity,
			Notes:    *body.Notes,
		}
		if err := store.CreateTransaction(&txn); err != nil {
			if errors.Is(err, storage.ErrItemNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Hareket kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(newTransactionResponse(&txn))
	}
}

// GET /api/transactions
func ListTransactionsHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txns, err := store.ListTransactions()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler listelenemedi")
		}

		res := make([]TransactionResponse, 0, len(txns))
		for i := range txns {
			res = append(res, newTransactionResponse(&txns[i]))
		}
		return c.JSON(res)
	}
}
