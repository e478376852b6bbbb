package inventory

import (
	"kiler-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type CategoryResponse struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// GET /api/categories
// Kategori id -> {name, items} map'i döner; items listesi ürünlerden doldurulur
func ListCategoriesHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := store.ListCategories()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}

		res := make(map[string]*CategoryResponse, len(categories))
		for _, cat := range categories {
			res[cat.ID] = &CategoryResponse{Name: cat.Name, Items: []string{}}
		}

		items, err := store.ListItems()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}
		for _, item := range items {
			if cat, ok := res[item.CategoryID]; ok {
				cat.Items = append(cat.Items, item.ID)
			}
		}

		return c.JSON(res)
	}
}
