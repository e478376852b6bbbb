package router

import (
	"log"
	"strings"

	"kiler-backend/internal/config"
	"kiler-backend/internal/inventory"
	"kiler-backend/internal/projects"
	"kiler-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// New: fiber uygulamasını kurar ve tüm route'ları bağlar
func New(store storage.Store, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den temizle
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Ürünler
	api.Get("/items", inventory.ListItemsHandler(store))
	api.Post("/items", inventory.CreateItemHandler(store))
	api.Get("/items/barcode/:code", inventory.GetItemByBarcodeHandler(store))
	api.Put("/items/:id", inventory.UpdateItemHandler(store))
	api.Delete("/items/:id", inventory.DeleteItemHandler(store))

	// Barkodlar
	api.Post("/items/:id/barcodes", inventory.AddBarcodeHandler(store))
	api.Delete("/items/:id/barcodes/:code", inventory.RemoveBarcodeHandler(store))

	// Kategoriler
	api.Get("/categories", inventory.ListCategoriesHandler(store))

	// Stok hareketleri
	api.Post("/transactions", inventory.CreateTransactionHandler(store))
	api.Get("/transactions", inventory.ListTransactionsHandler(store))
	api.Get("/low-stock", inventory.ListLowStockItemsHandler(store))

	// Projeler (expiring/expired, :id route'larından önce gelmeli)
	api.Get("/projects/expiring", projects.ListExpiringProjectsHandler(store))
	api.Get("/projects/expired", projects.ListExpiredProjectsHandler(store))
	api.Get("/projects", projects.ListProjectsHandler(store))
	api.Post("/projects", projects.CreateProjectHandler(store))
	api.Get("/projects/:id", projects.GetProjectHandler(store))
	api.Put("/projects/:id", projects.UpdateProjectHandler(store))
	api.Delete("/projects/:id", projects.DeleteProjectHandler(store))

	return app
}
