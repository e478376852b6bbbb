package main

import (
	"log"

	"kiler-backend/internal/config"
	"kiler-backend/internal/router"
	"kiler-backend/internal/storage"
	"kiler-backend/internal/storage/memory"
	"kiler-backend/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	var store storage.Store
	switch cfg.StorageDriver {
	case "memory":
		log.Println("Bellek içi depolama kullanılıyor (veri süreçle birlikte kaybolur)")
		store = memory.Open()
	default:
		pg, err := postgres.Open(cfg)
		if err != nil {
			log.Fatalf("Depolama açılamadı: %v", err)
		}
		store = pg
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Println("Depolama kapatılırken hata:", err)
		}
	}()

	app := router.New(store, cfg)

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
