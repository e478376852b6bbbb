package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=kiler port=5432 sslmode=disable"

type Config struct {
	HTTPPort       string
	StorageDriver  string // postgres | memory
	DatabaseDSN    string
	DatabaseSchema string // tüm tabloların yaşadığı şema (namespace)
	CORSOrigins    string
}

func Load() *Config {
	v := viper.New()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("STORAGE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", defaultDSN)
	v.SetDefault("DATABASE_SCHEMA", "kiler")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.AutomaticEnv()

	cfg := &Config{
		HTTPPort:       v.GetString("HTTP_PORT"),
		StorageDriver:  strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		DatabaseSchema: v.GetString("DATABASE_SCHEMA"),
		CORSOrigins:    v.GetString("CORS_ALLOWED_ORIGINS"),
	}

	if cfg.StorageDriver != "postgres" && cfg.StorageDriver != "memory" {
		log.Fatalf("[FATAL] STORAGE_DRIVER geçersiz: %q (postgres veya memory olmalı)", cfg.StorageDriver)
	}
	if cfg.StorageDriver == "postgres" && cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgini tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}

	return cfg
}
