package models

import (
	"time"

	"github.com/lib/pq"
)

type Item struct {
	ID           string         `gorm:"primaryKey;size:36"`
	Name         string         `gorm:"size:200;not null"`
	Barcodes     pq.StringArray `gorm:"type:text[]"` // aynı ürünün birden fazla barkodu olabilir
	CategoryID   string         `gorm:"size:50;index;not null"`
	Category     Category
	CurrentStock int    `gorm:"not null;default:0"`
	MinStock     int    `gorm:"not null;default:0"` // bu seviyenin altı (dahil) "stok azaldı" sayılır
	Unit         string `gorm:"size:50;not null"`   // rulo, kutu, adet vs.
	Location     string `gorm:"size:100"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Kategori adı join ile doldurulur, tabloda kolonu yok
	CategoryName string `gorm:"->;-:migration"`
}
