package models

import "time"

const (
	TransactionTypeRestock = "restock"
	TransactionTypeUsage   = "usage"
)

// Transaction: stok hareketi kaydı. Oluşturulduktan sonra değiştirilemez,
// stok değişiminin tek yolu budur.
type Transaction struct {
	ID        string `gorm:"primaryKey;size:36"`
	ItemID    string `gorm:"size:36;index;not null"`
	Item      Item   `gorm:"constraint:OnDelete:CASCADE"`
	Type      string `gorm:"size:20;not null"` // restock | usage
	Quantity  int    `gorm:"not null"`
	Notes     string `gorm:"type:text"`
	CreatedAt time.Time

	// Ürün adı join ile doldurulur, tabloda kolonu yok
	ItemName string `gorm:"->;-:migration"`
}
