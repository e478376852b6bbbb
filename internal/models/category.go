package models

// Category: sabit referans seti (slug id ile), açılışta seed edilir
type Category struct {
	ID   string `gorm:"primaryKey;size:50"`
	Name string `gorm:"size:100;not null"`
}
