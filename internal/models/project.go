package models

import "time"

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusExpired   = "expired"
	ProjectStatusDiscarded = "discarded"
)

// ValidProjectStatus, status güncellemelerinde enum kontrolü için
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusExpired, ProjectStatusDiscarded:
		return true
	}
	return false
}

// Project: süreli mutfak projeleri (fermente ürünler, turşu vs.).
// Status geçişleri sadece kullanıcı güncellemesiyle olur; "expiring"/"expired"
// saklanan durum değil, sorgu filtresidir.
type Project struct {
	ID         string     `gorm:"primaryKey;size:36"`
	Name       string     `gorm:"size:200;not null"`
	Type       string     `gorm:"size:100;not null"` // ferment, kombucha, turşu vs.
	StartDate  time.Time  `gorm:"type:date;not null"`
	ReadyDate  *time.Time `gorm:"type:date"`
	ExpiryDate *time.Time `gorm:"type:date;index"`
	Status     string     `gorm:"size:20;not null;default:active"`
	Location   string     `gorm:"size:100"`
	Notes      string     `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
