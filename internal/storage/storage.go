package storage

import (
	"errors"

	"kiler-backend/internal/models"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrBarcodeNotFound  = errors.New("barcode not found")
	ErrDuplicateBarcode = errors.New("barcode already in use")
)

// Store: depolama katmanının yetenek arayüzü. Process açılışında bir kez
// seçilir (postgres veya memory), kapanışta Close çağrılır. Handler'lar
// sadece bu arayüzü görür.
type Store interface {
	// Kategoriler
	ListCategories() ([]models.Category, error)
	GetCategory(id string) (*models.Category, error)

	// Ürünler
	ListItems() ([]models.Item, error)
	GetItem(id string) (*models.Item, error)
	GetItemByBarcode(code string) (*models.Item, error)
	CreateItem(item *models.Item) error
	UpdateItem(item *models.Item) error
	DeleteItem(id string) error
	AddBarcode(itemID, code string) error
	RemoveBarcode(itemID, code string) error
	ListLowStockItems() ([]models.Item, error)

	// Stok hareketleri. CreateTransaction kaydı ekler ve stok deltasını
	// aynı transaction kapsamında uygular (usage sıfırın altına inmez).
	CreateTransaction(txn *models.Transaction) error
	ListTransactions() ([]models.Transaction, error)

	// Projeler
	ListProjects() ([]models.Project, error)
	GetProject(id string) (*models.Project, error)
	CreateProject(p *models.Project) error
	UpdateProject(p *models.Project) error
	DeleteProject(id string) error
	ListExpiringProjects(days int) ([]models.Project, error)
	ListExpiredProjects() ([]models.Project, error)

	Close() error
}

// DefaultCategories: açılışta seed edilen sabit kategori seti.
func DefaultCategories() []models.Category {
	return []models.Category{
		{ID: "paper-products", Name: "Paper Products"},
		{ID: "canned-goods", Name: "Canned Goods"},
		{ID: "cleaning-supplies", Name: "Cleaning Supplies"},
		{ID: "personal-care", Name: "Personal Care"},
		{ID: "beverages", Name: "Beverages"},
		{ID: "snacks", Name: "Snacks"},
		{ID: "alcohol", Name: "Alcohol"},
		{ID: "other", Name: "Other"},
	}
}
