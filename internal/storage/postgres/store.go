package postgres

import (
	"errors"
	"fmt"
	"log"
	"time"

	"kiler-backend/internal/config"
	"kiler-backend/internal/models"
	"kiler-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Store: storage.Store'un Postgres implementasyonu. Tüm tablolar
// yapılandırılabilir bir şemada (namespace) yaşar.
type Store struct {
	db     *gorm.DB
	schema string
}

var _ storage.Store = (*Store)(nil)

func Open(cfg *config.Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{TablePrefix: cfg.DatabaseSchema + "."},
	})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	s := &Store{db: db, schema: cfg.DatabaseSchema}

	if cfg.DatabaseSchema != "public" {
		if err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + cfg.DatabaseSchema).Error; err != nil {
			return nil, fmt.Errorf("şema oluşturulamadı: %w", err)
		}
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.Item{},
		&models.Transaction{},
		&models.Project{},
	)
	if err != nil {
		return nil, fmt.Errorf("AutoMigrate hatası: %w", err)
	}

	// Varsayılan kategorileri seed et (varsa dokunma)
	seed := storage.DefaultCategories()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, fmt.Errorf("kategori seed hatası: %w", err)
	}

	log.Printf("Veritabanı bağlantısı başarılı. Şema: %s", cfg.DatabaseSchema)
	return s, nil
}

// table: raw join/exec için şema nitelikli tablo adı
func (s *Store) table(name string) string {
	return s.schema + "." + name
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --- Kategoriler ---

func (s *Store) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) GetCategory(id string) (*models.Category, error) {
	var cat models.Category
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrCategoryNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// --- Ürünler ---

func (s *Store) itemQuery() *gorm.DB {
	return s.db.Model(&models.Item{}).
		Select("items.*, categories.name AS category_name").
		Joins("JOIN " + s.table("categories") + " ON categories.id = items.category_id")
}

func (s *Store) ListItems() ([]models.Item, error) {
	var items []models.Item
	if err := s.itemQuery().Order("items.name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetItem(id string) (*models.Item, error) {
	var item models.Item
	err := s.itemQuery().Where("items.id = ?", id).Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetItemByBarcode(code string) (*models.Item, error) {
	var item models.Item
	// Birden fazla eşleşme olmamalı (global teklik); olursa ilk gelen döner
	err := s.itemQuery().Where("? = ANY(items.barcodes)", code).Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateItem(item *models.Item) error {
	item.ID = uuid.NewString()
	if item.Barcodes == nil {
		item.Barcodes = pq.StringArray{}
	}
	return s.db.Omit("Category").Create(item).Error
}

func (s *Store) UpdateItem(item *models.Item) error {
	res := s.db.Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]any{
		"name":          item.Name,
		"barcodes":      item.Barcodes,
		"category_id":   item.CategoryID,
		"current_stock": item.CurrentStock,
		"min_stock":     item.MinStock,
		"unit":          item.Unit,
		"location":      item.Location,
		"updated_at":    time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrItemNotFound
	}
	return nil
}

func (s *Store) DeleteItem(id string) error {
	// Hareket kayıtları FK üzerinden cascade silinir
	res := s.db.Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrItemNotFound
	}
	return nil
}

func (s *Store) AddBarcode(itemID, code string) error {
	// Önce global teklik kontrolü
	var count int64
	if err := s.db.Model(&models.Item{}).Where("? = ANY(barcodes)", code).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return storage.ErrDuplicateBarcode
	}

	res := s.db.Exec(
		"UPDATE "+s.table("items")+" SET barcodes = array_append(barcodes, ?), updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		code, itemID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrItemNotFound
	}
	return nil
}

func (s *Store) RemoveBarcode(itemID, code string) error {
	res := s.db.Exec(
		"UPDATE "+s.table("items")+" SET barcodes = array_remove(barcodes, ?), updated_at = CURRENT_TIMESTAMP WHERE id = ? AND ? = ANY(barcodes)",
		code, itemID, code,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrBarcodeNotFound
	}
	return nil
}

func (s *Store) ListLowStockItems() ([]models.Item, error) {
	var items []models.Item
	err := s.itemQuery().
		Where("items.current_stock <= items.min_stock").
		Order("items.name asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- Stok hareketleri ---

func (s *Store) CreateTransaction(txn *models.Transaction) error {
	txn.ID = uuid.NewString()
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Item").Create(txn).Error; err != nil {
			return err
		}

		var stockExpr clause.Expr
		if txn.Type == models.TransactionTypeRestock {
			stockExpr = gorm.Expr("current_stock + ?", txn.Quantity)
		} else {
			// usage sıfırın altına inmez
			stockExpr = gorm.Expr("GREATEST(0, current_stock - ?)", txn.Quantity)
		}

		res := tx.Model(&models.Item{}).Where("id = ?", txn.ItemID).Updates(map[string]any{
			"current_stock": stockExpr,
			"updated_at":    time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return storage.ErrItemNotFound
		}
		return nil
	})
}

func (s *Store) ListTransactions() ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.Model(&models.Transaction{}).
		Select("transactions.*, items.name AS item_name").
		Joins("JOIN " + s.table("items") + " ON items.id = transactions.item_id").
		Order("transactions.created_at desc").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// --- Projeler ---

func (s *Store) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) GetProject(id string) (*models.Project, error) {
	var p models.Project
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProject(p *models.Project) error {
	p.ID = uuid.NewString()
	return s.db.Create(p).Error
}

func (s *Store) UpdateProject(p *models.Project) error {
	res := s.db.Model(&models.Project{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":        p.Name,
		"type":        p.Type,
		"start_date":  p.StartDate,
		"ready_date":  p.ReadyDate,
		"expiry_date": p.ExpiryDate,
		"status":      p.Status,
		"location":    p.Location,
		"notes":       p.Notes,
		"updated_at":  time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrProjectNotFound
	}
	return nil
}

func (s *Store) DeleteProject(id string) error {
	res := s.db.Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrProjectNotFound
	}
	return nil
}

func (s *Store) ListExpiringProjects(days int) ([]models.Project, error) {
	today := time.Now().Format("2006-01-02")
	until := time.Now().AddDate(0, 0, days).Format("2006-01-02")

	var projects []models.Project
	err := s.db.
		Where("status = ? AND expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?",
			models.ProjectStatusActive, today, until).
		Order("expiry_date asc").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) ListExpiredProjects() ([]models.Project, error) {
	today := time.Now().Format("2006-01-02")

	var projects []models.Project
	err := s.db.
		Where("status = ? AND expiry_date IS NOT NULL AND expiry_date < ?",
			models.ProjectStatusActive, today).
		Order("expiry_date asc").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
