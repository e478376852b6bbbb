package memory

import (
	"sort"
	"sync"
	"time"

	"kiler-backend/internal/models"
	"kiler-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Store: storage.Store'un bellek içi implementasyonu. Postgres gerektirmeyen
// kurulumlar ve testler için; süreç kapanınca veri kaybolur.
type Store struct {
	mu           sync.RWMutex
	categories   []models.Category
	items        map[string]*models.Item
	transactions []*models.Transaction
	projects     map[string]*models.Project
}

var _ storage.Store = (*Store)(nil)

func Open() *Store {
	return &Store{
		categories: storage.DefaultCategories(),
		items:      make(map[string]*models.Item),
		projects:   make(map[string]*models.Project),
	}
}

func (s *Store) Close() error {
	return nil
}

// --- Kategoriler ---

func (s *Store) ListCategories() ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetCategory(id string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cat := range s.categories {
		if cat.ID == id {
			c := cat
			return &c, nil
		}
	}
	return nil, storage.ErrCategoryNotFound
}

func (s *Store) categoryName(id string) string {
	for _, cat := range s.categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return ""
}

// --- Ürünler ---

func cloneItem(item *models.Item) *models.Item {
	c := *item
	c.Barcodes = append(c.Barcodes[:0:0], item.Barcodes...)
	return &c
}

func (s *Store) ListItems() ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Item, 0, len(s.items))
	for _, item := range s.items {
		c := cloneItem(item)
		c.CategoryName = s.categoryName(c.CategoryID)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetItem(id string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, storage.ErrItemNotFound
	}
	c := cloneItem(item)
	c.CategoryName = s.categoryName(c.CategoryID)
	return c, nil
}

func (s *Store) GetItemByBarcode(code string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		for _, bc := range item.Barcodes {
			if bc == code {
				c := cloneItem(item)
				c.CategoryName = s.categoryName(c.CategoryID)
				return c, nil
			}
		}
	}
	return nil, storage.ErrItemNotFound
}

func (s *Store) CreateItem(item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.NewString()
	if item.Barcodes == nil {
		item.Barcodes = pq.StringArray{}
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items[item.ID] = cloneItem(item)
	return nil
}

func (s *Store) UpdateItem(item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[item.ID]
	if !ok {
		return storage.ErrItemNotFound
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	s.items[item.ID] = cloneItem(item)
	return nil
}

func (s *Store) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return storage.ErrItemNotFound
	}
	delete(s.items, id)

	// Hareket kayıtları ürünle birlikte silinir (cascade davranışı)
	kept := s.transactions[:0]
	for _, txn := range s.transactions {
		if txn.ItemID != id {
			kept = append(kept, txn)
		}
	}
	s.transactions = kept
	return nil
}

func (s *Store) AddBarcode(itemID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		for _, bc := range item.Barcodes {
			if bc == code {
				return storage.ErrDuplicateBarcode
			}
		}
	}

	item, ok := s.items[itemID]
	if !ok {
		return storage.ErrItemNotFound
	}
	item.Barcodes = append(item.Barcodes, code)
	item.UpdatedAt = time.Now()
	return nil
}

func (s *Store) RemoveBarcode(itemID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return storage.ErrItemNotFound
	}
	for i, bc := range item.Barcodes {
		if bc == code {
			item.Barcodes = append(item.Barcodes[:i], item.Barcodes[i+1:]...)
			item.UpdatedAt = time.Now()
			return nil
		}
	}
	return storage.ErrBarcodeNotFound
}

func (s *Store) ListLowStockItems() ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Item, 0)
	for _, item := range s.items {
		// min_stock seviyesi dahil
		if item.CurrentStock <= item.MinStock {
			c := cloneItem(item)
			c.CategoryName = s.categoryName(c.CategoryID)
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- Stok hareketleri ---

func (s *Store) CreateTransaction(txn *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[txn.ItemID]
	if !ok {
		return storage.ErrItemNotFound
	}

	txn.ID = uuid.NewString()
	txn.CreatedAt = time.Now()

	if txn.Type == models.TransactionTypeRestock {
		item.CurrentStock += txn.Quantity
	} else {
		// usage sıfırın altına inmez
		item.CurrentStock = max(0, item.CurrentStock-txn.Quantity)
	}
	item.UpdatedAt = time.Now()

	stored := *txn
	s.transactions = append(s.transactions, &stored)
	return nil
}

func (s *Store) ListTransactions() ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Transaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		c := *txn
		if item, ok := s.items[txn.ItemID]; ok {
			c.ItemName = item.Name
		}
		out = append(out, c)
	}
	// En yeni hareket başta
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- Projeler ---

func cloneProject(p *models.Project) *models.Project {
	c := *p
	if p.ReadyDate != nil {
		d := *p.ReadyDate
		c.ReadyDate = &d
	}
	if p.ExpiryDate != nil {
		d := *p.ExpiryDate
		c.ExpiryDate = &d
	}
	return &c
}

func (s *Store) ListProjects() ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *cloneProject(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetProject(id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, storage.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (s *Store) CreateProject(p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.projects[p.ID] = cloneProject(p)
	return nil
}

func (s *Store) UpdateProject(p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.projects[p.ID]
	if !ok {
		return storage.ErrProjectNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	s.projects[p.ID] = cloneProject(p)
	return nil
}

func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return storage.ErrProjectNotFound
	}
	delete(s.projects, id)
	return nil
}

const dateLayout = "2006-01-02"

func (s *Store) ListExpiringProjects(days int) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Takvim günü karşılaştırması: saklanan tarihler UTC gece yarısı,
	// time.Now() ise yerel saat. Postgres tarafındaki gibi tarih
	// string'leri karşılaştırılır ki zaman dilimi sonucu kaydırmasın.
	today := time.Now().Format(dateLayout)
	until := time.Now().AddDate(0, 0, days).Format(dateLayout)

	out := make([]models.Project, 0)
	for _, p := range s.projects {
		if p.Status != models.ProjectStatusActive || p.ExpiryDate == nil {
			continue
		}
		exp := p.ExpiryDate.Format(dateLayout)
		if exp >= today && exp <= until {
			out = append(out, *cloneProject(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.Before(*out[j].ExpiryDate) })
	return out, nil
}

func (s *Store) ListExpiredProjects() ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := time.Now().Format(dateLayout)

	out := make([]models.Project, 0)
	for _, p := range s.projects {
		if p.Status != models.ProjectStatusActive || p.ExpiryDate == nil {
			continue
		}
		if p.ExpiryDate.Format(dateLayout) < today {
			out = append(out, *cloneProject(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.Before(*out[j].ExpiryDate) })
	return out, nil
}
