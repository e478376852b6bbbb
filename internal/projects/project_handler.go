package projects

import (
	"errors"
	"time"

	"kiler-backend/internal/models"
	"kiler-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type CreateProjectRequest struct {
	Name       *string `json:"name"`
	Type       *string `json:"type"` // ferment, kombucha, turşu vs.
	StartDate  *string `json:"start_date"`
	ReadyDate  *string `json:"ready_date"`  // Opsiyonel
	ExpiryDate *string `json:"expiry_date"` // Opsiyonel
	Location   string  `json:"location"`
	Notes      string  `json:"notes"`
}

type UpdateProjectRequest struct {
	Name       *string `json:"name"`
	Type       *string `json:"type"`
	StartDate  *string `json:"start_date"`
	ReadyDate  *string `json:"ready_date"`  // Boş string tarihi siler
	ExpiryDate *string `json:"expiry_date"` // Boş string tarihi siler
	Status     *string `json:"status"`
	Location   *string `json:"location"`
	Notes      *string `json:"notes"`
}

type ProjectResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	ReadyDate  string `json:"ready_date,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	Status     string `json:"status"`
	Location   string `json:"location"`
	Notes      string `json:"notes"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

const dateLayout = "2006-01-02"

func newProjectResponse(p *models.Project) ProjectResponse {
	res := ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Type:      p.Type,
		StartDate: p.StartDate.Format(dateLayout),
		Status:    p.Status,
		Location:  p.Location,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if p.ReadyDate != nil {
		res.ReadyDate = p.ReadyDate.Format(dateLayout)
	}
	if p.ExpiryDate != nil {
		res.ExpiryDate = p.ExpiryDate.Format(dateLayout)
	}
	return res
}

// parseOptionalDate: boş string nil döner (tarih temizleme)
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GET /api/projects
func ListProjectsHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projects, err := store.ListProjects()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Projeler listelenemedi")
		}

		res := make([]ProjectResponse, 0, len(projects))
		for i := range projects {
			res = append(res, newProjectResponse(&projects[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/projects/:id
func GetProjectHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := store.GetProject(c.Params("id"))
		if err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Proje okunamadı")
		}
		return c.JSON(newProjectResponse(p))
	}
}

// POST /api/projects
func CreateProjectHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name == nil || body.Type == nil || body.StartDate == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Eksik zorunlu alanlar")
		}

		startDate, err := time.Parse(dateLayout, *body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-MM-DD olmalı)")
		}

		var readyDate, expiryDate *time.Time
		if body.ReadyDate != nil {
			if readyDate, err = parseOptionalDate(*body.ReadyDate); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-MM-DD olmalı)")
			}
		}
		if body.ExpiryDate != nil {
			if expiryDate, err = parseOptionalDate(*body.ExpiryDate); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-MM-DD olmalı)")
			}
		}

		p := models.Project{
			Name:       *body.Name,
			Type:       *body.Type,
			StartDate:  startDate,
			ReadyDate:  readyDate,
			ExpiryDate: expiryDate,
			Status:     models.ProjectStatusActive, // yeni proje her zaman aktif başlar
			Location:   body.Location,
			Notes:      body.Notes,
		}
		if err := store.CreateProject(&p); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje oluşturulamadı")
		}

		created, err := store.GetProject(p.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje okunamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(newProjectResponse(created))
	}
}

// PUT /api/projects/:id
func UpdateProjectHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		p, err := store.GetProject(id)
		if err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Proje okunamadı")
		}

		var body UpdateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			p.Name = *body.Name
		}
		if body.Type != nil {
			p.Type = *body.Type
		}
		if body.StartDate != nil {
			startDate, err := time.Parse(dateLayout, *body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-MM-DD olmalı)")
			}
			p.StartDate = startDate
		}
		if body.ReadyDate != nil {
			readyDate, err := parseOptionalDate(*body.ReadyDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-MM-DD olmalı)")
			}
			p.ReadyDate = readyDate
		}
		if body.ExpiryDate != nil {
			expiryDate, err := parseOptionalDate(*body.ExpiryDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-MM-DD olmalı)")
			}
			p.ExpiryDate = expiryDate
		}
		if body.Status != nil {
			// Statü geçişleri sadece buradan: sistem kendiliğinden expired yapmaz
			if !models.ValidProjectStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz proje durumu")
			}
			p.Status = *body.Status
		}
		if body.Location != nil {
			p.Location = *body.Location
		}
		if body.Notes != nil {
			p.Notes = *body.Notes
		}

		if err := store.UpdateProject(p); err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Proje güncellenemedi")
		}

		updated, err := store.GetProject(id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje okunamadı")
		}
		return c.JSON(newProjectResponse(updated))
	}
}

// DELETE /api/projects/:id
func DeleteProjectHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.DeleteProject(c.Params("id")); err != nil {
			if errors.Is(err, storage.ErrProjectNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Proje silinemedi")
		}
		return c.JSON(fiber.Map{"message": "Proje silindi"})
	}
}

// GET /api/projects/expiring?days=N
func ListExpiringProjectsHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 7)

		projects, err := store.ListExpiringProjects(days)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Projeler listelenemedi")
		}

		res := make([]ProjectResponse, 0, len(projects))
		for i := range projects {
			res = append(res, newProjectResponse(&projects[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/projects/expired
func ListExpiredProjectsHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projects, err := store.ListExpiredProjects()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Projeler listelenemedi")
		}

		res := make([]ProjectResponse, 0, len(projects))
		for i := range projects {
			res = append(res, newProjectResponse(&projects[i]))
		}
		return c.JSON(res)
	}
}
