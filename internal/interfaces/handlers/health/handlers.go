package health

import (
	healthsvc "roomstay-backend/internal/application/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handlers struct {
	Rdb *redis.Client
	DB  *gorm.DB
}

// JSON serves the machine-readable health report.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	var pinger healthsvc.DBPinger
	if h.DB != nil {
		pinger = gormPinger{db: h.DB}
	}
	result := healthsvc.CollectHealth(c.Context(), h.Rdb, pinger)
	status := fiber.StatusOK
	if result.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}

type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
