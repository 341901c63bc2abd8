package bootstrap

import (
	"roomstay-backend/internal/config"
	"roomstay-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
)

// New loads config and builds the Fiber app without starting it. Embedders
// (and tests that want the full middleware chain) use this instead of main.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
