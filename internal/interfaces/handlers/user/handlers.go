package user

import (
	usersvc "roomstay-backend/internal/application/user"
	"roomstay-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *usersvc.Service
}

// CreateUser handles public registration.
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var in usersvc.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.CreateUser(c.Context(), in)
	if err != nil {
		code := fiber.StatusBadRequest
		if err.Error() == "Email already registered" {
			code = fiber.StatusConflict
		}
		return response.Error(c, err.Error(), code, nil)
	}
	return response.SuccessCreated(c, "User created successfully", fiber.Map{
		"user_id":  u.UserID.String(),
		"fullname": u.Fullname,
		"email":    u.Email,
		"role":     u.Role,
	}, nil)
}
