package handlers

import (
	"net/http"

	"usersvc/internal/services"

	"github.com/labstack/echo/v4"
)

// ManagerHandlers exposes the seeded managers
type ManagerHandlers struct {
	managerService services.ManagerService
}

// NewManagerHandlers creates a new manager handlers instance
func NewManagerHandlers(managerService services.ManagerService) *ManagerHandlers {
	return &ManagerHandlers{managerService: managerService}
}

// ListManagers handles GET /managers
func (h *ManagerHandlers) ListManagers(c echo.Context) error {
	managers, err := h.managerService.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"managers": managers,
	})
}
