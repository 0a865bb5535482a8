package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesklabs/helpdesk-api/internal/api/dto"
	"github.com/helpdesklabs/helpdesk-api/internal/service"
)

// DashboardHandler serves the read-only aggregate view.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// GetDashboard GET /dashboard.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	snapshot, err := h.service.GetSnapshot(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDashboardResponse(
		snapshot.TotalTickets,
		snapshot.TotalUsers,
		snapshot.ByStatus,
		snapshot.ByPriority,
	))
}
