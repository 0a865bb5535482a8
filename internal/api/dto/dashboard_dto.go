package dto

import "github.com/helpdesklabs/helpdesk-api/internal/domain"

// StatusGroup is one group-by-status row of the dashboard payload.
type StatusGroup struct {
	Status domain.TicketStatus `json:"status"`
	Count  StatusGroupCount    `json:"_count"`
}

// StatusGroupCount nests the per-status count.
type StatusGroupCount struct {
	Status int64 `json:"status"`
}

// PriorityGroup is one group-by-priority row of the dashboard payload.
type PriorityGroup struct {
	Priority domain.TicketPriority `json:"priority"`
	Count    PriorityGroupCount    `json:"_count"`
}

// PriorityGroupCount nests the per-priority count.
type PriorityGroupCount struct {
	Priority int64 `json:"priority"`
}

// DashboardResponse is the aggregate payload served to the dashboard view.
type DashboardResponse struct {
	TotalTickets         int64           `json:"totalTickets"`
	TotalUsers           int64           `json:"totalUsers"`
	TicketsPorStatus     []StatusGroup   `json:"ticketsPorStatus"`
	TicketsPorPrioridade []PriorityGroup `json:"ticketsPorPrioridade"`
}

// NewDashboardResponse maps aggregate rows onto the wire shape.
func NewDashboardResponse(totalTickets, totalUsers int64, byStatus []domain.StatusCount, byPriority []domain.PriorityCount) DashboardResponse {
	statusGroups := make([]StatusGroup, 0, len(byStatus))
	for _, row := range byStatus {
		statusGroups = append(statusGroups, StatusGroup{
			Status: row.Status,
			Count:  StatusGroupCount{Status: row.Count},
		})
	}
	priorityGroups := make([]PriorityGroup, 0, len(byPriority))
	for _, row := range byPriority {
		priorityGroups = append(priorityGroups, PriorityGroup{
			Priority: row.Priority,
			Count:    PriorityGroupCount{Priority: row.Count},
		})
	}
	return DashboardResponse{
		TotalTickets:         totalTickets,
		TotalUsers:           totalUsers,
		TicketsPorStatus:     statusGroups,
		TicketsPorPrioridade: priorityGroups,
	}
}
