package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "ABERTO"
	TicketStatusInProgress TicketStatus = "EM_ANDAMENTO"
	TicketStatusClosed     TicketStatus = "FECHADO"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "BAIXA"
	TicketPriorityMedium TicketPriority = "MEDIA"
	TicketPriorityHigh   TicketPriority = "ALTA"
)

// StatusLabels maps status tokens to display labels.
var StatusLabels = map[TicketStatus]string{
	TicketStatusOpen:       "Aberto",
	TicketStatusInProgress: "Em andamento",
	TicketStatusClosed:     "Fechado",
}

// PriorityLabels maps priority tokens to display labels.
var PriorityLabels = map[TicketPriority]string{
	TicketPriorityLow:    "Baixa",
	TicketPriorityMedium: "Média",
	TicketPriorityHigh:   "Alta",
}

// Valid reports whether the status is one of the known tokens.
func (s TicketStatus) Valid() bool {
	_, ok := StatusLabels[s]
	return ok
}

// Label returns the display label for the status.
func (s TicketStatus) Label() string {
	return StatusLabels[s]
}

// Valid reports whether the priority is one of the known tokens.
func (p TicketPriority) Valid() bool {
	_, ok := PriorityLabels[p]
	return ok
}

// Label returns the display label for the priority.
func (p TicketPriority) Label() string {
	return PriorityLabels[p]
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	User        *User
}
