package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/helpdesklabs/helpdesk-api/internal/domain"
	"github.com/helpdesklabs/helpdesk-api/internal/events"
	"github.com/helpdesklabs/helpdesk-api/internal/repository"
	apperrors "github.com/helpdesklabs/helpdesk-api/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	UserID      string
	Priority    domain.TicketPriority
	Status      domain.TicketStatus
}

// TicketUpdateInput describes the mutable ticket fields. Nil means "leave as is".
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Status      *domain.TicketStatus
	Priority    *domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListTickets returns all tickets with their owning user, newest first.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// GetTicket fetches a single ticket with its owning user.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNoMatch(err) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// CreateTicket creates a ticket owned by an existing user.
// Status defaults to ABERTO and priority to MEDIA when omitted.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" || input.UserID == "" {
		return nil, apperrors.NewValidationError("title, description and userId required", nil)
	}

	status := input.Status
	if status == "" {
		status = domain.TicketStatusOpen
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	owner, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		if apperrors.IsNoMatch(err) {
			return nil, apperrors.NewValidationError("user not found", map[string]any{"user_id": input.UserID})
		}
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		UserID:      owner.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.User = owner

	s.publishEvent(ctx, events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID: ticket.ID,
			UserID:   ticket.UserID,
			Priority: ticket.Priority,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// UpdateTicket applies a partial update to title, description, status and priority.
// Any status may be set from any other; there is no transition workflow.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNoMatch(err) {
			return nil, apperrors.NewValidationError("update failed", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := ticket.Status
	oldPriority := ticket.Priority

	if input.Title != nil {
		ticket.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}

	if ticket.Title == "" || ticket.Description == "" {
		return nil, apperrors.NewValidationError("title and description cannot be empty", nil)
	}
	if !ticket.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": ticket.Status})
	}
	if !ticket.Priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": ticket.Priority})
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if apperrors.IsNoMatch(err) {
			return nil, apperrors.NewValidationError("update failed", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if ticket.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type: events.EventTicketStatusChanged,
			Payload: events.TicketStatusChangedPayload{
				TicketID:  ticket.ID,
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	if ticket.Priority != oldPriority {
		s.publishEvent(ctx, events.Event{
			Type: events.EventTicketPriorityChanged,
			Payload: events.TicketPriorityChangedPayload{
				TicketID:    ticket.ID,
				OldPriority: oldPriority,
				NewPriority: ticket.Priority,
			},
		})
	}
	return ticket, nil
}

// DeleteTicket removes a ticket independently of its owning user.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if apperrors.IsNoMatch(err) {
			return apperrors.NewValidationError("delete failed", map[string]any{"ticket_id": id})
		}
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventTicketDeleted,
		Payload: events.TicketDeletedPayload{TicketID: id},
	})
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
