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

// UserService coordinates user workflows.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// UserCreateInput describes user creation payload.
type UserCreateInput struct {
	Name  string
	Email string
	Role  *string
}

// UserUpdateInput describes the mutable user fields. Nil means "leave as is".
type UserUpdateInput struct {
	Name  *string
	Email *string
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// GetUser fetches a single user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNoMatch(err) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// CreateUser registers a new user.
func (s *UserService) CreateUser(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, apperrors.NewValidationError("name and email required", nil)
	}

	user := &domain.User{
		Name:  name,
		Email: email,
		Role:  input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type: events.EventUserCreated,
		Payload: events.UserCreatedPayload{
			UserID: user.ID,
			Email:  user.Email,
		},
	})
	return user, nil
}

// UpdateUser applies a partial update to name and email.
func (s *UserService) UpdateUser(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNoMatch(err) {
			return nil, apperrors.NewValidationError("update failed", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if user.Name == "" || user.Email == "" {
		return nil, apperrors.NewValidationError("name and email cannot be empty", nil)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if apperrors.IsNoMatch(err) {
			return nil, apperrors.NewValidationError("update failed", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes a user. Deletion is blocked while tickets reference the user.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if apperrors.IsNoMatch(err) {
			return apperrors.NewValidationError("delete failed", map[string]any{"user_id": id})
		}
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserDeleted,
		Payload: events.UserDeletedPayload{UserID: id},
	})
	return nil
}

func (s *UserService) publishEvent(ctx context.Context, event events.Event) {
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
