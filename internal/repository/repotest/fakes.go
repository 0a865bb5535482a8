// Package repotest provides in-memory repository fakes for tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/helpdesklabs/helpdesk-api/internal/domain"
)

// invalidKey mimics Postgres rejecting a value that does not parse as a
// uuid key (SQLSTATE 22P02). Returns nil for well-formed ids.
func invalidKey(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid: \"" + id + "\""}
	}
	return nil
}

// FakeUserRepo is an in-memory repository.UserRepository.
type FakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User

	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewFakeUserRepo creates an empty fake.
func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{users: make(map[string]domain.User)}
}

func (f *FakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"users_email_key\""}
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = *user
	return nil
}

func (f *FakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	if err := invalidKey(user.ID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = *user
	return nil
}

func (f *FakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if err := invalidKey(id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (f *FakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (f *FakeUserRepo) Delete(_ context.Context, id string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if err := invalidKey(id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

// FakeTicketRepo is an in-memory repository.TicketRepository. It attaches
// owning users from the linked FakeUserRepo, mirroring the SQL join.
type FakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
	seq     int64
	Users   *FakeUserRepo

	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewFakeTicketRepo creates an empty fake linked to the given user repo.
func NewFakeTicketRepo(users *FakeUserRepo) *FakeTicketRepo {
	return &FakeTicketRepo{tickets: make(map[string]domain.Ticket), Users: users}
}

func (f *FakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	if f.Users != nil {
		if _, err := f.Users.GetByID(ctx, ticket.UserID); err != nil {
			return &pgconn.PgError{Code: "23503", Message: "insert or update on table \"tickets\" violates foreign key constraint"}
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Microsecond)
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	stored.User = nil
	f.tickets[ticket.ID] = stored
	return nil
}

func (f *FakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	if err := invalidKey(ticket.ID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	stored := *ticket
	stored.User = nil
	f.tickets[ticket.ID] = stored
	return nil
}

func (f *FakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if err := invalidKey(id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	ticket, ok := f.tickets[id]
	f.mu.Unlock()
	if !ok {
		return nil, pgx.ErrNoRows
	}
	f.attachUser(ctx, &ticket)
	return &ticket, nil
}

func (f *FakeTicketRepo) List(ctx context.Context) ([]domain.Ticket, error) {
	f.mu.Lock()
	result := make([]domain.Ticket, 0, len(f.tickets))
	for _, ticket := range f.tickets {
		result = append(result, ticket)
	}
	f.mu.Unlock()
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	for i := range result {
		f.attachUser(ctx, &result[i])
	}
	return result, nil
}

func (f *FakeTicketRepo) Delete(_ context.Context, id string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if err := invalidKey(id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tickets, id)
	return nil
}

func (f *FakeTicketRepo) attachUser(ctx context.Context, ticket *domain.Ticket) {
	if f.Users == nil {
		return
	}
	if user, err := f.Users.GetByID(ctx, ticket.UserID); err == nil {
		ticket.User = user
	}
}

// FakeStatsRepo is an in-memory repository.StatsRepository that derives its
// aggregates from the linked ticket and user fakes.
type FakeStatsRepo struct {
	Tickets *FakeTicketRepo
	Users   *FakeUserRepo

	CountTicketsErr error
	CountUsersErr   error
	ByStatusErr     error
	ByPriorityErr   error
	Calls           int64
	callsMu         sync.Mutex
}

// NewFakeStatsRepo creates a fake over the given ticket and user fakes.
func NewFakeStatsRepo(tickets *FakeTicketRepo, users *FakeUserRepo) *FakeStatsRepo {
	return &FakeStatsRepo{Tickets: tickets, Users: users}
}

func (f *FakeStatsRepo) recordCall() {
	f.callsMu.Lock()
	f.Calls++
	f.callsMu.Unlock()
}

func (f *FakeStatsRepo) CountTickets(ctx context.Context) (int64, error) {
	f.recordCall()
	if f.CountTicketsErr != nil {
		return 0, f.CountTicketsErr
	}
	tickets, _ := f.Tickets.List(ctx)
	return int64(len(tickets)), nil
}

func (f *FakeStatsRepo) CountUsers(ctx context.Context) (int64, error) {
	f.recordCall()
	if f.CountUsersErr != nil {
		return 0, f.CountUsersErr
	}
	users, _ := f.Users.List(ctx)
	return int64(len(users)), nil
}

func (f *FakeStatsRepo) CountTicketsByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	f.recordCall()
	if f.ByStatusErr != nil {
		return nil, f.ByStatusErr
	}
	tickets, _ := f.Tickets.List(ctx)
	counts := make(map[domain.TicketStatus]int64)
	for _, ticket := range tickets {
		counts[ticket.Status]++
	}
	result := make([]domain.StatusCount, 0, len(counts))
	for status, count := range counts {
		result = append(result, domain.StatusCount{Status: status, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Status < result[j].Status })
	return result, nil
}

func (f *FakeStatsRepo) CountTicketsByPriority(ctx context.Context) ([]domain.PriorityCount, error) {
	f.recordCall()
	if f.ByPriorityErr != nil {
		return nil, f.ByPriorityErr
	}
	tickets, _ := f.Tickets.List(ctx)
	counts := make(map[domain.TicketPriority]int64)
	for _, ticket := range tickets {
		counts[ticket.Priority]++
	}
	result := make([]domain.PriorityCount, 0, len(counts))
	for priority, count := range counts {
		result = append(result, domain.PriorityCount{Priority: priority, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Priority < result[j].Priority })
	return result, nil
}
