package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helpdesklabs/helpdesk-api/internal/domain"
	"github.com/helpdesklabs/helpdesk-api/internal/repository/repotest"
	"github.com/helpdesklabs/helpdesk-api/internal/service"
)

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.entries[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return val, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.sets++
	return nil
}

func seedDashboardData(t *testing.T) (*repotest.FakeStatsRepo, *repotest.FakeUserRepo, *repotest.FakeTicketRepo) {
	t.Helper()
	users := repotest.NewFakeUserRepo()
	tickets := repotest.NewFakeTicketRepo(users)

	owner := seedUser(t, users, "Ana", "ana@x.com")
	seedUser(t, users, "Rui", "rui@x.com")

	fixtures := []struct {
		status   domain.TicketStatus
		priority domain.TicketPriority
	}{
		{domain.TicketStatusOpen, domain.TicketPriorityHigh},
		{domain.TicketStatusOpen, domain.TicketPriorityLow},
		{domain.TicketStatusClosed, domain.TicketPriorityMedium},
	}
	for _, fixture := range fixtures {
		ticket := &domain.Ticket{
			Title:       "t",
			Description: "d",
			Status:      fixture.status,
			Priority:    fixture.priority,
			UserID:      owner.ID,
		}
		require.NoError(t, tickets.Create(context.Background(), ticket))
	}
	return repotest.NewFakeStatsRepo(tickets, users), users, tickets
}

func TestDashboardSnapshotTotalsMatchGroupings(t *testing.T) {
	stats, _, _ := seedDashboardData(t)
	svc := service.NewDashboardService(stats, nil, 0, zap.NewNop())

	snapshot, err := svc.GetSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), snapshot.TotalTickets)
	assert.Equal(t, int64(2), snapshot.TotalUsers)

	var byStatus int64
	for _, row := range snapshot.ByStatus {
		byStatus += row.Count
	}
	assert.Equal(t, snapshot.TotalTickets, byStatus)

	var byPriority int64
	for _, row := range snapshot.ByPriority {
		byPriority += row.Count
	}
	assert.Equal(t, snapshot.TotalTickets, byPriority)
}

func TestDashboardFailsAsWholeWhenAnyQueryFails(t *testing.T) {
	stats, _, _ := seedDashboardData(t)
	stats.ByPriorityErr = errors.New("relation gone")
	svc := service.NewDashboardService(stats, nil, 0, zap.NewNop())

	_, err := svc.GetSnapshot(context.Background())
	require.Error(t, err)
	assert.Equal(t, 500, domainErrStatus(t, err))
}

func TestDashboardServesCachedSnapshot(t *testing.T) {
	stats, _, _ := seedDashboardData(t)
	cache := newFakeCache()
	svc := service.NewDashboardService(stats, cache, 15*time.Second, zap.NewNop())

	first, err := svc.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	callsAfterFirst := stats.Calls

	second, err := svc.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, stats.Calls, "cache hit must not touch the store")
}

func TestDashboardIgnoresMalformedCacheEntry(t *testing.T) {
	stats, _, _ := seedDashboardData(t)
	cache := newFakeCache()
	require.NoError(t, cache.Set(context.Background(), "dashboard:snapshot", []byte("{not json"), 0))
	svc := service.NewDashboardService(stats, cache, 15*time.Second, zap.NewNop())

	snapshot, err := svc.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), snapshot.TotalTickets)
}
