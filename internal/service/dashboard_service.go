package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/helpdesklabs/helpdesk-api/internal/domain"
	"github.com/helpdesklabs/helpdesk-api/internal/repository"
	apperrors "github.com/helpdesklabs/helpdesk-api/pkg/util"
)

const dashboardCacheKey = "dashboard:snapshot"

// SnapshotCache stores serialized dashboard snapshots with a TTL.
// *persistence.Redis satisfies it.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DashboardSnapshot is a best-effort aggregate view over tickets and users.
// The four figures are sampled concurrently without a shared transaction, so
// they may reflect slightly different instants under concurrent writes.
type DashboardSnapshot struct {
	TotalTickets int64                  `json:"totalTickets"`
	TotalUsers   int64                  `json:"totalUsers"`
	ByStatus     []domain.StatusCount   `json:"byStatus"`
	ByPriority   []domain.PriorityCount `json:"byPriority"`
}

// DashboardService assembles the dashboard aggregates.
type DashboardService struct {
	stats    repository.StatsRepository
	cache    SnapshotCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardService constructs the service. Cache may be nil to disable caching.
func NewDashboardService(stats repository.StatsRepository, cache SnapshotCache, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		stats:    stats,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// GetSnapshot returns the dashboard aggregates, serving a cached snapshot
// when one is fresh enough. The four store queries run concurrently and the
// whole operation fails if any of them fails.
func (s *DashboardService) GetSnapshot(ctx context.Context) (*DashboardSnapshot, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, &apperrors.DomainError{
			Code:       "DASHBOARD_LOAD_FAILED",
			Message:    "failed to load dashboard data",
			HTTPStatus: http.StatusInternalServerError,
			Err:        err,
		}
	}

	s.toCache(ctx, snapshot)
	return snapshot, nil
}

func (s *DashboardService) loadSnapshot(ctx context.Context) (*DashboardSnapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		snapshot DashboardSnapshot
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		total, err := s.stats.CountTickets(ctx)
		if err != nil {
			fail(err)
			return
		}
		snapshot.TotalTickets = total
	}()
	go func() {
		defer wg.Done()
		total, err := s.stats.CountUsers(ctx)
		if err != nil {
			fail(err)
			return
		}
		snapshot.TotalUsers = total
	}()
	go func() {
		defer wg.Done()
		rows, err := s.stats.CountTicketsByStatus(ctx)
		if err != nil {
			fail(err)
			return
		}
		snapshot.ByStatus = rows
	}()
	go func() {
		defer wg.Done()
		rows, err := s.stats.CountTicketsByPriority(ctx)
		if err != nil {
			fail(err)
			return
		}
		snapshot.ByPriority = rows
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if snapshot.ByStatus == nil {
		snapshot.ByStatus = []domain.StatusCount{}
	}
	if snapshot.ByPriority == nil {
		snapshot.ByPriority = []domain.PriorityCount{}
	}
	return &snapshot, nil
}

func (s *DashboardService) fromCache(ctx context.Context) *DashboardSnapshot {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey)
	if err != nil {
		return nil
	}
	var snapshot DashboardSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		s.logger.Warn("discarding malformed dashboard cache entry", zap.Error(err))
		return nil
	}
	return &snapshot
}

func (s *DashboardService) toCache(ctx context.Context, snapshot *DashboardSnapshot) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard snapshot", zap.Error(err))
	}
}
