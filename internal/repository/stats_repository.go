package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesklabs/helpdesk-api/internal/domain"
)

// StatsRepository exposes the aggregate queries behind the dashboard.
type StatsRepository interface {
	CountTickets(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountTicketsByStatus(ctx context.Context) ([]domain.StatusCount, error)
	CountTicketsByPriority(ctx context.Context) ([]domain.PriorityCount, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository instantiates repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) CountTickets(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("stats.CountTickets: %w", err)
	}
	return count, nil
}

func (r *statsRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("stats.CountUsers: %w", err)
	}
	return count, nil
}

func (r *statsRepository) CountTicketsByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	const query = `
        SELECT status, COUNT(*) AS total
        FROM tickets
        GROUP BY status
        ORDER BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stats.CountTicketsByStatus: %w", err)
	}
	defer rows.Close()

	var result []domain.StatusCount
	for rows.Next() {
		var row domain.StatusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("stats.CountTicketsByStatus scan: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *statsRepository) CountTicketsByPriority(ctx context.Context) ([]domain.PriorityCount, error) {
	const query = `
        SELECT priority, COUNT(*) AS total
        FROM tickets
        GROUP BY priority
        ORDER BY priority`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stats.CountTicketsByPriority: %w", err)
	}
	defer rows.Close()

	var result []domain.PriorityCount
	for rows.Next() {
		var row domain.PriorityCount
		if err := rows.Scan(&row.Priority, &row.Count); err != nil {
			return nil, fmt.Errorf("stats.CountTicketsByPriority scan: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
