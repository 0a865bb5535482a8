package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apphttp "github.com/helpdesklabs/helpdesk-api/internal/api/http"
	"github.com/helpdesklabs/helpdesk-api/internal/api/http/handlers"
	"github.com/helpdesklabs/helpdesk-api/internal/events"
	"github.com/helpdesklabs/helpdesk-api/internal/observability"
	"github.com/helpdesklabs/helpdesk-api/internal/repository/repotest"
	"github.com/helpdesklabs/helpdesk-api/internal/service"
)

// testEnv bundles the app and the fakes behind it.
type testEnv struct {
	app     *fiber.App
	users   *repotest.FakeUserRepo
	tickets *repotest.FakeTicketRepo
	stats   *repotest.FakeStatsRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := repotest.NewFakeUserRepo()
	tickets := repotest.NewFakeTicketRepo(users)
	stats := repotest.NewFakeStatsRepo(tickets, users)
	dispatcher := events.NewInMemoryDispatcher(nil)
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	userService := service.NewUserService(users, dispatcher)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: tickets,
		UserRepo:   users,
		Dispatcher: dispatcher,
	})
	dashboardService := service.NewDashboardService(stats, nil, 0, logger)

	app := fiber.New()
	apphttp.RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	apphttp.RegisterRoutes(app, apphttp.RouteConfig{
		Users:     handlers.NewUsersHandler(userService),
		Tickets:   handlers.NewTicketsHandler(ticketService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Health:    handlers.NewHealthHandler("helpdesk-api", "test", nil, nil, metrics),
	})

	return &testEnv{app: app, users: users, tickets: tickets, stats: stats}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) createUser(t *testing.T, name, email string) map[string]any {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/users", map[string]any{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeJSON[map[string]any](t, resp)
}

func restrictViolation() *pgconn.PgError {
	return &pgconn.PgError{Code: "23503", Message: "update or delete on table \"users\" violates foreign key constraint"}
}

func (e *testEnv) createTicket(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/tickets", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeJSON[map[string]any](t, resp)
}
