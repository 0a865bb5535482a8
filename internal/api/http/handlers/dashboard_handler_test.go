package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardPayloadShape(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Ana", "ana@x.com")
	userID := user["id"].(string)

	env.createTicket(t, map[string]any{"title": "a", "description": "d", "userId": userID, "priority": "ALTA"})
	env.createTicket(t, map[string]any{"title": "b", "description": "d", "userId": userID})
	env.createTicket(t, map[string]any{"title": "c", "description": "d", "userId": userID, "status": "FECHADO"})

	resp := env.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	payload := decodeJSON[map[string]any](t, resp)

	assert.Equal(t, float64(3), payload["totalTickets"])
	assert.Equal(t, float64(1), payload["totalUsers"])

	statusGroups, ok := payload["ticketsPorStatus"].([]any)
	require.True(t, ok)
	var statusSum float64
	for _, raw := range statusGroups {
		group := raw.(map[string]any)
		count := group["_count"].(map[string]any)
		statusSum += count["status"].(float64)
	}
	assert.Equal(t, payload["totalTickets"], statusSum)

	priorityGroups, ok := payload["ticketsPorPrioridade"].([]any)
	require.True(t, ok)
	var prioritySum float64
	for _, raw := range priorityGroups {
		group := raw.(map[string]any)
		count := group["_count"].(map[string]any)
		prioritySum += count["priority"].(float64)
	}
	assert.Equal(t, payload["totalTickets"], prioritySum)
}

func TestDashboardEmptyStore(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	payload := decodeJSON[map[string]any](t, resp)
	assert.Equal(t, float64(0), payload["totalTickets"])
	assert.Equal(t, float64(0), payload["totalUsers"])
	assert.Empty(t, payload["ticketsPorStatus"])
	assert.Empty(t, payload["ticketsPorPrioridade"])
}

func TestDashboardFailsWith500WhenSubQueryFails(t *testing.T) {
	env := newTestEnv(t)
	env.stats.CountUsersErr = errors.New("connection reset")

	resp := env.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	payload := decodeJSON[map[string]any](t, resp)
	errBody, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DASHBOARD_LOAD_FAILED", errBody["code"])
}
