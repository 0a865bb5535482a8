package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helpdesklabs/helpdesk-api/internal/domain"
)

func TestTicketStatusValid(t *testing.T) {
	assert.True(t, domain.TicketStatusOpen.Valid())
	assert.True(t, domain.TicketStatusInProgress.Valid())
	assert.True(t, domain.TicketStatusClosed.Valid())
	assert.False(t, domain.TicketStatus("OPEN").Valid())
	assert.False(t, domain.TicketStatus("").Valid())
}

func TestTicketPriorityValid(t *testing.T) {
	assert.True(t, domain.TicketPriorityLow.Valid())
	assert.True(t, domain.TicketPriorityMedium.Valid())
	assert.True(t, domain.TicketPriorityHigh.Valid())
	assert.False(t, domain.TicketPriority("HIGH").Valid())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Em andamento", domain.TicketStatusInProgress.Label())
	assert.Equal(t, "Média", domain.TicketPriorityMedium.Label())
	assert.Empty(t, domain.TicketStatus("bogus").Label())
}
