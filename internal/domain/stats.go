package domain

// StatusCount is one row of a tickets-by-status aggregation.
type StatusCount struct {
	Status TicketStatus
	Count  int64
}

// PriorityCount is one row of a tickets-by-priority aggregation.
type PriorityCount struct {
	Priority TicketPriority
	Count    int64
}
