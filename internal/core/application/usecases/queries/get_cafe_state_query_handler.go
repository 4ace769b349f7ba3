package queries

import (
	"context"
)

// GetCafeStateQueryHandler combines registry totals, sessions and scheduler counters.
type GetCafeStateQueryHandler struct {
	totals    TotalsReader
	sessions  SessionLister
	scheduler SchedulerStatsReader
}

func NewGetCafeStateQueryHandler(
	totals TotalsReader,
	sessions SessionLister,
	scheduler SchedulerStatsReader,
) GetCafeStateQueryHandler {
	return GetCafeStateQueryHandler{
		totals:    totals,
		sessions:  sessions,
		scheduler: scheduler,
	}
}

// Handle reads each source once. The three sources are not read atomically
// with respect to each other.
func (h GetCafeStateQueryHandler) Handle(
	_ context.Context,
	query GetCafeStateQuery,
) (GetCafeStateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCafeStateQueryResponse{}, err
	}

	totals := h.totals.Totals()
	return GetCafeStateQueryResponse{
		Waiting:   totals.Waiting,
		Preparing: totals.Preparing,
		Ready:     totals.Ready,
		Capacity:  h.totals.Capacity(),

		ActiveCustomers: h.totals.ActiveOwners(),
		Sessions:        h.sessions.Snapshot(),
		Scheduler:       h.scheduler.Stats(),
	}, nil
}
