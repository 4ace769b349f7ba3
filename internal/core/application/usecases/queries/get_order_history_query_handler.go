package queries

import (
	"context"
	"time"
)

// GetOrderHistoryQueryHandler reads from the fulfillment ledger.
type GetOrderHistoryQueryHandler struct {
	history HistoryReader
}

func NewGetOrderHistoryQueryHandler(history HistoryReader) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{history: history}
}

// Handle returns entries newest first, with times in RFC 3339.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries, err := h.history.History(ctx, query.Owner(), query.Limit())
	if err != nil {
		return nil, err
	}

	result := make([]GetOrderHistoryQueryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, GetOrderHistoryQueryResponse{
			ItemID:   entry.ItemID.String(),
			Kind:     entry.Kind.String(),
			Outcome:  entry.Outcome.String(),
			PlacedAt: entry.PlacedAt.UTC().Format(time.RFC3339),
			At:       entry.At.UTC().Format(time.RFC3339),
		})
	}
	return result, nil
}
