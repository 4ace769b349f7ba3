package queries

import (
	"context"
	"errors"
)

// ErrNoActiveOrder is returned when the customer has nothing in any stage.
var ErrNoActiveOrder = errors.New("no active order")

// GetOrderStatusQueryHandler reads status from the stage registry.
type GetOrderStatusQueryHandler struct {
	reader StatusReader
}

func NewGetOrderStatusQueryHandler(reader StatusReader) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{reader: reader}
}

// Handle returns ErrNoActiveOrder when all three counts are zero.
func (h GetOrderStatusQueryHandler) Handle(
	_ context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	counts := h.reader.StatusFor(query.Owner())
	if counts.IsEmpty() {
		return GetOrderStatusQueryResponse{}, ErrNoActiveOrder
	}

	return GetOrderStatusQueryResponse{
		Owner:     query.Owner(),
		Waiting:   counts.Waiting,
		Preparing: counts.Preparing,
		Ready:     counts.Ready,
	}, nil
}
