package queries

import (
	"errors"

	"cafe/internal/core/application/preparation"
	"cafe/internal/core/application/sessions"
	"cafe/internal/pkg/guard"
)

var ErrGetCafeStateQueryIsNotConstructed = errors.New(
	"GetCafeStateQuery must be created via NewGetCafeStateQuery constructor",
)

// GetCafeStateQuery summarizes the whole cafe for operators.
type GetCafeStateQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCafeStateQuery creates a parameterless query.
func NewGetCafeStateQuery() GetCafeStateQuery {
	return GetCafeStateQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCafeStateQuery) Validate() error {
	return q.guard.Validate(ErrGetCafeStateQueryIsNotConstructed)
}

// GetCafeStateQueryResponse is the operator view of the cafe.
type GetCafeStateQueryResponse struct {
	Waiting   int `json:"waiting"`
	Preparing int `json:"preparing"`
	Ready     int `json:"ready"`
	Capacity  int `json:"capacity"`
	// ActiveCustomers counts owners with at least one item in any stage.
	ActiveCustomers int                `json:"activeCustomers"`
	Sessions        []sessions.Session `json:"sessions"`
	Scheduler       preparation.Stats  `json:"scheduler"`
}
