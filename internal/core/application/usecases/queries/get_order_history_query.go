package queries

import (
	"errors"
	"strings"

	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

// History page sizes.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 500
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery lists a customer's collected and abandoned items.
type GetOrderHistoryQuery struct {
	owner string
	limit int

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery uses DefaultHistoryLimit when limit is zero.
func NewGetOrderHistoryQuery(owner string, limit int) (GetOrderHistoryQuery, error) {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}

	var ownerErr, limitErr error
	if strings.TrimSpace(owner) == "" {
		ownerErr = errs.NewValueIsRequiredError("owner")
	}
	if limit < 1 || limit > MaxHistoryLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxHistoryLimit)
	}
	if err := errors.Join(ownerErr, limitErr); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{owner: owner, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) Owner() string {
	return q.owner
}

func (q GetOrderHistoryQuery) Limit() int {
	return q.limit
}

// GetOrderHistoryQueryResponse is one ledger entry.
type GetOrderHistoryQueryResponse struct {
	ItemID   string `json:"itemId"`
	Kind     string `json:"kind"`
	Outcome  string `json:"outcome"`
	PlacedAt string `json:"placedAt"`
	At       string `json:"at"`
}
