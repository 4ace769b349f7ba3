package queries

import (
	"errors"
	"strings"

	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery reports where one customer's items are.
//
// Example:
//
//	query, _ := NewGetOrderStatusQuery("alice")
//	status, err := handler.Handle(ctx, query)
//	if errors.Is(err, ErrNoActiveOrder) {
//	    fmt.Println("No order found for alice")
//	}
//	fmt.Printf("%d waiting, %d preparing, %d ready\n", status.Waiting, status.Preparing, status.Ready)
type GetOrderStatusQuery struct {
	owner string

	guard guard.ConstructorGuard
}

func NewGetOrderStatusQuery(owner string) (GetOrderStatusQuery, error) {
	if strings.TrimSpace(owner) == "" {
		return GetOrderStatusQuery{}, errs.NewValueIsRequiredError("owner")
	}
	return GetOrderStatusQuery{owner: owner, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) Owner() string {
	return q.owner
}

// GetOrderStatusQueryResponse holds the per-stage counts of one customer.
type GetOrderStatusQueryResponse struct {
	Owner     string `json:"owner"`
	Waiting   int    `json:"waiting"`
	Preparing int    `json:"preparing"`
	Ready     int    `json:"ready"`
}

// IsReady reports whether anything can be collected.
func (r GetOrderStatusQueryResponse) IsReady() bool {
	return r.Ready > 0
}
