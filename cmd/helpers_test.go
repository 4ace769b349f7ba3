package cmd_test

import (
	"testing"

	"cafe/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/require"
)

func mustHistoryQuery(t *testing.T, owner string) queries.GetOrderHistoryQuery {
	t.Helper()
	query, err := queries.NewGetOrderHistoryQuery(owner, 0)
	require.NoError(t, err)
	return query
}

func newStateQuery() queries.GetCafeStateQuery {
	return queries.NewGetCafeStateQuery()
}
