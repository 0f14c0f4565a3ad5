package mapping_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"storelens-shopify-sync/internal/application/mapping"
	"storelens-shopify-sync/internal/domain"
)

func TestReduceGID(t *testing.T) {
	id, err := mapping.ReduceGID(domain.EntityProducts, "id", "gid://shopify/Product/987654321")
	require.NoError(t, err)
	require.Equal(t, int64(987654321), id)
}

func TestReduceGID_QuerySuffix(t *testing.T) {
	id, err := mapping.ReduceGID(domain.EntityCustomers, "address.id",
		"gid://shopify/MailingAddress/339?model_name=CustomerAddress")
	require.NoError(t, err)
	require.Equal(t, int64(339), id)
}

func TestReduceGID_BareNumber(t *testing.T) {
	id, err := mapping.ReduceGID(domain.EntityOrders, "id", "42")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestReduceGID_NonNumeric(t *testing.T) {
	_, err := mapping.ReduceGID(domain.EntityProducts, "id", "gid://shopify/Product/not-a-number")
	require.Error(t, err)

	var mapErr *domain.MappingError
	require.True(t, errors.As(err, &mapErr))
	require.Equal(t, domain.EntityProducts, mapErr.Entity)
	require.Equal(t, "id", mapErr.Field)
}

func TestReduceGID_Empty(t *testing.T) {
	_, err := mapping.ReduceGID(domain.EntityProducts, "id", "")
	require.Error(t, err)
}

func TestReduceGID_Deterministic(t *testing.T) {
	first, err := mapping.ReduceGID(domain.EntityProducts, "id", "gid://shopify/Product/777")
	require.NoError(t, err)
	second, err := mapping.ReduceGID(domain.EntityProducts, "id", "gid://shopify/Product/777")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
