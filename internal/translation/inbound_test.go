package translation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanguinaInc/playbridge/internal/billing/domain"
)

func TestToProductQuery(t *testing.T) {
	query, err := ToProductQuery(ProductRequest{ProductID: "sku_a", ProductType: "inapp"})
	require.NoError(t, err)
	assert.Equal(t, domain.ProductQuery{ProductID: "sku_a", Type: domain.ProductTypeInApp}, query)

	query, err = ToProductQuery(ProductRequest{ProductID: "sku_b", ProductType: "subs"})
	require.NoError(t, err)
	assert.Equal(t, domain.ProductTypeSubs, query.Type)
}

func TestToProductQueryUnknownType(t *testing.T) {
	_, err := ToProductQuery(ProductRequest{ProductID: "sku_a", ProductType: "consumable"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProductType))

	var typeErr *UnknownProductTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "consumable", typeErr.Value)
}

func TestToProductQueriesPreservesOrder(t *testing.T) {
	queries, err := ToProductQueries([]ProductRequest{
		{ProductID: "sku_c", ProductType: "subs"},
		{ProductID: "sku_a", ProductType: "inapp"},
		{ProductID: "sku_b", ProductType: "inapp"},
	})
	require.NoError(t, err)
	require.Len(t, queries, 3)
	assert.Equal(t, "sku_c", queries[0].ProductID)
	assert.Equal(t, "sku_a", queries[1].ProductID)
	assert.Equal(t, "sku_b", queries[2].ProductID)
}

func TestToProductQueriesRejectsWholeBatch(t *testing.T) {
	queries, err := ToProductQueries([]ProductRequest{
		{ProductID: "sku_a", ProductType: "inapp"},
		{ProductID: "sku_b", ProductType: "bogus"},
		{ProductID: "sku_c", ProductType: "subs"},
	})
	require.Error(t, err)
	assert.Nil(t, queries)

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 1, batchErr.Index)
	assert.True(t, errors.Is(err, ErrUnknownProductType))
}
