package translation

import (
	"github.com/SanguinaInc/playbridge/internal/billing/domain"
)

// ProductRequest is the remote caller's product lookup: an identifier plus
// a product-type selector from the closed {inapp, subs} set.
type ProductRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	ProductType string `json:"productType" binding:"required"`
}

// ToProductQuery builds the native query parameter for one request. A
// selector outside the closed set is a contract error, reported
// synchronously and never retried.
func ToProductQuery(req ProductRequest) (domain.ProductQuery, error) {
	productType, err := ProductTypeFromString(req.ProductType)
	if err != nil {
		return domain.ProductQuery{}, err
	}
	return domain.ProductQuery{
		ProductID: req.ProductID,
		Type:      productType,
	}, nil
}

// ToProductQueries translates an ordered batch. One bad element rejects
// the whole batch; no partial batches are silently dropped.
func ToProductQueries(reqs []ProductRequest) ([]domain.ProductQuery, error) {
	queries := make([]domain.ProductQuery, 0, len(reqs))
	for i, req := range reqs {
		query, err := ToProductQuery(req)
		if err != nil {
			return nil, &BatchError{Index: i, Err: err}
		}
		queries = append(queries, query)
	}
	return queries, nil
}
