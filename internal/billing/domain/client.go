package domain

import (
	"context"
	"errors"
)

// Client is the boundary to the native billing client. Every call returns
// the BillingResult envelope alongside its detail payload; the caller, not
// the implementation, decides what a non-OK response code means.
type Client interface {
	QueryProductDetails(ctx context.Context, queries []ProductQuery) (BillingResult, []Product, error)
	QueryPurchases(ctx context.Context, productType ProductType) (BillingResult, []Purchase, error)
	QueryPurchaseHistory(ctx context.Context, productType ProductType) (BillingResult, []PurchaseHistoryRecord, error)
	GetBillingConfig(ctx context.Context) (BillingResult, *BillingConfig, error)
	CreateAlternativeBillingOnlyReportingDetails(ctx context.Context) (BillingResult, *AlternativeBillingOnlyReportingDetails, error)
}

var (
	ErrInvalidProductType     = errors.New("invalid_product_type")
	ErrInvalidProductID       = errors.New("invalid_product_id")
	ErrNotFound               = errors.New("not_found")
	ErrDuplicatePurchaseToken = errors.New("duplicate_purchase_token")
)
