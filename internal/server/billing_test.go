package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SanguinaInc/playbridge/internal/billing/domain"
	"github.com/SanguinaInc/playbridge/internal/cache"
	"github.com/SanguinaInc/playbridge/internal/config"
	"github.com/gin-gonic/gin"
)

type fakeClient struct {
	products       []domain.Product
	purchases      []domain.Purchase
	history        []domain.PurchaseHistoryRecord
	result         domain.BillingResult
	lastQueries    []domain.ProductQuery
	lastType       domain.ProductType
	purchasesCalls int
}

func (f *fakeClient) QueryProductDetails(ctx context.Context, queries []domain.ProductQuery) (domain.BillingResult, []domain.Product, error) {
	_ = ctx
	f.lastQueries = queries
	return f.result, f.products, nil
}

func (f *fakeClient) QueryPurchases(ctx context.Context, productType domain.ProductType) (domain.BillingResult, []domain.Purchase, error) {
	_ = ctx
	f.purchasesCalls++
	f.lastType = productType
	return f.result, f.purchases, nil
}

func (f *fakeClient) QueryPurchaseHistory(ctx context.Context, productType domain.ProductType) (domain.BillingResult, []domain.PurchaseHistoryRecord, error) {
	_ = ctx
	f.lastType = productType
	return f.result, f.history, nil
}

func (f *fakeClient) GetBillingConfig(ctx context.Context) (domain.BillingResult, *domain.BillingConfig, error) {
	_ = ctx
	return f.result, &domain.BillingConfig{CountryCode: "US"}, nil
}

func (f *fakeClient) CreateAlternativeBillingOnlyReportingDetails(ctx context.Context) (domain.BillingResult, *domain.AlternativeBillingOnlyReportingDetails, error) {
	_ = ctx
	return f.result, &domain.AlternativeBillingOnlyReportingDetails{ExternalTransactionToken: "ext-token"}, nil
}

func newTestServer(t *testing.T, client domain.Client) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bridge, err := config.NewBridgeConfigHolder()
	if err != nil {
		t.Fatalf("bridge config: %v", err)
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine:      router,
		client:      client,
		bridge:      bridge,
		symbolCache: cache.NewSymbolCache(),
	}
	srv.registerAPIRoutes()

	return srv, router
}

func TestQueryProductDetailsHandler(t *testing.T) {
	client := &fakeClient{
		result: domain.BillingResult{ResponseCode: domain.ResponseOK},
		products: []domain.Product{
			{
				ProductID:   "premium_upgrade",
				Title:       "Premium",
				Description: "desc",
				Name:        "Premium",
				Type:        domain.ProductTypeInApp,
				OneTimeOffer: &domain.OneTimePurchaseOffer{
					PriceAmountMicros: 4990000,
					PriceCurrencyCode: "USD",
					FormattedPrice:    "$4.99",
				},
			},
		},
	}
	_, router := newTestServer(t, client)

	body := `{"products":[{"productId":"premium_upgrade","productType":"inapp"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/products/query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if len(client.lastQueries) != 1 || client.lastQueries[0].ProductID != "premium_upgrade" {
		t.Fatalf("unexpected queries forwarded: %+v", client.lastQueries)
	}

	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["responseCode"] != float64(0) {
		t.Fatalf("expected responseCode 0, got %v", payload["responseCode"])
	}
	list, ok := payload["productDetailsJsonList"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("expected one product detail, got %v", payload["productDetailsJsonList"])
	}
	detail := list[0].(map[string]any)
	if detail["productId"] != "premium_upgrade" {
		t.Fatalf("expected productId key, got %v", detail)
	}
	if _, present := detail["subscriptionOfferDetails"]; present {
		t.Fatal("one-time product must not carry subscriptionOfferDetails")
	}

	// Key order is part of the contract; title leads.
	raw := resp.Body.String()
	if !strings.Contains(raw, `"productDetailsJsonList":[{"title":`) {
		t.Fatalf("expected title as first product key, got %s", raw)
	}
}

func TestQueryProductDetailsHandlerRejectsBadBatch(t *testing.T) {
	client := &fakeClient{result: domain.BillingResult{ResponseCode: domain.ResponseOK}}
	_, router := newTestServer(t, client)

	body := `{"products":[{"productId":"a","productType":"inapp"},{"productId":"b","productType":"consumable"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/products/query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if client.lastQueries != nil {
		t.Fatal("expected no client call on batch rejection")
	}
	if !strings.Contains(resp.Body.String(), "products[1]") {
		t.Fatalf("expected failing index in error payload, got %s", resp.Body.String())
	}
}

func TestQueryPurchasesHandlerRejectsUnknownType(t *testing.T) {
	client := &fakeClient{result: domain.BillingResult{ResponseCode: domain.ResponseOK}}
	_, router := newTestServer(t, client)

	req := httptest.NewRequest(http.MethodGet, "/v1/purchases?type=consumable", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if client.purchasesCalls != 0 {
		t.Fatal("expected no client call for unknown product type")
	}
}

func TestQueryPurchasesHandlerEmptyList(t *testing.T) {
	client := &fakeClient{result: domain.BillingResult{ResponseCode: domain.ResponseOK}}
	_, router := newTestServer(t, client)

	req := httptest.NewRequest(http.MethodGet, "/v1/purchases?type=subs", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if client.lastType != domain.ProductTypeSubs {
		t.Fatalf("expected subs query, got %s", client.lastType)
	}
	if !strings.Contains(resp.Body.String(), `"purchasesJsonList":[]`) {
		t.Fatalf("expected empty purchase list, got %s", resp.Body.String())
	}
}

func TestQueryPurchasesHandlerUnknownStateIsInternal(t *testing.T) {
	client := &fakeClient{
		result: domain.BillingResult{ResponseCode: domain.ResponseOK},
		purchases: []domain.Purchase{
			{
				State:         domain.PurchaseState(7),
				PurchaseToken: "tok123",
				Products:      []string{"sku_a"},
			},
		},
	}
	_, router := newTestServer(t, client)

	req := httptest.NewRequest(http.MethodGet, "/v1/purchases?type=inapp", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// An enum the translators do not recognize came out of the client,
	// not the caller. That is never a 400.
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"type":"internal_error"`) {
		t.Fatalf("expected internal_error payload, got %s", resp.Body.String())
	}
}

func TestQueryPurchaseHistoryHandler(t *testing.T) {
	client := &fakeClient{
		result: domain.BillingResult{ResponseCode: domain.ResponseOK},
		history: []domain.PurchaseHistoryRecord{
			{
				PurchaseTime:  1700000000000,
				PurchaseToken: "tok123",
				Signature:     "sig",
				Products:      []string{"sku_a"},
				OriginalJSON:  "{}",
				Quantity:      1,
			},
		},
	}
	_, router := newTestServer(t, client)

	req := httptest.NewRequest(http.MethodGet, "/v1/purchase-history?type=inapp", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	list, ok := payload["purchaseHistoryRecordJsonList"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("expected one history record, got %v", payload["purchaseHistoryRecordJsonList"])
	}
	record := list[0].(map[string]any)
	if record["purchaseToken"] != "tok123" {
		t.Fatalf("expected purchaseToken key, got %v", record)
	}
}

func TestGetBillingConfigHandler(t *testing.T) {
	client := &fakeClient{result: domain.BillingResult{ResponseCode: domain.ResponseOK}}
	_, router := newTestServer(t, client)

	req := httptest.NewRequest(http.MethodGet, "/v1/billing-config", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"countryCode":"US"`) {
		t.Fatalf("expected countryCode in body, got %s", resp.Body.String())
	}
}

func TestCreateAlternativeBillingReportingDetailsHandler(t *testing.T) {
	client := &fakeClient{result: domain.BillingResult{ResponseCode: domain.ResponseOK}}
	_, router := newTestServer(t, client)

	req := httptest.NewRequest(http.MethodPost, "/v1/alternative-billing/reporting-details", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"externalTransactionToken":"ext-token"`) {
		t.Fatalf("expected externalTransactionToken in body, got %s", resp.Body.String())
	}
}

func TestGetCurrencySymbolHandler(t *testing.T) {
	client := &fakeClient{result: domain.BillingResult{ResponseCode: domain.ResponseOK}}
	_, router := newTestServer(t, client)

	req := httptest.NewRequest(http.MethodGet, "/v1/currency-symbol?code=USD", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"symbol":"$"`) {
		t.Fatalf("expected dollar symbol, got %s", resp.Body.String())
	}
}

func TestGetCurrencySymbolHandlerRejectsBadCodes(t *testing.T) {
	client := &fakeClient{result: domain.BillingResult{ResponseCode: domain.ResponseOK}}
	_, router := newTestServer(t, client)

	for _, code := range []string{"", "XXX", "NOPE"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/currency-symbol?code="+code, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("code %q: expected status 400, got %d", code, resp.Code)
		}
	}
}
