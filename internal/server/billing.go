package server

import (
	"net/http"
	"strings"

	"github.com/SanguinaInc/playbridge/internal/translation"
	"github.com/SanguinaInc/playbridge/internal/translation/wire"
	"github.com/gin-gonic/gin"
)

type queryProductDetailsRequest struct {
	Products []translation.ProductRequest `json:"products"`
}

func (s *Server) QueryProductDetails(c *gin.Context) {
	var req queryProductDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Products) == 0 {
		AbortWithError(c, newValidationError("products", "invalid_products", "products cannot be empty"))
		return
	}

	ctx := c.Request.Context()

	queries, err := translation.ToProductQueries(req.Products)
	if err != nil {
		s.obsMetrics.RecordTranslationFailure(ctx, "productQuery", "unknown_product_type")
		AbortWithError(c, err)
		return
	}

	result, products, err := s.client.QueryProductDetails(ctx, queries)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordClientCall(ctx, "queryProductDetails", result.ResponseCode)

	list, err := translation.FromProducts(products)
	if err != nil {
		s.obsMetrics.RecordTranslationFailure(ctx, "product", "unknown_enum_variant")
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordTranslation(ctx, "product", int64(len(products)))

	envelope := translation.FromBillingResult(result)
	envelope.Set("productDetailsJsonList", list)
	c.JSON(http.StatusOK, envelope)
}

func (s *Server) QueryPurchases(c *gin.Context) {
	productType, err := translation.ProductTypeFromString(strings.TrimSpace(c.Query("type")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()

	result, purchases, err := s.client.QueryPurchases(ctx, productType)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordClientCall(ctx, "queryPurchases", result.ResponseCode)

	list, err := translation.FromPurchases(purchases)
	if err != nil {
		s.obsMetrics.RecordTranslationFailure(ctx, "purchase", "unknown_enum_variant")
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordTranslation(ctx, "purchase", int64(len(purchases)))

	envelope := translation.FromBillingResult(result)
	envelope.Set("purchasesJsonList", list)
	c.JSON(http.StatusOK, envelope)
}

func (s *Server) QueryPurchaseHistory(c *gin.Context) {
	productType, err := translation.ProductTypeFromString(strings.TrimSpace(c.Query("type")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()

	result, records, err := s.client.QueryPurchaseHistory(ctx, productType)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordClientCall(ctx, "queryPurchaseHistory", result.ResponseCode)
	s.obsMetrics.RecordTranslation(ctx, "purchaseHistoryRecord", int64(len(records)))

	envelope := translation.FromBillingResult(result)
	envelope.Set("purchaseHistoryRecordJsonList", translation.FromPurchaseHistoryRecords(records))
	c.JSON(http.StatusOK, envelope)
}

func (s *Server) GetBillingConfig(c *gin.Context) {
	ctx := c.Request.Context()

	result, cfg, err := s.client.GetBillingConfig(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordClientCall(ctx, "getBillingConfig", result.ResponseCode)

	c.JSON(http.StatusOK, translation.FromBillingConfig(result, cfg))
}

func (s *Server) CreateAlternativeBillingOnlyReportingDetails(c *gin.Context) {
	ctx := c.Request.Context()

	result, details, err := s.client.CreateAlternativeBillingOnlyReportingDetails(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordClientCall(ctx, "createAlternativeBillingOnlyReportingDetails", result.ResponseCode)

	c.JSON(http.StatusOK, translation.FromAlternativeBillingOnlyReportingDetails(result, details))
}

func (s *Server) GetCurrencySymbol(c *gin.Context) {
	ctx := c.Request.Context()
	code := strings.TrimSpace(c.Query("code"))
	displayLocale := s.bridge.Get().DisplayLocale

	symbol, cached := s.symbolCache.Get(code, displayLocale)
	if !cached {
		var err error
		symbol, err = translation.CurrencySymbol(code, translation.ParseDisplayLocale(displayLocale))
		if err != nil {
			s.obsMetrics.RecordCurrencyLookup(ctx, "rejected")
			AbortWithError(c, err)
			return
		}
		s.symbolCache.Set(code, displayLocale, symbol)
	}
	s.obsMetrics.RecordCurrencyLookup(ctx, "ok")

	resp := wire.NewMap()
	resp.Set("code", wire.String(code))
	resp.Set("symbol", wire.String(symbol))
	c.JSON(http.StatusOK, resp)
}
