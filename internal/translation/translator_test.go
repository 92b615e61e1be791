package translation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanguinaInc/playbridge/internal/billing/domain"
	"github.com/SanguinaInc/playbridge/internal/translation/wire"
)

func oneTimeProduct() domain.Product {
	return domain.Product{
		ProductID:   "sku_gems",
		Title:       "Bag of Gems",
		Description: "100 gems",
		Name:        "Bag of Gems",
		Type:        domain.ProductTypeInApp,
		OneTimeOffer: &domain.OneTimePurchaseOffer{
			PriceAmountMicros: 990000,
			PriceCurrencyCode: "USD",
			FormattedPrice:    "$0.99",
		},
	}
}

func subscriptionProduct() domain.Product {
	offerID := "intro"
	return domain.Product{
		ProductID:   "sku_premium",
		Title:       "Premium",
		Description: "Premium subscription",
		Name:        "Premium",
		Type:        domain.ProductTypeSubs,
		SubscriptionOffers: []domain.SubscriptionOffer{
			{
				OfferID:    &offerID,
				BasePlanID: "monthly",
				OfferTags:  []string{"intro"},
				OfferToken: "offer-token-1",
				PricingPhases: []domain.PricingPhase{
					{
						FormattedPrice:    "Free",
						PriceCurrencyCode: "USD",
						PriceAmountMicros: 0,
						BillingCycleCount: 1,
						BillingPeriod:     "P7D",
						RecurrenceMode:    domain.RecurrenceFinite,
					},
					{
						FormattedPrice:    "$4.99",
						PriceCurrencyCode: "USD",
						PriceAmountMicros: 4990000,
						BillingCycleCount: 0,
						BillingPeriod:     "P1M",
						RecurrenceMode:    domain.RecurrenceInfinite,
					},
				},
			},
		},
	}
}

func TestFromProductOneTimeOmitsSubscriptionDetails(t *testing.T) {
	info, err := FromProduct(oneTimeProduct())
	require.NoError(t, err)

	assert.True(t, info.Has("oneTimePurchaseOfferDetails"))
	assert.False(t, info.Has("subscriptionOfferDetails"))

	offer, ok := info.Get("oneTimePurchaseOfferDetails")
	require.True(t, ok)
	micros, ok := offer.Map().Get("priceAmountMicros")
	require.True(t, ok)
	assert.Equal(t, wire.KindInt, micros.Kind())
	assert.Equal(t, int64(990000), micros.Int())
}

func TestFromProductSubscriptionOmitsOneTimeDetails(t *testing.T) {
	info, err := FromProduct(subscriptionProduct())
	require.NoError(t, err)

	assert.False(t, info.Has("oneTimePurchaseOfferDetails"))
	assert.True(t, info.Has("subscriptionOfferDetails"))

	productType, ok := info.Get("productType")
	require.True(t, ok)
	assert.Equal(t, "subs", productType.Str())
}

func TestProductTypeRoundTrip(t *testing.T) {
	for _, productType := range []domain.ProductType{domain.ProductTypeInApp, domain.ProductTypeSubs} {
		s, err := ProductTypeString(productType)
		require.NoError(t, err)

		back, err := ProductTypeFromString(s)
		require.NoError(t, err)
		assert.Equal(t, productType, back)
	}
}

func TestFromProductIdempotent(t *testing.T) {
	first, err := FromProduct(subscriptionProduct())
	require.NoError(t, err)
	second, err := FromProduct(subscriptionProduct())
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestPricingPhaseOrderPreserved(t *testing.T) {
	info, err := FromProduct(subscriptionProduct())
	require.NoError(t, err)

	offers, ok := info.Get("subscriptionOfferDetails")
	require.True(t, ok)
	require.Len(t, offers.List(), 1)

	phases, ok := offers.List()[0].Map().Get("pricingPhases")
	require.True(t, ok)
	require.Len(t, phases.List(), 2)

	trial := phases.List()[0].Map()
	full := phases.List()[1].Map()

	trialMicros, _ := trial.Get("priceAmountMicros")
	assert.Equal(t, int64(0), trialMicros.Int())
	trialPeriod, _ := trial.Get("billingPeriod")
	assert.Equal(t, "P7D", trialPeriod.Str())

	fullMicros, _ := full.Get("priceAmountMicros")
	assert.Equal(t, int64(4990000), fullMicros.Int())
	fullPeriod, _ := full.Get("billingPeriod")
	assert.Equal(t, "P1M", fullPeriod.Str())
}

func TestEmptyPricingPhasesTranslateToEmptyList(t *testing.T) {
	// Empty and absent phase lists both mean "no pricing phases".
	forNil, err := FromPricingPhases(nil)
	require.NoError(t, err)
	forEmpty, err := FromPricingPhases([]domain.PricingPhase{})
	require.NoError(t, err)

	assert.Equal(t, wire.KindList, forNil.Kind())
	assert.Empty(t, forNil.List())
	assert.True(t, forNil.Equal(forEmpty))
}

func TestUnknownRecurrenceModeFails(t *testing.T) {
	_, err := FromPricingPhase(domain.PricingPhase{RecurrenceMode: domain.RecurrenceMode(99)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEnumVariant))

	var enumErr *UnknownEnumError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, "RecurrenceMode", enumErr.Enum)
}

func TestNilPurchaseListTranslatesToEmptyList(t *testing.T) {
	out, err := FromPurchases(nil)
	require.NoError(t, err)
	assert.Equal(t, wire.KindList, out.Kind())
	assert.NotNil(t, out.List())
	assert.Empty(t, out.List())
}

func TestUnknownPurchaseStateFails(t *testing.T) {
	_, err := FromPurchase(domain.Purchase{State: domain.PurchaseState(7)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEnumVariant))
}

func TestFromPurchaseEndToEnd(t *testing.T) {
	info, err := FromPurchase(domain.Purchase{
		OrderID:        "GPA.001",
		PackageName:    "com.sanguina.app",
		PurchaseTime:   1714000000000,
		PurchaseToken:  "tok123",
		Signature:      "sig",
		Products:       []string{"sku_a"},
		IsAutoRenewing: false,
		OriginalJSON:   `{"orderId":"GPA.001"}`,
		IsAcknowledged: false,
		State:          domain.PurchaseStatePurchased,
		Quantity:       1,
	})
	require.NoError(t, err)

	orderID, _ := info.Get("orderId")
	assert.Equal(t, "GPA.001", orderID.Str())
	token, _ := info.Get("purchaseToken")
	assert.Equal(t, "tok123", token.Str())
	products, _ := info.Get("products")
	require.Len(t, products.List(), 1)
	assert.Equal(t, "sku_a", products.List()[0].Str())
	acknowledged, _ := info.Get("isAcknowledged")
	assert.False(t, acknowledged.Bool())
	state, _ := info.Get("purchaseState")
	assert.Equal(t, int64(domain.PurchaseStatePurchased), state.Int())
	quantity, _ := info.Get("quantity")
	assert.Equal(t, int64(1), quantity.Int())

	// Absent account identifiers become absent keys, not nulls.
	assert.False(t, info.Has("obfuscatedAccountId"))
	assert.False(t, info.Has("obfuscatedProfileId"))
	// Absent developer payload likewise.
	assert.False(t, info.Has("developerPayload"))
}

func TestFromPurchaseWithAccountIdentifiers(t *testing.T) {
	payload := "payload"
	info, err := FromPurchase(domain.Purchase{
		OrderID:          "GPA.002",
		State:            domain.PurchaseStatePending,
		DeveloperPayload: &payload,
		AccountIdentifiers: &domain.AccountIdentifiers{
			ObfuscatedAccountID: "acct",
			ObfuscatedProfileID: "prof",
		},
	})
	require.NoError(t, err)

	account, ok := info.Get("obfuscatedAccountId")
	require.True(t, ok)
	assert.Equal(t, "acct", account.Str())
	profile, ok := info.Get("obfuscatedProfileId")
	require.True(t, ok)
	assert.Equal(t, "prof", profile.Str())
	developerPayload, ok := info.Get("developerPayload")
	require.True(t, ok)
	assert.Equal(t, "payload", developerPayload.Str())
}

func TestSubscriptionOfferWithoutOfferID(t *testing.T) {
	serialized, err := FromSubscriptionOffer(domain.SubscriptionOffer{
		BasePlanID: "monthly",
		OfferToken: "base-token",
	})
	require.NoError(t, err)

	assert.False(t, serialized.Has("offerId"))
	basePlan, _ := serialized.Get("basePlanId")
	assert.Equal(t, "monthly", basePlan.Str())
	token, _ := serialized.Get("offerIdToken")
	assert.Equal(t, "base-token", token.Str())
}

func TestFromPurchaseHistoryRecord(t *testing.T) {
	info := FromPurchaseHistoryRecord(domain.PurchaseHistoryRecord{
		PurchaseTime:  1714000000000,
		PurchaseToken: "tok456",
		Signature:     "sig",
		Products:      []string{"sku_a", "sku_b"},
		OriginalJSON:  "{}",
		Quantity:      2,
	})

	assert.Equal(t, []string{
		"purchaseTime", "purchaseToken", "signature", "products", "originalJson", "quantity",
	}, info.Keys())
	products, _ := info.Get("products")
	require.Len(t, products.List(), 2)
	assert.Equal(t, "sku_a", products.List()[0].Str())
	assert.Equal(t, "sku_b", products.List()[1].Str())
}

func TestFromProductsBatchFailureCarriesIndex(t *testing.T) {
	good := oneTimeProduct()
	bad := oneTimeProduct()
	bad.Type = domain.ProductType("unknown")

	_, err := FromProducts([]domain.Product{good, bad})
	require.Error(t, err)

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 1, batchErr.Index)
	assert.True(t, errors.Is(err, ErrUnknownEnumVariant))
}

func TestFromUserChoiceDetails(t *testing.T) {
	info := FromUserChoiceDetails(domain.UserChoiceDetails{
		ExternalTransactionToken:      "ext-tok",
		OriginalExternalTransactionID: "orig-id",
		Products: []domain.UserChoiceProduct{
			{ID: "sku_a", OfferToken: "offer", Type: "subs"},
		},
	})

	token, _ := info.Get("externalTransactionToken")
	assert.Equal(t, "ext-tok", token.Str())
	originalID, _ := info.Get("originalExternalTransactionId")
	assert.Equal(t, "orig-id", originalID.Str())

	products, _ := info.Get("products")
	require.Len(t, products.List(), 1)
	chosen := products.List()[0].Map()
	id, _ := chosen.Get("id")
	assert.Equal(t, "sku_a", id.Str())
	offerToken, _ := chosen.Get("offerToken")
	assert.Equal(t, "offer", offerToken.Str())
	productType, _ := chosen.Get("productType")
	assert.Equal(t, "subs", productType.Str())
}
