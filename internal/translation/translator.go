// Package translation converts native billing client objects to and from
// the flat wire maps the remote caller exchanges with the bridge. Every
// function is pure: no shared state, no I/O, and either a complete wire
// object or an error, never a partial best-effort result.
package translation

import (
	"github.com/SanguinaInc/playbridge/internal/billing/domain"
	"github.com/SanguinaInc/playbridge/internal/translation/wire"
)

// The wire key names below are a compatibility contract with the remote
// caller and must not be renamed without a versioned protocol change.

// ProductTypeString maps a native product type to its wire string. The
// table is exhaustive; an unmapped value is a translation failure.
func ProductTypeString(t domain.ProductType) (string, error) {
	switch t {
	case domain.ProductTypeInApp:
		return "inapp", nil
	case domain.ProductTypeSubs:
		return "subs", nil
	default:
		return "", &UnknownEnumError{Enum: "ProductType", Value: t}
	}
}

// ProductTypeFromString is the inverse of ProductTypeString.
func ProductTypeFromString(s string) (domain.ProductType, error) {
	switch s {
	case "inapp":
		return domain.ProductTypeInApp, nil
	case "subs":
		return domain.ProductTypeSubs, nil
	default:
		return "", &UnknownProductTypeError{Value: s}
	}
}

func recurrenceModeCode(mode domain.RecurrenceMode) (int64, error) {
	switch mode {
	case domain.RecurrenceInfinite, domain.RecurrenceFinite, domain.RecurrenceNone:
		return int64(mode), nil
	default:
		return 0, &UnknownEnumError{Enum: "RecurrenceMode", Value: mode}
	}
}

func purchaseStateCode(state domain.PurchaseState) (int64, error) {
	switch state {
	case domain.PurchaseStateUnspecified, domain.PurchaseStatePurchased, domain.PurchaseStatePending:
		return int64(state), nil
	default:
		return 0, &UnknownEnumError{Enum: "PurchaseState", Value: state}
	}
}

// FromProduct translates one catalog product. Absent optional
// substructures become absent keys, not null values.
func FromProduct(p domain.Product) (*wire.Map, error) {
	productType, err := ProductTypeString(p.Type)
	if err != nil {
		return nil, err
	}

	info := wire.NewMap()
	info.Set("title", wire.String(p.Title))
	info.Set("description", wire.String(p.Description))
	info.Set("productId", wire.String(p.ProductID))
	info.Set("productType", wire.String(productType))
	info.Set("name", wire.String(p.Name))

	if p.OneTimeOffer != nil {
		info.Set("oneTimePurchaseOfferDetails", wire.FromMap(FromOneTimePurchaseOffer(*p.OneTimeOffer)))
	}

	if p.SubscriptionOffers != nil {
		offers, err := FromSubscriptionOffers(p.SubscriptionOffers)
		if err != nil {
			return nil, err
		}
		info.Set("subscriptionOfferDetails", offers)
	}

	return info, nil
}

// FromProducts translates a product list. A nil list translates to an
// empty wire list so callers never distinguish "none" from "missing".
func FromProducts(products []domain.Product) (wire.Value, error) {
	out := make([]wire.Value, 0, len(products))
	for i, p := range products {
		info, err := FromProduct(p)
		if err != nil {
			return wire.Value{}, &BatchError{Index: i, Err: err}
		}
		out = append(out, wire.FromMap(info))
	}
	return wire.List(out), nil
}

// FromOneTimePurchaseOffer translates one-time pricing. The micro-unit
// amount stays a 64-bit integer.
func FromOneTimePurchaseOffer(offer domain.OneTimePurchaseOffer) *wire.Map {
	serialized := wire.NewMap()
	serialized.Set("priceAmountMicros", wire.Int(offer.PriceAmountMicros))
	serialized.Set("priceCurrencyCode", wire.String(offer.PriceCurrencyCode))
	serialized.Set("formattedPrice", wire.String(offer.FormattedPrice))
	return serialized
}

// FromSubscriptionOffer translates one subscription offer. A nil offer id
// becomes an absent key.
func FromSubscriptionOffer(offer domain.SubscriptionOffer) (*wire.Map, error) {
	serialized := wire.NewMap()
	if offer.OfferID != nil {
		serialized.Set("offerId", wire.String(*offer.OfferID))
	}
	serialized.Set("basePlanId", wire.String(offer.BasePlanID))
	serialized.Set("offerTags", wire.Strings(offer.OfferTags))
	serialized.Set("offerIdToken", wire.String(offer.OfferToken))

	phases, err := FromPricingPhases(offer.PricingPhases)
	if err != nil {
		return nil, err
	}
	serialized.Set("pricingPhases", phases)

	return serialized, nil
}

func FromSubscriptionOffers(offers []domain.SubscriptionOffer) (wire.Value, error) {
	out := make([]wire.Value, 0, len(offers))
	for i, offer := range offers {
		serialized, err := FromSubscriptionOffer(offer)
		if err != nil {
			return wire.Value{}, &BatchError{Index: i, Err: err}
		}
		out = append(out, wire.FromMap(serialized))
	}
	return wire.List(out), nil
}

// FromPricingPhases translates a phase sequence in order. Empty and nil
// both yield an empty wire list.
func FromPricingPhases(phases []domain.PricingPhase) (wire.Value, error) {
	out := make([]wire.Value, 0, len(phases))
	for i, phase := range phases {
		serialized, err := FromPricingPhase(phase)
		if err != nil {
			return wire.Value{}, &BatchError{Index: i, Err: err}
		}
		out = append(out, wire.FromMap(serialized))
	}
	return wire.List(out), nil
}

func FromPricingPhase(phase domain.PricingPhase) (*wire.Map, error) {
	mode, err := recurrenceModeCode(phase.RecurrenceMode)
	if err != nil {
		return nil, err
	}

	serialized := wire.NewMap()
	serialized.Set("formattedPrice", wire.String(phase.FormattedPrice))
	serialized.Set("priceCurrencyCode", wire.String(phase.PriceCurrencyCode))
	serialized.Set("priceAmountMicros", wire.Int(phase.PriceAmountMicros))
	serialized.Set("billingCycleCount", wire.Int(int64(phase.BillingCycleCount)))
	serialized.Set("billingPeriod", wire.String(phase.BillingPeriod))
	serialized.Set("recurrenceMode", wire.Int(mode))
	return serialized, nil
}

// FromPurchase translates a purchase. Account identifiers are omitted
// entirely when absent; wire consumers test key presence.
func FromPurchase(p domain.Purchase) (*wire.Map, error) {
	state, err := purchaseStateCode(p.State)
	if err != nil {
		return nil, err
	}

	info := wire.NewMap()
	info.Set("orderId", wire.String(p.OrderID))
	info.Set("packageName", wire.String(p.PackageName))
	info.Set("purchaseTime", wire.Int(p.PurchaseTime))
	info.Set("purchaseToken", wire.String(p.PurchaseToken))
	info.Set("signature", wire.String(p.Signature))
	info.Set("products", wire.Strings(p.Products))
	info.Set("isAutoRenewing", wire.Bool(p.IsAutoRenewing))
	info.Set("originalJson", wire.String(p.OriginalJSON))
	if p.DeveloperPayload != nil {
		info.Set("developerPayload", wire.String(*p.DeveloperPayload))
	}
	info.Set("isAcknowledged", wire.Bool(p.IsAcknowledged))
	info.Set("purchaseState", wire.Int(state))
	info.Set("quantity", wire.Int(int64(p.Quantity)))

	if p.AccountIdentifiers != nil {
		info.Set("obfuscatedAccountId", wire.String(p.AccountIdentifiers.ObfuscatedAccountID))
		info.Set("obfuscatedProfileId", wire.String(p.AccountIdentifiers.ObfuscatedProfileID))
	}

	return info, nil
}

func FromPurchases(purchases []domain.Purchase) (wire.Value, error) {
	out := make([]wire.Value, 0, len(purchases))
	for i, p := range purchases {
		info, err := FromPurchase(p)
		if err != nil {
			return wire.Value{}, &BatchError{Index: i, Err: err}
		}
		out = append(out, wire.FromMap(info))
	}
	return wire.List(out), nil
}

func FromPurchaseHistoryRecord(record domain.PurchaseHistoryRecord) *wire.Map {
	info := wire.NewMap()
	info.Set("purchaseTime", wire.Int(record.PurchaseTime))
	info.Set("purchaseToken", wire.String(record.PurchaseToken))
	info.Set("signature", wire.String(record.Signature))
	info.Set("products", wire.Strings(record.Products))
	if record.DeveloperPayload != nil {
		info.Set("developerPayload", wire.String(*record.DeveloperPayload))
	}
	info.Set("originalJson", wire.String(record.OriginalJSON))
	info.Set("quantity", wire.Int(int64(record.Quantity)))
	return info
}

func FromPurchaseHistoryRecords(records []domain.PurchaseHistoryRecord) wire.Value {
	out := make([]wire.Value, 0, len(records))
	for _, record := range records {
		out = append(out, wire.FromMap(FromPurchaseHistoryRecord(record)))
	}
	return wire.List(out)
}

// FromUserChoiceDetails translates a user-choice billing selection.
func FromUserChoiceDetails(details domain.UserChoiceDetails) *wire.Map {
	info := wire.NewMap()
	info.Set("externalTransactionToken", wire.String(details.ExternalTransactionToken))
	info.Set("originalExternalTransactionId", wire.String(details.OriginalExternalTransactionID))
	info.Set("products", FromUserChoiceProducts(details.Products))
	return info
}

func FromUserChoiceProducts(products []domain.UserChoiceProduct) wire.Value {
	out := make([]wire.Value, 0, len(products))
	for _, p := range products {
		out = append(out, wire.FromMap(FromUserChoiceProduct(p)))
	}
	return wire.List(out)
}

func FromUserChoiceProduct(p domain.UserChoiceProduct) *wire.Map {
	info := wire.NewMap()
	info.Set("id", wire.String(p.ID))
	info.Set("offerToken", wire.String(p.OfferToken))
	info.Set("productType", wire.String(p.Type))
	return info
}
