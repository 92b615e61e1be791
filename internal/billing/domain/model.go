package domain

// Product is a storefront catalog entry as the native billing client
// returns it. Optional substructures are pointers or nil slices; the
// translator turns absence into absent wire keys.
type Product struct {
	ProductID   string
	Title       string
	Description string
	Name        string
	Type        ProductType

	OneTimeOffer       *OneTimePurchaseOffer
	SubscriptionOffers []SubscriptionOffer
}

// OneTimePurchaseOffer prices a one-time product. Amounts are micro-units
// of the currency (1,000,000 micros = 1 unit) and stay 64-bit integers
// end to end.
type OneTimePurchaseOffer struct {
	PriceAmountMicros int64
	PriceCurrencyCode string
	FormattedPrice    string
}

// SubscriptionOffer is one purchasable offer on a subscription base plan.
// Phase order is contractual (a trial phase precedes the full-price phase)
// and must survive translation untouched.
type SubscriptionOffer struct {
	OfferID       *string
	BasePlanID    string
	OfferTags     []string
	OfferToken    string
	PricingPhases []PricingPhase
}

// PricingPhase is one segment of a subscription price schedule.
type PricingPhase struct {
	FormattedPrice    string
	PriceCurrencyCode string
	PriceAmountMicros int64
	BillingCycleCount int32
	BillingPeriod     string
	RecurrenceMode    RecurrenceMode
}

// AccountIdentifiers carries the obfuscated account/profile pair attached
// to a purchase when the caller supplied one at purchase time.
type AccountIdentifiers struct {
	ObfuscatedAccountID string
	ObfuscatedProfileID string
}

// Purchase is a settled or pending storefront purchase.
type Purchase struct {
	OrderID            string
	PackageName        string
	PurchaseTime       int64
	PurchaseToken      string
	Signature          string
	Products           []string
	IsAutoRenewing     bool
	OriginalJSON       string
	DeveloperPayload   *string
	IsAcknowledged     bool
	State              PurchaseState
	Quantity           int32
	AccountIdentifiers *AccountIdentifiers
}

// PurchaseHistoryRecord is the history view of a purchase, without state
// or account metadata.
type PurchaseHistoryRecord struct {
	PurchaseTime     int64
	PurchaseToken    string
	Signature        string
	Products         []string
	DeveloperPayload *string
	OriginalJSON     string
	Quantity         int32
}

// BillingResult is the outcome envelope every native call returns.
type BillingResult struct {
	ResponseCode int32
	DebugMessage string
}

// BillingConfig describes the billing session.
type BillingConfig struct {
	CountryCode string
}

// AlternativeBillingOnlyReportingDetails carries the token reported to the
// backend when an out-of-band billing flow completes.
type AlternativeBillingOnlyReportingDetails struct {
	ExternalTransactionToken string
}

// UserChoiceDetails reports a user-choice billing selection.
type UserChoiceDetails struct {
	ExternalTransactionToken      string
	OriginalExternalTransactionID string
	Products                      []UserChoiceProduct
}

// UserChoiceProduct is one product covered by a user-choice selection.
// Type stays the raw storefront string; the selection is reported, not
// re-validated.
type UserChoiceProduct struct {
	ID         string
	OfferToken string
	Type       string
}

// ProductQuery is the native query parameter the client requires when
// looking up product details.
type ProductQuery struct {
	ProductID string
	Type      ProductType
}
