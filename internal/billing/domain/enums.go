package domain

// ProductType distinguishes one-time products from subscriptions. The
// values match the storefront's wire strings.
type ProductType string

const (
	ProductTypeInApp ProductType = "inapp"
	ProductTypeSubs  ProductType = "subs"
)

// RecurrenceMode describes how a pricing phase repeats. Values match the
// storefront's numeric codes.
type RecurrenceMode int32

const (
	RecurrenceInfinite RecurrenceMode = 1
	RecurrenceFinite   RecurrenceMode = 2
	RecurrenceNone     RecurrenceMode = 3
)

// PurchaseState is the settlement state of a purchase. Values match the
// storefront's numeric codes.
type PurchaseState int32

const (
	PurchaseStateUnspecified PurchaseState = 0
	PurchaseStatePurchased   PurchaseState = 1
	PurchaseStatePending     PurchaseState = 2
)

// Response codes shared by every BillingResult.
const (
	ResponseServiceTimeout      int32 = -3
	ResponseFeatureNotSupported int32 = -2
	ResponseServiceDisconnected int32 = -1
	ResponseOK                  int32 = 0
	ResponseUserCanceled        int32 = 1
	ResponseServiceUnavailable  int32 = 2
	ResponseBillingUnavailable  int32 = 3
	ResponseItemUnavailable     int32 = 4
	ResponseDeveloperError      int32 = 5
	ResponseError               int32 = 6
	ResponseItemAlreadyOwned    int32 = 7
	ResponseItemNotOwned        int32 = 8
	ResponseNetworkError        int32 = 12
)
