package translation

import (
	"github.com/SanguinaInc/playbridge/internal/billing/domain"
	"github.com/SanguinaInc/playbridge/internal/translation/wire"
)

// FromBillingResult translates the outcome envelope every native call
// carries.
func FromBillingResult(result domain.BillingResult) *wire.Map {
	info := wire.NewMap()
	info.Set("responseCode", wire.Int(int64(result.ResponseCode)))
	info.Set("debugMessage", wire.String(result.DebugMessage))
	return info
}

// FromBillingConfig wraps a billing-config call outcome. The detail is
// translated unconditionally; interpreting the response code is the
// caller's job.
func FromBillingConfig(result domain.BillingResult, cfg *domain.BillingConfig) *wire.Map {
	info := FromBillingResult(result)
	if cfg != nil {
		info.Set("countryCode", wire.String(cfg.CountryCode))
	}
	return info
}

// FromAlternativeBillingOnlyReportingDetails wraps an alternative-billing
// reporting call outcome.
func FromAlternativeBillingOnlyReportingDetails(result domain.BillingResult, details *domain.AlternativeBillingOnlyReportingDetails) *wire.Map {
	info := FromBillingResult(result)
	if details != nil {
		info.Set("externalTransactionToken", wire.String(details.ExternalTransactionToken))
	}
	return info
}
