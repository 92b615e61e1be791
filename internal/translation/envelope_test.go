package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanguinaInc/playbridge/internal/billing/domain"
)

func TestFromBillingResult(t *testing.T) {
	info := FromBillingResult(domain.BillingResult{
		ResponseCode: domain.ResponseOK,
		DebugMessage: "ok",
	})

	assert.Equal(t, []string{"responseCode", "debugMessage"}, info.Keys())
	code, _ := info.Get("responseCode")
	assert.Equal(t, int64(0), code.Int())
	message, _ := info.Get("debugMessage")
	assert.Equal(t, "ok", message.Str())
}

func TestFromBillingConfigTranslatesUnconditionally(t *testing.T) {
	// The detail is translated even on a failed result; interpreting the
	// response code is the caller's job.
	info := FromBillingConfig(
		domain.BillingResult{ResponseCode: domain.ResponseServiceUnavailable, DebugMessage: "down"},
		&domain.BillingConfig{CountryCode: "US"},
	)

	code, _ := info.Get("responseCode")
	assert.Equal(t, int64(domain.ResponseServiceUnavailable), code.Int())
	country, ok := info.Get("countryCode")
	require.True(t, ok)
	assert.Equal(t, "US", country.Str())
}

func TestFromBillingConfigWithoutDetail(t *testing.T) {
	info := FromBillingConfig(domain.BillingResult{ResponseCode: domain.ResponseError}, nil)
	assert.False(t, info.Has("countryCode"))
	assert.True(t, info.Has("responseCode"))
}

func TestFromAlternativeBillingOnlyReportingDetails(t *testing.T) {
	info := FromAlternativeBillingOnlyReportingDetails(
		domain.BillingResult{ResponseCode: domain.ResponseOK},
		&domain.AlternativeBillingOnlyReportingDetails{ExternalTransactionToken: "ext-123"},
	)

	token, ok := info.Get("externalTransactionToken")
	require.True(t, ok)
	assert.Equal(t, "ext-123", token.Str())
}
