package translation

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownEnumVariant  = errors.New("unknown_enum_variant")
	ErrUnknownProductType  = errors.New("unknown_product_type")
	ErrMissingCurrencyCode = errors.New("missing_currency_code")
	ErrInvalidCurrencyCode = errors.New("invalid_currency_code")
)

// UnknownEnumError reports a native enum value with no wire counterpart,
// or a wire value with no native counterpart. It is a contract violation
// and is never mapped to a default.
type UnknownEnumError struct {
	Enum  string
	Value any
}

func (e *UnknownEnumError) Error() string {
	return fmt.Sprintf("unknown %s variant: %v", e.Enum, e.Value)
}

func (e *UnknownEnumError) Unwrap() error { return ErrUnknownEnumVariant }

// UnknownProductTypeError reports a product-type selector outside the
// closed {inapp, subs} set.
type UnknownProductTypeError struct {
	Value string
}

func (e *UnknownProductTypeError) Error() string {
	return fmt.Sprintf("unknown product type: %q", e.Value)
}

func (e *UnknownProductTypeError) Unwrap() error { return ErrUnknownProductType }

// InvalidCurrencyCodeError reports a currency code that is not a
// recognized ISO 4217 code.
type InvalidCurrencyCodeError struct {
	Code string
}

func (e *InvalidCurrencyCodeError) Error() string {
	return fmt.Sprintf("invalid currency code: %q", e.Code)
}

func (e *InvalidCurrencyCodeError) Unwrap() error { return ErrInvalidCurrencyCode }

// BatchError rejects a whole batch translation, carrying the index and
// underlying error of the first element that failed.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch translation failed at index %d: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
