package cache

import (
	"strings"
	"time"
)

const defaultSymbolTTL = 10 * time.Minute

// SymbolCache stores resolved currency symbols per code and display locale.
// Symbol lookup walks CLDR data, so repeated lookups for the same storefront
// currency are worth short-circuiting.
type SymbolCache struct {
	symbols Cache[string, string]
	ttl     time.Duration
}

func NewSymbolCache() *SymbolCache {
	return &SymbolCache{
		symbols: NewTTLCache[string, string](),
		ttl:     defaultSymbolTTL,
	}
}

func (c *SymbolCache) Get(code, locale string) (string, bool) {
	return c.symbols.Get(symbolKey(code, locale))
}

func (c *SymbolCache) Set(code, locale, symbol string) {
	c.symbols.Set(symbolKey(code, locale), symbol, c.ttl)
}

func symbolKey(code, locale string) string {
	return strings.ToUpper(strings.TrimSpace(code)) + "|" + strings.TrimSpace(locale)
}
