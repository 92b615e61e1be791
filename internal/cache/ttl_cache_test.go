package cache

import (
	"testing"
	"time"
)

func TestTTLCacheExpiresEntries(t *testing.T) {
	c := NewTTLCache[string, string]()

	c.Set("USD|en-US", "$", 50*time.Millisecond)
	if v, ok := c.Get("USD|en-US"); !ok || v != "$" {
		t.Fatalf("expected fresh entry, got %q ok=%v", v, ok)
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok := c.Get("USD|en-US"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestSymbolCacheNormalizesCode(t *testing.T) {
	c := NewSymbolCache()
	c.Set("usd", "en-US", "$")

	if v, ok := c.Get("USD", "en-US"); !ok || v != "$" {
		t.Fatalf("expected cached symbol for normalized code, got %q ok=%v", v, ok)
	}
	if _, ok := c.Get("USD", "de-DE"); ok {
		t.Fatal("expected locale to partition the cache")
	}
}
