package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// BridgeConfig holds the storefront-facing settings that operators tune
// without redeploying: the display locale used for currency symbol lookup
// and the country code reported in the billing config.
type BridgeConfig struct {
	DisplayLocale string `mapstructure:"displayLocale"`
	CountryCode   string `mapstructure:"countryCode"`
}

func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{
		DisplayLocale: "en-US",
		CountryCode:   "US",
	}
}

// BridgeConfigHolder serves the current bridge config and hot-reloads it
// when the backing file changes.
type BridgeConfigHolder struct {
	current atomic.Value // holds BridgeConfig
}

func NewBridgeConfigHolder() (*BridgeConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("bridge")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/playbridge/config") // Volume-mounted config
	v.AddConfigPath("/etc/playbridge")            // System config
	v.AddConfigPath(".")                          // Current directory (dev mode)

	v.SetEnvPrefix("PLAYBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultBridgeConfig()
		v.SetDefault("bridge.displayLocale", defaults.DisplayLocale)
		v.SetDefault("bridge.countryCode", defaults.CountryCode)
	}

	var cfg BridgeConfig
	if err := v.UnmarshalKey("bridge", &cfg); err != nil {
		return nil, err
	}
	if err := validateBridgeConfig(cfg); err != nil {
		return nil, err
	}

	holder := &BridgeConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated BridgeConfig
		if err := v.UnmarshalKey("bridge", &updated); err != nil {
			log.Printf("[bridge-config] reload failed: %v", err)
			return
		}
		if err := validateBridgeConfig(updated); err != nil {
			log.Printf("[bridge-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[bridge-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *BridgeConfigHolder) Get() BridgeConfig {
	return h.current.Load().(BridgeConfig)
}

func validateBridgeConfig(cfg BridgeConfig) error {
	if strings.TrimSpace(cfg.DisplayLocale) == "" {
		return errors.New("bridge.displayLocale cannot be empty")
	}
	if len(strings.TrimSpace(cfg.CountryCode)) != 2 {
		return errors.New("bridge.countryCode must be a two-letter ISO 3166-1 code")
	}
	return nil
}
