package seed

import (
	"context"
	"errors"

	"github.com/SanguinaInc/playbridge/internal/billing/domain"
	"github.com/SanguinaInc/playbridge/internal/billing/store"
	"github.com/SanguinaInc/playbridge/internal/config"
	"go.uber.org/zap"
)

// EnsureCatalog seeds the development catalog so a fresh instance answers
// product queries without manual setup. No-op unless SEED_CATALOG is set.
func EnsureCatalog(cfg config.Config, s *store.Store, log *zap.Logger) error {
	if !cfg.SeedCatalog {
		return nil
	}
	if s == nil {
		return errors.New("seed store handle is required")
	}

	ctx := context.Background()
	for _, product := range catalogFixtures() {
		if err := s.UpsertProduct(ctx, product); err != nil {
			return err
		}
	}

	log.Info("development catalog seeded", zap.Int("products", len(catalogFixtures())))
	return nil
}

func catalogFixtures() []domain.Product {
	introID := "intro-offer"
	return []domain.Product{
		{
			ProductID:   "premium_upgrade",
			Title:       "Premium Upgrade",
			Description: "Removes ads and unlocks all levels",
			Name:        "Premium",
			Type:        domain.ProductTypeInApp,
			OneTimeOffer: &domain.OneTimePurchaseOffer{
				PriceAmountMicros: 4990000,
				PriceCurrencyCode: "USD",
				FormattedPrice:    "$4.99",
			},
		},
		{
			ProductID:   "coin_pack_100",
			Title:       "100 Coins",
			Description: "A pack of 100 coins",
			Name:        "Coin Pack",
			Type:        domain.ProductTypeInApp,
			OneTimeOffer: &domain.OneTimePurchaseOffer{
				PriceAmountMicros: 990000,
				PriceCurrencyCode: "USD",
				FormattedPrice:    "$0.99",
			},
		},
		{
			ProductID:   "gold_monthly",
			Title:       "Gold Subscription",
			Description: "Monthly gold tier with all benefits",
			Name:        "Gold",
			Type:        domain.ProductTypeSubs,
			SubscriptionOffers: []domain.SubscriptionOffer{
				{
					OfferID:    &introID,
					BasePlanID: "gold-monthly",
					OfferTags:  []string{"intro"},
					OfferToken: "offer-token-gold-intro",
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
							FormattedPrice:    "$9.99",
							PriceCurrencyCode: "USD",
							PriceAmountMicros: 9990000,
							BillingCycleCount: 0,
							BillingPeriod:     "P1M",
							RecurrenceMode:    domain.RecurrenceInfinite,
						},
					},
				},
				{
					BasePlanID: "gold-monthly",
					OfferTags:  []string{},
					OfferToken: "offer-token-gold-base",
					PricingPhases: []domain.PricingPhase{
						{
							FormattedPrice:    "$9.99",
							PriceCurrencyCode: "USD",
							PriceAmountMicros: 9990000,
							BillingCycleCount: 0,
							BillingPeriod:     "P1M",
							RecurrenceMode:    domain.RecurrenceInfinite,
						},
					},
				},
			},
		},
	}
}
