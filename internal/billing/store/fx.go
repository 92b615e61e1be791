package store

import (
	"github.com/SanguinaInc/playbridge/internal/billing/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("billing.store",
	fx.Provide(
		New,
		func(s *Store) domain.Client { return s },
	),
	fx.Invoke(Migrate),
)

// Migrate keeps the catalog and ledger schema current.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CatalogProduct{}, &PurchaseRecord{})
}
