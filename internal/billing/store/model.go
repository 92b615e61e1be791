package store

import (
	"time"

	"gorm.io/datatypes"
)

// CatalogProduct is a persisted catalog entry. Offer details are stored as
// JSON documents so one schema covers both one-time and subscription rows.
type CatalogProduct struct {
	ID                 int64          `gorm:"primaryKey"`
	ProductID          string         `gorm:"type:text;not null;index:ux_catalog_products_sku,unique,priority:1"`
	ProductType        string         `gorm:"type:text;not null;index:ux_catalog_products_sku,unique,priority:2"`
	Title              string         `gorm:"type:text;not null"`
	Description        string         `gorm:"type:text;not null"`
	Name               string         `gorm:"type:text;not null"`
	OneTimeOffer       datatypes.JSON `gorm:"type:jsonb"`
	SubscriptionOffers datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt          time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (CatalogProduct) TableName() string { return "catalog_products" }

// PurchaseRecord is a row in the purchase ledger. Active rows surface in
// purchase queries; every row surfaces in purchase history.
type PurchaseRecord struct {
	ID                  int64          `gorm:"primaryKey"`
	OrderID             string         `gorm:"type:text;not null"`
	PackageName         string         `gorm:"type:text;not null"`
	ProductType         string         `gorm:"type:text;not null;index"`
	PurchaseTime        int64          `gorm:"not null"`
	PurchaseToken       string         `gorm:"type:text;not null;uniqueIndex"`
	Signature           string         `gorm:"type:text;not null"`
	Products            datatypes.JSON `gorm:"type:jsonb"`
	IsAutoRenewing      bool           `gorm:"not null;default:false"`
	OriginalJSON        string         `gorm:"type:text;not null"`
	DeveloperPayload    *string        `gorm:"type:text"`
	IsAcknowledged      bool           `gorm:"not null;default:false"`
	State               int32          `gorm:"not null;default:0"`
	Quantity            int32          `gorm:"not null;default:1"`
	ObfuscatedAccountID *string        `gorm:"type:text"`
	ObfuscatedProfileID *string        `gorm:"type:text"`
	Active              bool           `gorm:"not null;default:true;index"`
	CreatedAt           time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt           time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PurchaseRecord) TableName() string { return "purchases" }
