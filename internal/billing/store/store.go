package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SanguinaInc/playbridge/internal/billing/domain"
	"github.com/SanguinaInc/playbridge/internal/clock"
	"github.com/SanguinaInc/playbridge/internal/config"
	"github.com/SanguinaInc/playbridge/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Bridge *config.BridgeConfigHolder
	Clock  clock.Clock
}

// Store backs the billing client boundary with the local catalog and
// purchase ledger.
type Store struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	bridge *config.BridgeConfigHolder
	clock  clock.Clock
}

func New(p Params) *Store {
	return &Store{
		db:     p.DB,
		log:    p.Log.Named("billing.store"),
		genID:  p.GenID,
		bridge: p.Bridge,
		clock:  p.Clock,
	}
}

func validProductType(t domain.ProductType) bool {
	switch t {
	case domain.ProductTypeInApp, domain.ProductTypeSubs:
		return true
	default:
		return false
	}
}

func (s *Store) QueryProductDetails(ctx context.Context, queries []domain.ProductQuery) (domain.BillingResult, []domain.Product, error) {
	for _, q := range queries {
		if strings.TrimSpace(q.ProductID) == "" {
			return domain.BillingResult{}, nil, domain.ErrInvalidProductID
		}
		if !validProductType(q.Type) {
			return domain.BillingResult{}, nil, domain.ErrInvalidProductType
		}
	}

	products := make([]domain.Product, 0, len(queries))
	for _, q := range queries {
		var row CatalogProduct
		err := s.db.WithContext(ctx).
			Where("product_id = ? AND product_type = ?", q.ProductID, string(q.Type)).
			First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return domain.BillingResult{}, nil, err
		}

		product, err := toDomainProduct(row)
		if err != nil {
			return domain.BillingResult{}, nil, err
		}
		products = append(products, product)
	}

	if len(products) == 0 && len(queries) > 0 {
		return domain.BillingResult{
			ResponseCode: domain.ResponseItemUnavailable,
			DebugMessage: "no matching products",
		}, products, nil
	}

	return domain.BillingResult{ResponseCode: domain.ResponseOK}, products, nil
}

func (s *Store) QueryPurchases(ctx context.Context, productType domain.ProductType) (domain.BillingResult, []domain.Purchase, error) {
	if !validProductType(productType) {
		return domain.BillingResult{}, nil, domain.ErrInvalidProductType
	}

	var rows []PurchaseRecord
	err := s.db.WithContext(ctx).
		Where("product_type = ? AND active = ?", string(productType), true).
		Order("purchase_time ASC").
		Find(&rows).Error
	if err != nil {
		return domain.BillingResult{}, nil, err
	}

	purchases := make([]domain.Purchase, 0, len(rows))
	for _, row := range rows {
		purchase, err := toDomainPurchase(row)
		if err != nil {
			return domain.BillingResult{}, nil, err
		}
		purchases = append(purchases, purchase)
	}

	return domain.BillingResult{ResponseCode: domain.ResponseOK}, purchases, nil
}

func (s *Store) QueryPurchaseHistory(ctx context.Context, productType domain.ProductType) (domain.BillingResult, []domain.PurchaseHistoryRecord, error) {
	if !validProductType(productType) {
		return domain.BillingResult{}, nil, domain.ErrInvalidProductType
	}

	var rows []PurchaseRecord
	err := s.db.WithContext(ctx).
		Where("product_type = ?", string(productType)).
		Order("purchase_time DESC").
		Find(&rows).Error
	if err != nil {
		return domain.BillingResult{}, nil, err
	}

	records := make([]domain.PurchaseHistoryRecord, 0, len(rows))
	for _, row := range rows {
		products, err := decodeProducts(row.Products)
		if err != nil {
			return domain.BillingResult{}, nil, err
		}
		records = append(records, domain.PurchaseHistoryRecord{
			PurchaseTime:     row.PurchaseTime,
			PurchaseToken:    row.PurchaseToken,
			Signature:        row.Signature,
			Products:         products,
			DeveloperPayload: row.DeveloperPayload,
			OriginalJSON:     row.OriginalJSON,
			Quantity:         row.Quantity,
		})
	}

	return domain.BillingResult{ResponseCode: domain.ResponseOK}, records, nil
}

func (s *Store) GetBillingConfig(ctx context.Context) (domain.BillingResult, *domain.BillingConfig, error) {
	country := domain.BillingConfig{CountryCode: s.bridge.Get().CountryCode}
	return domain.BillingResult{ResponseCode: domain.ResponseOK}, &country, nil
}

func (s *Store) CreateAlternativeBillingOnlyReportingDetails(ctx context.Context) (domain.BillingResult, *domain.AlternativeBillingOnlyReportingDetails, error) {
	details := domain.AlternativeBillingOnlyReportingDetails{
		ExternalTransactionToken: uuid.NewString(),
	}
	return domain.BillingResult{ResponseCode: domain.ResponseOK}, &details, nil
}

// RecordPurchase inserts a new ledger row for a settled or pending purchase.
// The order id and token are generated here so callers never invent them.
func (s *Store) RecordPurchase(ctx context.Context, productType domain.ProductType, purchase domain.Purchase) (domain.Purchase, error) {
	if !validProductType(productType) {
		return domain.Purchase{}, domain.ErrInvalidProductType
	}

	if purchase.OrderID == "" {
		purchase.OrderID = fmt.Sprintf("GPA.%s", s.genID.Generate().String())
	}
	if purchase.PurchaseToken == "" {
		purchase.PurchaseToken = uuid.NewString()
	}
	if purchase.PurchaseTime == 0 {
		purchase.PurchaseTime = s.clock.Now().UnixMilli()
	}

	row, err := toPurchaseRecord(productType, purchase)
	if err != nil {
		return domain.Purchase{}, err
	}
	row.ID = s.genID.Generate().Int64()

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Purchase{}, domain.ErrDuplicatePurchaseToken
		}
		return domain.Purchase{}, err
	}

	s.log.Info("purchase recorded",
		zap.String("order_id", purchase.OrderID),
		zap.String("product_type", string(productType)),
	)

	return purchase, nil
}

// UpsertProduct inserts or replaces a catalog entry.
func (s *Store) UpsertProduct(ctx context.Context, product domain.Product) error {
	if !validProductType(product.Type) {
		return domain.ErrInvalidProductType
	}
	if strings.TrimSpace(product.ProductID) == "" {
		return domain.ErrInvalidProductID
	}

	row, err := toCatalogRow(product)
	if err != nil {
		return err
	}

	var existing CatalogProduct
	err = s.db.WithContext(ctx).
		Where("product_id = ? AND product_type = ?", product.ProductID, string(product.Type)).
		First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row.ID = s.genID.Generate().Int64()
		return s.db.WithContext(ctx).Create(&row).Error
	case err != nil:
		return err
	default:
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		row.UpdatedAt = s.clock.Now()
		return s.db.WithContext(ctx).Save(&row).Error
	}
}

func toCatalogRow(product domain.Product) (CatalogProduct, error) {
	row := CatalogProduct{
		ProductID:   product.ProductID,
		ProductType: string(product.Type),
		Title:       product.Title,
		Description: product.Description,
		Name:        product.Name,
	}

	if product.OneTimeOffer != nil {
		raw, err := json.Marshal(product.OneTimeOffer)
		if err != nil {
			return CatalogProduct{}, err
		}
		row.OneTimeOffer = datatypes.JSON(raw)
	}
	if product.SubscriptionOffers != nil {
		raw, err := json.Marshal(product.SubscriptionOffers)
		if err != nil {
			return CatalogProduct{}, err
		}
		row.SubscriptionOffers = datatypes.JSON(raw)
	}

	return row, nil
}

func toDomainProduct(row CatalogProduct) (domain.Product, error) {
	product := domain.Product{
		ProductID:   row.ProductID,
		Title:       row.Title,
		Description: row.Description,
		Name:        row.Name,
		Type:        domain.ProductType(row.ProductType),
	}

	if len(row.OneTimeOffer) > 0 {
		var offer domain.OneTimePurchaseOffer
		if err := json.Unmarshal(row.OneTimeOffer, &offer); err != nil {
			return domain.Product{}, err
		}
		product.OneTimeOffer = &offer
	}
	if len(row.SubscriptionOffers) > 0 {
		var offers []domain.SubscriptionOffer
		if err := json.Unmarshal(row.SubscriptionOffers, &offers); err != nil {
			return domain.Product{}, err
		}
		product.SubscriptionOffers = offers
	}

	return product, nil
}

func toPurchaseRecord(productType domain.ProductType, purchase domain.Purchase) (PurchaseRecord, error) {
	rawProducts, err := json.Marshal(purchase.Products)
	if err != nil {
		return PurchaseRecord{}, err
	}

	row := PurchaseRecord{
		OrderID:          purchase.OrderID,
		PackageName:      purchase.PackageName,
		ProductType:      string(productType),
		PurchaseTime:     purchase.PurchaseTime,
		PurchaseToken:    purchase.PurchaseToken,
		Signature:        purchase.Signature,
		Products:         datatypes.JSON(rawProducts),
		IsAutoRenewing:   purchase.IsAutoRenewing,
		OriginalJSON:     purchase.OriginalJSON,
		DeveloperPayload: purchase.DeveloperPayload,
		IsAcknowledged:   purchase.IsAcknowledged,
		State:            int32(purchase.State),
		Quantity:         purchase.Quantity,
		Active:           true,
	}
	if purchase.AccountIdentifiers != nil {
		account := purchase.AccountIdentifiers.ObfuscatedAccountID
		profile := purchase.AccountIdentifiers.ObfuscatedProfileID
		row.ObfuscatedAccountID = &account
		row.ObfuscatedProfileID = &profile
	}

	return row, nil
}

func toDomainPurchase(row PurchaseRecord) (domain.Purchase, error) {
	products, err := decodeProducts(row.Products)
	if err != nil {
		return domain.Purchase{}, err
	}

	purchase := domain.Purchase{
		OrderID:          row.OrderID,
		PackageName:      row.PackageName,
		PurchaseTime:     row.PurchaseTime,
		PurchaseToken:    row.PurchaseToken,
		Signature:        row.Signature,
		Products:         products,
		IsAutoRenewing:   row.IsAutoRenewing,
		OriginalJSON:     row.OriginalJSON,
		DeveloperPayload: row.DeveloperPayload,
		IsAcknowledged:   row.IsAcknowledged,
		State:            domain.PurchaseState(row.State),
		Quantity:         row.Quantity,
	}
	if row.ObfuscatedAccountID != nil || row.ObfuscatedProfileID != nil {
		ids := domain.AccountIdentifiers{}
		if row.ObfuscatedAccountID != nil {
			ids.ObfuscatedAccountID = *row.ObfuscatedAccountID
		}
		if row.ObfuscatedProfileID != nil {
			ids.ObfuscatedProfileID = *row.ObfuscatedProfileID
		}
		purchase.AccountIdentifiers = &ids
	}

	return purchase, nil
}

func decodeProducts(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var products []string
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []string{}
	}
	return products, nil
}
