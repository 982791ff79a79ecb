package interactor

import (
	"context"

	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/domain/repositories"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
	"github.com/lernhub/checkout-recon/internal/usecases/dtos"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
)

// PurchaseSet is everything a transaction's outcome is presented from:
// the purchase records sharing its transaction id plus the catalog entity
// behind the first of them.
type PurchaseSet struct {
	Purchases    []models.Purchase
	Count        int
	MultiProduct bool
	Primary      *models.Purchase
	Entity       *models.PurchasableEntity
	ProductID    string
	Subscription *models.Subscription // set when the transaction is subscription-backed
}

type PurchaseSetResolver struct {
	purchases     repositories.PurchaseRepository
	catalog       repositories.CatalogRepository
	subscriptions repositories.SubscriptionRepository
	logger        *zerolog.Logger
}

func NewPurchaseSetResolver(purchases repositories.PurchaseRepository, catalog repositories.CatalogRepository, subscriptions repositories.SubscriptionRepository) *PurchaseSetResolver {
	l := log.GetLogger()
	return &PurchaseSetResolver{
		purchases:     purchases,
		catalog:       catalog,
		subscriptions: subscriptions,
		logger:        &l,
	}
}

// Resolve loads the purchase set for a located transaction, or by legacy
// product id when no transaction exists. Catalog misses degrade to a
// placeholder entity: the payment is a fact independent of whether the
// catalog row can be displayed.
func (r *PurchaseSetResolver) Resolve(ctx context.Context, txn *models.Transaction, params dtos.RedirectParams) (*PurchaseSet, error) {
	set := &PurchaseSet{}

	var purchases []models.Purchase
	var err error
	switch {
	case txn != nil:
		purchases, err = r.purchases.ListByTransactionID(ctx, txn.ID)
	case params.OrderID != "":
		purchases, err = r.purchases.ListByProductID(ctx, params.OrderID)
	}
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	set.Purchases = purchases
	set.Count = len(purchases)
	set.MultiProduct = set.Count > 1
	if set.Count > 0 {
		set.Primary = &purchases[0]
	}

	if txn != nil && txn.SubscriptionID() != "" {
		r.resolveSubscription(ctx, txn.SubscriptionID(), set)
		return set, nil
	}

	if set.Primary != nil {
		r.resolveEntity(ctx, set)
	} else if params.IsFree && params.OrderID != "" {
		// Free-item flow: no purchase exists yet, the order parameter is
		// the item itself (a game id, or a product wrapper id).
		r.resolveFreeEntity(ctx, params, set)
	}
	return set, nil
}

func (r *PurchaseSetResolver) resolveFreeEntity(ctx context.Context, params dtos.RedirectParams, set *PurchaseSet) {
	var entity *models.PurchasableEntity
	var err error
	if params.ItemTypeHint == dtos.ItemTypeGame {
		entity, err = r.catalog.FindEntity(ctx, models.PurchasableGame, params.OrderID)
	} else {
		entity, err = r.catalog.FindEntityByProduct(ctx, params.OrderID)
	}
	if err != nil {
		if !apperrors.IsNotFound(err) {
			r.logger.Error().Err(err).Str("order", params.OrderID).Msg("failed to resolve free item")
		}
		return
	}
	set.Entity = entity
	set.ProductID = entity.ProductID
}

func (r *PurchaseSetResolver) resolveEntity(ctx context.Context, set *PurchaseSet) {
	t := set.Primary.PurchasableType
	id := set.Primary.PurchasableID

	if _, ok := models.ValidPurchasableTypes[t]; !ok {
		r.logger.Warn().
			Str("purchasable_type", string(t)).
			Str("purchasable_id", id).
			Msg("unknown purchasable type, presenting placeholder")
		set.Entity = models.NewPlaceholderEntity(t, id)
		return
	}

	entity, err := r.catalog.FindEntity(ctx, t, id)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			r.logger.Error().Err(err).Msg(apperrors.ErrFailedLoadPurchases)
		}
		set.Entity = models.NewPlaceholderEntity(t, id)
		return
	}
	set.Entity = entity

	productID, err := r.catalog.FindProductByEntity(ctx, t, id)
	if err == nil {
		set.ProductID = productID
	}
}

func (r *PurchaseSetResolver) resolveSubscription(ctx context.Context, subscriptionID string, set *PurchaseSet) {
	sub, err := r.subscriptions.GetByID(ctx, subscriptionID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			r.logger.Error().Err(err).Str("subscription_id", subscriptionID).Msg("failed to load subscription")
		}
		set.Entity = models.NewPlaceholderEntity("subscription", subscriptionID)
		return
	}
	set.Subscription = sub
	set.Entity = &models.PurchasableEntity{
		Type:  "subscription",
		ID:    sub.ID,
		Title: sub.Plan.Title,
		Price: sub.Plan.Price,
	}
}
