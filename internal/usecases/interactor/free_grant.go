package interactor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/domain/repositories"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// FreeAccessGranter creates a completed purchase for a zero-price item
// without any gateway round-trip.
type FreeAccessGranter struct {
	purchases repositories.PurchaseRepository
	logger    *zerolog.Logger
}

func NewFreeAccessGranter(purchases repositories.PurchaseRepository) *FreeAccessGranter {
	l := log.GetLogger()
	return &FreeAccessGranter{purchases: purchases, logger: &l}
}

// Grant is idempotent: the existence check runs against the purchase set
// already resolved in this pass (not a fresh query, which could miss our
// own write), and a unique violation on insert is treated as the grant
// already existing. Returns nil without error when nothing applies.
func (g *FreeAccessGranter) Grant(ctx context.Context, userID string, entity *models.PurchasableEntity, existing []models.Purchase) (*models.Purchase, error) {
	if userID == "" || entity == nil || entity.Placeholder || !entity.Price.IsZero() {
		return nil, nil
	}

	for i := range existing {
		p := &existing[i]
		if p.PurchasableType == entity.Type && p.PurchasableID == entity.ID &&
			p.PaymentStatus == models.PaymentStatusCompleted {
			return p, nil
		}
	}

	purchase := &models.Purchase{
		ID:              uuid.New().String(),
		UserID:          userID,
		ProductID:       entity.ProductID,
		PurchasableType: entity.Type,
		PurchasableID:   entity.ID,
		PaymentStatus:   models.PaymentStatusCompleted,
		PaymentAmount:   decimal.Zero,
		AccessExpiresAt: nil, // lifetime access
		Metadata:        models.Metadata{models.MetaAutoGranted: "true"},
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := g.purchases.Insert(ctx, purchase); err != nil {
		var dup *apperrors.PurchaseDuplicateError
		if apperrors.As(err, &dup) {
			g.logger.Debug().
				Str("user_id", userID).
				Str("purchasable_id", entity.ID).
				Msg("free access already granted")
			return purchase, nil
		}
		return nil, err
	}

	g.logger.Info().
		Str("user_id", userID).
		Str("purchasable_type", string(entity.Type)).
		Str("purchasable_id", entity.ID).
		Msg("free access granted")
	return purchase, nil
}
