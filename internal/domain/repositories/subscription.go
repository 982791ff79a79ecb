package repositories

import (
	"context"

	"github.com/lernhub/checkout-recon/internal/domain/models"
)

type SubscriptionRepository interface {
	GetByID(ctx context.Context, id string) (*models.Subscription, error)
}
