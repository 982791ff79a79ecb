package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/domain/repositories"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
)

type SubscriptionRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewSubscriptionRepositoryImpl(db *pgxpool.Pool) repositories.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db: db,
	}
}

const subscriptionQuery = `
SELECT s.id, s.user_id, s.status, s.plan_id, p.title, p.price
FROM subscriptions s
JOIN subscription_plans p ON p.id = s.plan_id
WHERE s.id = $1;`

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Subscription, error) {
	sub := &models.Subscription{}
	err := r.db.QueryRow(ctx, subscriptionQuery, id).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Status,
		&sub.PlanID,
		&sub.Plan.Title,
		&sub.Plan.Price,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("subscription")
		}
		return nil, err
	}
	sub.Plan.ID = sub.PlanID
	return sub, nil
}
