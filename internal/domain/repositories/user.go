package repositories

import (
	"context"

	"github.com/lernhub/checkout-recon/internal/domain/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}
