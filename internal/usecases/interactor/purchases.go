package interactor

import (
	"context"

	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/domain/repositories"
)

type PurchaseInteractor struct {
	purchaseRepository repositories.PurchaseRepository
}

func NewPurchaseInteractor(Repository repositories.PurchaseRepository) *PurchaseInteractor {
	return &PurchaseInteractor{purchaseRepository: Repository}
}

func (p *PurchaseInteractor) ListForUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	purchases, err := p.purchaseRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if purchases == nil {
		purchases = []models.Purchase{}
	}
	return purchases, nil
}
