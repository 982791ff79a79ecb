package repositories

import (
	"context"

	"github.com/lernhub/checkout-recon/internal/domain/models"
)

// CatalogRepository is the narrow read-only view of the catalog this
// subsystem needs: the entity behind a purchase and the catalog-facing
// product wrapper used for "view product" navigation.
type CatalogRepository interface {
	FindEntity(ctx context.Context, t models.PurchasableType, id string) (*models.PurchasableEntity, error)
	FindEntityByProduct(ctx context.Context, productID string) (*models.PurchasableEntity, error)
	FindProductByEntity(ctx context.Context, t models.PurchasableType, id string) (string, error)
}
