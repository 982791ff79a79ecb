package repositories

import (
	"context"

	"github.com/lernhub/checkout-recon/internal/domain/models"
)

type PurchaseRepository interface {
	GetByID(ctx context.Context, id string) (*models.Purchase, error)
	ListByTransactionID(ctx context.Context, transactionID string) ([]models.Purchase, error)
	ListByProductID(ctx context.Context, productID string) ([]models.Purchase, error)
	ListByUser(ctx context.Context, userID string) ([]models.Purchase, error)
	Insert(ctx context.Context, purchase *models.Purchase) error
	// MarkPendingByTransaction is the safeguard write applied when a
	// completion race is suspected: it pins the transaction's purchases
	// to 'pending' so concurrent cleanup cannot prune them mid-flight.
	MarkPendingByTransaction(ctx context.Context, transactionID string) (int64, error)
	// SettlePendingByTransaction moves purchases still in 'pending' to the
	// given terminal status. Purchases already settled are left alone.
	SettlePendingByTransaction(ctx context.Context, transactionID string, status models.PaymentStatus) (int64, error)
	// RevertAbandoned cancels the pending purchases of a transaction whose
	// payment page expired without ever being completed.
	RevertAbandoned(ctx context.Context, transactionID string) (int64, error)
}
