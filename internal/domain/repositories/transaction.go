package repositories

import (
	"context"

	"github.com/lernhub/checkout-recon/internal/domain/models"
)

const (
	SerializationError   = "40001"
	UniqueViolationError = "23505"
)

type TransactionRepository interface {
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	GetByPageRequestUID(ctx context.Context, uid string) (*models.Transaction, error)
	GetByLegacyUID(ctx context.Context, uid string) (*models.Transaction, error)
	// MarkCompletedIfPending is the client-side fallback write used when
	// the redirect carries proof of completion but the webhook has not
	// landed yet. The update is conditional on payment_status = 'pending'
	// so a terminal status written by the server is never clobbered.
	// Reports whether a row was updated.
	MarkCompletedIfPending(ctx context.Context, id, confirmationToken string) (bool, error)
}
