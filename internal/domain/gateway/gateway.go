package gateway

import (
	"context"

	"github.com/lernhub/checkout-recon/internal/domain/models"
)

// TransactionStatus is the gateway's answer to a status poll. Confirmed
// means the gateway holds settlement evidence, not just an optimistic
// redirect.
type TransactionStatus struct {
	Status    models.PaymentStatus
	Confirmed bool
}

// Client talks to the payment gateway's status API. All calls are
// read-only; the gateway owns its own records.
type Client interface {
	PollTransactionStatus(ctx context.Context, transactionID string) (*TransactionStatus, error)
	// CheckPageAbandoned reports whether the hosted payment page itself
	// expired or was never completed, independent of transaction status.
	CheckPageAbandoned(ctx context.Context, pageRequestUID string) (bool, error)
}
