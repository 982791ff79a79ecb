package interactor

import (
	"context"

	"github.com/lernhub/checkout-recon/internal/domain/gateway"
	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/domain/repositories"
	"github.com/lernhub/checkout-recon/internal/usecases/dtos"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
)

// NoteStillSyncing marks an outcome that was declared a success on
// redirect evidence while the server record lags behind.
const NoteStillSyncing = "Payment confirmed. Purchase details are still syncing."

// StatusReconciler combines the redirect status, the server-recorded
// transaction status and gateway confirmation evidence into a single
// authoritative outcome.
type StatusReconciler struct {
	transactions repositories.TransactionRepository
	purchases    repositories.PurchaseRepository
	gateway      gateway.Client
	pending      repositories.PendingRegistry
	logger       *zerolog.Logger
}

func NewStatusReconciler(transactions repositories.TransactionRepository, purchases repositories.PurchaseRepository, gw gateway.Client, pending repositories.PendingRegistry) *StatusReconciler {
	l := log.GetLogger()
	return &StatusReconciler{
		transactions: transactions,
		purchases:    purchases,
		gateway:      gw,
		pending:      pending,
		logger:       &l,
	}
}

// Reconcile never returns an error: every internal failure is degraded
// according to the evidence at hand. Only an authoritative terminal
// failure or cancellation reaches the user as such.
func (r *StatusReconciler) Reconcile(ctx context.Context, located *LocatedTransaction, set *PurchaseSet, params dtos.RedirectParams) (models.OutcomeStatus, string) {
	txn := located.Transaction

	if txn == nil {
		return r.reconcileUnlocated(params)
	}

	if set.Subscription != nil {
		return outcomeFromSubscription(set.Subscription.Status, params.ConfirmationToken != ""), ""
	}

	if located.RaceSuspected {
		return r.reconcileRace(ctx, txn, params)
	}

	if txn.PaymentStatus.Terminal() {
		r.untrack(ctx, txn.ID)
		return outcomeFromPaymentStatus(txn.PaymentStatus), ""
	}

	// Recorded status is pending and no race to arbitrate: redirect proof
	// alone decides between optimistic success and an honest "pending".
	if params.ConfirmationToken != "" {
		return models.OutcomeSuccess, NoteStillSyncing
	}
	r.track(ctx, txn.ID)
	return models.OutcomePending, ""
}

// reconcileUnlocated handles a redirect that matched no transaction. A
// confirmation token wins optimistically; the poller will reconcile the
// grant later. A terminal raw status is trusted as the last resort.
func (r *StatusReconciler) reconcileUnlocated(params dtos.RedirectParams) (models.OutcomeStatus, string) {
	if params.ConfirmationToken != "" {
		return models.OutcomeSuccess, NoteStillSyncing
	}
	if status, ok := outcomeFromRawStatus(params.RawStatus); ok {
		note := ""
		if status == models.OutcomeSuccess {
			note = NoteStillSyncing
		}
		return status, note
	}
	return models.OutcomeUnknown, ""
}

// reconcileRace arbitrates the critical window: the user returned with a
// confirmation token while the server still records the transaction as
// pending. The purchases are pinned to 'pending' before anything else so
// no cleanup prunes them, then a single authoritative gateway poll
// decides.
func (r *StatusReconciler) reconcileRace(ctx context.Context, txn *models.Transaction, params dtos.RedirectParams) (models.OutcomeStatus, string) {
	if _, err := r.purchases.MarkPendingByTransaction(ctx, txn.ID); err != nil {
		r.logger.Error().Err(err).Str("transaction_id", txn.ID).Msg("failed to pin purchases to pending")
	}
	r.track(ctx, txn.ID)

	st, err := r.gateway.PollTransactionStatus(ctx, txn.ID)
	if err != nil {
		// No authoritative answer. The token is positive evidence, so the
		// user sees success and the poller finishes the reconciliation.
		r.logger.Warn().Err(err).Str("transaction_id", txn.ID).Msg("gateway poll failed during race arbitration")
		return models.OutcomeSuccess, NoteStillSyncing
	}

	switch st.Status {
	case models.PaymentStatusCompleted:
		r.applyCompleted(ctx, txn.ID, params.ConfirmationToken)
		return models.OutcomeSuccess, ""
	case models.PaymentStatusFailed, models.PaymentStatusCancelled:
		if _, err := r.purchases.SettlePendingByTransaction(ctx, txn.ID, st.Status); err != nil {
			r.logger.Error().Err(err).Str("transaction_id", txn.ID).Msg("failed to settle purchases")
		}
		r.untrack(ctx, txn.ID)
		return outcomeFromPaymentStatus(st.Status), ""
	default:
		// Still pending at the gateway too; token keeps the outcome
		// optimistic and the registry keeps the poller on it.
		return models.OutcomeSuccess, NoteStillSyncing
	}
}

// applyCompleted is the fallback client write: confirm the transaction
// and settle its purchases. Both writes are conditional on 'pending', so
// a webhook that lands concurrently is never overwritten.
func (r *StatusReconciler) applyCompleted(ctx context.Context, transactionID, confirmationToken string) {
	updated, err := r.transactions.MarkCompletedIfPending(ctx, transactionID, confirmationToken)
	if err != nil {
		r.logger.Error().Err(err).Str("transaction_id", transactionID).Msg("fallback completion write failed")
	} else if updated {
		r.logger.Info().Str("transaction_id", transactionID).Msg("transaction completed by client fallback before webhook")
	}
	if _, err := r.purchases.SettlePendingByTransaction(ctx, transactionID, models.PaymentStatusCompleted); err != nil {
		r.logger.Error().Err(err).Str("transaction_id", transactionID).Msg("failed to settle purchases")
	}
	r.untrack(ctx, transactionID)
}

func (r *StatusReconciler) track(ctx context.Context, transactionID string) {
	if err := r.pending.Track(ctx, transactionID); err != nil {
		r.logger.Warn().Err(err).Str("transaction_id", transactionID).Msg("failed to track pending transaction")
	}
}

func (r *StatusReconciler) untrack(ctx context.Context, transactionID string) {
	if err := r.pending.Remove(ctx, transactionID); err != nil {
		r.logger.Warn().Err(err).Str("transaction_id", transactionID).Msg("failed to untrack transaction")
	}
}

func outcomeFromPaymentStatus(s models.PaymentStatus) models.OutcomeStatus {
	switch s {
	case models.PaymentStatusCompleted:
		return models.OutcomeSuccess
	case models.PaymentStatusFailed:
		return models.OutcomeFailure
	case models.PaymentStatusCancelled:
		return models.OutcomeCancel
	case models.PaymentStatusPending:
		return models.OutcomePending
	default:
		return models.OutcomeUnknown
	}
}

func outcomeFromRawStatus(raw string) (models.OutcomeStatus, bool) {
	switch raw {
	case "success", "completed":
		return models.OutcomeSuccess, true
	case "failure", "failed":
		return models.OutcomeFailure, true
	case "cancel", "cancelled":
		return models.OutcomeCancel, true
	default:
		return models.OutcomeUnknown, false
	}
}

func outcomeFromSubscription(s models.SubscriptionStatus, tokenPresent bool) models.OutcomeStatus {
	switch s {
	case models.SubscriptionActive:
		return models.OutcomeSuccess
	case models.SubscriptionFailed:
		return models.OutcomeFailure
	case models.SubscriptionPending:
		if tokenPresent {
			return models.OutcomeSuccess
		}
		return models.OutcomePending
	default:
		return models.OutcomeUnknown
	}
}
