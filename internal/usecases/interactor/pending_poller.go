package interactor

import (
	"context"
	"sync"
	"time"

	"github.com/lernhub/checkout-recon/internal/domain/gateway"
	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/domain/repositories"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
	"github.com/lernhub/checkout-recon/internal/usecases/dtos"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
)

// PendingPollerInteractor re-checks the transactions the client currently
// believes are pending, reconciles drift against the gateway and reverts
// abandoned payment attempts. One Execute call is one tick; scheduling
// lives in internal/app.
type PendingPollerInteractor struct {
	transactions repositories.TransactionRepository
	purchases    repositories.PurchaseRepository
	gateway      gateway.Client
	registry     repositories.PendingRegistry
	resolver     *ResolveInteractor
	checkTimeout time.Duration

	mu          sync.Mutex
	subscribers map[int]chan models.StatusUpdate
	nextSubID   int

	logger *zerolog.Logger
}

func NewPendingPollerInteractor(
	transactions repositories.TransactionRepository,
	purchases repositories.PurchaseRepository,
	gw gateway.Client,
	registry repositories.PendingRegistry,
	resolver *ResolveInteractor,
	checkTimeout time.Duration,
) *PendingPollerInteractor {
	l := log.GetLogger()
	return &PendingPollerInteractor{
		transactions: transactions,
		purchases:    purchases,
		gateway:      gw,
		registry:     registry,
		resolver:     resolver,
		checkTimeout: checkTimeout,
		subscribers:  make(map[int]chan models.StatusUpdate),
		logger:       &l,
	}
}

// Subscribe registers a listener for status updates. The returned cancel
// function must be called exactly once; after it returns no further
// events are delivered on the channel.
func (p *PendingPollerInteractor) Subscribe() (<-chan models.StatusUpdate, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSubID
	p.nextSubID++
	ch := make(chan models.StatusUpdate, 8)
	p.subscribers[id] = ch

	return ch, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if existing, ok := p.subscribers[id]; ok {
			delete(p.subscribers, id)
			close(existing)
		}
	}
}

// Execute runs one polling tick over the registry.
func (p *PendingPollerInteractor) Execute(ctx context.Context) error {
	ids, err := p.registry.List(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg(apperrors.ErrFailedPendingPoll)
		return err
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.checkOne(ctx, id)
	}

	if len(ids) > 0 {
		p.logger.Info().Int("checked", len(ids)).Msg("pending poll tick finished")
	}
	return nil
}

func (p *PendingPollerInteractor) checkOne(ctx context.Context, transactionID string) {
	cctx, cancel := context.WithTimeout(ctx, p.checkTimeout)
	defer cancel()

	txn, err := p.transactions.GetByID(cctx, transactionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			p.remove(ctx, transactionID)
		}
		// A timed-out or failed check is "no update", never a terminal
		// status. The next tick retries.
		return
	}

	if txn.PaymentStatus.Terminal() {
		// The webhook landed since we tracked this transaction.
		count, serr := p.purchases.SettlePendingByTransaction(cctx, txn.ID, txn.PaymentStatus)
		if serr != nil {
			p.logger.Error().Err(serr).Str("transaction_id", txn.ID).Msg("failed to settle purchases")
		}
		p.remove(ctx, txn.ID)
		p.emit(ctx, models.StatusUpdate{
			Type:          models.UpdateContinuePolling,
			TransactionID: txn.ID,
			NewStatus:     txn.PaymentStatus,
			Count:         int(count),
		})
		p.reresolve(ctx, txn)
		return
	}

	st, err := p.gateway.PollTransactionStatus(cctx, txn.ID)
	if err == nil && st.Status.Terminal() {
		if st.Status == models.PaymentStatusCompleted && st.Confirmed {
			if _, werr := p.transactions.MarkCompletedIfPending(cctx, txn.ID, txn.ConfirmationToken); werr != nil {
				p.logger.Error().Err(werr).Str("transaction_id", txn.ID).Msg("fallback completion write failed")
			}
		}
		count, serr := p.purchases.SettlePendingByTransaction(cctx, txn.ID, st.Status)
		if serr != nil {
			p.logger.Error().Err(serr).Str("transaction_id", txn.ID).Msg("failed to settle purchases")
		}
		p.remove(ctx, txn.ID)
		p.emit(ctx, models.StatusUpdate{
			Type:          models.UpdateContinuePolling,
			TransactionID: txn.ID,
			NewStatus:     st.Status,
			Count:         int(count),
		})
		p.reresolve(ctx, txn)
		return
	}

	if txn.PageRequestUID == "" {
		return
	}
	abandoned, err := p.gateway.CheckPageAbandoned(cctx, txn.PageRequestUID)
	if err != nil || !abandoned {
		return
	}

	// The payment page expired without completing: the speculative
	// pending purchases are safe to revert, and the consumer should send
	// the user back to checkout instead of a dead end.
	count, serr := p.purchases.RevertAbandoned(cctx, txn.ID)
	if serr != nil {
		p.logger.Error().Err(serr).Str("transaction_id", txn.ID).Msg("failed to revert abandoned purchases")
		return
	}
	p.remove(ctx, txn.ID)
	p.emit(ctx, models.StatusUpdate{
		Type:          models.UpdateRevertedToCart,
		TransactionID: txn.ID,
		NewStatus:     models.PaymentStatusCancelled,
		Count:         int(count),
	})
}

// reresolve triggers a fresh full resolution pass instead of patching
// state in place, so a drift never produces a partially updated view.
func (p *PendingPollerInteractor) reresolve(ctx context.Context, txn *models.Transaction) {
	if ctx.Err() != nil {
		return
	}
	params := dtos.RedirectParams{
		OrderID:           TransactionIDPrefix + txn.ID,
		ConfirmationToken: txn.ConfirmationToken,
	}
	if _, err := p.resolver.Resolve(ctx, "", params); err != nil {
		p.logger.Warn().Err(err).Str("transaction_id", txn.ID).Msg("re-resolution after poll failed")
	}
}

func (p *PendingPollerInteractor) remove(ctx context.Context, transactionID string) {
	if err := p.registry.Remove(ctx, transactionID); err != nil {
		p.logger.Warn().Err(err).Str("transaction_id", transactionID).Msg("failed to untrack transaction")
	}
}

// emit delivers an update to all subscribers. A check that finishes after
// the poller's context was cancelled is discarded, never applied.
func (p *PendingPollerInteractor) emit(ctx context.Context, update models.StatusUpdate) {
	if ctx.Err() != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subscribers {
		select {
		case ch <- update:
		default:
			// Slow consumer; drop rather than stall the tick.
		}
	}
}
