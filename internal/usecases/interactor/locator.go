package interactor

import (
	"context"
	"strings"

	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/domain/repositories"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
	"github.com/lernhub/checkout-recon/internal/usecases/dtos"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
)

// TransactionIDPrefix tags externally visible transaction ids so a legacy
// `order` parameter can be told apart from a bare purchase id.
const TransactionIDPrefix = "txn_"

// LocatedTransaction is the Locator's result. Transaction is nil when no
// lookup strategy matched; RaceSuspected marks the case where the user
// returned with proof of completion before the webhook recorded it.
type LocatedTransaction struct {
	Transaction   *models.Transaction
	RaceSuspected bool
}

type TransactionLocator struct {
	transactions repositories.TransactionRepository
	purchases    repositories.PurchaseRepository
	logger       *zerolog.Logger
}

func NewTransactionLocator(transactions repositories.TransactionRepository, purchases repositories.PurchaseRepository) *TransactionLocator {
	l := log.GetLogger()
	return &TransactionLocator{
		transactions: transactions,
		purchases:    purchases,
		logger:       &l,
	}
}

// Locate resolves the parsed redirect parameters into one transaction,
// trying strategies in priority order. First match wins; a miss falls
// through to the next strategy. A fully missed lookup is not an error —
// the reconciler decides what a nil transaction means.
func (l *TransactionLocator) Locate(ctx context.Context, params dtos.RedirectParams) (*LocatedTransaction, error) {
	if params.PageRequestUID != "" {
		txn, err := l.transactions.GetByPageRequestUID(ctx, params.PageRequestUID)
		if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
		if txn != nil {
			// The race window only exists on the gateway's own return
			// path: the user is back with a token the webhook may not
			// have processed yet.
			return l.located(txn, params, true), nil
		}
	}

	if params.OrderID != "" {
		if txn, err := l.locateByOrderID(ctx, params.OrderID); err != nil {
			return nil, err
		} else if txn != nil {
			return l.located(txn, params, false), nil
		}
	}

	l.logger.Debug().
		Str("page_request_uid", params.PageRequestUID).
		Str("order", params.OrderID).
		Msg("no transaction matched redirect parameters")
	return &LocatedTransaction{}, nil
}

func (l *TransactionLocator) locateByOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	if strings.HasPrefix(orderID, TransactionIDPrefix) {
		txn, err := l.transactions.GetByID(ctx, strings.TrimPrefix(orderID, TransactionIDPrefix))
		if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
		if txn != nil {
			return txn, nil
		}
	}

	purchase, err := l.purchases.GetByID(ctx, orderID)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	if purchase != nil && purchase.TransactionID != "" {
		txn, err := l.transactions.GetByID(ctx, purchase.TransactionID)
		if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
		if txn != nil {
			return txn, nil
		}
	}

	txn, err := l.transactions.GetByLegacyUID(ctx, orderID)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	return txn, nil
}

func (l *TransactionLocator) located(txn *models.Transaction, params dtos.RedirectParams, viaPageRequest bool) *LocatedTransaction {
	race := viaPageRequest && txn.PaymentStatus == models.PaymentStatusPending && params.ConfirmationToken != ""
	if race {
		l.logger.Info().
			Str("transaction_id", txn.ID).
			Msg("redirect carries confirmation token but transaction is still pending")
	}
	return &LocatedTransaction{Transaction: txn, RaceSuspected: race}
}
