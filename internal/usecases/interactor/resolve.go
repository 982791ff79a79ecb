package interactor

import (
	"context"
	"sync"

	"github.com/lernhub/checkout-recon/internal/domain/models"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
	"github.com/lernhub/checkout-recon/internal/usecases/dtos"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
)

// ResolveInteractor runs one full resolution pass:
// locate -> purchase set -> reconcile -> free grant. Passes against the
// same transaction serialize on a per-transaction lock so two concurrent
// passes never interleave partial writes; the last full pass wins.
type ResolveInteractor struct {
	locator    *TransactionLocator
	sets       *PurchaseSetResolver
	reconciler *StatusReconciler
	granter    *FreeAccessGranter
	locks      keyedLocks
	logger     *zerolog.Logger
}

func NewResolveInteractor(locator *TransactionLocator, sets *PurchaseSetResolver, reconciler *StatusReconciler, granter *FreeAccessGranter) *ResolveInteractor {
	l := log.GetLogger()
	return &ResolveInteractor{
		locator:    locator,
		sets:       sets,
		reconciler: reconciler,
		granter:    granter,
		logger:     &l,
	}
}

func (i *ResolveInteractor) Resolve(ctx context.Context, userID string, params dtos.RedirectParams) (*models.ResolvedOutcome, error) {
	located, err := i.locator.Locate(ctx, params)
	if err != nil {
		i.logger.Error().Err(err).Msg(apperrors.ErrFailedLocateTransaction)
		return i.degrade(params, err)
	}

	if located.Transaction != nil {
		unlock := i.locks.lock(located.Transaction.ID)
		defer unlock()
	}

	set, err := i.sets.Resolve(ctx, located.Transaction, params)
	if err != nil {
		i.logger.Error().Err(err).Msg(apperrors.ErrFailedLoadPurchases)
		return i.degrade(params, err)
	}

	status, note := i.reconciler.Reconcile(ctx, located, set, params)

	outcome := &models.ResolvedOutcome{
		Status:          status,
		IsMultiProduct:  set.MultiProduct,
		PurchaseCount:   set.Count,
		PrimaryPurchase: set.Primary,
		PrimaryEntity:   set.Entity,
		ProductID:       set.ProductID,
		Note:            note,
	}

	if outcome.Status == models.OutcomeSuccess && outcome.PrimaryEntity == nil {
		// The payment succeeded but nothing could be displayed for it;
		// show a placeholder rather than an error.
		t := models.PurchasableType("")
		if params.ItemTypeHint == dtos.ItemTypeGame {
			t = models.PurchasableGame
		}
		outcome.PrimaryEntity = models.NewPlaceholderEntity(t, params.OrderID)
		if outcome.Note == "" {
			outcome.Note = NoteStillSyncing
		}
	}

	if status == models.OutcomeSuccess {
		granted, err := i.granter.Grant(ctx, userID, set.Entity, set.Purchases)
		if err != nil {
			// The user still gets their success screen; the next pass
			// retries the grant.
			i.logger.Error().Err(err).Msg(apperrors.ErrFailedFreeGrant)
		} else if granted != nil && outcome.PrimaryPurchase == nil {
			outcome.PrimaryPurchase = granted
			outcome.PurchaseCount = 1
		}
	}

	return outcome, nil
}

// degrade turns an internal error into an outcome when the redirect
// itself is evidence of a successful payment. Telling a paying customer
// their payment failed because a lookup broke is the one mistake this
// subsystem refuses to make.
func (i *ResolveInteractor) degrade(params dtos.RedirectParams, err error) (*models.ResolvedOutcome, error) {
	if !params.HasPositiveEvidence() {
		return nil, err
	}
	t := models.PurchasableType("")
	if params.ItemTypeHint == dtos.ItemTypeGame {
		t = models.PurchasableGame
	}
	return &models.ResolvedOutcome{
		Status:        models.OutcomeSuccess,
		PrimaryEntity: models.NewPlaceholderEntity(t, params.OrderID),
		Note:          NoteStillSyncing,
	}, nil
}

// keyedLocks hands out one mutex per key, dropping entries when the last
// holder releases.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedLocks) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*lockEntry)
	}
	e, ok := k.locks[key]
	if !ok {
		e = &lockEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
