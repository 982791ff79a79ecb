package interactor

import (
	"context"
	"sync"
	"time"

	domaingw "github.com/lernhub/checkout-recon/internal/domain/gateway"
	"github.com/lernhub/checkout-recon/internal/domain/models"
	apperrors "github.com/lernhub/checkout-recon/internal/errors"
)

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*models.Transaction
	completed    []string
	err          error
}

func newFakeTransactionRepo(txns ...*models.Transaction) *fakeTransactionRepo {
	r := &fakeTransactionRepo{transactions: map[string]*models.Transaction{}}
	for _, t := range txns {
		r.transactions[t.ID] = t
	}
	return r
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if t, ok := r.transactions[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, apperrors.NewNotFoundError("transaction")
}

func (r *fakeTransactionRepo) GetByPageRequestUID(_ context.Context, uid string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, t := range r.transactions {
		if t.PageRequestUID == uid {
			c := *t
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("transaction")
}

func (r *fakeTransactionRepo) GetByLegacyUID(_ context.Context, uid string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, t := range r.transactions {
		if t.Metadata[models.MetaLegacyUID] == uid {
			c := *t
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("transaction")
}

func (r *fakeTransactionRepo) MarkCompletedIfPending(_ context.Context, id, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok || t.PaymentStatus != models.PaymentStatusPending {
		return false, nil
	}
	t.PaymentStatus = models.PaymentStatusCompleted
	if t.ConfirmationToken == "" {
		t.ConfirmationToken = token
	}
	r.completed = append(r.completed, id)
	return true, nil
}

type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases []*models.Purchase
	insertErr error
	pinned    []string
	settled   map[string]models.PaymentStatus
	reverted  []string
}

func newFakePurchaseRepo(purchases ...*models.Purchase) *fakePurchaseRepo {
	return &fakePurchaseRepo{
		purchases: purchases,
		settled:   map[string]models.PaymentStatus{},
	}
}

func (r *fakePurchaseRepo) GetByID(_ context.Context, id string) (*models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.purchases {
		if p.ID == id {
			c := *p
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("purchase")
}

func (r *fakePurchaseRepo) ListByTransactionID(_ context.Context, transactionID string) ([]models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Purchase
	for _, p := range r.purchases {
		if p.TransactionID == transactionID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) ListByProductID(_ context.Context, productID string) ([]models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Purchase
	for _, p := range r.purchases {
		if p.ProductID == productID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) ListByUser(_ context.Context, userID string) ([]models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Purchase
	for _, p := range r.purchases {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) Insert(_ context.Context, purchase *models.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, p := range r.purchases {
		if p.UserID == purchase.UserID &&
			p.PurchasableType == purchase.PurchasableType &&
			p.PurchasableID == purchase.PurchasableID &&
			p.AutoGranted() && purchase.AutoGranted() {
			return apperrors.NewPurchaseDuplicateError()
		}
	}
	c := *purchase
	r.purchases = append(r.purchases, &c)
	return nil
}

func (r *fakePurchaseRepo) MarkPendingByTransaction(_ context.Context, transactionID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pinned = append(r.pinned, transactionID)
	var n int64
	for _, p := range r.purchases {
		if p.TransactionID == transactionID && p.PaymentStatus != models.PaymentStatusCompleted {
			p.PaymentStatus = models.PaymentStatusPending
			n++
		}
	}
	return n, nil
}

func (r *fakePurchaseRepo) SettlePendingByTransaction(_ context.Context, transactionID string, status models.PaymentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settled[transactionID] = status
	var n int64
	for _, p := range r.purchases {
		if p.TransactionID == transactionID && p.PaymentStatus == models.PaymentStatusPending {
			p.PaymentStatus = status
			n++
		}
	}
	return n, nil
}

func (r *fakePurchaseRepo) RevertAbandoned(_ context.Context, transactionID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reverted = append(r.reverted, transactionID)
	var n int64
	for _, p := range r.purchases {
		if p.TransactionID == transactionID && p.PaymentStatus == models.PaymentStatusPending {
			p.PaymentStatus = models.PaymentStatusCancelled
			n++
		}
	}
	return n, nil
}

func (r *fakePurchaseRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.purchases)
}

type fakeCatalogRepo struct {
	entities   map[string]*models.PurchasableEntity // keyed type + "/" + id
	products   map[string]*models.PurchasableEntity // keyed product id
	productIDs map[string]string                    // keyed type + "/" + id
	err        error
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		entities:   map[string]*models.PurchasableEntity{},
		products:   map[string]*models.PurchasableEntity{},
		productIDs: map[string]string{},
	}
}

func (r *fakeCatalogRepo) add(entity *models.PurchasableEntity) {
	r.entities[string(entity.Type)+"/"+entity.ID] = entity
	if entity.ProductID != "" {
		r.products[entity.ProductID] = entity
		r.productIDs[string(entity.Type)+"/"+entity.ID] = entity.ProductID
	}
}

func (r *fakeCatalogRepo) FindEntity(_ context.Context, t models.PurchasableType, id string) (*models.PurchasableEntity, error) {
	if r.err != nil {
		return nil, r.err
	}
	if e, ok := r.entities[string(t)+"/"+id]; ok {
		c := *e
		return &c, nil
	}
	return nil, apperrors.NewNotFoundError(string(t))
}

func (r *fakeCatalogRepo) FindEntityByProduct(_ context.Context, productID string) (*models.PurchasableEntity, error) {
	if r.err != nil {
		return nil, r.err
	}
	if e, ok := r.products[productID]; ok {
		c := *e
		return &c, nil
	}
	return nil, apperrors.NewNotFoundError("product")
}

func (r *fakeCatalogRepo) FindProductByEntity(_ context.Context, t models.PurchasableType, id string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if productID, ok := r.productIDs[string(t)+"/"+id]; ok {
		return productID, nil
	}
	return "", apperrors.NewNotFoundError("product")
}

type fakeSubscriptionRepo struct {
	subscriptions map[string]*models.Subscription
}

func newFakeSubscriptionRepo(subs ...*models.Subscription) *fakeSubscriptionRepo {
	r := &fakeSubscriptionRepo{subscriptions: map[string]*models.Subscription{}}
	for _, s := range subs {
		r.subscriptions[s.ID] = s
	}
	return r
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id string) (*models.Subscription, error) {
	if s, ok := r.subscriptions[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, apperrors.NewNotFoundError("subscription")
}

type fakeGateway struct {
	mu        sync.Mutex
	status    *domaingw.TransactionStatus
	err       error
	abandoned map[string]bool
	pollCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{abandoned: map[string]bool{}}
}

func (g *fakeGateway) PollTransactionStatus(_ context.Context, _ string) (*domaingw.TransactionStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pollCalls++
	if g.err != nil {
		return nil, g.err
	}
	if g.status == nil {
		return &domaingw.TransactionStatus{Status: models.PaymentStatusPending}, nil
	}
	c := *g.status
	return &c, nil
}

func (g *fakeGateway) CheckPageAbandoned(_ context.Context, pageRequestUID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.abandoned[pageRequestUID], nil
}

func (g *fakeGateway) polls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pollCalls
}

type fakeRegistry struct {
	mu  sync.Mutex
	ids []string
}

func (r *fakeRegistry) Track(_ context.Context, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.ids {
		if id == transactionID {
			return nil
		}
	}
	r.ids = append(r.ids, transactionID)
	return nil
}

func (r *fakeRegistry) Remove(_ context.Context, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, id := range r.ids {
		if id == transactionID {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeRegistry) List(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out, nil
}

type testEnv struct {
	transactions *fakeTransactionRepo
	purchases    *fakePurchaseRepo
	catalog      *fakeCatalogRepo
	subs         *fakeSubscriptionRepo
	gateway      *fakeGateway
	registry     *fakeRegistry
	resolve      *ResolveInteractor
	poller       *PendingPollerInteractor
}

func newTestEnv() *testEnv {
	env := &testEnv{
		transactions: newFakeTransactionRepo(),
		purchases:    newFakePurchaseRepo(),
		catalog:      newFakeCatalogRepo(),
		subs:         newFakeSubscriptionRepo(),
		gateway:      newFakeGateway(),
		registry:     &fakeRegistry{},
	}

	locator := NewTransactionLocator(env.transactions, env.purchases)
	sets := NewPurchaseSetResolver(env.purchases, env.catalog, env.subs)
	reconciler := NewStatusReconciler(env.transactions, env.purchases, env.gateway, env.registry)
	granter := NewFreeAccessGranter(env.purchases)
	env.resolve = NewResolveInteractor(locator, sets, reconciler, granter)
	env.poller = NewPendingPollerInteractor(env.transactions, env.purchases, env.gateway, env.registry, env.resolve, 200*time.Millisecond)

	return env
}
