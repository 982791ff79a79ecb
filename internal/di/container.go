package di

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	domaingw "github.com/lernhub/checkout-recon/internal/domain/gateway"
	domainrepos "github.com/lernhub/checkout-recon/internal/domain/repositories"
	"github.com/lernhub/checkout-recon/internal/infrastructure/api/handlers"
	"github.com/lernhub/checkout-recon/internal/infrastructure/database/repositories"
	"github.com/lernhub/checkout-recon/internal/usecases/interactor"
)

type Container struct {
	CheckoutHandler         *handlers.CheckoutHandler
	UpdatesHandler          *handlers.UpdatesHandler
	PurchasesHandler        *handlers.PurchasesHandler
	UserInteractor          *interactor.UserInteractor
	PendingPollerInteractor *interactor.PendingPollerInteractor
}

// NewContainer creates a new Container instance.
func NewContainer(db *pgxpool.Pool, gw domaingw.Client, registry domainrepos.PendingRegistry, pollCheckTimeout time.Duration) *Container {
	transactionRepository := repositories.NewTransactionRepositoryImpl(db)
	purchaseRepository := repositories.NewPurchaseRepositoryImpl(db)
	catalogRepository := repositories.NewCatalogRepositoryImpl(db)
	subscriptionRepository := repositories.NewSubscriptionRepositoryImpl(db)
	userRepository := repositories.NewUserRepositoryImpl(db)

	locator := interactor.NewTransactionLocator(transactionRepository, purchaseRepository)
	purchaseSets := interactor.NewPurchaseSetResolver(purchaseRepository, catalogRepository, subscriptionRepository)
	reconciler := interactor.NewStatusReconciler(transactionRepository, purchaseRepository, gw, registry)
	granter := interactor.NewFreeAccessGranter(purchaseRepository)
	resolve := interactor.NewResolveInteractor(locator, purchaseSets, reconciler, granter)

	poller := interactor.NewPendingPollerInteractor(transactionRepository, purchaseRepository, gw, registry, resolve, pollCheckTimeout)

	userInteractor := interactor.NewUserInteractor(userRepository)
	purchaseInteractor := interactor.NewPurchaseInteractor(purchaseRepository)

	return &Container{
		CheckoutHandler:         handlers.NewCheckoutHandler(resolve),
		UpdatesHandler:          handlers.NewUpdatesHandler(poller),
		PurchasesHandler:        handlers.NewPurchasesHandler(purchaseInteractor),
		UserInteractor:          userInteractor,
		PendingPollerInteractor: poller,
	}
}
