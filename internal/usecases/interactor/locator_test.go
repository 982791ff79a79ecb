package interactor

import (
	"context"
	"testing"

	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/usecases/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocatorPriorityOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	byPage := &models.Transaction{ID: "11111111-aaaa-4bbb-8ccc-000000000001", PageRequestUID: "page-1", PaymentStatus: models.PaymentStatusCompleted}
	byID := &models.Transaction{ID: "11111111-aaaa-4bbb-8ccc-000000000002", PaymentStatus: models.PaymentStatusCompleted}
	byLegacy := &models.Transaction{
		ID:            "11111111-aaaa-4bbb-8ccc-000000000003",
		PaymentStatus: models.PaymentStatusCompleted,
		Metadata:      models.Metadata{models.MetaLegacyUID: "legacy-77"},
	}
	env.transactions.transactions[byPage.ID] = byPage
	env.transactions.transactions[byID.ID] = byID
	env.transactions.transactions[byLegacy.ID] = byLegacy

	require.NoError(t, env.purchases.Insert(ctx, &models.Purchase{
		ID:            "purchase-5",
		TransactionID: byID.ID,
		UserID:        "user-1",
	}))

	locator := NewTransactionLocator(env.transactions, env.purchases)

	t.Run("page request uid wins over order", func(t *testing.T) {
		located, err := locator.Locate(ctx, dtos.RedirectParams{
			PageRequestUID: "page-1",
			OrderID:        TransactionIDPrefix + byID.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, located.Transaction)
		assert.Equal(t, byPage.ID, located.Transaction.ID)
	})

	t.Run("prefixed order resolves as transaction id", func(t *testing.T) {
		located, err := locator.Locate(ctx, dtos.RedirectParams{OrderID: TransactionIDPrefix + byID.ID})
		require.NoError(t, err)
		require.NotNil(t, located.Transaction)
		assert.Equal(t, byID.ID, located.Transaction.ID)
	})

	t.Run("order resolves as purchase id to parent transaction", func(t *testing.T) {
		located, err := locator.Locate(ctx, dtos.RedirectParams{OrderID: "purchase-5"})
		require.NoError(t, err)
		require.NotNil(t, located.Transaction)
		assert.Equal(t, byID.ID, located.Transaction.ID)
	})

	t.Run("order falls back to legacy uid", func(t *testing.T) {
		located, err := locator.Locate(ctx, dtos.RedirectParams{OrderID: "legacy-77"})
		require.NoError(t, err)
		require.NotNil(t, located.Transaction)
		assert.Equal(t, byLegacy.ID, located.Transaction.ID)
	})

	t.Run("no match is not an error", func(t *testing.T) {
		located, err := locator.Locate(ctx, dtos.RedirectParams{OrderID: "nothing-here"})
		require.NoError(t, err)
		assert.Nil(t, located.Transaction)
		assert.False(t, located.RaceSuspected)
	})
}

func TestLocatorRaceSuspicion(t *testing.T) {
	ctx := context.Background()

	newLocator := func(txn *models.Transaction) *TransactionLocator {
		env := newTestEnv()
		env.transactions.transactions[txn.ID] = txn
		return NewTransactionLocator(env.transactions, env.purchases)
	}

	t.Run("pending via page request with token", func(t *testing.T) {
		txn := &models.Transaction{ID: "t-1", PageRequestUID: "page-1", PaymentStatus: models.PaymentStatusPending}
		located, err := newLocator(txn).Locate(ctx, dtos.RedirectParams{
			PageRequestUID:    "page-1",
			ConfirmationToken: "tok-abc",
		})
		require.NoError(t, err)
		assert.True(t, located.RaceSuspected)
	})

	t.Run("pending via page request without token", func(t *testing.T) {
		txn := &models.Transaction{ID: "t-2", PageRequestUID: "page-2", PaymentStatus: models.PaymentStatusPending}
		located, err := newLocator(txn).Locate(ctx, dtos.RedirectParams{PageRequestUID: "page-2"})
		require.NoError(t, err)
		assert.False(t, located.RaceSuspected)
	})

	t.Run("completed via page request with token", func(t *testing.T) {
		txn := &models.Transaction{ID: "t-3", PageRequestUID: "page-3", PaymentStatus: models.PaymentStatusCompleted}
		located, err := newLocator(txn).Locate(ctx, dtos.RedirectParams{
			PageRequestUID:    "page-3",
			ConfirmationToken: "tok-abc",
		})
		require.NoError(t, err)
		assert.False(t, located.RaceSuspected)
	})

	t.Run("pending located by legacy order never suspects a race", func(t *testing.T) {
		txn := &models.Transaction{
			ID:            "t-4",
			PaymentStatus: models.PaymentStatusPending,
			Metadata:      models.Metadata{models.MetaLegacyUID: "legacy-4"},
		}
		located, err := newLocator(txn).Locate(ctx, dtos.RedirectParams{
			OrderID:           "legacy-4",
			ConfirmationToken: "tok-abc",
		})
		require.NoError(t, err)
		require.NotNil(t, located.Transaction)
		assert.False(t, located.RaceSuspected)
	})
}
