package interactor

import (
	"context"
	"testing"

	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/lernhub/checkout-recon/internal/usecases/dtos"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeGameGrant(t *testing.T) {
	// Free-item flow: no transaction, no gateway round-trip. The first pass
	// creates a completed purchase, every repeat resolves to the same one.
	env := newTestEnv()
	ctx := context.Background()
	env.catalog.add(&models.PurchasableEntity{
		Type:  models.PurchasableGame,
		ID:    "game-42",
		Title: "Puzzle Sprint",
		Price: decimal.Zero,
	})

	params := dtos.RedirectParams{
		RawStatus:    "success",
		OrderID:      "game-42",
		ItemTypeHint: dtos.ItemTypeGame,
		IsFree:       true,
	}

	outcome, err := env.resolve.Resolve(ctx, testUserID, params)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome.Status)
	require.NotNil(t, outcome.PrimaryPurchase)
	assert.Equal(t, models.PaymentStatusCompleted, outcome.PrimaryPurchase.PaymentStatus)
	assert.True(t, outcome.PrimaryPurchase.AutoGranted())
	assert.Nil(t, outcome.PrimaryPurchase.AccessExpiresAt, "free grants carry unlimited access")
	assert.True(t, outcome.PrimaryPurchase.PaymentAmount.IsZero())
	assert.Equal(t, 1, env.purchases.count())

	again, err := env.resolve.Resolve(ctx, testUserID, params)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, again.Status)
	assert.Equal(t, 1, env.purchases.count(), "repeat resolution must not duplicate the grant")
}

func TestFreeGrantSkipsPaidItems(t *testing.T) {
	env := newTestEnv()
	granter := NewFreeAccessGranter(env.purchases)

	t.Run("non-zero price", func(t *testing.T) {
		p, err := granter.Grant(context.Background(), testUserID, &models.PurchasableEntity{
			Type:  models.PurchasableCourse,
			ID:    "course-1",
			Price: decimal.NewFromInt(30),
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("placeholder entity", func(t *testing.T) {
		p, err := granter.Grant(context.Background(), testUserID, models.NewPlaceholderEntity(models.PurchasableGame, "x"), nil)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("anonymous user", func(t *testing.T) {
		p, err := granter.Grant(context.Background(), "", &models.PurchasableEntity{
			Type: models.PurchasableGame,
			ID:   "game-1",
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	assert.Equal(t, 0, env.purchases.count())
}

func TestFreeGrantDuplicateInsertIsSuccess(t *testing.T) {
	// Two concurrent passes can both miss the existence check; the unique
	// violation from the second insert is absorbed as "already granted".
	env := newTestEnv()
	granter := NewFreeAccessGranter(env.purchases)
	entity := &models.PurchasableEntity{Type: models.PurchasableGame, ID: "game-7", Price: decimal.Zero}

	first, err := granter.Grant(context.Background(), testUserID, entity, nil)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := granter.Grant(context.Background(), testUserID, entity, nil)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 1, env.purchases.count())
}
