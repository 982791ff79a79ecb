package interactor

import (
	"testing"

	"github.com/lernhub/checkout-recon/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeFromPaymentStatus(t *testing.T) {
	cases := map[models.PaymentStatus]models.OutcomeStatus{
		models.PaymentStatusCompleted: models.OutcomeSuccess,
		models.PaymentStatusFailed:    models.OutcomeFailure,
		models.PaymentStatusCancelled: models.OutcomeCancel,
		models.PaymentStatusPending:   models.OutcomePending,
		models.PaymentStatus("weird"): models.OutcomeUnknown,
	}
	for status, want := range cases {
		assert.Equal(t, want, outcomeFromPaymentStatus(status), string(status))
	}
}

func TestOutcomeFromRawStatus(t *testing.T) {
	cases := []struct {
		raw   string
		want  models.OutcomeStatus
		known bool
	}{
		{"success", models.OutcomeSuccess, true},
		{"completed", models.OutcomeSuccess, true},
		{"failure", models.OutcomeFailure, true},
		{"failed", models.OutcomeFailure, true},
		{"cancel", models.OutcomeCancel, true},
		{"cancelled", models.OutcomeCancel, true},
		{"", models.OutcomeUnknown, false},
		{"processing", models.OutcomeUnknown, false},
	}
	for _, tc := range cases {
		got, ok := outcomeFromRawStatus(tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
		assert.Equal(t, tc.known, ok, tc.raw)
	}
}

func TestOutcomeFromSubscription(t *testing.T) {
	assert.Equal(t, models.OutcomeSuccess, outcomeFromSubscription(models.SubscriptionActive, false))
	assert.Equal(t, models.OutcomeFailure, outcomeFromSubscription(models.SubscriptionFailed, true))
	assert.Equal(t, models.OutcomePending, outcomeFromSubscription(models.SubscriptionPending, false))
	// A token on the redirect upgrades a pending subscription optimistically.
	assert.Equal(t, models.OutcomeSuccess, outcomeFromSubscription(models.SubscriptionPending, true))
	assert.Equal(t, models.OutcomeUnknown, outcomeFromSubscription(models.SubscriptionStatus("x"), true))
}
