package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

var ValidPaymentStatuses = map[PaymentStatus]struct{}{
	PaymentStatusPending:   {},
	PaymentStatusCompleted: {},
	PaymentStatusFailed:    {},
	PaymentStatusCancelled: {},
}

// Terminal reports whether the status can no longer change. A transaction
// moves pending -> {completed, failed, cancelled} and never back.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed || s == PaymentStatusCancelled
}

// Metadata keys used by the reconciliation flow.
const (
	MetaSubscriptionID = "subscription_id"
	MetaLegacyUID      = "legacy_uid"
	MetaAutoGranted    = "auto_granted"
)

type Metadata map[string]string

type Transaction struct {
	ID                string        `db:"id"`
	PageRequestUID    string        `db:"page_request_uid"`
	PaymentStatus     PaymentStatus `db:"payment_status"`
	ConfirmationToken string        `db:"confirmation_token"`
	Metadata          Metadata      `db:"metadata"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

// SubscriptionID returns the subscription reference carried in metadata,
// or an empty string for ordinary product transactions.
func (t *Transaction) SubscriptionID() string {
	if t.Metadata == nil {
		return ""
	}
	return t.Metadata[MetaSubscriptionID]
}
