package models

type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailure OutcomeStatus = "failure"
	OutcomeCancel  OutcomeStatus = "cancel"
	OutcomePending OutcomeStatus = "pending"
	OutcomeUnknown OutcomeStatus = "unknown"
)

// ResolvedOutcome is the result of one resolution pass. It is recomputed
// on every pass and never persisted.
type ResolvedOutcome struct {
	Status          OutcomeStatus      `json:"status"`
	IsMultiProduct  bool               `json:"is_multi_product"`
	PurchaseCount   int                `json:"purchase_count"`
	PrimaryPurchase *Purchase          `json:"primary_purchase,omitempty"`
	PrimaryEntity   *PurchasableEntity `json:"primary_entity,omitempty"`
	ProductID       string             `json:"product_id,omitempty"`
	Note            string             `json:"note,omitempty"`
}

type UpdateType string

const (
	UpdateContinuePolling UpdateType = "continue_polling"
	UpdateRevertedToCart  UpdateType = "reverted_to_cart"
)

// StatusUpdate is pushed by the pending-status poller when a transaction
// it watches changes state or its payment page turns out abandoned.
type StatusUpdate struct {
	Type          UpdateType    `json:"type"`
	TransactionID string        `json:"transaction_id"`
	NewStatus     PaymentStatus `json:"new_status"`
	Count         int           `json:"count"`
}
