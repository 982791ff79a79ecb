package models

import "github.com/shopspring/decimal"

type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionPending SubscriptionStatus = "pending"
	SubscriptionFailed  SubscriptionStatus = "failed"
)

type Subscription struct {
	ID     string             `db:"id"`
	UserID string             `db:"user_id"`
	PlanID string             `db:"plan_id"`
	Status SubscriptionStatus `db:"status"`
	Plan   SubscriptionPlan   `db:"-"`
}

type SubscriptionPlan struct {
	ID    string          `db:"id"`
	Title string          `db:"title"`
	Price decimal.Decimal `db:"price"`
}
