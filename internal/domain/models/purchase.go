package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchasableType string

const (
	PurchasableWorkshop PurchasableType = "workshop"
	PurchasableCourse   PurchasableType = "course"
	PurchasableFile     PurchasableType = "file"
	PurchasableTool     PurchasableType = "tool"
	PurchasableGame     PurchasableType = "game"
)

var ValidPurchasableTypes = map[PurchasableType]struct{}{
	PurchasableWorkshop: {},
	PurchasableCourse:   {},
	PurchasableFile:     {},
	PurchasableTool:     {},
	PurchasableGame:     {},
}

type Purchase struct {
	ID              string          `db:"id"`
	TransactionID   string          `db:"transaction_id"` // empty for legacy records
	ProductID       string          `db:"product_id"`     // legacy linkage, set when TransactionID is empty
	UserID          string          `db:"user_id"`
	PurchasableType PurchasableType `db:"purchasable_type"`
	PurchasableID   string          `db:"purchasable_id"`
	PaymentStatus   PaymentStatus   `db:"payment_status"`
	PaymentAmount   decimal.Decimal `db:"payment_amount"`
	AccessExpiresAt *time.Time      `db:"access_expires_at"` // nil means unlimited access
	Metadata        Metadata        `db:"metadata"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (p *Purchase) AutoGranted() bool {
	if p.Metadata == nil {
		return false
	}
	return p.Metadata[MetaAutoGranted] == "true"
}
