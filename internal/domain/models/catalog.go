package models

import "github.com/shopspring/decimal"

// PurchasableEntity is a read-only projection of the catalog item a
// purchase points at. Catalog ownership lives elsewhere; this subsystem
// only displays it.
type PurchasableEntity struct {
	Type        PurchasableType `json:"type"`
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	ProductID   string          `json:"product_id,omitempty"`
	Placeholder bool            `json:"placeholder,omitempty"`
}

// NewPlaceholderEntity stands in for an entity that could not be loaded.
// A missing catalog row must never downgrade a payment outcome, so the
// resolution flow substitutes this instead of failing.
func NewPlaceholderEntity(t PurchasableType, id string) *PurchasableEntity {
	return &PurchasableEntity{
		Type:        t,
		ID:          id,
		Title:       "Purchased item",
		Price:       decimal.Zero,
		Placeholder: true,
	}
}
