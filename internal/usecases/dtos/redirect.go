package dtos

import "net/url"

// Query parameters recognized on the gateway return URL. The gateway
// family is appended by the hosted payment page; the legacy family comes
// from older internal checkout links.
const (
	ParamConfirmationToken = "transaction_token"
	ParamPageRequestUID    = "page_request_uid"
	ParamStatus            = "status"
	ParamOrder             = "order"
	ParamItemType          = "type"
	ParamFree              = "free"
)

type ItemTypeHint string

const (
	ItemTypeGame    ItemTypeHint = "game"
	ItemTypeProduct ItemTypeHint = "product"
)

// RedirectParams is the normalized view of the return URL. Absent fields
// stay empty; nothing is validated here beyond presence.
type RedirectParams struct {
	ConfirmationToken string
	PageRequestUID    string
	RawStatus         string
	OrderID           string
	ItemTypeHint      ItemTypeHint
	IsFree            bool
}

// ParseRedirectParams extracts the recognized parameters from the return
// URL's query. Pure, no side effects.
func ParseRedirectParams(values url.Values) RedirectParams {
	p := RedirectParams{
		ConfirmationToken: values.Get(ParamConfirmationToken),
		PageRequestUID:    values.Get(ParamPageRequestUID),
		RawStatus:         values.Get(ParamStatus),
		OrderID:           values.Get(ParamOrder),
		ItemTypeHint:      ItemTypeProduct,
	}
	if values.Get(ParamItemType) == string(ItemTypeGame) {
		p.ItemTypeHint = ItemTypeGame
	}
	switch values.Get(ParamFree) {
	case "true", "1":
		p.IsFree = true
	}
	return p
}

// HasPositiveEvidence reports whether the redirect itself carries proof of
// a successful payment: a confirmation token, or an explicit success
// status on a legacy link. Internal errors are never surfaced as payment
// failure while this holds.
func (p RedirectParams) HasPositiveEvidence() bool {
	return p.ConfirmationToken != "" || p.RawStatus == "success"
}
