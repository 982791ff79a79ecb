package dtos

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRedirectParams(t *testing.T) {
	t.Run("gateway return url", func(t *testing.T) {
		values, err := url.ParseQuery("transaction_token=tok-1&page_request_uid=page-9&status=success")
		assert.NoError(t, err)

		p := ParseRedirectParams(values)
		assert.Equal(t, "tok-1", p.ConfirmationToken)
		assert.Equal(t, "page-9", p.PageRequestUID)
		assert.Equal(t, "success", p.RawStatus)
		assert.Equal(t, ItemTypeProduct, p.ItemTypeHint)
		assert.False(t, p.IsFree)
	})

	t.Run("legacy free game link", func(t *testing.T) {
		values, err := url.ParseQuery("order=game-42&type=game&free=true")
		assert.NoError(t, err)

		p := ParseRedirectParams(values)
		assert.Equal(t, "game-42", p.OrderID)
		assert.Equal(t, ItemTypeGame, p.ItemTypeHint)
		assert.True(t, p.IsFree)
	})

	t.Run("unknown type falls back to product", func(t *testing.T) {
		values, _ := url.ParseQuery("order=x&type=banana&free=1")
		p := ParseRedirectParams(values)
		assert.Equal(t, ItemTypeProduct, p.ItemTypeHint)
		assert.True(t, p.IsFree)
	})

	t.Run("empty query", func(t *testing.T) {
		p := ParseRedirectParams(url.Values{})
		assert.Equal(t, RedirectParams{ItemTypeHint: ItemTypeProduct}, p)
	})
}

func TestHasPositiveEvidence(t *testing.T) {
	assert.True(t, RedirectParams{ConfirmationToken: "tok"}.HasPositiveEvidence())
	assert.True(t, RedirectParams{RawStatus: "success"}.HasPositiveEvidence())
	assert.False(t, RedirectParams{RawStatus: "failure"}.HasPositiveEvidence())
	assert.False(t, RedirectParams{OrderID: "order-1"}.HasPositiveEvidence())
}
