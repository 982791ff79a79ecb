package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lernhub/checkout-recon/internal/errors"
	http2 "github.com/lernhub/checkout-recon/internal/infrastructure/api/http"
	"github.com/lernhub/checkout-recon/internal/usecases/dtos"
	"github.com/lernhub/checkout-recon/internal/usecases/interactor"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
)

type CheckoutHandler struct {
	interactor *interactor.ResolveInteractor
	logger     *zerolog.Logger
}

func NewCheckoutHandler(interactor *interactor.ResolveInteractor) *CheckoutHandler {
	logger := log.GetLogger()
	return &CheckoutHandler{interactor: interactor, logger: &logger}
}

// ResolveReturn handles the user landing back from the payment gateway.
// The pass runs on the request context without a hard timeout: a delayed
// confirmation is expected and answered with 'pending', not an error.
func (h *CheckoutHandler) ResolveReturn(w http.ResponseWriter, r *http.Request) {
	params := dtos.ParseRedirectParams(r.URL.Query())
	userID := http2.UserIDFromContext(r.Context())

	outcome, err := h.interactor.Resolve(r.Context(), userID, params)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedResolveOutcome)
		errors.HandleHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(outcome)
}
