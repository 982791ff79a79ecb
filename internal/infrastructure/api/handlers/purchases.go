package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lernhub/checkout-recon/internal/errors"
	http2 "github.com/lernhub/checkout-recon/internal/infrastructure/api/http"
	"github.com/lernhub/checkout-recon/internal/usecases/interactor"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
)

type PurchasesHandler struct {
	interactor *interactor.PurchaseInteractor
	logger     *zerolog.Logger
}

func NewPurchasesHandler(interactor *interactor.PurchaseInteractor) *PurchasesHandler {
	logger := log.GetLogger()
	return &PurchasesHandler{interactor: interactor, logger: &logger}
}

func (h *PurchasesHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, http2.UserIDParam)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	purchases, err := h.interactor.ListForUser(ctx, userId)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list purchases")
		errors.HandleHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(purchases)
}
