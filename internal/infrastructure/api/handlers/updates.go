package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lernhub/checkout-recon/internal/errors"
	"github.com/lernhub/checkout-recon/internal/usecases/interactor"
	"github.com/lernhub/checkout-recon/pkg/log"
	"github.com/rs/zerolog"
)

type UpdatesHandler struct {
	poller *interactor.PendingPollerInteractor
	logger *zerolog.Logger
}

func NewUpdatesHandler(poller *interactor.PendingPollerInteractor) *UpdatesHandler {
	logger := log.GetLogger()
	return &UpdatesHandler{poller: poller, logger: &logger}
}

// Stream pushes poller status updates to the client as server-sent
// events until the client disconnects.
func (h *UpdatesHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		errors.HandleHTTPError(w, errors.NewBadRequestError("streaming unsupported"))
		return
	}

	updates, cancel := h.poller.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case update, open := <-updates:
			if !open {
				return
			}
			data, err := json.Marshal(update)
			if err != nil {
				h.logger.Error().Err(err).Msg("failed to marshal status update")
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
