package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lernhub/checkout-recon/internal/errors"
	http2 "github.com/lernhub/checkout-recon/internal/infrastructure/api/http"
	"github.com/lernhub/checkout-recon/internal/usecases/interactor"
	"github.com/lernhub/checkout-recon/pkg/log"
)

// UserValidationMiddleware validates the user id.
func UserValidationMiddleware(userInt *interactor.UserInteractor) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.GetLogger()
			userId := chi.URLParam(r, http2.UserIDParam)
			if userId == "" {
				logger.Error().Msg(errors.ErrUserIDRequired)
				errors.HandleHTTPError(w, errors.NewBadRequestError(errors.ErrUserIDRequired))
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if exists, _ := userInt.ExistsByID(ctx, userId); !exists {
				logger.Error().Msg(errors.ErrInvalidUserID)
				errors.HandleHTTPError(w, errors.NewBadRequestError(errors.ErrInvalidUserID))
				return
			}

			next.ServeHTTP(w, r.WithContext(http2.WithUserID(r.Context(), userId)))
		})
	}
}
