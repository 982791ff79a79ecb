package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/lernhub/checkout-recon/internal/errors"
	http2 "github.com/lernhub/checkout-recon/internal/infrastructure/api/http"
	"github.com/lernhub/checkout-recon/internal/usecases/interactor"
	"github.com/lernhub/checkout-recon/pkg/log"
)

// IdentityMiddleware resolves the optional authenticated identity on
// checkout routes. Anonymous requests pass through; free-access grants
// simply do not apply to them.
func IdentityMiddleware(userInt *interactor.UserInteractor) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userId := r.Header.Get(http2.HeaderUserID)
			if userId == "" {
				next.ServeHTTP(w, r)
				return
			}

			logger := log.GetLogger()
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
