package http

import "context"

const (
	// UserIDParam is the chi URL parameter carrying the user id.
	UserIDParam = "user_id"
	// HeaderUserID carries the authenticated identity on checkout routes.
	HeaderUserID = "X-User-ID"
)

type contextKey string

const userIDKey contextKey = "userID"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user id, or an empty string
// for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
