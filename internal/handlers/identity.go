package handlers

import "context"

type contextKey string

const userIDKey contextKey = "userID"

// WithUserID stores the authenticated user's identifier in the context.
// Core calls receive identity explicitly instead of reading ambient state.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFrom extracts the authenticated user's identifier from the context.
func UserIDFrom(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
