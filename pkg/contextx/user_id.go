package contextx

import (
	"context"
	"fmt"
)

// UserID is the caller identity forwarded by the game frontend. The market
// does not authenticate it, it only records it as the trade actor.
type UserID string

type contextKeyUserID struct{}

func (u UserID) String() string {
	return string(u)
}

func WithUserID(ctx context.Context, userID UserID) context.Context {
	return context.WithValue(ctx, contextKeyUserID{}, userID)
}

func UserIDFromContext(ctx context.Context) (UserID, error) {
	userID, ok := ctx.Value(contextKeyUserID{}).(UserID)
	if !ok || userID == "" {
		return "", fmt.Errorf("user id: %w", ErrNoValue)
	}

	return userID, nil
}
