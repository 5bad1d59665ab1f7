package states

import "context"

// Store keeps one Conversation per user.
type Store interface {
	Get(ctx context.Context, userID int64) (Conversation, error)
	Set(ctx context.Context, userID int64, conv Conversation) error
	Delete(ctx context.Context, userID int64) error
	Exists(ctx context.Context, userID int64) (bool, error)
}
