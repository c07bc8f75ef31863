package port

import (
	"cmdbot/internal/core/domain"
	"context"
)

type UserAPI interface {
	// GetUser looks a user up by id or name within a room. A miss returns
	// a nil user, not an error.
	GetUser(ctx context.Context, roomID int64, query string) (*domain.User, error)
}

type RoomLister interface {
	// JoinedRooms returns the public rooms the bot currently participates in.
	JoinedRooms(ctx context.Context) []domain.Room
	// LeaveRoom makes the bot leave the given room.
	LeaveRoom(ctx context.Context, roomID int64) error
}
