package service

import (
	"context"
	"fmt"
	"strconv"

	"cmdbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const blacklistGlobal = "blacklist::global"

// Blacklist maintains the room-scoped and global block-lists. Store
// failures are logged and fail open: an unreadable list blocks nobody.
type Blacklist struct {
	store port.Store
}

func NewBlacklist(store port.Store) *Blacklist {
	return &Blacklist{store: store}
}

// IsBlacklisted reports whether the user appears in the room's list or the
// global one.
func (b *Blacklist) IsBlacklisted(ctx context.Context, userID, roomID int64) bool {
	return b.contains(ctx, blacklistKey(roomID), userID) ||
		b.contains(ctx, blacklistGlobal, userID)
}

func (b *Blacklist) BlockRoom(ctx context.Context, roomID, userID int64) error {
	return b.store.ListAppend(ctx, blacklistKey(roomID), formatID(userID))
}

func (b *Blacklist) BlockGlobal(ctx context.Context, userID int64) error {
	return b.store.ListAppend(ctx, blacklistGlobal, formatID(userID))
}

// UnblockRoom removes every occurrence of the user from the room list.
// Removing an absent entry is a no-op.
func (b *Blacklist) UnblockRoom(ctx context.Context, roomID, userID int64) error {
	return b.store.ListRemove(ctx, blacklistKey(roomID), 0, formatID(userID))
}

func (b *Blacklist) UnblockGlobal(ctx context.Context, userID int64) error {
	return b.store.ListRemove(ctx, blacklistGlobal, 0, formatID(userID))
}

// RoomEntries returns the raw user ids on the room's list.
func (b *Blacklist) RoomEntries(ctx context.Context, roomID int64) []string {
	items, err := b.store.ListRange(ctx, blacklistKey(roomID), 0, -1)
	if err != nil {
		log.Warn().Err(err).Int64("roomId", roomID).Msg("failed to read blacklist")
		return nil
	}
	return items
}

func (b *Blacklist) contains(ctx context.Context, list string, userID int64) bool {
	items, err := b.store.ListRange(ctx, list, 0, -1)
	if err != nil {
		log.Warn().Err(err).Str("list", list).Msg("failed to read blacklist")
		return false
	}

	id := formatID(userID)
	for _, item := range items {
		if item == id {
			return true
		}
	}
	return false
}

func blacklistKey(roomID int64) string {
	return fmt.Sprintf("blacklist::%d", roomID)
}

func formatID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
