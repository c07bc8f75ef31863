package service

import (
	"context"
	"fmt"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Settings resolves per-room configuration from the store. Store failures
// are logged and treated as "not configured".
type Settings struct {
	store         port.Store
	defaultPrefix string
}

func NewSettings(store port.Store, defaultPrefix string) *Settings {
	if defaultPrefix == "" {
		defaultPrefix = "!"
	}
	return &Settings{store: store, defaultPrefix: defaultPrefix}
}

func (s *Settings) DefaultPrefix() string {
	return s.defaultPrefix
}

// RoomPrefix returns the prefix configured for the room, if any.
func (s *Settings) RoomPrefix(ctx context.Context, roomID int64) (string, bool) {
	prefix, err := s.store.Get(ctx, prefixKey(roomID))
	if err != nil {
		log.Warn().Err(err).Int64("roomId", roomID).Msg("failed to read room prefix")
		return "", false
	}
	return prefix, prefix != ""
}

// Prefix returns the room prefix, falling back to the default.
func (s *Settings) Prefix(ctx context.Context, roomID int64) string {
	if prefix, ok := s.RoomPrefix(ctx, roomID); ok {
		return prefix
	}
	return s.defaultPrefix
}

func (s *Settings) SetPrefix(ctx context.Context, roomID int64, prefix string) error {
	return s.store.Set(ctx, prefixKey(roomID), prefix)
}

// Mode returns the stored room mode; ok is false when no valid mode is
// set. Unset rooms pass both the quiet and the serious gate.
func (s *Settings) Mode(ctx context.Context, roomID int64) (domain.Mode, bool) {
	value, err := s.store.Get(ctx, modeKey(roomID))
	if err != nil {
		log.Warn().Err(err).Int64("roomId", roomID).Msg("failed to read room mode")
		return "", false
	}

	mode := domain.Mode(value)
	if !mode.Valid() {
		return "", false
	}
	return mode, true
}

// CurrentMode is the display form of Mode: unset rooms report serious.
func (s *Settings) CurrentMode(ctx context.Context, roomID int64) domain.Mode {
	if mode, ok := s.Mode(ctx, roomID); ok {
		return mode
	}
	return domain.ModeSerious
}

func (s *Settings) SetMode(ctx context.Context, roomID int64, mode domain.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidMode, mode)
	}
	return s.store.Set(ctx, modeKey(roomID), string(mode))
}

func (s *Settings) IsQuiet(ctx context.Context, roomID int64) bool {
	mode, ok := s.Mode(ctx, roomID)
	return ok && mode == domain.ModeQuiet
}

func (s *Settings) IsSerious(ctx context.Context, roomID int64) bool {
	mode, ok := s.Mode(ctx, roomID)
	return ok && mode == domain.ModeSerious
}

func prefixKey(roomID int64) string {
	return fmt.Sprintf("prefix::%d", roomID)
}

func modeKey(roomID int64) string {
	return fmt.Sprintf("mode::%d", roomID)
}
