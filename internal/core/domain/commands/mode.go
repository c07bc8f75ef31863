package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"
)

// ModeSettings is the slice of the settings service the mode command needs.
type ModeSettings interface {
	CurrentMode(ctx context.Context, roomID int64) domain.Mode
	SetMode(ctx context.Context, roomID int64, mode domain.Mode) error
}

func Mode(sender port.TextSender, settings ModeSettings) *command.Command {
	return &command.Command{
		Name:             "mode",
		Description:      "Shows or changes the mode the bot runs in for this room.",
		Usage:            "<prefix> mode [serious|fun|quiet|chatty]",
		Category:         domain.CategoryManage,
		PermissionLevels: []domain.Permission{domain.PermissionRoomModerator},
		IgnoreCooldown:   true,
		Handler: func(ctx context.Context, message *domain.Message, args []any) error {
			if len(args) == 0 {
				return sender.SendMessageReply(ctx, message,
					fmt.Sprintf("This room is in %s mode.", settings.CurrentMode(ctx, message.Room.ID)))
			}

			text, _ := args[0].(string)
			mode := domain.Mode(strings.ToLower(text))

			err := settings.SetMode(ctx, message.Room.ID, mode)
			if errors.Is(err, domain.ErrInvalidMode) {
				return sender.SendMessageReply(ctx, message,
					fmt.Sprintf("%q is not a mode I know. Try serious, fun, quiet or chatty.", text))
			}
			if err != nil {
				return err
			}

			return sender.SendMessageReply(ctx, message, fmt.Sprintf("This room is now in %s mode.", mode))
		},
	}
}
