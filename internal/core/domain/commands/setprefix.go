package commands

import (
	"context"
	"fmt"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"
)

const maxPrefixLength = 8

// PrefixSettings is the slice of the settings service the setprefix command needs.
type PrefixSettings interface {
	DefaultPrefix() string
	SetPrefix(ctx context.Context, roomID int64, prefix string) error
}

func SetPrefix(sender port.TextSender, settings PrefixSettings) *command.Command {
	return &command.Command{
		Name:        "setprefix",
		Description: "Changes the command prefix for this room.",
		Usage:       "<prefix> setprefix [prefix]",
		Category:    domain.CategoryManage,
		OwnerOnly:   true,
		Handler: func(ctx context.Context, message *domain.Message, args []any) error {
			prefix := settings.DefaultPrefix()
			if len(args) > 0 {
				prefix, _ = args[0].(string)
			}

			if len(prefix) > maxPrefixLength {
				return sender.SendMessageReply(ctx, message,
					fmt.Sprintf("A prefix may be at most %d characters.", maxPrefixLength))
			}

			if err := settings.SetPrefix(ctx, message.Room.ID, prefix); err != nil {
				return err
			}

			return sender.SendMessageReply(ctx, message,
				fmt.Sprintf("The prefix for this room is now %q.", prefix))
		},
	}
}
