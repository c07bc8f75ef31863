package commands

import (
	"context"
	"fmt"
	"slices"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"
)

func Whitelist(sender port.TextSender, blocklist BlocklistService,
	users port.UserAPI, rooms port.RoomLister, owners []int64) *command.Command {
	cmd := &command.Command{
		Name:             "whitelist",
		Description:      "Removes a user from the blacklist, in this room or everywhere.",
		Usage:            "<prefix> whitelist [username] [global]",
		Category:         domain.CategoryModeration,
		PermissionLevels: []domain.Permission{domain.PermissionRoomModerator},
		Aliases:          []string{"wl", "unignore"},
		Handler: func(ctx context.Context, message *domain.Message, args []any) error {
			target, ok := firstUser(args)
			if !ok {
				return sender.SendMessageReply(ctx, message, "I don't know that user.")
			}

			if isGlobalScope(args) {
				if !slices.Contains(owners, message.Sender.ID) {
					return sender.SendMessageReply(ctx, message, "Only my owner may whitelist globally.")
				}
				if err := blocklist.UnblockGlobal(ctx, target.ID); err != nil {
					return err
				}
				return sender.SendMessageReply(ctx, message,
					fmt.Sprintf("%s is no longer blacklisted anywhere.", target.Username))
			}

			if err := blocklist.UnblockRoom(ctx, message.Room.ID, target.ID); err != nil {
				return err
			}
			return sender.SendMessageReply(ctx, message,
				fmt.Sprintf("%s is no longer blacklisted in this room.", target.Username))
		},
	}

	cmd.Use(command.Resolve(users, rooms,
		command.Arg{Name: "[username]", Type: command.ArgUser},
		command.Arg{Name: "[global]", Type: command.ArgString}))

	return cmd
}

func firstUser(args []any) (*domain.User, bool) {
	if len(args) == 0 {
		return nil, false
	}
	user, ok := args[0].(*domain.User)
	return user, ok && user != nil
}
