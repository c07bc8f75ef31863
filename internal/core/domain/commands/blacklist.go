package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"
)

// BlocklistService is the slice of the blacklist service the moderation
// commands need.
type BlocklistService interface {
	BlockRoom(ctx context.Context, roomID, userID int64) error
	BlockGlobal(ctx context.Context, userID int64) error
	UnblockRoom(ctx context.Context, roomID, userID int64) error
	UnblockGlobal(ctx context.Context, userID int64) error
	RoomEntries(ctx context.Context, roomID int64) []string
}

func Blacklist(sender port.TextSender, blocklist BlocklistService,
	users port.UserAPI, rooms port.RoomLister, owners []int64, botID int64) *command.Command {
	cmd := &command.Command{
		Name:             "blacklist",
		Description:      "Makes the bot ignore a user, in this room or everywhere.",
		Usage:            "<prefix> blacklist [username] [global]",
		Category:         domain.CategoryModeration,
		PermissionLevels: []domain.Permission{domain.PermissionRoomModerator},
		Aliases:          []string{"bl", "ignore"},
		Handler: func(ctx context.Context, message *domain.Message, args []any) error {
			if len(args) == 0 {
				entries := blocklist.RoomEntries(ctx, message.Room.ID)
				if len(entries) == 0 {
					return sender.SendMessageReply(ctx, message, "Nobody is blacklisted in this room.")
				}
				return sender.SendMessageReply(ctx, message,
					fmt.Sprintf("Blacklisted in this room: %s.", strings.Join(entries, ", ")))
			}

			target, ok := args[0].(*domain.User)
			if !ok || target == nil {
				return sender.SendMessageReply(ctx, message, "I don't know that user.")
			}

			switch {
			case target.ID == message.Sender.ID:
				return sender.SendMessageReply(ctx, message, "You can't blacklist yourself.")
			case target.ID == botID:
				return sender.SendMessageReply(ctx, message, "Nice try.")
			case slices.Contains(owners, target.ID):
				return sender.SendMessageReply(ctx, message, "You can't blacklist my owner.")
			}

			if isGlobalScope(args) {
				if !slices.Contains(owners, message.Sender.ID) {
					return sender.SendMessageReply(ctx, message, "Only my owner may blacklist globally.")
				}
				if err := blocklist.BlockGlobal(ctx, target.ID); err != nil {
					return err
				}
				return sender.SendMessageReply(ctx, message,
					fmt.Sprintf("%s is now blacklisted everywhere.", target.Username))
			}

			if err := blocklist.BlockRoom(ctx, message.Room.ID, target.ID); err != nil {
				return err
			}
			return sender.SendMessageReply(ctx, message,
				fmt.Sprintf("%s is now blacklisted in this room.", target.Username))
		},
	}

	cmd.Use(command.Resolve(users, rooms,
		command.Arg{Name: "[username]", Type: command.ArgUser},
		command.Arg{Name: "[global]", Type: command.ArgString}))

	return cmd
}

func isGlobalScope(args []any) bool {
	if len(args) < 2 {
		return false
	}
	scope, _ := args[1].(string)
	return strings.EqualFold(scope, "global")
}
