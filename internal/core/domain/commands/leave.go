package commands

import (
	"context"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

func Leave(sender port.TextSender, rooms port.RoomLister) *command.Command {
	return &command.Command{
		Name:             "leave",
		Description:      "Makes the bot leave this room.",
		Usage:            "<prefix> leave",
		Category:         domain.CategoryManage,
		PermissionLevels: []domain.Permission{domain.PermissionRoomModerator},
		Handler: func(ctx context.Context, message *domain.Message, _ []any) error {
			if message.IsPM() {
				return sender.SendMessageReply(ctx, message, "I can't leave a private conversation.")
			}

			if err := sender.SendMessageReply(ctx, message, "Goodbye!"); err != nil {
				log.Error().Err(err).Msg("failed to send reply")
			}

			return rooms.LeaveRoom(ctx, message.Room.ID)
		},
	}
}
