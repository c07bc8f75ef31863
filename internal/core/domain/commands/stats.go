package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"
)

// CommandCounter is the slice of the registry the stats command needs.
type CommandCounter interface {
	Len() int
}

func Stats(sender port.TextSender, rooms port.RoomLister, registry CommandCounter, startedAt time.Time) *command.Command {
	return &command.Command{
		Name:        "stats",
		Description: "Get chat and bot stats.",
		Usage:       "<prefix> stats <online>",
		Category:    domain.CategoryInfo,
		SubHelp: []command.SubHelp{
			{Name: "online", Description: "Lists the rooms the bot is currently in.", Usage: "<prefix> stats online"},
		},
		Handler: func(ctx context.Context, message *domain.Message, args []any) error {
			joined := rooms.JoinedRooms(ctx)

			if len(args) > 0 && args[0] == "online" {
				if len(joined) == 0 {
					return sender.SendMessageReply(ctx, message, "I am not in any rooms right now.")
				}

				titles := make([]string, 0, len(joined))
				for _, room := range joined {
					titles = append(titles, room.Title)
				}
				return sender.SendMessageReply(ctx, message,
					fmt.Sprintf("Currently in %d rooms: %s.", len(joined), strings.Join(titles, ", ")))
			}

			return sender.SendMessageReply(ctx, message,
				fmt.Sprintf("Serving %d commands in %d rooms, up for %s.",
					registry.Len(), len(joined), formatDuration(time.Since(startedAt))))
		},
	}
}
