package commands

import (
	"context"
	"fmt"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"
)

func Version(sender port.TextSender, version string) *command.Command {
	return &command.Command{
		Name:        "version",
		Description: "Shows the running bot version.",
		Usage:       "<prefix> version",
		Category:    domain.CategoryInfo,
		Aliases:     []string{"v"},
		Handler: func(ctx context.Context, message *domain.Message, _ []any) error {
			return sender.SendMessageReply(ctx, message, fmt.Sprintf("Running version %s.", version))
		},
	}
}
