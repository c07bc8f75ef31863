// Package commands holds the builtin command constructors. Each constructor
// closes over its collaborators and returns a ready *command.Command; wiring
// happens in main via registry factories.
package commands

import (
	"context"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"
)

func Ping(sender port.TextSender) *command.Command {
	return &command.Command{
		Name:        "ping",
		Description: "Sends back a pong response.",
		Usage:       "<prefix> ping",
		Category:    domain.CategoryInfo,
		Handler: func(ctx context.Context, message *domain.Message, _ []any) error {
			return sender.SendMessageReply(ctx, message, "Pong!")
		},
	}
}
