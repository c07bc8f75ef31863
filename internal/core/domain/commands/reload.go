package commands

import (
	"context"
	"errors"
	"fmt"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"
)

// CommandReloader is the slice of the registry the reload command needs.
type CommandReloader interface {
	Reload(name string) error
}

func Reload(sender port.TextSender, registry CommandReloader) *command.Command {
	return &command.Command{
		Name:        "reload",
		Description: "Rebuilds a command from its factory, or all of them.",
		Usage:       "<prefix> reload [command|all]",
		Category:    domain.CategoryManage,
		OwnerOnly:   true,
		Handler: func(ctx context.Context, message *domain.Message, args []any) error {
			name := "all"
			if len(args) > 0 {
				name, _ = args[0].(string)
			}

			err := registry.Reload(name)
			if errors.Is(err, domain.ErrCommandNotFound) {
				return sender.SendMessageReply(ctx, message,
					fmt.Sprintf("No command named %q to reload.", name))
			}
			if err != nil {
				return err
			}

			if name == "all" {
				return sender.SendMessageReply(ctx, message, "Reloaded all commands.")
			}
			return sender.SendMessageReply(ctx, message, fmt.Sprintf("Reloaded %s.", name))
		},
	}
}
