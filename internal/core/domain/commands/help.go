package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"
)

// CommandLister is the slice of the registry the help command needs.
type CommandLister interface {
	All() []*command.Command
	FindByNameOrAlias(text string) *command.Command
	FindByType(category domain.Category) []*command.Command
}

// PrefixSource resolves the active prefix so help can render usage lines.
type PrefixSource interface {
	Prefix(ctx context.Context, roomID int64) string
}

func Help(sender port.TextSender, registry CommandLister, prefixes PrefixSource) *command.Command {
	return &command.Command{
		Name:        "help",
		Description: "Shows help for a command, or lists all commands.",
		Usage:       "<prefix> help [command]",
		Category:    domain.CategoryInfo,
		Aliases:     []string{"guide"},
		Handler: func(ctx context.Context, message *domain.Message, args []any) error {
			prefix := prefixes.Prefix(ctx, message.Room.ID)

			if len(args) == 0 {
				return sender.SendMessageReply(ctx, message, listAll(registry, prefix))
			}

			query, _ := args[0].(string)
			cmd := registry.FindByNameOrAlias(query)
			if cmd == nil {
				return sender.SendMessageReply(ctx, message,
					fmt.Sprintf("No command named %q. Try %shelp.", query, prefix))
			}

			return sender.SendMessageReply(ctx, message, describe(cmd, prefix))
		},
	}
}

func listAll(registry CommandLister, prefix string) string {
	var b strings.Builder
	b.WriteString("Available commands:\n")

	for _, category := range domain.Categories() {
		cmds := registry.FindByType(category)
		if len(cmds) == 0 {
			continue
		}

		names := make([]string, 0, len(cmds))
		for _, cmd := range cmds {
			names = append(names, cmd.Name)
		}
		sort.Strings(names)

		b.WriteString(fmt.Sprintf("%s: %s\n", category, strings.Join(names, ", ")))
	}

	b.WriteString(fmt.Sprintf("Use %shelp [command] for details.", prefix))
	return b.String()
}

func describe(cmd *command.Command, prefix string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s\n", cmd.Name, cmd.Description))
	b.WriteString("Usage: " + renderUsage(cmd.Usage, prefix))

	if len(cmd.Aliases) > 0 {
		b.WriteString("\nAliases: " + strings.Join(cmd.Aliases, ", "))
	}

	for _, sub := range cmd.SubHelp {
		b.WriteString(fmt.Sprintf("\n%s %s: %s (%s)", cmd.Name, sub.Name, sub.Description,
			renderUsage(sub.Usage, prefix)))
	}

	return b.String()
}

func renderUsage(usage, prefix string) string {
	return strings.ReplaceAll(usage, "<prefix> ", prefix)
}
