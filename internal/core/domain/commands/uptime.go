package commands

import (
	"context"
	"fmt"
	"time"

	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"
)

func Uptime(sender port.TextSender, startedAt time.Time) *command.Command {
	return &command.Command{
		Name:        "uptime",
		Description: "Shows how long the bot has been running.",
		Usage:       "<prefix> uptime",
		Category:    domain.CategoryInfo,
		Handler: func(ctx context.Context, message *domain.Message, _ []any) error {
			return sender.SendMessageReply(ctx, message,
				fmt.Sprintf("I have been running for %s.", formatDuration(time.Since(startedAt))))
		},
	}
}

// formatDuration renders a duration as days, hours and minutes.
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
